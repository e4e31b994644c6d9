package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"recipe-ranker/internal/core/ingredient"
	"recipe-ranker/internal/infrastructure/config"
	"recipe-ranker/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrSourceDisabled 未啟用外部食譜搜尋
var ErrSourceDisabled = errors.New("recipe source disabled")

// Client 外部食譜搜尋服務客戶端
type Client struct {
	config *config.RecipeAPIConfig
	client *resty.Client
}

// NewClient 創建食譜搜尋客戶端
func NewClient(cfg *config.RecipeAPIConfig) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	return &Client{
		config: cfg,
		client: client,
	}
}

// Enabled 是否啟用
func (c *Client) Enabled() bool {
	return c != nil && c.config.Enabled
}

type apiIngredient struct {
	Name     string  `json:"name"`
	Original string  `json:"original"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
}

type apiRecipe struct {
	ID                int             `json:"id"`
	Title             string          `json:"title"`
	SourceURL         string          `json:"sourceUrl"`
	UsedIngredients   []apiIngredient `json:"usedIngredients"`
	MissedIngredients []apiIngredient `json:"missedIngredients"`
}

// FindByIngredients 依庫存食材搜尋候選食譜
// limit <= 0 時使用設定的 max_results
func (c *Client) FindByIngredients(ctx context.Context, names []string, limit int) ([]common.Recipe, error) {
	if !c.Enabled() {
		return nil, ErrSourceDisabled
	}
	if len(names) == 0 {
		return []common.Recipe{}, nil
	}
	if limit <= 0 || limit > c.config.MaxResults {
		limit = c.config.MaxResults
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("ingredients", strings.Join(names, ",")).
		SetQueryParam("number", strconv.Itoa(limit)).
		Get("/recipes/findByIngredients")
	if err != nil {
		return nil, fmt.Errorf("failed to send request to recipe source: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("recipe source returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var result []apiRecipe
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse recipe source response: %w", err)
	}

	recipes := make([]common.Recipe, 0, len(result))
	for _, r := range result {
		recipes = append(recipes, r.toRecipe())
	}

	common.LogInfo("外部食譜搜尋完成",
		zap.Int("ingredients", len(names)),
		zap.Int("results", len(recipes)),
	)
	return recipes, nil
}

func (r apiRecipe) toRecipe() common.Recipe {
	out := common.Recipe{
		ID:        "src-" + strconv.Itoa(r.ID),
		Title:     r.Title,
		SourceURL: r.SourceURL,
	}
	for _, list := range [][]apiIngredient{r.UsedIngredients, r.MissedIngredients} {
		for _, ing := range list {
			raw := ing.Original
			if raw == "" {
				raw = ing.Name
			}
			unit := strings.TrimSpace(ing.Unit)
			if unit == "" {
				unit = ingredient.DefaultUnit
			}
			out.Ingredients = append(out.Ingredients, common.RecipeIngredient{
				RawText:        raw,
				ParsedName:     ing.Name,
				ParsedQuantity: ing.Amount,
				ParsedUnit:     unit,
			})
		}
	}
	return out
}
