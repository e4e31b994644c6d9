package rank

import (
	"testing"
	"time"

	"recipe-ranker/internal/core/catalog"
	"recipe-ranker/internal/core/ingredient"
	"recipe-ranker/internal/core/match"
	"recipe-ranker/internal/core/score"
	"recipe-ranker/internal/core/waste"
	"recipe-ranker/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(id string, total float64, vetoed bool) Candidate {
	return Candidate{
		Recipe:    common.Recipe{ID: id},
		Breakdown: score.ScoreBreakdown{Total: total, IsVetoed: vetoed},
		Summary:   match.RecipeMatchSummary{TotalCount: 1, AvailableCount: 1, MatchScore: 1},
	}
}

func ids(ranked []RankedRecipe) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Recipe.ID
	}
	return out
}

func TestRank_VetoedSortLast(t *testing.T) {
	input := []Candidate{
		candidate("vetoed", 100, true),
		candidate("low", -8, false),
		candidate("high", 12, false),
	}

	got := Rank(input)

	assert.Equal(t, []string{"high", "low", "vetoed"}, ids(got))
	assert.Equal(t, 1, got[0].Position)
	assert.Equal(t, 2, got[0].InputIndex)
	// 輸入不被修改
	assert.Equal(t, "vetoed", input[0].Recipe.ID)
}

func TestRank_TieBreakKeys(t *testing.T) {
	liked := candidate("liked", 5, false)
	liked.Liked = true

	expiring := candidate("expiring", 5, false)
	expiring.UsesExpiring = true

	perfect := candidate("perfect", 5, false)

	partialHigh := candidate("partial-high", 5, false)
	partialHigh.Summary = match.RecipeMatchSummary{TotalCount: 4, AvailableCount: 3, MissingCount: 1, MatchScore: 0.75}

	partialLow := candidate("partial-low", 5, false)
	partialLow.Summary = match.RecipeMatchSummary{TotalCount: 2, AvailableCount: 1, MissingCount: 1, MatchScore: 0.5}

	fewerMissing := candidate("fewer-missing", 5, false)
	fewerMissing.Summary = match.RecipeMatchSummary{TotalCount: 2, AvailableCount: 1, MissingCount: 1, MatchScore: 0.5}
	moreMissing := candidate("more-missing", 5, false)
	moreMissing.Summary = match.RecipeMatchSummary{TotalCount: 4, AvailableCount: 2, MissingCount: 2, MatchScore: 0.5}

	got := Rank([]Candidate{moreMissing, partialLow, perfect, fewerMissing, partialHigh, expiring, liked})

	assert.Equal(t, []string{
		"liked", "expiring", "perfect", "partial-high", "partial-low", "fewer-missing", "more-missing",
	}, ids(got))
}

func TestRank_StableForEqualKeys(t *testing.T) {
	input := []Candidate{
		candidate("a", 1, false),
		candidate("b", 1, false),
		candidate("c", 1, false),
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids(Rank(input)))
}

func TestRank_VetoedBlockKeepsOwnOrder(t *testing.T) {
	input := []Candidate{
		candidate("v1", -19, true),
		candidate("ok", -30, false),
		candidate("v2", -19, true),
	}
	assert.Equal(t, []string{"ok", "v1", "v2"}, ids(Rank(input)))
}

func TestRank_Empty(t *testing.T) {
	got := Rank(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, Recipes(got))
}

func TestRecipes(t *testing.T) {
	got := Recipes(Rank([]Candidate{candidate("x", 0, false), candidate("y", 3, false)}))
	require.Len(t, got, 2)
	assert.Equal(t, "y", got[0].ID)
}

func TestUsesAtRiskItem_CountsEveryReferencedItem(t *testing.T) {
	cat := catalog.Default()
	n := ingredient.NewNormalizer(cat)
	m := match.NewMatcher(cat, n, ingredient.NewClassifier(cat, n))
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	p := waste.NewPrioritizer(cat, waste.WithClock(func() time.Time { return now }))

	pantry := m.Prepare([]common.PantryItem{
		{Name: "cheddar cheese", ExpiryDate: &now},
		{Name: "rice"},
	})
	recipe := common.Recipe{
		ID:          "mac",
		Ingredients: []common.RecipeIngredient{{RawText: "goat cheese"}, {RawText: "rice"}},
	}
	summary := m.MatchRecipe(recipe, pantry)
	require.Equal(t, match.KindCategory, summary.Outcomes[0].Kind)

	assert.True(t, UsesAtRiskItem(summary, p))
	// 評分因子只看 Exact
	assert.False(t, score.UsesExpiringItem(summary, p))

	fresh := m.MatchRecipe(common.Recipe{ID: "plain", Ingredients: []common.RecipeIngredient{{RawText: "rice"}}}, pantry)
	assert.False(t, UsesAtRiskItem(fresh, p))
	assert.False(t, UsesAtRiskItem(m.MatchRecipe(common.Recipe{ID: "empty"}, pantry), p))
}
