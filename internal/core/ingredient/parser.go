package ingredient

import (
	"strconv"
	"strings"
	"unicode"

	"recipe-ranker/internal/core/catalog"
	"recipe-ranker/internal/pkg/common"
)

// DefaultUnit 無法解析單位時使用的預設單位
const DefaultUnit = "unit"

var vulgarFractions = map[rune]string{
	'¼': "1/4", '½': "1/2", '¾': "3/4",
	'⅓': "1/3", '⅔': "2/3",
	'⅛': "1/8", '⅜': "3/8", '⅝': "5/8", '⅞': "7/8",
}

// Parser 食材行解析器，例如 "2 cups milk"
type Parser struct {
	units map[string]string
}

// NewParser 依查詢表的單位字典建立解析器
func NewParser(cat *catalog.Catalog) *Parser {
	units := make(map[string]string, len(cat.Units))
	for k, v := range cat.Units {
		units[strings.ToLower(k)] = v
	}
	return &Parser{units: units}
}

// ParseLine 解析自由格式的食材文字
// 無法解析數量時 amount 為 0、單位為 "unit"，不會回傳錯誤
func (p *Parser) ParseLine(raw string) common.RecipeIngredient {
	out := common.RecipeIngredient{RawText: raw, ParsedUnit: DefaultUnit}

	tokens := p.splitTokens(raw)
	i := 0

	amount, consumed := parseAmount(tokens)
	if consumed > 0 {
		out.ParsedQuantity = amount
		i = consumed
		if i < len(tokens) {
			key := strings.ToLower(strings.TrimSuffix(tokens[i], "."))
			if unit, ok := p.units[key]; ok {
				out.ParsedUnit = unit
				i++
			}
		}
	}

	out.ParsedName = strings.TrimSpace(strings.Join(tokens[i:], " "))
	return out
}

// splitTokens 切字，並把 "200g"、"1½" 這類黏在一起的寫法拆開
func (p *Parser) splitTokens(raw string) []string {
	var sb strings.Builder
	for _, r := range raw {
		if frac, ok := vulgarFractions[r]; ok {
			sb.WriteString(" " + frac + " ")
			continue
		}
		sb.WriteRune(r)
	}

	var tokens []string
	for _, tok := range strings.Fields(sb.String()) {
		num, rest := splitNumberPrefix(tok)
		if num != "" && rest != "" {
			if _, ok := p.units[strings.ToLower(rest)]; ok {
				tokens = append(tokens, num, rest)
				continue
			}
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func splitNumberPrefix(tok string) (string, string) {
	idx := strings.IndexFunc(tok, func(r rune) bool {
		return !(unicode.IsDigit(r) || r == '.' || r == '/')
	})
	if idx <= 0 {
		return "", ""
	}
	return tok[:idx], tok[idx:]
}

// parseAmount 解析開頭的數量，支援整數、小數、分數與帶分數（最多兩個字）
func parseAmount(tokens []string) (float64, int) {
	total := 0.0
	consumed := 0
	for consumed < len(tokens) && consumed < 2 {
		v, ok := parseNumber(tokens[consumed])
		if !ok {
			break
		}
		// 帶分數的第二段必須是分數，例如 "1 1/2"
		if consumed == 1 && !strings.Contains(tokens[consumed], "/") {
			break
		}
		total += v
		consumed++
	}
	return total, consumed
}

func parseNumber(tok string) (float64, bool) {
	// 範圍 "2-3" 取下限
	if idx := strings.Index(tok, "-"); idx > 0 {
		tok = tok[:idx]
	}
	if tok == "" || !(unicode.IsDigit(rune(tok[0])) || tok[0] == '.') {
		return 0, false
	}
	if num, den, ok := strings.Cut(tok, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
