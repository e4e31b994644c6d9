package ingredient

import (
	"strings"
	"unicode"

	"recipe-ranker/internal/core/catalog"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer 食材名稱正規化器
// 產生可比較的鍵：小寫、去除重音、去除處理方式與包裝用字、單數化
type Normalizer struct {
	modifiers  map[string]struct{}
	packaging  map[string]struct{}
	irregulars map[string]string
	exceptions map[string]struct{}
}

// NewNormalizer 依查詢表建立正規化器
func NewNormalizer(cat *catalog.Catalog) *Normalizer {
	n := &Normalizer{
		modifiers:  toSet(cat.Modifiers),
		packaging:  toSet(cat.PackagingWords),
		irregulars: make(map[string]string, len(cat.Irregulars)),
		exceptions: toSet(cat.PluralExceptions),
	}
	for k, v := range cat.Irregulars {
		n.irregulars[strings.ToLower(k)] = strings.ToLower(v)
	}
	return n
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return set
}

// Normalize 將原始文字轉為正規化名稱
func (n *Normalizer) Normalize(text string) string {
	text = strings.ToLower(foldAccents(text))
	text = stripParentheticals(text)

	text = strings.Map(func(r rune) rune {
		switch {
		case r == '\'' || r == '’':
			return -1
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return r
		default:
			return ' '
		}
	}, text)

	tokens := strings.Fields(text)
	kept := make([]string, 0, len(tokens))
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if isNumeric(tok) {
			continue
		}
		words = append(words, tok)
		if _, ok := n.modifiers[tok]; ok {
			continue
		}
		if _, ok := n.packaging[tok]; ok {
			continue
		}
		kept = append(kept, tok)
	}
	// 全部都是修飾詞時保留原字，避免 "fresh" 變成空字串
	if len(kept) == 0 {
		kept = words
	}

	for i, tok := range kept {
		kept[i] = n.singularize(tok)
	}
	return strings.Join(kept, " ")
}

// singularize 英文複數轉單數
func (n *Normalizer) singularize(w string) string {
	if _, ok := n.exceptions[w]; ok {
		return w
	}
	if s, ok := n.irregulars[w]; ok {
		return s
	}
	if len(w) <= 3 {
		return w
	}
	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "oes"),
		strings.HasSuffix(w, "ches"),
		strings.HasSuffix(w, "shes"),
		strings.HasSuffix(w, "xes"),
		strings.HasSuffix(w, "sses"):
		return w[:len(w)-2]
	case strings.HasSuffix(w, "ss"), strings.HasSuffix(w, "us"), strings.HasSuffix(w, "is"):
		return w
	case strings.HasSuffix(w, "s"):
		return w[:len(w)-1]
	}
	return w
}

// foldAccents 去除重音符號，例如 "jalapeño" -> "jalapeno"
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// stripParentheticals 移除括號內容，例如 "milk (2%)"
func stripParentheticals(s string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '(' || r == '[':
			depth++
			sb.WriteRune(' ')
		case (r == ')' || r == ']') && depth > 0:
			depth--
		case depth == 0:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func isNumeric(tok string) bool {
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return tok != ""
}
