package ingredient

import (
	"testing"

	"recipe-ranker/internal/core/catalog"
	"recipe-ranker/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(catalog.Default())
}

func TestNormalize(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim and collapse", "  Fresh   Basil ", "basil"},
		{"whole modifier", "whole milk", "milk"},
		{"whole wheat keeps wheat", "whole wheat flour", "wheat flour"},
		{"multiple modifiers and plural", "Finely Chopped Onions", "onion"},
		{"parenthetical", "Tomatoes (diced)", "tomato"},
		{"packaging noise", "1 can of tomatoes", "tomato"},
		{"accents folded", "Jalapeño", "jalapeno"},
		{"ies plural", "berries", "berry"},
		{"ches plural", "peaches", "peach"},
		{"plural exception", "molasses", "molasses"},
		{"irregular plural", "bay leaves", "bay leaf"},
		{"only a modifier", "fresh", "fresh"},
		{"empty", "", ""},
		{"numbers only", "2 3", ""},
		{"apostrophe", "Baker's Yeast", "baker yeast"},
		{"hyphen", "extra-virgin olive oil", "extra virgin olive oil"},
		{"substring of modifier untouched", "wholesome grains", "wholesome grain"},
		{"ground beef", "ground beef", "beef"},
		{"double s kept", "swiss chard", "swiss chard"},
		{"glass-like ss", "watercress", "watercress"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	n := newTestNormalizer()
	in := "2 Large, Finely-Diced Red Onions (about 300g)"
	first := n.Normalize(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, n.Normalize(in))
	}
	assert.Equal(t, "red onion", first)
}

func TestClassify(t *testing.T) {
	n := newTestNormalizer()
	c := NewClassifier(catalog.Default(), n)

	tests := []struct {
		in   string
		want common.Category
	}{
		{"whole milk", common.CategoryDairy},
		{"apples", common.CategoryProduce},
		{"black pepper", common.CategorySpices},
		{"red bell pepper", common.CategoryProduce},
		{"eggplant", common.CategoryProduce},
		{"eggs", common.CategoryDairy},
		{"vegetable oil", common.CategoryCondiments},
		{"chocolate chip", common.CategorySnacks},
		{"spaghetti", common.CategoryGrains},
		{"chicken thighs", common.CategoryMeat},
		{"xyzzy", common.CategoryOther},
		{"", common.CategoryOther},
		// 表格順序決定：produce 在 condiments 之前
		{"tomato sauce", common.CategoryProduce},
		// dairy 在 snacks 之前
		{"peanut butter", common.CategoryDairy},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(n.Normalize(tt.in)))
		})
	}
}

func TestClassify_TableIsInjected(t *testing.T) {
	cat := catalog.Default().Clone()
	cat.Categories = []catalog.CategoryRule{
		{Category: common.CategorySnacks, Keywords: []string{"peanut"}},
		{Category: common.CategoryDairy, Keywords: []string{"butter"}},
	}
	n := NewNormalizer(cat)
	c := NewClassifier(cat, n)

	assert.Equal(t, common.CategorySnacks, c.Classify("peanut butter"))
	assert.Equal(t, common.CategoryDairy, c.Classify("butter"))
	assert.Equal(t, common.CategoryOther, c.Classify("milk"))
}

func TestParseLine(t *testing.T) {
	p := NewParser(catalog.Default())

	tests := []struct {
		raw      string
		quantity float64
		unit     string
		name     string
	}{
		{"2 cups milk", 2, "cup", "milk"},
		{"1 1/2 tbsp olive oil", 1.5, "tbsp", "olive oil"},
		{"½ cup sugar", 0.5, "cup", "sugar"},
		{"1½ cups flour", 1.5, "cup", "flour"},
		{"200g butter", 200, "g", "butter"},
		{"3 eggs", 3, DefaultUnit, "eggs"},
		{"2-3 cloves garlic", 2, "clove", "garlic"},
		{"0.25 lb. bacon", 0.25, "lb", "bacon"},
		{"salt to taste", 0, DefaultUnit, "salt to taste"},
		{"a pinch of salt", 0, DefaultUnit, "a pinch of salt"},
		{"nan bread", 0, DefaultUnit, "nan bread"},
		{"1/0 cup water", 0, DefaultUnit, "1/0 cup water"},
		{"", 0, DefaultUnit, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := p.ParseLine(tt.raw)
			assert.Equal(t, tt.raw, got.RawText)
			assert.InDelta(t, tt.quantity, got.ParsedQuantity, 1e-9)
			assert.Equal(t, tt.unit, got.ParsedUnit)
			assert.Equal(t, tt.name, got.ParsedName)
		})
	}
}

func TestContainsPhrase(t *testing.T) {
	assert.True(t, ContainsPhrase(Tokens("whole wheat flour"), Tokens("wheat flour")))
	assert.True(t, ContainsPhrase(Tokens("milk"), Tokens("milk")))
	assert.False(t, ContainsPhrase(Tokens("eggplant"), Tokens("egg")))
	assert.False(t, ContainsPhrase(Tokens("flour wheat"), Tokens("wheat flour")))
	assert.False(t, ContainsPhrase(Tokens("milk"), nil))

	assert.True(t, ContainsEither("milk", "oat milk"))
	assert.True(t, ContainsEither("breadcrumb", "bread"))
	assert.False(t, ContainsEither("milk", "rice"))
	assert.False(t, ContainsEither("", "milk"))
	assert.False(t, ContainsEither("milk", ""))
	assert.True(t, SharesToken(Tokens("cheddar cheese"), Tokens("goat cheese")))
	assert.False(t, SharesToken(Tokens("cheddar"), Tokens("goat cheese")))
}
