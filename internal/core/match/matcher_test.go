package match

import (
	"testing"
	"time"

	"recipe-ranker/internal/core/catalog"
	"recipe-ranker/internal/core/ingredient"
	"recipe-ranker/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher() *Matcher {
	cat := catalog.Default()
	n := ingredient.NewNormalizer(cat)
	return NewMatcher(cat, n, ingredient.NewClassifier(cat, n))
}

func ing(name string) common.RecipeIngredient {
	return common.RecipeIngredient{RawText: name, ParsedName: name}
}

func expiresIn(days int) *time.Time {
	t := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return &t
}

func TestMatch_ExactContainment(t *testing.T) {
	m := newTestMatcher()
	pantry := m.Prepare([]common.PantryItem{
		{Name: "whole milk", Quantity: common.Quantity{Amount: 1, Unit: "cup"}},
	})

	recipe := common.Recipe{
		ID:          "r1",
		Ingredients: []common.RecipeIngredient{{RawText: "2 cups milk"}},
	}
	summary := m.MatchRecipe(recipe, pantry)

	require.Len(t, summary.Outcomes, 1)
	got := summary.Outcomes[0]
	assert.Equal(t, KindExact, got.Kind)
	assert.Equal(t, 1.0, got.Confidence)
	require.NotNil(t, got.Item)
	assert.Equal(t, "whole milk", got.Item.Name)
	assert.Equal(t, "milk", got.NormalizedName)
	assert.Equal(t, 1, summary.AvailableCount)
	assert.Equal(t, 0, summary.MissingCount)
	assert.Equal(t, 1.0, summary.MatchScore)
}

func TestMatch_SubstitutionWhenNoDairy(t *testing.T) {
	m := newTestMatcher()
	pantry := m.Prepare([]common.PantryItem{
		{Name: "vegetable oil"},
		{Name: "rice"},
	})

	got := m.Match(ing("butter"), pantry)

	assert.Equal(t, KindSubstitution, got.Kind)
	assert.Equal(t, 0.4, got.Confidence)
	assert.Equal(t, "oil", got.SubstitutionSuggestion)
	require.NotNil(t, got.Item)
	assert.Equal(t, "vegetable oil", got.Item.Name)
	assert.Equal(t, 0, got.PantryIndex)
}

func TestMatch_CategoryNeedsSharedToken(t *testing.T) {
	m := newTestMatcher()
	pantry := m.Prepare([]common.PantryItem{
		{Name: "yogurt"},
		{Name: "cheddar cheese"},
	})

	got := m.Match(ing("goat cheese"), pantry)
	assert.Equal(t, KindCategory, got.Kind)
	assert.Equal(t, 0.6, got.Confidence)
	require.NotNil(t, got.Item)
	assert.Equal(t, "cheddar cheese", got.Item.Name)

	// 同為 dairy，但沒有共同的字
	assert.Equal(t, KindMissing, m.Match(ing("mozzarella"), m.Prepare([]common.PantryItem{{Name: "yogurt"}})).Kind)
}

func TestMatch_ExactBeatsLowerTiers(t *testing.T) {
	m := newTestMatcher()
	pantry := m.Prepare([]common.PantryItem{
		{Name: "margarine"},
		{Name: "salted butter"},
	})

	got := m.Match(ing("butter"), pantry)
	assert.Equal(t, KindExact, got.Kind)
	assert.Equal(t, "salted butter", got.Item.Name)
	assert.Empty(t, got.SubstitutionSuggestion)
}

func TestMatch_ExactPicksSoonestExpiry(t *testing.T) {
	m := newTestMatcher()
	pantry := m.Prepare([]common.PantryItem{
		{Name: "milk"},
		{Name: "skim milk", ExpiryDate: expiresIn(3)},
		{Name: "oat milk", ExpiryDate: expiresIn(1)},
		{Name: "milk", ExpiryDate: expiresIn(1)},
	})

	got := m.Match(ing("milk"), pantry)
	assert.Equal(t, KindExact, got.Kind)
	assert.Equal(t, 2, got.PantryIndex)
}

func TestMatch_ExactIsBidirectionalSubstring(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		recipe string
		pantry string
	}{
		{"butter", "buttermilk"},
		{"buttermilk", "butter"},
		{"bread", "breadcrumbs"},
		{"milk", "Whole Milk"},
		{"2 eggs", "eggplant"},
	}
	for _, tt := range tests {
		t.Run(tt.recipe+"/"+tt.pantry, func(t *testing.T) {
			got := m.Match(ing(tt.recipe), m.Prepare([]common.PantryItem{{Name: tt.pantry}}))
			assert.Equal(t, KindExact, got.Kind)
			assert.Equal(t, 1.0, got.Confidence)
			require.NotNil(t, got.Item)
			assert.Equal(t, tt.pantry, got.Item.Name)
		})
	}
}

func TestMatch_NoSharedTextIsMissing(t *testing.T) {
	m := newTestMatcher()
	pantry := m.Prepare([]common.PantryItem{{Name: "rice"}})

	got := m.Match(ing("eggs"), pantry)
	assert.Equal(t, KindMissing, got.Kind)
	assert.Nil(t, got.Item)
	assert.Equal(t, -1, got.PantryIndex)
	assert.Equal(t, 0.0, got.Confidence)
}

func TestPrepare_CanonicalizesCategory(t *testing.T) {
	m := newTestMatcher()
	p := m.Prepare([]common.PantryItem{
		{Name: "cheddar cheese", Category: "Dairy"},
		{Name: "ground beef", Category: "meat"},
		{Name: "apples", Category: "pet food"},
		{Name: "mystery", Category: "pet food"},
	})

	items := p.Items()
	assert.Equal(t, common.CategoryDairy, items[0].Category)
	assert.Equal(t, common.CategoryMeat, items[1].Category)
	assert.Equal(t, common.CategoryProduce, items[2].Category)
	assert.Equal(t, common.CategoryOther, items[3].Category)

	// 大寫分類仍能進入 Category 比對
	got := m.Match(ing("goat cheese"), m.Prepare([]common.PantryItem{{Name: "cheddar cheese", Category: "DAIRY"}}))
	assert.Equal(t, KindCategory, got.Kind)
}

func TestMatch_SubstitutionKeyInsideName(t *testing.T) {
	m := newTestMatcher()
	pantry := m.Prepare([]common.PantryItem{{Name: "honey"}})

	got := m.Match(ing("brown sugar"), pantry)
	assert.Equal(t, KindSubstitution, got.Kind)
	assert.Equal(t, "honey", got.SubstitutionSuggestion)

	got = m.Match(ing("unsalted butter"), m.Prepare([]common.PantryItem{{Name: "coconut oil"}}))
	assert.Equal(t, KindSubstitution, got.Kind)
	assert.Equal(t, "oil", got.SubstitutionSuggestion)
}

func TestMatch_EmptyInputs(t *testing.T) {
	m := newTestMatcher()

	assert.Equal(t, KindMissing, m.Match(ing(""), m.Prepare([]common.PantryItem{{Name: "milk"}})).Kind)
	assert.Equal(t, KindMissing, m.Match(ing("milk"), m.Prepare(nil)).Kind)
	assert.Equal(t, KindMissing, m.Match(ing("milk"), nil).Kind)
}

func TestMatchRecipe_ZeroIngredients(t *testing.T) {
	m := newTestMatcher()

	summary := m.MatchRecipe(common.Recipe{ID: "empty"}, m.Prepare(nil))

	assert.Equal(t, 0, summary.TotalCount)
	assert.Equal(t, 1.0, summary.MatchScore)
	assert.NotNil(t, summary.Outcomes)
}

func TestMatchRecipe_CountsAddUp(t *testing.T) {
	m := newTestMatcher()
	pantry := m.Prepare([]common.PantryItem{
		{Name: "chicken breast"},
		{Name: "garlic"},
		{Name: "olive oil"},
	})
	recipe := common.Recipe{
		ID: "r2",
		Ingredients: []common.RecipeIngredient{
			{RawText: "1 lb chicken"},
			{RawText: "3 cloves garlic, minced"},
			{RawText: "2 tbsp butter"},
			{RawText: "1 cup saffron rice"},
			{RawText: "salt to taste"},
		},
	}

	summary := m.MatchRecipe(recipe, pantry)

	assert.Equal(t, summary.TotalCount, summary.AvailableCount+summary.MissingCount)
	assert.Equal(t, 5, summary.TotalCount)
	assert.Equal(t, 3, summary.AvailableCount)
	assert.InDelta(t, 0.6, summary.MatchScore, 1e-9)
	assert.Equal(t, []string{"1 cup saffron rice", "salt to taste"}, summary.MissingNames())
	assert.Len(t, summary.ExactItems(), 2)
}

func TestMatch_Deterministic(t *testing.T) {
	m := newTestMatcher()
	pantry := m.Prepare([]common.PantryItem{
		{Name: "vegetable oil"},
		{Name: "cheddar cheese", ExpiryDate: expiresIn(2)},
	})
	for _, name := range []string{"butter", "goat cheese", "oil", "flour"} {
		assert.Equal(t, m.Match(ing(name), pantry), m.Match(ing(name), pantry))
	}
}

func TestPrepare_DoesNotMutateCaller(t *testing.T) {
	m := newTestMatcher()
	items := []common.PantryItem{{Name: "Fresh Tomatoes"}}

	p := m.Prepare(items)

	assert.Empty(t, items[0].NormalizedName)
	assert.Empty(t, items[0].Category)
	assert.Equal(t, "tomato", p.Items()[0].NormalizedName)
	assert.Equal(t, common.CategoryProduce, p.Items()[0].Category)
}
