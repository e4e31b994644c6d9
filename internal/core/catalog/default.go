package catalog

import (
	"recipe-ranker/internal/pkg/common"
)

// Default 回傳內建的查詢表
func Default() *Catalog {
	return &Catalog{
		Modifiers: []string{
			"fresh", "freshly", "chopped", "minced", "sliced", "diced", "whole",
			"ground", "finely", "thinly", "roughly", "coarsely", "grated",
			"shredded", "peeled", "crushed", "cubed", "halved", "quartered",
			"softened", "melted", "beaten", "large", "small", "medium",
			"boneless", "skinless", "organic", "ripe", "optional", "to", "taste",
		},
		PackagingWords: []string{
			"can", "jar", "package", "pack", "packet", "bag", "box", "bottle",
			"carton", "container", "tin", "pouch", "tub", "of",
		},
		Irregulars: map[string]string{
			"leaves":   "leaf",
			"loaves":   "loaf",
			"halves":   "half",
			"knives":   "knife",
			"potatoes": "potato",
			"tomatoes": "tomato",
			"cookies":  "cookie",
			"brownies": "brownie",
			"veggies":  "veggie",
		},
		PluralExceptions: []string{
			"molasses", "asparagus", "hummus", "couscous", "swiss", "citrus",
			"brussels", "series", "species",
		},
		Units: map[string]string{
			"cup": "cup", "cups": "cup", "c": "cup",
			"tablespoon": "tbsp", "tablespoons": "tbsp", "tbsp": "tbsp", "tbs": "tbsp",
			"teaspoon": "tsp", "teaspoons": "tsp", "tsp": "tsp",
			"gram": "g", "grams": "g", "g": "g",
			"kilogram": "kg", "kilograms": "kg", "kg": "kg",
			"milliliter": "ml", "milliliters": "ml", "ml": "ml",
			"liter": "l", "liters": "l", "l": "l",
			"ounce": "oz", "ounces": "oz", "oz": "oz",
			"pound": "lb", "pounds": "lb", "lb": "lb", "lbs": "lb",
			"pinch": "pinch", "pinches": "pinch",
			"dash": "dash", "dashes": "dash",
			"clove": "clove", "cloves": "clove",
			"slice": "slice", "slices": "slice",
			"stick": "stick", "sticks": "stick",
			"piece": "piece", "pieces": "piece",
			"bunch": "bunch", "bunches": "bunch",
			"handful": "handful", "handfuls": "handful",
			"pint": "pint", "pints": "pint",
			"quart": "quart", "quarts": "quart",
			"gallon": "gallon", "gallons": "gallon",
			"can": "can", "cans": "can",
		},
		Categories: []CategoryRule{
			{Category: common.CategoryProduce, Keywords: []string{
				"apple", "banana", "orange", "lemon", "lime", "avocado", "tomato",
				"potato", "onion", "garlic", "lettuce", "spinach", "kale", "broccoli",
				"carrot", "celery", "cucumber", "bell pepper", "jalapeno", "mushroom",
				"berry", "strawberry", "blueberry", "raspberry", "grape", "mango",
				"peach", "pear", "cilantro", "basil", "parsley", "ginger", "zucchini",
				"asparagus", "cabbage", "cauliflower", "eggplant", "squash",
				"scallion", "shallot", "leek", "corn", "pea", "green bean",
			}},
			{Category: common.CategoryDairy, Keywords: []string{
				"milk", "cheese", "butter", "yogurt", "cream", "egg", "cheddar",
				"mozzarella", "parmesan", "ghee", "buttermilk", "kefir", "margarine",
			}},
			{Category: common.CategoryMeat, Keywords: []string{
				"chicken", "beef", "pork", "turkey", "bacon", "sausage", "ham",
				"steak", "lamb", "salmon", "shrimp", "tuna", "fish", "cod",
				"tilapia", "crab", "lobster", "prosciutto", "anchovy",
			}},
			{Category: common.CategoryGrains, Keywords: []string{
				"rice", "pasta", "spaghetti", "noodle", "oat", "quinoa",
				"flour", "couscous", "barley", "macaroni", "penne", "cereal",
			}},
			{Category: common.CategoryBakery, Keywords: []string{
				"bread", "bagel", "tortilla", "bun", "roll", "baguette", "croissant",
				"pita", "muffin",
			}},
			{Category: common.CategoryCondiments, Keywords: []string{
				"ketchup", "mustard", "mayonnaise", "mayo", "soy sauce", "vinegar",
				"oil", "honey", "syrup", "jam", "salsa", "sauce", "dressing", "sugar",
			}},
			{Category: common.CategorySpices, Keywords: []string{
				"salt", "pepper", "cumin", "paprika", "cinnamon", "oregano", "thyme",
				"rosemary", "nutmeg", "chili powder", "turmeric", "bay leaf",
				"vanilla", "clove", "seasoning",
			}},
			{Category: common.CategoryCanned, Keywords: []string{
				"canned", "bean", "chickpea", "lentil", "broth", "stock",
			}},
			{Category: common.CategoryFrozen, Keywords: []string{
				"frozen", "ice",
			}},
			{Category: common.CategorySnacks, Keywords: []string{
				"chip", "cracker", "cookie", "pretzel", "popcorn", "nut", "almond",
				"peanut", "walnut", "cashew", "chocolate",
			}},
			{Category: common.CategoryBeverages, Keywords: []string{
				"juice", "coffee", "tea", "soda", "water", "wine", "beer",
			}},
		},
		Substitutions: map[string][]string{
			"butter":        {"margarine", "oil", "coconut oil"},
			"milk":          {"cream", "yogurt"},
			"buttermilk":    {"milk", "yogurt"},
			"cream":         {"milk", "half and half"},
			"sour cream":    {"yogurt"},
			"yogurt":        {"sour cream"},
			"egg":           {"flaxseed", "applesauce", "banana"},
			"sugar":         {"honey", "maple syrup", "agave"},
			"brown sugar":   {"sugar", "honey"},
			"flour":         {"almond flour", "oat"},
			"lemon":         {"lime", "vinegar"},
			"lemon juice":   {"lime juice", "vinegar"},
			"onion":         {"shallot", "leek", "scallion"},
			"rice":          {"quinoa", "couscous"},
			"pasta":         {"noodle", "rice"},
			"soy sauce":     {"tamari", "salt"},
			"oil":           {"butter"},
			"chicken broth": {"vegetable broth", "stock"},
		},
		LossRates: map[common.Category]float64{
			common.CategoryProduce:    0.30,
			common.CategoryDairy:      0.20,
			common.CategoryMeat:       0.18,
			common.CategoryGrains:     0.10,
			common.CategoryBakery:     0.25,
			common.CategoryCondiments: 0.08,
			common.CategorySpices:     0.05,
			common.CategoryCanned:     0.05,
			common.CategoryFrozen:     0.10,
			common.CategorySnacks:     0.12,
			common.CategoryBeverages:  0.10,
			common.CategoryOther:      0.15,
		},
		DefaultLossRate: 0.15,
		Weights: FactorWeights{
			FavoriteIngredient: 3.0,
			PreferredCuisine:   2.5,
			DietaryMatch:       5.0,
			CookingTimeFits:    2.0,
			UsesExpiringItem:   3.5,
			DislikedCuisine:    -4.0,
			DislikedIngredient: -3.0,
			TooComplex:         -2.0,
			Allergen:           -10.0,
		},
	}
}
