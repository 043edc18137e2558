package shop

// Ingredient is the closed set of tracked raw ingredients.
type Ingredient string

const (
	Sugar Ingredient = "sugar"
	Milk  Ingredient = "milk"
	Water Ingredient = "water"
	Beans Ingredient = "beans"
)

// SharePrecision is the denominator for recipe shares (100 = 100%).
const SharePrecision uint64 = 100

// AverageCupWeight converts a cup count into total order weight.
const AverageCupWeight uint64 = 250

const defaultPrice uint64 = 1000

func (i Ingredient) Valid() bool {
	switch i {
	case Sugar, Milk, Water, Beans:
		return true
	}
	return false
}

// IngredientPortion is one ledger entry: remaining weight for a kind.
type IngredientPortion struct {
	Ingredient Ingredient `json:"ingredient"`
	Weight     uint64     `json:"weight"`
}

// IngredientCupShare is one recipe entry: the ingredient's weight
// contribution in hundredths of the total order weight.
type IngredientCupShare struct {
	Ingredient Ingredient `json:"ingredient"`
	Share      uint64     `json:"share"`
}

type CoffeeRecipe struct {
	Ingredients []IngredientCupShare `json:"ingredients"`
}

type CoffeeCup struct {
	Name  string `json:"name"`
	Price uint64 `json:"price"`
}

// State is the full per-shop record: owner identity, menu, recipes aligned
// 1:1 with the menu by position, and the ingredient ledger.
type State struct {
	Owner   string              `json:"owner"`
	Menu    []CoffeeCup         `json:"menu"`
	Recipes []CoffeeRecipe      `json:"recipes"`
	Ledger  []IngredientPortion `json:"ingredient_portions"`
}

// Receipt is emitted for every settled purchase.
type Receipt struct {
	ID        string `json:"id"`
	ShopKey   string `json:"shop_key"`
	ProductID uint64 `json:"product_id"`
	Cups      uint64 `json:"cups"`
	Buyer     string `json:"buyer"`
	Total     uint64 `json:"total"`
}

// SeedState builds the fixed starting catalog: three cups at the default
// price, their recipes, and a zeroed ledger holding every tracked kind.
func SeedState(owner string) *State {
	return &State{
		Owner: owner,
		Menu: []CoffeeCup{
			{Name: "Cappuccino", Price: defaultPrice},
			{Name: "Late", Price: defaultPrice},
			{Name: "Americano", Price: defaultPrice},
		},
		Recipes: []CoffeeRecipe{
			{Ingredients: []IngredientCupShare{
				{Ingredient: Water, Share: 45},
				{Ingredient: Beans, Share: 25},
				{Ingredient: Milk, Share: 25},
				{Ingredient: Sugar, Share: 5},
			}},
			{Ingredients: []IngredientCupShare{
				{Ingredient: Beans, Share: 2},
				{Ingredient: Water, Share: 45},
				{Ingredient: Beans, Share: 25},
			}},
			{Ingredients: []IngredientCupShare{
				{Ingredient: Water, Share: 70},
				{Ingredient: Beans, Share: 25},
				{Ingredient: Sugar, Share: 5},
			}},
		},
		Ledger: []IngredientPortion{
			{Ingredient: Beans, Weight: 0},
			{Ingredient: Water, Weight: 0},
			{Ingredient: Milk, Weight: 0},
			{Ingredient: Sugar, Weight: 0},
		},
	}
}

// Clone deep-copies the state so repositories can hand out snapshots
// without sharing slices with callers.
func (s *State) Clone() *State {
	out := &State{
		Owner:   s.Owner,
		Menu:    make([]CoffeeCup, len(s.Menu)),
		Recipes: make([]CoffeeRecipe, len(s.Recipes)),
		Ledger:  make([]IngredientPortion, len(s.Ledger)),
	}
	copy(out.Menu, s.Menu)
	copy(out.Ledger, s.Ledger)
	for i, r := range s.Recipes {
		ings := make([]IngredientCupShare, len(r.Ingredients))
		copy(ings, r.Ingredients)
		out.Recipes[i] = CoffeeRecipe{Ingredients: ings}
	}
	return out
}
