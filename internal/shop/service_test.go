package shop

import (
	"context"
	"errors"
	"testing"

	"github.com/mastercodercat/coffee-swap-protocol/internal/token"
)

const (
	testSpender = "shop-svc"
	testOwner   = "owner-addr"
	testBuyer   = "buyer-addr"
	testKey     = "downtown"
)

func newTestService(t *testing.T) (*Service, *token.InMemoryClient) {
	t.Helper()

	tokens := token.NewInMemoryClient(testSpender)
	service := NewService(NewInMemoryRepository(), tokens)

	if _, err := service.CreateShop(context.Background(), testOwner, testKey, nil, nil); err != nil {
		t.Fatalf("create shop: %v", err)
	}
	return service, tokens
}

func fullLedger(t *testing.T, service *Service) {
	t.Helper()

	err := service.LoadIngredients(context.Background(), testOwner, testKey, []IngredientPortion{
		{Ingredient: Beans, Weight: 1000},
		{Ingredient: Water, Weight: 1000},
		{Ingredient: Milk, Weight: 1000},
		{Ingredient: Sugar, Weight: 1000},
	})
	if err != nil {
		t.Fatalf("load ingredients: %v", err)
	}
}

func ledgerWeights(t *testing.T, service *Service) map[Ingredient]uint64 {
	t.Helper()

	portions, err := service.Ingredients(context.Background(), testKey)
	if err != nil {
		t.Fatalf("query ingredients: %v", err)
	}
	out := make(map[Ingredient]uint64, len(portions))
	for _, p := range portions {
		out[p.Ingredient] = p.Weight
	}
	return out
}

// --------------------------------------------------
// Instantiation
// --------------------------------------------------

func TestCreateShopSeedsCatalog(t *testing.T) {
	service, _ := newTestService(t)

	menu, err := service.Menu(context.Background(), testKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(menu) != 3 {
		t.Fatalf("expected 3 menu entries, got %d", len(menu))
	}
	if menu[0].Name != "Cappuccino" || menu[0].Price != 1000 {
		t.Errorf("unexpected first entry: %+v", menu[0])
	}

	recipes, err := service.Recipes(context.Background(), testKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recipes) != 3 {
		t.Fatalf("expected 3 recipes, got %d", len(recipes))
	}

	owner, err := service.Owner(context.Background(), testKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner != testOwner {
		t.Errorf("owner: got %s, want %s", owner, testOwner)
	}

	for kind, w := range ledgerWeights(t, service) {
		if w != 0 {
			t.Errorf("%s: seed ledger should be zeroed, got %d", kind, w)
		}
	}
}

func TestCreateShopDuplicateKey(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.CreateShop(context.Background(), "someone-else", testKey, nil, nil)
	if !errors.Is(err, ErrShopExists) {
		t.Fatalf("expected ErrShopExists, got %v", err)
	}
}

func TestCreateShopCustomCatalog(t *testing.T) {
	service, _ := newTestService(t)

	menu := []CoffeeCup{{Name: "Flat White", Price: 1500}}
	recipes := []CoffeeRecipe{{Ingredients: []IngredientCupShare{
		{Ingredient: Water, Share: 40},
		{Ingredient: Milk, Share: 40},
		{Ingredient: Beans, Share: 20},
	}}}

	state, err := service.CreateShop(context.Background(), testOwner, "uptown", menu, recipes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Menu) != 1 || state.Menu[0].Name != "Flat White" {
		t.Errorf("unexpected menu: %+v", state.Menu)
	}

	// misaligned catalog
	_, err = service.CreateShop(context.Background(), testOwner, "misaligned", menu, nil)
	if !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("expected ErrInvalidParam, got %v", err)
	}
}

func TestCreateShopStrictShares(t *testing.T) {
	tokens := token.NewInMemoryClient(testSpender)
	service := NewService(NewInMemoryRepository(), tokens)
	service.StrictShares = true

	menu := []CoffeeCup{{Name: "Partial", Price: 100}}
	recipes := []CoffeeRecipe{{Ingredients: []IngredientCupShare{
		{Ingredient: Water, Share: 45},
	}}}

	_, err := service.CreateShop(context.Background(), testOwner, testKey, menu, recipes)
	if !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("expected ErrInvalidParam under strict shares, got %v", err)
	}
}

// --------------------------------------------------
// SetPrice
// --------------------------------------------------

func TestSetPriceUnauthorized(t *testing.T) {
	service, _ := newTestService(t)

	err := service.SetPrice(context.Background(), "stranger", testKey, 1, 500)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	price, err := service.Price(context.Background(), testKey, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 1000 {
		t.Errorf("price changed by unauthorized call: %d", price)
	}
}

func TestSetPriceZeroRejected(t *testing.T) {
	service, _ := newTestService(t)

	err := service.SetPrice(context.Background(), testOwner, testKey, 1, 0)
	if !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("expected ErrInvalidParam, got %v", err)
	}

	price, _ := service.Price(context.Background(), testKey, 1)
	if price != 1000 {
		t.Errorf("price changed by invalid call: %d", price)
	}
}

func TestSetPriceUpdatesOnlyTarget(t *testing.T) {
	service, _ := newTestService(t)

	if err := service.SetPrice(context.Background(), testOwner, testKey, 2, 2500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	menu, _ := service.Menu(context.Background(), testKey)
	if menu[1].Price != 2500 {
		t.Errorf("target price: got %d, want 2500", menu[1].Price)
	}
	if menu[0].Price != 1000 || menu[2].Price != 1000 {
		t.Errorf("other prices changed: %+v", menu)
	}
}

func TestSetPriceOutOfRange(t *testing.T) {
	service, _ := newTestService(t)

	for _, id := range []uint64{0, 4} {
		err := service.SetPrice(context.Background(), testOwner, testKey, id, 500)
		if !errors.Is(err, ErrInvalidParam) {
			t.Errorf("id=%d: expected ErrInvalidParam, got %v", id, err)
		}
	}
}

// --------------------------------------------------
// LoadIngredients
// --------------------------------------------------

func TestLoadIngredientsUnauthorized(t *testing.T) {
	service, _ := newTestService(t)

	err := service.LoadIngredients(context.Background(), "stranger", testKey, []IngredientPortion{
		{Ingredient: Beans, Weight: 10},
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLoadIngredientsEmptyListIsNoop(t *testing.T) {
	service, _ := newTestService(t)
	fullLedger(t, service)
	before := ledgerWeights(t, service)

	if err := service.LoadIngredients(context.Background(), testOwner, testKey, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after := ledgerWeights(t, service)
	for kind, w := range before {
		if after[kind] != w {
			t.Errorf("%s: got %d, want %d", kind, after[kind], w)
		}
	}
}

func TestLoadIngredientsRoundTrip(t *testing.T) {
	service, _ := newTestService(t)
	fullLedger(t, service)

	err := service.LoadIngredients(context.Background(), testOwner, testKey, []IngredientPortion{
		{Ingredient: Sugar, Weight: 77},
		{Ingredient: Water, Weight: 23},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	weights := ledgerWeights(t, service)
	if weights[Sugar] != 1077 {
		t.Errorf("sugar: got %d, want 1077", weights[Sugar])
	}
	if weights[Water] != 1023 {
		t.Errorf("water: got %d, want 1023", weights[Water])
	}
	if weights[Beans] != 1000 || weights[Milk] != 1000 {
		t.Errorf("untouched kinds changed: %v", weights)
	}
}

func TestLoadIngredientsZeroWeightRejectsWholeBatch(t *testing.T) {
	service, _ := newTestService(t)
	fullLedger(t, service)

	err := service.LoadIngredients(context.Background(), testOwner, testKey, []IngredientPortion{
		{Ingredient: Beans, Weight: 500},
		{Ingredient: Milk, Weight: 0},
	})
	if !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("expected ErrInvalidParam, got %v", err)
	}

	// the valid portion must not have been applied
	if got := ledgerWeights(t, service)[Beans]; got != 1000 {
		t.Errorf("beans: got %d, want 1000", got)
	}
}

// --------------------------------------------------
// BuyCoffee
// --------------------------------------------------

func TestBuyCoffeeSettles(t *testing.T) {
	service, tokens := newTestService(t)
	fullLedger(t, service)

	tokens.SetBalance(testBuyer, 5000)
	tokens.Approve(testBuyer, testSpender, 5000)

	receipt, err := service.BuyCoffee(context.Background(), testBuyer, testKey, 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	weights := ledgerWeights(t, service)
	want := map[Ingredient]uint64{Water: 775, Beans: 875, Milk: 875, Sugar: 975}
	for kind, w := range want {
		if weights[kind] != w {
			t.Errorf("%s: got %d, want %d", kind, weights[kind], w)
		}
	}

	if receipt.Total != 2000 {
		t.Errorf("total: got %d, want 2000", receipt.Total)
	}
	if receipt.ProductID != 1 || receipt.Cups != 2 || receipt.Buyer != testBuyer {
		t.Errorf("unexpected receipt: %+v", receipt)
	}
	if receipt.ID == "" {
		t.Error("receipt id missing")
	}

	balance, _ := tokens.BalanceOf(context.Background(), testBuyer)
	if balance != 3000 {
		t.Errorf("buyer balance: got %d, want 3000", balance)
	}
	ownerBalance, _ := tokens.BalanceOf(context.Background(), testOwner)
	if ownerBalance != 2000 {
		t.Errorf("owner balance: got %d, want 2000", ownerBalance)
	}
}

func TestBuyCoffeeNotEnoughIngredients(t *testing.T) {
	service, tokens := newTestService(t)
	fullLedger(t, service)

	tokens.SetBalance(testBuyer, 100000)
	tokens.Approve(testBuyer, testSpender, 100000)

	// 10 cups need 1125 water against a stock of 1000
	_, err := service.BuyCoffee(context.Background(), testBuyer, testKey, 1, 10)
	if !errors.Is(err, ErrNotEnoughIngredients) {
		t.Fatalf("expected ErrNotEnoughIngredients, got %v", err)
	}

	for kind, w := range ledgerWeights(t, service) {
		if w != 1000 {
			t.Errorf("%s: ledger changed on failed purchase: %d", kind, w)
		}
	}

	balance, _ := tokens.BalanceOf(context.Background(), testBuyer)
	if balance != 100000 {
		t.Errorf("buyer charged on failed purchase: %d", balance)
	}
}

func TestBuyCoffeeInsufficientFunds(t *testing.T) {
	service, tokens := newTestService(t)
	fullLedger(t, service)

	tokens.SetBalance(testBuyer, 100)
	tokens.Approve(testBuyer, testSpender, 100000)

	_, err := service.BuyCoffee(context.Background(), testBuyer, testKey, 1, 2)
	if !errors.Is(err, token.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// funding failure must leave the ledger untouched
	for kind, w := range ledgerWeights(t, service) {
		if w != 1000 {
			t.Errorf("%s: ledger changed on failed payment: %d", kind, w)
		}
	}
}

func TestBuyCoffeeNoAllowance(t *testing.T) {
	service, tokens := newTestService(t)
	fullLedger(t, service)

	tokens.SetBalance(testBuyer, 100000)

	_, err := service.BuyCoffee(context.Background(), testBuyer, testKey, 1, 2)
	if !errors.Is(err, token.ErrNoAllowance) {
		t.Fatalf("expected ErrNoAllowance, got %v", err)
	}

	for kind, w := range ledgerWeights(t, service) {
		if w != 1000 {
			t.Errorf("%s: ledger changed on failed payment: %d", kind, w)
		}
	}
}

func TestBuyCoffeeInvalidProduct(t *testing.T) {
	service, tokens := newTestService(t)
	fullLedger(t, service)
	tokens.SetBalance(testBuyer, 100000)
	tokens.Approve(testBuyer, testSpender, 100000)

	for _, id := range []uint64{0, 4} {
		_, err := service.BuyCoffee(context.Background(), testBuyer, testKey, id, 1)
		if !errors.Is(err, ErrInvalidParam) {
			t.Errorf("id=%d: expected ErrInvalidParam, got %v", id, err)
		}
	}
}

func TestBuyCoffeeZeroCups(t *testing.T) {
	service, _ := newTestService(t)
	fullLedger(t, service)

	_, err := service.BuyCoffee(context.Background(), testBuyer, testKey, 1, 0)
	if !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("expected ErrInvalidParam, got %v", err)
	}
}

func TestBuyCoffeeUnknownShop(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.BuyCoffee(context.Background(), testBuyer, "nowhere", 1, 1)
	if !errors.Is(err, ErrShopNotFound) {
		t.Fatalf("expected ErrShopNotFound, got %v", err)
	}
}

func TestQueryPriceOutOfRange(t *testing.T) {
	service, _ := newTestService(t)

	for _, id := range []uint64{0, 4} {
		_, err := service.Price(context.Background(), testKey, id)
		if !errors.Is(err, ErrInvalidParam) {
			t.Errorf("id=%d: expected ErrInvalidParam, got %v", id, err)
		}
	}
}
