package shop

import (
	"fmt"
	"math/bits"
)

// mul64 is a checked multiply. cup counts are unbounded caller input, so
// every multiplication on the weight/price path goes through here.
func mul64(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

func add64(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0
}

// RequiredWeights computes the per-kind weight needed to brew cupCount cups
// of the given recipe. Total order weight is cupCount × AverageCupWeight;
// each entry contributes floor(total × share / SharePrecision). Truncation
// under-reserves, so rounding always favors the shop. Entries referencing
// the same kind accumulate.
func RequiredWeights(recipe CoffeeRecipe, cupCount uint64) (map[Ingredient]uint64, error) {
	total, ok := mul64(cupCount, AverageCupWeight)
	if !ok {
		return nil, fmt.Errorf("%w: order weight overflow", ErrInternal)
	}

	required := make(map[Ingredient]uint64, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		scaled, ok := mul64(total, ing.Share)
		if !ok {
			return nil, fmt.Errorf("%w: ingredient weight overflow", ErrInternal)
		}
		w := scaled / SharePrecision

		sum, ok := add64(required[ing.Ingredient], w)
		if !ok {
			return nil, fmt.Errorf("%w: ingredient weight overflow", ErrInternal)
		}
		required[ing.Ingredient] = sum
	}
	return required, nil
}

// ValidateRecipe checks a recipe at catalog-load time. Every share must be
// in (0, SharePrecision] and the shares together must not exceed
// SharePrecision. With strict set, the shares must sum to SharePrecision
// exactly; otherwise the remainder is treated as untracked filler.
func ValidateRecipe(recipe CoffeeRecipe, strict bool) error {
	if len(recipe.Ingredients) == 0 {
		return fmt.Errorf("%w: empty recipe", ErrInvalidParam)
	}

	var sum uint64
	for _, ing := range recipe.Ingredients {
		if !ing.Ingredient.Valid() {
			return fmt.Errorf("%w: unknown ingredient %q", ErrInvalidParam, ing.Ingredient)
		}
		if ing.Share == 0 || ing.Share > SharePrecision {
			return fmt.Errorf("%w: share %d out of range", ErrInvalidParam, ing.Share)
		}
		sum += ing.Share
		if sum > SharePrecision {
			return fmt.Errorf("%w: recipe shares exceed %d", ErrInvalidParam, SharePrecision)
		}
	}

	if strict && sum != SharePrecision {
		return fmt.Errorf("%w: recipe shares sum to %d, want %d", ErrInvalidParam, sum, SharePrecision)
	}
	return nil
}

// Sufficient reports whether the ledger covers every required kind.
// Pure read, no mutation.
func (s *State) Sufficient(required map[Ingredient]uint64) bool {
	for kind, need := range required {
		if s.stock(kind) < need {
			return false
		}
	}
	return true
}

// Debit subtracts the required weights from the ledger. The caller must
// have already verified Sufficient with the same map; an underflow here
// means the check/act pairing was broken.
func (s *State) Debit(required map[Ingredient]uint64) error {
	for kind, need := range required {
		i := s.portionIndex(kind)
		if i < 0 || s.Ledger[i].Weight < need {
			return fmt.Errorf("%w: ledger underflow on %s", ErrInternal, kind)
		}
	}
	for kind, need := range required {
		i := s.portionIndex(kind)
		s.Ledger[i].Weight -= need
	}
	return nil
}

// Restock adds each portion's weight to the matching ledger entry.
// A zero-weight or unknown-kind portion rejects the whole batch.
func (s *State) Restock(portions []IngredientPortion) error {
	for _, p := range portions {
		if p.Weight == 0 {
			return fmt.Errorf("%w: zero restock weight for %s", ErrInvalidParam, p.Ingredient)
		}
		i := s.portionIndex(p.Ingredient)
		if i < 0 {
			return fmt.Errorf("%w: unknown ingredient %q", ErrInvalidParam, p.Ingredient)
		}
		sum, ok := add64(s.Ledger[i].Weight, p.Weight)
		if !ok {
			return fmt.Errorf("%w: ledger overflow on %s", ErrInternal, p.Ingredient)
		}
		s.Ledger[i].Weight = sum
	}
	return nil
}

func (s *State) stock(kind Ingredient) uint64 {
	if i := s.portionIndex(kind); i >= 0 {
		return s.Ledger[i].Weight
	}
	return 0
}

func (s *State) portionIndex(kind Ingredient) int {
	for i, p := range s.Ledger {
		if p.Ingredient == kind {
			return i
		}
	}
	return -1
}
