package market

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Aggregate returns the total units of assets and their units-weighted
// average rate. The rate is zero when the total is zero.
func Aggregate(assets []Asset) (units, rate float64) {
	total := decimal.Zero
	weighted := decimal.Zero
	for _, a := range assets {
		u := decimal.NewFromFloat(a.Units)
		total = total.Add(u)
		weighted = weighted.Add(u.Mul(decimal.NewFromFloat(a.Rate)))
	}

	if total.IsZero() {
		return total.InexactFloat64(), 0
	}
	return total.InexactFloat64(), weighted.Div(total).InexactFloat64()
}

// Merge folds assets of a single base/vcType pair into one record with the
// summed units and the weighted rate. The result carries no UUID.
func Merge(base, vcType string, assets []Asset) (Asset, error) {
	for _, a := range assets {
		if a.Base != base || a.VCType != vcType {
			return Asset{}, fmt.Errorf("%w: %s/%s does not belong to %s/%s",
				ErrInvalidAsset, a.Base, a.VCType, base, vcType)
		}
	}

	units, rate := Aggregate(assets)
	return Asset{
		Base:   base,
		VCType: vcType,
		Units:  units,
		Rate:   rate,
	}, nil
}

// Validate checks the invariants every stored asset must hold.
func (a Asset) Validate() error {
	if a.Base == "" || a.VCType == "" {
		return fmt.Errorf("%w: base and vcType are required", ErrInvalidAsset)
	}
	if a.Units < 0 {
		return fmt.Errorf("%w: units must not be negative (got %v)", ErrInvalidAsset, a.Units)
	}
	return nil
}

// UniqueIDs drops empty and repeated ids, keeping first occurrences in order.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
