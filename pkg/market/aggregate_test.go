package market

import (
	"errors"
	"math"
	"testing"
)

// go test -v --run TestAggregate
func TestAggregate(t *testing.T) {
	tests := []struct {
		name      string
		assets    []Asset
		wantUnits float64
		wantRate  float64
	}{
		{
			name: "equal units average the rates",
			assets: []Asset{
				{Base: "BTC", VCType: "ETH", Units: 1, Rate: 0.1},
				{Base: "BTC", VCType: "ETH", Units: 1, Rate: 0.2},
			},
			wantUnits: 2,
			wantRate:  0.15,
		},
		{
			name: "rate is weighted by units",
			assets: []Asset{
				{Base: "BTC", VCType: "ETH", Units: 3, Rate: 0.1},
				{Base: "BTC", VCType: "ETH", Units: 1, Rate: 0.5},
			},
			wantUnits: 4,
			wantRate:  0.2,
		},
		{
			name:      "zero units yields zero rate",
			assets:    []Asset{{Base: "BTC", VCType: "ETH", Units: 0, Rate: 0.3}},
			wantUnits: 0,
			wantRate:  0,
		},
		{
			name:      "no assets",
			wantUnits: 0,
			wantRate:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units, rate := Aggregate(tt.assets)
			if math.Abs(units-tt.wantUnits) > 1e-12 {
				t.Errorf("units = %v, want %v", units, tt.wantUnits)
			}
			if math.Abs(rate-tt.wantRate) > 1e-12 {
				t.Errorf("rate = %v, want %v", rate, tt.wantRate)
			}
		})
	}
}

// go test -v --run TestMergeRejectsForeignPair
func TestMergeRejectsForeignPair(t *testing.T) {
	_, err := Merge("BTC", "ETH", []Asset{
		{Base: "BTC", VCType: "ETH", Units: 1, Rate: 0.1},
		{Base: "BTC", VCType: "LTC", Units: 1, Rate: 0.01},
	})
	if !errors.Is(err, ErrInvalidAsset) {
		t.Fatalf("expected ErrInvalidAsset, got %v", err)
	}
}

// go test -v --run TestAssetValidate
func TestAssetValidate(t *testing.T) {
	if err := (Asset{Base: "BTC", VCType: "ETH", Units: 1}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (Asset{Base: "BTC", VCType: "ETH", Units: -1}).Validate(); !errors.Is(err, ErrInvalidAsset) {
		t.Errorf("expected ErrInvalidAsset for negative units, got %v", err)
	}
	if err := (Asset{VCType: "ETH"}).Validate(); !errors.Is(err, ErrInvalidAsset) {
		t.Errorf("expected ErrInvalidAsset for missing base, got %v", err)
	}
}
