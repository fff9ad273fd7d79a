package oddsmath

import (
	"errors"
	"math"
	"testing"
)

func TestImpliedProbability(t *testing.T) {
	tests := []struct {
		odds int
		want float64
	}{
		{-150, 0.6},
		{130, 0.434783},
		{-110, 0.523810},
		{100, 0.5},
		{250, 0.285714},
		{-250, 0.714286},
	}
	for _, tt := range tests {
		got, err := ImpliedProbability(tt.odds)
		if err != nil {
			t.Fatalf("ImpliedProbability(%d): %v", tt.odds, err)
		}
		if math.Abs(got-tt.want) > 1e-4 {
			t.Errorf("ImpliedProbability(%d) = %.6f, want %.6f", tt.odds, got, tt.want)
		}
		if got <= 0 || got >= 1 {
			t.Errorf("ImpliedProbability(%d) = %.6f, outside (0,1)", tt.odds, got)
		}
	}
}

func TestImpliedProbability_ZeroOdds(t *testing.T) {
	if _, err := ImpliedProbability(0); !errors.Is(err, ErrInvalidOdds) {
		t.Errorf("expected ErrInvalidOdds for zero odds, got %v", err)
	}
}

func TestAmericanDecimalRoundTrip(t *testing.T) {
	for _, odds := range []int{-4000, -250, -150, -110, -101, 100, 101, 110, 130, 250, 596, 4000} {
		dec, err := ToDecimal(odds)
		if err != nil {
			t.Fatalf("ToDecimal(%d): %v", odds, err)
		}
		back, err := ToAmerican(dec)
		if err != nil {
			t.Fatalf("ToAmerican(%.4f): %v", dec, err)
		}
		if diff := back - odds; diff < -1 || diff > 1 {
			t.Errorf("round trip %d -> %.4f -> %d (off by %d)", odds, dec, back, diff)
		}
	}
}

func TestToAmerican_InvalidDecimal(t *testing.T) {
	for _, dec := range []float64{1.0, 0.5, 0, -2} {
		if _, err := ToAmerican(dec); !errors.Is(err, ErrInvalidOdds) {
			t.Errorf("ToAmerican(%.2f): expected ErrInvalidOdds, got %v", dec, err)
		}
	}
}

func TestCombineParlay_ThreeLegs(t *testing.T) {
	// Three legs at -110 with a $100 stake.
	combo, err := CombineParlay([]int{-110, -110, -110}, 100)
	if err != nil {
		t.Fatalf("CombineParlay: %v", err)
	}
	if math.Abs(combo.DecimalOdds-6.9587) > 0.01 {
		t.Errorf("combined decimal = %.4f, want ~6.96", combo.DecimalOdds)
	}
	if combo.AmericanOdds < 590 || combo.AmericanOdds > 600 {
		t.Errorf("combined American = %d, want ~+596", combo.AmericanOdds)
	}
	if math.Abs(combo.Payout-695.87) > 1.0 {
		t.Errorf("payout = %.2f, want ~696", combo.Payout)
	}
}

func TestCombineParlay_OrderIndependent(t *testing.T) {
	a, err := CombineParlay([]int{-150, 130, -110}, 50)
	if err != nil {
		t.Fatalf("CombineParlay: %v", err)
	}
	b, err := CombineParlay([]int{-110, -150, 130}, 50)
	if err != nil {
		t.Fatalf("CombineParlay: %v", err)
	}
	if math.Abs(a.DecimalOdds-b.DecimalOdds) > 1e-9 {
		t.Errorf("leg order changed combined odds: %.6f vs %.6f", a.DecimalOdds, b.DecimalOdds)
	}
	if a.AmericanOdds != b.AmericanOdds {
		t.Errorf("leg order changed American odds: %d vs %d", a.AmericanOdds, b.AmericanOdds)
	}
}

func TestCombineParlay_Empty(t *testing.T) {
	if _, err := CombineParlay(nil, 100); !errors.Is(err, ErrEmptyParlay) {
		t.Errorf("expected ErrEmptyParlay, got %v", err)
	}
}

func TestCombineParlay_BadLeg(t *testing.T) {
	if _, err := CombineParlay([]int{-110, 0}, 100); !errors.Is(err, ErrInvalidOdds) {
		t.Errorf("expected ErrInvalidOdds, got %v", err)
	}
}
