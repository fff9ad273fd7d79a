package oddsmath

import (
	"math"
	"testing"
)

func TestPoissonPMF(t *testing.T) {
	tests := []struct {
		k      int
		lambda float64
		want   float64
	}{
		{0, 4.5, 0.011109},
		{4, 4.5, 0.189808},
		{7, 4.5, 0.082457},
		{0, 1.0, 0.367879},
	}
	for _, tt := range tests {
		got := PoissonPMF(tt.k, tt.lambda)
		if math.Abs(got-tt.want) > 1e-5 {
			t.Errorf("PoissonPMF(%d, %.1f) = %.6f, want %.6f", tt.k, tt.lambda, got, tt.want)
		}
	}
}

func TestPoissonPMF_Degenerate(t *testing.T) {
	if got := PoissonPMF(-1, 4.5); got != 0 {
		t.Errorf("negative k should give 0, got %f", got)
	}
	if got := PoissonPMF(3, 0); got != 0 {
		t.Errorf("zero rate should give 0, got %f", got)
	}
}

func TestRunDistribution_SumsToOne(t *testing.T) {
	dist := RunDistribution(4.5)
	sum := 0.0
	for _, p := range dist {
		if p < 0 {
			t.Fatalf("negative probability in distribution: %v", dist)
		}
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("distribution sums to %.9f, want 1", sum)
	}
	// 8+ bucket must equal 1 - sum of pmf(0..7).
	explicit := 0.0
	for k := 0; k < RunBuckets; k++ {
		explicit += PoissonPMF(k, 4.5)
	}
	if math.Abs(dist[RunBuckets]-(1-explicit)) > 1e-9 {
		t.Errorf("8+ bucket = %.6f, want %.6f", dist[RunBuckets], 1-explicit)
	}
}

func TestExpectedRate(t *testing.T) {
	got := ExpectedRate(5.2, 4.1)
	want := math.Sqrt(5.2 * 4.1)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("ExpectedRate = %.4f, want %.4f", got, want)
	}
	if ExpectedRate(0, 4.5) != 0 {
		t.Error("zero scoring rate should give 0")
	}
}

func TestOverProbability(t *testing.T) {
	// P(X > 8.5) at lambda 9 should land near 0.5 and decrease with the line.
	p85 := OverProbability(9.0, 8.5)
	p95 := OverProbability(9.0, 9.5)
	if p85 <= p95 {
		t.Errorf("over probability should fall as the line rises: %.4f vs %.4f", p85, p95)
	}
	if p85 < 0.4 || p85 > 0.6 {
		t.Errorf("P(X>8.5 | lambda=9) = %.4f, expected near 0.5", p85)
	}
	// Complementarity with the summed pmf below the line.
	under := 0.0
	for k := 0; k <= 8; k++ {
		under += PoissonPMF(k, 9.0)
	}
	if math.Abs(p85-(1-under)) > 1e-9 {
		t.Errorf("OverProbability = %.6f, want %.6f", p85, 1-under)
	}
}
