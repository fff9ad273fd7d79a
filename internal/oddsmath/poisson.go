package oddsmath

import "math"

// RunBuckets is the number of discrete run counts tracked before the
// open-ended "8+" bucket.
const RunBuckets = 8

// PoissonPMF returns the probability of exactly k events at rate lambda.
func PoissonPMF(k int, lambda float64) float64 {
	if k < 0 || lambda <= 0 {
		return 0
	}
	logP := -lambda + float64(k)*math.Log(lambda)
	for i := 2; i <= k; i++ {
		logP -= math.Log(float64(i))
	}
	return math.Exp(logP)
}

// ExpectedRate blends a team's scoring rate with the opponent's conceding
// rate as their geometric mean.
func ExpectedRate(scoringRate, concededRate float64) float64 {
	if scoringRate <= 0 || concededRate <= 0 {
		return 0
	}
	return math.Sqrt(scoringRate * concededRate)
}

// RunDistribution returns the probability of scoring exactly 0..7 runs at
// the given rate; index 8 holds the cumulative "8 or more" probability.
func RunDistribution(lambda float64) [RunBuckets + 1]float64 {
	var dist [RunBuckets + 1]float64
	sum := 0.0
	for k := 0; k < RunBuckets; k++ {
		p := PoissonPMF(k, lambda)
		dist[k] = p
		sum += p
	}
	dist[RunBuckets] = 1 - sum
	if dist[RunBuckets] < 0 {
		dist[RunBuckets] = 0
	}
	return dist
}

// OverProbability returns the probability that the run count exceeds a
// half-integer line at the given expected rate.
func OverProbability(lambda, line float64) float64 {
	if lambda <= 0 {
		return 0
	}
	under := 0.0
	for k := 0; float64(k) < line; k++ {
		under += PoissonPMF(k, lambda)
	}
	p := 1 - under
	if p < 0 {
		return 0
	}
	return p
}
