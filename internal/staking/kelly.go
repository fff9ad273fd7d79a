package staking

import "DugoutEdge/internal/oddsmath"

// DefaultMaxStakeFraction caps any single recommendation at 5% of
// bankroll regardless of the Kelly fraction, as protection against model
// error.
const DefaultMaxStakeFraction = 0.05

// KellyStake sizes a bet with the fractional Kelly criterion. It returns
// the recommended stake and the bankroll fraction it represents. A
// non-positive Kelly fraction of the bankroll (no edge) always returns a
// zero stake, never a negative one.
func KellyStake(trueProb float64, offeredOdds int, bankroll, kellyFraction, maxStakeFraction float64) (stake, fraction float64, err error) {
	dec, err := oddsmath.ToDecimal(offeredOdds)
	if err != nil {
		return 0, 0, err
	}
	if maxStakeFraction <= 0 {
		maxStakeFraction = DefaultMaxStakeFraction
	}

	b := dec - 1
	fStar := (b*trueProb - (1 - trueProb)) / b
	if fStar <= 0 {
		return 0, 0, nil
	}

	fraction = fStar * kellyFraction
	if fraction > maxStakeFraction {
		fraction = maxStakeFraction
	}
	return fraction * bankroll, fraction, nil
}
