package engine

import "DugoutEdge/internal/model"

// League-average pitching baselines, recent-season MLB figures.
const (
	leagueKRate      = 0.215
	leagueBBRate     = 0.085
	leagueBarrelRate = 0.068
	leagueExitVelo   = 88.2
	leagueXERA       = 4.50
)

// matchupWeight scales the [-1, 1] advantage term before it shifts the
// win probability, so a maximal mismatch moves the estimate by at most
// five points.
const matchupWeight = 0.05

// MatchupAdvantage scores the home starter against the away starter as a
// value in [-1, 1]. Each component compares a rate to its league average;
// positive favors the home side.
func MatchupAdvantage(home, away model.PitcherMetrics) float64 {
	adv := pitcherScore(home) - pitcherScore(away)
	if adv > 1 {
		return 1
	}
	if adv < -1 {
		return -1
	}
	return adv
}

// pitcherScore rates a single starter relative to league average.
// Strikeouts dominate; contact quality allowed and walks fill out the
// rest.
func pitcherScore(p model.PitcherMetrics) float64 {
	return (p.KRate-leagueKRate)/leagueKRate*0.35 +
		(leagueBBRate-p.BBRate)/leagueBBRate*0.20 +
		(leagueBarrelRate-p.BarrelRate)/leagueBarrelRate*0.25 +
		(leagueExitVelo-p.AvgExitVelo)/10*0.20
}
