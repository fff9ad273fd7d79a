package engine

import (
	"fmt"
	"log"
	"math"

	"DugoutEdge/internal/model"
	"DugoutEdge/internal/oddsmath"
)

const (
	// standardRunLine is the fixed 1.5-run MLB spread.
	standardRunLine = 1.5
	// runLineFormWeight nudges the cover estimate per run of recent
	// scoring-differential advantage.
	runLineFormWeight = 0.05
	// runLineHomeBonus applies only on the standard line.
	runLineHomeBonus = 0.03
)

// homeCoverProbability estimates the chance the home side covers its run
// line, from its historical cover rate adjusted by the recent
// scoring-differential gap between the teams.
func homeCoverProbability(home, away *model.FormSummary, line float64) float64 {
	homeDiff := home.RunsPerGame - away.RunsAllowedPerGame
	awayDiff := away.RunsPerGame - home.RunsAllowedPerGame

	prob := home.CoverRate + (homeDiff-awayDiff)*runLineFormWeight
	if math.Abs(math.Abs(line)-standardRunLine) < 0.1 {
		prob += runLineHomeBonus
	}
	if prob < minModelProb {
		return minModelProb
	}
	if prob > maxModelProb {
		return maxModelProb
	}
	return prob
}

// EvaluateRunLine checks both sides of a run-line quote and returns a
// cover opportunity when the model probability clears the confidence
// threshold and beats the price. The away cover probability is the
// complement of the home one, so at most one side can qualify.
func (e *Engine) EvaluateRunLine(event *model.Event, homeForm, awayForm *model.FormSummary, quote *model.MarketQuote) []model.Opportunity {
	if quote.Line == 0 {
		return nil
	}
	homeCover := homeCoverProbability(homeForm, awayForm, quote.Line)

	var out []model.Opportunity
	sides := []struct {
		side      model.Side
		team      string
		line      float64
		odds      int
		modelProb float64
	}{
		{model.SideHome, event.HomeTeam, quote.Line, quote.HomePrice, homeCover},
		{model.SideAway, event.AwayTeam, -quote.Line, quote.AwayPrice, 1 - homeCover},
	}

	for _, s := range sides {
		if s.modelProb <= e.Thresholds.TotalsConfidence {
			continue
		}
		implied, err := oddsmath.ImpliedProbability(s.odds)
		if err != nil {
			log.Printf("[WARN] %s run line %s skipped: %v", event.Matchup(), s.side, err)
			continue
		}
		edge := s.modelProb - implied
		if edge <= e.Thresholds.MinEdge {
			continue
		}
		out = append(out, model.Opportunity{
			EventID:     event.ID,
			Matchup:     event.Matchup(),
			Market:      model.MarketSpread,
			Side:        s.side,
			Selection:   fmt.Sprintf("%s %+.1f", s.team, s.line),
			Odds:        s.odds,
			ModelProb:   s.modelProb,
			ImpliedProb: implied,
			Edge:        edge,
			Confidence:  classify(edge),
			StaleData:   homeForm.Stale || awayForm.Stale,
		})
	}
	return out
}
