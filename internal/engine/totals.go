package engine

import (
	"fmt"
	"log"

	"DugoutEdge/internal/form"
	"DugoutEdge/internal/model"
	"DugoutEdge/internal/oddsmath"
)

// expectedRuns projects each side's scoring as the mean of its runs
// scored and the opponent's runs allowed, stretched by its own
// scoring-trend multiplier.
func expectedRuns(team, opponent *model.FormSummary) float64 {
	base := (team.RunsPerGame + opponent.RunsAllowedPerGame) / 2
	return base * form.TrendMultiplier(team.ScoringTrend)
}

// EvaluateTotal estimates the run-total distribution for a game with a
// Poisson model and returns an over or under opportunity when the model
// probability clears the totals confidence threshold and beats the price.
func (e *Engine) EvaluateTotal(event *model.Event, homeForm, awayForm *model.FormSummary, quote *model.MarketQuote) []model.Opportunity {
	lambda := expectedRuns(homeForm, awayForm) + expectedRuns(awayForm, homeForm)
	overProb := oddsmath.OverProbability(lambda, quote.Line)

	var out []model.Opportunity
	sides := []struct {
		side      model.Side
		odds      int
		modelProb float64
	}{
		{model.SideOver, quote.OverPrice, overProb},
		{model.SideUnder, quote.UnderPrice, 1 - overProb},
	}

	for _, s := range sides {
		if s.modelProb <= e.Thresholds.TotalsConfidence {
			continue
		}
		implied, err := oddsmath.ImpliedProbability(s.odds)
		if err != nil {
			log.Printf("[WARN] %s total %s skipped: %v", event.Matchup(), s.side, err)
			continue
		}
		edge := s.modelProb - implied
		if edge <= e.Thresholds.MinEdge {
			continue
		}
		out = append(out, model.Opportunity{
			EventID:     event.ID,
			Matchup:     event.Matchup(),
			Market:      model.MarketTotal,
			Side:        s.side,
			Selection:   fmt.Sprintf("%s %.1f", sideLabel(s.side), quote.Line),
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

func sideLabel(s model.Side) string {
	if s == model.SideOver {
		return "Over"
	}
	return "Under"
}
