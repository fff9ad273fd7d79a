package engine

import (
	"fmt"
	"log"

	"DugoutEdge/internal/form"
	"DugoutEdge/internal/model"
	"DugoutEdge/internal/oddsmath"
)

// HomeFieldAdvantage is the historical MLB home win-rate bump.
const HomeFieldAdvantage = 0.054

// Probability estimates are clipped to this band: recent form over ten
// games is too noisy to support anything more extreme.
const (
	minModelProb = 0.10
	maxModelProb = 0.90
)

// Thresholds holds the named guard values for value-bet detection. The
// odds floor and the high-probability override combine with OR by
// default; RequireBoth switches to the stricter AND form.
type Thresholds struct {
	MinEdge           float64
	MinRunsForValue   float64
	MinWinPctForValue float64
	MinOddsFloor      int
	HighProbOverride  float64
	TotalsConfidence  float64
	RequireBoth       bool
}

// DefaultThresholds returns the standard guard values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinEdge:           0.03,
		MinRunsForValue:   4.5,
		MinWinPctForValue: 0.65,
		MinOddsFloor:      -250,
		HighProbOverride:  0.70,
		TotalsConfidence:  0.60,
	}
}

// Engine flags value opportunities by comparing model-estimated win
// probabilities against market-implied ones.
type Engine struct {
	Thresholds Thresholds
}

// New creates an Engine with the given guard thresholds.
func New(t Thresholds) *Engine {
	return &Engine{Thresholds: t}
}

// WinProbability estimates the home team's true win probability from both
// teams' recent form, the home-field advantage, scoring-trend nudges, and
// the pitcher-matchup advantage term (in [-1, 1], scaled down before it
// moves the estimate).
func WinProbability(home, away *model.FormSummary, pitcherAdvantage float64) float64 {
	raw := (home.WinPct + HomeFieldAdvantage + form.TrendAdjustment(home.ScoringTrend)) -
		(away.WinPct + form.TrendAdjustment(away.ScoringTrend))

	prob := 0.5 + raw + pitcherAdvantage*matchupWeight
	if prob < minModelProb {
		return minModelProb
	}
	if prob > maxModelProb {
		return maxModelProb
	}
	return prob
}

// EvaluateMoneyline checks both sides of a moneyline quote and returns
// the opportunities that clear every guard. A malformed price on one side
// skips only that side.
func (e *Engine) EvaluateMoneyline(event *model.Event, homeForm, awayForm *model.FormSummary, quote *model.MarketQuote, pitcherAdvantage float64) []model.Opportunity {
	homeProb := WinProbability(homeForm, awayForm, pitcherAdvantage)

	var out []model.Opportunity
	sides := []struct {
		side      model.Side
		selection string
		odds      int
		modelProb float64
		form      *model.FormSummary
	}{
		{model.SideHome, event.HomeTeam, quote.HomePrice, homeProb, homeForm},
		{model.SideAway, event.AwayTeam, quote.AwayPrice, 1 - homeProb, awayForm},
	}

	for _, s := range sides {
		opp, err := e.evaluateSide(event, s.side, s.selection, s.odds, s.modelProb, s.form)
		if err != nil {
			log.Printf("[WARN] %s %s moneyline skipped: %v", event.Matchup(), s.side, err)
			continue
		}
		if opp != nil {
			opp.StaleData = homeForm.Stale || awayForm.Stale
			out = append(out, *opp)
		}
	}
	return out
}

// evaluateSide applies the edge computation, boosts, and guard conditions
// for one selection. A nil opportunity with nil error means the side
// simply didn't qualify.
func (e *Engine) evaluateSide(event *model.Event, side model.Side, selection string, odds int, modelProb float64, f *model.FormSummary) (*model.Opportunity, error) {
	t := e.Thresholds

	implied, err := oddsmath.ImpliedProbability(odds)
	if err != nil {
		return nil, fmt.Errorf("implied probability: %w", err)
	}

	edge := modelProb - implied
	if modelProb >= t.MinWinPctForValue {
		edge += boost(0.03, 2*(modelProb-t.MinWinPctForValue))
	}
	if f.RunsPerGame >= t.MinRunsForValue {
		edge += boost(0.02, (f.RunsPerGame-t.MinRunsForValue)/10)
	}

	if edge <= t.MinEdge {
		return nil, nil
	}
	if !e.oddsGuard(odds, modelProb) {
		return nil, nil
	}
	if f.RunsPerGame <= t.MinRunsForValue {
		return nil, nil
	}

	return &model.Opportunity{
		EventID:     event.ID,
		Matchup:     event.Matchup(),
		Market:      model.MarketMoneyline,
		Side:        side,
		Selection:   selection,
		Odds:        odds,
		ModelProb:   modelProb,
		ImpliedProb: implied,
		Edge:        edge,
		Confidence:  classify(edge),
	}, nil
}

// oddsGuard rejects heavy favorites priced past the floor unless the
// model probability clears the override (OR form; AND when RequireBoth).
func (e *Engine) oddsGuard(odds int, modelProb float64) bool {
	t := e.Thresholds
	floorOK := odds > t.MinOddsFloor
	overrideOK := modelProb > t.HighProbOverride
	if t.RequireBoth {
		return floorOK && overrideOK
	}
	return floorOK || overrideOK
}

func boost(cap, v float64) float64 {
	if v > cap {
		return cap
	}
	if v < 0 {
		return 0
	}
	return v
}

// classify tiers confidence by edge magnitude. Low is reserved for the
// looser parlay-candidate filter, not this gate.
func classify(edge float64) model.Confidence {
	if edge > 0.15 {
		return model.ConfidenceHigh
	}
	return model.ConfidenceMedium
}
