package parlay

import (
	"log"
	"sort"

	"DugoutEdge/internal/model"
	"DugoutEdge/internal/oddsmath"
)

// Settings bounds the assembler's output.
type Settings struct {
	MinProbability float64
	MaxLegs        int
	TopK           int
	ReferenceStake float64
}

// DefaultSettings returns the standard assembler bounds.
func DefaultSettings() Settings {
	return Settings{
		MinProbability: 0.60,
		MaxLegs:        4,
		TopK:           3,
		ReferenceStake: 100,
	}
}

// GameContext bundles everything the pattern analyzers need for one
// scheduled game. Optional fields are nil when the upstream fetch failed
// or the market isn't offered; analyzers skip what's missing.
type GameContext struct {
	Event       *model.Event
	HomeForm    *model.FormSummary
	AwayForm    *model.FormSummary
	Moneyline   *model.MarketQuote
	Total       *model.MarketQuote
	Props       []model.PropQuote
	HomePitcher *model.PitcherMetrics
	AwayPitcher *model.PitcherMetrics
}

// candidate is a pattern analyzer's raw output before odds combination
// and ranking.
type candidate struct {
	pattern     string
	description string
	probability float64
	legs        []model.ParlayLeg
}

// analyzer scans the slate for one structural pattern and returns its
// candidate combinations.
type analyzer func(games []GameContext) []candidate

// Assembler runs every registered pattern analyzer over a slate of games
// and ranks the surviving combinations.
type Assembler struct {
	settings  Settings
	analyzers []analyzer
}

// NewAssembler creates an Assembler with the standard pattern set.
func NewAssembler(s Settings) *Assembler {
	return &Assembler{
		settings: s,
		analyzers: []analyzer{
			pitcherDominance,
			hotBatters,
			crossGameFavorites,
			strikeoutMatchups,
		},
	}
}

// Assemble produces the top ranked parlay combinations for the slate.
// Combined probability is the product of leg probabilities; legs from the
// same game are not independent, so same-game combinations overstate
// their true probability. Returns an empty slice, never an error: a
// malformed candidate is logged and dropped.
func (a *Assembler) Assemble(games []GameContext) []model.ParlayCombination {
	var kept []candidate
	for _, analyze := range a.analyzers {
		for _, c := range analyze(games) {
			if len(c.legs) == 0 || len(c.legs) > a.settings.MaxLegs {
				continue
			}
			if c.probability < a.settings.MinProbability {
				continue
			}
			kept = append(kept, c)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].probability != kept[j].probability {
			return kept[i].probability > kept[j].probability
		}
		return len(kept[i].legs) < len(kept[j].legs)
	})

	var out []model.ParlayCombination
	for _, c := range kept {
		if len(out) >= a.settings.TopK {
			break
		}
		odds := make([]int, len(c.legs))
		for i, leg := range c.legs {
			odds[i] = leg.Odds
		}
		combined, err := oddsmath.CombineParlay(odds, a.settings.ReferenceStake)
		if err != nil {
			log.Printf("[WARN] parlay %q dropped: %v", c.description, err)
			continue
		}
		out = append(out, model.ParlayCombination{
			Pattern:      c.pattern,
			Description:  c.description,
			Legs:         c.legs,
			Probability:  c.probability,
			DecimalOdds:  combined.DecimalOdds,
			AmericanOdds: combined.AmericanOdds,
			Payout:       combined.Payout,
			Risk:         riskTier(c.probability),
		})
	}
	return out
}

// riskTier buckets a combination by its combined probability.
func riskTier(p float64) model.RiskTier {
	switch {
	case p >= 0.65:
		return model.RiskLow
	case p >= 0.50:
		return model.RiskModerate
	default:
		return model.RiskHigh
	}
}
