package parlay

import (
	"fmt"
	"sort"

	"DugoutEdge/internal/model"
	"DugoutEdge/internal/oddsmath"
)

// Pattern analyzer tuning. Pattern thresholds admit looser candidates
// than the strict single-bet gate; the assembler's MinProbability is the
// final filter.
const (
	dominanceThreshold  = 0.60
	hotBatterThreshold  = 0.55
	favoriteThreshold   = 0.60
	strikeoutThreshold  = 0.65
	kPerNineScale       = 12.0 // K/9 at which the strikeout component saturates
	defaultPropOdds     = -110
	leagueBattingAvg    = 0.248
	leagueBattingKRate  = 0.25
	teamRunsOverLine    = 4.5
)

// sideContext flattens one team's view of a game so the per-side
// patterns can iterate home and away uniformly.
type sideContext struct {
	game    *GameContext
	side    model.Side
	team    string
	form    *model.FormSummary
	pitcher *model.PitcherMetrics
	oppForm *model.FormSummary
}

func eachSide(games []GameContext) []sideContext {
	var out []sideContext
	for i := range games {
		g := &games[i]
		if g.Event == nil || g.HomeForm == nil || g.AwayForm == nil {
			continue
		}
		out = append(out,
			sideContext{g, model.SideHome, g.Event.HomeTeam, g.HomeForm, g.HomePitcher, g.AwayForm},
			sideContext{g, model.SideAway, g.Event.AwayTeam, g.AwayForm, g.AwayPitcher, g.HomeForm},
		)
	}
	return out
}

// moneylinePrice returns the side's moneyline odds, or false when the
// market is missing or unpriced.
func (s *sideContext) moneylinePrice() (int, bool) {
	if s.game.Moneyline == nil {
		return 0, false
	}
	price := s.game.Moneyline.Price(s.side)
	return price, price != 0
}

// strikeoutProp finds the listed strikeout prop for the side's starter.
// Books don't always post one; the caller falls back to a standard price.
func (s *sideContext) strikeoutProp() *model.PropQuote {
	if s.pitcher == nil {
		return nil
	}
	for i := range s.game.Props {
		p := &s.game.Props[i]
		if p.PropType == model.PropPitcherStrikeouts && p.PlayerName == s.pitcher.Name {
			return p
		}
	}
	return nil
}

// kProbability normalizes a starter's K/9 into a strikeout-prop
// probability, saturating at 0.8.
func kProbability(p *model.PitcherMetrics) float64 {
	prob := p.KPerNine / kPerNineScale
	if prob > 0.8 {
		return 0.8
	}
	return prob
}

// pitcherDominance pairs a high-strikeout starter's prop with his team's
// moneyline in the same game. Score weights the strikeout component over
// recent team form 70/30.
func pitcherDominance(games []GameContext) []candidate {
	var out []candidate
	for _, s := range eachSide(games) {
		if s.pitcher == nil {
			continue
		}
		mlPrice, ok := s.moneylinePrice()
		if !ok {
			continue
		}

		kProb := kProbability(s.pitcher)
		teamProb := s.form.WinPct
		score := kProb*0.7 + teamProb*0.3
		if score < dominanceThreshold {
			continue
		}

		propOdds := defaultPropOdds
		propLabel := fmt.Sprintf("%s Over Ks", s.pitcher.Name)
		if prop := s.strikeoutProp(); prop != nil {
			propOdds = prop.OverPrice
			propLabel = fmt.Sprintf("%s Over %.1f Ks", s.pitcher.Name, prop.Line)
		}

		out = append(out, candidate{
			pattern:     "pitcher_dominance",
			description: fmt.Sprintf("%s + %s ML", propLabel, s.team),
			probability: score,
			legs: []model.ParlayLeg{
				{
					EventID:     s.game.Event.ID,
					Market:      model.MarketPlayerProp,
					Selection:   propLabel,
					Odds:        propOdds,
					Probability: kProb,
				},
				{
					EventID:     s.game.Event.ID,
					Market:      model.MarketMoneyline,
					Selection:   fmt.Sprintf("%s ML", s.team),
					Odds:        mlPrice,
					Probability: teamProb,
				},
			},
		})
	}
	return out
}

// hotBatters pairs a hot lineup's hits prop with the game total over.
// The hits component scales batting average against league norm; the
// runs component is the Poisson over-probability for the team's expected
// scoring against its opponent.
func hotBatters(games []GameContext) []candidate {
	var out []candidate
	for _, s := range eachSide(games) {
		if s.game.Total == nil || s.game.Total.OverPrice == 0 {
			continue
		}
		hitsProp := firstBatterHitsProp(s.game)
		if hitsProp == nil {
			continue
		}

		hitsProb := clampProb(0.5 + (s.form.BattingAvg-leagueBattingAvg)*4)
		lambda := oddsmath.ExpectedRate(s.form.RunsPerGame, s.oppForm.RunsAllowedPerGame)
		runsProb := oddsmath.OverProbability(lambda, teamRunsOverLine)

		score := hitsProb*0.6 + runsProb*0.4
		if score < hotBatterThreshold {
			continue
		}

		out = append(out, candidate{
			pattern:     "hot_batter",
			description: fmt.Sprintf("%s hits + game Over %.1f", s.team, s.game.Total.Line),
			probability: score,
			legs: []model.ParlayLeg{
				{
					EventID:     s.game.Event.ID,
					Market:      model.MarketPlayerProp,
					Selection:   fmt.Sprintf("%s Over %.1f hits", hitsProp.PlayerName, hitsProp.Line),
					Odds:        hitsProp.OverPrice,
					Probability: hitsProb,
				},
				{
					EventID:     s.game.Event.ID,
					Market:      model.MarketTotal,
					Selection:   fmt.Sprintf("Over %.1f", s.game.Total.Line),
					Odds:        s.game.Total.OverPrice,
					Probability: runsProb,
				},
			},
		})
	}
	return out
}

// firstBatterHitsProp returns the first priced hits prop for the game.
// The props feed doesn't carry team affiliation, so the leg is a
// game-level proxy for the lineup.
func firstBatterHitsProp(g *GameContext) *model.PropQuote {
	for i := range g.Props {
		if g.Props[i].PropType == model.PropBatterHits && g.Props[i].OverPrice != 0 {
			return &g.Props[i]
		}
	}
	return nil
}

// crossGameFavorites stacks the strongest moneyline favorites from
// different games. Each team scores 40% season record, 40% recent form,
// 20% run differential; qualifying sides are stacked best-first and the
// stack's probability is the product of its legs.
func crossGameFavorites(games []GameContext) []candidate {
	type favorite struct {
		leg  model.ParlayLeg
		prob float64
	}

	best := map[string]favorite{} // one side per game
	for _, s := range eachSide(games) {
		mlPrice, ok := s.moneylinePrice()
		if !ok {
			continue
		}

		runDiff := s.form.RunsPerGame - s.form.RunsAllowedPerGame
		diffTerm := 0.3 + runDiff/10
		if diffTerm < 0 {
			diffTerm = 0
		}
		if diffTerm > 0.8 {
			diffTerm = 0.8
		}
		prob := s.form.SeasonWinPct*0.4 + s.form.WinPct*0.4 + diffTerm*0.2
		if prob < favoriteThreshold {
			continue
		}

		f := favorite{
			leg: model.ParlayLeg{
				EventID:     s.game.Event.ID,
				Market:      model.MarketMoneyline,
				Selection:   fmt.Sprintf("%s ML", s.team),
				Odds:        mlPrice,
				Probability: prob,
			},
			prob: prob,
		}
		if prev, ok := best[s.game.Event.ID]; !ok || f.prob > prev.prob {
			best[s.game.Event.ID] = f
		}
	}

	favorites := make([]favorite, 0, len(best))
	for _, f := range best {
		favorites = append(favorites, f)
	}
	sort.Slice(favorites, func(i, j int) bool {
		if favorites[i].prob != favorites[j].prob {
			return favorites[i].prob > favorites[j].prob
		}
		return favorites[i].leg.EventID < favorites[j].leg.EventID
	})

	var out []candidate
	for size := 2; size <= len(favorites); size++ {
		legs := make([]model.ParlayLeg, size)
		prob := 1.0
		for i := 0; i < size; i++ {
			legs[i] = favorites[i].leg
			prob *= favorites[i].prob
		}
		out = append(out, candidate{
			pattern:     "cross_game_favorites",
			description: fmt.Sprintf("%d strong favorites", size),
			probability: prob,
			legs:        legs,
		})
	}
	return out
}

// strikeoutMatchups pairs the slate's two best strikeout spots: a high
// K/9 starter against a lineup that whiffs above league rate.
func strikeoutMatchups(games []GameContext) []candidate {
	type matchup struct {
		leg  model.ParlayLeg
		prob float64
	}

	var matchups []matchup
	for _, s := range eachSide(games) {
		if s.pitcher == nil {
			continue
		}

		kTerm := s.pitcher.KPerNine / kPerNineScale
		if kTerm > 1 {
			kTerm = 1
		}
		oppTerm := s.oppForm.BattingKRate / leagueBattingKRate
		if oppTerm > 1 {
			oppTerm = 1
		}
		prob := kTerm*0.6 + oppTerm*0.4
		if prob < strikeoutThreshold {
			continue
		}

		propOdds := defaultPropOdds
		label := fmt.Sprintf("%s Over Ks", s.pitcher.Name)
		if prop := s.strikeoutProp(); prop != nil {
			propOdds = prop.OverPrice
			label = fmt.Sprintf("%s Over %.1f Ks", s.pitcher.Name, prop.Line)
		}
		matchups = append(matchups, matchup{
			leg: model.ParlayLeg{
				EventID:     s.game.Event.ID,
				Market:      model.MarketPlayerProp,
				Selection:   label,
				Odds:        propOdds,
				Probability: prob,
			},
			prob: prob,
		})
	}
	if len(matchups) < 2 {
		return nil
	}

	sort.Slice(matchups, func(i, j int) bool {
		if matchups[i].prob != matchups[j].prob {
			return matchups[i].prob > matchups[j].prob
		}
		return matchups[i].leg.EventID < matchups[j].leg.EventID
	})

	top := matchups[:2]
	return []candidate{{
		pattern:     "strikeout_matchup",
		description: fmt.Sprintf("%s + %s", top[0].leg.Selection, top[1].leg.Selection),
		probability: top[0].prob * top[1].prob,
		legs:        []model.ParlayLeg{top[0].leg, top[1].leg},
	}}
}

func clampProb(p float64) float64 {
	if p < 0.1 {
		return 0.1
	}
	if p > 0.9 {
		return 0.9
	}
	return p
}
