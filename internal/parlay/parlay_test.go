package parlay

import (
	"math"
	"testing"
	"time"

	"DugoutEdge/internal/model"
)

func game(id, home, away string) GameContext {
	return GameContext{
		Event: &model.Event{
			ID:        id,
			HomeTeam:  home,
			AwayTeam:  away,
			StartTime: time.Date(2025, 7, 4, 19, 5, 0, 0, time.UTC),
			Status:    model.StatusScheduled,
		},
		HomeForm: neutralForm(home),
		AwayForm: neutralForm(away),
	}
}

func neutralForm(team string) *model.FormSummary {
	return &model.FormSummary{
		Team:               team,
		GamesAnalyzed:      10,
		WinPct:             0.400,
		SeasonWinPct:       0.400,
		RunsPerGame:        4.0,
		RunsAllowedPerGame: 4.5,
		BattingAvg:         0.248,
		BattingKRate:       0.220,
		ScoringTrend:       model.TrendStable,
	}
}

func TestAssemblePitcherDominance(t *testing.T) {
	g := game("401", "NYY", "BOS")
	g.HomeForm.WinPct = 0.600
	g.HomePitcher = &model.PitcherMetrics{Name: "G. Cole", KPerNine: 10.2}
	g.Moneyline = &model.MarketQuote{
		EventID: "401", Market: model.MarketMoneyline,
		HomePrice: -150, AwayPrice: 130,
	}
	g.Props = []model.PropQuote{{
		EventID: "401", PlayerName: "G. Cole",
		PropType: model.PropPitcherStrikeouts,
		Line:     6.5, OverPrice: -120, UnderPrice: -105,
	}}

	combos := NewAssembler(DefaultSettings()).Assemble([]GameContext{g})
	if len(combos) != 1 {
		t.Fatalf("got %d combinations, want 1", len(combos))
	}
	c := combos[0]
	if c.Pattern != "pitcher_dominance" {
		t.Errorf("pattern = %q, want pitcher_dominance", c.Pattern)
	}
	if len(c.Legs) != 2 {
		t.Fatalf("got %d legs, want 2", len(c.Legs))
	}
	// K/9 of 10.2 saturates the strikeout component at 0.8; with a 0.600
	// team, 0.8*0.7 + 0.6*0.3 = 0.74.
	if math.Abs(c.Probability-0.74) > 1e-9 {
		t.Errorf("probability = %.4f, want 0.74", c.Probability)
	}
	if c.Risk != model.RiskLow {
		t.Errorf("risk = %s, want LOW", c.Risk)
	}
	if c.Legs[0].Odds != -120 {
		t.Errorf("strikeout leg odds = %d, want -120 from the listed prop", c.Legs[0].Odds)
	}
	if c.Legs[1].Selection != "NYY ML" {
		t.Errorf("moneyline leg = %q, want NYY ML", c.Legs[1].Selection)
	}
	if c.Payout <= c.DecimalOdds {
		t.Errorf("payout %.2f not scaled by reference stake", c.Payout)
	}
}

func TestAssembleCrossGameFavorites(t *testing.T) {
	strong := func(team string) *model.FormSummary {
		f := neutralForm(team)
		f.WinPct = 0.850
		f.SeasonWinPct = 0.850
		f.RunsPerGame = 5.5
		f.RunsAllowedPerGame = 3.5
		return f
	}

	g1 := game("401", "LAD", "COL")
	g1.HomeForm = strong("LAD")
	g1.Moneyline = &model.MarketQuote{EventID: "401", Market: model.MarketMoneyline, HomePrice: -220, AwayPrice: 180}
	g2 := game("402", "HOU", "OAK")
	g2.HomeForm = strong("HOU")
	g2.Moneyline = &model.MarketQuote{EventID: "402", Market: model.MarketMoneyline, HomePrice: -200, AwayPrice: 170}
	g3 := game("403", "ATL", "MIA")
	g3.HomeForm = strong("ATL")
	g3.Moneyline = &model.MarketQuote{EventID: "403", Market: model.MarketMoneyline, HomePrice: -210, AwayPrice: 175}

	combos := NewAssembler(DefaultSettings()).Assemble([]GameContext{g1, g2, g3})
	if len(combos) == 0 {
		t.Fatal("no combinations from a slate of strong favorites")
	}
	for _, c := range combos {
		if c.Pattern != "cross_game_favorites" {
			t.Errorf("pattern = %q, want cross_game_favorites", c.Pattern)
		}
		// Each favorite scores 0.78; only the two-leg stack clears the
		// probability floor.
		if len(c.Legs) != 2 {
			t.Errorf("got %d legs, want 2", len(c.Legs))
		}
		seen := map[string]bool{}
		for _, leg := range c.Legs {
			if seen[leg.EventID] {
				t.Errorf("two legs from game %s in a cross-game stack", leg.EventID)
			}
			seen[leg.EventID] = true
		}
	}
}

func TestAssembleHotBatter(t *testing.T) {
	g := game("401", "TEX", "KC")
	g.HomeForm.BattingAvg = 0.290
	g.HomeForm.RunsPerGame = 5.8
	g.HomeForm.WinPct = 0.550
	g.HomeForm.SeasonWinPct = 0.550
	g.AwayForm.RunsAllowedPerGame = 5.2
	g.Total = &model.MarketQuote{
		EventID: "401", Market: model.MarketTotal,
		Line: 8.5, OverPrice: -110, UnderPrice: -110,
	}
	g.Props = []model.PropQuote{{
		EventID: "401", PlayerName: "C. Seager",
		PropType: model.PropBatterHits,
		Line:     1.5, OverPrice: 120, UnderPrice: -150,
	}}

	combos := NewAssembler(DefaultSettings()).Assemble([]GameContext{g})
	if len(combos) != 1 {
		t.Fatalf("got %d combinations, want 1", len(combos))
	}
	c := combos[0]
	if c.Pattern != "hot_batter" {
		t.Errorf("pattern = %q, want hot_batter", c.Pattern)
	}
	if len(c.Legs) != 2 {
		t.Fatalf("got %d legs, want 2", len(c.Legs))
	}
	if c.Legs[0].Market != model.MarketPlayerProp || c.Legs[1].Market != model.MarketTotal {
		t.Errorf("leg markets = %s/%s, want player_prop/total", c.Legs[0].Market, c.Legs[1].Market)
	}
	if c.Legs[1].Selection != "Over 8.5" {
		t.Errorf("total leg = %q, want Over 8.5", c.Legs[1].Selection)
	}
}

func TestAssembleStrikeoutMatchup(t *testing.T) {
	g1 := game("401", "NYY", "BOS")
	g1.HomePitcher = &model.PitcherMetrics{Name: "G. Cole", KPerNine: 11.0}
	g1.AwayForm.BattingKRate = 0.260
	g2 := game("402", "SEA", "TEX")
	g2.HomePitcher = &model.PitcherMetrics{Name: "L. Gilbert", KPerNine: 11.0}
	g2.AwayForm.BattingKRate = 0.260

	combos := NewAssembler(DefaultSettings()).Assemble([]GameContext{g1, g2})
	if len(combos) != 1 {
		t.Fatalf("got %d combinations, want 1", len(combos))
	}
	c := combos[0]
	if c.Pattern != "strikeout_matchup" {
		t.Errorf("pattern = %q, want strikeout_matchup", c.Pattern)
	}
	if len(c.Legs) != 2 {
		t.Fatalf("got %d legs, want 2", len(c.Legs))
	}
	for _, leg := range c.Legs {
		if leg.Odds != defaultPropOdds {
			t.Errorf("leg odds = %d, want default %d with no listed prop", leg.Odds, defaultPropOdds)
		}
	}
}

func TestAssembleBounds(t *testing.T) {
	settings := DefaultSettings()
	var slate []GameContext
	ids := []string{"401", "402", "403", "404", "405", "406"}
	teams := [][2]string{{"LAD", "COL"}, {"HOU", "OAK"}, {"ATL", "MIA"}, {"NYY", "BOS"}, {"SEA", "TEX"}, {"PHI", "WSH"}}
	for i, id := range ids {
		g := game(id, teams[i][0], teams[i][1])
		g.HomeForm.WinPct = 0.900
		g.HomeForm.SeasonWinPct = 0.900
		g.HomeForm.RunsPerGame = 6.0
		g.HomeForm.RunsAllowedPerGame = 3.0
		g.HomePitcher = &model.PitcherMetrics{Name: "P" + id, KPerNine: 11.5}
		g.AwayForm.BattingKRate = 0.270
		g.Moneyline = &model.MarketQuote{EventID: id, Market: model.MarketMoneyline, HomePrice: -250, AwayPrice: 200}
		slate = append(slate, g)
	}

	combos := NewAssembler(settings).Assemble(slate)
	if len(combos) == 0 {
		t.Fatal("no combinations from a loaded slate")
	}
	if len(combos) > settings.TopK {
		t.Errorf("got %d combinations, cap is %d", len(combos), settings.TopK)
	}
	for i, c := range combos {
		if len(c.Legs) > settings.MaxLegs {
			t.Errorf("combination %d has %d legs, max is %d", i, len(c.Legs), settings.MaxLegs)
		}
		if c.Probability < settings.MinProbability {
			t.Errorf("combination %d probability %.3f below floor %.2f", i, c.Probability, settings.MinProbability)
		}
		if i > 0 && combos[i-1].Probability < c.Probability {
			t.Errorf("combinations not sorted by probability at index %d", i)
		}
	}
}

func TestAssembleEmptySlate(t *testing.T) {
	if combos := NewAssembler(DefaultSettings()).Assemble(nil); len(combos) != 0 {
		t.Errorf("got %d combinations from an empty slate, want 0", len(combos))
	}
}
