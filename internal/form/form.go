package form

import "DugoutEdge/internal/model"

// WindowSize caps how many recent results feed a summary.
const WindowSize = 10

// League-average fallbacks used when a team has no usable results.
const (
	DefaultWinPct       = 0.500
	DefaultRunsPerGame  = 4.5
	DefaultBattingAvg   = 0.248
	DefaultBattingKRate = 0.220
	DefaultCoverRate    = 0.500
)

// Trend thresholds on the percent change between the most recent five
// games and the five before them.
const (
	stableBand  = 0.05
	strongShift = 0.10
)

// Summarize condenses a team's recent results (most recent last) into a
// FormSummary. It never fails: missing data falls back to league-average
// constants so one team without history cannot sink an analysis pass.
func Summarize(team string, results []model.GameResult) *model.FormSummary {
	if len(results) == 0 {
		return &model.FormSummary{
			Team:               team,
			GamesAnalyzed:      0,
			WinPct:             DefaultWinPct,
			SeasonWinPct:       DefaultWinPct,
			RunsPerGame:        DefaultRunsPerGame,
			RunsAllowedPerGame: DefaultRunsPerGame,
			BattingAvg:         DefaultBattingAvg,
			BattingKRate:       DefaultBattingKRate,
			CoverRate:          DefaultCoverRate,
			ScoringTrend:       model.TrendStable,
		}
	}

	window := results
	if len(window) > WindowSize {
		window = window[len(window)-WindowSize:]
	}

	wins := 0
	scored := 0
	allowed := 0
	covers := 0
	for _, r := range window {
		if r.Won {
			wins++
		}
		if r.RunsScored-r.RunsAllowed >= 2 {
			covers++
		}
		scored += r.RunsScored
		allowed += r.RunsAllowed
	}
	n := float64(len(window))

	winPct := float64(wins) / n
	return &model.FormSummary{
		Team:               team,
		GamesAnalyzed:      len(window),
		WinPct:             winPct,
		SeasonWinPct:       winPct,
		RunsPerGame:        float64(scored) / n,
		RunsAllowedPerGame: float64(allowed) / n,
		BattingAvg:         DefaultBattingAvg,
		BattingKRate:       DefaultBattingKRate,
		CoverRate:          float64(covers) / n,
		ScoringTrend:       scoringTrend(window),
	}
}

// ApplySeasonStats overlays season-level rates onto a recent-form
// summary. Zero values are treated as missing and leave the fallback in
// place.
func ApplySeasonStats(s *model.FormSummary, winPct, battingAvg, kRate float64) {
	if winPct > 0 {
		s.SeasonWinPct = winPct
	}
	if battingAvg > 0 {
		s.BattingAvg = battingAvg
	}
	if kRate > 0 {
		s.BattingKRate = kRate
	}
}

// scoringTrend compares mean runs scored over the last five games to the
// five before them. Fewer than ten results defaults to stable.
func scoringTrend(window []model.GameResult) model.Trend {
	if len(window) < WindowSize {
		return model.TrendStable
	}

	n := len(window)
	recent := meanScored(window[n-5:])
	prior := meanScored(window[n-10 : n-5])
	if prior <= 0 {
		return model.TrendStable
	}

	change := (recent - prior) / prior
	switch {
	case change > strongShift:
		return model.TrendImproving
	case change >= stableBand:
		return model.TrendSlightlyImproving
	case change < -strongShift:
		return model.TrendDeclining
	case change <= -stableBand:
		return model.TrendSlightlyDeclining
	default:
		return model.TrendStable
	}
}

func meanScored(results []model.GameResult) float64 {
	sum := 0
	for _, r := range results {
		sum += r.RunsScored
	}
	return float64(sum) / float64(len(results))
}

// TrendAdjustment maps a scoring trend to the win-probability nudge the
// edge engine applies for that team.
func TrendAdjustment(t model.Trend) float64 {
	switch t {
	case model.TrendImproving:
		return 0.02
	case model.TrendSlightlyImproving:
		return 0.01
	case model.TrendSlightlyDeclining:
		return -0.01
	case model.TrendDeclining:
		return -0.02
	default:
		return 0
	}
}

// TrendMultiplier maps a scoring trend to the run-expectation scale used
// by the totals analysis.
func TrendMultiplier(t model.Trend) float64 {
	switch t {
	case model.TrendImproving:
		return 1.10
	case model.TrendSlightlyImproving:
		return 1.05
	case model.TrendSlightlyDeclining:
		return 0.95
	case model.TrendDeclining:
		return 0.90
	default:
		return 1.0
	}
}
