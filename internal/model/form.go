package model

// Trend buckets a team's recent scoring direction.
type Trend string

const (
	TrendImproving         Trend = "improving"
	TrendSlightlyImproving Trend = "slightly_improving"
	TrendStable            Trend = "stable"
	TrendSlightlyDeclining Trend = "slightly_declining"
	TrendDeclining         Trend = "declining"
)

// FormSummary is a team's recent-performance snapshot over a capped game
// window. Always replaced wholesale, never partially mutated.
type FormSummary struct {
	Team               string
	GamesAnalyzed      int
	WinPct             float64
	SeasonWinPct       float64
	RunsPerGame        float64
	RunsAllowedPerGame float64
	BattingAvg         float64
	BattingKRate       float64 // plate appearances ending in a strikeout
	CoverRate          float64 // fraction of window games won by two or more runs
	ScoringTrend       Trend
	Stale              bool // built from fallback cache after a fetch failure
}

// TeamSeasonStats carries the season-level rates that overlay a
// recent-form summary.
type TeamSeasonStats struct {
	Team         string
	WinPct       float64
	BattingAvg   float64
	BattingKRate float64
}

// PitcherMetrics holds the advanced metrics used for matchup scoring.
type PitcherMetrics struct {
	Name        string
	KRate       float64
	BBRate      float64
	BarrelRate  float64
	AvgExitVelo float64
	ExpectedERA float64
	KPerNine    float64
}
