package collector

import "DugoutEdge/internal/model"

// ScheduleSource provides the current day's slate of games.
type ScheduleSource interface {
	Name() string
	FetchSchedule() ([]model.Event, error)
}

// StatsSource provides team results, season rates, and starter metrics.
type StatsSource interface {
	Name() string
	FetchRecentResults(team string) ([]model.GameResult, error)
	FetchSeasonStats(team string) (*model.TeamSeasonStats, error)
	FetchPitcherMetrics(playerName string) (*model.PitcherMetrics, error)
}

// OddsSource provides market quotes and player props.
type OddsSource interface {
	Name() string
	FetchQuotes() ([]model.MarketQuote, error)
	FetchProps(eventID string) ([]model.PropQuote, error)
}

// MockScheduleSource returns controllable fixed data for development and
// testing.
type MockScheduleSource struct {
	Events []model.Event
	Err    error
}

func (m *MockScheduleSource) Name() string { return "mock-schedule" }

func (m *MockScheduleSource) FetchSchedule() ([]model.Event, error) {
	return m.Events, m.Err
}

// MockStatsSource returns controllable fixed data keyed by team or player.
type MockStatsSource struct {
	Results  map[string][]model.GameResult
	Seasons  map[string]*model.TeamSeasonStats
	Pitchers map[string]*model.PitcherMetrics
	Err      error
	Calls    int
}

func (m *MockStatsSource) Name() string { return "mock-stats" }

func (m *MockStatsSource) FetchRecentResults(team string) ([]model.GameResult, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results[team], nil
}

func (m *MockStatsSource) FetchSeasonStats(team string) (*model.TeamSeasonStats, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Seasons[team], nil
}

func (m *MockStatsSource) FetchPitcherMetrics(playerName string) (*model.PitcherMetrics, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Pitchers[playerName], nil
}

// MockOddsSource returns controllable fixed quote data.
type MockOddsSource struct {
	Quotes []model.MarketQuote
	Props  map[string][]model.PropQuote
	Err    error
	Calls  int
}

func (m *MockOddsSource) Name() string { return "mock-odds" }

func (m *MockOddsSource) FetchQuotes() ([]model.MarketQuote, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Quotes, nil
}

func (m *MockOddsSource) FetchProps(eventID string) ([]model.PropQuote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Props[eventID], nil
}
