package collector

import (
	"errors"
	"testing"
	"time"

	"DugoutEdge/internal/cache"
	"DugoutEdge/internal/model"
)

func testCollector(sched *MockScheduleSource, stats *MockStatsSource, odds *MockOddsSource, store *cache.Store) *Collector {
	c := New(sched, stats, odds, store)
	c.sleep = func(time.Duration) {}
	return c
}

func TestEventsServedFromCache(t *testing.T) {
	sched := &MockScheduleSource{Events: []model.Event{{ID: "401", HomeTeam: "NYY", AwayTeam: "BOS"}}}
	odds := &MockOddsSource{}
	c := testCollector(sched, &MockStatsSource{}, odds, nil)

	events, stale, err := c.Events()
	if err != nil {
		t.Fatalf("Events() error: %v", err)
	}
	if stale {
		t.Error("fresh fetch reported stale")
	}
	if len(events) != 1 || events[0].ID != "401" {
		t.Fatalf("unexpected events: %+v", events)
	}

	// A second call inside the TTL must not hit the source again.
	sched.Err = errors.New("source down")
	if _, _, err := c.Events(); err != nil {
		t.Errorf("cached Events() error: %v", err)
	}
}

func TestQuotesStaleFallback(t *testing.T) {
	// A zero TTL expires entries immediately while the fallback window
	// keeps them reachable for GetStale.
	ttls := cache.DefaultTTLs()
	ttls[cache.CategoryQuotes] = 0
	store := cache.New(ttls, 30*time.Minute)

	odds := &MockOddsSource{Quotes: []model.MarketQuote{
		{EventID: "401", Market: model.MarketMoneyline, HomePrice: -150, AwayPrice: 130, Bookmaker: "draftkings"},
	}}
	c := testCollector(&MockScheduleSource{}, &MockStatsSource{}, odds, store)

	if _, stale, err := c.Quotes(); err != nil || stale {
		t.Fatalf("priming fetch: stale=%v err=%v", stale, err)
	}

	odds.Err = errors.New("rate limited")
	odds.Calls = 0
	grouped, stale, err := c.Quotes()
	if err != nil {
		t.Fatalf("Quotes() with stale fallback: %v", err)
	}
	if !stale {
		t.Error("fallback result not flagged stale")
	}
	if odds.Calls != defaultRetries {
		t.Errorf("source called %d times, want %d retries", odds.Calls, defaultRetries)
	}
	if len(grouped["401"]) != 1 {
		t.Errorf("stale quotes lost: %+v", grouped)
	}
}

func TestQuotesExhaustedIsDataUnavailable(t *testing.T) {
	odds := &MockOddsSource{Err: errors.New("connection refused")}
	c := testCollector(&MockScheduleSource{}, &MockStatsSource{}, odds, nil)

	_, _, err := c.Quotes()
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
	if odds.Calls != defaultRetries {
		t.Errorf("source called %d times, want %d", odds.Calls, defaultRetries)
	}
}

func TestTeamFormOverlaysSeasonStats(t *testing.T) {
	results := make([]model.GameResult, 0, 10)
	for i := 0; i < 10; i++ {
		results = append(results, model.GameResult{RunsScored: 5, RunsAllowed: 4, Won: i%2 == 0})
	}
	stats := &MockStatsSource{
		Results: map[string][]model.GameResult{"NYY": results},
		Seasons: map[string]*model.TeamSeasonStats{
			"NYY": {Team: "NYY", WinPct: 0.580, BattingAvg: 0.262, BattingKRate: 0.205},
		},
	}
	c := testCollector(&MockScheduleSource{}, stats, &MockOddsSource{}, nil)

	summary, err := c.TeamForm("NYY")
	if err != nil {
		t.Fatalf("TeamForm() error: %v", err)
	}
	if summary.WinPct != 0.5 {
		t.Errorf("recent win pct = %.3f, want 0.500", summary.WinPct)
	}
	if summary.SeasonWinPct != 0.580 {
		t.Errorf("season win pct = %.3f, want 0.580", summary.SeasonWinPct)
	}
	if summary.BattingAvg != 0.262 || summary.BattingKRate != 0.205 {
		t.Errorf("batting rates not overlaid: %+v", summary)
	}
	if summary.Stale {
		t.Error("fresh summary flagged stale")
	}
}

func TestPitcherMetricsUnannouncedStarter(t *testing.T) {
	c := testCollector(&MockScheduleSource{}, &MockStatsSource{}, &MockOddsSource{}, nil)
	for _, name := range []string{"", "TBD"} {
		m, stale, err := c.PitcherMetrics(name)
		if m != nil || stale || err != nil {
			t.Errorf("PitcherMetrics(%q) = %v, %v, %v; want nil, false, nil", name, m, stale, err)
		}
	}
}

func TestConsensusMoneyline(t *testing.T) {
	quotes := []model.MarketQuote{
		{EventID: "401", Market: model.MarketMoneyline, HomePrice: -110, AwayPrice: -110, Bookmaker: "draftkings"},
		{EventID: "401", Market: model.MarketMoneyline, HomePrice: 100, AwayPrice: -120, Bookmaker: "fanduel"},
	}

	q := Consensus(quotes, model.MarketMoneyline)
	if q == nil {
		t.Fatal("Consensus() = nil")
	}
	// Decimal mean of 1.909 and 2.0 is 1.955, back to American -105.
	if q.HomePrice != -105 {
		t.Errorf("home price = %d, want -105", q.HomePrice)
	}
	if q.Bookmaker != "consensus" {
		t.Errorf("bookmaker = %q, want consensus", q.Bookmaker)
	}
}

func TestConsensusModalLine(t *testing.T) {
	quotes := []model.MarketQuote{
		{EventID: "401", Market: model.MarketTotal, Line: 8.5, OverPrice: -110, UnderPrice: -110},
		{EventID: "401", Market: model.MarketTotal, Line: 8.5, OverPrice: -115, UnderPrice: -105},
		{EventID: "401", Market: model.MarketTotal, Line: 9.0, OverPrice: 150, UnderPrice: -180},
	}

	q := Consensus(quotes, model.MarketTotal)
	if q == nil {
		t.Fatal("Consensus() = nil")
	}
	if q.Line != 8.5 {
		t.Errorf("line = %.1f, want modal 8.5", q.Line)
	}
	// The 9.0 book's +150 over must not drag the mean.
	if q.OverPrice > -105 || q.OverPrice < -120 {
		t.Errorf("over price = %d, outside the 8.5 books' range", q.OverPrice)
	}
}

func TestConsensusMissingMarket(t *testing.T) {
	quotes := []model.MarketQuote{
		{EventID: "401", Market: model.MarketMoneyline, HomePrice: -150, AwayPrice: 130},
	}
	if q := Consensus(quotes, model.MarketTotal); q != nil {
		t.Errorf("Consensus() = %+v, want nil for unposted market", q)
	}
}
