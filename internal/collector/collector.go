package collector

import (
	"errors"
	"fmt"
	"log"
	"time"

	"DugoutEdge/internal/cache"
	"DugoutEdge/internal/form"
	"DugoutEdge/internal/model"
	"DugoutEdge/internal/oddsmath"
)

// ErrDataUnavailable marks a fetch that exhausted its retries with no
// usable stale cache. The affected item is skipped, never the whole pass.
var ErrDataUnavailable = errors.New("data unavailable")

const (
	defaultRetries   = 3
	defaultBaseDelay = time.Second
)

// Collector front-ends the data sources with the TTL cache, retry, and
// stale-fallback policy. Every accessor reports whether its result came
// from an expired cache entry.
type Collector struct {
	Schedule ScheduleSource
	Stats    StatsSource
	Odds     OddsSource

	store     *cache.Store
	retries   int
	baseDelay time.Duration
	sleep     func(time.Duration)
}

// New creates a Collector. A nil store gets a cache with default TTLs.
func New(schedule ScheduleSource, stats StatsSource, odds OddsSource, store *cache.Store) *Collector {
	if store == nil {
		store = cache.New(nil, 0)
	}
	return &Collector{
		Schedule:  schedule,
		Stats:     stats,
		Odds:      odds,
		store:     store,
		retries:   defaultRetries,
		baseDelay: defaultBaseDelay,
		sleep:     time.Sleep,
	}
}

// fetch serves from fresh cache when possible, otherwise retries the
// source with linearly growing backoff and falls back to a stale entry
// inside the fallback window.
func (c *Collector) fetch(cat cache.Category, key, source string, fn func() (any, error)) (any, bool, error) {
	if v, fresh := c.store.Get(cat, key); fresh {
		return v, false, nil
	}

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		v, err := fn()
		if err == nil {
			c.store.Put(cat, key, v)
			return v, false, nil
		}
		lastErr = err
		log.Printf("[WARN] %s fetch %s/%s attempt %d/%d failed: %v", source, cat, key, attempt, c.retries, err)
		if attempt < c.retries {
			c.sleep(c.baseDelay * time.Duration(attempt))
		}
	}

	if v, ok := c.store.GetStale(cat, key); ok {
		log.Printf("[WARN] %s serving stale %s/%s after fetch failure", source, cat, key)
		return v, true, nil
	}
	return nil, false, fmt.Errorf("%s %s/%s: %w: %v", source, cat, key, ErrDataUnavailable, lastErr)
}

// Events returns today's slate.
func (c *Collector) Events() ([]model.Event, bool, error) {
	v, stale, err := c.fetch(cache.CategorySchedule, "today", c.Schedule.Name(), func() (any, error) {
		return c.Schedule.FetchSchedule()
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]model.Event), stale, nil
}

// TeamForm builds a team's form summary from its recent results and
// season rates. Season-rate failures are tolerated: the summary keeps its
// league-average fallbacks. The Stale flag is set when any input came
// from expired cache.
func (c *Collector) TeamForm(team string) (*model.FormSummary, error) {
	v, stale, err := c.fetch(cache.CategoryForm, "results/"+team, c.Stats.Name(), func() (any, error) {
		return c.Stats.FetchRecentResults(team)
	})
	if err != nil {
		return nil, err
	}

	summary := form.Summarize(team, v.([]model.GameResult))
	summary.Stale = stale

	sv, seasonStale, err := c.fetch(cache.CategoryForm, "season/"+team, c.Stats.Name(), func() (any, error) {
		return c.Stats.FetchSeasonStats(team)
	})
	if err != nil {
		log.Printf("[WARN] season stats for %s unavailable, keeping league-average rates: %v", team, err)
		return summary, nil
	}
	if stats := sv.(*model.TeamSeasonStats); stats != nil {
		form.ApplySeasonStats(summary, stats.WinPct, stats.BattingAvg, stats.BattingKRate)
	}
	summary.Stale = summary.Stale || seasonStale
	return summary, nil
}

// Quotes returns the slate's market quotes grouped by event.
func (c *Collector) Quotes() (map[string][]model.MarketQuote, bool, error) {
	v, stale, err := c.fetch(cache.CategoryQuotes, "all", c.Odds.Name(), func() (any, error) {
		return c.Odds.FetchQuotes()
	})
	if err != nil {
		return nil, false, err
	}

	grouped := make(map[string][]model.MarketQuote)
	for _, q := range v.([]model.MarketQuote) {
		grouped[q.EventID] = append(grouped[q.EventID], q)
	}
	return grouped, stale, nil
}

// Props returns player proposition lines for one event.
func (c *Collector) Props(eventID string) ([]model.PropQuote, bool, error) {
	v, stale, err := c.fetch(cache.CategoryProps, eventID, c.Odds.Name(), func() (any, error) {
		return c.Odds.FetchProps(eventID)
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]model.PropQuote), stale, nil
}

// PitcherMetrics returns a starter's metrics, or nil without error when
// the starter is unannounced.
func (c *Collector) PitcherMetrics(playerName string) (*model.PitcherMetrics, bool, error) {
	if playerName == "" || playerName == "TBD" {
		return nil, false, nil
	}
	v, stale, err := c.fetch(cache.CategoryForm, "pitcher/"+playerName, c.Stats.Name(), func() (any, error) {
		return c.Stats.FetchPitcherMetrics(playerName)
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*model.PitcherMetrics), stale, nil
}

// Consensus condenses one event's quotes for a market into a single
// mean-priced quote. Averaging happens in decimal-odds space; American
// odds are discontinuous across the +/-100 boundary. For line markets
// only the books posting the most common line contribute. Returns nil
// when no book posts the market.
func Consensus(quotes []model.MarketQuote, market model.MarketType) *model.MarketQuote {
	var matching []model.MarketQuote
	for _, q := range quotes {
		if q.Market == market {
			matching = append(matching, q)
		}
	}
	if len(matching) == 0 {
		return nil
	}

	line := 0.0
	if market == model.MarketTotal || market == model.MarketSpread {
		line = modalLine(matching)
		kept := matching[:0]
		for _, q := range matching {
			if q.Line == line {
				kept = append(kept, q)
			}
		}
		matching = kept
	}

	out := &model.MarketQuote{
		EventID:   matching[0].EventID,
		Market:    market,
		Line:      line,
		Bookmaker: "consensus",
		FetchedAt: matching[0].FetchedAt,
	}
	out.HomePrice = meanPrice(matching, model.SideHome)
	out.AwayPrice = meanPrice(matching, model.SideAway)
	out.OverPrice = meanPrice(matching, model.SideOver)
	out.UnderPrice = meanPrice(matching, model.SideUnder)
	return out
}

func modalLine(quotes []model.MarketQuote) float64 {
	counts := map[float64]int{}
	best, bestCount := 0.0, 0
	for _, q := range quotes {
		counts[q.Line]++
		if counts[q.Line] > bestCount {
			best, bestCount = q.Line, counts[q.Line]
		}
	}
	return best
}

// meanPrice averages one side's prices in decimal space and converts the
// mean back to American odds. Unpriced sides are skipped.
func meanPrice(quotes []model.MarketQuote, side model.Side) int {
	sum := 0.0
	n := 0
	for i := range quotes {
		price := quotes[i].Price(side)
		if price == 0 {
			continue
		}
		dec, err := oddsmath.ToDecimal(price)
		if err != nil {
			continue
		}
		sum += dec
		n++
	}
	if n == 0 {
		return 0
	}
	american, err := oddsmath.ToAmerican(sum / float64(n))
	if err != nil {
		return 0
	}
	return american
}
