package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"DugoutEdge/internal/model"
)

const (
	defaultOddsAPIBaseURL = "https://api.the-odds-api.com/v4"
	oddsAPISport          = "baseball_mlb"
)

// Free-tier plans meter requests per month; a client-side limiter keeps a
// burst of per-event prop calls from burning the quota.
const oddsAPIRequestsPerSecond = 2

// OddsAPISource fetches market quotes and player props from The Odds API.
type OddsAPISource struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	limiter *rate.Limiter
}

// NewOddsAPISource creates a source with optional proxy support.
func NewOddsAPISource(baseURL, apiKey, proxyURL string) *OddsAPISource {
	if baseURL == "" {
		baseURL = defaultOddsAPIBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &OddsAPISource{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Limit(oddsAPIRequestsPerSecond), 1),
	}
}

func (s *OddsAPISource) Name() string { return "the-odds-api" }

// Odds API JSON shapes, trimmed to the fields we read.
type oaEvent struct {
	ID         string        `json:"id"`
	HomeTeam   string        `json:"home_team"`
	AwayTeam   string        `json:"away_team"`
	Bookmakers []oaBookmaker `json:"bookmakers"`
}

type oaBookmaker struct {
	Key     string     `json:"key"`
	Markets []oaMarket `json:"markets"`
}

type oaMarket struct {
	Key      string      `json:"key"`
	Outcomes []oaOutcome `json:"outcomes"`
}

type oaOutcome struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int     `json:"price"`
	Point       float64 `json:"point"`
}

// FetchQuotes returns every bookmaker's moneyline, run line, and total
// for the slate. One quote per bookmaker per market; the collector
// aggregates across books downstream.
func (s *OddsAPISource) FetchQuotes() ([]model.MarketQuote, error) {
	endpoint := fmt.Sprintf("%s/sports/%s/odds?regions=us&markets=h2h,spreads,totals&oddsFormat=american&apiKey=%s",
		s.BaseURL, oddsAPISport, url.QueryEscape(s.APIKey))

	var events []oaEvent
	if err := s.getJSON(endpoint, &events); err != nil {
		return nil, fmt.Errorf("fetch odds: %w", err)
	}

	now := time.Now()
	var quotes []model.MarketQuote
	for _, e := range events {
		for _, bm := range e.Bookmakers {
			for _, m := range bm.Markets {
				q, ok := quoteFromMarket(&e, bm.Key, &m)
				if !ok {
					continue
				}
				q.FetchedAt = now
				quotes = append(quotes, q)
			}
		}
	}
	return quotes, nil
}

func quoteFromMarket(e *oaEvent, bookmaker string, m *oaMarket) (model.MarketQuote, bool) {
	q := model.MarketQuote{EventID: e.ID, Bookmaker: bookmaker}
	switch m.Key {
	case "h2h":
		q.Market = model.MarketMoneyline
		for _, o := range m.Outcomes {
			if o.Name == e.HomeTeam {
				q.HomePrice = o.Price
			} else if o.Name == e.AwayTeam {
				q.AwayPrice = o.Price
			}
		}
		return q, q.HomePrice != 0 && q.AwayPrice != 0
	case "spreads":
		q.Market = model.MarketSpread
		for _, o := range m.Outcomes {
			if o.Name == e.HomeTeam {
				q.HomePrice = o.Price
				q.Line = o.Point
			} else if o.Name == e.AwayTeam {
				q.AwayPrice = o.Price
			}
		}
		return q, q.HomePrice != 0 && q.AwayPrice != 0
	case "totals":
		q.Market = model.MarketTotal
		for _, o := range m.Outcomes {
			switch strings.ToLower(o.Name) {
			case "over":
				q.OverPrice = o.Price
				q.Line = o.Point
			case "under":
				q.UnderPrice = o.Price
			}
		}
		return q, q.OverPrice != 0 && q.UnderPrice != 0
	}
	return q, false
}

// FetchProps returns player proposition lines for one event. Prop markets
// cost one metered request per event, so callers should lean on the cache.
func (s *OddsAPISource) FetchProps(eventID string) ([]model.PropQuote, error) {
	markets := strings.Join([]string{
		model.PropPitcherStrikeouts,
		model.PropBatterHits,
		model.PropBatterRunsScored,
		model.PropBatterRBIs,
		model.PropBatterTotalBases,
	}, ",")
	endpoint := fmt.Sprintf("%s/sports/%s/events/%s/odds?regions=us&markets=%s&oddsFormat=american&apiKey=%s",
		s.BaseURL, oddsAPISport, url.PathEscape(eventID), markets, url.QueryEscape(s.APIKey))

	var e oaEvent
	if err := s.getJSON(endpoint, &e); err != nil {
		return nil, fmt.Errorf("fetch props for %s: %w", eventID, err)
	}

	now := time.Now()
	// keyed by market/player; over and under arrive as separate outcomes
	props := map[string]*model.PropQuote{}
	for _, bm := range e.Bookmakers {
		for _, m := range bm.Markets {
			for _, o := range m.Outcomes {
				key := m.Key + "/" + o.Description
				p, ok := props[key]
				if !ok {
					p = &model.PropQuote{
						EventID:    eventID,
						PlayerName: o.Description,
						PropType:   m.Key,
						Line:       o.Point,
						Bookmaker:  bm.Key,
						FetchedAt:  now,
					}
					props[key] = p
				}
				switch strings.ToLower(o.Name) {
				case "over":
					p.OverPrice = o.Price
				case "under":
					p.UnderPrice = o.Price
				}
			}
		}
	}

	out := make([]model.PropQuote, 0, len(props))
	for _, p := range props {
		out = append(out, *p)
	}
	return out, nil
}

func (s *OddsAPISource) getJSON(endpoint string, v any) error {
	if err := s.limiter.Wait(context.Background()); err != nil {
		return err
	}
	resp, err := s.Client.Get(endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if remaining := resp.Header.Get("X-Requests-Remaining"); remaining != "" {
		log.Printf("[INFO] odds api requests remaining: %s", remaining)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
