package model

import "time"

// MarketType identifies a betting market.
type MarketType string

const (
	MarketMoneyline  MarketType = "moneyline"
	MarketSpread     MarketType = "spread"
	MarketTotal      MarketType = "total"
	MarketPlayerProp MarketType = "player_prop"
)

// Side identifies a selection within a market.
type Side string

const (
	SideHome  Side = "home"
	SideAway  Side = "away"
	SideOver  Side = "over"
	SideUnder Side = "under"
)

// MarketQuote holds one bookmaker's prices for a single market of a game.
// Prices use the American odds convention. Line is the spread or total
// line and is zero for moneyline quotes.
type MarketQuote struct {
	EventID    string
	Market     MarketType
	HomePrice  int
	AwayPrice  int
	OverPrice  int
	UnderPrice int
	Line       float64
	Bookmaker  string
	FetchedAt  time.Time
}

// Price returns the quoted American odds for the given side.
func (q *MarketQuote) Price(side Side) int {
	switch side {
	case SideHome:
		return q.HomePrice
	case SideAway:
		return q.AwayPrice
	case SideOver:
		return q.OverPrice
	case SideUnder:
		return q.UnderPrice
	}
	return 0
}

// Common prop types as named by The Odds API.
const (
	PropPitcherStrikeouts = "pitcher_strikeouts"
	PropBatterHits        = "batter_hits"
	PropBatterRunsScored  = "batter_runs_scored"
	PropBatterRBIs        = "batter_rbis"
	PropBatterTotalBases  = "batter_total_bases"
)

// PropQuote holds one player proposition line and its prices.
type PropQuote struct {
	EventID    string
	PlayerName string
	PropType   string // one of the Prop* constants
	Line       float64
	OverPrice  int
	UnderPrice int
	Bookmaker  string
	FetchedAt  time.Time
}
