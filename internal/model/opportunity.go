package model

// Confidence tiers a single-bet opportunity by edge magnitude.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// RiskTier classifies a parlay by its combined probability.
type RiskTier string

const (
	RiskLow      RiskTier = "LOW"
	RiskModerate RiskTier = "MODERATE"
	RiskHigh     RiskTier = "HIGH"
)

// Opportunity is a flagged value bet for one side of one market.
// Produced by the edge engine, consumed by staking and parlay assembly;
// not persisted beyond the pass that created it except through the recorder.
type Opportunity struct {
	EventID       string
	Matchup       string
	Market        MarketType
	Side          Side
	Selection     string // team abbreviation, or e.g. "Over 8.5"
	Odds          int    // American
	ModelProb     float64
	ImpliedProb   float64
	Edge          float64 // model prob − implied prob, after guard boosts
	Confidence    Confidence
	StakeFraction float64 // fraction of bankroll recommended
	Stake         float64
	StaleData     bool
}

// ParlayLeg is one selection inside a combination, carrying the fields a
// presentation layer needs to place the leg.
type ParlayLeg struct {
	EventID     string
	Market      MarketType
	Selection   string
	Odds        int
	Probability float64
}

// ParlayCombination is a ranked multi-leg candidate. Probability is the
// product of the leg probabilities, an independence approximation that is
// least accurate for legs drawn from the same game.
type ParlayCombination struct {
	Pattern      string
	Description  string
	Legs         []ParlayLeg
	Probability  float64
	DecimalOdds  float64
	AmericanOdds int
	Payout       float64 // on the configured reference stake
	Risk         RiskTier
}
