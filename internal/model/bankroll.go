package model

import "time"

// BankrollState holds the staking inputs persisted between runs. The
// engine never decrements the bankroll; actual wager tracking happens
// outside this system. RecentExposures keeps the total recommended stake
// of the last passes for the status report.
type BankrollState struct {
	Bankroll         float64   `json:"bankroll"`
	KellyFraction    float64   `json:"kelly_fraction"`
	MaxStakeFraction float64   `json:"max_stake_fraction"`
	RecentExposures  []float64 `json:"recent_exposures"`
	UpdatedAt        time.Time `json:"updated_at"`
}
