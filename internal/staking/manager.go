package staking

import (
	"log"
	"sync"

	"DugoutEdge/internal/model"
)

// Manager answers stake recommendations against a persisted bankroll
// state. The bankroll itself is read-only input: recommendations never
// decrement it, only the recent-exposure history changes between passes.
type Manager struct {
	mu       sync.Mutex
	state    *model.BankrollState
	filePath string
}

// NewManager loads (or initializes) the bankroll state from disk. The
// configured values seed a fresh state; an existing file wins so the
// bankroll can be adjusted between runs without touching config.
func NewManager(filePath string, bankroll, kellyFraction, maxStakeFraction float64) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}

	if state.Bankroll == 0 {
		state.Bankroll = bankroll
		state.KellyFraction = kellyFraction
		state.MaxStakeFraction = maxStakeFraction
	}
	if state.MaxStakeFraction <= 0 {
		state.MaxStakeFraction = DefaultMaxStakeFraction
	}

	m := &Manager{state: state, filePath: filePath}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// State returns a copy of the current bankroll state.
func (m *Manager) State() model.BankrollState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.state
}

// Recommend sizes a stake for one opportunity using the managed bankroll.
func (m *Manager) Recommend(trueProb float64, offeredOdds int) (stake, fraction float64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return KellyStake(trueProb, offeredOdds, m.state.Bankroll, m.state.KellyFraction, m.state.MaxStakeFraction)
}

// RecordPassExposure appends one pass's total recommended stake to the
// rolling history (last 14 passes kept) and persists the state.
func (m *Manager) RecordPassExposure(total float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.RecentExposures = append(m.state.RecentExposures, total)
	if len(m.state.RecentExposures) > 14 {
		m.state.RecentExposures = m.state.RecentExposures[len(m.state.RecentExposures)-14:]
	}
	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save bankroll state: %v", err)
	}
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}
