package model

import "time"

// GameStatus is the lifecycle state of a scheduled game.
type GameStatus string

const (
	StatusScheduled  GameStatus = "SCHEDULED"
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusFinal      GameStatus = "FINAL"
)

// Event represents a single MLB game on the schedule.
// Status and scores are refreshed on each re-fetch; everything else is
// fixed at ingestion.
type Event struct {
	ID          string
	HomeTeam    string
	AwayTeam    string
	StartTime   time.Time
	Status      GameStatus
	HomeScore   int
	AwayScore   int
	HomeStarter string // probable pitcher, "TBD" when unannounced
	AwayStarter string
	Venue       string
	FetchedAt   time.Time
}

// Matchup returns the conventional "AWAY @ HOME" label.
func (e *Event) Matchup() string {
	return e.AwayTeam + " @ " + e.HomeTeam
}

// GameResult is one past game outcome for a team. Sequences are ordered
// most recent last.
type GameResult struct {
	Date        time.Time
	Opponent    string
	RunsScored  int
	RunsAllowed int
	Won         bool
}
