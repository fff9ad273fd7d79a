package recorder

import (
	"time"

	"DugoutEdge/internal/model"
)

// PassSummary aggregates one analysis run.
type PassSummary struct {
	PassID        string
	StartedAt     time.Time
	Events        int
	Opportunities int
	Parlays       int
	Skipped       int
	StaleData     bool
}

// SkippedItem records one event or data source dropped from a pass, with
// the stage it failed at and why.
type SkippedItem struct {
	EventID string
	Stage   string
	Reason  string
}

// Recorder persists analysis history.
type Recorder interface {
	RecordPass(pass *PassSummary, opps []model.Opportunity, parlays []model.ParlayCombination, skipped []SkippedItem) error
	Close() error
}
