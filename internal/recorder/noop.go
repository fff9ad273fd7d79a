package recorder

import "DugoutEdge/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordPass(_ *PassSummary, _ []model.Opportunity, _ []model.ParlayCombination, _ []SkippedItem) error {
	return nil
}

func (n *NoopRecorder) Close() error { return nil }
