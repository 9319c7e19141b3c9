package recorder

import "TrendScout/internal/pipeline"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordResult(_ *pipeline.Result) error    { return nil }
func (n *NoopRecorder) RecordReport(_ *pipeline.RunReport) error { return nil }
func (n *NoopRecorder) Close() error                             { return nil }
