package recorder

import "TrendScout/internal/pipeline"

// Recorder persists pipeline output for later analysis. Implementations
// must keep one row per timestamp in the indicator table, representing
// warm-up values as NULL rather than dropping the row.
type Recorder interface {
	RecordResult(res *pipeline.Result) error
	RecordReport(rep *pipeline.RunReport) error
	Close() error
}
