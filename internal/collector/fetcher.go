package collector

import (
	"context"

	"TrendScout/internal/model"
)

// Fetcher retrieves raw, unvalidated daily bars for one symbol. Ordering
// and consistency checks are the series store's job.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Bar, error)
	Name() string
}
