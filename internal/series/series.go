package series

import (
	"fmt"
	"time"

	"TrendScout/internal/model"
)

// Build validates raw bars and assembles them into a Series. It fails with
// a ErrValidation-wrapped error when timestamps are non-monotonic or
// duplicated, any OHLC value is non-positive, high < low, close falls
// outside [low, high], or volume is negative. The input slice is copied so
// the returned Series is exclusively owned by the caller.
func Build(symbol string, bars []model.Bar) (*model.Series, error) {
	for i, b := range bars {
		if i > 0 && !bars[i-1].Time.Before(b.Time) {
			return nil, fmt.Errorf("%w: bar %d: timestamp %s not after previous %s",
				model.ErrValidation, i, b.Time.Format(time.RFC3339), bars[i-1].Time.Format(time.RFC3339))
		}
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			return nil, fmt.Errorf("%w: bar %d: non-positive OHLC value", model.ErrValidation, i)
		}
		if b.High < b.Low {
			return nil, fmt.Errorf("%w: bar %d: high %.4f below low %.4f", model.ErrValidation, i, b.High, b.Low)
		}
		if b.Close < b.Low || b.Close > b.High {
			return nil, fmt.Errorf("%w: bar %d: close %.4f outside [%.4f, %.4f]", model.ErrValidation, i, b.Close, b.Low, b.High)
		}
		if b.Volume < 0 {
			return nil, fmt.Errorf("%w: bar %d: negative volume %d", model.ErrValidation, i, b.Volume)
		}
	}

	owned := make([]model.Bar, len(bars))
	copy(owned, bars)

	return &model.Series{
		Symbol:    symbol,
		Bars:      owned,
		FetchedAt: time.Now(),
	}, nil
}
