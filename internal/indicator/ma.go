package indicator

import (
	"fmt"
	"math"

	"TrendScout/internal/model"
)

// SMA computes the simple moving average of the close column over a
// trailing window. Entries before index period-1 are undefined.
func SMA(s *model.Series, period int) (model.IndicatorSeries, error) {
	if period < 1 {
		return model.IndicatorSeries{}, fmt.Errorf("%w: sma period must be >= 1, got %d", model.ErrInvalidParameter, period)
	}
	out := model.NewUndefined(fmt.Sprintf("sma_%d", period), s.Len())
	closes := s.Closes()

	sum := 0.0
	for i, c := range closes {
		sum += c
		if i >= period {
			sum -= closes[i-period]
		}
		if i >= period-1 {
			out.Values[i] = sum / float64(period)
		}
	}
	return out, nil
}

// EMA computes the exponential moving average of the close column,
// seeded with the first close. Every index is defined: there is no
// warm-up gap.
func EMA(s *model.Series, period int) (model.IndicatorSeries, error) {
	if period < 1 {
		return model.IndicatorSeries{}, fmt.Errorf("%w: ema period must be >= 1, got %d", model.ErrInvalidParameter, period)
	}
	values := emaOf(s.Closes(), period)
	return model.IndicatorSeries{Name: fmt.Sprintf("ema_%d", period), Values: values}, nil
}

// emaOf applies the EMA recurrence to an arbitrary column. NaN inputs
// propagate, so a column with undefined leading entries stays undefined
// there.
func emaOf(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	k := 2.0 / float64(period+1)
	for i, v := range values {
		if i == 0 || math.IsNaN(out[i-1]) {
			out[i] = v
			continue
		}
		out[i] = v*k + out[i-1]*(1.0-k)
	}
	return out
}
