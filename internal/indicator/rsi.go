package indicator

import (
	"fmt"

	"TrendScout/internal/model"
)

// RSI computes the Wilder-smoothed Relative Strength Index over the close
// column. Entries before index period are undefined: the value at index
// period uses the simple average of the first period price changes, every
// later value uses Wilder smoothing with factor 1/period.
//
// A flat window (no gains, no losses) yields the neutral value 50; a
// window with no losses yields 100.
func RSI(s *model.Series, period int) (model.IndicatorSeries, error) {
	if period < 2 {
		return model.IndicatorSeries{}, fmt.Errorf("%w: rsi period must be >= 2, got %d", model.ErrInvalidParameter, period)
	}
	out := model.NewUndefined(fmt.Sprintf("rsi_%d", period), s.Len())
	closes := s.Closes()
	if len(closes) < period+1 {
		return out, nil
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out.Values[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out.Values[i] = rsiValue(avgGain, avgLoss)
	}
	return out, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	switch {
	case avgGain == 0 && avgLoss == 0:
		return 50.0
	case avgLoss == 0:
		return 100.0
	}
	return 100.0 - 100.0/(1.0+avgGain/avgLoss)
}
