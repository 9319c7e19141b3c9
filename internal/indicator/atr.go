package indicator

import (
	"fmt"
	"math"

	"TrendScout/internal/model"
)

// ATR computes the average true range: a simple moving average over the
// true-range column. The first true range is high-low; later ones take
// the previous close into account. Entries before index period-1 are
// undefined.
func ATR(s *model.Series, period int) (model.IndicatorSeries, error) {
	if period < 1 {
		return model.IndicatorSeries{}, fmt.Errorf("%w: atr period must be >= 1, got %d", model.ErrInvalidParameter, period)
	}
	out := model.NewUndefined(fmt.Sprintf("atr_%d", period), s.Len())

	tr := make([]float64, s.Len())
	for i, b := range s.Bars {
		if i == 0 {
			tr[i] = b.High - b.Low
			continue
		}
		prevClose := s.Bars[i-1].Close
		tr[i] = math.Max(b.High-b.Low, math.Max(math.Abs(b.High-prevClose), math.Abs(b.Low-prevClose)))
	}

	sum := 0.0
	for i, v := range tr {
		sum += v
		if i >= period {
			sum -= tr[i-period]
		}
		if i >= period-1 {
			out.Values[i] = sum / float64(period)
		}
	}
	return out, nil
}

// VWAP computes the cumulative volume-weighted average of the typical
// price (high+low+close)/3. Entries are undefined while the cumulative
// volume is still zero.
func VWAP(s *model.Series) model.IndicatorSeries {
	out := model.NewUndefined("vwap", s.Len())

	var cumVP, cumVol float64
	for i, b := range s.Bars {
		typical := (b.High + b.Low + b.Close) / 3.0
		cumVP += typical * float64(b.Volume)
		cumVol += float64(b.Volume)
		if cumVol > 0 {
			out.Values[i] = cumVP / cumVol
		}
	}
	return out
}
