package indicator

import (
	"fmt"
	"math"

	"TrendScout/internal/model"
)

// Bands holds the three Bollinger Band series, aligned with the source
// Series.
type Bands struct {
	Middle model.IndicatorSeries
	Upper  model.IndicatorSeries
	Lower  model.IndicatorSeries
}

// BollingerBands computes a volatility envelope: middle band is the
// SMA(period) of the close, band width is mult times the population
// standard deviation of the same window. Entries before index period-1
// are undefined.
func BollingerBands(s *model.Series, period int, mult float64) (Bands, error) {
	if period < 2 {
		return Bands{}, fmt.Errorf("%w: bollinger period must be >= 2, got %d", model.ErrInvalidParameter, period)
	}
	if mult <= 0 {
		return Bands{}, fmt.Errorf("%w: bollinger multiplier must be positive, got %g", model.ErrInvalidParameter, mult)
	}

	bands := Bands{
		Middle: model.NewUndefined(fmt.Sprintf("bb_mid_%d", period), s.Len()),
		Upper:  model.NewUndefined(fmt.Sprintf("bb_upper_%d", period), s.Len()),
		Lower:  model.NewUndefined(fmt.Sprintf("bb_lower_%d", period), s.Len()),
	}
	closes := s.Closes()

	for i := period - 1; i < len(closes); i++ {
		window := closes[i-period+1 : i+1]
		mean := 0.0
		for _, c := range window {
			mean += c
		}
		mean /= float64(period)

		variance := 0.0
		for _, c := range window {
			d := c - mean
			variance += d * d
		}
		sd := math.Sqrt(variance / float64(period))

		width := mult * sd
		bands.Middle.Values[i] = mean
		bands.Upper.Values[i] = mean + width
		bands.Lower.Values[i] = mean - width
	}
	return bands, nil
}
