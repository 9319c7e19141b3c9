package indicator

import (
	"fmt"

	"TrendScout/internal/model"
)

// MACDSeries holds the MACD line, its signal line, and the histogram.
type MACDSeries struct {
	Line      model.IndicatorSeries
	Signal    model.IndicatorSeries
	Histogram model.IndicatorSeries
}

// MACD computes the moving average convergence divergence: the difference
// between a short and a long EMA of the close, an EMA(signalPeriod) of
// that difference, and their histogram. Like EMA, there is no warm-up gap.
func MACD(s *model.Series, shortPeriod, longPeriod, signalPeriod int) (MACDSeries, error) {
	if shortPeriod < 1 || longPeriod < 1 || signalPeriod < 1 {
		return MACDSeries{}, fmt.Errorf("%w: macd periods must be >= 1, got %d/%d/%d",
			model.ErrInvalidParameter, shortPeriod, longPeriod, signalPeriod)
	}
	if shortPeriod >= longPeriod {
		return MACDSeries{}, fmt.Errorf("%w: macd short period %d must be below long period %d",
			model.ErrInvalidParameter, shortPeriod, longPeriod)
	}

	closes := s.Closes()
	emaShort := emaOf(closes, shortPeriod)
	emaLong := emaOf(closes, longPeriod)

	line := make([]float64, len(closes))
	for i := range line {
		line[i] = emaShort[i] - emaLong[i]
	}
	signal := emaOf(line, signalPeriod)

	hist := make([]float64, len(closes))
	for i := range hist {
		hist[i] = line[i] - signal[i]
	}

	return MACDSeries{
		Line:      model.IndicatorSeries{Name: fmt.Sprintf("macd_%d_%d", shortPeriod, longPeriod), Values: line},
		Signal:    model.IndicatorSeries{Name: fmt.Sprintf("macd_signal_%d", signalPeriod), Values: signal},
		Histogram: model.IndicatorSeries{Name: "macd_hist", Values: hist},
	}, nil
}
