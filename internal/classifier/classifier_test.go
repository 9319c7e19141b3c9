package classifier

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendScout/internal/indicator"
	"TrendScout/internal/model"
	"TrendScout/internal/series"
)

var nan = math.NaN()

func col(vals ...float64) model.IndicatorSeries {
	return model.IndicatorSeries{Name: "test", Values: vals}
}

func flatBands(middle, upper, lower model.IndicatorSeries) indicator.Bands {
	return indicator.Bands{Middle: middle, Upper: upper, Lower: lower}
}

func closesSeries(t *testing.T, closes ...float64) *model.Series {
	t.Helper()
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{Time: day.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 100}
	}
	s, err := series.Build("TEST", bars)
	require.NoError(t, err)
	return s
}

func TestClassify_OversoldBelowLowerBand_Buy(t *testing.T) {
	s := closesSeries(t, 100)
	in := Inputs{
		RSI:      col(25),
		Bands:    flatBands(col(105), col(110), col(100)),
		EMAShort: col(101),
		EMALong:  col(102),
	}
	points, err := Classify(s, in, DefaultThresholds)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, model.SignalBuy, points[0].Signal)
	assert.Equal(t, "oversold + below lower band", points[0].Rationale)
	assert.Equal(t, 25.0, points[0].RSI)
}

func TestClassify_OverboughtAboveUpperBand_Sell(t *testing.T) {
	s := closesSeries(t, 120)
	in := Inputs{
		RSI:      col(75),
		Bands:    flatBands(col(110), col(115), col(105)),
		EMAShort: col(111),
		EMALong:  col(110),
	}
	points, err := Classify(s, in, DefaultThresholds)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, model.SignalSell, points[0].Signal)
	assert.Equal(t, "overbought + above upper band", points[0].Rationale)
}

func TestClassify_BullishCrossover_Buy(t *testing.T) {
	s := closesSeries(t, 100, 101)
	in := Inputs{
		RSI:      col(50, 50),
		Bands:    flatBands(col(100, 100), col(120, 120), col(80, 80)),
		EMAShort: col(99, 102),
		EMALong:  col(100, 101),
	}
	points, err := Classify(s, in, DefaultThresholds)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, model.SignalHold, points[0].Signal)
	assert.Equal(t, model.SignalBuy, points[1].Signal)
	assert.Equal(t, "bullish crossover", points[1].Rationale)
}

func TestClassify_BearishCrossover_Sell(t *testing.T) {
	s := closesSeries(t, 100, 99)
	in := Inputs{
		RSI:      col(50, 50),
		Bands:    flatBands(col(100, 100), col(120, 120), col(80, 80)),
		EMAShort: col(101, 98),
		EMALong:  col(100, 99),
	}
	points, err := Classify(s, in, DefaultThresholds)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, model.SignalSell, points[1].Signal)
	assert.Equal(t, "bearish crossover", points[1].Rationale)
}

func TestClassify_EqualEMAs_NoCrossover(t *testing.T) {
	// Touching without crossing must not fire rules 3-4.
	s := closesSeries(t, 100, 100)
	in := Inputs{
		RSI:      col(50, 50),
		Bands:    flatBands(col(100, 100), col(120, 120), col(80, 80)),
		EMAShort: col(100, 100),
		EMALong:  col(100, 100),
	}
	points, err := Classify(s, in, DefaultThresholds)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, model.SignalHold, points[1].Signal)
}

func TestClassify_RuleOrder_OversoldWinsOverCrossover(t *testing.T) {
	s := closesSeries(t, 100, 80)
	in := Inputs{
		RSI:      col(50, 28),
		Bands:    flatBands(col(100, 100), col(120, 120), col(90, 90)),
		EMAShort: col(99, 102), // would be a bullish crossover too
		EMALong:  col(100, 101),
	}
	points, err := Classify(s, in, DefaultThresholds)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, model.SignalBuy, points[1].Signal)
	assert.Equal(t, "oversold + below lower band", points[1].Rationale)
}

func TestClassify_SkipsWarmup(t *testing.T) {
	s := closesSeries(t, 100, 101, 102)
	in := Inputs{
		RSI:      col(nan, nan, 50),
		Bands:    flatBands(col(nan, 100, 100), col(nan, 120, 120), col(nan, 80, 80)),
		EMAShort: col(100, 100, 100),
		EMALong:  col(100, 100, 100),
	}
	points, err := Classify(s, in, DefaultThresholds)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, s.Bars[2].Time, points[0].Time)
}

func TestClassify_FirstBar_NoPriorStep_Holds(t *testing.T) {
	s := closesSeries(t, 100)
	in := Inputs{
		RSI:      col(50),
		Bands:    flatBands(col(100), col(120), col(80)),
		EMAShort: col(101), // above long, but no previous step to compare
		EMALong:  col(100),
	}
	points, err := Classify(s, in, DefaultThresholds)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, model.SignalHold, points[0].Signal)
}

func TestClassify_InvalidThresholds(t *testing.T) {
	s := closesSeries(t, 100)
	in := Inputs{
		RSI:      col(50),
		Bands:    flatBands(col(100), col(120), col(80)),
		EMAShort: col(100),
		EMALong:  col(100),
	}
	for _, th := range []Thresholds{
		{BuyRSI: 0, SellRSI: 70},
		{BuyRSI: 30, SellRSI: 100},
		{BuyRSI: 70, SellRSI: 30},
		{BuyRSI: 50, SellRSI: 50},
	} {
		_, err := Classify(s, in, th)
		assert.ErrorIs(t, err, model.ErrInvalidParameter, "thresholds %+v", th)
	}
}

func TestClassify_MisalignedColumns(t *testing.T) {
	s := closesSeries(t, 100, 101)
	in := Inputs{
		RSI:      col(50), // one entry short
		Bands:    flatBands(col(100, 100), col(120, 120), col(80, 80)),
		EMAShort: col(100, 100),
		EMALong:  col(100, 100),
	}
	_, err := Classify(s, in, DefaultThresholds)
	assert.ErrorIs(t, err, model.ErrValidation)
}
