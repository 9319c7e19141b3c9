package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendScout/internal/model"
)

func TestMACD_LineIsEMADifference(t *testing.T) {
	closes := []float64{50, 53, 49, 51, 55, 54, 52, 58, 57, 60, 59, 61}
	s := seriesFromCloses(t, closes)

	macd, err := MACD(s, 3, 6, 4)
	require.NoError(t, err)

	emaShort, err := EMA(s, 3)
	require.NoError(t, err)
	emaLong, err := EMA(s, 6)
	require.NoError(t, err)

	for i := range closes {
		assert.InDelta(t, emaShort.At(i)-emaLong.At(i), macd.Line.At(i), 1e-9, "index %d", i)
		assert.InDelta(t, macd.Line.At(i)-macd.Signal.At(i), macd.Histogram.At(i), 1e-9, "index %d", i)
	}
}

func TestMACD_SignalSeedsAtFirstValue(t *testing.T) {
	s := seriesFromCloses(t, []float64{50, 53, 49, 51})
	macd, err := MACD(s, 2, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, macd.Line.At(0), macd.Signal.At(0))
	assert.Equal(t, 0.0, macd.Histogram.At(0))
}

func TestMACD_InvalidParams(t *testing.T) {
	s := seriesFromCloses(t, []float64{1, 2, 3})

	_, err := MACD(s, 0, 26, 9)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)

	_, err = MACD(s, 26, 12, 9)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)

	_, err = MACD(s, 12, 26, 0)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
}
