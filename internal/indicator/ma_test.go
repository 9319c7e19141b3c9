package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TrendScout/internal/model"
)

func TestEMA_HandComputed(t *testing.T) {
	// period 3 -> k = 0.5
	s := seriesFromCloses(t, []float64{10, 11, 12, 13})
	out, err := EMA(s, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 10.5, 11.25, 12.125}, out.Values)
}

func TestEMA_NoWarmupGap(t *testing.T) {
	closes := []float64{10, 11, 12, 11, 10, 9, 10, 11, 12, 13, 14}
	for _, period := range []int{1, 2, 5, 10, 50} {
		s := seriesFromCloses(t, closes)
		out, err := EMA(s, period)
		require.NoError(t, err)
		require.Equal(t, len(closes), out.Len())
		requireUndefinedBefore(t, out, 0)
	}
}

func TestEMA_PeriodOne_IsIdentity(t *testing.T) {
	closes := []float64{10, 11, 12, 13}
	s := seriesFromCloses(t, closes)
	out, err := EMA(s, 1)
	require.NoError(t, err)
	assert.Equal(t, closes, out.Values)
}

func TestEMA_InvalidPeriod(t *testing.T) {
	s := seriesFromCloses(t, []float64{10, 11})
	_, err := EMA(s, 0)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
}

func TestSMA_HandComputed(t *testing.T) {
	s := seriesFromCloses(t, []float64{1, 2, 3, 4, 5})
	out, err := SMA(s, 3)
	require.NoError(t, err)
	requireUndefinedBefore(t, out, 2)
	assert.Equal(t, 2.0, out.At(2))
	assert.Equal(t, 3.0, out.At(3))
	assert.Equal(t, 4.0, out.At(4))
}

func TestSMA_ShortSeries_AllUndefined(t *testing.T) {
	s := seriesFromCloses(t, []float64{1, 2, 3})
	out, err := SMA(s, 10)
	require.NoError(t, err)
	requireUndefinedBefore(t, out, out.Len())
}

func TestSMA_InvalidPeriod(t *testing.T) {
	s := seriesFromCloses(t, []float64{1, 2})
	_, err := SMA(s, 0)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
}
