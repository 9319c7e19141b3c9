package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"TrendScout/internal/model"
	"TrendScout/internal/series"
)

// seriesFromCloses builds a valid flat-bar series where every OHLC field
// equals the close, which is all most indicator tests need.
func seriesFromCloses(t *testing.T, closes []float64) *model.Series {
	t.Helper()
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{Time: day.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	s, err := series.Build("TEST", bars)
	require.NoError(t, err)
	return s
}

// requireUndefinedBefore asserts the warm-up gap: undefined strictly
// before index n, defined from n on.
func requireUndefinedBefore(t *testing.T, s model.IndicatorSeries, n int) {
	t.Helper()
	for i := 0; i < s.Len(); i++ {
		if i < n {
			require.False(t, s.Defined(i), "%s: index %d should be undefined", s.Name, i)
		} else {
			require.True(t, s.Defined(i), "%s: index %d should be defined", s.Name, i)
		}
	}
}
