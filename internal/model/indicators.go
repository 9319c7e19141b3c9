package model

import "math"

// IndicatorSeries is a derived column aligned index-for-index with the
// Series it was computed from. NaN marks warm-up entries where not enough
// history exists to define a value.
type IndicatorSeries struct {
	Name   string
	Values []float64
}

// NewUndefined returns an all-undefined series of length n.
func NewUndefined(name string, n int) IndicatorSeries {
	values := make([]float64, n)
	for i := range values {
		values[i] = math.NaN()
	}
	return IndicatorSeries{Name: name, Values: values}
}

// Len returns the number of entries.
func (s IndicatorSeries) Len() int { return len(s.Values) }

// Defined reports whether the value at index i is defined.
func (s IndicatorSeries) Defined(i int) bool { return !math.IsNaN(s.Values[i]) }

// At returns the value at index i. NaN means undefined.
func (s IndicatorSeries) At(i int) float64 { return s.Values[i] }
