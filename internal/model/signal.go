package model

import "time"

// Signal is the per-timestep classification outcome.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)

// SignalPoint is one classified timestep together with the indicator
// values that contributed to the decision. Timestamps where any required
// indicator was still warming up are never emitted.
type SignalPoint struct {
	Time       time.Time
	Signal     Signal
	Rationale  string
	Close      float64
	RSI        float64
	BollMiddle float64
	BollUpper  float64
	BollLower  float64
	EMAShort   float64
	EMALong    float64
}
