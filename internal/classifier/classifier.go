package classifier

import (
	"fmt"

	"TrendScout/internal/indicator"
	"TrendScout/internal/model"
)

// Thresholds configures the oversold/overbought rule boundaries.
type Thresholds struct {
	BuyRSI  float64 // rule 1 fires at RSI <= BuyRSI
	SellRSI float64 // rule 2 fires at RSI >= SellRSI
}

// DefaultThresholds are the conventional 30/70 RSI boundaries.
var DefaultThresholds = Thresholds{BuyRSI: 30, SellRSI: 70}

// Validate checks the threshold configuration.
func (t Thresholds) Validate() error {
	if t.BuyRSI <= 0 || t.BuyRSI >= 100 || t.SellRSI <= 0 || t.SellRSI >= 100 {
		return fmt.Errorf("%w: rsi thresholds must be inside (0, 100), got %g/%g",
			model.ErrInvalidParameter, t.BuyRSI, t.SellRSI)
	}
	if t.BuyRSI >= t.SellRSI {
		return fmt.Errorf("%w: buy rsi threshold %g must be below sell threshold %g",
			model.ErrInvalidParameter, t.BuyRSI, t.SellRSI)
	}
	return nil
}

// Inputs are the indicator columns the classifier requires, all aligned
// with the same Series.
type Inputs struct {
	RSI      model.IndicatorSeries
	Bands    indicator.Bands
	EMAShort model.IndicatorSeries
	EMALong  model.IndicatorSeries
}

// Classify walks the series and labels every timestamp where all required
// indicators are defined. Rules are evaluated in fixed order, first match
// wins:
//
//  1. RSI <= buy threshold and close at or below the lower band -> BUY
//  2. RSI >= sell threshold and close at or above the upper band -> SELL
//  3. short EMA crossed above the long EMA since the previous bar -> BUY
//  4. short EMA crossed below the long EMA since the previous bar -> SELL
//  5. otherwise HOLD
//
// The classifier keeps no state across timestamps: crossover detection
// reads the previous bar's EMA values directly, so the very first bar of
// a series cannot fire rules 3-4. Timestamps inside any indicator's
// warm-up are skipped, not emitted as HOLD.
func Classify(s *model.Series, in Inputs, th Thresholds) ([]model.SignalPoint, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	n := s.Len()
	for _, col := range []model.IndicatorSeries{in.RSI, in.Bands.Middle, in.Bands.Upper, in.Bands.Lower, in.EMAShort, in.EMALong} {
		if col.Len() != n {
			return nil, fmt.Errorf("%w: indicator column %q has %d entries, series has %d",
				model.ErrValidation, col.Name, col.Len(), n)
		}
	}

	var points []model.SignalPoint
	for i := 0; i < n; i++ {
		if !in.RSI.Defined(i) || !in.Bands.Middle.Defined(i) || !in.Bands.Upper.Defined(i) ||
			!in.Bands.Lower.Defined(i) || !in.EMAShort.Defined(i) || !in.EMALong.Defined(i) {
			continue
		}

		p := model.SignalPoint{
			Time:       s.Bars[i].Time,
			Close:      s.Bars[i].Close,
			RSI:        in.RSI.At(i),
			BollMiddle: in.Bands.Middle.At(i),
			BollUpper:  in.Bands.Upper.At(i),
			BollLower:  in.Bands.Lower.At(i),
			EMAShort:   in.EMAShort.At(i),
			EMALong:    in.EMALong.At(i),
		}
		p.Signal, p.Rationale = evaluate(p, in, th, i)
		points = append(points, p)
	}
	return points, nil
}

func evaluate(p model.SignalPoint, in Inputs, th Thresholds, i int) (model.Signal, string) {
	switch {
	case p.RSI <= th.BuyRSI && p.Close <= p.BollLower:
		return model.SignalBuy, "oversold + below lower band"
	case p.RSI >= th.SellRSI && p.Close >= p.BollUpper:
		return model.SignalSell, "overbought + above upper band"
	}

	if i > 0 && in.EMAShort.Defined(i-1) && in.EMALong.Defined(i-1) {
		prevShort, prevLong := in.EMAShort.At(i-1), in.EMALong.At(i-1)
		if p.EMAShort > p.EMALong && prevShort <= prevLong {
			return model.SignalBuy, "bullish crossover"
		}
		if p.EMAShort < p.EMALong && prevShort >= prevLong {
			return model.SignalSell, "bearish crossover"
		}
	}
	return model.SignalHold, "no rule matched"
}
