package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"TrendScout/internal/classifier"
	"TrendScout/internal/collector"
	"TrendScout/internal/indicator"
	"TrendScout/internal/model"
	"TrendScout/internal/series"
)

// IndicatorConfig names every tunable the indicator set and classifier
// consume. It is validated once when the engine is built, never per call,
// and invalid values are rejected rather than clamped.
type IndicatorConfig struct {
	SMAPeriod  int
	EMAShort   int
	EMALong    int
	RSIPeriod  int
	BollPeriod int
	BollMult   float64
	MACDShort  int
	MACDLong   int
	MACDSignal int
	ATRPeriod  int
	Thresholds classifier.Thresholds
}

// DefaultIndicatorConfig mirrors the conventional daily-chart parameters.
func DefaultIndicatorConfig() IndicatorConfig {
	return IndicatorConfig{
		SMAPeriod:  20,
		EMAShort:   12,
		EMALong:    26,
		RSIPeriod:  14,
		BollPeriod: 20,
		BollMult:   2.0,
		MACDShort:  12,
		MACDLong:   26,
		MACDSignal: 9,
		ATRPeriod:  14,
		Thresholds: classifier.DefaultThresholds,
	}
}

// Validate checks every parameter constraint up front.
func (c IndicatorConfig) Validate() error {
	if c.SMAPeriod < 1 {
		return fmt.Errorf("%w: sma period must be >= 1, got %d", model.ErrInvalidParameter, c.SMAPeriod)
	}
	if c.EMAShort < 1 || c.EMALong < 1 {
		return fmt.Errorf("%w: ema periods must be >= 1, got %d/%d", model.ErrInvalidParameter, c.EMAShort, c.EMALong)
	}
	if c.EMAShort >= c.EMALong {
		return fmt.Errorf("%w: ema short period %d must be below long period %d", model.ErrInvalidParameter, c.EMAShort, c.EMALong)
	}
	if c.RSIPeriod < 2 {
		return fmt.Errorf("%w: rsi period must be >= 2, got %d", model.ErrInvalidParameter, c.RSIPeriod)
	}
	if c.BollPeriod < 2 {
		return fmt.Errorf("%w: bollinger period must be >= 2, got %d", model.ErrInvalidParameter, c.BollPeriod)
	}
	if c.BollMult <= 0 {
		return fmt.Errorf("%w: bollinger multiplier must be positive, got %g", model.ErrInvalidParameter, c.BollMult)
	}
	if c.MACDShort < 1 || c.MACDLong < 1 || c.MACDSignal < 1 || c.MACDShort >= c.MACDLong {
		return fmt.Errorf("%w: bad macd periods %d/%d/%d", model.ErrInvalidParameter, c.MACDShort, c.MACDLong, c.MACDSignal)
	}
	if c.ATRPeriod < 1 {
		return fmt.Errorf("%w: atr period must be >= 1, got %d", model.ErrInvalidParameter, c.ATRPeriod)
	}
	return c.Thresholds.Validate()
}

// Indicators bundles every derived column for one run, all aligned with
// the Series they came from.
type Indicators struct {
	SMA      model.IndicatorSeries
	EMAShort model.IndicatorSeries
	EMALong  model.IndicatorSeries
	RSI      model.IndicatorSeries
	Bands    indicator.Bands
	MACD     indicator.MACDSeries
	ATR      model.IndicatorSeries
	VWAP     model.IndicatorSeries
}

// Columns returns every indicator column in a stable order, for callers
// that render or persist the full table.
func (ind *Indicators) Columns() []model.IndicatorSeries {
	return []model.IndicatorSeries{
		ind.SMA, ind.EMAShort, ind.EMALong, ind.RSI,
		ind.Bands.Middle, ind.Bands.Upper, ind.Bands.Lower,
		ind.MACD.Line, ind.MACD.Signal, ind.MACD.Histogram,
		ind.ATR, ind.VWAP,
	}
}

// Result is the complete output of one instrument run: the validated
// series, the aligned indicator table and the classified signal points.
type Result struct {
	Series     *model.Series
	Indicators Indicators
	Signals    []model.SignalPoint
}

// LatestSignal returns the most recent signal point, or false when the
// series never left warm-up.
func (r *Result) LatestSignal() (model.SignalPoint, bool) {
	if len(r.Signals) == 0 {
		return model.SignalPoint{}, false
	}
	return r.Signals[len(r.Signals)-1], true
}

// RunReport is the per-instrument outcome of a batch run.
type RunReport struct {
	Symbol string
	Result *Result
	Err    error
}

// Engine sequences one instrument run: fetch -> validate -> indicators ->
// classify. It holds no state between runs; every Result is exclusively
// owned by its caller.
type Engine struct {
	fetcher  collector.Fetcher
	cfg      IndicatorConfig
	lookback int
	timeout  time.Duration
	workers  int
}

// NewEngine validates the configuration once and returns a ready engine.
// lookback is the number of daily bars requested per run; timeout bounds
// a single instrument run and may be zero to disable.
func NewEngine(fetcher collector.Fetcher, cfg IndicatorConfig, lookback int, timeout time.Duration, workers int) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if lookback < 1 {
		return nil, fmt.Errorf("%w: lookback must be >= 1, got %d", model.ErrInvalidParameter, lookback)
	}
	if workers < 1 {
		workers = 1
	}
	return &Engine{fetcher: fetcher, cfg: cfg, lookback: lookback, timeout: timeout, workers: workers}, nil
}

// Run executes the full pipeline for one symbol. Any stage error aborts
// the run with no partial output.
func (e *Engine) Run(ctx context.Context, symbol string) (*Result, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	bars, err := e.fetcher.FetchDailyBars(ctx, symbol, e.lookback)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	s, err := series.Build(symbol, bars)
	if err != nil {
		return nil, fmt.Errorf("build series %s: %w", symbol, err)
	}

	ind, err := e.compute(s)
	if err != nil {
		return nil, fmt.Errorf("indicators %s: %w", symbol, err)
	}

	signals, err := classifier.Classify(s, classifier.Inputs{
		RSI:      ind.RSI,
		Bands:    ind.Bands,
		EMAShort: ind.EMAShort,
		EMALong:  ind.EMALong,
	}, e.cfg.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("classify %s: %w", symbol, err)
	}

	return &Result{Series: s, Indicators: ind, Signals: signals}, nil
}

func (e *Engine) compute(s *model.Series) (Indicators, error) {
	var ind Indicators
	var err error

	if ind.SMA, err = indicator.SMA(s, e.cfg.SMAPeriod); err != nil {
		return ind, err
	}
	if ind.EMAShort, err = indicator.EMA(s, e.cfg.EMAShort); err != nil {
		return ind, err
	}
	if ind.EMALong, err = indicator.EMA(s, e.cfg.EMALong); err != nil {
		return ind, err
	}
	if ind.RSI, err = indicator.RSI(s, e.cfg.RSIPeriod); err != nil {
		return ind, err
	}
	if ind.Bands, err = indicator.BollingerBands(s, e.cfg.BollPeriod, e.cfg.BollMult); err != nil {
		return ind, err
	}
	if ind.MACD, err = indicator.MACD(s, e.cfg.MACDShort, e.cfg.MACDLong, e.cfg.MACDSignal); err != nil {
		return ind, err
	}
	if ind.ATR, err = indicator.ATR(s, e.cfg.ATRPeriod); err != nil {
		return ind, err
	}
	ind.VWAP = indicator.VWAP(s)
	return ind, nil
}

// RunBatch processes symbols on a bounded worker pool. One instrument's
// failure is isolated in its report; the rest of the batch continues.
// Reports come back in input order.
func (e *Engine) RunBatch(ctx context.Context, symbols []string) []RunReport {
	reports := make([]RunReport, len(symbols))
	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup

	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, err := e.Run(ctx, symbol)
			if err != nil {
				log.Printf("[ERROR] run %s: %v", symbol, err)
			}
			reports[i] = RunReport{Symbol: symbol, Result: res, Err: err}
		}(i, symbol)
	}
	wg.Wait()
	return reports
}
