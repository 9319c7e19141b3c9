package notifier

import (
	"fmt"
	"strings"
	"time"

	"TrendScout/internal/model"
	"TrendScout/internal/pipeline"
)

func signalEmoji(sig model.Signal) string {
	switch sig {
	case model.SignalBuy:
		return "🟢"
	case model.SignalSell:
		return "🔴"
	default:
		return "⚪"
	}
}

// FormatRunReport formats one instrument's run outcome into a Telegram
// message: the latest signal, its rationale, and the contributing
// indicator values.
func FormatRunReport(rep *pipeline.RunReport) string {
	var b strings.Builder

	if rep.Err != nil {
		b.WriteString(fmt.Sprintf("❌ <b>%s</b> run failed\n%v\n", rep.Symbol, rep.Err))
		return b.String()
	}

	res := rep.Result
	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %d bars\n", rep.Symbol, res.Series.Len()))

	p, ok := res.LatestSignal()
	if !ok {
		b.WriteString("series still in warm-up, no signal yet\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%s <b>%s</b> — %s\n", signalEmoji(p.Signal), p.Signal, p.Rationale))
	b.WriteString(fmt.Sprintf("bar: %s | close: %.2f\n", p.Time.Format("2006-01-02"), p.Close))
	b.WriteString(fmt.Sprintf("RSI: %.1f\n", p.RSI))
	b.WriteString(fmt.Sprintf("Bollinger: %.2f / %.2f / %.2f\n", p.BollLower, p.BollMiddle, p.BollUpper))
	b.WriteString(fmt.Sprintf("EMA short/long: %.2f / %.2f\n", p.EMAShort, p.EMALong))
	return b.String()
}

// FormatBatchSummary condenses a batch run into one message.
func FormatBatchSummary(reports []pipeline.RunReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>TrendScout batch</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))

	failed := 0
	for _, rep := range reports {
		if rep.Err != nil {
			failed++
			b.WriteString(fmt.Sprintf("  ❌ %s: %v\n", rep.Symbol, rep.Err))
			continue
		}
		if p, ok := rep.Result.LatestSignal(); ok {
			b.WriteString(fmt.Sprintf("  %s %s: %s (%s)\n", signalEmoji(p.Signal), rep.Symbol, p.Signal, p.Rationale))
		} else {
			b.WriteString(fmt.Sprintf("  ⚪ %s: warming up\n", rep.Symbol))
		}
	}

	b.WriteString(fmt.Sprintf("\n%d processed, %d failed\n", len(reports), failed))
	return b.String()
}
