package scheduler

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/robfig/cron/v3"

	"TrendScout/internal/notifier"
	"TrendScout/internal/pipeline"
	"TrendScout/internal/recorder"
	"TrendScout/internal/state"
)

// Scheduler runs the batch pipeline on a cron schedule and serves
// Telegram commands.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *pipeline.Engine
	Symbols  []string
	Notifier *notifier.TelegramNotifier
	Recorder recorder.Recorder
	State    *state.Store
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, engine *pipeline.Engine, symbols []string, tn *notifier.TelegramNotifier, rec recorder.Recorder, st *state.Store) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   engine,
		Symbols:  symbols,
		Notifier: tn,
		Recorder: rec,
		State:    st,
		Ctx:      ctx,
	}
}

// Register registers the daily batch task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.batchTask); err != nil {
		return fmt.Errorf("register daily batch: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunBatchNow executes the batch task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunBatchNow() {
	s.batchTask()
}

func (s *Scheduler) batchTask() {
	log.Printf("[INFO] running batch for %d symbols", len(s.Symbols))
	reports := s.Engine.RunBatch(s.Ctx, s.Symbols)

	for i := range reports {
		rep := &reports[i]
		if err := s.Recorder.RecordReport(rep); err != nil {
			log.Printf("[ERROR] record report %s: %v", rep.Symbol, err)
		}
		if rep.Err != nil {
			continue
		}
		if err := s.Recorder.RecordResult(rep.Result); err != nil {
			log.Printf("[ERROR] record result %s: %v", rep.Symbol, err)
		}

		latest, ok := rep.Result.LatestSignal()
		if !ok {
			continue
		}
		changed, err := s.State.Update(rep.Symbol, latest)
		if err != nil {
			log.Printf("[ERROR] save state %s: %v", rep.Symbol, err)
		}
		// Alert individually only when the signal flipped since last run.
		if changed {
			s.trySend(notifier.FormatRunReport(rep))
		}
	}

	s.trySend(notifier.FormatBatchSummary(reports))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/run":
		go s.batchTask()
		return "batch started"
	case "/latest":
		return s.formatLatest()
	case "/status":
		return fmt.Sprintf("tracking %d symbols: %s", len(s.Symbols), strings.Join(s.Symbols, ", "))
	default:
		return "commands:\n• /run — run the batch now\n• /latest — last signal per symbol\n• /status — tracked symbols"
	}
}

func (s *Scheduler) formatLatest() string {
	states := s.State.All()
	if len(states) == 0 {
		return "no runs recorded yet"
	}
	sort.Slice(states, func(i, j int) bool { return states[i].Symbol < states[j].Symbol })

	var b strings.Builder
	b.WriteString("📌 <b>latest signals</b>\n")
	for _, st := range states {
		b.WriteString(fmt.Sprintf("  %s: %s @ %.2f (%s)\n",
			st.Symbol, st.Signal, st.Price, st.BarAt.Format("2006-01-02")))
	}
	return b.String()
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
