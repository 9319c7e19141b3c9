package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TrendScout/internal/classifier"
	"TrendScout/internal/collector"
	"TrendScout/internal/config"
	"TrendScout/internal/notifier"
	"TrendScout/internal/pipeline"
	"TrendScout/internal/recorder"
	"TrendScout/internal/scheduler"
	"TrendScout/internal/state"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TrendScout starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init pipeline engine; indicator parameters are validated here, once.
	indCfg := pipeline.IndicatorConfig{
		SMAPeriod:  cfg.Indicators.SMAPeriod,
		EMAShort:   cfg.Indicators.EMAShort,
		EMALong:    cfg.Indicators.EMALong,
		RSIPeriod:  cfg.Indicators.RSIPeriod,
		BollPeriod: cfg.Indicators.BollPeriod,
		BollMult:   cfg.Indicators.BollMult,
		MACDShort:  cfg.Indicators.MACDShort,
		MACDLong:   cfg.Indicators.MACDLong,
		MACDSignal: cfg.Indicators.MACDSignal,
		ATRPeriod:  cfg.Indicators.ATRPeriod,
		Thresholds: classifier.Thresholds{BuyRSI: cfg.Indicators.RSIBuy, SellRSI: cfg.Indicators.RSISell},
	}
	engine, err := pipeline.NewEngine(fetcher, indCfg, cfg.LookbackDays,
		time.Duration(cfg.RunTimeoutSecs)*time.Second, cfg.Workers)
	if err != nil {
		log.Fatalf("[FATAL] init pipeline engine: %v", err)
	}

	// Init state store
	st, err := state.Load(cfg.StateFile)
	if err != nil {
		log.Fatalf("[FATAL] load signal state: %v", err)
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, engine, cfg.Symbols, tn, rec, st)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing batch now")
		go sched.RunBatchNow()
	}

	log.Println("[INFO] TrendScout is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] TrendScout stopped")
}
