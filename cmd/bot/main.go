package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"DugoutEdge/internal/cache"
	"DugoutEdge/internal/collector"
	"DugoutEdge/internal/config"
	"DugoutEdge/internal/engine"
	"DugoutEdge/internal/notifier"
	"DugoutEdge/internal/parlay"
	"DugoutEdge/internal/recorder"
	"DugoutEdge/internal/scheduler"
	"DugoutEdge/internal/staking"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] DugoutEdge starting...")

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

	// Init data sources
	espn := collector.NewESPNSource(cfg.Sources.ESPNBaseURL, cfg.Proxy)
	oddsAPI := collector.NewOddsAPISource(cfg.Sources.OddsAPIBaseURL, cfg.Sources.OddsAPIKey, cfg.Proxy)
	log.Printf("[INFO] data sources: %s, %s", espn.Name(), oddsAPI.Name())

	// Init collector with the configured cache TTLs
	store := cache.New(map[cache.Category]time.Duration{
		cache.CategorySchedule: time.Duration(cfg.Cache.ScheduleTTLSeconds) * time.Second,
		cache.CategoryQuotes:   time.Duration(cfg.Cache.QuotesTTLSeconds) * time.Second,
		cache.CategoryForm:     time.Duration(cfg.Cache.FormTTLSeconds) * time.Second,
		cache.CategoryProps:    time.Duration(cfg.Cache.QuotesTTLSeconds) * time.Second,
	}, time.Duration(cfg.Cache.FallbackSeconds)*time.Second)
	col := collector.New(espn, espn, oddsAPI, store)

	// Init staking manager
	stk, err := staking.NewManager(cfg.Bankroll.StateFile, cfg.Bankroll.Amount,
		cfg.Bankroll.KellyFraction, cfg.Bankroll.MaxStakeFraction)
	if err != nil {
		log.Fatalf("[FATAL] init staking manager: %v", err)
	}

	// Init edge engine
	eng := engine.New(engine.Thresholds{
		MinEdge:           cfg.Thresholds.MinEdge,
		MinRunsForValue:   cfg.Thresholds.MinRunsForValue,
		MinWinPctForValue: cfg.Thresholds.MinWinPct,
		MinOddsFloor:      cfg.Thresholds.MinOddsFloor,
		HighProbOverride:  cfg.Thresholds.HighProbOverride,
		TotalsConfidence:  cfg.Thresholds.TotalsConfidence,
		RequireBoth:       cfg.Thresholds.RequireBoth,
	})

	// Init parlay assembler
	asm := parlay.NewAssembler(parlay.Settings{
		MinProbability: cfg.Parlay.MinProbability,
		MaxLegs:        cfg.Parlay.MaxLegs,
		TopK:           cfg.Parlay.TopK,
		ReferenceStake: cfg.Parlay.ReferenceStake,
	})

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
	sched := scheduler.NewScheduler(ctx, col, eng, stk, asm, tn, rec)
	if err := sched.RegisterAll(cfg.Schedule.MorningCron, cfg.Schedule.PregameCron, cfg.Schedule.NightlyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing analysis pass now")
		go sched.RunNow()
	}

	log.Println("[INFO] DugoutEdge is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] DugoutEdge stopped")
}
