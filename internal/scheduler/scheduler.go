package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"DugoutEdge/internal/collector"
	"DugoutEdge/internal/engine"
	"DugoutEdge/internal/model"
	"DugoutEdge/internal/notifier"
	"DugoutEdge/internal/parlay"
	"DugoutEdge/internal/recorder"
	"DugoutEdge/internal/staking"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron tasks and drives the analysis pass.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Engine    *engine.Engine
	Staking   *staking.Manager
	Assembler *parlay.Assembler
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Ctx       context.Context

	mu          sync.Mutex
	lastParlays []model.ParlayCombination
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, eng *engine.Engine, stk *staking.Manager, asm *parlay.Assembler, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Engine:    eng,
		Staking:   stk,
		Assembler: asm,
		Notifier:  tn,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// RegisterAll registers the morning and pregame analysis passes and the
// nightly form warm-up.
func (s *Scheduler) RegisterAll(morningCron, pregameCron, nightlyCron string) error {
	if _, err := s.Cron.AddFunc(morningCron, s.analysisTask); err != nil {
		return fmt.Errorf("register morning task: %w", err)
	}
	if _, err := s.Cron.AddFunc(pregameCron, s.analysisTask); err != nil {
		return fmt.Errorf("register pregame task: %w", err)
	}
	if _, err := s.Cron.AddFunc(nightlyCron, s.formWarmup); err != nil {
		return fmt.Errorf("register nightly warm-up: %w", err)
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

// RunNow executes an analysis pass immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.analysisTask()
}

// passResult is everything one analysis pass produced.
type passResult struct {
	pass    recorder.PassSummary
	opps    []model.Opportunity
	parlays []model.ParlayCombination
	skipped []recorder.SkippedItem
}

func (s *Scheduler) analysisTask() {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Println("[INFO] running analysis pass")
	res, err := s.run()
	if err != nil {
		log.Printf("[ERROR] analysis pass: %v", err)
		s.trySend(fmt.Sprintf("❌ Analysis pass failed: %v", err))
		return
	}
	s.lastParlays = res.parlays

	report := notifier.FormatPassReport(res.opps, res.parlays, res.pass.Events, res.skipReasons())
	s.trySend(report)

	if err := s.Recorder.RecordPass(&res.pass, res.opps, res.parlays, res.skipped); err != nil {
		log.Printf("[ERROR] record pass: %v", err)
	}
}

// run executes one full pass: slate, per-event form and quotes, edge
// detection, staking, then parlay assembly. A failure for one event's
// data skips that item only.
func (s *Scheduler) run() (*passResult, error) {
	res := &passResult{pass: recorder.PassSummary{
		PassID:    uuid.NewString(),
		StartedAt: time.Now(),
	}}

	events, schedStale, err := s.Collector.Events()
	if err != nil {
		return nil, fmt.Errorf("fetch slate: %w", err)
	}

	quotes, quotesStale, err := s.Collector.Quotes()
	if err != nil {
		log.Printf("[WARN] quotes unavailable for the whole slate: %v", err)
		res.skip("", "quotes", err)
		quotes = map[string][]model.MarketQuote{}
	}
	staleInputs := schedStale || quotesStale

	var games []parlay.GameContext
	for i := range events {
		event := &events[i]
		if event.Status != model.StatusScheduled {
			continue
		}
		res.pass.Events++

		g, ok := s.analyzeEvent(event, quotes[event.ID], quotesStale, res)
		if ok {
			games = append(games, g)
		}
	}

	res.parlays = s.Assembler.Assemble(games)

	exposure := 0.0
	for i := range res.opps {
		if staleInputs {
			res.opps[i].StaleData = true
		}
		if res.opps[i].StaleData {
			res.pass.StaleData = true
		}
		exposure += res.opps[i].Stake
	}
	s.Staking.RecordPassExposure(exposure)

	res.pass.Opportunities = len(res.opps)
	res.pass.Parlays = len(res.parlays)
	res.pass.Skipped = len(res.skipped)
	res.pass.StaleData = res.pass.StaleData || staleInputs
	log.Printf("[INFO] pass %s: %d events, %d opportunities, %d parlays, %d skipped",
		res.pass.PassID, res.pass.Events, res.pass.Opportunities, res.pass.Parlays, res.pass.Skipped)
	return res, nil
}

// analyzeEvent evaluates one game's markets and returns its parlay
// context. A false result means the event was skipped entirely.
func (s *Scheduler) analyzeEvent(event *model.Event, eventQuotes []model.MarketQuote, quotesStale bool, res *passResult) (parlay.GameContext, bool) {
	homeForm, err := s.Collector.TeamForm(event.HomeTeam)
	if err != nil {
		res.skip(event.ID, "form/"+event.HomeTeam, err)
		return parlay.GameContext{}, false
	}
	awayForm, err := s.Collector.TeamForm(event.AwayTeam)
	if err != nil {
		res.skip(event.ID, "form/"+event.AwayTeam, err)
		return parlay.GameContext{}, false
	}

	// Starter metrics are optional; an unannounced or unfetchable
	// starter just zeroes the matchup term.
	homePitcher, _, err := s.Collector.PitcherMetrics(event.HomeStarter)
	if err != nil {
		log.Printf("[WARN] %s starter metrics: %v", event.Matchup(), err)
	}
	awayPitcher, _, err := s.Collector.PitcherMetrics(event.AwayStarter)
	if err != nil {
		log.Printf("[WARN] %s starter metrics: %v", event.Matchup(), err)
	}
	advantage := 0.0
	if homePitcher != nil && awayPitcher != nil {
		advantage = engine.MatchupAdvantage(*homePitcher, *awayPitcher)
	}

	moneyline := collector.Consensus(eventQuotes, model.MarketMoneyline)
	total := collector.Consensus(eventQuotes, model.MarketTotal)
	runLine := collector.Consensus(eventQuotes, model.MarketSpread)

	var opps []model.Opportunity
	if moneyline != nil {
		opps = append(opps, s.Engine.EvaluateMoneyline(event, homeForm, awayForm, moneyline, advantage)...)
	}
	if total != nil {
		opps = append(opps, s.Engine.EvaluateTotal(event, homeForm, awayForm, total)...)
	}
	if runLine != nil {
		opps = append(opps, s.Engine.EvaluateRunLine(event, homeForm, awayForm, runLine)...)
	}
	for i := range opps {
		if quotesStale {
			opps[i].StaleData = true
		}
		stake, fraction, err := s.Staking.Recommend(opps[i].ModelProb, opps[i].Odds)
		if err != nil {
			log.Printf("[WARN] stake for %s %s: %v", opps[i].Matchup, opps[i].Selection, err)
			continue
		}
		opps[i].Stake = stake
		opps[i].StakeFraction = fraction
	}
	res.opps = append(res.opps, opps...)

	props, _, err := s.Collector.Props(event.ID)
	if err != nil {
		log.Printf("[WARN] props for %s unavailable: %v", event.Matchup(), err)
	}

	return parlay.GameContext{
		Event:       event,
		HomeForm:    homeForm,
		AwayForm:    awayForm,
		Moneyline:   moneyline,
		Total:       total,
		Props:       props,
		HomePitcher: homePitcher,
		AwayPitcher: awayPitcher,
	}, true
}

func (r *passResult) skip(eventID, stage string, err error) {
	r.skipped = append(r.skipped, recorder.SkippedItem{
		EventID: eventID,
		Stage:   stage,
		Reason:  err.Error(),
	})
}

// skipReasons renders the skipped items as report lines.
func (r *passResult) skipReasons() []string {
	out := make([]string, 0, len(r.skipped))
	for _, it := range r.skipped {
		line := it.Stage + ": " + it.Reason
		if it.EventID != "" {
			line = it.EventID + " " + line
		}
		out = append(out, line)
	}
	return out
}

// formWarmup refreshes every slated team's form so the morning pass
// starts from a warm cache.
func (s *Scheduler) formWarmup() {
	log.Println("[INFO] running nightly form warm-up")
	events, _, err := s.Collector.Events()
	if err != nil {
		log.Printf("[WARN] warm-up slate: %v", err)
		return
	}
	for _, e := range events {
		for _, team := range []string{e.HomeTeam, e.AwayTeam} {
			if _, err := s.Collector.TeamForm(team); err != nil {
				log.Printf("[WARN] warm-up form for %s: %v", team, err)
			}
		}
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/analyze":
		go s.analysisTask()
		return "Running analysis pass..."
	case "/parlays":
		s.mu.Lock()
		parlays := s.lastParlays
		s.mu.Unlock()
		return notifier.FormatParlayReport(parlays)
	case "/bankroll":
		return notifier.FormatBankroll(s.Staking.State())
	case "/help":
		return notifier.FormatHelp()
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
