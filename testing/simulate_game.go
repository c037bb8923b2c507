package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/tatianab/swim-idle/internal/config"
	"github.com/tatianab/swim-idle/internal/engine"
	"github.com/tatianab/swim-idle/internal/logging"
	"github.com/tatianab/swim-idle/internal/models"
)

const simulatedTime = 15 * time.Minute

// greedyPlayer is both input source and renderer: it watches snapshots and
// spends lengths as soon as it can.
type greedyPlayer struct {
	clock    *engine.ManualClock
	deadline time.Time
	log      *zap.Logger

	snap     engine.Snapshot
	fresh    bool
	upgrades int
	recruits int
	refusals int
}

func (p *greedyPlayer) Poll(timeout time.Duration) (engine.Event, bool, error) {
	if !p.clock.Now().Before(p.deadline) {
		return engine.RuneEvent('q'), true, nil
	}
	if ev, ok := p.decide(); ok {
		p.fresh = false
		return ev, true, nil
	}
	p.clock.Advance(timeout)
	return engine.Event{}, false, nil
}

func (p *greedyPlayer) Read(context.Context) (engine.Event, error) {
	return engine.RuneEvent(' '), nil
}

// decide acts at most once per snapshot so it never works from stale state.
func (p *greedyPlayer) decide() (engine.Event, bool) {
	if !p.fresh || len(p.snap.Swimmers) == 0 {
		return engine.Event{}, false
	}
	if p.snap.TotalLengths() >= p.snap.NewSwimmerCost {
		return engine.RuneEvent('n'), true
	}

	target := -1
	for i, sw := range p.snap.Swimmers {
		if sw.Lengths >= sw.UpgradeCost {
			target = i
			break
		}
	}
	switch {
	case target < 0:
		return engine.Event{}, false
	case target < p.snap.Selected:
		return engine.Event{Key: engine.KeyUp}, true
	case target > p.snap.Selected:
		return engine.Event{Key: engine.KeyDown}, true
	}
	return engine.RuneEvent(' '), true
}

func (p *greedyPlayer) Render(snap engine.Snapshot) error {
	p.snap = snap
	p.fresh = true
	return nil
}

func (p *greedyPlayer) UpgradeResult(s models.Swimmer, ok bool) error {
	p.count(ok, &p.upgrades)
	p.log.Info(engine.UpgradeNotice(s, ok), zap.Duration("at", p.elapsed()))
	return nil
}

func (p *greedyPlayer) RecruitResult(res engine.RecruitResult) error {
	p.count(res.OK, &p.recruits)
	p.log.Info(engine.RecruitNotice(res), zap.Duration("at", p.elapsed()))
	return nil
}

func (p *greedyPlayer) Goodbye() error {
	p.log.Info(engine.GoodbyeTitle)
	return nil
}

func (p *greedyPlayer) count(ok bool, n *int) {
	if ok {
		*n++
	} else {
		p.refusals++
	}
}

func (p *greedyPlayer) elapsed() time.Duration {
	return simulatedTime - p.deadline.Sub(p.clock.Now())
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewConsole(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	catalog, err := models.LoadNameCatalog(cfg.Names.File)
	if err != nil {
		log.Fatalf("Failed to load names: %v", err)
	}
	names := models.NewNameGenerator(catalog, rand.New(rand.NewPCG(1, 2)))
	session := engine.NewSession(names, cfg.EngineEconomy(), logger)

	clock := engine.NewManualClock(time.Now())
	player := &greedyPlayer{
		clock:    clock,
		deadline: clock.Now().Add(simulatedTime),
		log:      logger,
	}

	fmt.Printf("--- Simulating %v of play ---\n", simulatedTime)
	loop := engine.NewLoop(session, player, player, engine.Options{
		Timing: cfg.EngineTiming(),
		Clock:  clock,
		Sleep:  clock.Sleep,
		Logger: logger,
	})
	if err := loop.Run(context.Background()); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	fmt.Println("--- Result ---")
	fmt.Printf("Ticks: %d\n", loop.Ticks())
	fmt.Printf("Upgrades: %d, recruits: %d, refused: %d\n", player.upgrades, player.recruits, player.refusals)
	snap := session.Snapshot()
	fmt.Printf("Next swimmer costs %s lengths\n", engine.Count(snap.NewSwimmerCost))
	for i := range snap.Swimmers {
		fmt.Println(engine.StatsLine(snap.Swimmers[i], false))
	}
}
