package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tatianab/swim-idle/internal/audio"
	"github.com/tatianab/swim-idle/internal/config"
	"github.com/tatianab/swim-idle/internal/engine"
	"github.com/tatianab/swim-idle/internal/logging"
	"github.com/tatianab/swim-idle/internal/models"
	"github.com/tatianab/swim-idle/internal/screen"
	"github.com/tatianab/swim-idle/internal/tui"
)

type terminal interface {
	engine.InputSource
	engine.Renderer
	Close() error
}

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	// Ctrl-C arrives as a key while the terminal is raw.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	catalog, err := models.LoadNameCatalog(cfg.Names.File)
	if err != nil {
		return fmt.Errorf("loading swimmer names: %w", err)
	}
	names := models.NewNameGenerator(catalog, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	session := engine.NewSession(names, cfg.EngineEconomy(), log)

	term, err := openTerminal(cfg.UI)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := term.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("restoring terminal: %w", cerr)
		}
	}()

	var out engine.Renderer = term
	if cfg.Audio.Enabled {
		sp, err := audio.NewSpeaker(log)
		if err != nil {
			// The game works fine without sound.
			log.Warn("audio disabled", zap.Error(err))
		} else {
			defer sp.Close()
			out = audio.NewChimes(term, sp)
		}
	}

	loop := engine.NewLoop(session, term, out, engine.Options{
		Timing: cfg.EngineTiming(),
		Logger: log,
	})
	if err := loop.Run(ctx); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

func openTerminal(cfg config.UIConfig) (terminal, error) {
	if cfg.Backend == "tcell" {
		sc, err := screen.Open()
		if err != nil {
			return nil, fmt.Errorf("opening screen: %w", err)
		}
		return sc, nil
	}
	return tui.Open(cfg.AltScreen), nil
}
