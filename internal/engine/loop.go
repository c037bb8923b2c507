package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Timing holds the loop cadences.
type Timing struct {
	Tick         time.Duration // simulation step
	Render       time.Duration // redraw interval
	Poll         time.Duration // input wait per iteration
	Idle         time.Duration // sleep when no input arrived
	MessagePause time.Duration // hold after an upgrade or recruit notice
}

func DefaultTiming() Timing {
	return Timing{
		Tick:         33 * time.Millisecond,
		Render:       100 * time.Millisecond,
		Poll:         10 * time.Millisecond,
		Idle:         time.Millisecond,
		MessagePause: 800 * time.Millisecond,
	}
}

func (t Timing) Validate() error {
	if t.Tick <= 0 || t.Render <= 0 || t.Poll <= 0 {
		return fmt.Errorf("tick, render and poll intervals must be positive")
	}
	if t.Idle < 0 || t.MessagePause < 0 {
		return fmt.Errorf("idle and message pause must not be negative")
	}
	return nil
}

type State int

const (
	StateRunning State = iota
	StateQuitting
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateQuitting:
		return "quitting"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

// Options configures a Loop. Zero values fall back to the defaults.
type Options struct {
	Timing Timing
	Clock  Clock
	Sleep  func(time.Duration)
	Logger *zap.Logger
}

// Loop drives a session: it steps the simulation and redraws at two
// independent fixed rates and dispatches key presses in between. All
// session mutation happens on the goroutine calling Run.
type Loop struct {
	session *Session
	input   InputSource
	out     Renderer
	timing  Timing
	clock   Clock
	sleep   func(time.Duration)
	log     *zap.Logger

	state      State
	lastUpdate time.Time
	lastRender time.Time
	ticks      uint64
	renders    uint64
}

func NewLoop(session *Session, input InputSource, out Renderer, opts Options) *Loop {
	l := &Loop{
		session: session,
		input:   input,
		out:     out,
		timing:  opts.Timing,
		clock:   opts.Clock,
		sleep:   opts.Sleep,
		log:     opts.Logger,
	}
	if l.timing == (Timing{}) {
		l.timing = DefaultTiming()
	}
	if l.clock == nil {
		l.clock = SystemClock{}
	}
	if l.sleep == nil {
		l.sleep = time.Sleep
	}
	if l.log == nil {
		l.log = zap.NewNop()
	}
	return l
}

func (l *Loop) State() State { return l.state }

// Ticks is the number of simulation steps taken so far.
func (l *Loop) Ticks() uint64 { return l.ticks }

func (l *Loop) Renders() uint64 { return l.renders }

// Run plays until the quit key, then shows the goodbye screen and waits for
// one more key press. Renderer or input failures end the run immediately,
// and a cancelled ctx ends it with ctx.Err(), goodbye screen included.
func (l *Loop) Run(ctx context.Context) error {
	l.state = StateRunning
	if err := l.out.Render(l.session.Snapshot()); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	now := l.clock.Now()
	l.lastUpdate, l.lastRender = now, now
	l.log.Info("loop started", zap.Duration("tick", l.timing.Tick), zap.Duration("render", l.timing.Render))

	for l.state == StateRunning {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.step(); err != nil {
			return err
		}
	}

	if err := l.out.Goodbye(); err != nil {
		return fmt.Errorf("goodbye: %w", err)
	}
	if _, err := l.input.Read(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("read acknowledgement: %w", err)
	}
	l.state = StateTerminated
	l.log.Info("loop terminated", zap.Uint64("ticks", l.ticks), zap.Int("swimmers", l.session.Len()))
	return nil
}

// step runs one loop iteration. Missed intervals are not caught up: each
// gate fires at most once per iteration.
func (l *Loop) step() error {
	now := l.clock.Now()

	if now.Sub(l.lastUpdate) >= l.timing.Tick {
		l.session.Tick()
		l.ticks++
		l.lastUpdate = now
	}

	if now.Sub(l.lastRender) >= l.timing.Render {
		if err := l.out.Render(l.session.Snapshot()); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		l.renders++
		l.lastRender = now
	}

	ev, ok, err := l.input.Poll(l.timing.Poll)
	if err != nil {
		return fmt.Errorf("poll input: %w", err)
	}
	if !ok {
		l.sleep(l.timing.Idle)
		return nil
	}
	_, err = l.HandleInput(ev)
	return err
}

// HandleInput applies the action bound to ev. Upgrade and recruit notify
// the renderer and then hold for the message pause.
func (l *Loop) HandleInput(ev Event) (Action, error) {
	action := ActionFor(ev)
	switch action {
	case ActionQuit:
		l.state = StateQuitting
		l.log.Info("quit requested")

	case ActionUpgrade:
		sw, ok := l.session.UpgradeSelected()
		if err := l.out.UpgradeResult(sw, ok); err != nil {
			return action, fmt.Errorf("upgrade notice: %w", err)
		}
		l.sleep(l.timing.MessagePause)

	case ActionRecruit:
		res := l.session.RecruitSwimmer()
		if err := l.out.RecruitResult(res); err != nil {
			return action, fmt.Errorf("recruit notice: %w", err)
		}
		l.sleep(l.timing.MessagePause)

	case ActionSelectPrevious:
		l.session.SelectPrevious()

	case ActionSelectNext:
		l.session.SelectNext()
	}
	return action, nil
}
