package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tatianab/swim-idle/internal/engine"
	"github.com/tatianab/swim-idle/internal/models"
)

// Terminal runs a bubbletea program and exposes it to the engine loop as
// both input source and renderer. The program only displays what it is
// sent; all game state stays with the loop.
type Terminal struct {
	program *tea.Program
	keys    chan engine.Event
	done    chan struct{}
	err     error
}

// Open takes over the terminal. Close must be called to give it back.
func Open(altScreen bool, opts ...tea.ProgramOption) *Terminal {
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	keys := make(chan engine.Event, 64)
	t := &Terminal{
		program: tea.NewProgram(newModel(keys), opts...),
		keys:    keys,
		done:    make(chan struct{}),
	}
	go func() {
		_, err := t.program.Run()
		t.err = err
		close(t.done)
	}()
	return t
}

func (t *Terminal) Poll(timeout time.Duration) (engine.Event, bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-t.keys:
		return ev, true, nil
	case <-t.done:
		return engine.Event{}, false, t.closedErr()
	case <-timer.C:
		return engine.Event{}, false, nil
	}
}

func (t *Terminal) Read(ctx context.Context) (engine.Event, error) {
	select {
	case ev := <-t.keys:
		return ev, nil
	case <-t.done:
		return engine.Event{}, t.closedErr()
	case <-ctx.Done():
		return engine.Event{}, ctx.Err()
	}
}

func (t *Terminal) Render(snap engine.Snapshot) error {
	return t.send(snapshotMsg{snap: snap})
}

func (t *Terminal) UpgradeResult(s models.Swimmer, ok bool) error {
	return t.send(noticeMsg{text: engine.UpgradeNotice(s, ok), ok: ok})
}

func (t *Terminal) RecruitResult(res engine.RecruitResult) error {
	return t.send(noticeMsg{text: engine.RecruitNotice(res), ok: res.OK})
}

func (t *Terminal) Goodbye() error {
	return t.send(goodbyeMsg{})
}

// Close stops the program and restores the terminal.
func (t *Terminal) Close() error {
	t.program.Quit()
	<-t.done
	if t.err != nil && !errors.Is(t.err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", t.err)
	}
	return nil
}

func (t *Terminal) send(msg tea.Msg) error {
	select {
	case <-t.done:
		return t.closedErr()
	default:
	}
	t.program.Send(msg)
	return nil
}

func (t *Terminal) closedErr() error {
	if t.err != nil {
		return fmt.Errorf("%w: %v", engine.ErrTerminalClosed, t.err)
	}
	return engine.ErrTerminalClosed
}
