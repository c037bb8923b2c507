package engine

import (
	"context"
	"errors"
	"time"

	"github.com/tatianab/swim-idle/internal/models"
)

// ErrTerminalClosed is returned by terminal collaborators once the
// underlying terminal has gone away.
var ErrTerminalClosed = errors.New("terminal closed")

// InputSource produces key presses for the loop.
type InputSource interface {
	// Poll waits up to timeout for a key press. ok is false when none arrived.
	Poll(timeout time.Duration) (ev Event, ok bool, err error)
	// Read blocks until a key press arrives or ctx is done, in which case it
	// returns ctx.Err().
	Read(ctx context.Context) (Event, error)
}

// Renderer draws session state. It only ever receives copies.
type Renderer interface {
	Render(snap Snapshot) error
	UpgradeResult(s models.Swimmer, ok bool) error
	RecruitResult(res RecruitResult) error
	Goodbye() error
}

// Snapshot is a read-only view of the session.
type Snapshot struct {
	Swimmers       []models.Swimmer
	Selected       int
	NewSwimmerCost int
}

func (s Snapshot) TotalLengths() int {
	total := 0
	for _, sw := range s.Swimmers {
		total += sw.Lengths
	}
	return total
}
