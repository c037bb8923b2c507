package screen

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tatianab/swim-idle/internal/engine"
	"github.com/tatianab/swim-idle/internal/models"
)

func newTestScreen(t *testing.T, width, height int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	sc, err := newScreen(sim)
	if err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	sim.SetSize(width, height)
	t.Cleanup(func() { sc.Close() })
	return sc, sim
}

// rowText reads back one row of the screen, skipping wide-rune padding.
func rowText(s tcell.Screen, y int) string {
	width, _ := s.Size()
	var b strings.Builder
	for x := 0; x < width; {
		r, _, _, w := s.GetContent(x, y)
		b.WriteRune(r)
		if w < 1 {
			w = 1
		}
		x += w
	}
	return b.String()
}

func screenText(s tcell.Screen) string {
	_, height := s.Size()
	rows := make([]string, height)
	for y := range rows {
		rows[y] = rowText(s, y)
	}
	return strings.Join(rows, "\n")
}

func snapshot(n int) engine.Snapshot {
	snap := engine.Snapshot{NewSwimmerCost: 25}
	for i := 0; i < n; i++ {
		sw := *models.NewSwimmer("Swimmer "+string(rune('A'+i)), 0.7)
		sw.Lengths = 3
		snap.Swimmers = append(snap.Swimmers, sw)
	}
	return snap
}

func TestRenderLayout(t *testing.T) {
	sc, sim := newTestScreen(t, 100, 30)

	if err := sc.Render(snapshot(2)); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(rowText(sim, 0), "Swimming Idle Game") {
		t.Errorf("Expected title on row 0, got %q", rowText(sim, 0))
	}
	counters := rowText(sim, 2)
	if !strings.Contains(counters, "Total Lengths: 6") || !strings.Contains(counters, "Swimmers: 2") {
		t.Errorf("Expected counters on row 2, got %q", counters)
	}
	if !strings.Contains(rowText(sim, 5), "New Swimmer Cost: 25 lengths") {
		t.Errorf("Expected cost on row 5, got %q", rowText(sim, 5))
	}
	if !strings.Contains(rowText(sim, headerHeight+1), "➤ Swimmer A") {
		t.Errorf("Expected selected swimmer, got %q", rowText(sim, headerHeight+1))
	}
	lane := rowText(sim, headerHeight+2)
	if !strings.Contains(lane, "│-→~") {
		t.Errorf("Expected swimmer at the start of the lane, got %q", lane)
	}
}

func TestRenderScrollsToSelection(t *testing.T) {
	sc, sim := newTestScreen(t, 100, 20)

	snap := snapshot(8)
	snap.Selected = 7
	sc.Render(snap)

	text := screenText(sim)
	if !strings.Contains(text, "➤ Swimmer H") {
		t.Error("Expected the selected swimmer on screen")
	}
	if strings.Contains(text, "Swimmer A") {
		t.Error("Expected the first swimmer scrolled off")
	}
}

func TestNotices(t *testing.T) {
	sc, sim := newTestScreen(t, 100, 30)
	sc.Render(snapshot(1))

	sw := snapshot(1).Swimmers[0]
	sc.RecruitResult(engine.RecruitResult{Swimmer: sw, Cost: 25, Shortfall: 22})

	if row := rowText(sim, 27); !strings.Contains(row, "Need 22 more for a new swimmer") {
		t.Errorf("Expected recruit notice on row 27, got %q", row)
	}
}

func TestGoodbye(t *testing.T) {
	sc, sim := newTestScreen(t, 80, 24)
	sc.Goodbye()

	text := screenText(sim)
	if !strings.Contains(text, "Thanks for playing") || !strings.Contains(text, "Press any key to exit") {
		t.Errorf("Expected goodbye screen, got %q", text)
	}
}

func TestPollAndRead(t *testing.T) {
	sc, sim := newTestScreen(t, 80, 24)

	if _, ok, err := sc.Poll(10 * time.Millisecond); ok || err != nil {
		t.Fatalf("Expected an empty poll, got ok=%v err=%v", ok, err)
	}

	sim.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	sim.InjectKey(tcell.KeyUp, 0, tcell.ModNone)

	ev, ok, err := sc.Poll(time.Second)
	if err != nil || !ok || ev != engine.RuneEvent('n') {
		t.Fatalf("Expected n, got %+v ok=%v err=%v", ev, ok, err)
	}
	ev, err = sc.Read(context.Background())
	if err != nil || ev.Key != engine.KeyUp {
		t.Fatalf("Expected up, got %+v err=%v", ev, err)
	}
}

func TestReadAfterClose(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	sc, err := newScreen(sim)
	if err != nil {
		t.Fatal(err)
	}
	sc.Close()

	done := make(chan error, 1)
	go func() {
		_, err := sc.Read(context.Background())
		done <- err
	}()
	select {
	case err := <-done:
		if !errors.Is(err, engine.ErrTerminalClosed) {
			t.Errorf("Expected ErrTerminalClosed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Read did not return after Close")
	}
}

func TestCenterPadding(t *testing.T) {
	if got := centerPadding(10, 30); got != 10 {
		t.Errorf("Expected 10, got %d", got)
	}
	if got := centerPadding(40, 30); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
}

func TestReadHonoursContext(t *testing.T) {
	sc, _ := newTestScreen(t, 80, 24)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := sc.Read(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected DeadlineExceeded, got %v", err)
	}
}

func TestCloseWithFullEventBuffer(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	sc, err := newScreen(sim)
	if err != nil {
		t.Fatal(err)
	}

	// Nobody reads, so the buffer fills and the reader blocks on send.
	deadline := time.Now().Add(2 * time.Second)
	for len(sc.events) < cap(sc.events) && time.Now().Before(deadline) {
		if sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) != nil {
			time.Sleep(time.Millisecond)
		}
	}
	if len(sc.events) != cap(sc.events) {
		t.Fatalf("Expected a full buffer, got %d of %d", len(sc.events), cap(sc.events))
	}
	sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'y', tcell.ModNone))
	time.Sleep(10 * time.Millisecond)

	sc.Close()
	time.Sleep(10 * time.Millisecond)

	received := 0
	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, open := <-sc.events:
			if !open {
				if received != cap(sc.events) {
					t.Errorf("Expected only the %d buffered events, got %d", cap(sc.events), received)
				}
				return
			}
			received++
		case <-timeout:
			t.Fatal("Event channel was not closed after Close")
		}
	}
}
