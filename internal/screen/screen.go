// Package screen is a terminal backend drawing directly into tcell cells.
package screen

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/tatianab/swim-idle/internal/engine"
	"github.com/tatianab/swim-idle/internal/models"
)

const headerHeight = 7

var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite).Bold(true)
	styleCounter  = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleControls = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleCost     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleMuted    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSelected = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite).Bold(true)
	styleWater    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleFooter   = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleSuccess  = tcell.StyleDefault.Background(tcell.ColorDarkGreen).Foreground(tcell.ColorLightGreen).Bold(true)
	styleFailure  = tcell.StyleDefault.Background(tcell.ColorDarkRed).Foreground(tcell.ColorRed).Bold(true)
	styleGoodbye  = tcell.StyleDefault.Foreground(tcell.ColorTeal).Bold(true)

	tierStyles = map[models.SpeedTier]tcell.Style{
		models.TierSlow:   tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		models.TierMedium: tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		models.TierFast:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	}
)

// Screen implements engine.InputSource and engine.Renderer on a tcell
// screen.
type Screen struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}
	once   sync.Once
	first  int // first swimmer drawn when the list does not fit
}

// Open initialises the real terminal. Close must be called to restore it.
func Open() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return newScreen(s)
}

func newScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.HideCursor()

	sc := &Screen{
		screen: s,
		events: make(chan tcell.Event, 100),
		quit:   make(chan struct{}),
	}
	go func() {
		defer close(sc.events)
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case sc.events <- ev:
			case <-sc.quit:
				return
			}
		}
	}()
	return sc, nil
}

func (sc *Screen) Poll(timeout time.Duration) (engine.Event, bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case ev, open := <-sc.events:
			if !open {
				return engine.Event{}, false, engine.ErrTerminalClosed
			}
			if key, ok := sc.handle(ev); ok {
				return key, true, nil
			}
		case <-timer.C:
			return engine.Event{}, false, nil
		}
	}
}

func (sc *Screen) Read(ctx context.Context) (engine.Event, error) {
	for {
		select {
		case ev, open := <-sc.events:
			if !open {
				return engine.Event{}, engine.ErrTerminalClosed
			}
			if key, ok := sc.handle(ev); ok {
				return key, nil
			}
		case <-ctx.Done():
			return engine.Event{}, ctx.Err()
		}
	}
}

// handle deals with non-key events and converts key events.
func (sc *Screen) handle(ev tcell.Event) (engine.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return toEvent(ev), true
	case *tcell.EventResize:
		sc.screen.Sync()
	}
	return engine.Event{}, false
}

func toEvent(ev *tcell.EventKey) engine.Event {
	switch ev.Key() {
	case tcell.KeyRune:
		return engine.RuneEvent(ev.Rune())
	case tcell.KeyUp:
		return engine.Event{Key: engine.KeyUp}
	case tcell.KeyDown:
		return engine.Event{Key: engine.KeyDown}
	case tcell.KeyEscape:
		return engine.Event{Key: engine.KeyEscape}
	case tcell.KeyCtrlC:
		return engine.Event{Key: engine.KeyCtrlC}
	}
	return engine.Event{Key: engine.KeyOther}
}

func (sc *Screen) Render(snap engine.Snapshot) error {
	sc.screen.Clear()
	width, height := sc.screen.Size()

	sc.drawHeader(snap, width)
	row := sc.drawSwimmers(snap, width, height)
	sc.fillRow(row+1, width, styleFooter)
	sc.drawText(0, row+1, engine.Footer, styleFooter)

	sc.screen.Show()
	return nil
}

func (sc *Screen) drawHeader(snap engine.Snapshot, width int) {
	sc.fillRow(0, width, styleTitle)
	sc.drawCentered(0, width, engine.Title, styleTitle)

	sc.drawText(1, 2, "Total Lengths: "+engine.Count(snap.TotalLengths()), styleCounter)
	count := "Swimmers: " + engine.Count(len(snap.Swimmers))
	sc.drawText(width-runewidth.StringWidth(count)-1, 2, count, styleCounter)

	sc.drawCentered(3, width, engine.Controls, styleControls)
	sc.drawCentered(5, width, "[ New Swimmer Cost: "+engine.Count(snap.NewSwimmerCost)+" lengths ]", styleCost)
	sc.drawText(0, 6, strings.Repeat("─", width), styleMuted)
}

// drawSwimmers draws as many swimmers as fit, keeping the selection on
// screen, and returns the row after the last one.
func (sc *Screen) drawSwimmers(snap engine.Snapshot, width, height int) int {
	visible := (height - headerHeight - 3) / 3
	if visible < 1 {
		visible = 1
	}
	if snap.Selected < sc.first {
		sc.first = snap.Selected
	}
	if snap.Selected >= sc.first+visible {
		sc.first = snap.Selected - visible + 1
	}
	if sc.first > len(snap.Swimmers)-1 {
		sc.first = 0
	}

	laneWidth := width - 10
	if laneWidth < 4 {
		laneWidth = 4
	}

	row := headerHeight + 1
	for i := sc.first; i < len(snap.Swimmers) && i < sc.first+visible; i++ {
		sw := snap.Swimmers[i]
		selected := i == snap.Selected

		stats := engine.StatsLine(sw, selected)
		style := styleMuted
		if selected {
			style = styleSelected
			sc.drawText(3, row, strings.Repeat(" ", max(width-6, 0)), styleSelected)
		}
		sc.drawCentered(row, width, stats, style)
		row++

		sc.drawLane(row, width, laneWidth, sw)
		row++

		sc.drawCentered(row, width, engine.LaneDivider, styleMuted)
		row++
	}
	return row
}

func (sc *Screen) drawLane(row, width, laneWidth int, sw models.Swimmer) {
	x := centerPadding(laneWidth+2, width)
	sc.drawText(x, row, "│"+strings.Repeat("~", laneWidth)+"│", styleWater)

	glyph := engine.SwimmerGlyph(sw)
	offset := sw.LaneOffset(laneWidth)
	if limit := laneWidth - runewidth.StringWidth(glyph); offset > limit {
		offset = limit
	}
	sc.drawText(x+1+offset, row, glyph, tierStyles[sw.Tier()])
}

func (sc *Screen) UpgradeResult(s models.Swimmer, ok bool) error {
	sc.drawNotice(engine.UpgradeNotice(s, ok), ok)
	return nil
}

func (sc *Screen) RecruitResult(res engine.RecruitResult) error {
	sc.drawNotice(engine.RecruitNotice(res), res.OK)
	return nil
}

func (sc *Screen) drawNotice(text string, ok bool) {
	width, height := sc.screen.Size()
	style := styleFailure
	if ok {
		style = styleSuccess
	}
	row := max(height-3, 0)
	sc.drawCentered(row, width, "  "+text+"  ", style)
	sc.screen.Show()
}

func (sc *Screen) Goodbye() error {
	sc.screen.Clear()
	width, _ := sc.screen.Size()

	border := strings.Repeat("═", width)
	sc.drawText(0, 2, border, styleGoodbye)
	sc.drawCentered(4, width, engine.GoodbyeTitle, styleGoodbye)
	sc.drawCentered(6, width, engine.GoodbyeText, styleDefault)
	sc.drawCentered(8, width, engine.GoodbyePrompt, styleMuted)
	sc.drawText(0, 10, border, styleGoodbye)

	sc.screen.Show()
	return nil
}

// Close restores the terminal. The event channel is closed once the
// reader goroutine exits, even if nobody drains it.
func (sc *Screen) Close() error {
	sc.once.Do(func() {
		close(sc.quit)
		sc.screen.Fini()
	})
	return nil
}

func (sc *Screen) fillRow(y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		sc.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (sc *Screen) drawCentered(y, width int, text string, style tcell.Style) {
	sc.drawText(centerPadding(runewidth.StringWidth(text), width), y, text, style)
}

func (sc *Screen) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		sc.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// centerPadding is the left offset that centres content in width cells.
func centerPadding(content, width int) int {
	if content >= width {
		return 0
	}
	return (width - content) / 2
}
