package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/swim-idle/internal/engine"
	"github.com/tatianab/swim-idle/internal/models"
)

type sessionState int

const (
	stateStarting sessionState = iota
	statePlaying
	stateGoodbye
)

// headerHeight is the number of rows above the swimmer list.
const headerHeight = 7

// rowsPerSwimmer covers the stats row, the lane and the divider.
const rowsPerSwimmer = 3

type model struct {
	state    sessionState
	keys     chan<- engine.Event
	snap     engine.Snapshot
	notice   string
	noticeOK bool
	viewport viewport.Model
	help     help.Model
	keyMap   keyMap
	width    int
	height   int
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#00005F")).
			Bold(true)

	counterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AFAF"))

	costStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FD75F")).
			Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#585858"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#3A3A3A")).
			Bold(true)

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	waterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#005FD7"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#00005F"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87FF87")).
			Background(lipgloss.Color("#005F00")).
			Bold(true).
			Padding(0, 2)

	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF8787")).
			Background(lipgloss.Color("#5F0000")).
			Bold(true).
			Padding(0, 2)

	goodbyeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AFAF")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	tierStyles = map[models.SpeedTier]lipgloss.Style{
		models.TierSlow:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true),
		models.TierMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F")).Bold(true),
		models.TierFast:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5FFF5F")).Bold(true),
	}
)

// keyMap only feeds the help line; key handling lives in the engine.
type keyMap struct {
	Select  key.Binding
	Upgrade key.Binding
	Recruit key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Upgrade, k.Recruit, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newKeyMap() keyMap {
	return keyMap{
		Select:  key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "select")),
		Upgrade: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "upgrade")),
		Recruit: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new swimmer")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func newModel(keys chan<- engine.Event) model {
	m := model{
		state:    stateStarting,
		keys:     keys,
		viewport: viewport.New(80, 14),
		help:     help.New(),
		keyMap:   newKeyMap(),
		width:    80,
		height:   24,
	}
	m.resizeViewport()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

type snapshotMsg struct {
	snap engine.Snapshot
}

type noticeMsg struct {
	text string
	ok   bool
}

type goodbyeMsg struct{}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if ev, ok := toEvent(msg); ok {
			select {
			case m.keys <- ev:
			default:
				// The loop is behind; drop rather than stall the UI.
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		m.refreshLanes()

	case snapshotMsg:
		m.snap = msg.snap
		m.notice = ""
		if m.state == stateStarting {
			m.state = statePlaying
		}
		m.refreshLanes()

	case noticeMsg:
		m.notice = msg.text
		m.noticeOK = msg.ok

	case goodbyeMsg:
		m.state = stateGoodbye
	}

	return m, nil
}

// toEvent translates a bubbletea key into an engine key press.
func toEvent(msg tea.KeyMsg) (engine.Event, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return engine.Event{}, false
		}
		return engine.RuneEvent(msg.Runes[0]), true
	case tea.KeySpace:
		return engine.RuneEvent(' '), true
	case tea.KeyUp:
		return engine.Event{Key: engine.KeyUp}, true
	case tea.KeyDown:
		return engine.Event{Key: engine.KeyDown}, true
	case tea.KeyEsc:
		return engine.Event{Key: engine.KeyEscape}, true
	case tea.KeyCtrlC:
		return engine.Event{Key: engine.KeyCtrlC}, true
	}
	return engine.Event{Key: engine.KeyOther}, true
}

func (m *model) resizeViewport() {
	m.viewport.Width = m.width
	// header, footer and notice rows
	height := m.height - headerHeight - 3
	if height < rowsPerSwimmer {
		height = rowsPerSwimmer
	}
	m.viewport.Height = height
}

// refreshLanes redraws the swimmer list and scrolls the selection into view.
func (m *model) refreshLanes() {
	m.viewport.SetContent(m.renderSwimmers())

	top := m.snap.Selected * rowsPerSwimmer
	bottom := top + rowsPerSwimmer
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

func (m model) View() string {
	switch m.state {
	case stateStarting:
		return "\n  Warming up the pool...\n"
	case stateGoodbye:
		return m.renderGoodbye()
	}

	notice := ""
	if m.notice != "" {
		style := failureStyle
		if m.noticeOK {
			style = successStyle
		}
		notice = m.center(style.Render(m.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		footerStyle.Width(m.width).Render(engine.Footer),
		notice,
	)
}

func (m model) center(s string) string {
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

func (m model) renderHeader() string {
	title := titleStyle.Width(m.width).Align(lipgloss.Center).Render(engine.Title)

	total := counterStyle.Render("Total Lengths: " + engine.Count(m.snap.TotalLengths()))
	count := counterStyle.Render("Swimmers: " + engine.Count(len(m.snap.Swimmers)))
	gap := m.width - lipgloss.Width(total) - lipgloss.Width(count) - 2
	if gap < 1 {
		gap = 1
	}
	counters := " " + total + strings.Repeat(" ", gap) + count

	cost := costStyle.Render("[ New Swimmer Cost: " + engine.Count(m.snap.NewSwimmerCost) + " lengths ]")
	separator := separatorStyle.Render(strings.Repeat("─", m.width))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		counters,
		m.center(helpStyle.Render(m.help.ShortHelpView(m.keyMap.ShortHelp()))),
		"",
		m.center(cost),
		separator,
	)
}

func (m model) renderSwimmers() string {
	laneWidth := m.width - 10
	if laneWidth < 4 {
		laneWidth = 4
	}

	var rows []string
	for i, sw := range m.snap.Swimmers {
		selected := i == m.snap.Selected
		stats := engine.StatsLine(sw, selected)
		if selected {
			stats = selectedStyle.Render(stats)
		} else {
			stats = statsStyle.Render(stats)
		}
		rows = append(rows,
			m.center(stats),
			m.center(renderLane(sw, laneWidth)),
			m.center(separatorStyle.Render(engine.LaneDivider)),
		)
	}
	return strings.Join(rows, "\n")
}

// renderLane draws the water with the swimmer glyph at its offset.
func renderLane(sw models.Swimmer, width int) string {
	glyph := engine.SwimmerGlyph(sw)
	glyphWidth := lipgloss.Width(glyph)

	offset := sw.LaneOffset(width)
	if offset > width-glyphWidth {
		offset = width - glyphWidth
	}

	before := waterStyle.Render(strings.Repeat("~", offset))
	after := waterStyle.Render(strings.Repeat("~", width-offset-glyphWidth))
	return waterStyle.Render("│") + before + tierStyles[sw.Tier()].Render(glyph) + after + waterStyle.Render("│")
}

func (m model) renderGoodbye() string {
	border := goodbyeStyle.Render(strings.Repeat("═", m.width))
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		"",
		border,
		"",
		m.center(goodbyeStyle.Render(engine.GoodbyeTitle)),
		"",
		m.center(engine.GoodbyeText),
		"",
		m.center(helpStyle.Render(engine.GoodbyePrompt)),
		"",
		border,
	)
}
