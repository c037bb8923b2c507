package engine

// Key identifies a key press delivered by an InputSource.
type Key int

const (
	KeyOther Key = iota
	KeyRune
	KeyUp
	KeyDown
	KeyEscape
	KeyCtrlC
)

// Event is a single key press. Rune is set only for KeyRune.
type Event struct {
	Key  Key
	Rune rune
}

// RuneEvent is a convenience constructor for printable keys.
func RuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// Action is what a key press asks the session to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionUpgrade
	ActionRecruit
	ActionSelectPrevious
	ActionSelectNext
)

var actionNames = map[Action]string{
	ActionNone:           "none",
	ActionQuit:           "quit",
	ActionUpgrade:        "upgrade",
	ActionRecruit:        "recruit",
	ActionSelectPrevious: "select-previous",
	ActionSelectNext:     "select-next",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionFor maps a key press onto an action. Unrecognised keys map to
// ActionNone.
func ActionFor(ev Event) Action {
	switch ev.Key {
	case KeyUp:
		return ActionSelectPrevious
	case KeyDown:
		return ActionSelectNext
	case KeyEscape, KeyCtrlC:
		return ActionQuit
	case KeyRune:
		switch ev.Rune {
		case 'q':
			return ActionQuit
		case ' ':
			return ActionUpgrade
		case 'n':
			return ActionRecruit
		}
	}
	return ActionNone
}
