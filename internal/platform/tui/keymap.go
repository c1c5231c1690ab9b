package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// holdWindow is how long a movement key counts as held after its last press.
// Terminals report key repeats, not releases, so this bridges repeat gaps.
const holdWindow = 150 * time.Millisecond

// binding is one player action produced by a key.
type binding struct {
	player core.PlayerID
	action core.Action
}

// KeyMapper translates Bubble Tea key messages to player actions.
type KeyMapper struct {
	players int
}

// NewKeyMapper creates a key mapper for a game with the given seat count.
// Two seats split the keyboard: W/S for the left seat, arrows for the right.
func NewKeyMapper(players int) *KeyMapper {
	return &KeyMapper{players: players}
}

// MapKey returns the action bound to a key.
// isQuit is set for quit keys, which carry no player action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (b binding, ok bool, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return binding{}, false, true
	case " ":
		return binding{core.Player1, core.ActionFire}, true, false
	case "p", "esc":
		return binding{core.Player1, core.ActionPause}, true, false
	case "r":
		return binding{core.Player1, core.ActionRestart}, true, false
	}

	if km.players >= 2 {
		switch key {
		case "w":
			return binding{core.Player1, core.ActionUp}, true, false
		case "s":
			return binding{core.Player1, core.ActionDown}, true, false
		case "up":
			return binding{core.Player2, core.ActionUp}, true, false
		case "down":
			return binding{core.Player2, core.ActionDown}, true, false
		}
		return binding{}, false, false
	}

	switch key {
	case "w", "up", "k":
		return binding{core.Player1, core.ActionUp}, true, false
	case "s", "down", "j":
		return binding{core.Player1, core.ActionDown}, true, false
	case "a", "left", "h":
		return binding{core.Player1, core.ActionLeft}, true, false
	case "d", "right", "l":
		return binding{core.Player1, core.ActionRight}, true, false
	}
	return binding{}, false, false
}

// held reports whether an action is a movement key that stays down between repeats.
func held(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		return true
	}
	return false
}

// InputState accumulates key presses between ticks.
// Movement keys stay active for holdWindow; other keys fire once.
type InputState struct {
	pressed []binding
	holds   map[binding]time.Time
}

// NewInputState creates an empty input state.
func NewInputState() *InputState {
	return &InputState{holds: make(map[binding]time.Time)}
}

// Press records a key press at time now.
func (s *InputState) Press(b binding, now time.Time) {
	if held(b.action) {
		s.holds[b] = now.Add(holdWindow)
		// Opposite directions cancel the hold immediately
		for other := range s.holds {
			if other.player == b.player && other.action == opposite(b.action) {
				delete(s.holds, other)
			}
		}
	}
	s.pressed = append(s.pressed, b)
}

// Frame builds the input for one tick and consumes one-shot presses.
func (s *InputState) Frame(now time.Time) core.MultiInputFrame {
	in := core.NewMultiInputFrame()
	for _, b := range s.pressed {
		in.Press(b.player, b.action)
	}
	s.pressed = s.pressed[:0]

	for b, until := range s.holds {
		if now.After(until) {
			delete(s.holds, b)
			continue
		}
		in.Press(b.player, b.action)
	}
	return in
}

// Reset drops all pending and held keys.
func (s *InputState) Reset() {
	s.pressed = s.pressed[:0]
	clear(s.holds)
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
