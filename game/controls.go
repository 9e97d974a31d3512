package game

import (
	"github.com/memmaker/termcraft/engine/input"
	"github.com/pkg/errors"
	"sort"
)

type Action string

const (
	ActionForward   Action = "forward"
	ActionBack      Action = "back"
	ActionLeft      Action = "left"
	ActionRight     Action = "right"
	ActionTurnLeft  Action = "turn_left"
	ActionTurnRight Action = "turn_right"
	ActionLookUp    Action = "look_up"
	ActionLookDown  Action = "look_down"
	ActionJump      Action = "jump"
	ActionPlace     Action = "place"
	ActionRemove    Action = "remove"
	ActionQuit      Action = "quit"
)

var allActions = []Action{
	ActionForward, ActionBack, ActionLeft, ActionRight,
	ActionTurnLeft, ActionTurnRight, ActionLookUp, ActionLookDown,
	ActionJump, ActionPlace, ActionRemove, ActionQuit,
}

func DefaultBindingNames() map[string][]string {
	return map[string][]string{
		string(ActionForward):   {"w"},
		string(ActionBack):      {"s"},
		string(ActionLeft):      {"a"},
		string(ActionRight):     {"d"},
		string(ActionTurnLeft):  {"j", "left"},
		string(ActionTurnRight): {"l", "right"},
		string(ActionLookUp):    {"i", "up"},
		string(ActionLookDown):  {"k", "down"},
		string(ActionJump):      {"space"},
		string(ActionPlace):     {"e"},
		string(ActionRemove):    {"q", ";"},
		string(ActionQuit):      {"`", "esc", "ctrl+c"},
	}
}

// Bindings maps every action to the keys that trigger it.
type Bindings map[Action][]input.Key

func ParseBindings(names map[string][]string) (Bindings, error) {
	bindings := make(Bindings, len(names))
	for name, keyNames := range names {
		action := Action(name)
		if !isAction(action) {
			return nil, errors.Errorf("input: unknown action %q", name)
		}
		for _, keyName := range keyNames {
			key, err := input.KeyByName(keyName)
			if err != nil {
				return nil, errors.Wrapf(err, "input: binding for %s", name)
			}
			bindings[action] = append(bindings[action], key)
		}
	}
	return bindings, nil
}

func DefaultBindings() Bindings {
	bindings, _ := ParseBindings(DefaultBindingNames())
	return bindings
}

func isAction(action Action) bool {
	for _, a := range allActions {
		if a == action {
			return true
		}
	}
	return false
}

func (b Bindings) Held(kb input.Keyboard, action Action) bool {
	for _, key := range b[action] {
		if kb.IsHeld(key) {
			return true
		}
	}
	return false
}

func (b Bindings) Pressed(kb input.Keyboard, action Action) bool {
	for _, key := range b[action] {
		if kb.WasPressed(key) {
			return true
		}
	}
	return false
}

// First returns the first key bound to action, for scripted input.
func (b Bindings) First(action Action) input.Key {
	keys := b[action]
	if len(keys) == 0 {
		return input.KeyNone
	}
	return keys[0]
}

func (b Bindings) Actions() []string {
	names := make([]string, 0, len(b))
	for action := range b {
		names = append(names, string(action))
	}
	sort.Strings(names)
	return names
}

// Intent is one frame of player input. Axis values are -1, 0 or 1.
type Intent struct {
	Forward float64
	Strafe  float64
	Turn    float64
	Look    float64
	Jump    bool
	Place   bool
	Remove  bool
	Quit    bool
}

func (i Intent) Moving() bool {
	return i.Forward != 0 || i.Strafe != 0
}

func axis(kb input.Keyboard, b Bindings, positive, negative Action) float64 {
	value := 0.0
	if b.Held(kb, positive) {
		value++
	}
	if b.Held(kb, negative) {
		value--
	}
	return value
}

// ReadIntent samples the keyboard. Movement and looking follow held keys,
// edits and quitting only fire on the frame the key goes down.
func ReadIntent(kb input.Keyboard, b Bindings) Intent {
	return Intent{
		Forward: axis(kb, b, ActionForward, ActionBack),
		Strafe:  axis(kb, b, ActionRight, ActionLeft),
		Turn:    axis(kb, b, ActionTurnLeft, ActionTurnRight),
		Look:    axis(kb, b, ActionLookUp, ActionLookDown),
		Jump:    b.Held(kb, ActionJump),
		Place:   b.Pressed(kb, ActionPlace),
		Remove:  b.Pressed(kb, ActionRemove),
		Quit:    b.Pressed(kb, ActionQuit),
	}
}
