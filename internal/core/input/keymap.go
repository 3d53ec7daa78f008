package input

import (
	"fmt"
	"strings"
)

// Event is a key edge delivered by the host.
type Event struct {
	Key  string `json:"key"`
	Down bool   `json:"down"`
}

// KeyMap binds key identities to commands. Keys are matched case-insensitively.
type KeyMap struct {
	bindings map[string]Command
}

// DefaultBindings are WASD and the arrow keys for movement, space and E for the trigger.
func DefaultBindings() map[string]Command {
	return map[string]Command{
		"w":          Forward,
		"arrowup":    Forward,
		"s":          Back,
		"arrowdown":  Back,
		"a":          Left,
		"arrowleft":  Left,
		"d":          Right,
		"arrowright": Right,
		" ":          Action,
		"space":      Action,
		"e":          Action,
	}
}

func NewKeyMap(bindings map[string]Command) *KeyMap {
	m := &KeyMap{bindings: make(map[string]Command, len(bindings))}
	for k, c := range bindings {
		m.bindings[normalizeKey(k)] = c
	}
	return m
}

// Bind overrides one binding; a key bound to CommandNone is ignored by Resolve.
func (m *KeyMap) Bind(key string, c Command) {
	m.bindings[normalizeKey(key)] = c
}

// BindNamed binds key to the command named cmd, as written in configuration files.
func (m *KeyMap) BindNamed(key, cmd string) error {
	c, err := ParseCommand(cmd)
	if err != nil {
		return fmt.Errorf("bind %q: %w", key, err)
	}
	m.Bind(key, c)
	return nil
}

func (m *KeyMap) Resolve(key string) Command {
	return m.bindings[normalizeKey(key)]
}

// Apply feeds a key edge into state. It returns true when the edge is an
// Action key going down, which the caller turns into a trigger.
func (m *KeyMap) Apply(state *State, ev Event) bool {
	c := m.Resolve(ev.Key)
	switch {
	case c == Action:
		return ev.Down
	case !c.Directional():
		return false
	case ev.Down:
		state.Press(c)
	default:
		state.Release(c)
	}
	return false
}

func normalizeKey(k string) string {
	if k == " " {
		return k
	}
	return strings.ToLower(strings.TrimSpace(k))
}
