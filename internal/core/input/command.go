package input

import (
	"fmt"
	"strings"
)

// Command is what a key means to the game.
type Command uint8

const (
	CommandNone Command = iota
	Forward
	Back
	Left
	Right
	// Action is the single pickup/deliver trigger.
	Action
)

var commandNames = map[Command]string{
	Forward: "forward",
	Back:    "back",
	Left:    "left",
	Right:   "right",
	Action:  "action",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return "none"
}

// Directional reports whether c is one of the four movement commands.
func (c Command) Directional() bool {
	return c >= Forward && c <= Right
}

// ParseCommand is the inverse of Command.String. "none" unbinds a key.
func ParseCommand(s string) (Command, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == CommandNone.String() {
		return CommandNone, nil
	}
	for c, name := range commandNames {
		if name == s {
			return c, nil
		}
	}
	return CommandNone, fmt.Errorf("unknown command %q", s)
}
