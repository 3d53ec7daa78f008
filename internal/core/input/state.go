package input

// Reader is the read side of State consumed by the motion controller.
type Reader interface {
	Pressed(c Command) bool
}

// State holds the pressed flags of the directional commands. It changes only
// on key down/up edges and is read once per tick.
type State struct {
	pressed [Right + 1]bool
}

var _ Reader = (*State)(nil)

func (s *State) Press(c Command) {
	if c.Directional() {
		s.pressed[c] = true
	}
}

func (s *State) Release(c Command) {
	if c.Directional() {
		s.pressed[c] = false
	}
}

func (s *State) Pressed(c Command) bool {
	return c.Directional() && s.pressed[c]
}

// Reset releases every command.
func (s *State) Reset() {
	s.pressed = [Right + 1]bool{}
}

// Active lists pressed commands in declaration order.
func (s *State) Active() []Command {
	var out []Command
	for c := Forward; c <= Right; c++ {
		if s.pressed[c] {
			out = append(out, c)
		}
	}
	return out
}
