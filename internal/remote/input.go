package remote

import (
	"unicode/utf8"

	"mazecaster/internal/world"
)

// parseInput converts raw terminal bytes into one merged set of actions.
// Handles WASD, arrow key escape sequences (normal and application cursor
// mode), Q/E strafing, the view toggles and Ctrl-C / Ctrl-D to quit.
func parseInput(data []byte) (a world.Actions, quit bool) {
	i := 0
	for i < len(data) {
		if i+2 < len(data) && data[i] == 0x1b && (data[i+1] == '[' || data[i+1] == 'O') {
			switch data[i+2] {
			case 'A':
				a.Move++
			case 'B':
				a.Move--
			case 'C':
				a.Turn++
			case 'D':
				a.Turn--
			}
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'w', 'W':
			a.Move++
		case 's', 'S':
			a.Move--
		case 'a', 'A':
			a.Turn--
		case 'd', 'D':
			a.Turn++
		case 'q', 'Q':
			a.Strafe--
		case 'e', 'E':
			a.Strafe++
		case 'm', 'M':
			a.ToggleMode = !a.ToggleMode
		case 'n', 'N':
			a.ToggleMinimap = !a.ToggleMinimap
		case 't', 'T':
			a.ToggleTextures = !a.ToggleTextures
		case 3, 4: // Ctrl-C, Ctrl-D
			quit = true
		}
		i += size
	}
	return a, quit
}

// inputDecoder parses a terminal byte stream that may split escape
// sequences across reads. A trailing partial sequence is held back and
// prefixed to the next chunk.
type inputDecoder struct {
	carry []byte
}

// Feed parses one read worth of bytes.
func (d *inputDecoder) Feed(data []byte) (world.Actions, bool) {
	buf := append(d.carry, data...)
	n := partialEscape(buf)
	d.carry = append([]byte(nil), buf[len(buf)-n:]...)
	return parseInput(buf[:len(buf)-n])
}

// partialEscape returns how many trailing bytes of data could still grow
// into an arrow key sequence: ESC, or ESC followed by '[' or 'O'.
func partialEscape(data []byte) int {
	n := len(data)
	switch {
	case n >= 1 && data[n-1] == 0x1b:
		return 1
	case n >= 2 && data[n-2] == 0x1b && (data[n-1] == '[' || data[n-1] == 'O'):
		return 2
	}
	return 0
}

// merge folds b into a. Steps add up and toggles cancel in pairs.
func merge(a, b world.Actions) world.Actions {
	a.Move += b.Move
	a.Strafe += b.Strafe
	a.Turn += b.Turn
	a.Look += b.Look
	a.ToggleMode = a.ToggleMode != b.ToggleMode
	a.ToggleMinimap = a.ToggleMinimap != b.ToggleMinimap
	a.ToggleTextures = a.ToggleTextures != b.ToggleTextures
	return a
}
