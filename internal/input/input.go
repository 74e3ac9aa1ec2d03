// Package input turns raw terminal bytes into a per-frame input snapshot.
package input

import (
	"bufio"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Axes are the primary movement axes, each in [-1, 1].
type Axes struct {
	Horizontal float64
	Vertical   float64
}

// Pointer is the secondary pointer/force device. X and Y are in [-1, 1] relative to the
// center of the play area (Y up); Force is the press intensity.
type Pointer struct {
	X, Y  float64
	Force float64
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Fire    bool    // Binary fire button
	Trigger float64 // Analog trigger in [0, 1], from the pointer device
	Restart bool    // Restart key or pointer bumper release
	Enter   bool
	Escape  bool

	Pointer    Pointer
	HasPointer bool // False until the pointer device has reported at least once

	Pressed []byte // Bytes received by this read
}

// Axes returns the movement axes derived from the directional keys.
func (in Input) Axes() Axes {
	var a Axes
	if in.Left {
		a.Horizontal--
	}
	if in.Right {
		a.Horizontal++
	}
	if in.Down {
		a.Vertical--
	}
	if in.Up {
		a.Vertical++
	}
	return a
}

// ActivePointer returns the pointer state, or an idle pointer when no device is present.
func (in Input) ActivePointer() Pointer {
	if !in.HasPointer {
		return Pointer{}
	}
	return in.Pointer
}

// AnalogTrigger returns the analog trigger value, or zero when no device is present.
func (in Input) AnalogTrigger() float64 {
	if !in.HasPointer {
		return 0
	}
	return in.Trigger
}

// PointerArea maps terminal cells onto the pointer's [-1, 1] range.
// Offsets are 0-based terminal columns/rows to skip.
type PointerArea struct {
	Cols, Rows           int
	OffsetCol, OffsetRow int
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit    time.Time
	left    time.Time
	right   time.Time
	up      time.Time
	down    time.Time
	fire    time.Time
	restart time.Time
	enter   time.Time
	escape  time.Time
}

// mouseState tracks the latest SGR mouse report.
type mouseState struct {
	seen     bool
	col, row int
	left     bool
	right    bool
	released bool // Middle button released since the last read
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	mouse   mouseState
	area    PointerArea
	pending []byte // Incomplete escape sequence carried to the next read
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// SetPointerArea updates the terminal area the pointer is normalized against.
func (s *Stream) SetPointerArea(area PointerArea) {
	s.area = area
}

// Reset forgets held keys so a key used to confirm a screen does not leak into the next one.
func (s *Stream) Reset() {
	s.state = keyState{}
	s.mouse.left = false
	s.mouse.right = false
	s.mouse.released = false
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and SGR mouse reports.
// A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	now := time.Now()
	buf := append([]byte(nil), s.pending...)
	carried := len(buf)
	s.pending = s.pending[:0]
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	// A lone ESC waits one read for the rest of a sequence before it counts as Escape.
	s.parse(buf, now, closed || len(buf) == carried)

	in := Input{
		Quit:    closed || now.Sub(s.state.quit) < keyHoldDuration,
		Left:    now.Sub(s.state.left) < keyHoldDuration,
		Right:   now.Sub(s.state.right) < keyHoldDuration,
		Up:      now.Sub(s.state.up) < keyHoldDuration,
		Down:    now.Sub(s.state.down) < keyHoldDuration,
		Fire:    now.Sub(s.state.fire) < keyHoldDuration,
		Restart: now.Sub(s.state.restart) < keyHoldDuration || s.mouse.released,
		Enter:   now.Sub(s.state.enter) < keyHoldDuration,
		Escape:  now.Sub(s.state.escape) < keyHoldDuration,
		Pressed: buf[carried:],
	}
	s.mouse.released = false

	if s.mouse.seen {
		in.HasPointer = true
		in.Pointer = s.pointer()
		if s.mouse.right {
			in.Trigger = 1
		}
	}

	return in
}

// parse updates key and mouse state from the collected bytes. Unless flush is set, a
// trailing ESC is carried to the next read.
func (s *Stream) parse(buf []byte, now time.Time, flush bool) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 == len(buf) && !flush {
			s.pending = append(s.pending, b)
			return
		}
		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			if i+2 >= len(buf) {
				s.pending = append(s.pending, buf[i:]...)
				return
			}
			switch buf[i+2] {
			case 'A': // Up arrow
				s.state.up = now
				i += 2
				continue
			case 'B': // Down arrow
				s.state.down = now
				i += 2
				continue
			case 'C': // Right arrow
				s.state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				s.state.left = now
				i += 2
				continue
			case '<': // SGR mouse: ESC [ < b ; x ; y (M|m)
				n, complete := s.parseMouse(buf[i+3:])
				if !complete {
					s.pending = append(s.pending, buf[i:]...)
					return
				}
				i += 2 + n
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}
}

// parseMouse parses the body of an SGR mouse report and returns the bytes consumed.
func (s *Stream) parseMouse(body []byte) (int, bool) {
	var fields [3]int
	field := 0
	start := 0
	for j, c := range body {
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' && field < 2:
			v, _ := strconv.Atoi(string(body[start:j]))
			fields[field] = v
			field++
			start = j + 1
		case (c == 'M' || c == 'm') && field == 2:
			v, _ := strconv.Atoi(string(body[start:j]))
			fields[2] = v
			s.applyMouse(fields[0], fields[1], fields[2], c == 'M')
			return j + 1, true
		default:
			// Malformed report: skip what we have seen.
			return j, true
		}
	}
	return 0, false
}

// applyMouse records one SGR mouse report. col and row are 1-based.
func (s *Stream) applyMouse(code, col, row int, press bool) {
	s.mouse.seen = true
	s.mouse.col = col
	s.mouse.row = row

	if code&64 != 0 {
		return // Wheel
	}
	button := code & 3
	switch button {
	case 0:
		s.mouse.left = press
	case 1:
		if !press {
			s.mouse.released = true
		}
	case 2:
		s.mouse.right = press
	}
}

// pointer normalizes the last mouse position against the pointer area.
func (s *Stream) pointer() Pointer {
	var p Pointer
	if s.area.Cols > 0 && s.area.Rows > 0 {
		halfW := float64(s.area.Cols) / 2
		halfH := float64(s.area.Rows) / 2
		p.X = clampUnit((float64(s.mouse.col-s.area.OffsetCol) - 0.5 - halfW) / halfW)
		p.Y = clampUnit((halfH - (float64(s.mouse.row-s.area.OffsetRow) - 0.5)) / halfH)
	}
	if s.mouse.left {
		p.Force = 1
	}
	return p
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.up = now
	case 's', 'S', 'k', 'K':
		state.down = now
	case ' ':
		state.fire = now
	case 'r', 'R':
		state.restart = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	}
}
