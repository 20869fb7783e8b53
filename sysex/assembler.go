package sysex

import (
	"bytes"

	"go-rytm/rytmerr"
)

const (
	Start byte = 0xF0
	End   byte = 0xF7
)

type state int

const (
	idle state = iota
	buffering
)

// Assembler collects a byte stream into complete SysEx frames. It is not
// safe for concurrent use.
type Assembler struct {
	state state
	buf   []byte
}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// Feed appends b to the open frame. It returns the whole frame, markers
// included, when b closes it. A start marker always begins a fresh frame and
// drops any partial one. Bytes outside a frame are rejected.
func (a *Assembler) Feed(b byte) ([]byte, bool, error) {
	switch {
	case b == Start:
		a.buf = append(a.buf[:0], b)
		a.state = buffering
		return nil, false, nil

	case a.state == idle:
		return nil, false, rytmerr.OutOfFrame(b)

	case b == End:
		a.buf = append(a.buf, b)
		frame := bytes.Clone(a.buf)
		a.reset()
		return frame, true, nil
	}

	a.buf = append(a.buf, b)
	return nil, false, nil
}

// Buffering reports whether a frame is open
func (a *Assembler) Buffering() bool { return a.state == buffering }

func (a *Assembler) reset() {
	a.buf = a.buf[:0]
	a.state = idle
}
