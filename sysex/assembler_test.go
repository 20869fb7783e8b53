package sysex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-rytm/rytmerr"
)

func feedAll(t *testing.T, a *Assembler, data []byte) [][]byte {
	t.Helper()
	var frames [][]byte
	for _, b := range data {
		frame, done, err := a.Feed(b)
		require.NoError(t, err)
		if done {
			frames = append(frames, frame)
		}
	}
	return frames
}

func TestAssemblerFrames(t *testing.T) {
	a := NewAssembler()
	frames := feedAll(t, a, []byte{0xF0, 0x01, 0x02, 0xF7, 0xF0, 0x03, 0xF7})

	require.Len(t, frames, 2)
	assert.Equal(t, []byte{0xF0, 0x01, 0x02, 0xF7}, frames[0])
	assert.Equal(t, []byte{0xF0, 0x03, 0xF7}, frames[1])
	assert.False(t, a.Buffering())
}

func TestAssemblerFrameIsCopied(t *testing.T) {
	a := NewAssembler()
	first := feedAll(t, a, []byte{0xF0, 0x01, 0xF7})[0]
	feedAll(t, a, []byte{0xF0, 0x7F, 0xF7})

	assert.Equal(t, []byte{0xF0, 0x01, 0xF7}, first)
}

func TestAssemblerRestartsOnStart(t *testing.T) {
	a := NewAssembler()
	frames := feedAll(t, a, []byte{0xF0, 0x01, 0x02, 0xF0, 0x05, 0xF7})

	require.Len(t, frames, 1)
	assert.Equal(t, []byte{0xF0, 0x05, 0xF7}, frames[0])
}

func TestAssemblerOutOfFrame(t *testing.T) {
	a := NewAssembler()

	_, done, err := a.Feed(0x42)
	assert.False(t, done)
	assert.ErrorIs(t, err, rytmerr.ErrOutOfFrame)

	_, _, err = a.Feed(End)
	assert.ErrorIs(t, err, rytmerr.ErrOutOfFrame)

	_, _, err = a.Feed(Start)
	require.NoError(t, err)
	assert.True(t, a.Buffering())
}
