package sysex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-rytm/parse"
	"go-rytm/project"
	"go-rytm/rytmerr"
)

func TestPackRoundTrip(t *testing.T) {
	for n := 0; n <= 16; n++ {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i*37 + 0x70)
		}
		packed := pack7(data)
		for _, b := range packed {
			assert.Less(t, b, byte(0x80))
		}
		assert.Equal(t, data, unpack7(packed), "length %d", n)
	}
}

func TestPackHighBits(t *testing.T) {
	assert.Equal(t, []byte{0x40, 0x00}, pack7([]byte{0x80}))
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x7F, 0x00, 0x01},
		pack7([]byte{0, 0, 0, 0, 0, 0, 0xFF, 1}))
}

func TestSplit14(t *testing.T) {
	hi, lo := split14(0x3FFF)
	assert.Equal(t, byte(0x7F), hi)
	assert.Equal(t, byte(0x7F), lo)
	assert.Equal(t, 0x1234, join14(split14(0x1234)))
	assert.Equal(t, 0x0234, join14(split14(0x4234)))
}

func TestQueryFrames(t *testing.T) {
	tests := []struct {
		sel  parse.Selector
		want []byte
	}{
		{
			parse.Selector{Type: parse.Pattern, Index: 3},
			[]byte{0xF0, 0x00, 0x20, 0x3C, 0x07, 0x00, 0x64, 0x01, 0x01, 0x03, 0x00, 0x00, 0x00, 0x05, 0xF7},
		},
		{
			parse.Selector{Type: parse.KitWB},
			[]byte{0xF0, 0x00, 0x20, 0x3C, 0x07, 0x00, 0x62, 0x01, 0x01, 0x80, 0x00, 0x00, 0x00, 0x05, 0xF7},
		},
		{
			parse.Selector{Type: parse.SoundWB, Index: 2},
			[]byte{0xF0, 0x00, 0x20, 0x3C, 0x07, 0x00, 0x63, 0x01, 0x01, 0x82, 0x00, 0x00, 0x00, 0x05, 0xF7},
		},
		{
			parse.Selector{Type: parse.Settings},
			[]byte{0xF0, 0x00, 0x20, 0x3C, 0x07, 0x00, 0x66, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x05, 0xF7},
		},
	}
	for _, tt := range tests {
		t.Run(tt.sel.String(), func(t *testing.T) {
			got, err := Elektron{}.Query(tt.sel, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeFrameShape(t *testing.T) {
	p := project.New()
	frame, err := Elektron{}.Encode(p, parse.Selector{Type: parse.Global, Index: 2}, 0x05)
	require.NoError(t, err)

	assert.Equal(t, []byte{0xF0, 0x00, 0x20, 0x3C, 0x07, 0x05, 0x57, 0x01, 0x01, 0x02}, frame[:10])
	assert.Equal(t, End, frame[len(frame)-1])
	for _, b := range frame[1 : len(frame)-1] {
		assert.Less(t, b, byte(0x80))
	}
}

func TestRoundTrip(t *testing.T) {
	src := project.New()
	kit := &src.Kits[5]
	kit.Name = "BOOM"
	kit.Sounds[3].Amp.Level = 17
	kit.Delay.TimeOnGrid = "1/8"

	pat := &src.WorkBuffer.Pattern
	pat.BPM = 133.5
	trig := &pat.Tracks[4].Trigs[9]
	trig.Enabled = true
	trig.Lock("filtertype", project.Plock{Variant: "hp2"})
	trig.Lock("lfodepth", project.Plock{Number: 12.5, IsFloat: true})

	src.Sounds[7].Name = "POOL"
	src.Settings.BPM = 99
	src.Settings.Muted[4] = true

	sels := []parse.Selector{
		{Type: parse.Kit, Index: 5},
		{Type: parse.PatternWB},
		{Type: parse.Sound, Index: 7},
		{Type: parse.Settings},
	}

	dst := project.New()
	for _, sel := range sels {
		frame, err := Elektron{}.Encode(src, sel, 0)
		require.NoError(t, err, sel.String())
		dump, err := Elektron{}.Decode(frame)
		require.NoError(t, err, sel.String())
		assert.Equal(t, sel, dump.Selector)
		require.NoError(t, Apply(dst, dump, nil))
	}

	assert.Equal(t, src.Kits[5], dst.Kits[5])
	assert.Equal(t, src.WorkBuffer.Pattern, dst.WorkBuffer.Pattern)
	assert.Equal(t, src.Sounds[7], dst.Sounds[7])
	assert.Equal(t, src.Settings, dst.Settings)

	lock, ok := dst.WorkBuffer.Pattern.Tracks[4].Trigs[9].Lookup("lfodepth")
	require.True(t, ok)
	assert.Equal(t, 12.5, lock.Number)
}

func TestApplyFollowsSelector(t *testing.T) {
	src := project.New()
	src.Kits[5].Name = "MOVED"
	frame, err := Elektron{}.Encode(src, parse.Selector{Type: parse.Kit, Index: 5}, 0)
	require.NoError(t, err)
	dump, err := Elektron{}.Decode(frame)
	require.NoError(t, err)

	dump.Selector = parse.Selector{Type: parse.KitWB}
	dst := project.New()
	require.NoError(t, Apply(dst, dump, nil))

	wb := dst.WorkBuffer.Kit
	assert.Equal(t, "MOVED", wb.Name)
	assert.True(t, wb.IsWorkBuffer)
	assert.Equal(t, 0, wb.Index)
	assert.Equal(t, project.SoundWorkBuffer, wb.Sounds[11].Kind)
	assert.Equal(t, 11, wb.Sounds[11].Index)
}

func TestApplySoundWorkBuffer(t *testing.T) {
	src := project.New()
	src.Sounds[1].Amp.Pan = -20
	frame, err := Elektron{}.Encode(src, parse.Selector{Type: parse.Sound, Index: 1}, 0)
	require.NoError(t, err)
	dump, err := Elektron{}.Decode(frame)
	require.NoError(t, err)

	dump.Selector = parse.Selector{Type: parse.SoundWB, Index: 2}
	dst := project.New()
	require.NoError(t, Apply(dst, dump, nil))

	snd := dst.WorkBuffer.Kit.Sounds[2]
	assert.Equal(t, -20, snd.Amp.Pan)
	assert.Equal(t, 2, snd.Index)
	assert.Equal(t, project.SoundWorkBuffer, snd.Kind)
}

func TestApplyRejectedKeepsTree(t *testing.T) {
	src := project.New()
	src.Patterns[1].MasterLength = 99999
	frame, err := Elektron{}.Encode(src, parse.Selector{Type: parse.Pattern, Index: 1}, 0)
	require.NoError(t, err)
	dump, err := Elektron{}.Decode(frame)
	require.NoError(t, err)

	dst := project.New()
	dst.Patterns[1].MasterLength = 32
	var seen any
	err = Apply(dst, dump, func(obj any) error {
		seen = obj
		return rytmerr.SetRange("masterlen is out of range")
	})
	assert.ErrorIs(t, err, rytmerr.ErrCodec)
	assert.ErrorContains(t, err, "masterlen")
	assert.Equal(t, 32, dst.Patterns[1].MasterLength)

	pat, ok := seen.(*project.Pattern)
	require.True(t, ok)
	assert.Equal(t, 99999, pat.MasterLength)
	assert.Equal(t, 1, pat.Tracks[3].PatternIndex)
}

func TestDecodeErrors(t *testing.T) {
	valid := func(t *testing.T) []byte {
		frame, err := Elektron{}.Encode(project.New(), parse.Selector{Type: parse.Sound, Index: 0}, 0)
		require.NoError(t, err)
		return frame
	}

	tests := []struct {
		name   string
		mangle func([]byte) []byte
	}{
		{"too short", func(f []byte) []byte { return f[:6] }},
		{"unterminated", func(f []byte) []byte { return f[:len(f)-1] }},
		{"foreign header", func(f []byte) []byte { f[4] = 0x08; return f }},
		{"query", func(f []byte) []byte { f[6] = 0x63; return f }},
		{"unknown type", func(f []byte) []byte { f[6] = 0x55; return f }},
		{"index out of range", func(f []byte) []byte { f[9] = 12; return f }},
		{"checksum", func(f []byte) []byte { f[prefixLen+1] ^= 0x01; return f }},
		{"length", func(f []byte) []byte { f[len(f)-2] ^= 0x01; return f }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Elektron{}.Decode(tt.mangle(valid(t)))
			assert.ErrorIs(t, err, rytmerr.ErrCodec)
		})
	}
}
