package api

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-rytm/parse"
	"go-rytm/project"
	"go-rytm/rytmerr"
	"go-rytm/value"
)

func newTestEngine() *Engine {
	return New(nil, Config{Logger: slog.New(slog.DiscardHandler)})
}

func run(t *testing.T, e *Engine, op parse.Op, line string) Response {
	t.Helper()
	resp, err := e.Command(context.Background(), op, value.Fields(line))
	require.NoError(t, err, line)
	return resp
}

func TestSetThenGet(t *testing.T) {
	tests := []struct {
		set  string
		get  string
		want Response
	}{
		{"pattern 1 masterlen 32", "pattern 1 masterlen", Common(1, "masterlen", value.Int(32))},
		{"pattern_wb patternbpm 133.5", "pattern_wb patternbpm", Common(0, "patternbpm", value.Float(133.5))},
		{"pattern 2 speed:2x", "pattern 2 speed:", Common(2, "speed", value.Symbol("2x"))},
		{"pattern 3 4 deftrignote 48", "pattern 3 4 deftrignote", Track(3, 4, "deftrignote", value.Int(48))},
		{"pattern 3 4 rootnote:f#", "pattern 3 4 rootnote:", Track(3, 4, "rootnote", value.Symbol("f#"))},
		{"pattern 0 12 63 vel 90", "pattern 0 12 63 vel", Trig(0, 12, 63, "vel", value.Int(90))},
		{"pattern 0 1 2 retrigrate:1/8", "pattern 0 1 2 retrigrate:", Trig(0, 1, 2, "retrigrate", value.Symbol("1/8"))},
		{"pattern 0 1 2 soundlock 7", "pattern 0 1 2 soundlock", Trig(0, 1, 2, "soundlock", value.Int(7))},
		{"kit 3 fxdelfeedback 150", "kit 3 fxdelfeedback", Common(3, "fxdelfeedback", value.Int(150))},
		{"kit 3 name BOOM", "kit 3 name", Common(3, "name", value.Symbol("BOOM"))},
		{"kit_wb ctrlinmod2target:lfospeed 3", "kit_wb ctrlinmod2target:3", Common(0, "ctrlinmod2target", value.Symbol("lfospeed"))},
		{"kit 1 sound 4 amplev 12", "kit 1 sound 4 amplev", KitElement(1, 4, "amplev", value.Int(12))},
		{"kit 1 tracklevel 12 90", "kit 1 tracklevel 12", KitElement(1, 12, "tracklevel", value.Int(90))},
		{"kit 1 trackretrigalwayson 0 1", "kit 1 trackretrigalwayson 0", KitElement(1, 0, "trackretrigalwayson", value.Int(1))},
		{"kit 1 trackretrigrate 2 trackretrigrate:1/8", "kit 1 trackretrigrate 2", KitElement(1, 2, "trackretrigrate", value.Symbol("1/8"))},
		{"sound 5 velmodamt 2 -40", "sound 5 velmodamt 2", Common(5, "velmodamt", value.Int(-40))},
		{"sound_wb 1 velmodtarget:lfospeed 2", "sound_wb 1 velmodtarget:2", Common(1, "velmodtarget", value.Symbol("lfospeed"))},
		{"sound 0 name KICK", "sound 0 name", Common(0, "name", value.Symbol("KICK"))},
		{"sound 0 lfodepth -3.5", "sound 0 lfodepth", Common(0, "lfodepth", value.Float(-3.5))},
		{"global 2 routetomain 7 1", "global 2 routetomain 7", Common(2, "routetomain", value.Int(1))},
		{"global_wb trackchannels:off 11", "global_wb trackchannels:11", Common(0, "trackchannels", value.Symbol("off"))},
		{"global 0 metronometimesig:4/4", "global 0 metronometimesig:", Common(0, "metronometimesig", value.Symbol("4/4"))},
		{"settings projectbpm 99.5", "settings projectbpm", Common(0, "projectbpm", value.Float(99.5))},
		{"settings mute 3", "settings mute 3", Common(0, "mute", value.Int(1))},
		{"settings sequencermode:song", "settings sequencermode:", Common(0, "sequencermode", value.Symbol("song"))},
	}
	for _, tt := range tests {
		t.Run(tt.set, func(t *testing.T) {
			e := newTestEngine()
			assert.Equal(t, Ok(), run(t, e, parse.Set, tt.set))
			assert.Equal(t, tt.want, run(t, e, parse.Get, tt.get))
		})
	}
}

func TestDefaults(t *testing.T) {
	e := newTestEngine()

	assert.Equal(t, Trig(0, 0, 0, "soundlock", value.Symbol("unset")), run(t, e, parse.Get, "pattern 0 0 0 soundlock"))
	assert.Equal(t, Common(7, "index", value.Int(7)), run(t, e, parse.Get, "kit 7 index"))
	assert.Equal(t, Common(3, "ispool", value.Int(1)), run(t, e, parse.Get, "sound 3 ispool"))
	assert.Equal(t, KitElement(2, 3, "iskit", value.Int(1)), run(t, e, parse.Get, "kit 2 sound 3 iskit"))
	assert.Equal(t, KitElement(2, 3, "kitnumber", value.Int(2)), run(t, e, parse.Get, "kit 2 sound 3 kitnumber"))
	assert.Equal(t, Common(0, "iswb", value.Int(1)), run(t, e, parse.Get, "pattern_wb iswb"))
	assert.Equal(t, Track(5, 6, "parentindex", value.Int(5)), run(t, e, parse.Get, "pattern 5 6 parentindex"))
}

func TestSoundWorkBufferIsKitWorkBuffer(t *testing.T) {
	e := newTestEngine()
	run(t, e, parse.Set, "sound_wb 2 amplev 5")

	assert.Equal(t, KitElement(0, 2, "amplev", value.Int(5)), run(t, e, parse.Get, "kit_wb sound 2 amplev"))
	assert.Equal(t, Common(2, "iswb", value.Int(1)), run(t, e, parse.Get, "sound_wb 2 iswb"))
}

func TestMuteUnmute(t *testing.T) {
	e := newTestEngine()
	run(t, e, parse.Set, "settings mute 3")
	run(t, e, parse.Set, "settings unmute 3")

	assert.Equal(t, Common(0, "mute", value.Int(0)), run(t, e, parse.Get, "settings mute 3"))

	_, err := e.Command(context.Background(), parse.Get, value.Fields("settings unmute 3"))
	assert.ErrorIs(t, err, rytmerr.ErrGetFormat)
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		op   parse.Op
		line string
		want error
	}{
		{parse.Get, "pattern", rytmerr.ErrQuerySelectorIndexMissingOrInvalid},
		{parse.Get, "pattern 200 masterlen", rytmerr.ErrInvalidIndexRange},
		{parse.Get, "drums 1 masterlen", rytmerr.ErrInvalidSelector},
		{parse.Set, "pattern 1 masterlen 2000", rytmerr.ErrSetRange},
		{parse.Set, "pattern 1 swingamount 81", rytmerr.ErrSetRange},
		{parse.Set, "pattern 1 masterlen", rytmerr.ErrSetFormat},
		{parse.Set, "pattern 1 speed:9x", rytmerr.ErrInvalidEnumValue},
		{parse.Set, "pattern 0 0 0 enable 2", rytmerr.ErrSetRange},
		{parse.Set, "pattern 0 0 0 microtime:1/2", rytmerr.ErrInvalidEnumValue},
		{parse.Get, "kit 1 index 3", rytmerr.ErrGetFormat},
		{parse.Set, "kit 1 index 3", rytmerr.ErrSetFormat},
		{parse.Set, "kit 0 name ABCDEFGHIJKLMNOPQ", rytmerr.ErrSetRange},
		{parse.Set, "kit 0 tracklevel 0 trackretrigrate:1/8", rytmerr.ErrSetFormat},
		{parse.Set, "kit 0 tracklevel 0 128", rytmerr.ErrSetRange},
		{parse.Set, "sound 0 velmodamt 4 10", rytmerr.ErrSetRange},
		{parse.Set, "sound 0 velmodamt 1", rytmerr.ErrSetFormat},
		{parse.Get, "sound 0 velmodtarget:x", rytmerr.ErrGetFormat},
		{parse.Get, "sound 0 velmodtarget:4", rytmerr.ErrGetRange},
		{parse.Set, "sound 0 velmodtarget:lfospeed", rytmerr.ErrSetFormat},
		{parse.Set, "global 0 turbospeed 1", rytmerr.ErrSetFormat},
		{parse.Set, "global 0 routetomain 12 1", rytmerr.ErrSetRange},
		{parse.Set, "settings selectedtrack 12", rytmerr.ErrSetRange},
		{parse.Set, "settings projectbpm 301", rytmerr.ErrSetRange},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := newTestEngine().Command(context.Background(), tt.op, value.Fields(tt.line))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFailedSetLeavesTree(t *testing.T) {
	e := newTestEngine()
	run(t, e, parse.Set, "pattern 1 masterlen 32")

	_, err := e.Command(context.Background(), parse.Set, value.Fields("pattern 1 masterlen 0"))
	require.Error(t, err)
	assert.Equal(t, Common(1, "masterlen", value.Int(32)), run(t, e, parse.Get, "pattern 1 masterlen"))
}

func TestPlocks(t *testing.T) {
	e := newTestEngine()
	get := func(name string) Response {
		return run(t, e, parse.Get, "pattern 0 1 2 plockget "+name)
	}

	assert.Equal(t, Trig(0, 1, 2, "filtcutoff", value.Symbol("unset")), get("filtcutoff"))

	run(t, e, parse.Set, "pattern 0 1 2 plockset filtcutoff 100")
	assert.Equal(t, Trig(0, 1, 2, "filtcutoff", value.Int(100)), get("filtcutoff"))

	run(t, e, parse.Set, "pattern 0 1 2 plockset lfodepth 12.5")
	assert.Equal(t, Trig(0, 1, 2, "lfodepth", value.Float(12.5)), get("lfodepth"))

	run(t, e, parse.Set, "pattern 0 1 2 plockset fxdelfeedback 180")
	assert.Equal(t, Trig(0, 1, 2, "fxdelfeedback", value.Int(180)), get("fxdelfeedback"))

	run(t, e, parse.Set, "pattern 0 1 2 plockset filtertype:hp2")
	assert.Equal(t, Trig(0, 1, 2, "filtertype", value.Symbol("hp2")), get("filtertype:"))

	run(t, e, parse.Set, "pattern 0 1 2 plockclear filtertype:")
	assert.Equal(t, Trig(0, 1, 2, "filtertype", value.Symbol("unset")), get("filtertype:"))

	run(t, e, parse.Set, "pattern 0 1 2 plockclear filtcutoff")
	assert.Equal(t, Trig(0, 1, 2, "filtcutoff", value.Symbol("unset")), get("filtcutoff"))

	// locks are per trig and leave the sound alone
	assert.Equal(t, Trig(0, 1, 3, "lfodepth", value.Symbol("unset")), run(t, e, parse.Get, "pattern 0 1 3 plockget lfodepth"))
	assert.Equal(t, Common(0, "filtcutoff", value.Int(int64(project.NewSound(0, project.SoundPool).Filter.Cutoff))),
		run(t, e, parse.Get, "sound 0 filtcutoff"))
}

func TestPlockErrors(t *testing.T) {
	tests := []struct {
		op   parse.Op
		line string
		want error
		// names is text the message must contain
		names string
	}{
		{parse.Get, "pattern 0 1 2 plockset filtcutoff 3", rytmerr.ErrInvalidFormat, "plockget"},
		{parse.Get, "pattern 0 1 2 plockclear filtcutoff", rytmerr.ErrInvalidFormat, "plockget"},
		{parse.Get, "pattern 0 1 2 plockclear filtertype:", rytmerr.ErrInvalidFormat, "plockget"},
		{parse.Set, "pattern 0 1 2 plockget filtcutoff", rytmerr.ErrInvalidFormat, "plockset or plockclear"},
		{parse.Set, "pattern 0 1 2 plockset filtcutoff 200", rytmerr.ErrSetRange, ""},
		{parse.Set, "pattern 0 1 2 plockset filtcutoff", rytmerr.ErrSetFormat, ""},
		{parse.Set, "pattern 0 1 2 plockset filtertype:zz", rytmerr.ErrInvalidEnumValue, ""},
		{parse.Set, "pattern 0 plockset filtcutoff 3", rytmerr.ErrInvalidPlockOperation, ""},
		{parse.Set, "pattern 0 1 2 plockset filtertype:", rytmerr.ErrEnumRequiresValue, ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := newTestEngine().Command(context.Background(), tt.op, value.Fields(tt.line))
			assert.ErrorIs(t, err, tt.want)
			if tt.names != "" {
				assert.ErrorContains(t, err, tt.names)
			}
		})
	}
}

func TestBusy(t *testing.T) {
	e := New(nil, Config{LockTimeout: 20 * time.Millisecond, Logger: slog.New(slog.DiscardHandler)})
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	_, err := e.Command(context.Background(), parse.Get, value.Fields("pattern 0 masterlen"))
	assert.ErrorIs(t, err, rytmerr.ErrBusy)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Command(ctx, parse.Get, value.Fields("pattern 0 masterlen"))
	assert.ErrorIs(t, err, rytmerr.ErrBusy)
}

func TestLockReleasedAfterError(t *testing.T) {
	e := New(nil, Config{LockTimeout: 20 * time.Millisecond, Logger: slog.New(slog.DiscardHandler)})
	_, err := e.Command(context.Background(), parse.Set, value.Fields("pattern 0 masterlen 0"))
	require.Error(t, err)

	run(t, e, parse.Set, "pattern 0 masterlen 8")
}

func TestView(t *testing.T) {
	e := newTestEngine()
	run(t, e, parse.Set, "kit 9 name SNARES")

	var name string
	require.NoError(t, e.View(context.Background(), func(p *project.Project) {
		name = p.Kits[9].Name
	}))
	assert.Equal(t, "SNARES", name)
}

func TestTablesCoverGrammar(t *testing.T) {
	check := func(ctx parse.Context, fields, enums []string) {
		t.Helper()
		names := parse.NamesOf(ctx)
		assert.ElementsMatch(t, names.Identifiers, fields, ctx.String())
		assert.ElementsMatch(t, names.Enums, enums, ctx.String())
	}
	check(parse.PatternContext, keys(patternTable.fields), keys(patternTable.enums))
	check(parse.TrackContext, keys(trackTable.fields), keys(trackTable.enums))
	check(parse.TrigContext, keys(trigTable.fields), keys(trigTable.enums))
	check(parse.KitContext, keys(kitTable.fields), keys(kitTable.enums))
	check(parse.SoundContext, keys(soundTable.fields), keys(soundTable.enums))
	check(parse.GlobalContext, keys(globalTable.fields), keys(globalTable.enums))
	check(parse.SettingsContext, keys(settingsTable.fields), keys(settingsTable.enums))

	elements := append(keys(kitElementFields), keys(kitElementEnums)...)
	assert.ElementsMatch(t, parse.KitElements(), append(elements, "sound"))

	plock := parse.NamesOf(parse.PlockContext)
	assert.ElementsMatch(t, plock.Identifiers, keys(lockableFields))
	assert.ElementsMatch(t, plock.Enums, keys(lockableEnums))
}

func keys[V any](m map[string]V) []string {
	return slices.Collect(maps.Keys(m))
}
