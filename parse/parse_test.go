package parse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-rytm/rytmerr"
	"go-rytm/value"
)

func vals(tokens ...any) value.List {
	list := make(value.List, 0, len(tokens))
	for _, t := range tokens {
		switch v := t.(type) {
		case int:
			list = append(list, value.Int(int64(v)))
		case float64:
			list = append(list, value.Float(v))
		case string:
			list = append(list, value.Symbol(v))
		}
	}
	return list
}

func num(i int64) value.Number { return value.IntNumber(i) }

func TestParseSuccess(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		in   value.List
		want []Token
	}{
		{
			name: "pattern identifier",
			op:   Get,
			in:   vals("pattern", 1, "masterlen"),
			want: []Token{ObjectTypeToken(Selector{Pattern, 1}), IdentifierToken("masterlen")},
		},
		{
			name: "pattern enum read",
			op:   Get,
			in:   vals("pattern", 1, "speed:"),
			want: []Token{ObjectTypeToken(Selector{Pattern, 1}), EnumToken("speed", "")},
		},
		{
			name: "pattern enum with variant under get",
			op:   Get,
			in:   vals("pattern", 1, "speed:1x"),
			want: []Token{ObjectTypeToken(Selector{Pattern, 1}), EnumToken("speed", "1x")},
		},
		{
			name: "track identifier",
			op:   Get,
			in:   vals("pattern", 1, 0, "deftrignote"),
			want: []Token{ObjectTypeToken(Selector{Pattern, 1}), TrackIndexToken(0), IdentifierToken("deftrignote")},
		},
		{
			name: "trig identifier",
			op:   Get,
			in:   vals("pattern", 1, 0, 5, "note"),
			want: []Token{ObjectTypeToken(Selector{Pattern, 1}), TrackIndexToken(0), TrigIndexToken(5), IdentifierToken("note")},
		},
		{
			name: "track enum",
			op:   Get,
			in:   vals("pattern", 1, 0, "rootnote:c"),
			want: []Token{ObjectTypeToken(Selector{Pattern, 1}), TrackIndexToken(0), EnumToken("rootnote", "c")},
		},
		{
			name: "plockget",
			op:   Get,
			in:   vals("pattern_wb", 2, 3, "plockget", "amplev"),
			want: []Token{ObjectTypeToken(Selector{Type: PatternWB}), TrackIndexToken(2), TrigIndexToken(3), PlockToken(PlockGet), IdentifierToken("amplev")},
		},
		{
			name: "plockset enum",
			op:   Set,
			in:   vals("pattern", 1, 0, 5, "plockset", "filtertype:lp2"),
			want: []Token{
				ObjectTypeToken(Selector{Pattern, 1}), TrackIndexToken(0), TrigIndexToken(5),
				PlockToken(PlockSet), EnumToken("filtertype", "lp2"),
			},
		},
		{
			name: "kit identifier",
			op:   Get,
			in:   vals("kit", 10, "fxdeltime"),
			want: []Token{ObjectTypeToken(Selector{Kit, 10}), IdentifierToken("fxdeltime")},
		},
		{
			name: "kit element",
			op:   Get,
			in:   vals("kit", 10, "tracklevel", 0),
			want: []Token{ObjectTypeToken(Selector{Kit, 10}), ElementToken("tracklevel"), ElementIndexToken(0)},
		},
		{
			name: "kit element set with parameter",
			op:   Set,
			in:   vals("kit", 10, "tracklevel", 3, 100),
			want: []Token{ObjectTypeToken(Selector{Kit, 10}), ElementToken("tracklevel"), ElementIndexToken(3), ParameterToken(num(100))},
		},
		{
			name: "kit element set with enum",
			op:   Set,
			in:   vals("kit_wb", "trackretrigrate", 1, "trackretrigrate:1/16"),
			want: []Token{ObjectTypeToken(Selector{Type: KitWB}), ElementToken("trackretrigrate"), ElementIndexToken(1), EnumToken("trackretrigrate", "1/16")},
		},
		{
			name: "plockclear bare enum",
			op:   Set,
			in:   vals("pattern", 1, 0, 5, "plockclear", "filtertype:"),
			want: []Token{
				ObjectTypeToken(Selector{Pattern, 1}), TrackIndexToken(0), TrigIndexToken(5),
				PlockToken(PlockClear), EnumToken("filtertype", ""),
			},
		},
		{
			name: "kit sound",
			op:   Get,
			in:   vals("kit", 10, "sound", 2, "amplev"),
			want: []Token{ObjectTypeToken(Selector{Kit, 10}), ElementToken("sound"), SoundIndexToken(2), IdentifierToken("amplev")},
		},
		{
			name: "kit sound with two parameters",
			op:   Set,
			in:   vals("kit", 10, "sound", 0, "velmodamt", 2, 2),
			want: []Token{
				ObjectTypeToken(Selector{Kit, 10}), ElementToken("sound"), SoundIndexToken(0),
				IdentifierToken("velmodamt"), ParameterToken(num(2)), ParameterToken(num(2)),
			},
		},
		{
			name: "sound identifier",
			op:   Get,
			in:   vals("sound", 5, "amplev"),
			want: []Token{ObjectTypeToken(Selector{Sound, 5}), IdentifierToken("amplev")},
		},
		{
			name: "sound float parameter",
			op:   Set,
			in:   vals("sound", 0, "lfodepth", -12.5),
			want: []Token{ObjectTypeToken(Selector{Sound, 0}), IdentifierToken("lfodepth"), ParameterToken(value.FloatNumber(-12.5))},
		},
		{
			name: "sound name set",
			op:   Set,
			in:   vals("sound", 0, "name", "hello"),
			want: []Token{ObjectTypeToken(Selector{Sound, 0}), IdentifierToken("name"), ParameterStringToken("hello")},
		},
		{
			name: "sound name get",
			op:   Get,
			in:   vals("sound", 0, "name"),
			want: []Token{ObjectTypeToken(Selector{Sound, 0}), IdentifierToken("name")},
		},
		{
			name: "sound work buffer enum with index",
			op:   Set,
			in:   vals("sound_wb", 3, "velmodtarget:filtcutoff", 1),
			want: []Token{ObjectTypeToken(Selector{SoundWB, 3}), EnumToken("velmodtarget", "filtcutoff"), ParameterToken(num(1))},
		},
		{
			name: "kit name set",
			op:   Set,
			in:   vals("kit", 0, "name", "drums"),
			want: []Token{ObjectTypeToken(Selector{Kit, 0}), IdentifierToken("name"), ParameterStringToken("drums")},
		},
		{
			name: "global identifier",
			op:   Set,
			in:   vals("global", 3, "routetomain", 4, 1),
			want: []Token{ObjectTypeToken(Selector{Global, 3}), IdentifierToken("routetomain"), ParameterToken(num(4)), ParameterToken(num(1))},
		},
		{
			name: "global work buffer enum",
			op:   Get,
			in:   vals("global_wb", "trackchannels:3"),
			want: []Token{ObjectTypeToken(Selector{Type: GlobalWB}), EnumToken("trackchannels", "3")},
		},
		{
			name: "settings enum read",
			op:   Get,
			in:   vals("settings", "sequencermode:"),
			want: []Token{ObjectTypeToken(Selector{Type: Settings}), EnumToken("sequencermode", "")},
		},
		{
			name: "settings enum write",
			op:   Set,
			in:   vals("settings", "sequencermode:normal"),
			want: []Token{ObjectTypeToken(Selector{Type: Settings}), EnumToken("sequencermode", "normal")},
		},
		{
			name: "settings ignores an index",
			op:   Get,
			in:   vals("settings", 4, "projectbpm"),
			want: []Token{ObjectTypeToken(Selector{Type: Settings}), IdentifierToken("projectbpm")},
		},
		{
			name: "pattern integer set",
			op:   Set,
			in:   vals("pattern", 1, "masterlen", 64),
			want: []Token{ObjectTypeToken(Selector{Pattern, 1}), IdentifierToken("masterlen"), ParameterToken(num(64))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.op, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFailure(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		in   value.List
		kind error
		msg  string
	}{
		{"empty", Get, vals(), rytmerr.ErrQuerySelectorMissing, "Query selector missing"},
		{"unknown object", Get, vals("drum", 1, "x"), rytmerr.ErrInvalidSelector, ""},
		{"number as object", Get, vals(1, "x"), rytmerr.ErrInvalidSelector, ""},
		{"missing index", Get, vals("pattern", "masterlen"), rytmerr.ErrQuerySelectorIndexMissingOrInvalid, ""},
		{"float index", Get, vals("kit", 1.5, "name"), rytmerr.ErrQuerySelectorIndexMissingOrInvalid, ""},
		{"pattern index too large", Get, vals("pattern", 128, "name"), rytmerr.ErrInvalidIndexRange, "Index 128 must be between 0 and 127"},
		{"unknown identifier", Get, vals("pattern", 1, "invalid"), rytmerr.ErrInvalidToken, "Unexpected symbol 'invalid'"},
		{"identifier from another context", Get, vals("pattern", 1, "amplev"), rytmerr.ErrInvalidToken, ""},
		{"track out of range", Get, vals("pattern", 1, 13, "steps"), rytmerr.ErrIndexOutOfRange, "13 is out of range for track index. Track index must be an integer between 0 and 12."},
		{"trig out of range", Get, vals("pattern", 1, 0, 64, "note"), rytmerr.ErrIndexOutOfRange, "trig index"},
		{"enum without colon", Get, vals("pattern", 1, "speed"), rytmerr.ErrInvalidFormat, "Invalid enum format"},
		{"enum requires value", Set, vals("pattern", 1, "speed:"), rytmerr.ErrEnumRequiresValue, "Enum 'speed:' requires a value. Try using 'speed:<your-value>' instead."},
		{"unexpected end", Get, vals("pattern", 1, 0), rytmerr.ErrUnexpectedEnd, ""},
		{"plock without target", Get, vals("pattern", 1, 0, 5, "plockget"), rytmerr.ErrInvalidPlockOperation, "needs to be followed by an identifier or an enum"},
		{"plock without trig", Get, vals("pattern", 1, 0, "plockget", "amplev"), rytmerr.ErrInvalidPlockOperation, ""},
		{"plock of unlockable field", Set, vals("pattern", 1, 0, 5, "plockset", "note", 3), rytmerr.ErrInvalidToken, ""},
		{"kit element without index", Get, vals("kit", 1, "tracklevel"), rytmerr.ErrExpectedKitElementIndex, "Expected element index after 'tracklevel'"},
		{"kit sound out of range", Get, vals("kit", 1, "sound", 12, "amplev"), rytmerr.ErrIndexOutOfRange, "kit sound index"},
		{"kit element set without value", Set, vals("kit", 1, "tracklevel", 0), rytmerr.ErrInvalidFormat, ""},
		{"sound name without symbol", Set, vals("sound", 1, "name", 3), rytmerr.ErrInvalidFormat, "name must be a symbol"},
		{"trailing symbol", Get, vals("pattern", 1, "masterlen", "extra"), rytmerr.ErrInvalidToken, "Unexpected trailing value 'extra'"},
		{"too many parameters", Set, vals("sound", 1, "velmodamt", 1, 2, 3), rytmerr.ErrInvalidToken, ""},
		{"kit sound without field", Get, vals("kit", 1, "sound", 2), rytmerr.ErrUnexpectedEnd, ""},
		{"kit element out of range", Get, vals("kit", 1, "tracklevel", 13), rytmerr.ErrIndexOutOfRange, "kit element index"},
		{"plockset bare enum", Set, vals("pattern", 1, 0, 5, "plockset", "filtertype:"), rytmerr.ErrEnumRequiresValue, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.op, tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestParseIndexRange(t *testing.T) {
	var rangeErr *rytmerr.IndexRangeError
	_, err := Parse(Get, vals("pattern", 128, "name"))
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, rytmerr.IndexRangeError{Min: 0, Max: 127, Value: 128}, *rangeErr)
}

func TestResolveBounds(t *testing.T) {
	for typ, r := range indexRanges {
		sym := value.Symbol(typ.String())
		for i := r.Min; i <= r.Max; i++ {
			idx := value.Int(int64(i))
			sel, err := Resolve(sym, &idx)
			require.NoError(t, err, "%s %d", typ, i)
			assert.Equal(t, Selector{Type: typ, Index: i}, sel)
		}
		for _, bad := range []int{r.Min - 1, r.Max + 1} {
			idx := value.Int(int64(bad))
			_, err := Resolve(sym, &idx)
			var rangeErr *rytmerr.IndexRangeError
			require.True(t, errors.As(err, &rangeErr), "%s %d", typ, bad)
			assert.Equal(t, rytmerr.IndexRangeError{Min: r.Min, Max: r.Max, Value: bad}, *rangeErr)
		}
	}
}

func TestParseDeterministic(t *testing.T) {
	in := vals("pattern", 1, 0, 5, "plockset", "filtertype:lp2")
	first, err := Parse(Set, in)
	require.NoError(t, err)
	for range 10 {
		again, err := Parse(Set, in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEnumVariantUnderBothOps(t *testing.T) {
	for _, op := range []Op{Get, Set} {
		got, err := Parse(op, vals("sound", 1, "filtertype:lp2"))
		require.NoError(t, err)
		assert.Equal(t, EnumToken("filtertype", "lp2"), got[1])
	}
}

func TestPlockNamesAreLockable(t *testing.T) {
	names := NamesOf(PlockContext)
	assert.Contains(t, names.Identifiers, "fxdeltime")
	assert.Contains(t, names.Identifiers, "amplev")
	assert.Contains(t, names.Identifiers, "sampstart")
	assert.NotContains(t, names.Identifiers, "fxdistamt")
	assert.NotContains(t, names.Identifiers, "velmodamt")
	assert.Contains(t, names.Enums, "filtertype")
}

func TestResolveList(t *testing.T) {
	sel, err := ResolveList(vals("kit_wb"))
	require.NoError(t, err)
	assert.Equal(t, Selector{Type: KitWB}, sel)

	sel, err = ResolveList(vals("global", 2))
	require.NoError(t, err)
	assert.Equal(t, Selector{Type: Global, Index: 2}, sel)

	_, err = ResolveList(vals("global", 2, 3))
	assert.True(t, errors.Is(err, rytmerr.ErrQueryFormat))

	_, err = ResolveList(vals())
	assert.True(t, errors.Is(err, rytmerr.ErrQuerySelectorMissing))
}
