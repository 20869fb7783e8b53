package parse

import (
	"fmt"

	"go-rytm/rytmerr"
	"go-rytm/value"
)

// ObjectType identifies which object family a command targets
type ObjectType int

const (
	Pattern ObjectType = iota
	PatternWB
	Kit
	KitWB
	Sound
	SoundWB
	Global
	GlobalWB
	Settings
)

var objectTypeNames = [...]string{
	Pattern:   "pattern",
	PatternWB: "pattern_wb",
	Kit:       "kit",
	KitWB:     "kit_wb",
	Sound:     "sound",
	SoundWB:   "sound_wb",
	Global:    "global",
	GlobalWB:  "global_wb",
	Settings:  "settings",
}

func (t ObjectType) String() string {
	if int(t) < len(objectTypeNames) {
		return objectTypeNames[t]
	}
	return fmt.Sprintf("ObjectType(%d)", int(t))
}

// Range is an inclusive index range
type Range struct {
	Min, Max int
}

func (r Range) Contains(i int) bool { return i >= r.Min && i <= r.Max }

// Index ranges for the indexed object types
var indexRanges = map[ObjectType]Range{
	Pattern: {0, 127},
	Kit:     {0, 127},
	Sound:   {0, 11},
	SoundWB: {0, 11},
	Global:  {0, 3},
}

// IndexRange returns the valid index range of an indexed object type
func IndexRange(t ObjectType) (Range, bool) {
	r, ok := indexRanges[t]
	return r, ok
}

// Indexed reports whether the object type must be followed by an index
func (t ObjectType) Indexed() bool {
	_, ok := indexRanges[t]
	return ok
}

// WorkBuffer reports whether the object type targets the live work buffer
func (t ObjectType) WorkBuffer() bool {
	switch t {
	case PatternWB, KitWB, SoundWB, GlobalWB:
		return true
	}
	return false
}

// LookupObjectType maps a selector symbol to its object type
func LookupObjectType(name string) (ObjectType, bool) {
	for i, n := range objectTypeNames {
		if n == name {
			return ObjectType(i), true
		}
	}
	return 0, false
}

// Selector is a resolved object type with its validated index
type Selector struct {
	Type  ObjectType
	Index int
}

func (s Selector) String() string {
	if s.Type.Indexed() {
		return fmt.Sprintf("%s %d", s.Type, s.Index)
	}
	return s.Type.String()
}

// Resolve validates a selector symbol and its optional index. Indexed types
// require an Int index within range; the index of other types is ignored.
func Resolve(symbol value.Value, index *value.Value) (Selector, error) {
	name, err := symbol.AsSymbol()
	if err != nil {
		return Selector{}, rytmerr.InvalidSelector(symbol.String())
	}
	t, ok := LookupObjectType(name)
	if !ok {
		return Selector{}, rytmerr.InvalidSelector(name)
	}
	if !t.Indexed() {
		return Selector{Type: t}, nil
	}
	if index == nil {
		return Selector{}, rytmerr.QuerySelectorIndexMissingOrInvalid()
	}
	i, ok := index.IntValue()
	if !ok {
		return Selector{}, rytmerr.QuerySelectorIndexMissingOrInvalid()
	}
	r := indexRanges[t]
	if !r.Contains(int(i)) {
		return Selector{}, &rytmerr.IndexRangeError{Min: r.Min, Max: r.Max, Value: int(i)}
	}
	return Selector{Type: t, Index: int(i)}, nil
}

// ResolveList resolves a "<selector> [<index>]" list as used by query and send.
// Anything after the selector and its index is rejected.
func ResolveList(list value.List) (Selector, error) {
	if len(list) == 0 {
		return Selector{}, rytmerr.QuerySelectorMissing()
	}
	var index *value.Value
	if len(list) > 1 {
		index = &list[1]
	}
	sel, err := Resolve(list[0], index)
	if err != nil {
		return Selector{}, err
	}
	want := 1
	if sel.Type.Indexed() {
		want = 2
	}
	if len(list) > want {
		return Selector{}, rytmerr.QueryFormat()
	}
	return sel, nil
}
