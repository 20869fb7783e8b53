package api

import (
	"strconv"

	"go-rytm/project"
	"go-rytm/rytmerr"
	"go-rytm/value"
)

type kind int

const (
	intKind kind = iota
	floatKind
	boolKind
	symbolKind
)

// field is the accessor pair behind one identifier of T. Slotted fields take
// a sub-index before their value. An action is a write that takes no value.
type field[T any] struct {
	kind     kind
	min, max float64
	slots    int
	get      func(obj *T, slot int) value.Value
	set      func(obj *T, slot int, n value.Number)
	action   func(obj *T, slot int)
}

func intField[T any](min, max int, ptr func(*T) *int) field[T] {
	return field[T]{
		kind: intKind,
		min:  float64(min),
		max:  float64(max),
		get:  func(obj *T, _ int) value.Value { return value.Int(int64(*ptr(obj))) },
		set:  func(obj *T, _ int, n value.Number) { *ptr(obj) = int(n.Int()) },
	}
}

func floatField[T any](min, max float64, ptr func(*T) *float64) field[T] {
	return field[T]{
		kind: floatKind,
		min:  min,
		max:  max,
		get:  func(obj *T, _ int) value.Value { return value.Float(*ptr(obj)) },
		set:  func(obj *T, _ int, n value.Number) { *ptr(obj) = n.Float() },
	}
}

func boolField[T any](ptr func(*T) *bool) field[T] {
	return field[T]{
		kind: boolKind,
		max:  1,
		get:  func(obj *T, _ int) value.Value { return value.Bool(*ptr(obj)) },
		set:  func(obj *T, _ int, n value.Number) { *ptr(obj) = n.Int() == 1 },
	}
}

func intSlots[T any](slots, min, max int, ptr func(*T, int) *int) field[T] {
	return field[T]{
		kind:  intKind,
		min:   float64(min),
		max:   float64(max),
		slots: slots,
		get:   func(obj *T, slot int) value.Value { return value.Int(int64(*ptr(obj, slot))) },
		set:   func(obj *T, slot int, n value.Number) { *ptr(obj, slot) = int(n.Int()) },
	}
}

func boolSlots[T any](slots int, ptr func(*T, int) *bool) field[T] {
	return field[T]{
		kind:  boolKind,
		max:   1,
		slots: slots,
		get:   func(obj *T, slot int) value.Value { return value.Bool(*ptr(obj, slot)) },
		set:   func(obj *T, slot int, n value.Number) { *ptr(obj, slot) = n.Int() == 1 },
	}
}

func readOnly[T any](k kind, get func(*T) value.Value) field[T] {
	return field[T]{
		kind: k,
		get:  func(obj *T, _ int) value.Value { return get(obj) },
	}
}

func readOnlyInt[T any](ptr func(*T) *int) field[T] {
	return readOnly(intKind, func(obj *T) value.Value { return value.Int(int64(*ptr(obj))) })
}

func readOnlyBool[T any](ptr func(*T) *bool) field[T] {
	return readOnly(boolKind, func(obj *T) value.Value { return value.Bool(*ptr(obj)) })
}

func (f field[T]) read(obj *T, name string, params []value.Number) (value.Value, error) {
	if f.get == nil {
		return value.Value{}, rytmerr.GetFormat("%s can only be set. Try a set command.", name)
	}
	slot, rest, err := f.slot(name, params, rytmerr.GetFormat, rytmerr.GetRange)
	if err != nil {
		return value.Value{}, err
	}
	if len(rest) > 0 {
		return value.Value{}, rytmerr.GetFormat("%s does not take a parameter here. Format: %s", name, f.usage(name, false))
	}
	return f.get(obj, slot), nil
}

func (f field[T]) write(obj *T, name string, params []value.Number) error {
	if f.set == nil && f.action == nil {
		return rytmerr.SetFormat("%s is read only. Try a get command.", name)
	}
	slot, rest, err := f.slot(name, params, rytmerr.SetFormat, rytmerr.SetRange)
	if err != nil {
		return err
	}

	if f.action != nil {
		if len(rest) > 0 {
			return rytmerr.SetFormat("%s takes no value. Format: %s", name, f.usage(name, false))
		}
		f.action(obj, slot)
		return nil
	}

	if len(rest) != 1 {
		return rytmerr.SetFormat("%s requires one value. Format: %s", name, f.usage(name, true))
	}
	n, err := f.check(name, rest[0])
	if err != nil {
		return err
	}
	f.set(obj, slot, n)
	return nil
}

type errorf func(format string, args ...any) error

// slot takes the sub-index of a slotted field off the front of params
func (f field[T]) slot(name string, params []value.Number, formatErr, rangeErr errorf) (int, []value.Number, error) {
	if f.slots == 0 {
		return 0, params, nil
	}
	if len(params) == 0 || params[0].IsFloat() {
		return 0, nil, formatErr("%s should be followed by an integer index. Format: %s", name, f.usage(name, f.set != nil))
	}
	i := params[0].Int()
	if i < 0 || i >= int64(f.slots) {
		return 0, nil, rangeErr("The index %d is out of range for %s. It must be between 0 and %d.", i, name, f.slots-1)
	}
	return int(i), params[1:], nil
}

// check validates n against the field before anything is written
func (f field[T]) check(name string, n value.Number) (value.Number, error) {
	switch f.kind {
	case boolKind:
		b, err := n.Bool01(name)
		if err != nil {
			return value.Number{}, err
		}
		if b {
			return value.IntNumber(1), nil
		}
		return value.IntNumber(0), nil
	case intKind:
		i := n.Int()
		if float64(i) < f.min || float64(i) > f.max {
			return value.Number{}, rytmerr.SetRange("%s must be an integer between %d and %d. Got %s.", name, int(f.min), int(f.max), n)
		}
		return value.IntNumber(i), nil
	case floatKind:
		x := n.Float()
		if x < f.min || x > f.max {
			return value.Number{}, rytmerr.SetRange("%s must be a number between %s and %s. Got %s.", name, formatFloat(f.min), formatFloat(f.max), n)
		}
		return value.FloatNumber(x), nil
	}
	return value.Number{}, rytmerr.SetFormat("%s can not be set with a number.", name)
}

func (f field[T]) usage(name string, withValue bool) string {
	out := name
	if f.slots > 0 {
		out += " <index>"
	}
	if withValue {
		out += " <value>"
	}
	return out
}

func formatFloat(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }

// enumField is the accessor pair behind one enum of T. A slotted enum reads
// the slot from the variant position (velmodtarget:2) and writes it from the
// trailing parameter (velmodtarget:lfospeed 2).
type enumField[T any] struct {
	enum  project.Enum
	slots int
	get   func(obj *T, slot int) string
	set   func(obj *T, slot int, variant string)
}

func enumOf[T any](e project.Enum, ptr func(*T) *string) enumField[T] {
	return enumField[T]{
		enum: e,
		get:  func(obj *T, _ int) string { return *ptr(obj) },
		set:  func(obj *T, _ int, v string) { *ptr(obj) = v },
	}
}

func enumSlots[T any](e project.Enum, slots int, ptr func(*T, int) *string) enumField[T] {
	return enumField[T]{
		enum:  e,
		slots: slots,
		get:   func(obj *T, slot int) string { return *ptr(obj, slot) },
		set:   func(obj *T, slot int, v string) { *ptr(obj, slot) = v },
	}
}

func (f enumField[T]) read(obj *T, name, variant string, params []value.Number) (value.Value, error) {
	if len(params) > 0 {
		return value.Value{}, rytmerr.GetFormat("%s: does not take a parameter in a get command.", name)
	}
	if f.slots == 0 {
		return value.Symbol(f.get(obj, 0)), nil
	}

	slot, err := strconv.Atoi(variant)
	if err != nil {
		return value.Value{}, rytmerr.GetFormat("%s:<integer> is the correct format. Example: %s:2", name, name)
	}
	if slot < 0 || slot >= f.slots {
		return value.Value{}, rytmerr.GetRange("The index %d is out of range for %s. It must be between 0 and %d.", slot, name, f.slots-1)
	}
	return value.Symbol(f.get(obj, slot)), nil
}

func (f enumField[T]) write(obj *T, name, variant string, params []value.Number) error {
	if err := f.enum.Check(variant); err != nil {
		return err
	}

	slot := 0
	if f.slots > 0 {
		if len(params) != 1 || params[0].IsFloat() {
			return rytmerr.SetFormat("%s:<variant> should be followed by an integer index. Example: %s:%s 2", name, name, variant)
		}
		i := params[0].Int()
		if i < 0 || i >= int64(f.slots) {
			return rytmerr.SetRange("The index %d is out of range for %s. It must be between 0 and %d.", i, name, f.slots-1)
		}
		slot = int(i)
	} else if len(params) > 0 {
		return rytmerr.SetFormat("%s:<variant> does not take a parameter.", name)
	}

	f.set(obj, slot, variant)
	return nil
}
