package value

import (
	"strconv"

	"go-rytm/rytmerr"
)

// Kind identifies which payload a Value carries
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindSymbol
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindSymbol:
		return "symbol"
	}
	return "unknown"
}

// Value is one input token or one reply field
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

func Int(v int64) Value     { return Value{kind: KindInt, i: v} }
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }
func Symbol(v string) Value { return Value{kind: KindSymbol, s: v} }
func Bool(v bool) Value     { return Int(boolToInt(v)) }
func FromNumber(n Number) Value {
	if n.IsFloat() {
		return Float(n.f)
	}
	return Int(n.i)
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsInt() bool    { return v.kind == KindInt }
func (v Value) IsFloat() bool  { return v.kind == KindFloat }
func (v Value) IsSymbol() bool { return v.kind == KindSymbol }
func (v Value) IsNumber() bool { return v.kind != KindSymbol }

// IntValue returns the integer payload and whether the value is an Int
func (v Value) IntValue() (int64, bool) {
	return v.i, v.kind == KindInt
}

// AsNumber returns the numeric payload of an Int or Float
func (v Value) AsNumber() (Number, error) {
	switch v.kind {
	case KindInt:
		return IntNumber(v.i), nil
	case KindFloat:
		return FloatNumber(v.f), nil
	}
	return Number{}, rytmerr.TypeMismatch("a number", v.describe())
}

// AsSymbol returns the text of a Symbol
func (v Value) AsSymbol() (string, error) {
	if v.kind != KindSymbol {
		return "", rytmerr.TypeMismatch("a symbol", v.describe())
	}
	return v.s, nil
}

// AsBool01 accepts only the numbers 0 and 1
func (v Value) AsBool01(name string) (bool, error) {
	n, err := v.AsNumber()
	if err != nil {
		return false, rytmerr.TypeMismatch(name+" to be 0 or 1", v.describe())
	}
	return n.Bool01(name)
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	}
	return v.s
}

func (v Value) describe() string {
	return v.kind.String() + " " + strconv.Quote(v.String())
}

// Parse converts a single host text token
func Parse(tok string) Value {
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil && looksNumeric(tok) {
		return Float(f)
	}
	return Symbol(tok)
}

// looksNumeric keeps words like "inf" and "nan" as symbols
func looksNumeric(tok string) bool {
	for _, c := range tok {
		switch {
		case c >= '0' && c <= '9', c == '.', c == '-', c == '+', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
