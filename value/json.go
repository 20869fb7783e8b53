package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt:
		return json.Marshal(v.i)
	case KindFloat:
		return json.Marshal(v.f)
	}
	return json.Marshal(v.s)
}

// UnmarshalJSON maps JSON strings to symbols and JSON numbers to Int or Float
// depending on whether the literal has a fraction or exponent.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case string:
		*v = Symbol(t)
	case json.Number:
		if !strings.ContainsAny(t.String(), ".eE") {
			i, err := t.Int64()
			if err != nil {
				return err
			}
			*v = Int(i)
			return nil
		}
		f, err := t.Float64()
		if err != nil {
			return err
		}
		*v = Float(f)
	default:
		return fmt.Errorf("value must be a number or a string, got %s", data)
	}
	return nil
}
