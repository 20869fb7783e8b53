package api

import (
	"slices"
	"unicode"

	"go-rytm/parse"
	"go-rytm/rytmerr"
	"go-rytm/value"
)

// cursor walks the tokens after the object type
type cursor struct {
	tokens []parse.Token
}

func (c *cursor) take(k parse.TokenKind) (parse.Token, bool) {
	if len(c.tokens) == 0 || c.tokens[0].Kind != k {
		return parse.Token{}, false
	}
	t := c.tokens[0]
	c.tokens = c.tokens[1:]
	return t, true
}

func (c *cursor) next() (parse.Token, bool) {
	if len(c.tokens) == 0 {
		return parse.Token{}, false
	}
	t := c.tokens[0]
	c.tokens = c.tokens[1:]
	return t, true
}

// params takes every leading parameter token
func (c *cursor) params() []value.Number {
	var out []value.Number
	for {
		t, ok := c.take(parse.TokParameter)
		if !ok {
			return out
		}
		out = append(out, t.Number)
	}
}

type replyFunc func(key string, v value.Value) Response

// table maps the identifiers and enums of one context onto accessors of T
type table[T any] struct {
	fields map[string]field[T]
	enums  map[string]enumField[T]
	// name is set for objects with a writable name
	name func(*T) *string
}

func (tb table[T]) run(op parse.Op, obj *T, c *cursor, reply replyFunc) (Response, error) {
	head, ok := c.next()
	if !ok {
		return Response{}, formatError(op, "An identifier or enum is required.")
	}

	switch head.Kind {
	case parse.TokIdentifier:
		if op == parse.Set && head.Name == "name" && tb.name != nil {
			return tb.rename(obj, c)
		}
		f, ok := tb.fields[head.Name]
		if !ok {
			return Response{}, rytmerr.InvalidIdentifier(head.Name)
		}
		params := c.params()
		if op == parse.Get {
			v, err := f.read(obj, head.Name, params)
			if err != nil {
				return Response{}, err
			}
			return reply(head.Name, v), nil
		}
		if err := f.write(obj, head.Name, params); err != nil {
			return Response{}, err
		}
		return Ok(), nil

	case parse.TokEnum:
		f, ok := tb.enums[head.Name]
		if !ok {
			return Response{}, rytmerr.InvalidEnumType(head.Name)
		}
		params := c.params()
		if op == parse.Get {
			v, err := f.read(obj, head.Name, head.Variant, params)
			if err != nil {
				return Response{}, err
			}
			return reply(head.Name, v), nil
		}
		if err := f.write(obj, head.Name, head.Variant, params); err != nil {
			return Response{}, err
		}
		return Ok(), nil
	}

	return Response{}, formatError(op, "Unexpected %s.", head)
}

const maxNameLen = 15

func (tb table[T]) rename(obj *T, c *cursor) (Response, error) {
	t, ok := c.take(parse.TokParameterString)
	if !ok {
		return Response{}, rytmerr.SetFormat("name must be a symbol with maximum 15 characters long and use only ascii characters.")
	}
	if err := checkName(t.Text); err != nil {
		return Response{}, err
	}
	*tb.name(obj) = t.Text
	return Ok(), nil
}

func checkName(name string) error {
	if name == "" {
		return rytmerr.SetRange("name must not be empty.")
	}
	if len(name) > maxNameLen {
		return rytmerr.SetRange("name must be at most %d characters long. Got %d.", maxNameLen, len(name))
	}
	if slices.ContainsFunc([]rune(name), func(r rune) bool { return r > unicode.MaxASCII }) {
		return rytmerr.SetRange("name must use only ascii characters.")
	}
	return nil
}

func nameField[T any](ptr func(*T) *string) field[T] {
	return readOnly(symbolKind, func(obj *T) value.Value { return value.Symbol(*ptr(obj)) })
}

func formatError(op parse.Op, format string, args ...any) error {
	if op == parse.Get {
		return rytmerr.GetFormat(format, args...)
	}
	return rytmerr.SetFormat(format, args...)
}
