package api

import (
	"go-rytm/parse"
	"go-rytm/project"
	"go-rytm/rytmerr"
	"go-rytm/value"
)

// unset is the reply for a parameter that holds no value
const unset = "unset"

// lockable validates a lock value with the descriptor of the kit or sound
// field it overrides
type lockable struct {
	check func(name string, n value.Number) (value.Number, error)
}

var (
	lockableFields = buildLockableFields()
	lockableEnums  = buildLockableEnums()
)

func buildLockableFields() map[string]lockable {
	out := make(map[string]lockable)
	for _, name := range parse.NamesOf(parse.PlockContext).Identifiers {
		if f, ok := kitTable.fields[name]; ok {
			out[name] = lockable{check: f.check}
		} else if f, ok := soundTable.fields[name]; ok {
			out[name] = lockable{check: f.check}
		}
	}
	return out
}

func buildLockableEnums() map[string]project.Enum {
	out := make(map[string]project.Enum)
	for _, name := range parse.NamesOf(parse.PlockContext).Enums {
		if f, ok := kitTable.enums[name]; ok {
			out[name] = f.enum
		} else if f, ok := soundTable.enums[name]; ok {
			out[name] = f.enum
		}
	}
	return out
}

func plockCommand(op parse.Op, pop parse.PlockOp, trig *project.Trig, c *cursor, reply replyFunc) (Response, error) {
	switch {
	case op == parse.Get && pop != parse.PlockGet:
		return Response{}, rytmerr.PlockMismatch("A get command can not be followed by a %s command. Please try %s or use a set command.", pop, parse.PlockGet)
	case op == parse.Set && pop == parse.PlockGet:
		return Response{}, rytmerr.PlockMismatch("A set command can not be followed by a %s command. Please try %s or %s or use a get command.", pop, parse.PlockSet, parse.PlockClear)
	}

	head, ok := c.next()
	if !ok {
		return Response{}, rytmerr.InvalidPlockOperation(pop.String(), "This operation needs to be followed by an identifier or an enum.")
	}
	params := c.params()

	switch head.Kind {
	case parse.TokIdentifier:
		spec, ok := lockableFields[head.Name]
		if !ok {
			return Response{}, rytmerr.InvalidIdentifier(head.Name)
		}
		return lockField(pop, trig, head.Name, spec, params, reply)
	case parse.TokEnum:
		enum, ok := lockableEnums[head.Name]
		if !ok {
			return Response{}, rytmerr.InvalidEnumType(head.Name)
		}
		return lockEnum(pop, trig, head, enum, params, reply)
	}
	return Response{}, formatError(op, "Unexpected %s after %s.", head, pop)
}

func lockField(pop parse.PlockOp, trig *project.Trig, name string, spec lockable, params []value.Number, reply replyFunc) (Response, error) {
	switch pop {
	case parse.PlockGet:
		if len(params) > 0 {
			return Response{}, rytmerr.GetFormat("plockget %s does not take a parameter.", name)
		}
		lock, ok := trig.Lookup(name)
		if !ok {
			return reply(name, value.Symbol(unset)), nil
		}
		if lock.IsFloat {
			return reply(name, value.Float(lock.Number)), nil
		}
		return reply(name, value.Int(int64(lock.Number))), nil

	case parse.PlockSet:
		if len(params) != 1 {
			return Response{}, rytmerr.SetFormat("plockset %s requires one value. Format: plockset %s <value>", name, name)
		}
		n, err := spec.check(name, params[0])
		if err != nil {
			return Response{}, err
		}
		trig.Lock(name, project.Plock{Number: n.Float(), IsFloat: n.IsFloat()})
		return Ok(), nil

	default:
		if len(params) > 0 {
			return Response{}, rytmerr.SetFormat("plockclear %s does not take a parameter.", name)
		}
		trig.Unlock(name)
		return Ok(), nil
	}
}

func lockEnum(pop parse.PlockOp, trig *project.Trig, head parse.Token, enum project.Enum, params []value.Number, reply replyFunc) (Response, error) {
	name := head.Name
	if len(params) > 0 {
		if pop == parse.PlockGet {
			return Response{}, rytmerr.GetFormat("plockget %s: does not take a parameter.", name)
		}
		return Response{}, rytmerr.SetFormat("%s %s: does not take a parameter.", pop, name)
	}

	switch pop {
	case parse.PlockGet:
		lock, ok := trig.Lookup(name)
		if !ok {
			return reply(name, value.Symbol(unset)), nil
		}
		return reply(name, value.Symbol(lock.Variant)), nil

	case parse.PlockSet:
		if err := enum.Check(head.Variant); err != nil {
			return Response{}, err
		}
		trig.Lock(name, project.Plock{Variant: head.Variant})
		return Ok(), nil

	default:
		trig.Unlock(name)
		return Ok(), nil
	}
}
