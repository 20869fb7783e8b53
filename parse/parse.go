package parse

import (
	"log/slog"
	"strings"

	"go-rytm/rytmerr"
	"go-rytm/value"
)

const (
	numTracks    = 13
	numTrigs     = 64
	numKitSounds = 12
)

// parser walks a value list left to right with one value of lookahead
type parser struct {
	op     Op
	values value.List
	pos    int
	out    []Token
}

func (p *parser) peek() (value.Value, bool) {
	if p.pos >= len(p.values) {
		return value.Value{}, false
	}
	return p.values[p.pos], true
}

func (p *parser) next() (value.Value, bool) {
	v, ok := p.peek()
	if ok {
		p.pos++
	}
	return v, ok
}

func (p *parser) peekInt() (int, bool) {
	v, ok := p.peek()
	if !ok {
		return 0, false
	}
	i, ok := v.IntValue()
	return int(i), ok
}

func (p *parser) peekSymbol() (string, bool) {
	v, ok := p.peek()
	if !ok || !v.IsSymbol() {
		return "", false
	}
	s, _ := v.AsSymbol()
	return s, true
}

func (p *parser) emit(t Token) { p.out = append(p.out, t) }

// Parse turns a command's value list into a path of tokens. The result always
// starts with exactly one ObjectType token. Every value must be consumed.
func Parse(op Op, values value.List) ([]Token, error) {
	p := &parser{op: op, values: values}

	first, ok := p.next()
	if !ok {
		return nil, rytmerr.QuerySelectorMissing()
	}

	var index *value.Value
	if name, err := first.AsSymbol(); err == nil {
		if t, known := LookupObjectType(name); known && (t.Indexed() || t == Settings) {
			if v, ok := p.peek(); ok && v.IsInt() {
				p.pos++
				index = &v
			}
			if t == Settings && index != nil {
				slog.Warn("settings does not take an index, ignoring it", "index", index.String())
			}
		}
	}

	sel, err := Resolve(first, index)
	if err != nil {
		return nil, err
	}
	p.emit(ObjectTypeToken(sel))

	switch sel.Type {
	case Pattern, PatternWB:
		err = p.pattern()
	case Kit, KitWB:
		err = p.kit()
	case Sound, SoundWB:
		err = p.sound(SoundContext)
	case Global, GlobalWB:
		err = p.identifierOrEnum(GlobalContext)
	case Settings:
		err = p.identifierOrEnum(SettingsContext)
	}
	if err != nil {
		return nil, err
	}

	if v, ok := p.peek(); ok {
		return nil, rytmerr.InvalidToken("Unexpected trailing value '%s'. The command is complete before it.", v)
	}
	return p.out, nil
}

func (p *parser) index(min, max int, name string) (int, bool, error) {
	i, ok := p.peekInt()
	if !ok {
		return 0, false, nil
	}
	if i < min || i > max {
		return 0, false, rytmerr.IndexOutOfRange(i, min, max, name)
	}
	p.pos++
	return i, true, nil
}

func (p *parser) pattern() error {
	ctx := PatternContext

	track, ok, err := p.index(0, numTracks-1, "Track index")
	if err != nil {
		return err
	}
	if ok {
		p.emit(TrackIndexToken(track))
		ctx = TrackContext

		trig, ok, err := p.index(0, numTrigs-1, "Trig index")
		if err != nil {
			return err
		}
		if ok {
			p.emit(TrigIndexToken(trig))
			ctx = TrigContext
		}
	}

	sym, ok := p.peekSymbol()
	if !ok {
		return p.identifierOrEnum(ctx)
	}
	op, isPlock := LookupPlockOp(sym)
	if !isPlock {
		return p.identifierOrEnum(ctx)
	}
	if ctx != TrigContext {
		return rytmerr.InvalidPlockOperation(sym, "This operation needs to follow a track index and a trig index.")
	}
	p.pos++
	p.emit(PlockToken(op))
	if _, more := p.peek(); !more {
		return rytmerr.InvalidPlockOperation(sym, "This operation needs to be followed by an identifier or an enum.")
	}
	return p.identifierOrEnum(PlockContext)
}

func (p *parser) kit() error {
	element, ok := p.peekSymbol()
	if !ok || !isKitElement(element) {
		return p.sound(KitContext)
	}
	p.pos++
	p.emit(ElementToken(element))

	i, ok := p.peekInt()
	if !ok {
		return rytmerr.ExpectedKitElementIndex(element)
	}
	p.pos++

	if element == "sound" {
		if i < 0 || i >= numKitSounds {
			return rytmerr.IndexOutOfRange(i, 0, numKitSounds-1, "Kit sound index")
		}
		p.emit(SoundIndexToken(i))
		return p.sound(SoundContext)
	}

	if i < 0 || i >= numTracks {
		return rytmerr.IndexOutOfRange(i, 0, numTracks-1, "Kit element index")
	}
	p.emit(ElementIndexToken(i))

	if p.op == Get {
		return nil
	}
	v, ok := p.peek()
	if !ok {
		return rytmerr.InvalidFormat("A parameter or enum must be provided to set the kit element %s.", element)
	}
	if v.IsNumber() {
		p.pos++
		n, _ := v.AsNumber()
		p.emit(ParameterToken(n))
		return nil
	}
	return p.identifierOrEnum(KitElementContext)
}

// sound parses the tail of the sound family. Kits share the grammar because
// they also carry a writable name.
func (p *parser) sound(ctx Context) error {
	sym, ok := p.peekSymbol()
	if !ok {
		return rytmerr.UnexpectedEnd()
	}
	if sym == "name" && p.op == Set {
		p.pos++
		p.emit(IdentifierToken(sym))
		v, ok := p.next()
		if !ok || !v.IsSymbol() {
			return rytmerr.InvalidFormat("Invalid parameter '%s': name must be a symbol with maximum 15 characters long and use only ascii characters.", sym)
		}
		s, _ := v.AsSymbol()
		p.emit(ParameterStringToken(s))
		return nil
	}
	return p.identifierOrEnum(ctx)
}

func (p *parser) identifierOrEnum(ctx Context) error {
	v, ok := p.next()
	if !ok || !v.IsSymbol() {
		return rytmerr.UnexpectedEnd()
	}
	sym, _ := v.AsSymbol()

	if isIdentifier(ctx, sym) {
		p.emit(IdentifierToken(sym))
		p.parameters(2)
		return nil
	}

	name, variant, hasColon := strings.Cut(sym, ":")
	if !isEnum(ctx, name) {
		return rytmerr.InvalidToken("Unexpected symbol '%s'. Expected an identifier or enum.", sym)
	}
	if !hasColon {
		return rytmerr.InvalidFormat("Invalid enum format: '%s'. Enums may only have the format of <enum-type>: or <enum-type>:<variant>", sym)
	}
	if variant == "" && p.op == Set && !p.clearing() {
		return rytmerr.EnumRequiresValue(name)
	}
	p.emit(EnumToken(name, variant))
	p.parameters(1)
	return nil
}

// clearing reports whether the enum follows plockclear, which needs no variant
func (p *parser) clearing() bool {
	if len(p.out) == 0 {
		return false
	}
	last := p.out[len(p.out)-1]
	return last.Kind == TokPlockOperation && last.Plock == PlockClear
}

// parameters consumes up to max trailing numeric values
func (p *parser) parameters(max int) {
	for range max {
		v, ok := p.peek()
		if !ok || !v.IsNumber() {
			return
		}
		p.pos++
		n, _ := v.AsNumber()
		p.emit(ParameterToken(n))
	}
}
