package parse

import (
	"fmt"

	"go-rytm/value"
)

// Op is the requested operation of a command
type Op int

const (
	Get Op = iota
	Set
)

func (o Op) String() string {
	if o == Set {
		return "set"
	}
	return "get"
}

// PlockOp is a parameter lock operation keyword
type PlockOp int

const (
	PlockGet PlockOp = iota
	PlockSet
	PlockClear
)

var plockOpNames = map[string]PlockOp{
	"plockget":   PlockGet,
	"plockset":   PlockSet,
	"plockclear": PlockClear,
}

func (p PlockOp) String() string {
	switch p {
	case PlockSet:
		return "plockset"
	case PlockClear:
		return "plockclear"
	}
	return "plockget"
}

// LookupPlockOp maps a keyword to its plock operation
func LookupPlockOp(s string) (PlockOp, bool) {
	op, ok := plockOpNames[s]
	return op, ok
}

// TokenKind identifies a parsed token variant
type TokenKind int

const (
	TokObjectType TokenKind = iota
	TokTrackIndex
	TokTrigIndex
	TokSoundIndex
	TokElementIndex
	TokElement
	TokIdentifier
	TokEnum
	TokParameter
	TokParameterString
	TokPlockOperation
)

// Token is one step of a parsed command path. Only the fields relevant to
// Kind are set.
type Token struct {
	Kind       TokenKind
	Selector   Selector
	Index      int
	Name       string
	Variant    string
	HasVariant bool
	Number     value.Number
	Text       string
	Plock      PlockOp
}

func ObjectTypeToken(s Selector) Token  { return Token{Kind: TokObjectType, Selector: s} }
func TrackIndexToken(i int) Token       { return Token{Kind: TokTrackIndex, Index: i} }
func TrigIndexToken(i int) Token        { return Token{Kind: TokTrigIndex, Index: i} }
func SoundIndexToken(i int) Token       { return Token{Kind: TokSoundIndex, Index: i} }
func ElementIndexToken(i int) Token     { return Token{Kind: TokElementIndex, Index: i} }
func ElementToken(name string) Token    { return Token{Kind: TokElement, Name: name} }
func IdentifierToken(name string) Token { return Token{Kind: TokIdentifier, Name: name} }
func ParameterToken(n value.Number) Token {
	return Token{Kind: TokParameter, Number: n}
}
func ParameterStringToken(s string) Token { return Token{Kind: TokParameterString, Text: s} }
func PlockToken(op PlockOp) Token         { return Token{Kind: TokPlockOperation, Plock: op} }

// EnumToken builds an enum reference; an empty variant means "read current".
func EnumToken(name, variant string) Token {
	return Token{Kind: TokEnum, Name: name, Variant: variant, HasVariant: variant != ""}
}

func (t Token) String() string {
	switch t.Kind {
	case TokObjectType:
		return "ObjectType(" + t.Selector.String() + ")"
	case TokTrackIndex:
		return fmt.Sprintf("TrackIndex(%d)", t.Index)
	case TokTrigIndex:
		return fmt.Sprintf("TrigIndex(%d)", t.Index)
	case TokSoundIndex:
		return fmt.Sprintf("SoundIndex(%d)", t.Index)
	case TokElementIndex:
		return fmt.Sprintf("ElementIndex(%d)", t.Index)
	case TokElement:
		return "Element(" + t.Name + ")"
	case TokIdentifier:
		return "Identifier(" + t.Name + ")"
	case TokEnum:
		if t.HasVariant {
			return "Enum(" + t.Name + ":" + t.Variant + ")"
		}
		return "Enum(" + t.Name + ":)"
	case TokParameter:
		return "Parameter(" + t.Number.String() + ")"
	case TokParameterString:
		return "ParameterString(" + t.Text + ")"
	case TokPlockOperation:
		return "PlockOperation(" + t.Plock.String() + ")"
	}
	return "Token(?)"
}
