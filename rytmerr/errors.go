package rytmerr

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by this module unwraps to one of these.
var (
	ErrTypeMismatch = errors.New("type mismatch")

	// Selector
	ErrQuerySelectorMissing               = errors.New("query selector missing")
	ErrInvalidSelector                    = errors.New("invalid query selector")
	ErrQuerySelectorIndexMissingOrInvalid = errors.New("query selector index missing or invalid")
	ErrInvalidIndexRange                  = errors.New("invalid index range")

	// Grammar
	ErrIndexOutOfRange         = errors.New("index out of range")
	ErrUnexpectedEnd           = errors.New("unexpected end")
	ErrInvalidToken            = errors.New("invalid token")
	ErrInvalidFormat           = errors.New("invalid format")
	ErrEnumRequiresValue       = errors.New("enum requires value")
	ErrExpectedKitElementIndex = errors.New("expected kit element index")
	ErrInvalidPlockOperation   = errors.New("invalid plock operation")

	// Field
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidEnumType   = errors.New("invalid enum type")
	ErrInvalidEnumValue  = errors.New("invalid enum value")
	ErrGetFormat         = errors.New("invalid getter format")
	ErrGetRange          = errors.New("invalid getter range")
	ErrSetFormat         = errors.New("invalid setter format")
	ErrSetRange          = errors.New("invalid setter range")

	// Resource
	ErrBusy = errors.New("busy")

	// Codec and host
	ErrCodec       = errors.New("codec")
	ErrOutOfFrame  = errors.New("byte outside of sysex frame")
	ErrQueryFormat = errors.New("invalid query format")
	ErrSendFormat  = errors.New("invalid send format")
	ErrFile        = errors.New("file")
)

// Error is a categorized error with a user facing message.
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func newf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IndexRangeError reports a selector index outside of [Min, Max].
type IndexRangeError struct {
	Min, Max, Value int
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("Parse Error: Invalid index range: Index %d must be between %d and %d and an integer.", e.Value, e.Min, e.Max)
}

func (e *IndexRangeError) Unwrap() error { return ErrInvalidIndexRange }

const selectors = "pattern, pattern_wb, kit, kit_wb, global, global_wb, sound, sound_wb or settings"

func TypeMismatch(want, got string) error {
	return newf(ErrTypeMismatch, "Type Error: Expected %s but got %s.", want, got)
}

func QuerySelectorMissing() error {
	return newf(ErrQuerySelectorMissing, "Parse Error: Query selector missing. The command must be followed by a query selector. Query selector must be one of %s.", selectors)
}

func InvalidSelector(got string) error {
	return newf(ErrInvalidSelector, "Parse Error: Invalid query selector %q. Query selector must be one of %s.", got, selectors)
}

func QuerySelectorIndexMissingOrInvalid() error {
	return newf(ErrQuerySelectorIndexMissingOrInvalid, "Parse Error: Query selector index missing or invalid: This query selector must be followed by an integer index.")
}

// IndexOutOfRange formats the message used for track, trig and kit sound indexes.
func IndexOutOfRange(index int, min, max int, name string) error {
	return newf(ErrIndexOutOfRange, "Parse Error: %d is out of range for %s. %s must be an integer between %d and %d.",
		index, strings.ToLower(name), name, min, max)
}

func UnexpectedEnd() error {
	return newf(ErrUnexpectedEnd, "Parse Error: The command has an unexpected end. Expected either an identifier or enum value.")
}

func InvalidToken(format string, args ...any) error {
	return newf(ErrInvalidToken, "Parse Error: "+format, args...)
}

func InvalidFormat(format string, args ...any) error {
	return newf(ErrInvalidFormat, "Parse Error: "+format, args...)
}

func EnumRequiresValue(name string) error {
	return newf(ErrEnumRequiresValue, "Parse Error: Enum '%s:' requires a value. Try using '%s:<your-value>' instead.", name, name)
}

func ExpectedKitElementIndex(element string) error {
	return newf(ErrExpectedKitElementIndex, "Parse Error: Expected element index after '%s': Kit elements must be followed by an integer index.", element)
}

func InvalidPlockOperation(op, detail string) error {
	return newf(ErrInvalidPlockOperation, "Parse Error: Parameter lock operation %s is invalid. %s", op, detail)
}

// PlockMismatch is returned when a plock operation does not fit the command type.
func PlockMismatch(format string, args ...any) error {
	return newf(ErrInvalidFormat, "Invalid format: "+format, args...)
}

func InvalidIdentifier(name string) error {
	return newf(ErrInvalidIdentifier, "Identifier Error: Invalid identifier type. %s", name)
}

func InvalidEnumType(name string) error {
	return newf(ErrInvalidEnumType, "Enum Error: Invalid enum type. %s", name)
}

func InvalidEnumValue(enum, variant string, allowed []string) error {
	return newf(ErrInvalidEnumValue, "Enum Error: Invalid value '%s' for %s. Possible values are %s.", variant, enum, strings.Join(allowed, ", "))
}

func GetFormat(format string, args ...any) error {
	return newf(ErrGetFormat, "Invalid getter format. "+format, args...)
}

func GetRange(format string, args ...any) error {
	return newf(ErrGetRange, "Invalid getter range. "+format, args...)
}

func SetFormat(format string, args ...any) error {
	return newf(ErrSetFormat, "Invalid setter format. "+format, args...)
}

func SetRange(format string, args ...any) error {
	return newf(ErrSetRange, "Invalid setter range. "+format, args...)
}

func Busy() error {
	return newf(ErrBusy, "Rytm is busy, try again after some time.")
}

// Codec wraps an error from the sysex codec.
func Codec(err error) error {
	return &Error{Kind: ErrCodec, Msg: "Codec Error: " + err.Error(), Cause: err}
}

func CodecMsg(format string, args ...any) error {
	return newf(ErrCodec, "Codec Error: "+format, args...)
}

func OutOfFrame(b byte) error {
	return newf(ErrOutOfFrame, "Invalid input: Rytm only understands SysEx messages. Byte 0x%02X arrived outside of a frame.", b)
}

func QueryFormat() error {
	return newf(ErrQueryFormat, "Query Error: Invalid query format. The right format should be, <selector> [<index>]. Example: query pattern_wb or query pattern 0")
}

func SendFormat() error {
	return newf(ErrSendFormat, "Send Error: Invalid send format. The right format should be, <selector> [<index>]. Example: send pattern_wb or send pattern 0.")
}

func File(format string, args ...any) error {
	return newf(ErrFile, format, args...)
}
