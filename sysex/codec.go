// Package sysex frames device messages and converts project objects to and
// from Elektron style SysEx dumps.
package sysex

import (
	"bytes"
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"go-rytm/parse"
	"go-rytm/project"
	"go-rytm/rytmerr"
)

// Elektron manufacturer id followed by the Analog Rytm product id
var header = []byte{Start, 0x00, 0x20, 0x3C, 0x07}

const (
	kitID      byte = 0x52
	soundID    byte = 0x53
	patternID  byte = 0x54
	settingsID byte = 0x56
	globalID   byte = 0x57

	queryOffset   byte = 0x10
	workBufferBit byte = 0x80

	// header, device id, type, version pair, object number
	prefixLen = 10
	// checksum and length pairs, end marker
	suffixLen = 5
	// length counts the payload plus the fixed bytes around it
	lengthExtra = 10
)

var typeIDs = map[parse.ObjectType]byte{
	parse.Pattern:   patternID,
	parse.PatternWB: patternID,
	parse.Kit:       kitID,
	parse.KitWB:     kitID,
	parse.Sound:     soundID,
	parse.SoundWB:   soundID,
	parse.Global:    globalID,
	parse.GlobalWB:  globalID,
	parse.Settings:  settingsID,
}

// Dump is a decoded object frame. Object holds the object's JSON form.
type Dump struct {
	Selector parse.Selector
	DeviceID byte
	Object   []byte
}

// Elektron is the device codec
type Elektron struct{}

// Query builds the frame asking the device to dump one object
func (Elektron) Query(sel parse.Selector, deviceID byte) ([]byte, error) {
	id, ok := typeIDs[sel.Type]
	if !ok {
		return nil, rytmerr.CodecMsg("no sysex type for %s", sel.Type)
	}
	frame := append(bytes.Clone(header), deviceID&0x7F, id+queryOffset, 0x01, 0x01, objectNumber(sel))
	frame = append(frame, 0x00, 0x00, 0x00, 0x05, End)
	return frame, nil
}

// Encode builds a dump frame of the selected object of p
func (Elektron) Encode(p *project.Project, sel parse.Selector, deviceID byte) ([]byte, error) {
	id, ok := typeIDs[sel.Type]
	if !ok {
		return nil, rytmerr.CodecMsg("no sysex type for %s", sel.Type)
	}

	obj, err := object(p, sel)
	if err != nil {
		return nil, err
	}
	payload, err := encodePayload(obj)
	if err != nil {
		return nil, rytmerr.Codec(err)
	}
	packed := pack7(payload)

	frame := make([]byte, 0, prefixLen+len(packed)+suffixLen)
	frame = append(frame, header...)
	frame = append(frame, deviceID&0x7F, id, 0x01, 0x01, objectNumber(sel))
	frame = append(frame, packed...)
	sumHi, sumLo := split14(checksum(packed))
	lenHi, lenLo := split14(len(packed) + lengthExtra)
	frame = append(frame, sumHi, sumLo, lenHi, lenLo, End)
	return frame, nil
}

// Decode checks a dump frame and extracts its object
func (Elektron) Decode(frame []byte) (Dump, error) {
	if len(frame) < prefixLen+suffixLen || frame[len(frame)-1] != End {
		return Dump{}, rytmerr.CodecMsg("frame of %d bytes is too short or not terminated", len(frame))
	}
	if !bytes.Equal(frame[:len(header)], header) {
		return Dump{}, rytmerr.CodecMsg("frame is not an Analog Rytm message")
	}

	deviceID, id, objnr := frame[5], frame[6], frame[9]
	if id >= kitID+queryOffset {
		return Dump{}, rytmerr.CodecMsg("frame is a query request (type 0x%02X), not a dump", id)
	}
	sel, err := selector(id, objnr)
	if err != nil {
		return Dump{}, err
	}

	packed := frame[prefixLen : len(frame)-suffixLen]
	tail := frame[len(frame)-suffixLen:]
	if got, want := join14(tail[0], tail[1]), checksum(packed); got != want {
		return Dump{}, rytmerr.CodecMsg("checksum mismatch: frame says 0x%04X, payload sums to 0x%04X", got, want)
	}
	if got, want := join14(tail[2], tail[3]), (len(packed)+lengthExtra)&0x3FFF; got != want {
		return Dump{}, rytmerr.CodecMsg("length mismatch: frame says %d, payload gives %d", got, want)
	}

	obj, err := decodePayload(unpack7(packed))
	if err != nil {
		return Dump{}, rytmerr.Codec(err)
	}
	return Dump{Selector: sel, DeviceID: deviceID, Object: obj}, nil
}

func objectNumber(sel parse.Selector) byte {
	n := byte(sel.Index) & 0x7F
	if sel.Type.WorkBuffer() {
		n |= workBufferBit
	}
	return n
}

func selector(id, objnr byte) (parse.Selector, error) {
	wb := objnr&workBufferBit != 0
	index := int(objnr &^ workBufferBit)

	var t parse.ObjectType
	switch id {
	case patternID:
		t = pick(wb, parse.PatternWB, parse.Pattern)
	case kitID:
		t = pick(wb, parse.KitWB, parse.Kit)
	case soundID:
		t = pick(wb, parse.SoundWB, parse.Sound)
	case globalID:
		t = pick(wb, parse.GlobalWB, parse.Global)
	case settingsID:
		t = parse.Settings
	default:
		return parse.Selector{}, rytmerr.CodecMsg("unknown object type 0x%02X", id)
	}

	r, indexed := parse.IndexRange(t)
	if !indexed {
		return parse.Selector{Type: t}, nil
	}
	if !r.Contains(index) {
		return parse.Selector{}, rytmerr.CodecMsg("object number %d is out of range for %s", index, t)
	}
	return parse.Selector{Type: t, Index: index}, nil
}

func pick(wb bool, a, b parse.ObjectType) parse.ObjectType {
	if wb {
		return a
	}
	return b
}

// encodePayload turns an object into a protobuf Struct through its JSON form
func encodePayload(obj any) ([]byte, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encode object: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("encode object: %w", err)
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode object: %w", err)
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(s)
}

func decodePayload(payload []byte) ([]byte, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return json.Marshal(s.AsMap())
}
