package api

import (
	"go-rytm/value"
)

// ResponseKind names the shape of a reply
type ResponseKind int

const (
	OkResponse ResponseKind = iota
	CommonResponse
	KitElementResponse
	TrackResponse
	TrigResponse
)

func (k ResponseKind) String() string {
	return [...]string{"ok", "common", "kitelement", "track", "trig"}[k]
}

// Response is the reply of a successful command. Which index fields are
// meaningful depends on Kind.
type Response struct {
	Kind ResponseKind

	// Index is the object index, the kit index or the pattern index
	Index        int
	ElementIndex int
	ElementType  string
	TrackIndex   int
	TrigIndex    int
	Key          string
	Value        value.Value
}

func Ok() Response { return Response{Kind: OkResponse} }

func Common(index int, key string, v value.Value) Response {
	return Response{Kind: CommonResponse, Index: index, Key: key, Value: v}
}

func KitElement(kit, element int, elementType string, v value.Value) Response {
	return Response{Kind: KitElementResponse, Index: kit, ElementIndex: element, ElementType: elementType, Value: v}
}

func Track(pattern, track int, key string, v value.Value) Response {
	return Response{Kind: TrackResponse, Index: pattern, TrackIndex: track, Key: key, Value: v}
}

func Trig(pattern, track, trig int, key string, v value.Value) Response {
	return Response{Kind: TrigResponse, Index: pattern, TrackIndex: track, TrigIndex: trig, Key: key, Value: v}
}

// Values flattens the reply in field order. Ok flattens to nothing.
func (r Response) Values() value.List {
	switch r.Kind {
	case CommonResponse:
		return value.List{value.Int(int64(r.Index)), value.Symbol(r.Key), r.Value}
	case KitElementResponse:
		return value.List{value.Int(int64(r.Index)), value.Int(int64(r.ElementIndex)), value.Symbol(r.ElementType), r.Value}
	case TrackResponse:
		return value.List{value.Int(int64(r.Index)), value.Int(int64(r.TrackIndex)), value.Symbol(r.Key), r.Value}
	case TrigResponse:
		return value.List{value.Int(int64(r.Index)), value.Int(int64(r.TrackIndex)), value.Int(int64(r.TrigIndex)), value.Symbol(r.Key), r.Value}
	}
	return nil
}
