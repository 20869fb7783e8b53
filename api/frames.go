package api

import (
	"context"
	"errors"

	"go-rytm/parse"
	"go-rytm/rytmerr"
	"go-rytm/sysex"
	"go-rytm/value"
)

// HandleSysexByte feeds one byte of the device stream. A completed frame is
// decoded and applied to the tree.
func (e *Engine) HandleSysexByte(ctx context.Context, b byte) error {
	e.frameMu.Lock()
	frame, done, err := e.assembler.Feed(b)
	e.frameMu.Unlock()
	if err != nil || !done {
		return err
	}
	return e.applyFrame(ctx, frame)
}

// HandleSysex feeds a whole message, stopping at the first error
func (e *Engine) HandleSysex(ctx context.Context, data []byte) error {
	for _, b := range data {
		if err := e.HandleSysexByte(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) applyFrame(ctx context.Context, frame []byte) error {
	dump, err := e.codec.Decode(frame)
	if err == nil {
		err = e.lock(ctx)
		if err == nil {
			err = sysex.Apply(e.project, dump, verifyObject)
			e.mu.Unlock()
		}
	}
	e.metrics.RecordFrame(ctx, len(frame), err)

	if err != nil {
		e.log.Error("sysex frame rejected", "size", len(frame), "error", err)
		return err
	}
	e.log.Debug("sysex frame applied", "object", dump.Selector.String(), "size", len(frame))
	if e.applied != nil {
		e.applied(dump.Selector)
	}
	return nil
}

// PrepareQuery builds the request frame asking the device for an object
func (e *Engine) PrepareQuery(list value.List) ([]byte, error) {
	sel, err := parse.ResolveList(list)
	if err != nil {
		return nil, err
	}
	return e.codec.Query(sel, e.deviceID)
}

// PrepareSysex encodes an object of the tree as a dump frame for the device
func (e *Engine) PrepareSysex(ctx context.Context, list value.List) ([]byte, error) {
	sel, err := parse.ResolveList(list)
	if errors.Is(err, rytmerr.ErrQueryFormat) {
		return nil, rytmerr.SendFormat()
	}
	if err != nil {
		return nil, err
	}
	return e.encode(ctx, sel)
}

func (e *Engine) encode(ctx context.Context, sel parse.Selector) ([]byte, error) {
	if err := e.lock(ctx); err != nil {
		return nil, err
	}
	defer e.mu.Unlock()
	return e.codec.Encode(e.project, sel, e.deviceID)
}
