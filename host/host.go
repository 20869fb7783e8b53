// Package host runs the textual command surface: the get and set commands of
// the engine plus the query, send, load, save and loglevel verbs. The
// console, scripts, the CLI and the WebSocket server all go through it.
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go-rytm/api"
	"go-rytm/logs"
	"go-rytm/parse"
	"go-rytm/value"
)

// Status is the code every command reports
type Status int

const (
	StatusOk      Status = 0
	StatusError   Status = 1
	StatusWarning Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusError:
		return "error"
	}
	return "warning"
}

var Verbs = []string{"get", "set", "query", "send", "load", "save", "loglevel"}

// Result is the outcome of one command. Values holds the reply of a get,
// Frame the bytes built by query and send.
type Result struct {
	Status Status
	Values value.List
	Frame  []byte
	Err    error
	// Warning explains a StatusWarning
	Warning string
}

// Text renders the result the way the console prints it
func (r Result) Text() string {
	switch r.Status {
	case StatusError:
		return r.Err.Error()
	case StatusWarning:
		return r.Warning
	}
	if len(r.Frame) > 0 {
		return fmt.Sprintf("% X", r.Frame)
	}
	if len(r.Values) > 0 {
		return r.Values.String()
	}
	return "ok"
}

// Sender delivers a frame to the device
type Sender interface {
	Send(frame []byte) error
}

type Host struct {
	engine *api.Engine
	sender Sender
	log    *slog.Logger
}

// New returns a host over engine. A nil sender builds frames without
// sending them, which is reported as a warning.
func New(engine *api.Engine, sender Sender, log *slog.Logger) *Host {
	if log == nil {
		log = slog.Default()
	}
	return &Host{engine: engine, sender: sender, log: log}
}

func (h *Host) Engine() *api.Engine { return h.engine }

// ExecLine splits a command line on whitespace and runs it
func (h *Host) ExecLine(ctx context.Context, line string) Result {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return fail(fmt.Errorf("empty command, use one of %s", strings.Join(Verbs, ", ")))
	}
	return h.Exec(ctx, fields[0], value.ParseList(fields[1:]))
}

// Exec runs one verb with its arguments
func (h *Host) Exec(ctx context.Context, verb string, args value.List) Result {
	switch verb {
	case "get":
		resp, err := h.engine.Command(ctx, parse.Get, args)
		if err != nil {
			return fail(err)
		}
		return Result{Values: resp.Values()}

	case "set":
		if _, err := h.engine.Command(ctx, parse.Set, args); err != nil {
			return fail(err)
		}
		return Result{}

	case "query":
		frame, err := h.engine.PrepareQuery(args)
		if err != nil {
			return fail(err)
		}
		return h.deliver(frame)

	case "send":
		frame, err := h.engine.PrepareSysex(ctx, args)
		if err != nil {
			return fail(err)
		}
		return h.deliver(frame)

	case "load":
		if len(args) != 1 {
			return fail(errors.New("load takes one path. Example: load my_project.rytm"))
		}
		if err := h.engine.Load(ctx, args[0].String()); err != nil {
			return fail(err)
		}
		return Result{}

	case "save":
		if len(args) == 0 {
			return fail(errors.New("save needs a path. Example: save my_project.rytm or save kit 1 my_kit.sysex"))
		}
		path := args[len(args)-1].String()
		if err := h.engine.Save(ctx, path, args[:len(args)-1]); err != nil {
			return fail(err)
		}
		return Result{}

	case "loglevel":
		if len(args) != 1 {
			return fail(errors.New("loglevel takes one of error, warn, info or debug"))
		}
		if err := logs.SetLevel(args[0].String()); err != nil {
			return fail(err)
		}
		return Result{}
	}
	return fail(fmt.Errorf("unknown command %q, use one of %s", verb, strings.Join(Verbs, ", ")))
}

func (h *Host) deliver(frame []byte) Result {
	if h.sender == nil {
		return Result{Status: StatusWarning, Frame: frame, Warning: "No device connected, the frame was built but not sent."}
	}
	if err := h.sender.Send(frame); err != nil {
		h.log.Warn("send frame", "size", len(frame), "error", err)
		return Result{Status: StatusWarning, Frame: frame, Warning: fmt.Sprintf("The frame was built but not sent: %v", err)}
	}
	return Result{Frame: frame}
}

func fail(err error) Result {
	return Result{Status: StatusError, Err: err}
}
