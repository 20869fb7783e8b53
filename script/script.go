// Package script runs Starlark files against a host. Each command verb is a
// builtin: get("kit", 1, "name") or get("kit 1 name") both work. load is a
// Starlark keyword, so the file verbs are load_file and save_file.
package script

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"go-rytm/host"
	"go-rytm/value"
)

// Scripts are plain sequences of commands, so loops and reassignment are
// allowed at top level
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Runner executes scripts. Output from print and from warnings goes to Out.
type Runner struct {
	Host *host.Host
	Out  io.Writer
}

func New(h *host.Host, out io.Writer) *Runner {
	if out == nil {
		out = os.Stdout
	}
	return &Runner{Host: h, Out: out}
}

// RunFile executes the script at path
func (r *Runner) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return r.Exec(ctx, path, src)
}

// Exec executes src. name is used in error positions.
func (r *Runner) Exec(ctx context.Context, name string, src []byte) error {
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(r.Out, msg)
		},
	}
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(ctx.Err().Error())
	})
	defer stop()

	_, err := starlark.ExecFileOptions(fileOptions, thread, name, src, r.builtins(ctx))
	return err
}

func (r *Runner) builtins(ctx context.Context) starlark.StringDict {
	env := starlark.StringDict{}
	for _, verb := range host.Verbs {
		name := verb
		if name == "load" || name == "save" {
			name += "_file"
		}
		env[name] = starlark.NewBuiltin(name, r.verb(ctx, verb))
	}
	env["run"] = starlark.NewBuiltin("run", r.line(ctx))
	return env
}

type builtinFn func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error)

func (r *Runner) verb(ctx context.Context, verb string) builtinFn {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
		}
		list, err := toList(args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		return r.result(thread, r.Host.Exec(ctx, verb, list))
	}
}

// line runs a whole command line, verb included
func (r *Runner) line(ctx context.Context) builtinFn {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var line string
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &line); err != nil {
			return nil, err
		}
		return r.result(thread, r.Host.ExecLine(ctx, line))
	}
}

// result maps a host result to a script value. get returns the field value,
// query and send return the frame, everything else returns None.
func (r *Runner) result(thread *starlark.Thread, res host.Result) (starlark.Value, error) {
	switch res.Status {
	case host.StatusError:
		return nil, res.Err
	case host.StatusWarning:
		thread.Print(thread, "warning: "+res.Warning)
	}
	if len(res.Frame) > 0 {
		return starlark.Bytes(res.Frame), nil
	}
	if len(res.Values) > 0 {
		return toStarlarkValue(res.Values[len(res.Values)-1]), nil
	}
	return starlark.None, nil
}

func toList(args starlark.Tuple) (value.List, error) {
	var list value.List
	for _, arg := range args {
		switch arg := arg.(type) {
		case starlark.Int:
			v, ok := arg.Int64()
			if !ok {
				return nil, fmt.Errorf("integer %s out of range", arg)
			}
			list = append(list, value.Int(v))
		case starlark.Float:
			list = append(list, value.Float(float64(arg)))
		case starlark.Bool:
			list = append(list, value.Bool(bool(arg)))
		case starlark.String:
			list = append(list, value.Fields(string(arg))...)
		default:
			return nil, fmt.Errorf("unsupported argument %s of type %s", arg, arg.Type())
		}
	}
	return list, nil
}

func toStarlarkValue(v value.Value) starlark.Value {
	switch {
	case v.IsInt():
		n, _ := v.IntValue()
		return starlark.MakeInt64(n)
	case v.IsFloat():
		n, _ := v.AsNumber()
		return starlark.Float(n.Float())
	}
	return starlark.String(v.String())
}
