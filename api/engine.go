// Package api executes parsed commands against a project tree. Every command
// holds the tree lock for its whole run, so a get sees a consistent object and
// a set either fully applies or leaves the tree untouched.
package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"go-rytm/metrics"
	"go-rytm/parse"
	"go-rytm/project"
	"go-rytm/rytmerr"
	"go-rytm/sysex"
	"go-rytm/value"
)

const (
	DefaultLockTimeout = 3 * time.Second
	lockPollInterval   = 5 * time.Millisecond
)

// Codec turns tree objects into device frames and back
type Codec interface {
	Query(sel parse.Selector, deviceID byte) ([]byte, error)
	Encode(p *project.Project, sel parse.Selector, deviceID byte) ([]byte, error)
	Decode(frame []byte) (sysex.Dump, error)
}

type Config struct {
	// LockTimeout bounds the wait for the tree. Zero means DefaultLockTimeout.
	LockTimeout time.Duration
	DeviceID    byte

	Codec   Codec
	Logger  *slog.Logger
	Metrics *metrics.SentryMetrics

	// Applied is called after a device frame changed the tree, outside the
	// tree lock
	Applied func(sel parse.Selector)
}

// Engine owns a project tree and serializes every access to it
type Engine struct {
	mu      sync.Mutex
	project *project.Project

	lockTimeout time.Duration
	deviceID    byte
	codec       Codec
	log         *slog.Logger
	metrics     *metrics.SentryMetrics
	applied     func(sel parse.Selector)

	frameMu   sync.Mutex
	assembler *sysex.Assembler
}

func New(p *project.Project, cfg Config) *Engine {
	e := &Engine{
		project:     p,
		lockTimeout: cfg.LockTimeout,
		deviceID:    cfg.DeviceID,
		codec:       cfg.Codec,
		log:         cfg.Logger,
		metrics:     cfg.Metrics,
		applied:     cfg.Applied,
		assembler:   sysex.NewAssembler(),
	}
	if e.project == nil {
		e.project = project.New()
	}
	if e.lockTimeout <= 0 {
		e.lockTimeout = DefaultLockTimeout
	}
	if e.codec == nil {
		e.codec = sysex.Elektron{}
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	return e
}

// Command parses and runs one get or set command
func (e *Engine) Command(ctx context.Context, op parse.Op, list value.List) (Response, error) {
	id := ulid.Make().String()
	log := e.log.With("id", id, "op", op.String())

	ctx, finish := e.metrics.StartCommand(ctx, op.String(), id)

	resp, err := e.command(ctx, op, list)
	finish(err)
	if err != nil {
		log.Error("command failed", "tokens", list.String(), "error", err)
		return Response{}, err
	}

	log.Debug("command", "tokens", list.String(), "reply", resp.Values().String())
	return resp, nil
}

func (e *Engine) command(ctx context.Context, op parse.Op, list value.List) (Response, error) {
	tokens, err := parse.Parse(op, list)
	if err != nil {
		return Response{}, err
	}

	if err := e.lock(ctx); err != nil {
		return Response{}, err
	}
	defer e.mu.Unlock()

	return e.dispatch(op, tokens)
}

// lock takes the tree lock, giving up with ErrBusy after the lock timeout
func (e *Engine) lock(ctx context.Context) error {
	if e.mu.TryLock() {
		return nil
	}

	deadline := time.NewTimer(e.lockTimeout)
	defer deadline.Stop()
	tick := time.NewTicker(lockPollInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return rytmerr.Busy()
		case <-deadline.C:
			return rytmerr.Busy()
		case <-tick.C:
			if e.mu.TryLock() {
				return nil
			}
		}
	}
}

// View runs fn with the tree locked. fn must not keep p.
func (e *Engine) View(ctx context.Context, fn func(p *project.Project)) error {
	if err := e.lock(ctx); err != nil {
		return err
	}
	defer e.mu.Unlock()
	fn(e.project)
	return nil
}

func (e *Engine) dispatch(op parse.Op, tokens []parse.Token) (Response, error) {
	sel := tokens[0].Selector
	c := &cursor{tokens: tokens[1:]}
	p := e.project

	switch sel.Type {
	case parse.Pattern:
		return patternCommand(op, &p.Patterns[sel.Index], c)
	case parse.PatternWB:
		return patternCommand(op, &p.WorkBuffer.Pattern, c)
	case parse.Kit:
		return kitCommand(op, &p.Kits[sel.Index], c)
	case parse.KitWB:
		return kitCommand(op, &p.WorkBuffer.Kit, c)
	case parse.Sound:
		return soundCommand(op, &p.Sounds[sel.Index], c)
	case parse.SoundWB:
		return soundCommand(op, &p.WorkBuffer.Kit.Sounds[sel.Index], c)
	case parse.Global:
		return globalCommand(op, &p.Globals[sel.Index], c)
	case parse.GlobalWB:
		return globalCommand(op, &p.WorkBuffer.Global, c)
	case parse.Settings:
		return settingsCommand(op, &p.Settings, c)
	}
	return Response{}, rytmerr.InvalidSelector(sel.Type.String())
}
