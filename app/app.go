// Package app wires configuration, logging, metrics, the engine and the MIDI
// bridge into a ready host for the console and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"go-rytm/api"
	"go-rytm/config"
	"go-rytm/host"
	"go-rytm/logs"
	"go-rytm/metrics"
	"go-rytm/midi"
	"go-rytm/parse"
	"go-rytm/project"
)

// Options override configuration for one run
type Options struct {
	// ConfigPath replaces ~/.config/go-rytm/config.cue
	ConfigPath string
	// LogLevel overrides log.level when set
	LogLevel string
	// LogToFile sends text logs to the log file instead of stderr. The
	// console needs this to keep the screen clean.
	LogToFile bool
	// Project is a .rytm file loaded before the first command. A missing
	// file starts from defaults.
	Project string
	// Restore starts from the newest save of a stored project instead
	Restore string
	// Applied is passed to the engine
	Applied func(sel parse.Selector)
	// Offline skips MIDI even when autoConnect is set
	Offline bool
}

type App struct {
	Config  *config.Config
	Log     *slog.Logger
	Metrics *metrics.SentryMetrics
	Engine  *api.Engine
	Host    *host.Host

	// Devices and Bridge are nil when running offline
	Devices *midi.DeviceManager
	Bridge  *midi.Bridge

	closers []io.Closer
}

// Open builds the app. Start must be called to begin device scanning.
func Open(opts Options) (_ *App, err error) {
	path := opts.ConfigPath
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	level := cfg.Log.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	if err := logs.SetLevel(level); err != nil {
		return nil, err
	}

	var w io.Writer = os.Stderr
	if opts.LogToFile {
		logPath := cfg.Log.File
		if logPath == "" {
			logPath = logs.DefaultPath()
		}
		f, err := logs.OpenFile(logPath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, f)
		w = f
	}
	a.Log = logs.New(logs.Options{Writer: w, Journal: true})

	a.Metrics, err = metrics.Init(cfg.Sentry.DSN, cfg.Sentry.Environment)
	if err != nil {
		a.Log.Warn("metrics disabled", "error", err)
		a.Metrics = nil
	}

	timeout, err := cfg.Engine.Timeout()
	if err != nil {
		return nil, err
	}

	p, err := initialProject(opts)
	if err != nil {
		return nil, err
	}

	a.Engine = api.New(p, api.Config{
		LockTimeout: timeout,
		DeviceID:    byte(cfg.Device.DeviceID),
		Logger:      a.Log,
		Metrics:     a.Metrics,
		Applied:     opts.Applied,
	})

	var sender host.Sender
	if cfg.Device.AutoConnect && !opts.Offline {
		a.Devices = midi.NewDeviceManager(cfg.Device.PortName, a.Log)
		a.Bridge = midi.NewBridge(a.Engine, a.Log)
		sender = a.Bridge
	}
	a.Host = host.New(a.Engine, sender, a.Log)
	return a, nil
}

func initialProject(opts Options) (*project.Project, error) {
	if opts.Restore != "" {
		p, err := project.LoadProject(opts.Restore, "")
		if err != nil {
			return nil, err
		}
		return p, api.CheckProject(p)
	}
	if opts.Project == "" {
		return nil, nil
	}
	if filepath.Ext(opts.Project) != project.Ext {
		return nil, fmt.Errorf("project file %s must end in %s", opts.Project, project.Ext)
	}
	p, err := project.ReadFile(opts.Project)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, api.CheckProject(p)
}

// Start scans for the device and bridges its stream into the engine until
// ctx is done
func (a *App) Start(ctx context.Context) {
	if a.Devices == nil {
		return
	}
	go a.Devices.Run(ctx)
	go a.Bridge.Run(ctx, a.Devices.Events())
}

// DeviceStatus reports the connected port. It is nil when running offline.
func (a *App) DeviceStatus() func() (string, bool) {
	if a.Bridge == nil {
		return nil
	}
	return a.Bridge.Connected
}

func (a *App) Close() {
	a.Metrics.Flush()
	for _, c := range a.closers {
		c.Close()
	}
}
