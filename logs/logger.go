// Package logs builds the process logger: a text handler for the terminal or
// the console log file, fanned out to the systemd journal when it is there.
package logs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Level backs every handler built by New and the loglevel command
var Level = new(slog.LevelVar)

// Options selects the sinks of New
type Options struct {
	// Writer receives text records. Nil skips the text handler.
	Writer io.Writer
	// Journal adds the systemd journal handler when the socket is reachable.
	Journal bool
}

// New returns a logger writing to every configured sink
func New(opts Options) *slog.Logger {
	var handlers []slog.Handler

	// a systemd service logs to the journal only
	if opts.Journal && isSystemdService() {
		opts.Writer = nil
	}

	var terminalHandler slog.Handler
	if opts.Writer != nil {
		terminalHandler = slog.NewTextHandler(opts.Writer, &slog.HandlerOptions{
			Level: Level,
		})
		handlers = append(handlers, terminalHandler)
	}

	if opts.Journal {
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: Level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			if terminalHandler != nil {
				record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
				record.Add("error", err)
				_ = terminalHandler.Handle(context.Background(), record)
			}
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

// SetLevel parses one of error, warn, info or debug
func SetLevel(name string) error {
	switch strings.ToLower(name) {
	case "error":
		Level.Set(slog.LevelError)
	case "warn", "warning":
		Level.Set(slog.LevelWarn)
	case "info":
		Level.Set(slog.LevelInfo)
	case "debug":
		Level.Set(slog.LevelDebug)
	default:
		return fmt.Errorf("unknown log level %q, use error, warn, info or debug", name)
	}
	return nil
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	str = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
	return str
}

func isSystemdService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	parts := strings.Split(string(content), ":")
	if len(parts) < 3 {
		return false
	}
	return strings.HasSuffix(path.Dir(strings.TrimSpace(parts[2])), ".service")
}
