package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryMetrics records one transaction per engine command. A nil or
// disabled value records nothing.
type SentryMetrics struct {
	enabled bool
}

// Init configures the Sentry client. An empty DSN leaves metrics disabled.
func Init(dsn, environment string) (*SentryMetrics, error) {
	if dsn == "" {
		return &SentryMetrics{}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}
	return &SentryMetrics{enabled: true}, nil
}

func (m *SentryMetrics) Enabled() bool { return m != nil && m.enabled }

// Flush waits for buffered events before exit
func (m *SentryMetrics) Flush() {
	if !m.Enabled() {
		return
	}
	sentry.Flush(2 * time.Second)
}

// StartCommand opens a transaction for one command. The returned func
// finishes it and reports err when set.
func (m *SentryMetrics) StartCommand(ctx context.Context, op, id string) (context.Context, func(err error)) {
	if !m.Enabled() {
		return ctx, func(error) {}
	}

	transaction := sentry.StartTransaction(ctx, "rytm."+op)
	transaction.SetTag("request_id", id)
	start := time.Now()

	return transaction.Context(), func(err error) {
		transaction.SetData("duration_ms", time.Since(start).Milliseconds())
		if err != nil {
			transaction.SetTag("success", "false")
			transaction.Status = sentry.SpanStatusInternalError
			sentry.CaptureException(err)
		} else {
			transaction.SetTag("success", "true")
			transaction.Status = sentry.SpanStatusOK
		}
		transaction.Finish()
	}
}

// RecordFrame records a completed SysEx frame
func (m *SentryMetrics) RecordFrame(ctx context.Context, size int, err error) {
	if !m.Enabled() {
		return
	}

	span := sentry.StartSpan(ctx, "sysex.frame")
	defer span.Finish()

	span.SetData("size", size)
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		sentry.CaptureException(err)
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Description = fmt.Sprintf("SysEx frame: %d bytes", size)
}
