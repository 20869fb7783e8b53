package midi

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var ErrNoDevice = errors.New("no Rytm connected")

// Sink consumes the raw device stream
type Sink interface {
	HandleSysex(ctx context.Context, data []byte) error
}

// Bridge ties the connected device to a sink. Incoming bytes go to the sink,
// outgoing frames go to the most recently connected device.
type Bridge struct {
	sink Sink
	log  *slog.Logger

	mu   sync.Mutex
	port Port
}

func NewBridge(sink Sink, log *slog.Logger) *Bridge {
	if log == nil {
		log = slog.Default()
	}
	return &Bridge{sink: sink, log: log}
}

// Run follows device events until the channel closes or ctx is done
func (b *Bridge) Run(ctx context.Context, events <-chan DeviceEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			b.handle(ctx, ev)
		}
	}
}

func (b *Bridge) handle(ctx context.Context, ev DeviceEvent) {
	switch ev.Type {
	case DeviceConnected:
		err := ev.Port.Listen(func(data []byte) {
			if !isSysEx(data) {
				return
			}
			if err := b.sink.HandleSysex(ctx, data); err != nil {
				b.log.Warn("device message dropped", "port", ev.ID, "error", err)
			}
		})
		if err != nil {
			b.log.Error("listen to device", "port", ev.ID, "error", err)
			return
		}
		b.mu.Lock()
		b.port = ev.Port
		b.mu.Unlock()

	case DeviceDisconnected:
		b.mu.Lock()
		if b.port != nil && b.port.ID() == ev.ID {
			b.port = nil
		}
		b.mu.Unlock()
	}
}

// Connected returns the id of the device frames are sent to
func (b *Bridge) Connected() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.port == nil {
		return "", false
	}
	return b.port.ID(), true
}

// Send writes a frame to the connected device
func (b *Bridge) Send(frame []byte) error {
	b.mu.Lock()
	port := b.port
	b.mu.Unlock()
	if port == nil {
		return ErrNoDevice
	}
	return port.Send(frame)
}
