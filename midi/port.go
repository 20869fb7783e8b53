package midi

import (
	"errors"
	"fmt"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

var ErrNoOutput = errors.New("port has no output")

// Port is an open connection to one device
type Port interface {
	ID() string
	// Send writes one complete SysEx frame, markers included
	Send(frame []byte) error
	// Listen delivers incoming SysEx messages as raw bytes, markers
	// included. Clock, transport and channel messages are dropped.
	Listen(fn func(data []byte)) error
	Close() error
}

// Endpoint is a device seen on the system, with its matching input and
// output ports. Either side may be nil.
type Endpoint struct {
	Name string
	In   drivers.In
	Out  drivers.Out
}

type rtPort struct {
	id   string
	in   drivers.In
	send func(msg gomidi.Message) error

	mu   sync.Mutex
	stop func()
}

// OpenPort opens the output side of an endpoint. The input is opened by
// Listen.
func OpenPort(ep Endpoint) (Port, error) {
	p := &rtPort{id: ep.Name, in: ep.In}
	if ep.Out != nil {
		send, err := gomidi.SendTo(ep.Out)
		if err != nil {
			return nil, fmt.Errorf("open output: %w", err)
		}
		p.send = send
	}
	return p, nil
}

func (p *rtPort) ID() string { return p.id }

func (p *rtPort) Send(frame []byte) error {
	if p.send == nil {
		return ErrNoOutput
	}
	return p.send(gomidi.Message(frame))
}

func (p *rtPort) Listen(fn func(data []byte)) error {
	if p.in == nil {
		return nil
	}
	stop, err := gomidi.ListenTo(p.in, func(msg gomidi.Message, timestampms int32) {
		if msg.Is(gomidi.SysExMsg) {
			fn(msg.Bytes())
		}
	}, gomidi.UseSysEx())
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		p.stop()
	}
	p.stop = stop
	return nil
}

// isSysEx tells a complete SysEx message from the realtime and channel
// traffic the Rytm sends alongside it
func isSysEx(data []byte) bool {
	return gomidi.Message(data).Is(gomidi.SysExMsg)
}

func (p *rtPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		p.stop()
		p.stop = nil
	}
	return nil
}
