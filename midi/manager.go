package midi

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// DeviceEvent is emitted when a device connects or disconnects
type DeviceEvent struct {
	Type DeviceEventType
	Port Port
	ID   string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

func (t DeviceEventType) String() string {
	if t == DeviceConnected {
		return "connected"
	}
	return "disconnected"
}

// scanTimeout bounds a port listing, CoreMIDI can hang
const scanTimeout = 3 * time.Second

// DeviceManager handles hot-plug detection of Rytm ports
type DeviceManager struct {
	ports    map[string]Port
	mu       sync.RWMutex
	events   chan DeviceEvent
	pollRate time.Duration
	match    func(name string) bool
	log      *slog.Logger

	list func() []Endpoint
	open func(ep Endpoint) (Port, error)
}

// NewDeviceManager watches for ports named portName and for any port that
// looks like a Rytm
func NewDeviceManager(portName string, log *slog.Logger) *DeviceManager {
	if log == nil {
		log = slog.Default()
	}
	return &DeviceManager{
		ports:    make(map[string]Port),
		events:   make(chan DeviceEvent, 16),
		pollRate: time.Second,
		match:    Matcher(portName),
		log:      log,
		list:     Endpoints,
		open:     OpenPort,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Ports returns a snapshot of connected devices
func (dm *DeviceManager) Ports() map[string]Port {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	out := make(map[string]Port, len(dm.ports))
	for k, v := range dm.ports {
		out[k] = v
	}
	return out
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	dm.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan(ctx)
		}
	}
}

// emit hands ev to the consumer. It gives up when ctx is done, the consumer
// may already be gone.
func (dm *DeviceManager) emit(ctx context.Context, ev DeviceEvent) bool {
	select {
	case dm.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (dm *DeviceManager) scan(ctx context.Context) {
	ch := make(chan []Endpoint, 1)
	go func() { ch <- dm.list() }()

	var endpoints []Endpoint
	select {
	case endpoints = <-ch:
	case <-time.After(scanTimeout):
		dm.log.Warn("midi port scan timed out")
		return
	}

	seen := make(map[string]bool)
	for _, ep := range endpoints {
		if !dm.match(ep.Name) {
			continue
		}
		seen[ep.Name] = true

		dm.mu.RLock()
		_, exists := dm.ports[ep.Name]
		dm.mu.RUnlock()
		if exists {
			continue
		}

		port, err := dm.open(ep)
		if err != nil {
			dm.log.Error("open midi port", "port", ep.Name, "error", err)
			continue
		}
		dm.mu.Lock()
		dm.ports[ep.Name] = port
		dm.mu.Unlock()

		dm.log.Info("device connected", "port", ep.Name)
		if !dm.emit(ctx, DeviceEvent{Type: DeviceConnected, Port: port, ID: ep.Name}) {
			return
		}
	}

	dm.mu.Lock()
	var gone []string
	for id, port := range dm.ports {
		if !seen[id] {
			port.Close()
			delete(dm.ports, id)
			gone = append(gone, id)
		}
	}
	dm.mu.Unlock()

	for _, id := range gone {
		dm.log.Info("device disconnected", "port", id)
		if !dm.emit(ctx, DeviceEvent{Type: DeviceDisconnected, ID: id}) {
			return
		}
	}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, p := range dm.ports {
		p.Close()
	}
	dm.ports = make(map[string]Port)
}

// Endpoints lists the system's MIDI ports, pairing inputs and outputs that
// share a name
func Endpoints() []Endpoint {
	var out []Endpoint
	index := make(map[string]int)
	for _, in := range gomidi.GetInPorts() {
		index[in.String()] = len(out)
		out = append(out, Endpoint{Name: in.String(), In: in})
	}
	for _, o := range gomidi.GetOutPorts() {
		if i, ok := index[o.String()]; ok {
			out[i].Out = o
			continue
		}
		out = append(out, Endpoint{Name: o.String(), Out: o})
	}
	return out
}

// Matcher accepts the configured port name, ignoring case, and any port
// that mentions the Rytm
func Matcher(portName string) func(name string) bool {
	want := strings.ToLower(strings.TrimSpace(portName))
	return func(name string) bool {
		name = strings.ToLower(name)
		if want != "" && name == want {
			return true
		}
		return strings.Contains(name, "rytm")
	}
}
