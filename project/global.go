package project

// Global holds the device wide MIDI and routing setup
type Global struct {
	Index        int  `json:"index"`
	IsWorkBuffer bool `json:"isWorkBuffer"`
	Version      int  `json:"version"`

	KitReloadOnChange bool `json:"kitReloadOnChange"`
	QuantizeLiveRec   bool `json:"quantizeLiveRec"`
	AutoTrackSwitch   bool `json:"autoTrackSwitch"`

	RouteToMain [NumKitSounds]bool `json:"routeToMain"`
	SendToFx    [NumKitSounds]bool `json:"sendToFx"`

	Sync      Sync      `json:"sync"`
	Metronome Metronome `json:"metronome"`
	Ports     Ports     `json:"ports"`
	Channels  Channels  `json:"channels"`

	TurboSpeed bool `json:"turboSpeed"`
}

type Sync struct {
	ClockReceive     bool `json:"clockReceive"`
	ClockSend        bool `json:"clockSend"`
	TransportReceive bool `json:"transportReceive"`
	TransportSend    bool `json:"transportSend"`
	PgmChangeReceive bool `json:"pgmChangeReceive"`
	PgmChangeSend    bool `json:"pgmChangeSend"`
	ReceiveNotes     bool `json:"receiveNotes"`
	ReceiveCcNrpn    bool `json:"receiveCcNrpn"`
}

type Metronome struct {
	Active      bool   `json:"active"`
	PrerollBars int    `json:"prerollBars"`
	Level       int    `json:"level"`
	TimeSig     string `json:"timeSig"`
}

type Ports struct {
	UsbIn        string `json:"usbIn"`
	UsbOut       string `json:"usbOut"`
	UsbToMainDb  string `json:"usbToMainDb"`
	OutPort      string `json:"outPort"`
	ThruPort     string `json:"thruPort"`
	InputFrom    string `json:"inputFrom"`
	OutputTo     string `json:"outputTo"`
	ParamOutput  string `json:"paramOutput"`
	PadDest      string `json:"padDest"`
	PressureDest string `json:"pressureDest"`
	EncoderDest  string `json:"encoderDest"`
	MuteDest     string `json:"muteDest"`
}

type Channels struct {
	PortsOutput  string               `json:"portsOutput"`
	Auto         string               `json:"auto"`
	Tracks       [NumKitSounds]string `json:"tracks"`
	TrackFx      string               `json:"trackFx"`
	PgmChangeIn  string               `json:"pgmChangeIn"`
	PgmChangeOut string               `json:"pgmChangeOut"`
	Performance  string               `json:"performance"`
}

func NewGlobal(index int, workBuffer bool) Global {
	g := Global{
		Index:        index,
		IsWorkBuffer: workBuffer,
		Version:      2,
		Sync: Sync{
			ClockReceive: true, TransportReceive: true, PgmChangeReceive: true,
			ReceiveNotes: true, ReceiveCcNrpn: true,
		},
		Metronome: Metronome{Level: 32, TimeSig: "4/4"},
		Ports: Ports{
			UsbIn:        UsbIn.Default(),
			UsbOut:       UsbOut.Default(),
			UsbToMainDb:  UsbToMainDb.Default(),
			OutPort:      PortFunction.Default(),
			ThruPort:     PortFunction.Default(),
			InputFrom:    "midiandusb",
			OutputTo:     "midiandusb",
			ParamOutput:  ParamOutput.Default(),
			PadDest:      "intandext",
			PressureDest: "intandext",
			EncoderDest:  "intandext",
			MuteDest:     "intandext",
		},
		Channels: Channels{
			PortsOutput:  "off",
			Auto:         "14",
			TrackFx:      "13",
			PgmChangeIn:  "off",
			PgmChangeOut: "off",
			Performance:  "off",
		},
	}
	for i := range g.RouteToMain {
		g.RouteToMain[i] = true
		g.Channels.Tracks[i] = MidiChannel.Variants[i]
	}
	return g
}
