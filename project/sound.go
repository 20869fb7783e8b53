package project

// SoundKind tells where a sound lives
type SoundKind string

const (
	SoundPool       SoundKind = "pool"
	SoundKit        SoundKind = "kit"
	SoundWorkBuffer SoundKind = "workbuffer"
)

// NoKit is the kit number of a sound that does not belong to a kit
const NoKit = -1

type Sound struct {
	Index     int       `json:"index"`
	Kind      SoundKind `json:"kind"`
	KitNumber int       `json:"kitNumber"`
	Version   int       `json:"version"`
	Name      string    `json:"name"`

	MachineType   string `json:"machineType"`
	AccentLevel   int    `json:"accentLevel"`
	ChromaticMode string `json:"chromaticMode"`

	Amp    Amp        `json:"amp"`
	Filter Filter     `json:"filter"`
	Lfo    Lfo        `json:"lfo"`
	Sample Sample     `json:"sample"`
	VelMod [4]ModSlot `json:"velMod"`
	AtMod  [4]ModSlot `json:"atMod"`

	EnvResetFilter bool `json:"envResetFilter"`
	VelocityToVol  bool `json:"velocityToVol"`
	LegacyFxSend   bool `json:"legacyFxSend"`
}

type Amp struct {
	Attack     int `json:"attack"`
	Hold       int `json:"hold"`
	Decay      int `json:"decay"`
	Overdrive  int `json:"overdrive"`
	DelaySend  int `json:"delaySend"`
	ReverbSend int `json:"reverbSend"`
	Pan        int `json:"pan"`
	Level      int `json:"level"`
}

type Filter struct {
	Attack    int    `json:"attack"`
	Hold      int    `json:"hold"`
	Decay     int    `json:"decay"`
	Release   int    `json:"release"`
	Cutoff    int    `json:"cutoff"`
	Resonance int    `json:"resonance"`
	Type      string `json:"type"`
	EnvAmount int    `json:"envAmount"`
}

type Lfo struct {
	Speed      int     `json:"speed"`
	Multiplier string  `json:"multiplier"`
	Fade       int     `json:"fade"`
	Dest       string  `json:"dest"`
	Waveform   string  `json:"waveform"`
	StartPhase int     `json:"startPhase"`
	Mode       string  `json:"mode"`
	Depth      float64 `json:"depth"`
}

type Sample struct {
	Tune         int     `json:"tune"`
	FineTune     int     `json:"fineTune"`
	Number       int     `json:"number"`
	BitReduction int     `json:"bitReduction"`
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	Loop         bool    `json:"loop"`
	Level        int     `json:"level"`
}

// ModSlot is one velocity or aftertouch modulation target and its depth
type ModSlot struct {
	Amount int    `json:"amount"`
	Target string `json:"target"`
}

func NewSound(index int, kind SoundKind) Sound {
	s := Sound{
		Index:         index,
		Kind:          kind,
		KitNumber:     NoKit,
		Version:       5,
		MachineType:   MachineType.Default(),
		AccentLevel:   32,
		ChromaticMode: ChromaticMode.Default(),
		Amp:           Amp{Decay: 64, Level: 100},
		Filter: Filter{
			Decay:   64,
			Cutoff:  127,
			Type:    FilterType.Default(),
			Release: 64,
		},
		Lfo: Lfo{
			Speed:      48,
			Multiplier: LfoMultiplier.Default(),
			Dest:       LfoDest.Default(),
			Waveform:   LfoWaveform.Default(),
			Mode:       LfoMode.Default(),
		},
		Sample:        Sample{End: 120, Level: 100},
		VelocityToVol: true,
	}
	for i := range s.VelMod {
		s.VelMod[i].Target = ModTarget.Default()
		s.AtMod[i].Target = ModTarget.Default()
	}
	return s
}
