package project

// Kit holds the FX block, the per track settings and the twelve track sounds
type Kit struct {
	Index        int    `json:"index"`
	IsWorkBuffer bool   `json:"isWorkBuffer"`
	Version      int    `json:"version"`
	Name         string `json:"name"`

	CtrlInMod [2]CtrlInMod `json:"ctrlInMod"`

	Delay      Delay      `json:"delay"`
	Reverb     Reverb     `json:"reverb"`
	Compressor Compressor `json:"compressor"`
	FxLfo      FxLfo      `json:"fxLfo"`
	Distortion Distortion `json:"distortion"`

	Tracks [NumTracks]KitTrack `json:"tracks"`
	Sounds [NumKitSounds]Sound `json:"sounds"`
}

// CtrlInMod is one control input modulation with four targets
type CtrlInMod struct {
	Amount  int       `json:"amount"`
	Targets [4]string `json:"targets"`
}

type Delay struct {
	Time        int    `json:"time"`
	TimeOnGrid  string `json:"timeOnGrid"`
	PingPong    bool   `json:"pingPong"`
	StereoWidth int    `json:"stereoWidth"`
	Feedback    int    `json:"feedback"`
	HPF         int    `json:"hpf"`
	LPF         int    `json:"lpf"`
	ReverbSend  int    `json:"reverbSend"`
	Level       int    `json:"level"`
}

type Reverb struct {
	PreDelay int `json:"preDelay"`
	Decay    int `json:"decay"`
	Freq     int `json:"freq"`
	Gain     int `json:"gain"`
	HPF      int `json:"hpf"`
	LPF      int `json:"lpf"`
	Level    int `json:"level"`
}

type Compressor struct {
	Threshold   int    `json:"threshold"`
	Attack      string `json:"attack"`
	Release     string `json:"release"`
	Ratio       string `json:"ratio"`
	SidechainEq string `json:"sidechainEq"`
	Gain        int    `json:"gain"`
	Mix         int    `json:"mix"`
	Level       int    `json:"level"`
}

type FxLfo struct {
	Speed      int     `json:"speed"`
	Multiplier string  `json:"multiplier"`
	Fade       int     `json:"fade"`
	Dest       string  `json:"dest"`
	Waveform   string  `json:"waveform"`
	StartPhase int     `json:"startPhase"`
	Mode       string  `json:"mode"`
	Depth      float64 `json:"depth"`
}

type Distortion struct {
	DelayOverdrive int  `json:"delayOverdrive"`
	DelayPost      bool `json:"delayPost"`
	ReverbPost     bool `json:"reverbPost"`
	Amount         int  `json:"amount"`
	Symmetry       int  `json:"symmetry"`
}

// KitTrack holds the kit's level and retrig settings of one track
type KitTrack struct {
	Level                int    `json:"level"`
	RetrigRate           string `json:"retrigRate"`
	RetrigLength         string `json:"retrigLength"`
	RetrigVelocityOffset int    `json:"retrigVelocityOffset"`
	RetrigAlwaysOn       bool   `json:"retrigAlwaysOn"`
}

func NewKit(index int, workBuffer bool) Kit {
	k := Kit{
		Index:        index,
		IsWorkBuffer: workBuffer,
		Version:      6,
		Delay: Delay{
			Time: 23, TimeOnGrid: "16th", StereoWidth: 0, Feedback: 49,
			HPF: 0, LPF: 127, Level: 127,
		},
		Reverb: Reverb{PreDelay: 8, Decay: 45, Freq: 64, Gain: 32, LPF: 127, Level: 127},
		Compressor: Compressor{
			Threshold:   96,
			Attack:      FxCompAttack.Default(),
			Release:     FxCompRelease.Default(),
			Ratio:       FxCompRatio.Default(),
			SidechainEq: FxCompSidechainEq.Default(),
			Mix:         127,
			Level:       127,
		},
		FxLfo: FxLfo{
			Speed:      48,
			Multiplier: LfoMultiplier.Default(),
			Dest:       FxLfoDest.Default(),
			Waveform:   LfoWaveform.Default(),
			Mode:       LfoMode.Default(),
		},
	}
	for i := range k.CtrlInMod {
		for j := range k.CtrlInMod[i].Targets {
			k.CtrlInMod[i].Targets[j] = CtrlInModTarget.Default()
		}
	}
	for i := range k.Tracks {
		k.Tracks[i] = KitTrack{Level: 100, RetrigRate: "1/16", RetrigLength: "1/16"}
	}
	for i := range k.Sounds {
		s := NewSound(i, SoundKit)
		s.KitNumber = index
		if workBuffer {
			s.Kind = SoundWorkBuffer
		}
		k.Sounds[i] = s
	}
	return k
}
