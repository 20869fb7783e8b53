package project

// Settings is the project wide state that is not part of any pattern or kit
type Settings struct {
	Version       int     `json:"version"`
	BPM           float64 `json:"bpm"`
	SelectedTrack int     `json:"selectedTrack"`
	SelectedPage  int     `json:"selectedPage"`

	Muted [NumKitSounds]bool `json:"muted"`

	FixedVelocity       bool `json:"fixedVelocity"`
	FixedVelocityAmount int  `json:"fixedVelocityAmount"`

	ParameterMenuItem   string `json:"parameterMenuItem"`
	FxParameterMenuItem string `json:"fxParameterMenuItem"`
	SequencerMode       string `json:"sequencerMode"`
	PatternMode         string `json:"patternMode"`

	SampleRecorderSource          string `json:"sampleRecorderSource"`
	SampleRecorderThreshold       int    `json:"sampleRecorderThreshold"`
	SampleRecorderMonitor         bool   `json:"sampleRecorderMonitor"`
	SampleRecorderRecordingLength string `json:"sampleRecorderRecordingLength"`
}

func NewSettings() Settings {
	return Settings{
		Version:                       3,
		BPM:                           120,
		FixedVelocityAmount:           100,
		ParameterMenuItem:             ParameterMenuItem.Default(),
		FxParameterMenuItem:           FxParameterMenuItem.Default(),
		SequencerMode:                 SequencerMode.Default(),
		PatternMode:                   PatternMode.Default(),
		SampleRecorderSource:          SampleRecorderSource.Default(),
		SampleRecorderRecordingLength: SampleRecorderRecordingLength.Default(),
	}
}
