package project

// Pattern is one sequencer pattern
type Pattern struct {
	Index          int     `json:"index"`
	IsWorkBuffer   bool    `json:"isWorkBuffer"`
	Version        int     `json:"version"`
	MasterLength   int     `json:"masterLength"`
	MasterChange   int     `json:"masterChange"`
	KitNumber      int     `json:"kitNumber"`
	SwingAmount    int     `json:"swingAmount"`
	GlobalQuantize int     `json:"globalQuantize"`
	BPM            float64 `json:"bpm"`
	Speed          string  `json:"speed"`
	TimeMode       string  `json:"timeMode"`

	Tracks [NumTracks]Track `json:"tracks"`
}

// Track is one of the pattern's thirteen tracks. Track 12 is the FX track.
type Track struct {
	Index        int  `json:"index"`
	PatternIndex int  `json:"patternIndex"`
	IsWorkBuffer bool `json:"isWorkBuffer"`

	DefaultNote        int    `json:"defaultNote"`
	DefaultVelocity    int    `json:"defaultVelocity"`
	DefaultProbability int    `json:"defaultProbability"`
	DefaultNoteLength  string `json:"defaultNoteLength"`
	Steps              int    `json:"steps"`
	QuantizeAmount     int    `json:"quantizeAmount"`
	SendsMidi          bool   `json:"sendsMidi"`
	RootNote           string `json:"rootNote"`
	PadScale           string `json:"padScale"`

	Euclidean Euclidean `json:"euclidean"`

	Trigs [NumTrigs]Trig `json:"trigs"`
}

// Euclidean holds the two pulse generators of euclidean mode
type Euclidean struct {
	Enabled       bool `json:"enabled"`
	Pulses1       int  `json:"pl1"`
	Pulses2       int  `json:"pl2"`
	Rotation1     int  `json:"ro1"`
	Rotation2     int  `json:"ro2"`
	TrackRotation int  `json:"tro"`
}

// Trig is one step of a track
type Trig struct {
	Enabled              bool   `json:"enabled"`
	Retrig               bool   `json:"retrig"`
	Mute                 bool   `json:"mute"`
	Accent               bool   `json:"accent"`
	Swing                bool   `json:"swing"`
	Slide                bool   `json:"slide"`
	Note                 int    `json:"note"`
	Velocity             int    `json:"velocity"`
	RetrigVelocityOffset int    `json:"retrigVelocityOffset"`
	SoundLock            int    `json:"soundLock"`
	MicroTime            string `json:"microTime"`
	NoteLength           string `json:"noteLength"`
	RetrigLength         string `json:"retrigLength"`
	RetrigRate           string `json:"retrigRate"`
	Condition            string `json:"condition"`

	Plocks map[string]Plock `json:"plocks,omitempty"`
}

// Plock is a parameter lock value. Enum locks carry a variant, numeric
// locks carry a number.
type Plock struct {
	Number  float64 `json:"number,omitempty"`
	IsFloat bool    `json:"isFloat,omitempty"`
	Variant string  `json:"variant,omitempty"`
}

// SoundLockUnset marks a trig that plays the track's own sound
const SoundLockUnset = 0xFF

func NewPattern(index int, workBuffer bool) Pattern {
	p := Pattern{
		Index:        index,
		IsWorkBuffer: workBuffer,
		Version:      5,
		MasterLength: 16,
		MasterChange: 1,
		KitNumber:    index,
		SwingAmount:  50,
		BPM:          120,
		Speed:        Speed.Default(),
		TimeMode:     TimeMode.Default(),
	}
	for i := range p.Tracks {
		p.Tracks[i] = newTrack(i, index, workBuffer)
	}
	return p
}

func newTrack(index, pattern int, workBuffer bool) Track {
	t := Track{
		Index:              index,
		PatternIndex:       pattern,
		IsWorkBuffer:       workBuffer,
		DefaultNote:        60,
		DefaultVelocity:    100,
		DefaultProbability: 100,
		DefaultNoteLength:  "1/16",
		Steps:              16,
		RootNote:           RootNote.Default(),
		PadScale:           PadScale.Default(),
	}
	for i := range t.Trigs {
		t.Trigs[i] = newTrig()
	}
	return t
}

func newTrig() Trig {
	return Trig{
		Note:         60,
		Velocity:     100,
		SoundLock:    SoundLockUnset,
		MicroTime:    "0",
		NoteLength:   "unset",
		RetrigLength: "unset",
		RetrigRate:   "1/16",
		Condition:    TrigCondition.Default(),
	}
}

// Lock stores a parameter lock for name
func (t *Trig) Lock(name string, p Plock) {
	if t.Plocks == nil {
		t.Plocks = make(map[string]Plock)
	}
	t.Plocks[name] = p
}

// Lookup returns the lock stored for name
func (t *Trig) Lookup(name string) (Plock, bool) {
	p, ok := t.Plocks[name]
	return p, ok
}

// Unlock clears the lock for name
func (t *Trig) Unlock(name string) {
	delete(t.Plocks, name)
	if len(t.Plocks) == 0 {
		t.Plocks = nil
	}
}
