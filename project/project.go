// Package project holds the Analog Rytm project tree: patterns with their
// tracks and trigs, kits, pool sounds, globals and settings, plus the work
// buffer copies the device edits live.
package project

const (
	NumPatterns   = 128
	NumKits       = 128
	NumPoolSounds = 12
	NumGlobals    = 4
	NumTracks     = 13
	NumTrigs      = 64
	NumKitSounds  = 12
)

// Project is the whole tree. It is large, pass it by pointer.
type Project struct {
	Patterns   [NumPatterns]Pattern `json:"patterns"`
	Kits       [NumKits]Kit         `json:"kits"`
	Sounds     [NumPoolSounds]Sound `json:"sounds"`
	Globals    [NumGlobals]Global   `json:"globals"`
	Settings   Settings             `json:"settings"`
	WorkBuffer WorkBuffer           `json:"workBuffer"`
}

// WorkBuffer holds the objects currently loaded on the device. The sound
// work buffer is the work buffer kit's sounds.
type WorkBuffer struct {
	Pattern Pattern `json:"pattern"`
	Kit     Kit     `json:"kit"`
	Global  Global  `json:"global"`
}

// New returns a project with every object at its default
func New() *Project {
	p := &Project{}
	for i := range p.Patterns {
		p.Patterns[i] = NewPattern(i, false)
	}
	for i := range p.Kits {
		p.Kits[i] = NewKit(i, false)
	}
	for i := range p.Sounds {
		p.Sounds[i] = NewSound(i, SoundPool)
	}
	for i := range p.Globals {
		p.Globals[i] = NewGlobal(i, false)
	}
	p.Settings = NewSettings()

	p.WorkBuffer.Pattern = NewPattern(0, true)
	p.WorkBuffer.Kit = NewKit(0, true)
	p.WorkBuffer.Global = NewGlobal(0, true)
	return p
}
