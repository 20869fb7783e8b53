package api

import (
	"go-rytm/parse"
	"go-rytm/project"
	"go-rytm/value"
)

var settingsTable = table[project.Settings]{
	fields: map[string]field[project.Settings]{
		"version":       readOnlyInt(func(s *project.Settings) *int { return &s.Version }),
		"projectbpm":    floatField(30, 300, func(s *project.Settings) *float64 { return &s.BPM }),
		"selectedtrack": intField(0, project.NumKitSounds-1, func(s *project.Settings) *int { return &s.SelectedTrack }),
		"selectedpage":  intField(0, 3, func(s *project.Settings) *int { return &s.SelectedPage }),
		"mute": {
			kind:   boolKind,
			slots:  project.NumKitSounds,
			get:    func(s *project.Settings, i int) value.Value { return value.Bool(s.Muted[i]) },
			action: func(s *project.Settings, i int) { s.Muted[i] = true },
		},
		"unmute": {
			kind:   boolKind,
			slots:  project.NumKitSounds,
			action: func(s *project.Settings, i int) { s.Muted[i] = false },
		},
		"fixedvelocity":     boolField(func(s *project.Settings) *bool { return &s.FixedVelocity }),
		"fixedvelocityamt":  intField(1, 127, func(s *project.Settings) *int { return &s.FixedVelocityAmount }),
		"samplerecorderthr": intField(0, 127, func(s *project.Settings) *int { return &s.SampleRecorderThreshold }),
		"samplerecordermon": boolField(func(s *project.Settings) *bool { return &s.SampleRecorderMonitor }),
	},
	enums: map[string]enumField[project.Settings]{
		"parametermenuitem":          enumOf(project.ParameterMenuItem, func(s *project.Settings) *string { return &s.ParameterMenuItem }),
		"fxparametermenuitem":        enumOf(project.FxParameterMenuItem, func(s *project.Settings) *string { return &s.FxParameterMenuItem }),
		"sequencermode":              enumOf(project.SequencerMode, func(s *project.Settings) *string { return &s.SequencerMode }),
		"patternmode":                enumOf(project.PatternMode, func(s *project.Settings) *string { return &s.PatternMode }),
		"samplerecordersrc":          enumOf(project.SampleRecorderSource, func(s *project.Settings) *string { return &s.SampleRecorderSource }),
		"samplerecorderrecordinglen": enumOf(project.SampleRecorderRecordingLength, func(s *project.Settings) *string { return &s.SampleRecorderRecordingLength }),
	},
}

// settingsCommand replies with index 0, there is only one settings object
func settingsCommand(op parse.Op, s *project.Settings, c *cursor) (Response, error) {
	return settingsTable.run(op, s, c, func(key string, v value.Value) Response {
		return Common(0, key, v)
	})
}
