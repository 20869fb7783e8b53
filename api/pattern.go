package api

import (
	"go-rytm/parse"
	"go-rytm/project"
	"go-rytm/value"
)

var patternTable = table[project.Pattern]{
	fields: map[string]field[project.Pattern]{
		"iswb":           readOnlyBool(func(p *project.Pattern) *bool { return &p.IsWorkBuffer }),
		"index":          readOnlyInt(func(p *project.Pattern) *int { return &p.Index }),
		"version":        readOnlyInt(func(p *project.Pattern) *int { return &p.Version }),
		"masterlen":      intField(1, 1024, func(p *project.Pattern) *int { return &p.MasterLength }),
		"masterchg":      intField(1, 1024, func(p *project.Pattern) *int { return &p.MasterChange }),
		"kitnumber":      intField(0, 127, func(p *project.Pattern) *int { return &p.KitNumber }),
		"swingamount":    intField(50, 80, func(p *project.Pattern) *int { return &p.SwingAmount }),
		"globalquantize": intField(0, 127, func(p *project.Pattern) *int { return &p.GlobalQuantize }),
		"patternbpm":     floatField(30, 300, func(p *project.Pattern) *float64 { return &p.BPM }),
	},
	enums: map[string]enumField[project.Pattern]{
		"speed":    enumOf(project.Speed, func(p *project.Pattern) *string { return &p.Speed }),
		"timemode": enumOf(project.TimeMode, func(p *project.Pattern) *string { return &p.TimeMode }),
	},
}

var trackTable = table[project.Track]{
	fields: map[string]field[project.Track]{
		"iswb":           readOnlyBool(func(t *project.Track) *bool { return &t.IsWorkBuffer }),
		"parentindex":    readOnlyInt(func(t *project.Track) *int { return &t.PatternIndex }),
		"index":          readOnlyInt(func(t *project.Track) *int { return &t.Index }),
		"deftrignote":    intField(0, 127, func(t *project.Track) *int { return &t.DefaultNote }),
		"deftrigvel":     intField(0, 127, func(t *project.Track) *int { return &t.DefaultVelocity }),
		"deftrigprob":    intField(0, 100, func(t *project.Track) *int { return &t.DefaultProbability }),
		"steps":          intField(1, project.NumTrigs, func(t *project.Track) *int { return &t.Steps }),
		"quantizeamount": intField(0, 127, func(t *project.Track) *int { return &t.QuantizeAmount }),
		"sendsmidi":      boolField(func(t *project.Track) *bool { return &t.SendsMidi }),
		"euc":            boolField(func(t *project.Track) *bool { return &t.Euclidean.Enabled }),
		"pl1":            intField(0, project.NumTrigs, func(t *project.Track) *int { return &t.Euclidean.Pulses1 }),
		"pl2":            intField(0, project.NumTrigs, func(t *project.Track) *int { return &t.Euclidean.Pulses2 }),
		"ro1":            intField(0, project.NumTrigs-1, func(t *project.Track) *int { return &t.Euclidean.Rotation1 }),
		"ro2":            intField(0, project.NumTrigs-1, func(t *project.Track) *int { return &t.Euclidean.Rotation2 }),
		"tro":            intField(0, project.NumTrigs-1, func(t *project.Track) *int { return &t.Euclidean.TrackRotation }),
	},
	enums: map[string]enumField[project.Track]{
		"rootnote":       enumOf(project.RootNote, func(t *project.Track) *string { return &t.RootNote }),
		"padscale":       enumOf(project.PadScale, func(t *project.Track) *string { return &t.PadScale }),
		"defaultnotelen": enumOf(project.NoteLength, func(t *project.Track) *string { return &t.DefaultNoteLength }),
	},
}

var trigTable = table[project.Trig]{
	fields: map[string]field[project.Trig]{
		"enable":          boolField(func(t *project.Trig) *bool { return &t.Enabled }),
		"retrig":          boolField(func(t *project.Trig) *bool { return &t.Retrig }),
		"mute":            boolField(func(t *project.Trig) *bool { return &t.Mute }),
		"accent":          boolField(func(t *project.Trig) *bool { return &t.Accent }),
		"swing":           boolField(func(t *project.Trig) *bool { return &t.Swing }),
		"slide":           boolField(func(t *project.Trig) *bool { return &t.Slide }),
		"note":            intField(0, 127, func(t *project.Trig) *int { return &t.Note }),
		"vel":             intField(0, 127, func(t *project.Trig) *int { return &t.Velocity }),
		"retrigveloffset": intField(-128, 127, func(t *project.Trig) *int { return &t.RetrigVelocityOffset }),
		"soundlock":       soundLockField(),
	},
	enums: map[string]enumField[project.Trig]{
		"microtime":     enumOf(project.MicroTime, func(t *project.Trig) *string { return &t.MicroTime }),
		"notelen":       enumOf(project.NoteLength, func(t *project.Trig) *string { return &t.NoteLength }),
		"retriglen":     enumOf(project.NoteLength, func(t *project.Trig) *string { return &t.RetrigLength }),
		"retrigrate":    enumOf(project.RetrigRate, func(t *project.Trig) *string { return &t.RetrigRate }),
		"trigcondition": enumOf(project.TrigCondition, func(t *project.Trig) *string { return &t.Condition }),
	},
}

// soundLockField reads "unset" for a trig without a sound lock
func soundLockField() field[project.Trig] {
	f := intField(0, 127, func(t *project.Trig) *int { return &t.SoundLock })
	f.get = func(t *project.Trig, _ int) value.Value {
		if t.SoundLock == project.SoundLockUnset {
			return value.Symbol(unset)
		}
		return value.Int(int64(t.SoundLock))
	}
	return f
}

func patternCommand(op parse.Op, pat *project.Pattern, c *cursor) (Response, error) {
	tr, ok := c.take(parse.TokTrackIndex)
	if !ok {
		return patternTable.run(op, pat, c, func(key string, v value.Value) Response {
			return Common(pat.Index, key, v)
		})
	}
	track := &pat.Tracks[tr.Index]

	tg, ok := c.take(parse.TokTrigIndex)
	if !ok {
		return trackTable.run(op, track, c, func(key string, v value.Value) Response {
			return Track(pat.Index, tr.Index, key, v)
		})
	}
	trig := &track.Trigs[tg.Index]
	reply := func(key string, v value.Value) Response {
		return Trig(pat.Index, tr.Index, tg.Index, key, v)
	}

	if pl, ok := c.take(parse.TokPlockOperation); ok {
		return plockCommand(op, pl.Plock, trig, c, reply)
	}
	return trigTable.run(op, trig, c, reply)
}
