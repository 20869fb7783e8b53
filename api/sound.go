package api

import (
	"go-rytm/parse"
	"go-rytm/project"
	"go-rytm/value"
)

var soundTable = table[project.Sound]{
	fields: map[string]field[project.Sound]{
		"version":   readOnlyInt(func(s *project.Sound) *int { return &s.Version }),
		"index":     readOnlyInt(func(s *project.Sound) *int { return &s.Index }),
		"name":      nameField(func(s *project.Sound) *string { return &s.Name }),
		"ispool":    soundKindField(project.SoundPool),
		"iskit":     soundKindField(project.SoundKit),
		"iswb":      soundKindField(project.SoundWorkBuffer),
		"kitnumber": readOnlyInt(func(s *project.Sound) *int { return &s.KitNumber }),
		"type":      readOnly(symbolKind, func(s *project.Sound) value.Value { return value.Symbol(string(s.Kind)) }),
		"accentlev": intField(0, 127, func(s *project.Sound) *int { return &s.AccentLevel }),

		"ampattack":    intField(0, 127, func(s *project.Sound) *int { return &s.Amp.Attack }),
		"amphold":      intField(0, 127, func(s *project.Sound) *int { return &s.Amp.Hold }),
		"ampdecay":     intField(0, 127, func(s *project.Sound) *int { return &s.Amp.Decay }),
		"ampoverdrive": intField(0, 127, func(s *project.Sound) *int { return &s.Amp.Overdrive }),
		"ampdelsend":   intField(0, 127, func(s *project.Sound) *int { return &s.Amp.DelaySend }),
		"amprevsend":   intField(0, 127, func(s *project.Sound) *int { return &s.Amp.ReverbSend }),
		"amppan":       intField(-64, 63, func(s *project.Sound) *int { return &s.Amp.Pan }),
		"amplev":       intField(0, 127, func(s *project.Sound) *int { return &s.Amp.Level }),

		"filtattack":  intField(0, 127, func(s *project.Sound) *int { return &s.Filter.Attack }),
		"filthold":    intField(0, 127, func(s *project.Sound) *int { return &s.Filter.Hold }),
		"filtdecay":   intField(0, 127, func(s *project.Sound) *int { return &s.Filter.Decay }),
		"filtrelease": intField(0, 127, func(s *project.Sound) *int { return &s.Filter.Release }),
		"filtcutoff":  intField(0, 127, func(s *project.Sound) *int { return &s.Filter.Cutoff }),
		"filtres":     intField(0, 127, func(s *project.Sound) *int { return &s.Filter.Resonance }),
		"filtenvamt":  intField(-64, 63, func(s *project.Sound) *int { return &s.Filter.EnvAmount }),

		"lfospeed":      intField(-64, 63, func(s *project.Sound) *int { return &s.Lfo.Speed }),
		"lfofade":       intField(-64, 63, func(s *project.Sound) *int { return &s.Lfo.Fade }),
		"lfostartphase": intField(0, 127, func(s *project.Sound) *int { return &s.Lfo.StartPhase }),
		"lfodepth":      floatField(-128, 127.99, func(s *project.Sound) *float64 { return &s.Lfo.Depth }),

		"samptune":         intField(-24, 24, func(s *project.Sound) *int { return &s.Sample.Tune }),
		"sampfinetune":     intField(-64, 63, func(s *project.Sound) *int { return &s.Sample.FineTune }),
		"sampnumber":       intField(0, 127, func(s *project.Sound) *int { return &s.Sample.Number }),
		"sampbitreduction": intField(0, 127, func(s *project.Sound) *int { return &s.Sample.BitReduction }),
		"sampstart":        floatField(0, 120, func(s *project.Sound) *float64 { return &s.Sample.Start }),
		"sampend":          floatField(0, 120, func(s *project.Sound) *float64 { return &s.Sample.End }),
		"samploopflag":     boolField(func(s *project.Sound) *bool { return &s.Sample.Loop }),
		"samplev":          intField(0, 127, func(s *project.Sound) *int { return &s.Sample.Level }),

		"velmodamt":      intSlots(4, -128, 127, func(s *project.Sound, i int) *int { return &s.VelMod[i].Amount }),
		"atmodamt":       intSlots(4, -128, 127, func(s *project.Sound, i int) *int { return &s.AtMod[i].Amount }),
		"envresetfilter": boolField(func(s *project.Sound) *bool { return &s.EnvResetFilter }),
		"veltovol":       boolField(func(s *project.Sound) *bool { return &s.VelocityToVol }),
		"legacyfxsend":   boolField(func(s *project.Sound) *bool { return &s.LegacyFxSend }),
	},
	enums: map[string]enumField[project.Sound]{
		"machinetype":   enumOf(project.MachineType, func(s *project.Sound) *string { return &s.MachineType }),
		"lfodest":       enumOf(project.LfoDest, func(s *project.Sound) *string { return &s.Lfo.Dest }),
		"velmodtarget":  enumSlots(project.ModTarget, 4, func(s *project.Sound, i int) *string { return &s.VelMod[i].Target }),
		"atmodtarget":   enumSlots(project.ModTarget, 4, func(s *project.Sound, i int) *string { return &s.AtMod[i].Target }),
		"filtertype":    enumOf(project.FilterType, func(s *project.Sound) *string { return &s.Filter.Type }),
		"lfomultiplier": enumOf(project.LfoMultiplier, func(s *project.Sound) *string { return &s.Lfo.Multiplier }),
		"lfowaveform":   enumOf(project.LfoWaveform, func(s *project.Sound) *string { return &s.Lfo.Waveform }),
		"lfomode":       enumOf(project.LfoMode, func(s *project.Sound) *string { return &s.Lfo.Mode }),
		"chromaticmode": enumOf(project.ChromaticMode, func(s *project.Sound) *string { return &s.ChromaticMode }),
	},
	name: func(s *project.Sound) *string { return &s.Name },
}

func soundKindField(k project.SoundKind) field[project.Sound] {
	return readOnly(boolKind, func(s *project.Sound) value.Value { return value.Bool(s.Kind == k) })
}

func soundCommand(op parse.Op, snd *project.Sound, c *cursor) (Response, error) {
	return soundTable.run(op, snd, c, func(key string, v value.Value) Response {
		return Common(snd.Index, key, v)
	})
}
