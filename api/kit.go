package api

import (
	"go-rytm/parse"
	"go-rytm/project"
	"go-rytm/rytmerr"
	"go-rytm/value"
)

var kitTable = table[project.Kit]{
	fields: map[string]field[project.Kit]{
		"version":       readOnlyInt(func(k *project.Kit) *int { return &k.Version }),
		"index":         readOnlyInt(func(k *project.Kit) *int { return &k.Index }),
		"name":          nameField(func(k *project.Kit) *string { return &k.Name }),
		"ctrlinmod1amt": intField(-128, 127, func(k *project.Kit) *int { return &k.CtrlInMod[0].Amount }),
		"ctrlinmod2amt": intField(-128, 127, func(k *project.Kit) *int { return &k.CtrlInMod[1].Amount }),

		"fxdeltime":        intField(0, 127, func(k *project.Kit) *int { return &k.Delay.Time }),
		"fxdelpingpong":    boolField(func(k *project.Kit) *bool { return &k.Delay.PingPong }),
		"fxdelstereowidth": intField(-64, 63, func(k *project.Kit) *int { return &k.Delay.StereoWidth }),
		"fxdelfeedback":    intField(0, 198, func(k *project.Kit) *int { return &k.Delay.Feedback }),
		"fxdelhpf":         intField(0, 127, func(k *project.Kit) *int { return &k.Delay.HPF }),
		"fxdellpf":         intField(0, 127, func(k *project.Kit) *int { return &k.Delay.LPF }),
		"fxdelrevsend":     intField(0, 127, func(k *project.Kit) *int { return &k.Delay.ReverbSend }),
		"fxdellev":         intField(0, 127, func(k *project.Kit) *int { return &k.Delay.Level }),

		"fxrevpredel": intField(0, 127, func(k *project.Kit) *int { return &k.Reverb.PreDelay }),
		"fxrevdecay":  intField(0, 127, func(k *project.Kit) *int { return &k.Reverb.Decay }),
		"fxrevfreq":   intField(0, 127, func(k *project.Kit) *int { return &k.Reverb.Freq }),
		"fxrevgain":   intField(0, 127, func(k *project.Kit) *int { return &k.Reverb.Gain }),
		"fxrevhpf":    intField(0, 127, func(k *project.Kit) *int { return &k.Reverb.HPF }),
		"fxrevlpf":    intField(0, 127, func(k *project.Kit) *int { return &k.Reverb.LPF }),
		"fxrevlev":    intField(0, 127, func(k *project.Kit) *int { return &k.Reverb.Level }),

		"fxcompthr":  intField(0, 127, func(k *project.Kit) *int { return &k.Compressor.Threshold }),
		"fxcompgain": intField(0, 127, func(k *project.Kit) *int { return &k.Compressor.Gain }),
		"fxcompmix":  intField(0, 127, func(k *project.Kit) *int { return &k.Compressor.Mix }),
		"fxcomplev":  intField(0, 127, func(k *project.Kit) *int { return &k.Compressor.Level }),

		"fxlfospeed":      intField(-64, 63, func(k *project.Kit) *int { return &k.FxLfo.Speed }),
		"fxlfofade":       intField(-64, 63, func(k *project.Kit) *int { return &k.FxLfo.Fade }),
		"fxlfostartphase": intField(0, 127, func(k *project.Kit) *int { return &k.FxLfo.StartPhase }),
		"fxlfodepth":      floatField(-128, 127.99, func(k *project.Kit) *float64 { return &k.FxLfo.Depth }),

		"fxdistdov":     intField(0, 127, func(k *project.Kit) *int { return &k.Distortion.DelayOverdrive }),
		"fxdistdelpost": boolField(func(k *project.Kit) *bool { return &k.Distortion.DelayPost }),
		"fxdistrevpost": boolField(func(k *project.Kit) *bool { return &k.Distortion.ReverbPost }),
		"fxdistamt":     intField(0, 127, func(k *project.Kit) *int { return &k.Distortion.Amount }),
		"fxdistsym":     intField(-64, 63, func(k *project.Kit) *int { return &k.Distortion.Symmetry }),
	},
	enums: map[string]enumField[project.Kit]{
		"ctrlinmod1target": enumSlots(project.CtrlInModTarget, 4, func(k *project.Kit, i int) *string { return &k.CtrlInMod[0].Targets[i] }),
		"ctrlinmod2target": enumSlots(project.CtrlInModTarget, 4, func(k *project.Kit, i int) *string { return &k.CtrlInMod[1].Targets[i] }),

		"fxlfodest":          enumOf(project.FxLfoDest, func(k *project.Kit) *string { return &k.FxLfo.Dest }),
		"fxdeltimeonthegrid": enumOf(project.FxDelTimeOnTheGrid, func(k *project.Kit) *string { return &k.Delay.TimeOnGrid }),
		"fxcompattack":       enumOf(project.FxCompAttack, func(k *project.Kit) *string { return &k.Compressor.Attack }),
		"fxcomprelease":      enumOf(project.FxCompRelease, func(k *project.Kit) *string { return &k.Compressor.Release }),
		"fxcompratio":        enumOf(project.FxCompRatio, func(k *project.Kit) *string { return &k.Compressor.Ratio }),
		"fxcompsidechaineq":  enumOf(project.FxCompSidechainEq, func(k *project.Kit) *string { return &k.Compressor.SidechainEq }),
	},
	name: func(k *project.Kit) *string { return &k.Name },
}

// Kit elements are addressed by element and track index. Numeric elements
// take a parameter, enum elements take an enum of the same name.
var kitElementFields = map[string]field[project.KitTrack]{
	"tracklevel":           intField(0, 127, func(t *project.KitTrack) *int { return &t.Level }),
	"trackretrigveloffset": intField(-128, 127, func(t *project.KitTrack) *int { return &t.RetrigVelocityOffset }),
	"trackretrigalwayson":  boolField(func(t *project.KitTrack) *bool { return &t.RetrigAlwaysOn }),
}

var kitElementEnums = map[string]enumField[project.KitTrack]{
	"trackretrigrate": enumOf(project.TrackRetrigRate, func(t *project.KitTrack) *string { return &t.RetrigRate }),
	"trackretriglen":  enumOf(project.RetrigLength, func(t *project.KitTrack) *string { return &t.RetrigLength }),
}

func kitCommand(op parse.Op, kit *project.Kit, c *cursor) (Response, error) {
	el, ok := c.take(parse.TokElement)
	if !ok {
		return kitTable.run(op, kit, c, func(key string, v value.Value) Response {
			return Common(kit.Index, key, v)
		})
	}

	if el.Name == "sound" {
		si, _ := c.take(parse.TokSoundIndex)
		return soundTable.run(op, &kit.Sounds[si.Index], c, func(key string, v value.Value) Response {
			return KitElement(kit.Index, si.Index, key, v)
		})
	}

	ei, _ := c.take(parse.TokElementIndex)
	return kitElementCommand(op, kit, el.Name, ei.Index, c)
}

func kitElementCommand(op parse.Op, kit *project.Kit, element string, index int, c *cursor) (Response, error) {
	track := &kit.Tracks[index]
	f, isField := kitElementFields[element]
	e, isEnum := kitElementEnums[element]
	if !isField && !isEnum {
		return Response{}, rytmerr.InvalidIdentifier(element)
	}

	if op == parse.Get {
		if _, more := c.next(); more {
			return Response{}, rytmerr.GetFormat("%s <index> does not take anything after the index.", element)
		}
		var v value.Value
		if isField {
			v = f.get(track, 0)
		} else {
			v = value.Symbol(e.get(track, 0))
		}
		return KitElement(kit.Index, index, element, v), nil
	}

	if isField {
		params := c.params()
		if _, ok := c.take(parse.TokEnum); ok || len(params) == 0 {
			return Response{}, rytmerr.SetFormat("%s requires a number. Format: %s <index> <value>", element, element)
		}
		if err := f.write(track, element, params); err != nil {
			return Response{}, err
		}
		return Ok(), nil
	}

	t, ok := c.take(parse.TokEnum)
	if !ok || t.Name != element {
		return Response{}, rytmerr.SetFormat("%s requires an enum. Format: %s <index> %s:<variant>", element, element, element)
	}
	if err := e.write(track, element, t.Variant, c.params()); err != nil {
		return Response{}, err
	}
	return Ok(), nil
}
