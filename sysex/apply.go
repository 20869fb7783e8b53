package sysex

import (
	"encoding/json"

	"go-rytm/parse"
	"go-rytm/project"
	"go-rytm/rytmerr"
)

// object returns the selected object of p
func object(p *project.Project, sel parse.Selector) (any, error) {
	switch sel.Type {
	case parse.Pattern:
		return &p.Patterns[sel.Index], nil
	case parse.PatternWB:
		return &p.WorkBuffer.Pattern, nil
	case parse.Kit:
		return &p.Kits[sel.Index], nil
	case parse.KitWB:
		return &p.WorkBuffer.Kit, nil
	case parse.Sound:
		return &p.Sounds[sel.Index], nil
	case parse.SoundWB:
		return &p.WorkBuffer.Kit.Sounds[sel.Index], nil
	case parse.Global:
		return &p.Globals[sel.Index], nil
	case parse.GlobalWB:
		return &p.WorkBuffer.Global, nil
	case parse.Settings:
		return &p.Settings, nil
	}
	return nil, rytmerr.CodecMsg("no object for %s", sel.Type)
}

// Check rejects a decoded object before it is stored. It receives a pointer
// to a Pattern, Kit, Sound, Global or Settings.
type Check func(obj any) error

// Apply stores a decoded dump in the slot its selector names. The object
// starts from defaults so fields missing from the dump keep their default,
// and its placement fields always follow the slot. When check is set the
// tree is only changed if the object passes it.
func Apply(p *project.Project, d Dump, check Check) error {
	sel := d.Selector
	store, err := decode(p, sel, d.Object)
	if err != nil {
		return err
	}
	if check != nil {
		if err := check(store.obj); err != nil {
			return rytmerr.Codec(err)
		}
	}
	store.commit()
	return nil
}

// staged is a decoded object waiting to replace its slot
type staged struct {
	obj    any
	commit func()
}

func decode(p *project.Project, sel parse.Selector, data []byte) (staged, error) {
	switch sel.Type {
	case parse.Pattern, parse.PatternWB:
		wb := sel.Type == parse.PatternWB
		pat := project.NewPattern(sel.Index, wb)
		if err := unmarshal(data, &pat); err != nil {
			return staged{}, err
		}
		pat.Place(sel.Index, wb)
		return staged{&pat, func() {
			if wb {
				p.WorkBuffer.Pattern = pat
			} else {
				p.Patterns[sel.Index] = pat
			}
		}}, nil

	case parse.Kit, parse.KitWB:
		wb := sel.Type == parse.KitWB
		kit := project.NewKit(sel.Index, wb)
		if err := unmarshal(data, &kit); err != nil {
			return staged{}, err
		}
		kit.Place(sel.Index, wb)
		return staged{&kit, func() {
			if wb {
				p.WorkBuffer.Kit = kit
			} else {
				p.Kits[sel.Index] = kit
			}
		}}, nil

	case parse.Sound:
		snd := project.NewSound(sel.Index, project.SoundPool)
		if err := unmarshal(data, &snd); err != nil {
			return staged{}, err
		}
		snd.Place(sel.Index, project.SoundPool, project.NoKit)
		return staged{&snd, func() { p.Sounds[sel.Index] = snd }}, nil

	case parse.SoundWB:
		snd := project.NewSound(sel.Index, project.SoundWorkBuffer)
		if err := unmarshal(data, &snd); err != nil {
			return staged{}, err
		}
		snd.Place(sel.Index, project.SoundWorkBuffer, p.WorkBuffer.Kit.Index)
		return staged{&snd, func() { p.WorkBuffer.Kit.Sounds[sel.Index] = snd }}, nil

	case parse.Global, parse.GlobalWB:
		wb := sel.Type == parse.GlobalWB
		g := project.NewGlobal(sel.Index, wb)
		if err := unmarshal(data, &g); err != nil {
			return staged{}, err
		}
		g.Place(sel.Index, wb)
		return staged{&g, func() {
			if wb {
				p.WorkBuffer.Global = g
			} else {
				p.Globals[sel.Index] = g
			}
		}}, nil

	case parse.Settings:
		s := project.NewSettings()
		if err := unmarshal(data, &s); err != nil {
			return staged{}, err
		}
		return staged{&s, func() { p.Settings = s }}, nil
	}
	return staged{}, rytmerr.CodecMsg("no object for %s", sel.Type)
}

func unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return rytmerr.Codec(err)
	}
	return nil
}
