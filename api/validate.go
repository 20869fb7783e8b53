package api

import (
	"fmt"
	"maps"
	"slices"

	"go-rytm/project"
	"go-rytm/rytmerr"
	"go-rytm/value"
)

// Objects that arrive whole, from a dump or a project file, pass the same
// descriptors a set command does before they reach the tree.

// verify fails when a stored value is one a set of the field would reject.
// Read-only fields and actions hold whatever the device reports.
func (f field[T]) verify(obj *T, name string) error {
	if f.set == nil || f.kind == boolKind {
		return nil
	}
	for slot := range max(f.slots, 1) {
		n, err := f.get(obj, slot).AsNumber()
		if err != nil {
			// a symbol such as unset
			continue
		}
		if _, err := f.check(name, n); err != nil {
			return err
		}
	}
	return nil
}

func (f enumField[T]) verify(obj *T) error {
	for slot := range max(f.slots, 1) {
		if err := f.enum.Check(f.get(obj, slot)); err != nil {
			return err
		}
	}
	return nil
}

func (tb table[T]) verify(obj *T) error {
	for _, name := range slices.Sorted(maps.Keys(tb.fields)) {
		if err := tb.fields[name].verify(obj, name); err != nil {
			return err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(tb.enums)) {
		if err := tb.enums[name].verify(obj); err != nil {
			return err
		}
	}
	if tb.name != nil {
		if n := *tb.name(obj); n != "" {
			return checkName(n)
		}
	}
	return nil
}

var kitTrackTable = table[project.KitTrack]{fields: kitElementFields, enums: kitElementEnums}

func verifyPattern(p *project.Pattern) error {
	if err := patternTable.verify(p); err != nil {
		return err
	}
	for i := range p.Tracks {
		t := &p.Tracks[i]
		if err := trackTable.verify(t); err != nil {
			return fmt.Errorf("track %d: %w", i, err)
		}
		for j := range t.Trigs {
			if err := verifyTrig(&t.Trigs[j]); err != nil {
				return fmt.Errorf("track %d trig %d: %w", i, j, err)
			}
		}
	}
	return nil
}

func verifyTrig(trig *project.Trig) error {
	if err := trigTable.verify(trig); err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(trig.Plocks)) {
		lock := trig.Plocks[name]
		if enum, ok := lockableEnums[name]; ok {
			if err := enum.Check(lock.Variant); err != nil {
				return err
			}
			continue
		}
		spec, ok := lockableFields[name]
		if !ok {
			return rytmerr.InvalidIdentifier(name)
		}
		n := value.IntNumber(int64(lock.Number))
		if lock.IsFloat {
			n = value.FloatNumber(lock.Number)
		}
		if _, err := spec.check(name, n); err != nil {
			return err
		}
	}
	return nil
}

func verifyKit(k *project.Kit) error {
	if err := kitTable.verify(k); err != nil {
		return err
	}
	for i := range k.Tracks {
		if err := kitTrackTable.verify(&k.Tracks[i]); err != nil {
			return fmt.Errorf("track %d: %w", i, err)
		}
	}
	for i := range k.Sounds {
		if err := soundTable.verify(&k.Sounds[i]); err != nil {
			return fmt.Errorf("sound %d: %w", i, err)
		}
	}
	return nil
}

// verifyObject is the check applied to every decoded dump
func verifyObject(obj any) error {
	switch o := obj.(type) {
	case *project.Pattern:
		return verifyPattern(o)
	case *project.Kit:
		return verifyKit(o)
	case *project.Sound:
		return soundTable.verify(o)
	case *project.Global:
		return globalTable.verify(o)
	case *project.Settings:
		return settingsTable.verify(o)
	}
	return fmt.Errorf("no descriptors for %T", obj)
}

// CheckProject verifies every object of p and fails with a codec error
// naming the first object that holds a value no set command would accept
func CheckProject(p *project.Project) error {
	check := func(what string, index int, obj any) error {
		if err := verifyObject(obj); err != nil {
			return rytmerr.Codec(fmt.Errorf("%s %d: %w", what, index, err))
		}
		return nil
	}
	for i := range p.Patterns {
		if err := check("pattern", i, &p.Patterns[i]); err != nil {
			return err
		}
	}
	for i := range p.Kits {
		if err := check("kit", i, &p.Kits[i]); err != nil {
			return err
		}
	}
	for i := range p.Sounds {
		if err := check("sound", i, &p.Sounds[i]); err != nil {
			return err
		}
	}
	for i := range p.Globals {
		if err := check("global", i, &p.Globals[i]); err != nil {
			return err
		}
	}
	wb := &p.WorkBuffer
	if err := check("pattern_wb", wb.Pattern.Index, &wb.Pattern); err != nil {
		return err
	}
	if err := check("kit_wb", wb.Kit.Index, &wb.Kit); err != nil {
		return err
	}
	if err := check("global_wb", wb.Global.Index, &wb.Global); err != nil {
		return err
	}
	if err := verifyObject(&p.Settings); err != nil {
		return rytmerr.Codec(fmt.Errorf("settings: %w", err))
	}
	return nil
}
