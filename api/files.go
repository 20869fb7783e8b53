package api

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go-rytm/parse"
	"go-rytm/project"
	"go-rytm/rytmerr"
	"go-rytm/sysex"
	"go-rytm/value"
)

const sysexExt = ".sysex"

func invalidFileType() error {
	return rytmerr.File("File Error: Invalid file type. Only .rytm or .sysex files are allowed.")
}

// Load replaces the tree with a .rytm project or applies a .sysex dump
func (e *Engine) Load(ctx context.Context, path string) error {
	switch filepath.Ext(path) {
	case project.Ext:
		p, err := project.ReadFile(path)
		if err != nil {
			return rytmerr.File("File Error: Could not load %s: %v", path, err)
		}
		if err := CheckProject(p); err != nil {
			return err
		}
		if err := e.lock(ctx); err != nil {
			return err
		}
		e.project = p
		e.mu.Unlock()
		e.log.Info("project loaded", "path", path)
		return nil

	case sysexExt:
		data, err := os.ReadFile(path)
		if err != nil {
			return rytmerr.File("File Error: Could not load %s: %v", path, err)
		}
		dump, err := e.codec.Decode(data)
		if err != nil {
			return err
		}
		if err := e.lock(ctx); err != nil {
			return err
		}
		defer e.mu.Unlock()
		if err := sysex.Apply(e.project, dump, verifyObject); err != nil {
			return err
		}
		e.log.Info("sysex file applied", "path", path, "object", dump.Selector.String())
		return nil
	}
	return invalidFileType()
}

// Save writes the whole tree to a .rytm file. A .sysex file holds a single
// object picked by target, for example "kit 1".
func (e *Engine) Save(ctx context.Context, path string, target value.List) error {
	switch filepath.Ext(path) {
	case project.Ext:
		if len(target) > 0 {
			return rytmerr.File("Save Error: A .rytm file holds the whole project and takes no target.")
		}
		if err := e.lock(ctx); err != nil {
			return err
		}
		defer e.mu.Unlock()
		if err := project.WriteFile(path, e.project); err != nil {
			return rytmerr.File("File Error: Could not save %s: %v", path, err)
		}
		return nil

	case sysexExt:
		sel, err := saveTarget(target)
		if err != nil {
			return err
		}
		frame, err := e.encode(ctx, sel)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, frame, 0644); err != nil {
			return rytmerr.File("File Error: Could not save %s: %v", path, err)
		}
		return nil
	}
	return invalidFileType()
}

func saveTarget(target value.List) (parse.Selector, error) {
	if len(target) == 0 {
		return parse.Selector{}, rytmerr.File("Save Error: A .sysex file needs a target. Example: save kit 1 my_kit.sysex")
	}
	sel, err := parse.ResolveList(target)
	var r *rytmerr.IndexRangeError
	if errors.As(err, &r) {
		return parse.Selector{}, rytmerr.File("Save Error: Index out of bounds. %s index must be between %d and %d.", target[0], r.Min, r.Max)
	}
	return sel, err
}
