package project

// Place sets the placement fields of the pattern and its tracks to the slot
// it is stored in
func (p *Pattern) Place(index int, workBuffer bool) {
	p.Index, p.IsWorkBuffer = index, workBuffer
	for i := range p.Tracks {
		t := &p.Tracks[i]
		t.Index, t.PatternIndex, t.IsWorkBuffer = i, index, workBuffer
	}
}

// Place sets the placement fields of the kit and its sounds
func (k *Kit) Place(index int, workBuffer bool) {
	k.Index, k.IsWorkBuffer = index, workBuffer
	kind := SoundKit
	if workBuffer {
		kind = SoundWorkBuffer
	}
	for i := range k.Sounds {
		k.Sounds[i].Place(i, kind, index)
	}
}

func (s *Sound) Place(index int, kind SoundKind, kitNumber int) {
	s.Index, s.Kind, s.KitNumber = index, kind, kitNumber
}

func (g *Global) Place(index int, workBuffer bool) {
	g.Index, g.IsWorkBuffer = index, workBuffer
}

// Place makes every object's placement fields match its slot. Files written
// by hand or by other tools may carry stale indices.
func (p *Project) Place() {
	for i := range p.Patterns {
		p.Patterns[i].Place(i, false)
	}
	for i := range p.Kits {
		p.Kits[i].Place(i, false)
	}
	for i := range p.Sounds {
		p.Sounds[i].Place(i, SoundPool, NoKit)
	}
	for i := range p.Globals {
		p.Globals[i].Place(i, false)
	}
	wb := &p.WorkBuffer
	wb.Pattern.Place(inRange(wb.Pattern.Index, NumPatterns), true)
	wb.Kit.Place(inRange(wb.Kit.Index, NumKits), true)
	wb.Global.Place(inRange(wb.Global.Index, NumGlobals), true)
}

// inRange keeps a work buffer index that names a real slot and falls back
// to 0 otherwise
func inRange(index, n int) int {
	if index < 0 || index >= n {
		return 0
	}
	return index
}
