package parse

import (
	"slices"
	"strings"
)

// Context is a position in the command grammar that has its own closed set
// of identifier and enum names.
type Context int

const (
	PatternContext Context = iota
	TrackContext
	TrigContext
	PlockContext
	KitContext
	KitElementContext
	SoundContext
	GlobalContext
	SettingsContext
)

func (c Context) String() string {
	return [...]string{"pattern", "track", "trig", "plock", "kit", "kit element", "sound", "global", "settings"}[c]
}

// Names is the identifier and enum vocabulary of one context
type Names struct {
	Identifiers []string
	Enums       []string
}

var patternNames = Names{
	Identifiers: []string{"iswb", "index", "version", "masterlen", "masterchg", "kitnumber", "swingamount", "globalquantize", "patternbpm"},
	Enums:       []string{"speed", "timemode"},
}

var trackNames = Names{
	Identifiers: []string{
		"iswb", "parentindex", "index", "deftrignote", "deftrigvel", "deftrigprob", "steps",
		"quantizeamount", "sendsmidi", "euc", "pl1", "pl2", "ro1", "ro2", "tro",
	},
	Enums: []string{"rootnote", "padscale", "defaultnotelen"},
}

var trigNames = Names{
	Identifiers: []string{"enable", "retrig", "mute", "accent", "swing", "slide", "note", "vel", "retrigveloffset", "soundlock"},
	Enums:       []string{"microtime", "notelen", "retriglen", "retrigrate", "trigcondition"},
}

var kitNames = Names{
	Identifiers: []string{
		"version", "index", "name", "ctrlinmod1amt", "ctrlinmod2amt",
		"fxdeltime", "fxdelpingpong", "fxdelstereowidth", "fxdelfeedback", "fxdelhpf", "fxdellpf", "fxdelrevsend", "fxdellev",
		"fxrevpredel", "fxrevdecay", "fxrevfreq", "fxrevgain", "fxrevhpf", "fxrevlpf", "fxrevlev",
		"fxcompthr", "fxcompgain", "fxcompmix", "fxcomplev",
		"fxlfospeed", "fxlfofade", "fxlfostartphase", "fxlfodepth",
		"fxdistdov", "fxdistdelpost", "fxdistrevpost", "fxdistamt", "fxdistsym",
	},
	Enums: []string{
		"ctrlinmod1target", "ctrlinmod2target", "fxlfodest", "fxdeltimeonthegrid",
		"fxcompattack", "fxcomprelease", "fxcompratio", "fxcompsidechaineq",
	},
}

// Kit elements address one of the kit's per track settings, or one of its sounds.
var kitElements = []string{"tracklevel", "trackretrigrate", "trackretriglen", "trackretrigveloffset", "trackretrigalwayson", "sound"}

var kitElementNames = Names{
	Enums: []string{"trackretrigrate", "trackretriglen"},
}

var soundNames = Names{
	Identifiers: []string{
		"version", "index", "name", "ispool", "iskit", "iswb", "kitnumber", "type", "accentlev",
		"ampattack", "amphold", "ampdecay", "ampoverdrive", "ampdelsend", "amprevsend", "amppan", "amplev",
		"filtattack", "filthold", "filtdecay", "filtrelease", "filtcutoff", "filtres", "filtenvamt",
		"lfospeed", "lfofade", "lfostartphase", "lfodepth",
		"samptune", "sampfinetune", "sampnumber", "sampbitreduction", "sampstart", "sampend", "samploopflag", "samplev",
		"velmodamt", "atmodamt", "envresetfilter", "veltovol", "legacyfxsend",
	},
	Enums: []string{
		"machinetype", "lfodest", "velmodtarget", "atmodtarget", "filtertype",
		"lfomultiplier", "lfowaveform", "lfomode", "chromaticmode",
	},
}

var globalNames = Names{
	Identifiers: []string{
		"version", "index", "iswb", "kitreloadonchg", "quantizeliverec", "autotrackswitch", "routetomain", "sendtofx",
		"clockreceive", "clocksend", "transportreceive", "transportsend", "pgmchangereceive", "pgmchangesend",
		"receivenotes", "receiveccnrpn", "turbospeed", "metronomeactive", "metronomeprerollbars", "metronomelev",
	},
	Enums: []string{
		"metronometimesig", "usbin", "usbout", "usbtomaindb", "outportfunction", "thruportfunction",
		"inputfrom", "outputto", "paramoutput", "paddest", "pressuredest", "encoderdest", "mutedest",
		"portsoutputchannel", "autochannel", "trackchannels", "trackfxchannel", "pgmchangeinchannel",
		"pgmchangeoutchannel", "performancechannel",
	},
}

var settingsNames = Names{
	Identifiers: []string{
		"version", "projectbpm", "selectedtrack", "selectedpage", "mute", "unmute",
		"fixedvelocity", "fixedvelocityamt", "samplerecorderthr", "samplerecordermon",
	},
	Enums: []string{
		"parametermenuitem", "fxparametermenuitem", "sequencermode", "patternmode",
		"samplerecordersrc", "samplerecorderrecordinglen",
	},
}

// Prefixes of the kit and sound identifiers that a trig may lock
var (
	kitLockPrefixes   = []string{"fxdel", "fxrev", "fxcomp", "fxlfo"}
	soundLockPrefixes = []string{"amp", "filt", "lfo", "samp"}
	lockableEnums     = []string{
		"fxcompattack", "fxcomprelease", "fxcompratio", "fxcompsidechaineq", "fxlfodest",
		"lfodest", "filtertype", "lfomultiplier", "lfowaveform", "lfomode",
	}
)

var plockNames = Names{
	Identifiers: append(withPrefix(kitNames.Identifiers, kitLockPrefixes), withPrefix(soundNames.Identifiers, soundLockPrefixes)...),
	Enums:       lockableEnums,
}

func withPrefix(names, prefixes []string) []string {
	var out []string
	for _, n := range names {
		for _, p := range prefixes {
			if strings.HasPrefix(n, p) {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

var contextNames = map[Context]*Names{
	PatternContext:    &patternNames,
	TrackContext:      &trackNames,
	TrigContext:       &trigNames,
	PlockContext:      &plockNames,
	KitContext:        &kitNames,
	KitElementContext: &kitElementNames,
	SoundContext:      &soundNames,
	GlobalContext:     &globalNames,
	SettingsContext:   &settingsNames,
}

// NamesOf returns a copy of the vocabulary of a context
func NamesOf(c Context) Names {
	n := contextNames[c]
	return Names{
		Identifiers: slices.Clone(n.Identifiers),
		Enums:       slices.Clone(n.Enums),
	}
}

// KitElements returns the kit element keywords
func KitElements() []string { return slices.Clone(kitElements) }

func isIdentifier(c Context, s string) bool {
	return slices.Contains(contextNames[c].Identifiers, s)
}

func isEnum(c Context, s string) bool {
	return slices.Contains(contextNames[c].Enums, s)
}

func isKitElement(s string) bool {
	return slices.Contains(kitElements, s)
}
