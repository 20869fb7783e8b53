package project

import (
	"fmt"
	"slices"

	"go-rytm/rytmerr"
)

// Enum is a closed set of named variants
type Enum struct {
	Name     string
	Variants []string
}

func newEnum(name string, variants ...string) Enum {
	return Enum{Name: name, Variants: variants}
}

func (e Enum) Contains(v string) bool { return slices.Contains(e.Variants, v) }

// Check fails with an InvalidEnumValue error when v is not a variant
func (e Enum) Check(v string) error {
	if !e.Contains(v) {
		return rytmerr.InvalidEnumValue(e.Name, v, e.Variants)
	}
	return nil
}

func (e Enum) Default() string { return e.Variants[0] }

func numbered(prefix string, from, to int, suffix string) []string {
	var out []string
	for i := from; i <= to; i++ {
		out = append(out, fmt.Sprintf("%s%d%s", prefix, i, suffix))
	}
	return out
}

// Pattern and trig timing
var (
	Speed    = newEnum("speed", "1x", "2x", "3/2x", "3/4x", "1/2x", "1/4x", "1/8x")
	TimeMode = newEnum("timemode", "normal", "advanced")

	RootNote = newEnum("rootnote", "c", "c#", "d", "d#", "e", "f", "f#", "g", "g#", "a", "a#", "b")
	PadScale = newEnum("padscale",
		"chromatic", "ionian", "dorian", "phrygian", "lydian", "mixolydian", "aeolian", "locrian",
		"pentatonicminor", "pentatonicmajor", "melodicminor", "harmonicminor", "wholetone", "blues",
		"combominor", "persian", "iwato", "insen", "hirajoshi", "pelog", "phrygiandominant",
		"wholehalfdiminished", "halfwholediminished", "spanish", "majorlocrian", "superlocrian",
		"dorianb2", "lydianaugmented", "lydiandominant", "doubleharmonicmajor", "lydianb3b7",
		"dorianb5", "kumoi",
	)
	NoteLength = newEnum("notelen",
		"0.125", "0.188", "1/64", "0.313", "0.375", "0.438", "1/32", "0.563", "0.625", "0.688",
		"0.75", "0.813", "0.875", "0.938", "1/16", "1.063", "1.125", "1.188", "1.25", "1.313",
		"1.375", "1.438", "1.5", "1.563", "1.625", "1.688", "1.75", "1.813", "1.875", "1.938",
		"1/8", "2.125", "2.25", "2.375", "2.5", "2.625", "2.75", "2.875", "3", "3.125",
		"1/4", "4.5", "5", "5.5", "6", "7", "1/2", "10", "12", "14", "1/1", "20", "24", "28",
		"2/1", "40", "48", "56", "4/1", "inf", "unset",
	)
	MicroTime  = newEnum("microtime", append(append(countdown("-", 23, "/384"), "0"), numbered("+", 1, 23, "/384")...)...)
	RetrigRate = newEnum("retrigrate",
		"1/1", "1/2", "1/3", "1/4", "1/5", "1/6", "1/8", "1/10", "1/12", "1/16", "1/20",
		"1/24", "1/32", "1/40", "1/48", "1/64", "1/80",
	)
	TrigCondition = newEnum("trigcondition", append([]string{
		"none", "fill", "notfill", "pre", "notpre", "nei", "notnei", "1st", "not1st",
		"1%", "3%", "4%", "6%", "9%", "13%", "19%", "25%", "33%", "41%", "50%",
		"59%", "67%", "75%", "81%", "87%", "91%", "94%", "96%", "98%", "99%",
	}, ratioConditions()...)...)
)

func countdown(prefix string, from int, suffix string) []string {
	var out []string
	for i := from; i >= 1; i-- {
		out = append(out, fmt.Sprintf("%s%d%s", prefix, i, suffix))
	}
	return out
}

// ratioConditions returns the A:B conditions from 1:2 up to 8:8
func ratioConditions() []string {
	var out []string
	for b := 2; b <= 8; b++ {
		for a := 1; a <= b; a++ {
			out = append(out, fmt.Sprintf("%d:%d", a, b))
		}
	}
	return out
}

// Kit
var (
	CtrlInModTarget = newEnum("ctrlinmodtarget",
		"unset", "lfomultiplier", "lfowaveform", "lfotrigmode", "lfospeed", "lfofade", "lfophase", "lfodepth",
		"sampletune", "samplefinetune", "sampleslice", "samplebitreduction", "samplestart", "sampleend",
		"sampleloop", "samplelevel", "filterenvelope", "filterattack", "filterdecay", "filtersustain",
		"filterrelease", "filterfrequency", "filterresonance", "ampattack", "amphold", "ampdecay",
		"ampoverdrive", "ampvolume", "amppan", "ampaccent", "ampdelaysend", "ampreverbsend",
	)
	FxLfoDest = newEnum("fxlfodest",
		"unset", "delaytime", "delaypingpong", "delaystereowidth", "delayfeedback", "delayhpf", "delaylpf",
		"delayreverbsend", "delaylevel", "reverbpredelay", "reverbdecay", "reverbshelvingfreq",
		"reverbshelvinggain", "reverbhpf", "reverblpf", "reverblevel", "distortionamount",
		"distortionsymmetry", "compthreshold", "compattack", "comprelease", "compratio",
		"compsidechaineq", "compmakeupgain", "compdrywetmix", "complevel",
	)
	FxDelTimeOnTheGrid = newEnum("fxdeltimeonthegrid",
		"128th", "64th", "64thtriplet", "64thdotted", "32nd", "32ndtriplet", "32nddotted",
		"16th", "16thtriplet", "16thdotted", "8th", "8thtriplet", "8thdotted",
		"quarter", "quartertriplet", "quarterdotted", "half", "halftriplet", "halfdotted", "whole",
	)
	FxCompAttack      = newEnum("fxcompattack", "0.03", "0.1", "0.3", "1", "3", "10", "30")
	FxCompRelease     = newEnum("fxcomprelease", "0.1", "0.2", "0.4", "0.6", "1", "2", "a1", "a2")
	FxCompRatio       = newEnum("fxcompratio", "1:2", "1:4", "1:8", "max")
	FxCompSidechainEq = newEnum("fxcompsidechaineq", "off", "lpf", "hpf", "hit")
	RetrigLength      = newEnum("trackretriglen", NoteLength.Variants...)
	TrackRetrigRate   = newEnum("trackretrigrate", RetrigRate.Variants...)
)

// Sound
var (
	MachineType = newEnum("machinetype",
		"bdhard", "bdclassic", "sdhard", "sdclassic", "rsclassic", "cpclassic", "btclassic",
		"xtclassic", "chclassic", "ohclassic", "cyclassic", "cbclassic", "bdfm", "sdfm",
		"unset", "noisegen", "impulse", "chmetallic", "ohmetallic", "cymetallic", "cbmetallic",
		"bdplastic", "bdsilky", "sdnatural", "hhbasic", "cybasic", "bdsharp", "disable",
		"sydualvco", "sychip", "bdacoustic", "sdacoustic", "syraw", "hhlab",
	)
	LfoDest = newEnum("lfodest",
		"unset", "synthparam1", "synthparam2", "synthparam3", "synthparam4", "synthparam5",
		"synthparam6", "synthparam7", "synthparam8", "sampletune", "samplefinetune", "sampleslice",
		"samplebitreduction", "samplestart", "sampleend", "sampleloop", "samplelevel",
		"filterenvelope", "filterattack", "filterdecay", "filtersustain", "filterrelease",
		"filterfrequency", "filterresonance", "ampattack", "amphold", "ampdecay", "ampoverdrive",
		"ampvolume", "amppan", "ampaccent", "ampdelaysend", "ampreverbsend",
	)
	ModTarget     = newEnum("modtarget", append([]string{"unset", "lfomultiplier", "lfowaveform", "lfotrigmode", "lfospeed", "lfofade", "lfophase", "lfodepth"}, LfoDest.Variants[1:]...)...)
	FilterType    = newEnum("filtertype", "lp2", "lp1", "bp", "hp1", "hp2", "bs", "pk")
	LfoMultiplier = newEnum("lfomultiplier",
		"x1", "x2", "x4", "x8", "x16", "x32", "x64", "x128", "x256", "x512", "x1k", "x2k",
		".1", ".2", ".4", ".8", ".16", ".32", ".64", ".128", ".256", ".512", ".1k", ".2k",
	)
	LfoWaveform   = newEnum("lfowaveform", "tri", "sin", "sqr", "saw", "exp", "rmp", "rnd")
	LfoMode       = newEnum("lfomode", "free", "trg", "hld", "one", "hlf")
	ChromaticMode = newEnum("chromaticmode", "off", "synth", "sample", "synthandsample")
)

// Global
var (
	MetronomeTimeSig = newEnum("metronometimesig", numberedSigs()...)
	UsbIn            = newEnum("usbin", "preset", "audioin")
	UsbOut           = newEnum("usbout", "main", "track", "audioin", "off")
	UsbToMainDb      = newEnum("usbtomaindb", "0", "+6", "+12", "+18")
	PortFunction     = newEnum("portfunction", "midi", "din24", "din48")
	InputFrom        = newEnum("inputfrom", "disabled", "midi", "usb", "midiandusb")
	OutputTo         = newEnum("outputto", "disabled", "midi", "usb", "midiandusb")
	ParamOutput      = newEnum("paramoutput", "nrpn", "cc")
	PadDest          = newEnum("paddest", "int", "intandext", "ext")
	PressureDest     = newEnum("pressuredest", "int", "intandext", "ext")
	EncoderDest      = newEnum("encoderdest", "int", "intandext", "ext")
	MuteDest         = newEnum("mutedest", "int", "intandext", "ext")
	MidiChannel      = newEnum("midichannel", append(numbered("", 1, 16, ""), "off")...)
	AutoChannel      = newEnum("autochannel", append(numbered("", 1, 16, ""), "off")...)
)

func numberedSigs() []string {
	var out []string
	for _, den := range []int{2, 4, 8, 16} {
		for num := 1; num <= 16; num++ {
			out = append(out, fmt.Sprintf("%d/%d", num, den))
		}
	}
	return out
}

// Settings
var (
	ParameterMenuItem    = newEnum("parametermenuitem", "trig", "src", "smpl", "fltr", "amp", "lfo")
	FxParameterMenuItem  = newEnum("fxparametermenuitem", "trig", "delay", "reverb", "dist", "comp", "lfo")
	SequencerMode        = newEnum("sequencermode", "normal", "chain", "song")
	PatternMode          = newEnum("patternmode", "sequential", "directstart", "directjump", "tempjump")
	SampleRecorderSource = newEnum("samplerecordersrc",
		"audl+r", "audl", "audr", "bd", "sd", "rs/cp", "bt", "lt", "mt/ht", "ch/oh", "cy/cb", "main", "usbl", "usbr", "usbl+r",
	)
	SampleRecorderRecordingLength = newEnum("samplerecorderrecordinglen",
		"1step", "2steps", "4steps", "8steps", "16steps", "32steps", "64steps", "128steps", "max",
	)
)
