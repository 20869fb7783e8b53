package api

import (
	"go-rytm/parse"
	"go-rytm/project"
	"go-rytm/value"
)

func channel(ptr func(*project.Global) *string) enumField[project.Global] {
	return enumOf(project.MidiChannel, ptr)
}

var globalTable = table[project.Global]{
	fields: map[string]field[project.Global]{
		"version":         readOnlyInt(func(g *project.Global) *int { return &g.Version }),
		"index":           readOnlyInt(func(g *project.Global) *int { return &g.Index }),
		"iswb":            readOnlyBool(func(g *project.Global) *bool { return &g.IsWorkBuffer }),
		"kitreloadonchg":  boolField(func(g *project.Global) *bool { return &g.KitReloadOnChange }),
		"quantizeliverec": boolField(func(g *project.Global) *bool { return &g.QuantizeLiveRec }),
		"autotrackswitch": boolField(func(g *project.Global) *bool { return &g.AutoTrackSwitch }),

		"routetomain": boolSlots(project.NumKitSounds, func(g *project.Global, i int) *bool { return &g.RouteToMain[i] }),
		"sendtofx":    boolSlots(project.NumKitSounds, func(g *project.Global, i int) *bool { return &g.SendToFx[i] }),

		"clockreceive":     boolField(func(g *project.Global) *bool { return &g.Sync.ClockReceive }),
		"clocksend":        boolField(func(g *project.Global) *bool { return &g.Sync.ClockSend }),
		"transportreceive": boolField(func(g *project.Global) *bool { return &g.Sync.TransportReceive }),
		"transportsend":    boolField(func(g *project.Global) *bool { return &g.Sync.TransportSend }),
		"pgmchangereceive": boolField(func(g *project.Global) *bool { return &g.Sync.PgmChangeReceive }),
		"pgmchangesend":    boolField(func(g *project.Global) *bool { return &g.Sync.PgmChangeSend }),
		"receivenotes":     boolField(func(g *project.Global) *bool { return &g.Sync.ReceiveNotes }),
		"receiveccnrpn":    boolField(func(g *project.Global) *bool { return &g.Sync.ReceiveCcNrpn }),

		// turbo speed is reported by the device, never written
		"turbospeed": readOnlyBool(func(g *project.Global) *bool { return &g.TurboSpeed }),

		"metronomeactive":      boolField(func(g *project.Global) *bool { return &g.Metronome.Active }),
		"metronomeprerollbars": intField(0, 16, func(g *project.Global) *int { return &g.Metronome.PrerollBars }),
		"metronomelev":         intField(0, 127, func(g *project.Global) *int { return &g.Metronome.Level }),
	},
	enums: map[string]enumField[project.Global]{
		"metronometimesig": enumOf(project.MetronomeTimeSig, func(g *project.Global) *string { return &g.Metronome.TimeSig }),
		"usbin":            enumOf(project.UsbIn, func(g *project.Global) *string { return &g.Ports.UsbIn }),
		"usbout":           enumOf(project.UsbOut, func(g *project.Global) *string { return &g.Ports.UsbOut }),
		"usbtomaindb":      enumOf(project.UsbToMainDb, func(g *project.Global) *string { return &g.Ports.UsbToMainDb }),
		"outportfunction":  enumOf(project.PortFunction, func(g *project.Global) *string { return &g.Ports.OutPort }),
		"thruportfunction": enumOf(project.PortFunction, func(g *project.Global) *string { return &g.Ports.ThruPort }),
		"inputfrom":        enumOf(project.InputFrom, func(g *project.Global) *string { return &g.Ports.InputFrom }),
		"outputto":         enumOf(project.OutputTo, func(g *project.Global) *string { return &g.Ports.OutputTo }),
		"paramoutput":      enumOf(project.ParamOutput, func(g *project.Global) *string { return &g.Ports.ParamOutput }),
		"paddest":          enumOf(project.PadDest, func(g *project.Global) *string { return &g.Ports.PadDest }),
		"pressuredest":     enumOf(project.PressureDest, func(g *project.Global) *string { return &g.Ports.PressureDest }),
		"encoderdest":      enumOf(project.EncoderDest, func(g *project.Global) *string { return &g.Ports.EncoderDest }),
		"mutedest":         enumOf(project.MuteDest, func(g *project.Global) *string { return &g.Ports.MuteDest }),

		"portsoutputchannel":  channel(func(g *project.Global) *string { return &g.Channels.PortsOutput }),
		"autochannel":         enumOf(project.AutoChannel, func(g *project.Global) *string { return &g.Channels.Auto }),
		"trackchannels":       enumSlots(project.MidiChannel, project.NumKitSounds, func(g *project.Global, i int) *string { return &g.Channels.Tracks[i] }),
		"trackfxchannel":      channel(func(g *project.Global) *string { return &g.Channels.TrackFx }),
		"pgmchangeinchannel":  channel(func(g *project.Global) *string { return &g.Channels.PgmChangeIn }),
		"pgmchangeoutchannel": channel(func(g *project.Global) *string { return &g.Channels.PgmChangeOut }),
		"performancechannel":  channel(func(g *project.Global) *string { return &g.Channels.Performance }),
	},
}

func globalCommand(op parse.Op, g *project.Global, c *cursor) (Response, error) {
	return globalTable.run(op, g, c, func(key string, v value.Value) Response {
		return Common(g.Index, key, v)
	})
}
