package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/docopt/docopt-go"
	"golang.org/x/term"

	"go-rytm/app"
	"go-rytm/host"
	"go-rytm/midi"
	"go-rytm/parse"
	"go-rytm/project"
	"go-rytm/script"
	"go-rytm/server"
	"go-rytm/theme"
	"go-rytm/tui"
	"go-rytm/value"
)

const Version = "0.1.0"

const usage = `Analog Rytm control.

Without a command, rytmctl opens the console on a terminal and reads command
lines from stdin otherwise. Options go before the command, so negative
values reach the command untouched.

Usage:
    rytmctl [options]
    rytmctl [options] console
    rytmctl [options] (get | set | query | send | save) <arg>...
    rytmctl [options] load <path>
    rytmctl [options] script <file>
    rytmctl [options] serve [--addr=<addr>]
    rytmctl [options] ports
    rytmctl [options] monitor
    rytmctl [options] projects [<project>]
    rytmctl [options] snapshot <project> [<label>]
    rytmctl [options] rename <project> <save> <label>
    rytmctl [options] forget <project> [<save>]
    rytmctl -h | --help
    rytmctl --version

Options:
    -h --help                  Show this screen.
    --version                  Show version.
    -c --config=<path>         Configuration file, default ~/.config/go-rytm/config.cue.
    -p --project=<file>        A .rytm file to start from. set, load and query write it back.
    -r --restore=<project>     Start from the newest save of a stored project.
    -l --log-level=<level>     error, warn, info or debug.
    --offline                  Do not look for the Rytm.
    --wait=<duration>          How long query and send wait for the device [default: 2s].
    --addr=<addr>              Listen address for serve, default from the configuration.

Exit status is 0 on success, 1 on error and 2 on a warning, such as a frame
that was built but could not be sent.`

func main() {
	parser := &docopt.Parser{HelpHandler: docopt.PrintHelpAndExit, OptionsFirst: true}
	opts, err := parser.ParseArgs(usage, os.Args[1:], Version)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(int(run(opts)))
}

func run(opts docopt.Opts) host.Status {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wait, err := time.ParseDuration(str(opts, "--wait"))
	if err != nil {
		return fail(fmt.Errorf("--wait: %w", err))
	}

	// Pure storage commands need no engine
	switch {
	case flag(opts, "projects"):
		return listProjects(str(opts, "<project>"))
	case flag(opts, "rename"):
		name, err := project.RenameSave(str(opts, "<project>"), str(opts, "<save>"), str(opts, "<label>"))
		if err != nil {
			return fail(err)
		}
		fmt.Println(name)
		return host.StatusOk
	case flag(opts, "forget"):
		if s := str(opts, "<save>"); s != "" {
			return check(project.DeleteSave(str(opts, "<project>"), s))
		}
		return check(project.DeleteProject(str(opts, "<project>")))
	case flag(opts, "ports"):
		return listPorts()
	}

	console := flag(opts, "console") || (noCommand(opts) && term.IsTerminal(int(os.Stdin.Fd())))

	applied := make(chan parse.Selector, 16)
	a, err := app.Open(app.Options{
		ConfigPath: str(opts, "--config"),
		LogLevel:   str(opts, "--log-level"),
		LogToFile:  console,
		Project:    str(opts, "--project"),
		Restore:    str(opts, "--restore"),
		Offline:    flag(opts, "--offline"),
		Applied: func(sel parse.Selector) {
			select {
			case applied <- sel:
			default:
			}
		},
	})
	if err != nil {
		return fail(err)
	}
	defer a.Close()
	a.Start(ctx)

	needsDevice := flag(opts, "query") || flag(opts, "send")
	if needsDevice {
		waitForDevice(ctx, a, wait)
	}

	var status host.Status
	switch {
	case console:
		status = runConsole(a)
	case noCommand(opts):
		status = runLines(ctx, a.Host, os.Stdin)
	case flag(opts, "load"):
		status = report(a.Host.Exec(ctx, "load", value.List{value.Symbol(str(opts, "<path>"))}))
	case flag(opts, "script"):
		status = check(script.New(a.Host, os.Stdout).RunFile(ctx, str(opts, "<file>")))
	case flag(opts, "serve"):
		addr := str(opts, "--addr")
		if addr == "" {
			addr = a.Config.Server.Addr
		}
		status = check(server.New(a.Host, a.Log).ListenAndServe(ctx, addr))
	case flag(opts, "monitor"):
		status = monitor(ctx, a, applied)
	case flag(opts, "snapshot"):
		status = snapshot(ctx, a, str(opts, "<project>"), str(opts, "<label>"))
	default:
		verb := commandVerb(opts)
		res := a.Host.Exec(ctx, verb, value.ParseList(list(opts, "<arg>")))
		status = report(res)
		if verb == "query" && res.Status == host.StatusOk {
			status = awaitReply(ctx, applied, wait)
		}
	}

	// Write the tree back so the next invocation sees the change
	if path := str(opts, "--project"); path != "" && status == host.StatusOk && changesTree(opts) {
		if err := a.Engine.Save(ctx, path, nil); err != nil {
			return fail(err)
		}
	}
	return status
}

func commandVerb(opts docopt.Opts) string {
	for _, verb := range []string{"get", "set", "query", "send", "save"} {
		if flag(opts, verb) {
			return verb
		}
	}
	return ""
}

func noCommand(opts docopt.Opts) bool {
	for _, cmd := range []string{"console", "get", "set", "query", "send", "save", "load", "script", "serve", "monitor", "snapshot"} {
		if flag(opts, cmd) {
			return false
		}
	}
	return true
}

func changesTree(opts docopt.Opts) bool {
	return flag(opts, "set") || flag(opts, "load") || flag(opts, "query")
}

func runConsole(a *app.App) host.Status {
	palette, err := theme.LoadPalette(a.Config.UI.Palette)
	if err != nil {
		a.Log.Warn("palette", "error", err)
	}
	m := tui.NewModel(a.Host, theme.New(palette), tui.Options{
		History: a.Config.UI.History,
		Status:  a.DeviceStatus(),
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fail(err)
	}
	return host.StatusOk
}

// runLines executes one command per line. The worst status wins.
func runLines(ctx context.Context, h *host.Host, r io.Reader) host.Status {
	worst := host.StatusOk
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res := h.ExecLine(ctx, line)
		if s := report(res); s == host.StatusError || worst == host.StatusOk {
			worst = s
		}
		if ctx.Err() != nil {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fail(err)
	}
	return worst
}

func waitForDevice(ctx context.Context, a *app.App, wait time.Duration) {
	status := a.DeviceStatus()
	if status == nil {
		return
	}
	deadline := time.After(wait)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		if _, ok := status(); ok {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}

func awaitReply(ctx context.Context, applied <-chan parse.Selector, wait time.Duration) host.Status {
	select {
	case sel := <-applied:
		fmt.Println("received", sel)
		return host.StatusOk
	case <-ctx.Done():
		return host.StatusWarning
	case <-time.After(wait):
		fmt.Fprintln(os.Stderr, "The device did not answer the query.")
		return host.StatusWarning
	}
}

func monitor(ctx context.Context, a *app.App, applied <-chan parse.Selector) host.Status {
	if a.Bridge == nil {
		return fail(fmt.Errorf("monitor needs a device, autoConnect is off or --offline is set"))
	}
	fmt.Println("Waiting for dumps from the Rytm, ctrl+c to stop")
	for {
		select {
		case <-ctx.Done():
			return host.StatusOk
		case sel := <-applied:
			fmt.Printf("%s  %s\n", time.Now().Format("15:04:05"), sel)
		}
	}
}

func snapshot(ctx context.Context, a *app.App, name, label string) host.Status {
	var filename string
	var err error
	viewErr := a.Engine.View(ctx, func(p *project.Project) {
		filename, err = project.SaveProject(name, label, p)
	})
	if viewErr != nil {
		return fail(viewErr)
	}
	if err != nil {
		return fail(err)
	}
	fmt.Println(filename)
	return host.StatusOk
}

func listProjects(name string) host.Status {
	if name == "" {
		names, err := project.ListProjects()
		if err != nil {
			return fail(err)
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return host.StatusOk
	}
	saves, err := project.ListSaves(name)
	if err != nil {
		return fail(err)
	}
	for _, s := range saves {
		fmt.Printf("%s  %-20s %s\n", s.Timestamp.Format("2006-01-02 15:04:05"), s.Name, s.Filename)
	}
	return host.StatusOk
}

func listPorts() host.Status {
	match := midi.Matcher("")
	for _, ep := range midi.Endpoints() {
		dir := ""
		if ep.In != nil {
			dir += "in"
		}
		if ep.Out != nil {
			if dir != "" {
				dir += "/"
			}
			dir += "out"
		}
		mark := " "
		if match(ep.Name) {
			mark = "*"
		}
		fmt.Printf("%s %-7s %s\n", mark, dir, ep.Name)
	}
	return host.StatusOk
}

func report(res host.Result) host.Status {
	switch res.Status {
	case host.StatusOk:
		fmt.Println(res.Text())
	default:
		fmt.Fprintln(os.Stderr, res.Text())
	}
	return res.Status
}

func check(err error) host.Status {
	if err != nil {
		return fail(err)
	}
	return host.StatusOk
}

func fail(err error) host.Status {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return host.StatusError
}

func flag(opts docopt.Opts, key string) bool {
	v, _ := opts.Bool(key)
	return v
}

func str(opts docopt.Opts, key string) string {
	v, _ := opts.String(key)
	return v
}

func list(opts docopt.Opts, key string) []string {
	v, _ := opts[key].([]string)
	return v
}
