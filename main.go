package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"go-rytm/app"
	"go-rytm/theme"
	"go-rytm/tui"
)

func main() {
	a, err := app.Open(app.Options{LogToFile: true})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	// Scan for the Rytm in the background, hot-plug is picked up any time
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.Start(ctx)

	palette, err := theme.LoadPalette(a.Config.UI.Palette)
	if err != nil {
		a.Log.Warn("palette", "error", err)
	}

	m := tui.NewModel(a.Host, theme.New(palette), tui.Options{
		History: a.Config.UI.History,
		Status:  a.DeviceStatus(),
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		a.Close()
		os.Exit(1)
	}
}
