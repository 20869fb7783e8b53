package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleSurface = 0.125
	RoleMuted   = 0.25
	RoleFG      = 0.375
	RoleAccent  = 0.5
	RoleSuccess = 0.625
	RoleError   = 0.75
	RoleWarning = 0.875
	RoleTitle   = 1.0
)

// Theme holds the console styles derived from a palette
type Theme struct {
	Palette *Palette

	Title   lipgloss.Style
	Prompt  lipgloss.Style
	Input   lipgloss.Style
	Reply   lipgloss.Style
	Ok      lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Status  lipgloss.Style
}

func New(palette *Palette) *Theme {
	if palette == nil || len(palette.Colors) == 0 {
		palette = DefaultPalette()
	}
	t := &Theme{Palette: palette}

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(t.Color(RoleTitle))
	t.Prompt = lipgloss.NewStyle().Bold(true).Foreground(t.Color(RoleAccent))
	t.Input = lipgloss.NewStyle().Foreground(t.Color(RoleFG))
	t.Reply = lipgloss.NewStyle().Foreground(t.Color(RoleFG))
	t.Ok = lipgloss.NewStyle().Foreground(t.Color(RoleSuccess))
	t.Error = lipgloss.NewStyle().Foreground(t.Color(RoleError))
	t.Warning = lipgloss.NewStyle().Foreground(t.Color(RoleWarning))
	t.Muted = lipgloss.NewStyle().Foreground(t.Color(RoleMuted))
	t.Status = lipgloss.NewStyle().
		Foreground(t.Color(RoleFG)).
		Background(t.Color(RoleSurface)).
		Padding(0, 1)
	return t
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
