package theme

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gpl = `GIMP Palette
Name: Two Tone
Columns: 2
# comment
  0   0   0	black
255 128  64	orange
300   0   0	out of range
`

func TestReadGPL(t *testing.T) {
	p, err := ReadGPL(strings.NewReader(gpl))
	require.NoError(t, err)

	assert.Equal(t, "Two Tone", p.Name)
	assert.Equal(t, []RGB{{0, 0, 0}, {255, 128, 64}}, p.Colors)
}

func TestReadGPLEmpty(t *testing.T) {
	_, err := ReadGPL(strings.NewReader("GIMP Palette\n"))
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}

	assert.Equal(t, RGB{0, 0, 0}, p.Lookup(-1))
	assert.Equal(t, RGB{100, 50, 25}, p.Lookup(0.5))
	assert.Equal(t, RGB{200, 100, 50}, p.Lookup(2))
}

func TestLoadPalette(t *testing.T) {
	p, err := LoadPalette("default")
	require.NoError(t, err)
	assert.Equal(t, DefaultPalette(), p)

	_, err = LoadPalette(filepath.Join(t.TempDir(), "missing.gpl"))
	assert.Error(t, err)
}

func TestNewFallsBackToDefault(t *testing.T) {
	th := New(nil)
	assert.Equal(t, "default", th.Palette.Name)
	assert.Equal(t, lipgloss.Color("#1b1f27"), th.Color(RoleBG))
	assert.Equal(t, lipgloss.Color("#f2d47c"), th.Color(RoleTitle))
}
