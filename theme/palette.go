package theme

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

type RGB [3]uint8

// Palette is an ordered color ramp, read from a GIMP palette or built in
type Palette struct {
	Name   string
	Colors []RGB
}

// DefaultPalette is a dark ramp from slate through teal to amber
func DefaultPalette() *Palette {
	return &Palette{
		Name: "default",
		Colors: []RGB{
			{0x1b, 0x1f, 0x27},
			{0x2e, 0x34, 0x40},
			{0x5c, 0x67, 0x73},
			{0xc8, 0xcf, 0xd8},
			{0x4f, 0xc1, 0xb6},
			{0x8f, 0xd1, 0x6e},
			{0xe0, 0x6c, 0x75},
			{0xe5, 0xa5, 0x4b},
			{0xf2, 0xd4, 0x7c},
		},
	}
}

// LoadPalette resolves a configured palette: "default" or empty is the
// built in ramp, anything else is a path to a .gpl file
func LoadPalette(name string) (*Palette, error) {
	if name == "" || name == "default" {
		return DefaultPalette(), nil
	}
	return LoadGPL(name)
}

func LoadGPL(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := ReadGPL(f)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return p, nil
}

// ReadGPL parses GIMP palette text. Only the first three fields of a color
// line are read.
func ReadGPL(r io.Reader) (*Palette, error) {
	p := &Palette{}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if name, ok := strings.CutPrefix(line, "Name:"); ok {
			p.Name = strings.TrimSpace(name)
			continue
		}
		if line == "" || line[0] == '#' || strings.HasPrefix(line, "GIMP") || strings.HasPrefix(line, "Columns") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		var c RGB
		ok := true
		for i := range c {
			v, err := strconv.ParseUint(fields[i], 10, 8)
			if err != nil {
				ok = false
				break
			}
			c[i] = uint8(v)
		}
		if ok {
			p.Colors = append(p.Colors, c)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("no colors found")
	}
	return p, nil
}

// Lookup returns interpolated color for normalized value 0-1
func (p *Palette) Lookup(norm float64) RGB {
	if norm <= 0 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[len(p.Colors)-1]
	}

	pos := norm * float64(len(p.Colors)-1)
	i := int(pos)
	frac := pos - float64(i)

	c0, c1 := p.Colors[i], p.Colors[i+1]
	return RGB{
		lerp(c0[0], c1[0], frac),
		lerp(c0[1], c1[1], frac),
		lerp(c0[2], c1[2], frac),
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}
