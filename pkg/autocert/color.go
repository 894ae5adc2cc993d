package autocert

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/canvas"
)

// Color is an RGB triple with components in [0, 1]. The zero value is black.
type Color struct {
	R float64 `validate:"gte=0,lte=1"`
	G float64 `validate:"gte=0,lte=1"`
	B float64 `validate:"gte=0,lte=1"`
}

var Black = Color{}

func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// ParseColor accepts "#rrggbb" and "r,g,b" with components in [0, 1].
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Black, nil
	}

	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		if _, err := strconv.ParseUint(s[1:], 16, 32); err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return FromRGBA(canvas.Hex(s)), nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("%w: %q, expected #rrggbb or r,g,b", ErrInvalidColor, s)
	}

	var comps [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		if v < 0 || v > 1 {
			return Color{}, fmt.Errorf("%w: component %v out of range [0, 1]", ErrInvalidColor, v)
		}
		comps[i] = v
	}

	return RGB(comps[0], comps[1], comps[2]), nil
}

func FromRGBA(c color.RGBA) Color {
	return Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// RGBA converts to an opaque 8-bit color.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: to8Bit(c.R),
		G: to8Bit(c.G),
		B: to8Bit(c.B),
		A: 0xff,
	}
}

func (c Color) Hex() string {
	rgba := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func to8Bit(v float64) uint8 {
	v = math.Max(0, math.Min(1, v))
	return uint8(math.Round(v * 255))
}
