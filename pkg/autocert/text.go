package autocert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
)

/*
 * Attention: tdewolff/canvas uses mm as the unit of measurement, everything that leaves this file is in pt (1/72 inch).
 * Font sizes are in pt for canvas as well, only lengths need converting.
 */

const DPI = 72

// Converts points to millimeters
func ptToMM(pt float64) float64 {
	return (pt * 25.4) / DPI
}

// Converts millimeters to points
func mmToPt(mm float64) float64 {
	return (mm * DPI) / 25.4
}

// CanvasFont is a Font backed by a canvas font family.
type CanvasFont struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

func NewCanvasFont(name string, data []byte, weight FontWeight) (*CanvasFont, error) {
	f := FontSpec{Name: name, Weight: weight}
	style := f.GetFontStyle()

	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	return &CanvasFont{
		family: family,
		style:  style,
	}, nil
}

func (cf *CanvasFont) face(size float64, c Color) *canvas.FontFace {
	return cf.family.Face(size, c.RGBA(), cf.style, canvas.FontNormal)
}

// Single line box, anchored at its top-left corner
func (cf *CanvasFont) textBox(text string, size float64, c Color) *canvas.Text {
	return canvas.NewTextBox(cf.face(size, c), removeLineBreaks(text), 0, 0, canvas.Left, canvas.Top, 0.0, 0.0)
}

func (cf *CanvasFont) Measure(text string, size float64) (float64, float64) {
	bounds := cf.textBox(text, size, Black).Bounds()
	return mmToPt(bounds.W()), mmToPt(bounds.H())
}

// RenderTextAsPdf writes a one-page PDF exactly as large as the text box.
func (cf *CanvasFont) RenderTextAsPdf(text string, size float64, c Color, output string) error {
	textBox := cf.textBox(text, size, c)
	bounds := textBox.Bounds()
	if bounds.W() <= 0 || bounds.H() <= 0 {
		return fmt.Errorf("text %q has an empty bounding box", text)
	}

	cv := canvas.New(bounds.W(), bounds.H())
	ctx := canvas.NewContext(cv)
	// Change coordination from bottom-left to top-left
	ctx.SetCoordSystem(canvas.CartesianIV)
	ctx.DrawText(0, 0, textBox)

	if err := renderers.Write(output, cv); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	return nil
}

var lineBreaks = regexp.MustCompile(`[\r\n]+`)

// Names are always drawn on a single line
func removeLineBreaks(text string) string {
	return strings.TrimSpace(lineBreaks.ReplaceAllString(text, " "))
}
