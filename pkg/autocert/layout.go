package autocert

import (
	"fmt"
	"unicode/utf8"
)

const (
	MaxNameLength = 30
	// Names longer than this use the small font size
	LargeFontMaxLength = 20

	LargeFontSize = 60.0
	SmallFontSize = 48.0
)

// Point is a position in PDF user space, origin at the bottom-left of the page.
type Point struct {
	X float64
	Y float64
}

// NameLength counts characters (code points), not bytes.
func NameLength(name string) int {
	return utf8.RuneCountInString(name)
}

func ValidateNameLength(name string) error {
	if NameLength(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// FontSizeForName picks one of two size tiers. Exactly 20 characters still gets the large size.
func FontSizeForName(name string) float64 {
	if NameLength(name) > LargeFontMaxLength {
		return SmallFontSize
	}
	return LargeFontSize
}

// CenterText returns the bottom-left corner of a text box of textWidth x textHeight
// centered on a page of pageWidth x pageHeight, shifted by the offsets.
func CenterText(pageWidth, pageHeight, textWidth, textHeight, xOffset, yOffset float64) Point {
	return Point{
		X: pageWidth/2 - textWidth/2 + xOffset,
		Y: pageHeight/2 - textHeight/2 + yOffset,
	}
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
