package autocert

// Engine is the document and font backend used by the renderer.
// PdfEngine is the implementation shipped with this package.
type Engine interface {
	LoadDocument(data []byte) (Document, error)
	EmbedFont(data []byte) (Font, error)
}

type Document interface {
	FirstPage() (Page, error)
	Serialize() ([]byte, error)
}

type Page interface {
	// Size returns the page box width and height in points
	Size() (width, height float64)
	DrawText(text string, opts TextOptions) error
}

type Font interface {
	// Measure returns the width and height in points of text set at size
	Measure(text string, size float64) (width, height float64)
}

// QRCodeDrawer is implemented by pages that can stamp a QR code in their bottom-right corner.
type QRCodeDrawer interface {
	DrawQRCode(content string, size int) error
}

// TextOptions places a single line of text. X and Y are the bottom-left corner of the text box.
type TextOptions struct {
	X     float64
	Y     float64
	Size  float64
	Font  Font
	Color Color
}
