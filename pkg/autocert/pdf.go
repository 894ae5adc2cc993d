package autocert

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Stamp a one-page PDF watermark onto a PDF file,
// if array of selected pages is provided, will apply to those pages
// otherwise apply to all pages.
// The watermark's bottom-left corner is placed at (posX, posY) in PDF user space.
func ApplyWatermarkToPdf(inFile string, outFile string, selectedPages []string, watermarkFile string, posX, posY float64) error {
	if ext := filepath.Ext(watermarkFile); ext != ".pdf" {
		return fmt.Errorf("unsupported watermark file type: %s", ext)
	}

	// pos: bl anchors at the bottom-left corner of the page, same origin as PDF user space
	// As for scale, 1 abs means 100% of the watermark's own size
	// For rotation, it is in degree, default is 45 degree
	description := fmt.Sprintf("pos: bl, off: %.2f %.2f, scale: 1 abs, rotation: 0", posX, posY)
	onTop := true

	return api.AddPDFWatermarksFile(inFile, outFile, selectedPages, onTop, watermarkFile, description, nil)
}

// Apply qr code to the bottom right corner of a PDF file
// if array of selected pages is provided, will apply to those pages
// otherwise apply to all pages
func EmbedQRCodeToPdf(inFile, outFile, qrCodePath string, selectedPages []string) error {
	description := "pos: br, off: 0 0, scale: 1 abs, rotation: 0"
	err := api.AddImageWatermarksFile(inFile, outFile, selectedPages, true, qrCodePath, description, nil)
	if err != nil {
		return fmt.Errorf("failed to embed QR code in PDF: %w", err)
	}
	return nil
}

// PdfEngine implements Engine with pdfcpu for documents and tdewolff/canvas for fonts.
// Drawing goes through temporary files under the configured tmp directory.
type PdfEngine struct {
	tmpDir string
	weight FontWeight
}

func NewPdfEngine(cfg *Config, weight FontWeight) (*PdfEngine, error) {
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	return &PdfEngine{
		tmpDir: cfg.TmpDir,
		weight: weight,
	}, nil
}

func (e *PdfEngine) LoadDocument(data []byte) (Document, error) {
	dims, err := api.PageDims(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("reading page dimensions: %w", err)
	}
	if len(dims) == 0 {
		return nil, ErrTemplateNoPages
	}

	return &pdfDocument{
		engine: e,
		data:   bytes.Clone(data),
		width:  dims[0].Width,
		height: dims[0].Height,
	}, nil
}

func (e *PdfEngine) EmbedFont(data []byte) (Font, error) {
	name, err := FontFamilyName(data)
	if err != nil {
		return nil, err
	}
	return NewCanvasFont(name, data, e.weight)
}

// Creates an empty temporary file and returns its path
func (e *PdfEngine) createTemp(pattern string) (string, error) {
	f, err := os.CreateTemp(e.tmpDir, pattern)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return f.Name(), nil
}

type pdfDocument struct {
	engine *PdfEngine
	data   []byte
	// first page box in pt
	width  float64
	height float64
}

func (d *pdfDocument) FirstPage() (Page, error) {
	return &pdfPage{doc: d}, nil
}

func (d *pdfDocument) Serialize() ([]byte, error) {
	return bytes.Clone(d.data), nil
}

// Runs fn with the current document written to inFile and replaces the
// document with whatever fn wrote to outFile.
func (d *pdfDocument) apply(fn func(inFile, outFile string) error) error {
	inFile, err := d.engine.createTemp("autocert_*.pdf")
	if err != nil {
		return err
	}
	defer os.Remove(inFile)

	outFile, err := d.engine.createTemp("autocert_*.pdf")
	if err != nil {
		return err
	}
	defer os.Remove(outFile)

	if err := os.WriteFile(inFile, d.data, 0644); err != nil {
		return err
	}

	if err := fn(inFile, outFile); err != nil {
		return err
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		return err
	}
	d.data = data

	return nil
}

type pdfPage struct {
	doc *pdfDocument
}

func (p *pdfPage) Size() (float64, float64) {
	return p.doc.width, p.doc.height
}

func (p *pdfPage) DrawText(text string, opts TextOptions) error {
	font, ok := opts.Font.(*CanvasFont)
	if !ok {
		return ErrUnsupportedFont
	}

	txtFile, err := p.doc.engine.createTemp("autocert_text_*.pdf")
	if err != nil {
		return err
	}
	defer os.Remove(txtFile)

	if err := font.RenderTextAsPdf(text, opts.Size, opts.Color, txtFile); err != nil {
		return err
	}

	return p.doc.apply(func(inFile, outFile string) error {
		if err := ApplyWatermarkToPdf(inFile, outFile, []string{"1"}, txtFile, opts.X, opts.Y); err != nil {
			return fmt.Errorf("failed to draw text: %w", err)
		}
		return nil
	})
}

func (p *pdfPage) DrawQRCode(content string, size int) error {
	qrFile, err := p.doc.engine.createTemp("autocert_qr_*.png")
	if err != nil {
		return err
	}
	defer os.Remove(qrFile)

	if err := GenerateQRCode(content, qrFile, size); err != nil {
		return err
	}

	return p.doc.apply(func(inFile, outFile string) error {
		return EmbedQRCodeToPdf(inFile, outFile, qrFile, []string{"1"})
	})
}
