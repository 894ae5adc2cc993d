package autocert

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var errDrawFailed = errors.New("draw failed")

// fakeEngine appends a text record for every drawing to the document bytes,
// which makes the output files easy to inspect.
type fakeEngine struct {
	mu     sync.Mutex
	width  float64
	height float64
	loads  int
	draws  []fakeDraw
	// DrawText fails for this text
	failOn string
}

type fakeDraw struct {
	text string
	opts TextOptions
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{width: 800, height: 600}
}

func (e *fakeEngine) LoadDocument(data []byte) (Document, error) {
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return nil, errors.New("not a pdf")
	}

	e.mu.Lock()
	e.loads++
	e.mu.Unlock()

	return &fakeDocument{engine: e, data: bytes.Clone(data)}, nil
}

func (e *fakeEngine) EmbedFont(data []byte) (Font, error) {
	if len(data) == 0 {
		return nil, errors.New("empty font")
	}
	return fakeFont{}, nil
}

func (e *fakeEngine) drawn() []fakeDraw {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]fakeDraw(nil), e.draws...)
}

// Every glyph is half the font size wide and a line is as tall as the font size
type fakeFont struct{}

func (fakeFont) Measure(text string, size float64) (float64, float64) {
	return float64(NameLength(text)) * size / 2, size
}

type fakeDocument struct {
	engine *fakeEngine
	data   []byte
}

func (d *fakeDocument) FirstPage() (Page, error) {
	return &fakePage{doc: d}, nil
}

func (d *fakeDocument) Serialize() ([]byte, error) {
	return bytes.Clone(d.data), nil
}

type fakePage struct {
	doc *fakeDocument
}

func (p *fakePage) Size() (float64, float64) {
	return p.doc.engine.width, p.doc.engine.height
}

func (p *fakePage) DrawText(text string, opts TextOptions) error {
	if text == p.doc.engine.failOn {
		return errDrawFailed
	}

	p.doc.engine.mu.Lock()
	p.doc.engine.draws = append(p.doc.engine.draws, fakeDraw{text: text, opts: opts})
	p.doc.engine.mu.Unlock()

	p.doc.data = fmt.Appendf(p.doc.data, "\ntext:%s@%.2f,%.2f/%g", text, opts.X, opts.Y, opts.Size)
	return nil
}

func (p *fakePage) DrawQRCode(content string, size int) error {
	p.doc.data = fmt.Appendf(p.doc.data, "\nqr:%s/%d", content, size)
	return nil
}

const fakeTemplate = "%PDF-1.7 fake template"

// Writes a template and a font file and returns a request pointing at them
func newTestRequest(t *testing.T, names ...string) Request {
	t.Helper()

	dir := t.TempDir()
	templatePath := filepath.Join(dir, "template.pdf")
	fontPath := filepath.Join(dir, "font.ttf")
	require.NoError(t, os.WriteFile(templatePath, []byte(fakeTemplate), 0644))
	require.NoError(t, os.WriteFile(fontPath, []byte("font"), 0644))

	return Request{
		FontPath:     fontPath,
		TemplatePath: templatePath,
		Names:        names,
		OutputDir:    filepath.Join(dir, "output"),
		FontColor:    RGB(0.5, 0, 0.5),
	}
}
