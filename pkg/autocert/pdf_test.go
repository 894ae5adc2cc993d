package autocert

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
	"golang.org/x/image/font/gofont/goregular"
)

// A4 landscape with a light frame, in mm
func writeTestTemplate(t *testing.T, path string) {
	t.Helper()

	c := canvas.New(297, 210)
	ctx := canvas.NewContext(c)
	ctx.SetFillColor(canvas.Hex("#eeeeee"))
	ctx.DrawPath(10, 10, canvas.Rectangle(277, 190))
	require.NoError(t, renderers.Write(path, c))
}

func newTestPdfEngine(t *testing.T) *PdfEngine {
	t.Helper()
	engine, err := NewPdfEngine(&Config{TmpDir: filepath.Join(t.TempDir(), "tmp")}, FontWeightRegular)
	require.NoError(t, err)
	return engine
}

func TestPdfEngineLoadDocument(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "template.pdf")
	writeTestTemplate(t, templatePath)
	data, err := os.ReadFile(templatePath)
	require.NoError(t, err)

	doc, err := newTestPdfEngine(t).LoadDocument(data)
	require.NoError(t, err)

	page, err := doc.FirstPage()
	require.NoError(t, err)

	width, height := page.Size()
	assert.InDelta(t, mmToPt(297), width, 1)
	assert.InDelta(t, mmToPt(210), height, 1)

	serialized, err := doc.Serialize()
	require.NoError(t, err)
	assert.Equal(t, data, serialized)
}

func TestPdfEngineRejectsInvalidInput(t *testing.T) {
	engine := newTestPdfEngine(t)

	_, err := engine.LoadDocument([]byte("not a pdf"))
	assert.Error(t, err)

	_, err = engine.EmbedFont([]byte("not a font"))
	assert.Error(t, err)
}

func TestCanvasFontMeasure(t *testing.T) {
	font, err := newTestPdfEngine(t).EmbedFont(goregular.TTF)
	require.NoError(t, err)

	w60, h60 := font.Measure("John Doe", 60)
	w48, h48 := font.Measure("John Doe", 48)
	assert.Greater(t, w60, 0.0)
	assert.Greater(t, h60, 0.0)
	assert.Greater(t, w60, w48)
	assert.Greater(t, h60, h48)

	narrow, _ := font.Measure("iiii", 60)
	wide, _ := font.Measure("WWWW", 60)
	assert.Greater(t, wide, narrow)
}

func TestPdfPageRejectsForeignFont(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "template.pdf")
	writeTestTemplate(t, templatePath)
	data, err := os.ReadFile(templatePath)
	require.NoError(t, err)

	doc, err := newTestPdfEngine(t).LoadDocument(data)
	require.NoError(t, err)
	page, err := doc.FirstPage()
	require.NoError(t, err)

	err = page.DrawText("John Doe", TextOptions{Size: 60, Font: fakeFont{}})
	assert.ErrorIs(t, err, ErrUnsupportedFont)
}

func TestPdfEngineGenerate(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "template.pdf")
	writeTestTemplate(t, templatePath)
	fontPath := filepath.Join(dir, "Go-Regular.ttf")
	require.NoError(t, os.WriteFile(fontPath, goregular.TTF, 0644))

	templateBytes, err := os.ReadFile(templatePath)
	require.NoError(t, err)

	cfg := Config{TmpDir: filepath.Join(dir, "tmp")}
	engine, err := NewPdfEngine(&cfg, FontWeightRegular)
	require.NoError(t, err)

	settings := NewDefaultSettings()
	settings.EmbedQRCode = true
	settings.QrURLPattern = "https://example.com/verify/%s"

	req := Request{
		FontPath:     fontPath,
		TemplatePath: templatePath,
		Names:        []string{"John Doe", "jane smith"},
		OutputDir:    filepath.Join(dir, "output"),
		FontColor:    RGB(0.5, 0, 0.5),
		XOffset:      100,
		YOffset:      -50,
	}

	result, err := NewCertificateGenerator(req, cfg, *settings, engine, nil).Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Generated, 2)

	re := regexp.MustCompile(`^(John Doe|Jane Smith)-Certificate-[0-9a-f]{6}\.pdf$`)
	for _, g := range result.Generated {
		assert.Regexp(t, re, filepath.Base(g.FilePath))

		data, err := os.ReadFile(g.FilePath)
		require.NoError(t, err)
		assert.NotEqual(t, templateBytes, data)

		pageCount, err := api.PageCount(bytes.NewReader(data), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, pageCount)
	}

	// intermediate files are cleaned up
	tmpEntries, err := os.ReadDir(cfg.TmpDir)
	require.NoError(t, err)
	assert.Empty(t, tmpEntries)
}

// Page 1 is A4 landscape, page 2 a 100mm square
func writeTwoPageTestTemplate(t *testing.T, dir string) string {
	t.Helper()

	first := filepath.Join(dir, "first.pdf")
	writeTestTemplate(t, first)

	second := filepath.Join(dir, "second.pdf")
	c := canvas.New(100, 100)
	ctx := canvas.NewContext(c)
	ctx.SetFillColor(canvas.Hex("#cccccc"))
	ctx.DrawPath(10, 10, canvas.Rectangle(80, 80))
	require.NoError(t, renderers.Write(second, c))

	templatePath := filepath.Join(dir, "template.pdf")
	require.NoError(t, api.MergeCreateFile([]string{first, second}, templatePath, false, nil))
	return templatePath
}

var cmTranslation = regexp.MustCompile(`1 0 0 1 (-?[0-9.]+) (-?[0-9.]+) cm`)

func TestPdfEngineStampsFirstPageOnly(t *testing.T) {
	dir := t.TempDir()
	templatePath := writeTwoPageTestTemplate(t, dir)
	fontPath := filepath.Join(dir, "Go-Regular.ttf")
	require.NoError(t, os.WriteFile(fontPath, goregular.TTF, 0644))

	templateBytes, err := os.ReadFile(templatePath)
	require.NoError(t, err)
	templateDims, err := api.PageDims(bytes.NewReader(templateBytes), nil)
	require.NoError(t, err)
	require.Len(t, templateDims, 2)

	cfg := Config{TmpDir: filepath.Join(dir, "tmp")}
	engine, err := NewPdfEngine(&cfg, FontWeightRegular)
	require.NoError(t, err)

	req := Request{
		FontPath:     fontPath,
		TemplatePath: templatePath,
		Names:        []string{"John Doe"},
		OutputDir:    filepath.Join(dir, "output"),
		XOffset:      100,
		YOffset:      -50,
	}

	result, err := NewCertificateGenerator(req, cfg, *NewDefaultSettings(), engine, nil).Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Generated, 1)

	data, err := os.ReadFile(result.Generated[0].FilePath)
	require.NoError(t, err)

	dims, err := api.PageDims(bytes.NewReader(data), nil)
	require.NoError(t, err)
	require.Len(t, dims, 2)
	for i := range dims {
		assert.InDelta(t, templateDims[i].Width, dims[i].Width, 0.01, "page %d width", i+1)
		assert.InDelta(t, templateDims[i].Height, dims[i].Height, 0.01, "page %d height", i+1)
	}

	font, err := engine.EmbedFont(goregular.TTF)
	require.NoError(t, err)
	textW, textH := font.Measure("John Doe", LargeFontSize)
	expected := CenterText(templateDims[0].Width, templateDims[0].Height, textW, textH, req.XOffset, req.YOffset)

	contentDir := filepath.Join(dir, "content")
	require.NoError(t, os.MkdirAll(contentDir, 0755))
	require.NoError(t, api.ExtractContentFile(result.Generated[0].FilePath, contentDir, []string{"1"}, nil))

	entries, err := os.ReadDir(contentDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	var content strings.Builder
	for _, e := range entries {
		b, err := os.ReadFile(filepath.Join(contentDir, e.Name()))
		require.NoError(t, err)
		content.Write(b)
	}

	matches := cmTranslation.FindAllStringSubmatch(content.String(), -1)
	require.NotEmpty(t, matches, "page 1 carries no stamped watermark")

	found := false
	for _, m := range matches {
		x, errX := strconv.ParseFloat(m[1], 64)
		y, errY := strconv.ParseFloat(m[2], 64)
		if errX == nil && errY == nil && math.Abs(x-expected.X) < 0.02 && math.Abs(y-expected.Y) < 0.02 {
			found = true
			break
		}
	}
	assert.True(t, found, "expected translation to %v in %q", expected, matches)
}

func TestApplyWatermarkToPdfRejectsImages(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "template.pdf")
	writeTestTemplate(t, templatePath)

	err := ApplyWatermarkToPdf(templatePath, filepath.Join(dir, "out.pdf"), []string{"1"}, filepath.Join(dir, "qr.png"), 0, 0)
	assert.ErrorContains(t, err, "unsupported watermark file type: .png")
}
