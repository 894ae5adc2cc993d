package autocert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request holds the inputs shared by every certificate of a batch.
type Request struct {
	// Path to a TTF/OTF file
	FontPath string `validate:"required"`
	// Path to the template PDF, only its first page is drawn on
	TemplatePath string `validate:"required"`
	Names        []string
	OutputDir    string `validate:"required"`
	FontColor    Color
	// Offsets are in pt and shift the centered name, positive Y moves it up
	XOffset float64
	YOffset float64
}

func (r *Request) Validate() error {
	return validator.New().Struct(r)
}

type GeneratedResult struct {
	Number   int
	Name     string
	FilePath string
	ID       string
}

// CertificateRenderer draws one name onto a fresh copy of the template.
type CertificateRenderer struct {
	req      *Request
	settings *Settings
	engine   Engine
	font     Font
	logger   *zap.SugaredLogger
}

func NewCertificateRenderer(req *Request, settings *Settings, engine Engine, font Font, logger *zap.SugaredLogger) *CertificateRenderer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &CertificateRenderer{
		req:      req,
		settings: settings,
		engine:   engine,
		font:     font,
		logger:   logger,
	}
}

// Render expects a normalized name and writes "{name}-Certificate-{suffix}.pdf" into the output directory.
func (cr *CertificateRenderer) Render(name string) (*GeneratedResult, error) {
	if err := ValidateNameLength(name); err != nil {
		return nil, err
	}
	fontSize := FontSizeForName(name)

	// Always start from the file on disk so no drawing leaks between certificates
	templateBytes, err := os.ReadFile(cr.req.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	doc, err := cr.engine.LoadDocument(templateBytes)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}

	page, err := doc.FirstPage()
	if err != nil {
		return nil, err
	}

	pageWidth, pageHeight := page.Size()
	textWidth, textHeight := cr.font.Measure(name, fontSize)
	pos := CenterText(pageWidth, pageHeight, textWidth, textHeight, cr.req.XOffset, cr.req.YOffset)

	err = page.DrawText(name, TextOptions{
		X:     pos.X,
		Y:     pos.Y,
		Size:  fontSize,
		Font:  cr.font,
		Color: cr.req.FontColor,
	})
	if err != nil {
		return nil, err
	}

	certID := uuid.NewString()
	if cr.settings.EmbedQRCode {
		if err := cr.embedQRCode(page, certID); err != nil {
			return nil, err
		}
	}

	data, err := doc.Serialize()
	if err != nil {
		return nil, fmt.Errorf("serializing certificate: %w", err)
	}

	suffix, err := RandomSuffix()
	if err != nil {
		return nil, fmt.Errorf("generating file suffix: %w", err)
	}

	outputFile := filepath.Join(cr.req.OutputDir, CertificateFileName(name, suffix))
	// The file can be read by the owner, read by users in the file's group, and read by anyone else on the system
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return nil, fmt.Errorf("writing certificate: %w", err)
	}

	cr.logger.Debugw("Certificate generated", "name", name, "fontSize", fontSize, "position", pos.String(), "file", outputFile)

	return &GeneratedResult{
		Name:     name,
		FilePath: outputFile,
		ID:       certID,
	}, nil
}

func (cr *CertificateRenderer) embedQRCode(page Page, certID string) error {
	drawer, ok := page.(QRCodeDrawer)
	if !ok {
		return errors.New("page does not support QR codes")
	}

	if err := drawer.DrawQRCode(cr.settings.QRCodeContent(certID), cr.settings.QRCodeSize); err != nil {
		return fmt.Errorf("failed to embed QR code: %w", err)
	}

	return nil
}
