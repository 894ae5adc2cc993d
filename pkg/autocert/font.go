package autocert

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
	"go.uber.org/zap"
	"golang.org/x/image/font/sfnt"
)

type FontWeight string

const (
	FontWeightRegular FontWeight = "regular"
	FontWeightBold    FontWeight = "bold"
)

type FontSpec struct {
	Name   string
	Weight FontWeight
}

// Get font weight of canvas type
func (f *FontSpec) GetFontStyle() canvas.FontStyle {
	switch f.Weight {
	case FontWeightRegular:
		return canvas.FontRegular
	case FontWeightBold:
		return canvas.FontBold
	default:
		return canvas.FontRegular
	}
}

func ParseFontWeight(s string) (FontWeight, error) {
	switch FontWeight(strings.ToLower(strings.TrimSpace(s))) {
	case "", FontWeightRegular:
		return FontWeightRegular, nil
	case FontWeightBold:
		return FontWeightBold, nil
	default:
		return "", fmt.Errorf("unknown font weight %q", s)
	}
}

type FontMetadata struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// FontFamilyName reads the family name stored in a TTF/OTF file.
func FontFamilyName(fontBytes []byte) (string, error) {
	font, err := sfnt.Parse(fontBytes)
	if err != nil {
		return "", fmt.Errorf("parsing font: %w", err)
	}

	name, err := font.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return "", fmt.Errorf("retrieving font name: %w", err)
	}

	return name, nil
}

func getFontMetadataByPath(fontPath string) (*FontMetadata, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	name, err := FontFamilyName(fontBytes)
	if err != nil {
		return nil, err
	}

	return &FontMetadata{
		Name: name,
		Path: fontPath,
	}, nil
}

// Scan through the directory to process .ttf and .otf files.
// Files that cannot be parsed are skipped and logged.
func ScanFontDir(dir string, logger *zap.SugaredLogger) ([]FontMetadata, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	var fonts []FontMetadata

	err := filepath.Walk(dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(info.Name()))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}

		meta, err := getFontMetadataByPath(path)
		if err != nil {
			logger.Warnf("Skipping %q: %v", path, err)
			return nil
		}

		fonts = append(fonts, *meta)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fonts, nil
}

// List the available font family and its path
func GetAvailableFonts(path string) ([]*FontMetadata, error) {
	var fonts []*FontMetadata

	if path == "" {
		path = DefaultFontMetadataPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fonts, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &fonts); err != nil {
		return fonts, fmt.Errorf("unmarshalling %s: %w", path, err)
	}

	return fonts, nil
}

// ResolveFontPath returns nameOrPath when it points to an existing file,
// otherwise looks the family name up in the font metadata file.
func ResolveFontPath(nameOrPath, metadataPath string) (string, error) {
	info, err := os.Stat(nameOrPath)
	if err == nil && !info.IsDir() {
		return nameOrPath, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	fonts, err := GetAvailableFonts(metadataPath)
	if err != nil {
		return "", fmt.Errorf("font %q is not a file and metadata is unavailable: %w", nameOrPath, err)
	}

	for _, font := range fonts {
		if strings.EqualFold(font.Name, nameOrPath) {
			return font.Path, nil
		}
	}

	return "", fmt.Errorf("font %s not found", nameOrPath)
}
