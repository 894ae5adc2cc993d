package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/SeakMengs/NameCert/internal/config"
	"github.com/SeakMengs/NameCert/internal/env"
	"github.com/SeakMengs/NameCert/internal/util"
	"github.com/SeakMengs/NameCert/pkg/autocert"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)
	defer logger.Sync()

	fontDir := flag.StringP("dir", "d", "fonts", "directory to scan for .ttf and .otf fonts")
	outputFile := flag.StringP("out", "o", cfg.Generate.FONT_METADATA_PATH, "metadata file used to resolve --font by family name")
	flag.Parse()

	count, err := scanFonts(*fontDir, *outputFile, logger)
	if err != nil {
		logger.Errorf("Failed to build font metadata: %v", err)
		os.Exit(1)
	}

	fmt.Printf("Saved metadata for %d fonts to %q\n", count, *outputFile)
}

func scanFonts(fontDir, outputFile string, logger *zap.SugaredLogger) (int, error) {
	fonts, err := autocert.ScanFontDir(fontDir, logger)
	if err != nil {
		return 0, fmt.Errorf("scanning font directory: %w", err)
	}

	data, err := json.MarshalIndent(fonts, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshaling font metadata: %w", err)
	}

	// The file can be read by the owner (you), read by users in the file's group, and read by anyone else on the system
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", outputFile, err)
	}

	return len(fonts), nil
}
