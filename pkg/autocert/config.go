package autocert

import (
	"fmt"
	"os"
	"path/filepath"
)

const DefaultFontMetadataPath = "font_metadata.json"

type Config struct {
	// A path to json where it store font name and path to the font file
	FontMetadataPath string
	// Directory where the temporary files are stored during processing, the file will be deleted after processing
	TmpDir string
}

func NewDefaultConfig() *Config {
	return &Config{
		FontMetadataPath: DefaultFontMetadataPath,
		TmpDir:           filepath.Join(os.TempDir(), "namecert", "tmp"),
	}
}

// EnsureDirs creates the temporary directory if it does not exist.
func (c *Config) EnsureDirs() error {
	// 0755 mean owner can read, write and execute
	if err := os.MkdirAll(c.TmpDir, 0755); err != nil {
		return fmt.Errorf("creating tmp directory: %w", err)
	}
	return nil
}
