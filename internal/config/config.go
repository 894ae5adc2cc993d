package config

import (
	"strings"

	"github.com/SeakMengs/NameCert/internal/env"
)

type Config struct {
	ENV      string
	Generate GenerateConfig
	Minio    MinioConfig
}

// GenerateConfig holds defaults for the namecert flags
type GenerateConfig struct {
	FONT               string
	FONT_METADATA_PATH string
	FONT_WEIGHT        string
	FONT_COLOR         string
	TEMPLATE           string
	NAMES_FILE         string
	NAMES_COLUMN       string
	OUTPUT_DIR         string
	TMP_DIR            string
	X_OFFSET           float64
	Y_OFFSET           float64
	WORKERS            int
	CONTINUE_ON_ERROR  bool
	QR_URL_PATTERN     string
}

type MinioConfig struct {
	ENDPOINT   string
	ACCESS_KEY string
	SECRET_KEY string
	BUCKET     string
	USE_SSL    bool
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

// Uploads are only possible when an endpoint is configured
func (m MinioConfig) Enabled() bool {
	return m.ENDPOINT != ""
}

func GetConfig() Config {
	return Config{
		ENV: env.GetString("ENV", "development"),
		Generate: GenerateConfig{
			FONT:               env.GetString("NAMECERT_FONT", ""),
			FONT_METADATA_PATH: env.GetString("NAMECERT_FONT_METADATA", "font_metadata.json"),
			FONT_WEIGHT:        env.GetString("NAMECERT_FONT_WEIGHT", "regular"),
			FONT_COLOR:         env.GetString("NAMECERT_FONT_COLOR", "#000000"),
			TEMPLATE:           env.GetString("NAMECERT_TEMPLATE", ""),
			NAMES_FILE:         env.GetString("NAMECERT_NAMES_FILE", ""),
			NAMES_COLUMN:       env.GetString("NAMECERT_NAMES_COLUMN", "name"),
			OUTPUT_DIR:         env.GetString("NAMECERT_OUTPUT_DIR", "output"),
			TMP_DIR:            env.GetString("NAMECERT_TMP_DIR", ""),
			X_OFFSET:           env.GetFloat("NAMECERT_X_OFFSET", 0),
			Y_OFFSET:           env.GetFloat("NAMECERT_Y_OFFSET", 0),
			// By default names are rendered one after another, set 0 to use all CPUs
			WORKERS:           env.GetInt("NAMECERT_WORKERS", 1),
			CONTINUE_ON_ERROR: env.GetBool("NAMECERT_CONTINUE_ON_ERROR", false),
			QR_URL_PATTERN:    env.GetString("NAMECERT_QR_URL_PATTERN", ""),
		},
		Minio: MinioConfig{
			ENDPOINT:   env.GetString("MINIO_ENDPOINT", ""),
			ACCESS_KEY: env.GetString("MINIO_ACCESS_KEY", ""),
			SECRET_KEY: env.GetString("MINIO_SECRET_KEY", ""),
			BUCKET:     env.GetString("MINIO_BUCKET", "namecert"),
			USE_SSL:    env.GetBool("MINIO_USE_SSL", false),
		},
	}
}
