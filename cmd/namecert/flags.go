package main

import (
	"fmt"

	"github.com/SeakMengs/NameCert/internal/config"
	"github.com/SeakMengs/NameCert/internal/util"
	"github.com/go-playground/validator/v10"
	flag "github.com/spf13/pflag"
)

type generateFlags struct {
	font            string
	fontMetadata    string
	fontWeight      string
	color           string
	template        string
	names           []string
	namesFile       string
	namesColumn     string
	output          string
	tmpDir          string
	xOffset         float64
	yOffset         float64
	workers         int
	continueOnError bool
	qrURLPattern    string
	zip             string
	upload          bool
}

// Only the checks that need no file system access, everything else is reported by the generator
type generateOptions struct {
	Font       string   `validate:"strNotEmpty"`
	Template   string   `validate:"strNotEmpty"`
	FontWeight string   `validate:"oneof=regular bold"`
	Workers    int      `validate:"gte=0"`
	NamesFile  string   `validate:"required_without=Names"`
	Names      []string `validate:"required_without=NamesFile"`
}

var optionFlagNames = map[string]string{
	"Font":       "--font",
	"Template":   "--template",
	"FontWeight": "--font-weight",
	"Workers":    "--workers",
	"NamesFile":  "--names-file",
	"Names":      "--name",
}

func parseFlags(args []string, defaults config.GenerateConfig) (*generateFlags, error) {
	f := &generateFlags{}

	fs := flag.NewFlagSet(util.GetAppName(), flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: namecert --font FONT --template TEMPLATE.pdf [--name NAME]... [NAME]...\n\n")
		fs.PrintDefaults()
	}

	fs.StringVarP(&f.font, "font", "f", defaults.FONT, "font file path or family name listed in the font metadata")
	fs.StringVar(&f.fontMetadata, "font-metadata", defaults.FONT_METADATA_PATH, "font metadata json written by scan_font")
	fs.StringVar(&f.fontWeight, "font-weight", defaults.FONT_WEIGHT, "font weight: regular or bold")
	fs.StringVarP(&f.color, "color", "c", defaults.FONT_COLOR, "font color as #rrggbb or r,g,b with components in [0,1]")
	fs.StringVarP(&f.template, "template", "t", defaults.TEMPLATE, "template PDF, the name is drawn on its first page")
	fs.StringArrayVarP(&f.names, "name", "n", nil, "name to print, repeat for more names")
	fs.StringVar(&f.namesFile, "names-file", defaults.NAMES_FILE, "file with names: .csv (see --names-column) or one name per line")
	fs.StringVar(&f.namesColumn, "names-column", defaults.NAMES_COLUMN, "CSV column holding the names")
	fs.StringVarP(&f.output, "out", "o", defaults.OUTPUT_DIR, "output directory")
	fs.StringVar(&f.tmpDir, "tmp-dir", defaults.TMP_DIR, "directory for intermediate files (\"\" = system temp)")
	fs.Float64VarP(&f.xOffset, "x-offset", "x", defaults.X_OFFSET, "horizontal offset from the page center in pt")
	fs.Float64VarP(&f.yOffset, "y-offset", "y", defaults.Y_OFFSET, "vertical offset from the page center in pt, positive moves up")
	fs.IntVarP(&f.workers, "workers", "w", defaults.WORKERS, "parallel workers (1 = sequential, 0 = auto)")
	fs.BoolVar(&f.continueOnError, "continue-on-error", defaults.CONTINUE_ON_ERROR, "keep going after a name fails")
	fs.StringVar(&f.qrURLPattern, "qr-url-pattern", defaults.QR_URL_PATTERN, "stamp a QR code linking to this pattern, %s is the certificate id")
	fs.StringVar(&f.zip, "zip", "", "also bundle the generated certificates into this zip file")
	fs.BoolVar(&f.upload, "upload", false, "upload the generated certificates to MinIO/S3 (MINIO_* env)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Positional arguments are names as well
	f.names = append(f.names, fs.Args()...)

	return f, nil
}

func (f *generateFlags) validate() error {
	v := validator.New()
	if err := util.RegisterCustomValidations(v); err != nil {
		return err
	}

	opts := generateOptions{
		Font:       f.font,
		Template:   f.template,
		FontWeight: f.fontWeight,
		Workers:    f.workers,
		NamesFile:  f.namesFile,
		Names:      f.names,
	}

	if err := v.Struct(opts); err != nil {
		return fmt.Errorf("%w: %s", ErrUsage, util.GenerateErrorMessagesAsString(err, optionFlagNames))
	}

	return nil
}
