package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/SeakMengs/NameCert/internal/config"
	filestorage "github.com/SeakMengs/NameCert/internal/file_storage"
	"github.com/SeakMengs/NameCert/internal/util"
	"github.com/SeakMengs/NameCert/pkg/autocert"
	"go.uber.org/zap"
)

func run(ctx context.Context, args []string, cfg config.Config, logger *zap.SugaredLogger, out io.Writer) error {
	flags, err := parseFlags(args, cfg.Generate)
	if err != nil {
		return err
	}
	if err := flags.validate(); err != nil {
		return err
	}

	req, err := buildRequest(flags)
	if err != nil {
		return err
	}

	settings := buildSettings(flags)

	weight, err := autocert.ParseFontWeight(flags.fontWeight)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	acCfg := autocert.NewDefaultConfig()
	acCfg.FontMetadataPath = flags.fontMetadata
	if flags.tmpDir != "" {
		acCfg.TmpDir = flags.tmpDir
	}
	if err := acCfg.EnsureDirs(); err != nil {
		return err
	}

	// Every run gets its own tmp dir, removed once the batch is done
	runTmpDir, err := os.MkdirTemp(acCfg.TmpDir, "batch_*")
	if err != nil {
		return fmt.Errorf("creating tmp directory: %w", err)
	}
	defer os.RemoveAll(runTmpDir)
	acCfg.TmpDir = runTmpDir

	engine, err := autocert.NewPdfEngine(acCfg, weight)
	if err != nil {
		return err
	}

	generator := autocert.NewCertificateGenerator(*req, *acCfg, *settings, engine, logger)
	result, genErr := generator.Generate(ctx)
	if result == nil {
		return genErr
	}

	fmt.Fprintln(out, "Generated certificate files:")
	for _, g := range result.Generated {
		fmt.Fprintln(out, g.FilePath)
	}

	if len(result.Generated) > 0 {
		if err := publish(ctx, flags, cfg, generator.ID, result, logger); err != nil {
			return errors.Join(genErr, err)
		}
	}

	if genErr == nil {
		fmt.Fprintln(out, "All PDFs generated successfully")
	}

	return genErr
}

func buildRequest(flags *generateFlags) (*autocert.Request, error) {
	fontPath, err := autocert.ResolveFontPath(flags.font, flags.fontMetadata)
	if err != nil {
		return nil, err
	}

	color, err := autocert.ParseColor(flags.color)
	if err != nil {
		return nil, err
	}

	names := append([]string{}, flags.names...)
	if flags.namesFile != "" {
		fileNames, err := autocert.ReadNamesFile(flags.namesFile, flags.namesColumn)
		if err != nil {
			return nil, err
		}
		names = append(names, fileNames...)
	}

	return &autocert.Request{
		FontPath:     fontPath,
		TemplatePath: flags.template,
		Names:        names,
		OutputDir:    flags.output,
		FontColor:    color,
		XOffset:      flags.xOffset,
		YOffset:      flags.yOffset,
	}, nil
}

func buildSettings(flags *generateFlags) *autocert.Settings {
	settings := autocert.NewDefaultSettings()
	settings.Workers = flags.workers
	settings.ContinueOnError = flags.continueOnError
	settings.QrURLPattern = flags.qrURLPattern
	settings.EmbedQRCode = flags.qrURLPattern != ""
	return settings
}

// Zips and uploads whatever was generated, also after a partial failure
func publish(ctx context.Context, flags *generateFlags, cfg config.Config, batchID string, result *autocert.BatchResult, logger *zap.SugaredLogger) error {
	paths := result.FilePaths()

	if flags.zip != "" {
		if err := autocert.ZipFiles(paths, flags.zip); err != nil {
			return fmt.Errorf("creating zip archive: %w", err)
		}
		logger.Infof("Zipped %d certificates into %s", len(paths), flags.zip)
	}

	if !flags.upload {
		return nil
	}

	if !cfg.Minio.Enabled() {
		return fmt.Errorf("%w: --upload needs MINIO_ENDPOINT", ErrUsage)
	}

	s3, err := filestorage.NewMinioClient(&cfg.Minio)
	if err != nil {
		return fmt.Errorf("connecting to minio: %w", err)
	}

	fuo := &util.FileUploadOptions{
		DirectoryPath: util.GetBatchDirectoryPath(batchID),
		Bucket:        cfg.Minio.BUCKET,
		S3:            s3,
	}

	for _, path := range paths {
		info, err := util.UploadFileToS3ByPath(ctx, path, fuo)
		if err != nil {
			return err
		}
		logger.Infow("Uploaded certificate", "bucket", info.Bucket, "key", info.Key, "size", info.Size)
	}

	return nil
}
