package autocert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Settings struct {
	// 0 picks a worker count from GOMAXPROCS, 1 renders names one after another in input order
	Workers int `validate:"gte=0"`
	// Keep rendering the rest of the batch after a name fails instead of stopping
	ContinueOnError bool
	EmbedQRCode     bool
	// Format string with one %s for the certificate id, e.g. "https://example.com/verify/%s"
	QrURLPattern string
	QRCodeSize   int `validate:"gte=0"`
}

func NewDefaultSettings() *Settings {
	return &Settings{
		Workers:         1,
		ContinueOnError: false,
		EmbedQRCode:     false,
		QRCodeSize:      DefaultQRCodeSize,
	}
}

func (s *Settings) Validate() error {
	return validator.New().Struct(s)
}

func (s *Settings) QRCodeContent(certID string) string {
	if !strings.Contains(s.QrURLPattern, "%s") {
		return s.QrURLPattern + certID
	}
	return fmt.Sprintf(s.QrURLPattern, certID)
}

type FailedResult struct {
	Number int
	Name   string
	Err    error
}

type BatchResult struct {
	Generated []GeneratedResult
	Failed    []FailedResult
	// Names never rendered because the batch stopped early
	NotAttempted int
}

func (br *BatchResult) FilePaths() []string {
	paths := make([]string, 0, len(br.Generated))
	for _, g := range br.Generated {
		paths = append(paths, g.FilePath)
	}
	return paths
}

type CertificateGenerator struct {
	ID       string
	Request  Request
	Cfg      Config
	Settings Settings
	engine   Engine
	logger   *zap.SugaredLogger
}

func NewCertificateGenerator(req Request, cfg Config, settings Settings, engine Engine, logger *zap.SugaredLogger) *CertificateGenerator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &CertificateGenerator{
		ID:       uuid.NewString(),
		Request:  req,
		Cfg:      cfg,
		Settings: settings,
		engine:   engine,
		logger:   logger,
	}
}

// Generate renders one certificate per normalized name. Files written before
// a failure stay on disk. The returned BatchResult is non-nil once rendering
// has started, even when an error is returned.
func (cg *CertificateGenerator) Generate(ctx context.Context) (*BatchResult, error) {
	now := time.Now()

	names, err := NormalizeNames(cg.Request.Names)
	if err != nil {
		return nil, err
	}

	if err := cg.Request.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	if err := cg.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	renderer, err := cg.newRenderer()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cg.Request.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var result *BatchResult
	workers := cg.calculateWorkerCount(len(names))
	if workers <= 1 {
		result, err = cg.generateSequentialCertificates(ctx, renderer, names)
	} else {
		result, err = cg.generateBatchCertificates(ctx, renderer, names, workers)
	}

	cg.logger.Infow("Certificates",
		"batch", cg.ID,
		"generated", len(result.Generated),
		"failed", len(result.Failed),
		"notAttempted", result.NotAttempted,
		"elapsed", time.Since(now),
	)

	return result, err
}

// Font is read and embedded once per batch and shared read-only by every render
func (cg *CertificateGenerator) newRenderer() (*CertificateRenderer, error) {
	fontBytes, err := os.ReadFile(cg.Request.FontPath)
	if err != nil {
		return nil, fmt.Errorf("reading font: %w", err)
	}

	font, err := cg.engine.EmbedFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("embedding font: %w", err)
	}

	return NewCertificateRenderer(&cg.Request, &cg.Settings, cg.engine, font, cg.logger), nil
}

func (cg *CertificateGenerator) calculateWorkerCount(jobCount int) int {
	workers := cg.Settings.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0) * 2
	}
	workers = max(min(workers, jobCount), 1)
	cg.logger.Debugf("Using %d workers for processing", workers)
	return workers
}

func (cg *CertificateGenerator) generateSequentialCertificates(ctx context.Context, renderer *CertificateRenderer, names []string) (*BatchResult, error) {
	result := &BatchResult{}
	var errs []error

	for i, name := range names {
		if err := ctx.Err(); err != nil {
			result.NotAttempted = len(names) - i
			return result, errors.Join(append(errs, err)...)
		}

		generated, err := renderer.Render(name)
		if err != nil {
			renderErr := &RenderError{Number: i + 1, Name: name, Err: err}
			result.Failed = append(result.Failed, FailedResult{Number: i + 1, Name: name, Err: err})
			cg.logger.Errorf("Failed to generate certificate: %v", renderErr)

			if !cg.Settings.ContinueOnError {
				result.NotAttempted = len(names) - i - 1
				return result, renderErr
			}
			errs = append(errs, renderErr)
			continue
		}

		generated.Number = i + 1
		result.Generated = append(result.Generated, *generated)
		cg.logger.Infof("Generated %s", generated.FilePath)
	}

	return result, errors.Join(errs...)
}

type generationJob struct {
	index int
	name  string
}

type generationResult struct {
	index     int
	name      string
	generated *GeneratedResult
	err       error
	// job was dropped because the batch stopped
	skipped bool
}

func (cg *CertificateGenerator) generateBatchCertificates(ctx context.Context, renderer *CertificateRenderer, names []string, maxWorkers int) (*BatchResult, error) {
	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan generationJob, len(names))
	results := make(chan generationResult, len(names))

	var wg sync.WaitGroup
	for range maxWorkers {
		wg.Add(1)
		go cg.processWorkerJobs(workCtx, cancel, renderer, jobs, results, &wg)
	}

	for i, name := range names {
		jobs <- generationJob{index: i, name: name}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	result, err := cg.aggregateResults(results, len(names))
	if err == nil && result.NotAttempted > 0 {
		err = ctx.Err()
	}
	return result, err
}

func (cg *CertificateGenerator) processWorkerJobs(ctx context.Context, cancel context.CancelFunc, renderer *CertificateRenderer, jobs <-chan generationJob, results chan<- generationResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			results <- generationResult{index: job.index, name: job.name, skipped: true}
			continue
		}

		generated, err := renderer.Render(job.name)
		if err != nil && !cg.Settings.ContinueOnError {
			cancel()
		}

		results <- generationResult{
			index:     job.index,
			name:      job.name,
			generated: generated,
			err:       err,
		}
	}
}

func (cg *CertificateGenerator) aggregateResults(results <-chan generationResult, totalCount int) (*BatchResult, error) {
	ordered := make([]*generationResult, totalCount)
	for r := range results {
		ordered[r.index] = &r
	}

	result := &BatchResult{}
	var errs []error

	for i, r := range ordered {
		if r == nil {
			return result, fmt.Errorf("missing result for certificate %d", i+1)
		}

		switch {
		case r.skipped:
			result.NotAttempted++
		case r.err != nil:
			renderErr := &RenderError{Number: i + 1, Name: r.name, Err: r.err}
			result.Failed = append(result.Failed, FailedResult{Number: i + 1, Name: r.name, Err: r.err})
			cg.logger.Errorf("Failed to generate certificate: %v", renderErr)
			errs = append(errs, renderErr)
		default:
			generated := *r.generated
			generated.Number = i + 1
			result.Generated = append(result.Generated, generated)
			cg.logger.Infof("Generated %s", generated.FilePath)
		}
	}

	if len(errs) == 0 {
		return result, nil
	}
	if !cg.Settings.ContinueOnError {
		// earliest failure in input order
		return result, errs[0]
	}
	return result, errors.Join(errs...)
}
