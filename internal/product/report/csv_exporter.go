package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"estoque/internal/domain"
)

// CSVExporter writes the catalog as a CSV table, one row per product, with
// the product fields as header.
type CSVExporter struct {
	fs     afero.Fs
	path   string
	logger *zap.Logger
}

func NewCSVExporter(fs afero.Fs, path string, logger *zap.Logger) *CSVExporter {
	return &CSVExporter{
		fs:     fs,
		path:   path,
		logger: logger,
	}
}

func (e *CSVExporter) Path() string {
	return e.path
}

func (e *CSVExporter) Export(ctx context.Context, products []domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(e.path); dir != "." {
		if err := e.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}

	f, err := e.fs.OpenFile(e.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("opening report file: %w", err)
	}

	if err := gocsv.Marshal(&products, f); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report file: %w", err)
	}

	e.logger.Info("report exported", zap.String("path", e.path), zap.Int("rows", len(products)))
	return nil
}
