package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"estoque/internal/domain"
)

// json mirrors encoding/json but leaves <, > and & unescaped.
var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

var (
	errEmptyDataFile = errors.New("data file is empty")
	errNullDataFile  = errors.New("data file holds null instead of an array")
)

// CorruptionHandler is notified when the data file cannot be decoded and is
// about to be reset to an empty catalog.
type CorruptionHandler func(path string, cause error)

// JSONRepository keeps the whole catalog in a single JSON document. Every
// read loads the full file and every write replaces it.
type JSONRepository struct {
	fs        afero.Fs
	path      string
	logger    *zap.Logger
	onCorrupt CorruptionHandler
}

func NewJSONRepository(fs afero.Fs, path string, logger *zap.Logger) *JSONRepository {
	return &JSONRepository{
		fs:     fs,
		path:   path,
		logger: logger,
	}
}

func (r *JSONRepository) OnCorruption(handler CorruptionHandler) {
	r.onCorrupt = handler
}

func (r *JSONRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(r.fs, r.path)
	if os.IsNotExist(err) {
		r.logger.Info("data file not found, creating empty catalog", zap.String("path", r.path))
		if err := r.createEmpty(); err != nil {
			return nil, err
		}
		return []domain.Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return r.reset(errEmptyDataFile)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return r.reset(err)
	}
	if products == nil {
		return r.reset(errNullDataFile)
	}

	if converted := mergeLegacy(data, products); converted > 0 {
		r.logger.Info("legacy product records converted", zap.String("path", r.path), zap.Int("count", converted))
	}

	r.logger.Debug("catalog loaded", zap.String("path", r.path), zap.Int("count", len(products)))
	return products, nil
}

func (r *JSONRepository) SaveAll(ctx context.Context, products []domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if products == nil {
		products = []domain.Product{}
	}

	data, err := json.MarshalIndent(products, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding products: %w", err)
	}

	if err := r.writeAtomic(data); err != nil {
		return err
	}

	r.logger.Debug("catalog saved", zap.String("path", r.path), zap.Int("count", len(products)))
	return nil
}

func (r *JSONRepository) reset(cause error) ([]domain.Product, error) {
	r.logger.Warn("data file is corrupted, reinitializing", zap.String("path", r.path), zap.Error(cause))
	if r.onCorrupt != nil {
		r.onCorrupt(r.path, cause)
	}

	if err := r.writeAtomic([]byte("[]")); err != nil {
		return nil, err
	}
	return []domain.Product{}, nil
}

// createEmpty creates the data file holding an empty array. O_EXCL keeps a
// file created in the meantime from being clobbered.
func (r *JSONRepository) createEmpty() error {
	if err := r.ensureDir(); err != nil {
		return err
	}

	f, err := r.fs.OpenFile(r.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if os.IsExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("creating data file: %w", err)
	}

	if _, err := f.Write([]byte("[]")); err != nil {
		f.Close()
		return fmt.Errorf("writing data file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing data file: %w", err)
	}
	return nil
}

func (r *JSONRepository) writeAtomic(data []byte) error {
	if err := r.ensureDir(); err != nil {
		return err
	}

	tmp, err := afero.TempFile(r.fs, filepath.Dir(r.path), filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		r.fs.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		r.fs.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := r.fs.Chmod(tmpName, 0o644); err != nil {
		r.fs.Remove(tmpName)
		return fmt.Errorf("setting data file permissions: %w", err)
	}
	if err := r.fs.Rename(tmpName, r.path); err != nil {
		r.fs.Remove(tmpName)
		return fmt.Errorf("replacing data file: %w", err)
	}
	return nil
}

func (r *JSONRepository) ensureDir() error {
	dir := filepath.Dir(r.path)
	if dir == "." {
		return nil
	}
	if err := r.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	return nil
}
