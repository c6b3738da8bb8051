package testutil

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"

	"estoque/internal/domain"
)

const (
	DataFile   = "data/produtos.json"
	ReportFile = "data/relatorio_produtos.csv"
)

var Categories = []string{"Maturado - artesanal", "Fresco - artesanal"}

// SetupTestFS returns an empty in-memory filesystem.
func SetupTestFS(t *testing.T) afero.Fs {
	t.Helper()
	return afero.NewMemMapFs()
}

// SeedProducts writes products to DataFile as the store would find them on disk.
func SeedProducts(t *testing.T, fs afero.Fs, products ...domain.Product) {
	t.Helper()
	if products == nil {
		products = []domain.Product{}
	}

	data, err := jsoniter.MarshalIndent(products, "", "    ")
	if err != nil {
		t.Fatalf("failed to encode seed products: %v", err)
	}
	WriteFile(t, fs, DataFile, string(data))
}

func WriteFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func Exists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, path)
	if err != nil {
		t.Fatalf("failed to stat %s: %v", path, err)
	}
	return ok
}
