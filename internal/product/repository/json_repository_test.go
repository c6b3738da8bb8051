package repository

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"estoque/internal/domain"
	"estoque/internal/testutil"
)

func newTestRepository(t *testing.T) (*JSONRepository, func() string) {
	fs := testutil.SetupTestFS(t)
	repo := NewJSONRepository(fs, testutil.DataFile, zap.NewNop())
	read := func() string { return testutil.ReadFile(t, fs, testutil.DataFile) }
	return repo, read
}

func TestNewJSONRepository(t *testing.T) {
	repo, _ := newTestRepository(t)

	assert.NotNil(t, repo)
	assert.Equal(t, testutil.DataFile, repo.path)
}

func TestRepository_FindAll_MissingFileCreatesEmptyCatalog(t *testing.T) {
	repo, read := newTestRepository(t)

	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, products)
	assert.Empty(t, products)
	assert.Equal(t, "[]", read())
}

func TestRepository_FindAll_ExistingFile(t *testing.T) {
	fs := testutil.SetupTestFS(t)
	seeded := []domain.Product{
		{ID: 1, Name: "Queijo Minas", Price: 30, Quantity: 10, Sold: 4, Stock: 6, Category: "Fresco - artesanal"},
		{ID: 3, Name: "Canastra", Price: 72.5, Quantity: 5, Sold: 0, Stock: 5, Category: "Maturado - artesanal"},
	}
	testutil.SeedProducts(t, fs, seeded...)
	repo := NewJSONRepository(fs, testutil.DataFile, zap.NewNop())

	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(seeded, products); diff != "" {
		t.Errorf("loaded products mismatch (-want +got):\n%s", diff)
	}
}

func TestRepository_FindAll_AcceptsDecimalIntegers(t *testing.T) {
	fs := testutil.SetupTestFS(t)
	testutil.WriteFile(t, fs, testutil.DataFile, `[
    {"id": 1, "name": "Ricota", "price": 30.0, "quantity": 10, "sold": 0, "stock": 10, "category": "Fresco - artesanal"}
]`)
	repo := NewJSONRepository(fs, testutil.DataFile, zap.NewNop())

	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 30.0, products[0].Price)
}

func TestRepository_FindAll_CorruptedFileIsReset(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid syntax", content: `[{"id": 1, "name": `},
		{name: "empty file", content: ``},
		{name: "object instead of array", content: `{"id": 1}`},
		{name: "wrong field type", content: `[{"id": "one"}]`},
		{name: "null document", content: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := testutil.SetupTestFS(t)
			testutil.WriteFile(t, fs, testutil.DataFile, tt.content)
			repo := NewJSONRepository(fs, testutil.DataFile, zap.NewNop())

			var notified string
			repo.OnCorruption(func(path string, cause error) {
				notified = path
				assert.Error(t, cause)
			})

			products, err := repo.FindAll(context.Background())
			require.NoError(t, err)

			assert.Empty(t, products)
			assert.Equal(t, testutil.DataFile, notified)
			assert.Equal(t, "[]", testutil.ReadFile(t, fs, testutil.DataFile))
		})
	}
}

func TestRepository_SaveAll_RoundTrip(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	products := []domain.Product{
		{ID: 2, Name: "Provolone", Price: 45.9, Quantity: 8, Sold: 1, Stock: 7, Category: "Maturado - artesanal"},
		{ID: 1, Name: "Queijo Minas", Price: 30, Quantity: 10, Sold: 0, Stock: 10, Category: "Fresco - artesanal"},
	}

	require.NoError(t, repo.SaveAll(ctx, products))
	loaded, err := repo.FindAll(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(products, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRepository_SaveAll_Formatting(t *testing.T) {
	repo, read := newTestRepository(t)

	err := repo.SaveAll(context.Background(), []domain.Product{
		{ID: 1, Name: "Requeijão & Coalho <especial>", Price: 19.9, Quantity: 3, Stock: 3, Category: "Fresco - artesanal"},
	})
	require.NoError(t, err)

	content := read()
	assert.Contains(t, content, "Requeijão & Coalho <especial>")
	assert.Contains(t, content, "\n    {")
	assert.Contains(t, content, `"id": 1`)
	assert.NotContains(t, content, `\u00e3`)
	assert.NotContains(t, content, `\u0026`)
	assert.NotContains(t, content, `\u003c`)
}

func TestRepository_SaveAll_OverwritesPreviousContent(t *testing.T) {
	repo, read := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, []domain.Product{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}))
	require.NoError(t, repo.SaveAll(ctx, nil))

	assert.Equal(t, "[]", read())
}

func TestRepository_CanceledContext(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	err = repo.SaveAll(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRepository_FindAll_ConvertsLegacyKeys(t *testing.T) {
	fs := testutil.SetupTestFS(t)
	testutil.WriteFile(t, fs, testutil.DataFile, `[
    {
        "id": 1,
        "nome": "Queijo Minas",
        "preco": 30.0,
        "quantidade": 10,
        "vendido": 4,
        "estoque": 6,
        "categoria": "Fresco - artesanal"
    },
    {"id": 2, "name": "Canastra", "price": 72.5, "quantity": 5, "sold": 0, "stock": 5, "category": "Maturado - artesanal"}
]`)
	repo := NewJSONRepository(fs, testutil.DataFile, zap.NewNop())
	ctx := context.Background()

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)

	want := []domain.Product{
		{ID: 1, Name: "Queijo Minas", Price: 30, Quantity: 10, Sold: 4, Stock: 6, Category: "Fresco - artesanal"},
		{ID: 2, Name: "Canastra", Price: 72.5, Quantity: 5, Sold: 0, Stock: 5, Category: "Maturado - artesanal"},
	}
	if diff := cmp.Diff(want, products); diff != "" {
		t.Errorf("legacy conversion mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, repo.SaveAll(ctx, products))
	content := testutil.ReadFile(t, fs, testutil.DataFile)
	assert.Contains(t, content, `"name": "Queijo Minas"`)
	assert.NotContains(t, content, `"nome"`)
}
