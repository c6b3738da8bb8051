package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "estoque/internal/errors"
)

func TestNewProduct_StockEqualsQuantity(t *testing.T) {
	p := NewProduct(1, "Queijo Minas", 30.0, 10, "Fresco - artesanal")

	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "Queijo Minas", p.Name)
	assert.Equal(t, 30.0, p.Price)
	assert.Equal(t, 10, p.Quantity)
	assert.Equal(t, 0, p.Sold)
	assert.Equal(t, 10, p.Stock)
	assert.Equal(t, "Fresco - artesanal", p.Category)
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name     string
		products []Product
		want     int
	}{
		{name: "empty catalog", products: nil, want: 1},
		{name: "single product", products: []Product{{ID: 1}}, want: 2},
		{name: "gap in ids", products: []Product{{ID: 1}, {ID: 5}, {ID: 3}}, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.products))
		})
	}
}

func TestIndexOf(t *testing.T) {
	products := []Product{{ID: 4}, {ID: 9}}

	assert.Equal(t, 1, IndexOf(products, 9))
	assert.Equal(t, -1, IndexOf(products, 2))
}

func TestProduct_Sell(t *testing.T) {
	p := NewProduct(1, "Queijo Minas", 30.0, 10, "Fresco - artesanal")

	require.NoError(t, p.Sell(4))
	assert.Equal(t, 4, p.Sold)
	assert.Equal(t, 6, p.Stock)
	assert.Equal(t, p.Quantity-p.Sold, p.Stock)
}

func TestProduct_Sell_InvalidQuantityLeavesProductUnchanged(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
	}{
		{name: "more than stock", quantity: 7},
		{name: "zero", quantity: 0},
		{name: "negative", quantity: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{ID: 1, Name: "Canastra", Price: 55.5, Quantity: 10, Sold: 4, Stock: 6}
			before := p

			err := p.Sell(tt.quantity)

			_, ok := apperrors.IsValidationError(err)
			assert.True(t, ok)
			assert.Equal(t, before, p)
		})
	}
}

func TestProduct_Apply_PreservesSold(t *testing.T) {
	p := Product{ID: 2, Name: "Old", Price: 10, Quantity: 10, Sold: 3, Stock: 7, Category: "Fresco - artesanal"}

	require.NoError(t, p.Apply("New", 12.5, 20, "Maturado - artesanal"))

	assert.Equal(t, "New", p.Name)
	assert.Equal(t, 12.5, p.Price)
	assert.Equal(t, 20, p.Quantity)
	assert.Equal(t, 3, p.Sold)
	assert.Equal(t, 17, p.Stock)
	assert.Equal(t, "Maturado - artesanal", p.Category)
}

func TestProduct_Apply_QuantityBelowSold(t *testing.T) {
	p := Product{ID: 2, Name: "Old", Price: 10, Quantity: 10, Sold: 3, Stock: 7}
	before := p

	err := p.Apply("New", 12.5, 2, "Fresco - artesanal")

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "quantity", ve.Details[0].Field)
	assert.Equal(t, before, p)
}

func TestProduct_CheckQuantity(t *testing.T) {
	p := Product{ID: 2, Quantity: 10, Sold: 3, Stock: 7}

	assert.NoError(t, p.CheckQuantity(3))
	assert.NoError(t, p.CheckQuantity(12))

	ve, ok := apperrors.IsValidationError(p.CheckQuantity(2))
	require.True(t, ok)
	assert.Equal(t, "quantity cannot be lower than the 3 units already sold", ve.Message)
}
