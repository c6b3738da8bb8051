package domain

import (
	"fmt"

	apperrors "estoque/internal/errors"
)

type Product struct {
	ID       int     `json:"id" csv:"id"`
	Name     string  `json:"name" csv:"name"`
	Price    float64 `json:"price" csv:"price"`
	Quantity int     `json:"quantity" csv:"quantity"`
	Sold     int     `json:"sold" csv:"sold"`
	Stock    int     `json:"stock" csv:"stock"`
	Category string  `json:"category" csv:"category"`
}

func NewProduct(id int, name string, price float64, quantity int, category string) Product {
	return Product{
		ID:       id,
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Sold:     0,
		Stock:    quantity,
		Category: category,
	}
}

// Apply rewrites the editable fields and recomputes stock from the units
// already sold.
func (p *Product) Apply(name string, price float64, quantity int, category string) error {
	if err := p.CheckQuantity(quantity); err != nil {
		return err
	}

	p.Name = name
	p.Price = price
	p.Quantity = quantity
	p.Category = category
	p.Stock = quantity - p.Sold
	return nil
}

// CheckQuantity rejects a new quantity that would leave stock negative.
func (p *Product) CheckQuantity(quantity int) error {
	if quantity < p.Sold {
		msg := fmt.Sprintf("quantity cannot be lower than the %d units already sold", p.Sold)
		return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: msg,
		})
	}
	return nil
}

func (p *Product) Sell(quantity int) error {
	if quantity <= 0 || quantity > p.Stock {
		msg := "invalid sold quantity"
		return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: fmt.Sprintf("quantity must be between 1 and %d", p.Stock),
		})
	}

	p.Sold += quantity
	p.Stock -= quantity
	return nil
}

// NextID returns max(existing ids)+1, or 1 for an empty catalog.
func NextID(products []Product) int {
	maxID := 0
	for _, p := range products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

func IndexOf(products []Product, id int) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
