package dto

type PricingInput struct {
	Price    float64 `json:"price" validate:"gt=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

type CreateProductRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price" validate:"gt=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	Category string  `json:"category" validate:"required"`
}

type UpdateProductRequest struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price" validate:"gt=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	Category string  `json:"category" validate:"required"`
}

type SaleRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}
