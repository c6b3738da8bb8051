package repository

import "estoque/internal/domain"

// legacyProduct is the record layout written by the first version of the
// tool, which used Portuguese keys. Name is a pointer so a record can be
// told apart from one that merely lacks a name.
type legacyProduct struct {
	ID       int     `json:"id"`
	Name     *string `json:"nome"`
	Price    float64 `json:"preco"`
	Quantity int     `json:"quantidade"`
	Sold     int     `json:"vendido"`
	Stock    int     `json:"estoque"`
	Category string  `json:"categoria"`
}

// mergeLegacy replaces every record of products that was stored with the
// legacy keys by its converted form and returns how many were replaced.
// The next save writes them back with the current keys.
func mergeLegacy(data []byte, products []domain.Product) int {
	var legacy []legacyProduct
	if err := json.Unmarshal(data, &legacy); err != nil || len(legacy) != len(products) {
		return 0
	}

	converted := 0
	for i, lp := range legacy {
		if lp.Name == nil {
			continue
		}
		products[i] = domain.Product{
			ID:       lp.ID,
			Name:     *lp.Name,
			Price:    lp.Price,
			Quantity: lp.Quantity,
			Sold:     lp.Sold,
			Stock:    lp.Stock,
			Category: lp.Category,
		}
		converted++
	}
	return converted
}
