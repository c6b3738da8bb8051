package shell

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"estoque/internal/domain"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func renderProducts(products []domain.Product) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("ID", "Name", "Price", "Quantity", "Sold", "Stock", "Category")

	for _, p := range products {
		t.Row(
			strconv.Itoa(p.ID),
			p.Name,
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			strconv.Itoa(p.Quantity),
			strconv.Itoa(p.Sold),
			strconv.Itoa(p.Stock),
			p.Category,
		)
	}

	return t.Render()
}
