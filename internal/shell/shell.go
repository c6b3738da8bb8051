package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"estoque/internal/domain"
	"estoque/internal/dto"
	apperrors "estoque/internal/errors"
	"estoque/internal/product/service"
)

type Catalog interface {
	Categories() []string
	ValidatePricing(price float64, quantity int) error
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	UpdateProduct(ctx context.Context, req dto.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	RegisterSale(ctx context.Context, req dto.SaleRequest) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GenerateReport(ctx context.Context) (string, error)
}

const menu = `
Choose an option:
1. Add product
2. List products
3. Update product
4. Delete product
5. Register sale
6. Generate report
7. Exit
`

// Shell is the interactive front end: it reads one line at a time, coerces
// input to typed values and calls the catalog.
type Shell struct {
	catalog Catalog
	in      *bufio.Scanner
	out     io.Writer
	logger  *zap.Logger

	success *color.Color
	failure *color.Color
	warning *color.Color
}

func New(catalog Catalog, in io.Reader, out io.Writer, logger *zap.Logger) *Shell {
	return &Shell{
		catalog: catalog,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		warning: color.New(color.FgYellow, color.Bold),
	}
}

// Run loops until option 7 or end of input.
func (s *Shell) Run(ctx context.Context) error {
	for {
		fmt.Fprint(s.out, menu)
		option, err := s.readLine("Option: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		option = strings.TrimSpace(option)
		if option == "7" {
			s.logger.Info("session finished")
			return nil
		}

		if err := s.dispatch(ctx, option); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// ReportCorruption is meant to be registered as the store's corruption
// handler.
func (s *Shell) ReportCorruption(path string, cause error) {
	s.warning.Fprintf(s.out, "Data file %s is corrupted. Reinitializing the file.\n", path)
}

func (s *Shell) dispatch(ctx context.Context, option string) error {
	traceID := uuid.New().String()
	logger := s.logger.With(zap.String("traceId", traceID), zap.String("option", option))
	logger.Debug("menu option selected")

	switch option {
	case "1":
		return s.addProduct(ctx, logger)
	case "2":
		return s.listProducts(ctx, logger)
	case "3":
		return s.updateProduct(ctx, logger)
	case "4":
		return s.deleteProduct(ctx, logger)
	case "5":
		return s.registerSale(ctx, logger)
	case "6":
		return s.generateReport(ctx, logger)
	default:
		s.failure.Fprintln(s.out, "Invalid option. Try again.")
		return nil
	}
}

func (s *Shell) addProduct(ctx context.Context, logger *zap.Logger) error {
	const numbersMsg = "Price and quantity must be valid numbers."

	name, err := s.readLine("Name: ")
	if err != nil {
		return err
	}
	price, ok, err := s.readFloat("Price: ")
	if err != nil || !ok {
		return s.abort(err, numbersMsg)
	}
	quantity, ok, err := s.readInt("Quantity: ")
	if err != nil || !ok {
		return s.abort(err, numbersMsg)
	}

	if err := s.catalog.ValidatePricing(price, quantity); err != nil {
		s.reportError(logger, err)
		return nil
	}

	category, err := s.chooseCategory()
	if err != nil {
		return err
	}

	product, err := s.catalog.CreateProduct(ctx, dto.CreateProductRequest{
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Category: category,
	})
	if err != nil {
		s.reportError(logger, err)
		return nil
	}

	s.success.Fprintf(s.out, "Product added successfully! ID: %d\n", product.ID)
	return nil
}

func (s *Shell) listProducts(ctx context.Context, logger *zap.Logger) error {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		s.reportError(logger, err)
		return nil
	}

	if len(products) == 0 {
		fmt.Fprintln(s.out, "No products registered.")
		return nil
	}

	fmt.Fprintln(s.out, renderProducts(products))
	return nil
}

func (s *Shell) updateProduct(ctx context.Context, logger *zap.Logger) error {
	const numbersMsg = "ID, price and quantity must be valid numbers."

	id, ok, err := s.readInt("ID of the product to update: ")
	if err != nil || !ok {
		return s.abort(err, numbersMsg)
	}
	name, err := s.readLine("Name: ")
	if err != nil {
		return err
	}
	price, ok, err := s.readFloat("Price: ")
	if err != nil || !ok {
		return s.abort(err, numbersMsg)
	}
	quantity, ok, err := s.readInt("Quantity: ")
	if err != nil || !ok {
		return s.abort(err, numbersMsg)
	}

	if err := s.catalog.ValidatePricing(price, quantity); err != nil {
		s.reportError(logger, err)
		return nil
	}

	// The category is only asked for once the update is known to be possible.
	current, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		s.reportError(logger, err)
		return nil
	}
	if err := current.CheckQuantity(quantity); err != nil {
		s.reportError(logger, err)
		return nil
	}

	category, err := s.chooseCategory()
	if err != nil {
		return err
	}

	_, err = s.catalog.UpdateProduct(ctx, dto.UpdateProductRequest{
		ID:       id,
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Category: category,
	})
	if err != nil {
		s.reportError(logger, err)
		return nil
	}

	s.success.Fprintf(s.out, "Product with ID %d updated successfully!\n", id)
	return nil
}

func (s *Shell) deleteProduct(ctx context.Context, logger *zap.Logger) error {
	id, ok, err := s.readInt("ID of the product to delete: ")
	if err != nil || !ok {
		return s.abort(err, "ID must be a valid number.")
	}

	if err := s.catalog.DeleteProduct(ctx, id); err != nil {
		s.reportError(logger, err)
		return nil
	}

	s.success.Fprintf(s.out, "Product with ID %d deleted successfully!\n", id)
	return nil
}

func (s *Shell) registerSale(ctx context.Context, logger *zap.Logger) error {
	const numbersMsg = "ID and quantity must be valid numbers."

	id, ok, err := s.readInt("ID of the product sold: ")
	if err != nil || !ok {
		return s.abort(err, numbersMsg)
	}
	quantity, ok, err := s.readInt("Quantity sold: ")
	if err != nil || !ok {
		return s.abort(err, numbersMsg)
	}

	if _, err := s.catalog.RegisterSale(ctx, dto.SaleRequest{ProductID: id, Quantity: quantity}); err != nil {
		s.reportError(logger, err)
		return nil
	}

	s.success.Fprintf(s.out, "Sale registered successfully! Product ID: %d, quantity sold: %d\n", id, quantity)
	return nil
}

func (s *Shell) generateReport(ctx context.Context, logger *zap.Logger) error {
	path, err := s.catalog.GenerateReport(ctx)
	if errors.Is(err, service.ErrNothingToExport) {
		s.warning.Fprintln(s.out, "No data available to generate the report.")
		return nil
	}
	if err != nil {
		s.reportError(logger, err)
		return nil
	}

	s.success.Fprintf(s.out, "Report generated successfully: %s\n", path)
	return nil
}

// chooseCategory prompts until a valid 1-based index is entered.
func (s *Shell) chooseCategory() (string, error) {
	categories := s.catalog.Categories()

	fmt.Fprintln(s.out, "Available categories:")
	for i, c := range categories {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, c)
	}

	for {
		idx, ok, err := s.readInt("Choose a category (number): ")
		if err != nil {
			return "", err
		}
		if !ok {
			s.failure.Fprintln(s.out, "Invalid input. Try again.")
			continue
		}
		if idx < 1 || idx > len(categories) {
			s.failure.Fprintln(s.out, "Invalid category. Try again.")
			continue
		}
		return categories[idx-1], nil
	}
}

func (s *Shell) reportError(logger *zap.Logger, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		logger.Debug("validation failed", zap.String("reason", ve.Message))
		s.failure.Fprintln(s.out, capitalize(ve.Message)+".")
		return
	}
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		logger.Debug("product not found", zap.String("reason", nf.Message))
		s.failure.Fprintln(s.out, capitalize(nf.Message)+".")
		return
	}

	logger.Error("operation failed", zap.Error(err))
	s.failure.Fprintf(s.out, "Unexpected error: %v\n", err)
}

// abort prints msg for a coercion failure; read errors are passed through.
func (s *Shell) abort(readErr error, msg string) error {
	if readErr != nil {
		return readErr
	}
	s.failure.Fprintln(s.out, msg)
	return nil
}

func (s *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.in.Text(), "\r"), nil
}

// readInt reports ok=false when the line is not a base-10 integer.
func (s *Shell) readInt(prompt string) (int, bool, error) {
	line, err := s.readLine(prompt)
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func (s *Shell) readFloat(prompt string) (float64, bool, error) {
	line, err := s.readLine(prompt)
	if err != nil {
		return 0, false, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, nil
	}
	return f, true, nil
}

func capitalize(msg string) string {
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
