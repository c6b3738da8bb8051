package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"estoque/internal/domain"
	"estoque/internal/dto"
	apperrors "estoque/internal/errors"
)

var ErrNothingToExport = errors.New("nothing to export")

type Repository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	SaveAll(ctx context.Context, products []domain.Product) error
}

type Exporter interface {
	Export(ctx context.Context, products []domain.Product) error
	Path() string
}

type CatalogService struct {
	repo       Repository
	exporter   Exporter
	categories []string
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewCatalogService(repo Repository, exporter Exporter, categories []string, logger *zap.Logger) *CatalogService {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &CatalogService{
		repo:       repo,
		exporter:   exporter,
		categories: append([]string(nil), categories...),
		validate:   validate,
		logger:     logger,
	}
}

func (s *CatalogService) Categories() []string {
	return append([]string(nil), s.categories...)
}

// ValidatePricing applies the price and quantity rules shared by create and
// update.
func (s *CatalogService) ValidatePricing(price float64, quantity int) error {
	return s.validateStruct(dto.PricingInput{Price: price, Quantity: quantity})
}

func (s *CatalogService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}
	if err := s.validateCategory(req.Category); err != nil {
		return nil, err
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load products", err)
	}

	product := domain.NewProduct(domain.NextID(products), req.Name, req.Price, req.Quantity, req.Category)
	products = append(products, product)

	if err := s.repo.SaveAll(ctx, products); err != nil {
		return nil, apperrors.NewInternalError("failed to save products", err)
	}

	s.logger.Info("product created", zap.Int("productId", product.ID), zap.String("category", product.Category), zap.Int("quantity", product.Quantity))
	return &product, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load products", err)
	}

	idx := domain.IndexOf(products, id)
	if idx < 0 {
		return nil, productNotFound(id)
	}
	return &products[idx], nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, req dto.UpdateProductRequest) (*domain.Product, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}
	if err := s.validateCategory(req.Category); err != nil {
		return nil, err
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load products", err)
	}

	idx := domain.IndexOf(products, req.ID)
	if idx < 0 {
		s.logger.Warn("update of unknown product", zap.Int("productId", req.ID))
		return nil, productNotFound(req.ID)
	}

	if err := products[idx].Apply(req.Name, req.Price, req.Quantity, req.Category); err != nil {
		return nil, err
	}

	if err := s.repo.SaveAll(ctx, products); err != nil {
		return nil, apperrors.NewInternalError("failed to save products", err)
	}

	updated := products[idx]
	s.logger.Info("product updated", zap.Int("productId", updated.ID), zap.Int("quantity", updated.Quantity), zap.Int("stock", updated.Stock))
	return &updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to load products", err)
	}

	kept := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	if len(kept) == len(products) {
		s.logger.Warn("delete of unknown product", zap.Int("productId", id))
		return productNotFound(id)
	}

	if err := s.repo.SaveAll(ctx, kept); err != nil {
		return apperrors.NewInternalError("failed to save products", err)
	}

	s.logger.Info("product deleted", zap.Int("productId", id))
	return nil
}

func (s *CatalogService) RegisterSale(ctx context.Context, req dto.SaleRequest) (*domain.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load products", err)
	}

	idx := domain.IndexOf(products, req.ProductID)
	if idx < 0 {
		s.logger.Warn("sale of unknown product", zap.Int("productId", req.ProductID))
		return nil, productNotFound(req.ProductID)
	}

	if err := products[idx].Sell(req.Quantity); err != nil {
		s.logger.Warn("sale rejected", zap.Int("productId", req.ProductID), zap.Int("quantity", req.Quantity), zap.Int("stock", products[idx].Stock))
		return nil, err
	}

	if err := s.repo.SaveAll(ctx, products); err != nil {
		return nil, apperrors.NewInternalError("failed to save products", err)
	}

	sold := products[idx]
	s.logger.Info("sale registered", zap.Int("productId", sold.ID), zap.Int("quantity", req.Quantity), zap.Int("stock", sold.Stock))
	return &sold, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load products", err)
	}
	return products, nil
}

// GenerateReport exports the catalog and returns the path written. An empty
// catalog yields ErrNothingToExport and leaves any previous report alone.
func (s *CatalogService) GenerateReport(ctx context.Context) (string, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return "", apperrors.NewInternalError("failed to load products", err)
	}

	if len(products) == 0 {
		return "", ErrNothingToExport
	}

	if err := s.exporter.Export(ctx, products); err != nil {
		return "", apperrors.NewInternalError("failed to export report", err)
	}
	return s.exporter.Path(), nil
}

func (s *CatalogService) validateCategory(category string) error {
	for _, c := range s.categories {
		if c == category {
			return nil
		}
	}

	msg := fmt.Sprintf("unknown category %q", category)
	return apperrors.NewValidationError(msg, apperrors.ValidationDetail{
		Field:   "category",
		Message: msg,
	})
}

func (s *CatalogService) validateStruct(v interface{}) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewInternalError("failed to validate input", err)
	}

	details := make([]apperrors.ValidationDetail, 0, len(fieldErrs))
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := ruleMessage(fe)
		details = append(details, apperrors.ValidationDetail{
			Field:   fe.Field(),
			Message: msg,
		})
		messages = append(messages, msg)
	}
	return apperrors.NewValidationError(strings.Join(messages, "; "), details...)
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "gte":
		return fe.Field() + " must not be lower than " + fe.Param()
	case "required":
		return fe.Field() + " is required"
	}
	return fe.Field() + " is invalid"
}

func productNotFound(id int) *apperrors.NotFoundError {
	return apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
}
