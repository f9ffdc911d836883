package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shishir1337/maneelclub-sub001/internal/domain"
	"github.com/shishir1337/maneelclub-sub001/internal/repository"
)

// CatalogStore is the full catalog persistence surface.
type CatalogStore interface {
	ProductStore
	ListActive(ctx context.Context) ([]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	LowStock(ctx context.Context, threshold int) ([]domain.Product, error)
}

type ProductService struct {
	store    CatalogStore
	settings *SettingsService
}

func NewProductService(store CatalogStore, settings *SettingsService) *ProductService {
	return &ProductService{store: store, settings: settings}
}

func (s *ProductService) ListActive(ctx context.Context) ([]domain.Product, error) {
	return s.store.ListActive(ctx)
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.store.List(ctx)
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.store.FindBySlug(ctx, slug)
}

func (s *ProductService) Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	slug := req.Slug
	if slug == "" {
		slug = req.Name
	}
	product := &domain.Product{
		Name:      req.Name,
		Slug:      Slugify(slug),
		Price:     req.Price,
		SalePrice: req.SalePrice,
		Stock:     req.Stock,
		ImageURL:  req.ImageURL,
		IsActive:  true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if err := s.store.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("A product with slug %s already exists", product.Slug)
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req domain.CreateProductRequest) (*domain.Product, error) {
	product, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = req.Name
	if req.Slug != "" {
		product.Slug = Slugify(req.Slug)
	}
	product.Price = req.Price
	product.SalePrice = req.SalePrice
	product.Stock = req.Stock
	product.ImageURL = req.ImageURL
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if err := s.store.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("A product with slug %s already exists", product.Slug)
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// LowStock lists products at or below the configured threshold.
func (s *ProductService) LowStock(ctx context.Context) ([]domain.Product, error) {
	return s.store.LowStock(ctx, s.settings.GetInt(ctx, SettingLowStockThreshold))
}
