package services

import (
	"context"

	"easyshop/internal/domain"
)

type CategoryStore interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id int) (domain.Category, error)
	Create(ctx context.Context, c domain.Category) (domain.Category, error)
	Update(ctx context.Context, id int, c domain.Category) error
	Delete(ctx context.Context, id int) error
}

type ProductStore interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID int) ([]domain.Product, error)
	Get(ctx context.Context, id int) (domain.Product, error)
	Search(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Update(ctx context.Context, id int, p domain.Product) error
	Delete(ctx context.Context, id int) error
}

// CatalogService is the single entry point the HTTP layer uses for
// categories and products. It holds no state of its own.
type CatalogService struct {
	Cats  CategoryStore
	Prods ProductStore
}

func NewCatalogService(cats CategoryStore, prods ProductStore) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Cats.List(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id int) (domain.Category, error) {
	return s.Cats.Get(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	return s.Cats.Create(ctx, c)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int, c domain.Category) error {
	return s.Cats.Update(ctx, id, c)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int) error {
	return s.Cats.Delete(ctx, id)
}

func (s *CatalogService) ListProductsByCategory(ctx context.Context, categoryID int) ([]domain.Product, error) {
	return s.Prods.ListByCategory(ctx, categoryID)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (domain.Product, error) {
	return s.Prods.Get(ctx, id)
}

func (s *CatalogService) Search(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	return s.Prods.Search(ctx, f)
}

func (s *CatalogService) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	return s.Prods.Create(ctx, p)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int, p domain.Product) error {
	return s.Prods.Update(ctx, id, p)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	return s.Prods.Delete(ctx, id)
}
