package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"easyshop/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
    product_id, name, price, category_id, COALESCE(description,'') AS description,
    color, stock, featured, image_url`

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	return r.Search(ctx, domain.ProductFilter{})
}

func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID int) ([]domain.Product, error) {
	return r.Search(ctx, domain.ProductFilter{CategoryID: &categoryID})
}

// Get returns domain.ErrNotFound when no product has the id.
func (r *ProductRepo) Get(ctx context.Context, id int) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, r.db.Rebind(`
  SELECT`+productCols+`
  FROM products
  WHERE product_id = ?
`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return p, domain.ErrNotFound
	}
	if err != nil {
		return p, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// likeEscaper protects LIKE metacharacters in user input; pairs with ESCAPE '!'.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Search AND-combines the filter's set dimensions. Each dimension adds a
// constant predicate with a bound value; unset ones add nothing.
func (r *ProductRepo) Search(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	lower := lowerFunc(r.db)
	where := []string{}
	args := []any{}
	if f.CategoryID != nil {
		where = append(where, `category_id = ?`)
		args = append(args, *f.CategoryID)
	}
	if f.MinPrice != nil {
		where = append(where, `price >= ?`)
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where = append(where, `price <= ?`)
		args = append(args, *f.MaxPrice)
	}
	if f.Color != nil && *f.Color != "" {
		where = append(where, lower+`(color) = ?`)
		args = append(args, strings.ToLower(*f.Color))
	}
	if f.Name != nil && *f.Name != "" {
		where = append(where, lower+`(name) LIKE ? ESCAPE '!'`)
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(*f.Name))+"%")
	}

	q := `
  SELECT` + productCols + `
  FROM products`
	if len(where) > 0 {
		q += `
  WHERE ` + strings.Join(where, ` AND `)
	}
	q += `
  ORDER BY product_id`

	out := []domain.Product{}
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return out, nil
}

// Create ignores p.ID and returns the row as stored under its new id.
// Prices are rounded to cents; out-of-range ones yield domain.ErrPriceRange.
func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	price, err := domain.NormalizePrice(p.Price)
	if err != nil {
		return domain.Product{}, err
	}
	p.Price = price
	id, err := insertID(ctx, r.db, `
  INSERT INTO products(name, price, category_id, description, color, image_url, stock, featured)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, "product_id",
		p.Name, p.Price, p.CategoryID, p.Description, p.Color, p.ImageURL, p.Stock, p.Featured)
	if err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	return r.Get(ctx, id)
}

// Update is a full replace; a missing id is not an error.
func (r *ProductRepo) Update(ctx context.Context, id int, p domain.Product) error {
	price, err := domain.NormalizePrice(p.Price)
	if err != nil {
		return err
	}
	p.Price = price
	_, err = r.db.ExecContext(ctx, r.db.Rebind(`
  UPDATE products
  SET name = ?, price = ?, category_id = ?, description = ?, color = ?,
      image_url = ?, stock = ?, featured = ?
  WHERE product_id = ?
`), p.Name, p.Price, p.CategoryID, p.Description, p.Color, p.ImageURL, p.Stock, p.Featured, id)
	if err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM products WHERE product_id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}
