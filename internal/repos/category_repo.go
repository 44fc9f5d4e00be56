package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"easyshop/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCols = `category_id, name, COALESCE(description,'') AS description`

func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.SelectContext(ctx, &out, `
  SELECT `+categoryCols+`
  FROM categories
  ORDER BY category_id
`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// Get returns domain.ErrNotFound when no category has the id.
func (r *CategoryRepo) Get(ctx context.Context, id int) (domain.Category, error) {
	var c domain.Category
	err := r.db.GetContext(ctx, &c, r.db.Rebind(`
  SELECT `+categoryCols+`
  FROM categories
  WHERE category_id = ?
`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return c, domain.ErrNotFound
	}
	if err != nil {
		return c, fmt.Errorf("get category %d: %w", id, err)
	}
	return c, nil
}

// Create ignores c.ID and returns the row as stored under its new id.
func (r *CategoryRepo) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	id, err := insertID(ctx, r.db,
		`INSERT INTO categories(name, description) VALUES (?, ?)`, "category_id",
		c.Name, c.Description)
	if err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}
	return r.Get(ctx, id)
}

// Update overwrites every column of the row with the given id. A missing id
// is not an error.
func (r *CategoryRepo) Update(ctx context.Context, id int, c domain.Category) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
  UPDATE categories
  SET name = ?, description = ?
  WHERE category_id = ?
`), c.Name, c.Description, id)
	if err != nil {
		return fmt.Errorf("update category %d: %w", id, err)
	}
	return nil
}

// Delete leaves products that reference the category untouched.
func (r *CategoryRepo) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM categories WHERE category_id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return nil
}
