package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrNotFound is returned by stores when a by-id read matches no row.
var ErrNotFound = errors.New("not found")

// ErrPriceRange is returned for prices that do not fit NUMERIC(10,2).
var ErrPriceRange = errors.New("price must be below 100000000 in magnitude")

var priceLimit = decimal.New(1, 8)

// NormalizePrice rounds to cents and rejects values with more than eight
// integer digits, the precision every supported database keeps.
func NormalizePrice(d decimal.Decimal) (decimal.Decimal, error) {
	d = d.Round(2)
	if d.Abs().GreaterThanOrEqual(priceLimit) {
		return d, ErrPriceRange
	}
	return d, nil
}

type Category struct {
	ID          int    `db:"category_id" json:"categoryId"`
	Name        string `db:"name"        json:"name"`
	Description string `db:"description" json:"description"`
}

type Product struct {
	ID          int             `db:"product_id"  json:"productId"`
	Name        string          `db:"name"        json:"name"`
	Price       decimal.Decimal `db:"price"       json:"price"`
	CategoryID  int             `db:"category_id" json:"categoryId"`
	Description string          `db:"description" json:"description"`
	Color       *string         `db:"color"       json:"color"`
	Stock       int             `db:"stock"       json:"stock"`
	Featured    bool            `db:"featured"    json:"featured"`
	ImageURL    *string         `db:"image_url"   json:"imageUrl"`
}

// ProductFilter holds the optional search dimensions. A nil field (or an
// empty Color/Name) leaves that dimension unconstrained.
type ProductFilter struct {
	CategoryID *int
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Color      *string
	Name       *string
}
