package repos

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"modernc.org/sqlite"

	"easyshop/internal/config"
	"easyshop/internal/domain"
	applog "easyshop/internal/log"
)

// SQLite's built-in LOWER folds ASCII only. ulower folds with the same
// Unicode rules as strings.ToLower, which lower-cases the bound values.
func init() {
	sqlite.MustRegisterDeterministicScalarFunction("ulower", 1, func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case string:
			return strings.ToLower(v), nil
		case []byte:
			return strings.ToLower(string(v)), nil
		default:
			return v, nil
		}
	})
}

// lowerFunc is the case-folding SQL function for the pool's dialect.
// postgres and mysql LOWER already follow Unicode case rules.
func lowerFunc(db *sqlx.DB) string {
	if db.DriverName() == "sqlite" {
		return "ulower"
	}
	return "LOWER"
}

var schemas = map[string][]string{
	"sqlite": {
		`PRAGMA foreign_keys = OFF`,
		`CREATE TABLE IF NOT EXISTS categories(
  category_id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT ''
)`,
		`CREATE TABLE IF NOT EXISTS products(
  product_id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL DEFAULT 0,
  category_id INTEGER NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  color TEXT,
  image_url TEXT,
  stock INTEGER NOT NULL DEFAULT 0,
  featured INTEGER NOT NULL DEFAULT 0
)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)`,
		`CREATE TABLE IF NOT EXISTS users(
  user_id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL UNIQUE,
  hashed_password TEXT NOT NULL,
  role TEXT NOT NULL
)`,
	},
	"postgres": {
		`CREATE TABLE IF NOT EXISTS categories(
  category_id SERIAL PRIMARY KEY,
  name VARCHAR(50) NOT NULL,
  description TEXT NOT NULL DEFAULT ''
)`,
		`CREATE TABLE IF NOT EXISTS products(
  product_id SERIAL PRIMARY KEY,
  name VARCHAR(50) NOT NULL,
  price NUMERIC(10,2) NOT NULL DEFAULT 0,
  category_id INTEGER NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  color VARCHAR(20),
  image_url VARCHAR(200),
  stock INTEGER NOT NULL DEFAULT 0,
  featured BOOLEAN NOT NULL DEFAULT FALSE
)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)`,
		`CREATE TABLE IF NOT EXISTS users(
  user_id SERIAL PRIMARY KEY,
  username VARCHAR(50) NOT NULL UNIQUE,
  hashed_password VARCHAR(100) NOT NULL,
  role VARCHAR(50) NOT NULL
)`,
	},
	"mysql": {
		`CREATE TABLE IF NOT EXISTS categories(
  category_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  name VARCHAR(50) NOT NULL,
  description TEXT NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS products(
  product_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  name VARCHAR(50) NOT NULL,
  price DECIMAL(10,2) NOT NULL DEFAULT 0,
  category_id INT NOT NULL,
  description TEXT NOT NULL,
  color VARCHAR(20),
  image_url VARCHAR(200),
  stock INT NOT NULL DEFAULT 0,
  featured BOOLEAN NOT NULL DEFAULT FALSE,
  INDEX idx_products_category (category_id)
)`,
		`CREATE TABLE IF NOT EXISTS users(
  user_id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  username VARCHAR(50) NOT NULL UNIQUE,
  hashed_password VARCHAR(100) NOT NULL,
  role VARCHAR(50) NOT NULL
)`,
	},
}

// OpenDB opens the pool for the configured driver, pings it and makes sure
// the schema exists. Every store call borrows one pooled connection for a
// single statement.
func OpenDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	stmts, ok := schemas[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	// each connection to :memory: is a separate database
	if cfg.Driver == "sqlite" && strings.Contains(cfg.DSN, ":memory:") {
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
	}
	return db, nil
}

// insertID runs an INSERT and returns the generated key. lib/pq has no
// LastInsertId, so postgres goes through RETURNING.
func insertID(ctx context.Context, db *sqlx.DB, query, idCol string, args ...any) (int, error) {
	if db.DriverName() == "postgres" {
		var id int
		err := db.QueryRowxContext(ctx, db.Rebind(query+" RETURNING "+idCol), args...).Scan(&id)
		return id, err
	}
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// SeedIfEmpty inserts demo categories and products when the catalog is empty.
func SeedIfEmpty(ctx context.Context, db *sqlx.DB) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.Info(nil, "seed.catalog", map[string]any{"categories": 3, "products": 7})

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	cats := []domain.Category{
		{ID: 1, Name: "Electronics", Description: "Explore the latest gadgets and electronic devices."},
		{ID: 2, Name: "Fashion", Description: "Discover trendy clothing and accessories for men and women."},
		{ID: 3, Name: "Home & Kitchen", Description: "Find everything you need to decorate and equip your home."},
	}
	for _, c := range cats {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO categories(category_id, name, description) VALUES (?, ?, ?)`),
			c.ID, c.Name, c.Description); err != nil {
			return err
		}
	}

	type p struct {
		name, price, color, desc string
		cat, stock               int
		featured                 bool
	}
	prods := []p{
		{"Smartphone", "499.99", "Black", "A powerful and feature-rich smartphone for all your communication needs.", 1, 50, false},
		{"Laptop", "899.99", "Gray", "A high-performance laptop for work and entertainment.", 1, 30, false},
		{"Headphones", "99.99", "White", "Immerse yourself in music with these high-quality headphones.", 1, 100, true},
		{"Men's T-Shirt", "29.99", "Red", "A comfortable and stylish t-shirt for everyday wear.", 2, 100, false},
		{"Women's Dress", "79.99", "Blue", "A beautiful and elegant dress for special occasions.", 2, 50, true},
		{"Cookware Set", "149.99", "Silver", "A complete set of high-quality cookware for your kitchen.", 3, 20, false},
		{"Throw Pillow", "19.99", "", "Add a touch of comfort to your living space.", 3, 40, false},
	}
	for _, x := range prods {
		var color *string
		if x.color != "" {
			color = &x.color
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO products(name, price, category_id, description, color, image_url, stock, featured)
			VALUES (?, ?, ?, ?, ?, NULL, ?, ?)`),
			x.name, x.price, x.cat, x.desc, color, x.stock, x.featured); err != nil {
			return err
		}
	}
	if db.DriverName() == "postgres" {
		// explicit ids above do not advance the SERIAL sequence
		if _, err := tx.ExecContext(ctx, `SELECT setval('categories_category_id_seq', (SELECT MAX(category_id) FROM categories))`); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SeedAdmin makes sure an admin account exists (idempotent).
func SeedAdmin(ctx context.Context, db *sqlx.DB, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	var n int
	if err := db.GetContext(ctx, &n, db.Rebind(`SELECT COUNT(*) FROM users WHERE username = ?`), username); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, db.Rebind(`INSERT INTO users(username, hashed_password, role) VALUES (?, ?, ?)`),
		username, string(h), domain.RoleAdmin)
	return err
}
