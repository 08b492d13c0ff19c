package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/google/uuid"
)

type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// Store is the catalog repository over database/sql. Queries are written
// with "?" placeholders and rebound for Postgres.
type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

// New applies pending migrations before returning.
func New(ctx context.Context, db *sql.DB, dialect Dialect) (*Store, error) {
	s := &Store{db: db, dialect: dialect, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

const productColumns = `id, name, price, image, category_id, description, is_active, sort_order, created_at, updated_at`
const categoryColumns = `id, name, icon, sort_order, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (domain.Product, error) {
	var (
		p   domain.Product
		cat sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Image, &cat, &p.Description, &p.IsActive, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Product{}, err
	}
	p.CategoryID = cat.String
	return p, nil
}

func scanCategory(row scanner) (domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Icon, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (s *Store) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := s.now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		p.ID, p.Name, p.Price, p.Image, nullable(p.CategoryID), p.Description, p.IsActive, p.SortOrder, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	return s.GetProduct(ctx, p.ID)
}

func (s *Store) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+productColumns+` FROM products WHERE id = ?`), id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY sort_order, name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	out := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(`UPDATE products
		SET name = ?, price = ?, image = ?, category_id = ?, description = ?, is_active = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`),
		p.Name, p.Price, p.Image, nullable(p.CategoryID), p.Description, p.IsActive, p.SortOrder, s.now().UTC(), p.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	if err := expectOne(res); err != nil {
		return domain.Product{}, err
	}
	return s.GetProduct(ctx, p.ID)
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return expectOne(res)
}

func (s *Store) CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := s.now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO categories (`+categoryColumns+`) VALUES (?, ?, ?, ?, ?, ?)`),
		c.ID, c.Name, c.Icon, c.SortOrder, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return domain.Category{}, fmt.Errorf("failed to create category: %w", err)
	}
	return s.GetCategory(ctx, c.ID)
}

func (s *Store) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+categoryColumns+` FROM categories WHERE id = ?`), id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Category{}, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY sort_order, name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	out := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) UpdateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(`UPDATE categories SET name = ?, icon = ?, sort_order = ?, updated_at = ? WHERE id = ?`),
		c.Name, c.Icon, c.SortOrder, s.now().UTC(), c.ID)
	if err != nil {
		return domain.Category{}, fmt.Errorf("failed to update category: %w", err)
	}
	if err := expectOne(res); err != nil {
		return domain.Category{}, err
	}
	return s.GetCategory(ctx, c.ID)
}

// DeleteCategory relies on ON DELETE SET NULL to detach products.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM categories WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return expectOne(res)
}

// SeedIfEmpty inserts the given catalog when the products table is empty.
func (s *Store) SeedIfEmpty(ctx context.Context, categories []domain.Category, products []domain.Product) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	now := s.now().UTC()
	err := s.execTX(ctx, func(tx *sql.Tx) error {
		for _, c := range categories {
			if _, err := tx.ExecContext(ctx, s.rebind(`INSERT INTO categories (`+categoryColumns+`) VALUES (?, ?, ?, ?, ?, ?)`),
				c.ID, c.Name, c.Icon, c.SortOrder, now, now); err != nil {
				return fmt.Errorf("seed category %s: %w", c.ID, err)
			}
		}
		for _, p := range products {
			if _, err := tx.ExecContext(ctx, s.rebind(`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
				p.ID, p.Name, p.Price, p.Image, nullable(p.CategoryID), p.Description, p.IsActive, p.SortOrder, now, now); err != nil {
				return fmt.Errorf("seed product %s: %w", p.ID, err)
			}
		}
		return nil
	})
	return err == nil, err
}

func (s *Store) execTX(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return app.ErrNotFound
	}
	return nil
}

// rebind rewrites "?" placeholders to "$1..$n" for Postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
