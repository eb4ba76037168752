package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moneta-app/moneta/internal/domain"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, name, kind, category_type, parent_id, shadow, created_at, updated_at`

// Create creates a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, name, kind, category_type, parent_id, shadow, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`,
		category.ID, category.Name, string(category.Kind), string(category.Type),
		category.ParentID, category.Shadow, category.CreatedAt, category.UpdatedAt,
	)

	return err
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	return scanCategory(row)
}

// List returns the full category tree.
func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCategories(rows)
}

// ListEntries lists entry categories of the given type.
func (r *CategoryRepository) ListEntries(ctx context.Context, categoryType domain.CategoryType, includeShadow bool) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+` FROM categories
		WHERE kind = 'entry' AND category_type = $1 AND (shadow = false OR $2)
		ORDER BY name`, string(categoryType), includeShadow)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCategories(rows)
}

// GetShadow returns the synthetic category backing adjustment operations.
func (r *CategoryRepository) GetShadow(ctx context.Context) (*domain.Category, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE shadow = true LIMIT 1`)
	return scanCategory(row)
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		c        domain.Category
		kind     string
		ctype    string
		parentID *string
	)

	err := row.Scan(&c.ID, &c.Name, &kind, &ctype, &parentID, &c.Shadow, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}

		return nil, err
	}

	c.Kind = domain.CategoryKind(kind)
	c.Type = domain.CategoryType(ctype)
	if parentID != nil {
		c.ParentID = *parentID
	}

	return &c, nil
}

func collectCategories(rows pgx.Rows) ([]*domain.Category, error) {
	var categories []*domain.Category

	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}
