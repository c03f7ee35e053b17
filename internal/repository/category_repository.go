package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soportek/helpdesk-service/internal/domain"
)

// CategoryRepository manages categories and their department associations.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context, page Page) ([]domain.Category, error)
	Delete(ctx context.Context, id string) error

	// AssignDepartment links a category to a department. It reports whether a
	// new association row was inserted; repeating an existing pair is a no-op.
	AssignDepartment(ctx context.Context, categoryID, departmentID string) (bool, error)
	// RemoveDepartment unlinks a pair, reporting whether a row was removed.
	RemoveDepartment(ctx context.Context, categoryID, departmentID string) (bool, error)
	ListDepartments(ctx context.Context, categoryID string) ([]domain.Department, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository builds the repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (name)
        VALUES ($1)
        RETURNING id`
	return r.pool.QueryRow(ctx, query, category.Name).Scan(&category.ID)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE categories SET name=$1 WHERE id=$2`, category.Name, category.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return r.fetchSingle(ctx, `SELECT id, name FROM categories WHERE id=$1`, id)
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.fetchSingle(ctx, `SELECT id, name FROM categories WHERE name=$1`, name)
}

func (r *categoryRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Category, error) {
	var category domain.Category
	if err := r.pool.QueryRow(ctx, query, arg).Scan(&category.ID, &category.Name); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, page Page) ([]domain.Category, error) {
	page = page.Normalize()
	const query = `SELECT id, name FROM categories ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) AssignDepartment(ctx context.Context, categoryID, departmentID string) (bool, error) {
	const query = `
        INSERT INTO category_departments (category_id, department_id)
        VALUES ($1, $2)
        ON CONFLICT (category_id, department_id) DO NOTHING`
	cmd, err := r.pool.Exec(ctx, query, categoryID, departmentID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *categoryRepository) RemoveDepartment(ctx context.Context, categoryID, departmentID string) (bool, error) {
	const query = `
        DELETE FROM category_departments
        WHERE category_id=$1 AND department_id=$2`
	cmd, err := r.pool.Exec(ctx, query, categoryID, departmentID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *categoryRepository) ListDepartments(ctx context.Context, categoryID string) ([]domain.Department, error) {
	const query = `
        SELECT d.id, d.name, d.description, d.created_at
        FROM departments d
        JOIN category_departments cd ON cd.department_id = d.id
        WHERE cd.category_id=$1
        ORDER BY d.name ASC`
	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Department
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.Description, &dept.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, dept)
	}
	return result, rows.Err()
}
