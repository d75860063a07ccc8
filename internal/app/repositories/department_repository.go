package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/pkg/dberrors"
	"github.com/oseghale/unireg/internal/pkg/logger"
)

// DepartmentRepository handles department database operations
type DepartmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDepartmentRepository creates a new DepartmentRepository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var departmentColumns = []string{"id", "name", "code", "faculty_id", "created_at"}

func scanDepartment(row pgx.Row) (*models.Department, error) {
	d := &models.Department{}
	if err := row.Scan(&d.ID, &d.Name, &d.Code, &d.FacultyID, &d.CreatedAt); err != nil {
		return nil, err
	}
	return d, nil
}

// Create inserts a new department and fills in the generated ID and timestamp.
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	sql, args, err := r.sb.Insert("departments").
		Columns("name", "code", "faculty_id").
		Values(department.Name, department.Code, department.FacultyID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create department query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&department.ID, &department.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		logger.Error().Err(err).Msg("Error executing create department query")
		return fmt.Errorf("error creating department: %w", err)
	}
	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	sql, args, err := r.sb.Select(departmentColumns...).
		From("departments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get department query: %w", err)
	}

	department, err := scanDepartment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("departmentID", id).Msg("Error scanning department row")
		return nil, fmt.Errorf("error getting department by ID: %w", err)
	}
	return department, nil
}

// List retrieves departments ordered by name, optionally scoped to a faculty.
func (r *DepartmentRepository) List(ctx context.Context, facultyID *int64) ([]*models.Department, error) {
	builder := r.sb.Select(departmentColumns...).
		From("departments").
		OrderBy("LOWER(name)")
	if facultyID != nil {
		builder = builder.Where(squirrel.Eq{"faculty_id": *facultyID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list departments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list departments query")
		return nil, fmt.Errorf("error querying departments: %w", err)
	}
	defer rows.Close()

	departments := []*models.Department{}
	for rows.Next() {
		department, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning department row: %w", err)
		}
		departments = append(departments, department)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating department rows: %w", err)
	}
	return departments, nil
}

// Update applies a partial field update.
func (r *DepartmentRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	sql, args, err := r.sb.Update("departments").
		SetMap(updates).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update department query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		logger.Error().Err(err).Int64("departmentID", id).Msg("Error executing update department query")
		return fmt.Errorf("error updating department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a department by ID
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("departments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete department query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("departmentID", id).Msg("Error executing delete department query")
		return fmt.Errorf("error deleting department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// NameExists reports whether another department already uses the name.
func (r *DepartmentRepository) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	return r.fieldExists(ctx, "name", name, excludeID)
}

// CodeExists reports whether another department already uses the code.
func (r *DepartmentRepository) CodeExists(ctx context.Context, code string, excludeID int64) (bool, error) {
	return r.fieldExists(ctx, "code", code, excludeID)
}

func (r *DepartmentRepository) fieldExists(ctx context.Context, field, value string, excludeID int64) (bool, error) {
	builder := r.sb.Select("1").
		From("departments").
		Where(squirrel.Eq{field: value})
	if excludeID > 0 {
		builder = builder.Where(squirrel.NotEq{"id": excludeID})
	}
	sql, args, err := builder.
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build department existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str(field, value).Msg("Error checking department existence")
		return false, fmt.Errorf("error checking department existence: %w", err)
	}
	return exists, nil
}
