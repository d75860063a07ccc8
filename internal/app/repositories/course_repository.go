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

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var courseColumns = []string{"id", "course_code", "course_name", "level", "faculty_id", "department_id", "created_by", "is_active", "created_at", "updated_at"}

func scanCourse(row pgx.Row) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(&c.ID, &c.CourseCode, &c.CourseName, &c.Level, &c.FacultyID, &c.DepartmentID, &c.CreatedBy, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new course and fills in the generated ID and timestamps.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("course_code", "course_name", "level", "faculty_id", "department_id", "created_by", "is_active").
		Values(course.CourseCode, course.CourseName, course.Level, course.FacultyID, course.DepartmentID, course.CreatedBy, course.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return course, nil
}

// CodeExists reports whether a course with the code already exists.
func (r *CourseRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("courses").
		Where(squirrel.Eq{"course_code": code}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build course code existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("courseCode", code).Msg("Error checking course code existence")
		return false, fmt.Errorf("error checking course code existence: %w", err)
	}
	return exists, nil
}

// Update applies a partial field update. updated_at is always stamped.
func (r *CourseRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = squirrel.Expr("NOW()")
	sql, args, err := r.sb.Update("courses").
		SetMap(updates).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a course by ID. Registration item snapshots survive; the
// item's course_id goes NULL via the FK.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CourseQuery filters the course listing. Nil fields are not applied.
type CourseQuery struct {
	FacultyID    *int64
	DepartmentID *int64
	Level        *int
	IsActive     *bool
}

// List retrieves courses matching the query, ordered by course code
// case-insensitively.
func (r *CourseRepository) List(ctx context.Context, query *CourseQuery) ([]*models.Course, error) {
	builder := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("LOWER(course_code)")

	if query != nil {
		if query.FacultyID != nil {
			builder = builder.Where(squirrel.Eq{"faculty_id": *query.FacultyID})
		}
		if query.DepartmentID != nil {
			builder = builder.Where(squirrel.Eq{"department_id": *query.DepartmentID})
		}
		if query.Level != nil {
			builder = builder.Where(squirrel.Eq{"level": *query.Level})
		}
		if query.IsActive != nil {
			builder = builder.Where(squirrel.Eq{"is_active": *query.IsActive})
		}
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}
