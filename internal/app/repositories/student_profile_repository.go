package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/pkg/dberrors"
	"github.com/oseghale/unireg/internal/pkg/logger"
)

// StudentProfileRepository handles student profile database operations
type StudentProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentProfileRepository creates a new StudentProfileRepository
func NewStudentProfileRepository(db *pgxpool.Pool) *StudentProfileRepository {
	return &StudentProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var studentProfileColumns = []string{"id", "user_id", "matric_no", "year_of_entry", "faculty_id", "department_id", "level", "created_at"}

func scanStudentProfile(row pgx.Row) (*models.StudentProfile, error) {
	p := &models.StudentProfile{}
	err := row.Scan(&p.ID, &p.UserID, &p.MatricNo, &p.YearOfEntry, &p.FacultyID, &p.DepartmentID, &p.Level, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByUserID retrieves the profile attached to a user.
func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	sql, args, err := r.sb.Select(studentProfileColumns...).
		From("student_profiles").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	profile, err := scanStudentProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning student profile row")
		return nil, fmt.Errorf("error getting student profile: %w", err)
	}
	return profile, nil
}

// MatricNoExists reports whether a matriculation number is already taken,
// compared case-insensitively.
func (r *StudentProfileRepository) MatricNoExists(ctx context.Context, matricNo string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("student_profiles").
		Where("LOWER(matric_no) = LOWER(?)", matricNo).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build matric existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Msg("Error checking matric number existence")
		return false, fmt.Errorf("error checking matric number existence: %w", err)
	}
	return exists, nil
}

// CreateTx inserts a profile inside an existing transaction, storing the
// matric number uppercase, and fills in the generated ID and timestamp.
func (r *StudentProfileRepository) CreateTx(ctx context.Context, tx pgx.Tx, profile *models.StudentProfile) error {
	profile.MatricNo = strings.ToUpper(profile.MatricNo)
	sql, args, err := r.sb.Insert("student_profiles").
		Columns("user_id", "matric_no", "year_of_entry", "faculty_id", "department_id", "level").
		Values(profile.UserID, profile.MatricNo, profile.YearOfEntry, profile.FacultyID, profile.DepartmentID, profile.Level).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create profile query: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&profile.ID, &profile.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("error creating student profile: %w", err)
	}
	return nil
}

// ListStudents retrieves joined profile, user, faculty and department rows
// ordered by the student's full name, case-insensitively.
func (r *StudentProfileRepository) ListStudents(ctx context.Context, filters *StudentQuery) ([]*models.StudentRecord, error) {
	builder := r.sb.Select(
		"sp.id", "sp.user_id", "sp.matric_no", "sp.year_of_entry", "sp.faculty_id", "sp.department_id", "sp.level", "sp.created_at",
		"u.id", "u.email", "u.full_name", "u.role", "u.is_active", "u.created_at",
		"f.id", "f.name", "f.code", "f.created_at",
		"d.id", "d.name", "d.code", "d.faculty_id", "d.created_at",
	).
		From("student_profiles sp").
		Join("users u ON u.id = sp.user_id").
		Join("faculties f ON f.id = sp.faculty_id").
		Join("departments d ON d.id = sp.department_id").
		OrderBy("LOWER(u.full_name)")

	if filters != nil {
		if filters.Name != "" {
			builder = builder.Where("LOWER(u.full_name) LIKE ?", "%"+strings.ToLower(filters.Name)+"%")
		}
		if filters.MatricNo != "" {
			builder = builder.Where("LOWER(sp.matric_no) LIKE ?", "%"+strings.ToLower(filters.MatricNo)+"%")
		}
		if filters.FacultyID != nil {
			builder = builder.Where(squirrel.Eq{"sp.faculty_id": *filters.FacultyID})
		}
		if filters.DepartmentID != nil {
			builder = builder.Where(squirrel.Eq{"sp.department_id": *filters.DepartmentID})
		}
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	records := []*models.StudentRecord{}
	for rows.Next() {
		profile := &models.StudentProfile{}
		user := &models.User{}
		faculty := &models.Faculty{}
		department := &models.Department{}
		err := rows.Scan(
			&profile.ID, &profile.UserID, &profile.MatricNo, &profile.YearOfEntry, &profile.FacultyID, &profile.DepartmentID, &profile.Level, &profile.CreatedAt,
			&user.ID, &user.Email, &user.FullName, &user.Role, &user.IsActive, &user.CreatedAt,
			&faculty.ID, &faculty.Name, &faculty.Code, &faculty.CreatedAt,
			&department.ID, &department.Name, &department.Code, &department.FacultyID, &department.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning student record row: %w", err)
		}
		records = append(records, &models.StudentRecord{
			StudentProfile: profile,
			User:           user,
			Faculty:        faculty,
			Department:     department,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student record rows: %w", err)
	}
	return records, nil
}

// StudentQuery filters the admin student listing.
type StudentQuery struct {
	Name         string
	MatricNo     string
	FacultyID    *int64
	DepartmentID *int64
}
