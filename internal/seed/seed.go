// Package seed creates the default records a fresh deployment needs.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/oseghale/unireg/internal/app/models"
	appRepos "github.com/oseghale/unireg/internal/app/repositories"
	"github.com/oseghale/unireg/internal/pkg/auth"
)

// CreateDefaultData seeds the baseline faculty, department, academic year and
// staff accounts. Every step is idempotent; failures are collected so one bad
// record does not block the rest.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	facultyRepo := appRepos.NewFacultyRepository(dbPool)
	departmentRepo := appRepos.NewDepartmentRepository(dbPool)
	academicYearRepo := appRepos.NewAcademicYearRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Faculty of Science and Computer Science --- //
	facultyID, err := ensureFaculty(ctx, facultyRepo, "Faculty of Science", "SCI")
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default faculty")
		finalErr = errors.Join(finalErr, err)
	}

	if facultyID > 0 {
		if err := ensureDepartment(ctx, departmentRepo, facultyID, "Computer Science", "CSC"); err != nil {
			lgr.Error().Err(err).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Current academic year --- //
	if exists, err := academicYearRepo.NameExists(ctx, "2024/2025"); err != nil {
		lgr.Error().Err(err).Msg("Error checking default academic year")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		year := &appModels.AcademicYear{Name: "2024/2025", IsCurrent: true}
		if err := academicYearRepo.Create(ctx, year); err != nil && !errors.Is(err, appRepos.ErrDuplicate) {
			lgr.Error().Err(err).Msg("Error creating default academic year")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Staff accounts --- //
	if err := ensureUser(ctx, userRepo, "admin@uniben.edu", "Portal Admin", "AdminPass123!", appModels.RoleAdmin); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin user")
		finalErr = errors.Join(finalErr, err)
	}
	if err := ensureUser(ctx, userRepo, "lecturer@uniben.edu", "Default Lecturer", "LectPass123!", appModels.RoleLecturer); err != nil {
		lgr.Error().Err(err).Msg("Error creating default lecturer user")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data in place")
	}
	return finalErr
}

func ensureFaculty(ctx context.Context, repo *appRepos.FacultyRepository, name, code string) (int64, error) {
	exists, err := repo.CodeExists(ctx, code, 0)
	if err != nil {
		return 0, err
	}
	if !exists {
		faculty := &appModels.Faculty{Name: name, Code: code}
		if err := repo.Create(ctx, faculty); err != nil && !errors.Is(err, appRepos.ErrDuplicate) {
			return 0, err
		} else if err == nil {
			return faculty.ID, nil
		}
	}

	faculties, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, f := range faculties {
		if f.Code == code {
			return f.ID, nil
		}
	}
	return 0, nil
}

func ensureDepartment(ctx context.Context, repo *appRepos.DepartmentRepository, facultyID int64, name, code string) error {
	exists, err := repo.CodeExists(ctx, code, 0)
	if err != nil || exists {
		return err
	}
	department := &appModels.Department{Name: name, Code: code, FacultyID: facultyID}
	if err := repo.Create(ctx, department); err != nil && !errors.Is(err, appRepos.ErrDuplicate) {
		return err
	}
	return nil
}

func ensureUser(ctx context.Context, repo *appRepos.UserRepository, email, fullName, password string, role appModels.Role) error {
	if _, err := repo.GetUserByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, appRepos.ErrNotFound) {
		return err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := &appModels.User{
		Email:          email,
		FullName:       fullName,
		HashedPassword: hashedPassword,
		Role:           role,
		IsActive:       true,
	}
	if err := repo.CreateUser(ctx, user); err != nil && !errors.Is(err, appRepos.ErrDuplicate) {
		return err
	}
	return nil
}
