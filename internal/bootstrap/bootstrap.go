package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/oseghale/unireg/internal/app/controllers"
	appMigrations "github.com/oseghale/unireg/internal/app/migrations"
	appRepos "github.com/oseghale/unireg/internal/app/repositories"
	appRoutes "github.com/oseghale/unireg/internal/app/routes"
	appServices "github.com/oseghale/unireg/internal/app/services"
	"github.com/oseghale/unireg/internal/config"
	"github.com/oseghale/unireg/internal/db"
	appMiddleware "github.com/oseghale/unireg/internal/middleware"
	pkgAuth "github.com/oseghale/unireg/internal/pkg/auth"
	"github.com/oseghale/unireg/internal/pkg/helpers"
	"github.com/oseghale/unireg/internal/pkg/logger"
	"github.com/oseghale/unireg/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         appServices.AuthService
	UserService         appServices.UserService
	FacultyService      appServices.FacultyService
	CourseService       appServices.CourseService
	AcademicYearService appServices.AcademicYearService
	RegistrationService appServices.RegistrationService
	SchoolFeeService    appServices.SchoolFeeService

	AuthController         *appControllers.AuthController
	UserController         *appControllers.UserController
	FacultyController      *appControllers.FacultyController
	DepartmentController   *appControllers.DepartmentController
	CourseController       *appControllers.CourseController
	AcademicYearController *appControllers.AcademicYearController
	RegistrationController *appControllers.RegistrationController
	SchoolFeeController    *appControllers.SchoolFeeController
	AdminController        *appControllers.AdminController

	AuthMiddleware *appMiddleware.AuthMiddleware
	HealthHandler  gin.HandlerFunc
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Seed failures are logged but do not block startup.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services and
// controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 15*time.Minute),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 168*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService)
	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		deps.Repos.StudentProfileRepository,
		deps.Repos.FacultyRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.RegistrationRepository,
		deps.Repos.AcademicYearRepository,
		deps.Repos.AuditLogRepository,
		database,
	)
	deps.FacultyService = appServices.NewFacultyService(deps.Repos.FacultyRepository, deps.Repos.DepartmentRepository)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.FacultyRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.StudentProfileRepository,
	)
	deps.AcademicYearService = appServices.NewAcademicYearService(deps.Repos.AcademicYearRepository)
	deps.RegistrationService = appServices.NewRegistrationService(
		deps.Repos.RegistrationRepository,
		deps.Repos.SchoolFeeRepository,
		deps.Repos.CourseRepository,
		deps.Repos.StudentProfileRepository,
		deps.Repos.AcademicYearRepository,
	)
	deps.SchoolFeeService = appServices.NewSchoolFeeService(
		deps.Repos.SchoolFeeRepository,
		deps.Repos.AcademicYearRepository,
		deps.Repos.StudentProfileRepository,
		deps.Repos.AuditLogRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.UserService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.UserService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.FacultyController = appControllers.NewFacultyController(deps.FacultyService)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.FacultyService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.AcademicYearController = appControllers.NewAcademicYearController(deps.AcademicYearService)
	deps.RegistrationController = appControllers.NewRegistrationController(deps.RegistrationService)
	deps.SchoolFeeController = appControllers.NewSchoolFeeController(deps.SchoolFeeService)
	deps.AdminController = appControllers.NewAdminController(deps.UserService, deps.RegistrationService)

	deps.HealthHandler = func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.FacultyController,
		deps.DepartmentController,
		deps.CourseController,
		deps.AcademicYearController,
		deps.RegistrationController,
		deps.SchoolFeeController,
		deps.AdminController,
		deps.AuthMiddleware,
		deps.HealthHandler,
	)

	return router
}
