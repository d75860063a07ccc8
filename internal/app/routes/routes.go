package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/oseghale/unireg/internal/app/controllers"
	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	facultyController *controllers.FacultyController,
	departmentController *controllers.DepartmentController,
	courseController *controllers.CourseController,
	academicYearController *controllers.AcademicYearController,
	registrationController *controllers.RegistrationController,
	schoolFeeController *controllers.SchoolFeeController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
	healthCheck gin.HandlerFunc,
) {
	router.GET("/health", healthCheck)

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	faculties := v1.Group("/faculties")
	{
		faculties.GET("", facultyController.ListFaculties)
		faculties.GET("/:id", facultyController.GetFaculty)
	}

	departments := v1.Group("/departments")
	{
		departments.GET("", departmentController.ListDepartments)
		departments.GET("/:id", departmentController.GetDepartment)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.Me)
			users.POST("/me/student-profile", userController.CreateStudentProfile)
		}

		facultiesAdmin := authenticated.Group("/faculties")
		facultiesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			facultiesAdmin.POST("", facultyController.CreateFaculty)
			facultiesAdmin.PATCH("/:id", facultyController.UpdateFaculty)
			facultiesAdmin.DELETE("/:id", facultyController.DeleteFaculty)
		}

		departmentsAdmin := authenticated.Group("/departments")
		departmentsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			departmentsAdmin.POST("", departmentController.CreateDepartment)
			departmentsAdmin.PATCH("/:id", departmentController.UpdateDepartment)
			departmentsAdmin.DELETE("/:id", departmentController.DeleteDepartment)
		}

		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.GET("/:id", courseController.GetCourse)

			coursesStaff := courses.Group("")
			coursesStaff.Use(authMiddleware.RoleRequired(models.RoleAdmin, models.RoleLecturer))
			{
				coursesStaff.POST("", courseController.CreateCourse)
				coursesStaff.PATCH("/:id", courseController.UpdateCourse)
				coursesStaff.DELETE("/:id", courseController.DeleteCourse)
			}
		}

		academicYears := authenticated.Group("/academic-years")
		{
			academicYears.GET("", academicYearController.ListAcademicYears)

			academicYearsAdmin := academicYears.Group("")
			academicYearsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				academicYearsAdmin.POST("", academicYearController.CreateAcademicYear)
			}
		}

		registrations := authenticated.Group("/registrations")
		{
			registrations.POST("", registrationController.CreateRegistration)
			registrations.GET("", registrationController.ListRegistrations)
			registrations.GET("/:id", registrationController.GetRegistration)
			registrations.GET("/:id/pdf", registrationController.GetRegistrationPDF)
			registrations.POST("/:id/items", registrationController.AddItem)
			registrations.DELETE("/items/:itemId", registrationController.RemoveItem)
			registrations.POST("/:id/submit", registrationController.SubmitRegistration)
		}

		schoolFees := authenticated.Group("/school-fees")
		{
			schoolFees.GET("/policies", schoolFeeController.ListPolicies)
			schoolFees.GET("/payments", schoolFeeController.ListPayments)
			schoolFees.POST("/payments", schoolFeeController.CreatePayment)

			schoolFeesAdmin := schoolFees.Group("")
			schoolFeesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				schoolFeesAdmin.PUT("/policies", schoolFeeController.UpsertPolicy)
				schoolFeesAdmin.POST("/payments/:id/approve", schoolFeeController.ApprovePayment)
				schoolFeesAdmin.POST("/payments/:id/decline", schoolFeeController.DeclinePayment)
			}
		}

		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/students", adminController.ListStudents)
			admin.GET("/students/export", adminController.ExportStudentsCSV)
			admin.GET("/registrations/submitted", adminController.ListSubmittedRegistrations)
			admin.PATCH("/users/:id/role", adminController.UpdateUserRole)
		}
	}
}
