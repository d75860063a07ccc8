package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/app/models/dto"
)

type courseFixture struct {
	service  CourseService
	courses  *fakeCourseStore
	profiles *fakeProfileReader
}

func newCourseFixture() *courseFixture {
	courses := newFakeCourseStore()
	faculties := newFakeFacultyStore(
		&models.Faculty{ID: 1, Name: "Faculty of Science", Code: "SCI"},
		&models.Faculty{ID: 2, Name: "Faculty of Arts", Code: "ART"},
	)
	departments := newFakeDepartmentStore(
		&models.Department{ID: 1, FacultyID: 1, Name: "Computer Science", Code: "CSC"},
		&models.Department{ID: 2, FacultyID: 2, Name: "History", Code: "HIS"},
	)
	profiles := &fakeProfileReader{profiles: map[int64]*models.StudentProfile{}}
	return &courseFixture{
		service:  NewCourseService(courses, faculties, departments, profiles),
		courses:  courses,
		profiles: profiles,
	}
}

func lecturerUser(id int64) *models.User {
	return &models.User{ID: id, Role: models.RoleLecturer, IsActive: true}
}

func validCourseRequest() *dto.CreateCourseRequest {
	return &dto.CreateCourseRequest{
		CourseCode:   "csc201",
		CourseName:   "Data Structures",
		Level:        intPtr(200),
		FacultyID:    int64Ptr(1),
		DepartmentID: int64Ptr(1),
	}
}

func TestCreateCourse(t *testing.T) {
	f := newCourseFixture()
	lecturer := lecturerUser(5)

	course, err := f.service.CreateCourse(context.Background(), lecturer, validCourseRequest())
	require.NoError(t, err)
	assert.Equal(t, "CSC201", course.CourseCode, "codes are stored uppercase")
	assert.True(t, course.IsActive, "courses default to active")
	require.NotNil(t, course.CreatedBy)
	assert.Equal(t, int64(5), *course.CreatedBy)
}

func TestCreateCourseValidation(t *testing.T) {
	f := newCourseFixture()
	lecturer := lecturerUser(5)

	req := validCourseRequest()
	req.CourseName = " "
	_, err := f.service.CreateCourse(context.Background(), lecturer, req)
	requireRequestError(t, err, http.StatusBadRequest, "course_code and course_name are required")

	req = validCourseRequest()
	req.Level = intPtr(250)
	_, err = f.service.CreateCourse(context.Background(), lecturer, req)
	requireRequestError(t, err, http.StatusBadRequest, "level must be one of 100, 200, 300, 400, 500, 600")

	req = validCourseRequest()
	req.DepartmentID = nil
	_, err = f.service.CreateCourse(context.Background(), lecturer, req)
	requireRequestError(t, err, http.StatusBadRequest, "faculty_id and department_id must be positive integers")

	// Department 2 belongs to faculty 2, not faculty 1.
	req = validCourseRequest()
	req.DepartmentID = int64Ptr(2)
	_, err = f.service.CreateCourse(context.Background(), lecturer, req)
	requireRequestError(t, err, http.StatusBadRequest, "Department does not belong to faculty")
}

func TestCreateCourseRejectsDuplicateCode(t *testing.T) {
	f := newCourseFixture()
	lecturer := lecturerUser(5)

	_, err := f.service.CreateCourse(context.Background(), lecturer, validCourseRequest())
	require.NoError(t, err)

	// Codes are compared case-insensitively through uppercasing.
	req := validCourseRequest()
	req.CourseCode = "CSC201"
	_, err = f.service.CreateCourse(context.Background(), lecturer, req)
	requireRequestError(t, err, http.StatusBadRequest, "Course code already exists")
}

func TestUpdateCourseLecturerOwnership(t *testing.T) {
	f := newCourseFixture()
	owner := lecturerUser(5)
	other := lecturerUser(6)

	course, err := f.service.CreateCourse(context.Background(), owner, validCourseRequest())
	require.NoError(t, err)

	name := "Advanced Data Structures"
	_, err = f.service.UpdateCourse(context.Background(), course.ID, other, &dto.UpdateCourseRequest{CourseName: &name})
	requireRequestError(t, err, http.StatusForbidden, "Lecturers can only modify their courses")

	updated, err := f.service.UpdateCourse(context.Background(), course.ID, owner, &dto.UpdateCourseRequest{CourseName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Advanced Data Structures", updated.CourseName)

	// Admins bypass the ownership check.
	inactive := false
	updated, err = f.service.UpdateCourse(context.Background(), course.ID, adminUser(1), &dto.UpdateCourseRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestUpdateCourseChecksNewFacultyDepartmentPair(t *testing.T) {
	f := newCourseFixture()
	admin := adminUser(1)

	course, err := f.service.CreateCourse(context.Background(), admin, validCourseRequest())
	require.NoError(t, err)

	// Moving to department 2 without also moving the faculty is inconsistent.
	_, err = f.service.UpdateCourse(context.Background(), course.ID, admin, &dto.UpdateCourseRequest{DepartmentID: int64Ptr(2)})
	requireRequestError(t, err, http.StatusBadRequest, "Department does not belong to faculty")

	moved, err := f.service.UpdateCourse(context.Background(), course.ID, admin, &dto.UpdateCourseRequest{
		FacultyID:    int64Ptr(2),
		DepartmentID: int64Ptr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), moved.FacultyID)
	assert.Equal(t, int64(2), moved.DepartmentID)
}

func TestDeleteCourseLecturerOwnership(t *testing.T) {
	f := newCourseFixture()
	owner := lecturerUser(5)
	other := lecturerUser(6)

	course, err := f.service.CreateCourse(context.Background(), owner, validCourseRequest())
	require.NoError(t, err)

	err = f.service.DeleteCourse(context.Background(), course.ID, other)
	requireRequestError(t, err, http.StatusForbidden, "Cannot delete this course")

	err = f.service.DeleteCourse(context.Background(), course.ID, owner)
	require.NoError(t, err)

	err = f.service.DeleteCourse(context.Background(), course.ID, owner)
	requireRequestError(t, err, http.StatusNotFound, "Course not found")
}

func TestListCoursesScopesStudents(t *testing.T) {
	f := newCourseFixture()
	admin := adminUser(1)
	seed := func(code string, level int, facultyID, departmentID int64, active bool) {
		f.courses.Create(context.Background(), &models.Course{
			CourseCode: code, CourseName: code, Level: level,
			FacultyID: facultyID, DepartmentID: departmentID, IsActive: active,
		})
	}
	seed("CSC201", 200, 1, 1, true)
	seed("CSC202", 200, 1, 1, false)
	seed("CSC301", 300, 1, 1, true)
	seed("HIS201", 200, 2, 2, true)

	student := studentUser(10)
	f.profiles.profiles[10] = &models.StudentProfile{UserID: 10, FacultyID: 1, DepartmentID: 1, Level: 200}

	// Students see active courses from their own faculty at their level.
	courses, err := f.service.ListCourses(context.Background(), student, nil)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CSC201", courses[0].CourseCode)

	// A level override within the allowed set widens the view.
	courses, err = f.service.ListCourses(context.Background(), student, &dto.CourseFilters{Level: "300"})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CSC301", courses[0].CourseCode)

	_, err = f.service.ListCourses(context.Background(), student, &dto.CourseFilters{Level: "999"})
	requireRequestError(t, err, http.StatusBadRequest, "Invalid course level filter supplied")

	// Asking for another faculty is forbidden.
	_, err = f.service.ListCourses(context.Background(), student, &dto.CourseFilters{FacultyID: "2"})
	requireRequestError(t, err, http.StatusForbidden, "Students can only view courses from their faculty")

	// A student without a profile sees nothing rather than an error.
	bare := studentUser(99)
	courses, err = f.service.ListCourses(context.Background(), bare, nil)
	require.NoError(t, err)
	assert.Empty(t, courses)

	// Staff default to active courses only but can opt in to inactive ones.
	courses, err = f.service.ListCourses(context.Background(), admin, nil)
	require.NoError(t, err)
	assert.Len(t, courses, 3)

	courses, err = f.service.ListCourses(context.Background(), admin, &dto.CourseFilters{IncludeInactive: "true"})
	require.NoError(t, err)
	assert.Len(t, courses, 4)

	courses, err = f.service.ListCourses(context.Background(), admin, &dto.CourseFilters{IsActive: "false"})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CSC202", courses[0].CourseCode)
}
