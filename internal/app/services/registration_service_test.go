package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseghale/unireg/internal/app/models"
)

type registrationFixture struct {
	service  RegistrationService
	regs     *fakeRegistrationStore
	fees     *fakeFeeStatusReader
	courses  *fakeCourseStore
	profiles *fakeProfileReader
	years    *fakeYearStore
}

func newRegistrationFixture() *registrationFixture {
	regs := newFakeRegistrationStore()
	fees := &fakeFeeStatusReader{statuses: map[feeKey]string{}}
	courses := newFakeCourseStore()
	profiles := &fakeProfileReader{profiles: map[int64]*models.StudentProfile{}}
	years := newFakeYearStore(&models.AcademicYear{ID: 1, Name: "2024/2025", IsCurrent: true})
	return &registrationFixture{
		service:  NewRegistrationService(regs, fees, courses, profiles, years),
		regs:     regs,
		fees:     fees,
		courses:  courses,
		profiles: profiles,
		years:    years,
	}
}

func (f *registrationFixture) approveFees(studentID, academicYearID int64) {
	f.fees.statuses[feeKey{studentID, academicYearID}] = models.PaymentStatusApproved
}

func studentUser(id int64) *models.User {
	return &models.User{ID: id, Role: models.RoleStudent, IsActive: true}
}

func adminUser(id int64) *models.User {
	return &models.User{ID: id, Role: models.RoleAdmin, IsActive: true}
}

func TestCreateRegistration(t *testing.T) {
	f := newRegistrationFixture()
	student := studentUser(10)
	f.approveFees(10, 1)

	registration, err := f.service.CreateRegistration(context.Background(), student, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), registration.StudentID)
	assert.Equal(t, int64(1), registration.AcademicYearID)
	assert.False(t, registration.Submitted)
	assert.NotNil(t, registration.Items)
}

func TestCreateRegistrationRequiresApprovedFees(t *testing.T) {
	f := newRegistrationFixture()
	student := studentUser(10)

	// No payment at all.
	_, err := f.service.CreateRegistration(context.Background(), student, 1)
	requireRequestError(t, err, http.StatusBadRequest, feeGateMessage)

	// A pending payment is not enough.
	f.fees.statuses[feeKey{10, 1}] = models.PaymentStatusPending
	_, err = f.service.CreateRegistration(context.Background(), student, 1)
	requireRequestError(t, err, http.StatusBadRequest, feeGateMessage)

	// Neither is a declined one.
	f.fees.statuses[feeKey{10, 1}] = models.PaymentStatusDeclined
	_, err = f.service.CreateRegistration(context.Background(), student, 1)
	requireRequestError(t, err, http.StatusBadRequest, feeGateMessage)
}

func TestCreateRegistrationRejectsUnknownYear(t *testing.T) {
	f := newRegistrationFixture()
	student := studentUser(10)
	f.approveFees(10, 99)

	_, err := f.service.CreateRegistration(context.Background(), student, 99)
	requireRequestError(t, err, http.StatusNotFound, "Academic year not found")

	_, err = f.service.CreateRegistration(context.Background(), student, 0)
	requireRequestError(t, err, http.StatusBadRequest, "academic_year_id must be a positive integer")
}

func TestCreateRegistrationRejectsDuplicateYear(t *testing.T) {
	f := newRegistrationFixture()
	student := studentUser(10)
	f.approveFees(10, 1)

	_, err := f.service.CreateRegistration(context.Background(), student, 1)
	require.NoError(t, err)

	_, err = f.service.CreateRegistration(context.Background(), student, 1)
	requireRequestError(t, err, http.StatusBadRequest, "Registration already exists for this academic year")
}

func TestAddItem(t *testing.T) {
	f := newRegistrationFixture()
	student := studentUser(10)
	f.approveFees(10, 1)
	f.profiles.profiles[10] = &models.StudentProfile{UserID: 10, FacultyID: 1, DepartmentID: 1, Level: 200}
	f.courses.Create(context.Background(), &models.Course{
		CourseCode: "CSC201", CourseName: "Data Structures", Level: 200,
		FacultyID: 1, DepartmentID: 1, IsActive: true,
	})
	registration, err := f.service.CreateRegistration(context.Background(), student, 1)
	require.NoError(t, err)

	item, err := f.service.AddItem(context.Background(), student, registration.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, registration.ID, item.RegistrationID)
	require.NotNil(t, item.CourseID)
	assert.Equal(t, int64(1), *item.CourseID)
	assert.Equal(t, "CSC201", item.CourseCodeSnapshot)
	assert.Equal(t, "Data Structures", item.CourseNameSnapshot)
	assert.Equal(t, models.RegistrationItemStatusActive, item.Status)

	// The same active course cannot be added twice.
	_, err = f.service.AddItem(context.Background(), student, registration.ID, 1)
	requireRequestError(t, err, http.StatusBadRequest, "Course already added")
}

func TestAddItemOwnership(t *testing.T) {
	f := newRegistrationFixture()
	owner := studentUser(10)
	other := studentUser(11)
	f.approveFees(10, 1)
	registration, err := f.service.CreateRegistration(context.Background(), owner, 1)
	require.NoError(t, err)

	_, err = f.service.AddItem(context.Background(), other, registration.ID, 1)
	requireRequestError(t, err, http.StatusForbidden, "Not allowed to modify this registration")
}

func TestAddItemAdminGatesOnOwnersFees(t *testing.T) {
	f := newRegistrationFixture()
	owner := studentUser(10)
	admin := adminUser(1)
	f.approveFees(10, 1)
	registration, err := f.service.CreateRegistration(context.Background(), owner, 1)
	require.NoError(t, err)

	// The owner's approval is revoked; the admin acting on the student's
	// behalf hits the same gate.
	f.fees.statuses[feeKey{10, 1}] = models.PaymentStatusPending
	_, err = f.service.AddItem(context.Background(), admin, registration.ID, 1)
	requireRequestError(t, err, http.StatusBadRequest, feeGateMessage)
}

func TestAddItemRejectsInactiveOrMissingCourse(t *testing.T) {
	f := newRegistrationFixture()
	student := studentUser(10)
	f.approveFees(10, 1)
	f.profiles.profiles[10] = &models.StudentProfile{UserID: 10, FacultyID: 1, DepartmentID: 1, Level: 200}
	f.courses.Create(context.Background(), &models.Course{
		CourseCode: "CSC201", CourseName: "Data Structures", Level: 200,
		FacultyID: 1, DepartmentID: 1, IsActive: false,
	})
	registration, err := f.service.CreateRegistration(context.Background(), student, 1)
	require.NoError(t, err)

	_, err = f.service.AddItem(context.Background(), student, registration.ID, 1)
	requireRequestError(t, err, http.StatusNotFound, "Course not available")

	_, err = f.service.AddItem(context.Background(), student, registration.ID, 42)
	requireRequestError(t, err, http.StatusNotFound, "Course not available")

	_, err = f.service.AddItem(context.Background(), student, registration.ID, -1)
	requireRequestError(t, err, http.StatusBadRequest, "course_id must be a positive integer")
}

func TestAddItemRejectsLevelMismatch(t *testing.T) {
	f := newRegistrationFixture()
	student := studentUser(10)
	f.approveFees(10, 1)
	f.profiles.profiles[10] = &models.StudentProfile{UserID: 10, FacultyID: 1, DepartmentID: 1, Level: 100}
	f.courses.Create(context.Background(), &models.Course{
		CourseCode: "CSC201", CourseName: "Data Structures", Level: 200,
		FacultyID: 1, DepartmentID: 1, IsActive: true,
	})
	registration, err := f.service.CreateRegistration(context.Background(), student, 1)
	require.NoError(t, err)

	_, err = f.service.AddItem(context.Background(), student, registration.ID, 1)
	requireRequestError(t, err, http.StatusBadRequest, "Selected course does not match the student's level")
}

func TestAddItemRequiresStudentProfile(t *testing.T) {
	f := newRegistrationFixture()
	student := studentUser(10)
	f.approveFees(10, 1)
	f.courses.Create(context.Background(), &models.Course{
		CourseCode: "CSC201", CourseName: "Data Structures", Level: 200,
		FacultyID: 1, DepartmentID: 1, IsActive: true,
	})
	registration, err := f.service.CreateRegistration(context.Background(), student, 1)
	require.NoError(t, err)

	_, err = f.service.AddItem(context.Background(), student, registration.ID, 1)
	requireRequestError(t, err, http.StatusBadRequest, "Student profile must be completed before registering courses")
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	f := newRegistrationFixture()
	student := studentUser(10)
	f.approveFees(10, 1)
	f.profiles.profiles[10] = &models.StudentProfile{UserID: 10, FacultyID: 1, DepartmentID: 1, Level: 200}
	f.courses.Create(context.Background(), &models.Course{
		CourseCode: "CSC201", CourseName: "Data Structures", Level: 200,
		FacultyID: 1, DepartmentID: 1, IsActive: true,
	})
	registration, err := f.service.CreateRegistration(context.Background(), student, 1)
	require.NoError(t, err)
	item, err := f.service.AddItem(context.Background(), student, registration.ID, 1)
	require.NoError(t, err)

	removed, err := f.service.RemoveItem(context.Background(), student, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationItemStatusRemoved, removed.Status)
	require.NotNil(t, removed.RemovedAt)
	firstRemovedAt := *removed.RemovedAt

	// Removing again returns the same item without re-stamping removed_at.
	again, err := f.service.RemoveItem(context.Background(), student, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationItemStatusRemoved, again.Status)
	require.NotNil(t, again.RemovedAt)
	assert.True(t, again.RemovedAt.Equal(firstRemovedAt))
}

func TestRemoveItemOwnership(t *testing.T) {
	f := newRegistrationFixture()
	owner := studentUser(10)
	other := studentUser(11)
	f.approveFees(10, 1)
	f.profiles.profiles[10] = &models.StudentProfile{UserID: 10, FacultyID: 1, DepartmentID: 1, Level: 200}
	f.courses.Create(context.Background(), &models.Course{
		CourseCode: "CSC201", CourseName: "Data Structures", Level: 200,
		FacultyID: 1, DepartmentID: 1, IsActive: true,
	})
	registration, err := f.service.CreateRegistration(context.Background(), owner, 1)
	require.NoError(t, err)
	item, err := f.service.AddItem(context.Background(), owner, registration.ID, 1)
	require.NoError(t, err)

	_, err = f.service.RemoveItem(context.Background(), other, item.ID)
	requireRequestError(t, err, http.StatusForbidden, "Not allowed to modify this registration")

	_, err = f.service.RemoveItem(context.Background(), owner, 9999)
	requireRequestError(t, err, http.StatusNotFound, "Item not found")
}

func TestSubmitRegistration(t *testing.T) {
	f := newRegistrationFixture()
	student := studentUser(10)
	f.approveFees(10, 1)
	registration, err := f.service.CreateRegistration(context.Background(), student, 1)
	require.NoError(t, err)

	submitted, err := f.service.SubmitRegistration(context.Background(), student, registration.ID, true)
	require.NoError(t, err)
	assert.True(t, submitted.Submitted)
	require.NotNil(t, submitted.SubmittedAt)
	assert.WithinDuration(t, time.Now().UTC(), *submitted.SubmittedAt, time.Minute)

	// Un-submitting clears the timestamp and reopens editing.
	reopened, err := f.service.SubmitRegistration(context.Background(), student, registration.ID, false)
	require.NoError(t, err)
	assert.False(t, reopened.Submitted)
	assert.Nil(t, reopened.SubmittedAt)
}

func TestSubmitRegistrationGuards(t *testing.T) {
	f := newRegistrationFixture()
	owner := studentUser(10)
	other := studentUser(11)
	f.approveFees(10, 1)
	registration, err := f.service.CreateRegistration(context.Background(), owner, 1)
	require.NoError(t, err)

	_, err = f.service.SubmitRegistration(context.Background(), other, registration.ID, true)
	requireRequestError(t, err, http.StatusForbidden, "Not allowed to submit this registration")

	// Fee approval is re-checked at submit time.
	f.fees.statuses[feeKey{10, 1}] = models.PaymentStatusPending
	_, err = f.service.SubmitRegistration(context.Background(), owner, registration.ID, true)
	requireRequestError(t, err, http.StatusBadRequest, feeGateMessage)

	_, err = f.service.SubmitRegistration(context.Background(), owner, 9999, true)
	requireRequestError(t, err, http.StatusNotFound, "Registration not found")
}

func TestGetRegistrationWithItemsIncludesRemoved(t *testing.T) {
	f := newRegistrationFixture()
	student := studentUser(10)
	f.approveFees(10, 1)
	f.profiles.profiles[10] = &models.StudentProfile{UserID: 10, FacultyID: 1, DepartmentID: 1, Level: 200}
	f.courses.Create(context.Background(), &models.Course{
		CourseCode: "CSC201", CourseName: "Data Structures", Level: 200,
		FacultyID: 1, DepartmentID: 1, IsActive: true,
	})
	f.courses.Create(context.Background(), &models.Course{
		CourseCode: "CSC202", CourseName: "Algorithms", Level: 200,
		FacultyID: 1, DepartmentID: 1, IsActive: true,
	})
	registration, err := f.service.CreateRegistration(context.Background(), student, 1)
	require.NoError(t, err)
	first, err := f.service.AddItem(context.Background(), student, registration.ID, 1)
	require.NoError(t, err)
	_, err = f.service.AddItem(context.Background(), student, registration.ID, 2)
	require.NoError(t, err)
	_, err = f.service.RemoveItem(context.Background(), student, first.ID)
	require.NoError(t, err)

	loaded, err := f.service.GetRegistrationWithItems(context.Background(), registration.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 2)
	assert.Len(t, loaded.ActiveItems(), 1)
}
