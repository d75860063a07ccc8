package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/app/models/dto"
)

type userFixture struct {
	service  UserService
	users    *fakeUserStore
	profiles *fakeProfileStore
	regs     *fakeRegistrationStore
	years    *fakeYearStore
	audit    *fakeAuditRecorder
}

func newUserFixture(users ...*models.User) *userFixture {
	userStore := newFakeUserStore(users...)
	profiles := newFakeProfileStore()
	faculties := newFakeFacultyStore(&models.Faculty{ID: 1, Name: "Faculty of Science", Code: "SCI"})
	departments := newFakeDepartmentStore(&models.Department{ID: 1, FacultyID: 1, Name: "Computer Science", Code: "CSC"})
	regs := newFakeRegistrationStore()
	years := newFakeYearStore(&models.AcademicYear{ID: 1, Name: "2024/2025", IsCurrent: true})
	audit := &fakeAuditRecorder{}
	return &userFixture{
		service:  NewUserService(userStore, profiles, faculties, departments, regs, years, audit, fakeTransactor{}),
		users:    userStore,
		profiles: profiles,
		regs:     regs,
		years:    years,
		audit:    audit,
	}
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func validProfileRequest() *dto.CreateStudentProfileRequest {
	return &dto.CreateStudentProfileRequest{
		MatricNo:     "U2021/1234",
		YearOfEntry:  intPtr(2021),
		FacultyID:    int64Ptr(1),
		DepartmentID: int64Ptr(1),
		Level:        intPtr(200),
	}
}

func TestCreateStudentProfilePromotesUser(t *testing.T) {
	user := &models.User{ID: 10, Email: "a@x.test", Role: models.RoleUser, IsActive: true}
	f := newUserFixture(user)

	profile, err := f.service.CreateStudentProfile(context.Background(), user, validProfileRequest())
	require.NoError(t, err)
	assert.Equal(t, "U2021/1234", profile.MatricNo)
	assert.Equal(t, int64(10), profile.UserID)

	// The owning user was promoted inside the same transaction.
	assert.Equal(t, models.RoleStudent, f.users.roleUpdates[10])
}

func TestCreateStudentProfileValidation(t *testing.T) {
	user := &models.User{ID: 10, Role: models.RoleUser, IsActive: true}

	cases := []struct {
		name    string
		mutate  func(*dto.CreateStudentProfileRequest)
		message string
	}{
		{"missing matric no", func(r *dto.CreateStudentProfileRequest) { r.MatricNo = "  " }, "matric_no is required"},
		{"missing year of entry", func(r *dto.CreateStudentProfileRequest) { r.YearOfEntry = nil }, "year_of_entry must be an integer"},
		{"missing faculty", func(r *dto.CreateStudentProfileRequest) { r.FacultyID = nil }, "faculty_id must be a positive integer"},
		{"missing department", func(r *dto.CreateStudentProfileRequest) { r.DepartmentID = int64Ptr(0) }, "department_id must be a positive integer"},
		{"bad level", func(r *dto.CreateStudentProfileRequest) { r.Level = intPtr(150) }, "level must be one of 100, 200, 300, 400, 500, 600"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newUserFixture(user)
			req := validProfileRequest()
			tc.mutate(req)
			_, err := f.service.CreateStudentProfile(context.Background(), user, req)
			requireRequestError(t, err, http.StatusBadRequest, tc.message)
		})
	}
}

func TestCreateStudentProfileRejectsDuplicates(t *testing.T) {
	user := &models.User{ID: 10, Role: models.RoleUser, IsActive: true}
	f := newUserFixture(user)

	_, err := f.service.CreateStudentProfile(context.Background(), user, validProfileRequest())
	require.NoError(t, err)

	_, err = f.service.CreateStudentProfile(context.Background(), user, validProfileRequest())
	requireRequestError(t, err, http.StatusBadRequest, "Profile already exists")

	// Another user reusing the matric number.
	other := &models.User{ID: 11, Role: models.RoleUser, IsActive: true}
	f.users.users[11] = other
	_, err = f.service.CreateStudentProfile(context.Background(), other, validProfileRequest())
	requireRequestError(t, err, http.StatusBadRequest, "Matriculation number already in use")
}

func TestCreateStudentProfileChecksFacultyDepartmentPair(t *testing.T) {
	user := &models.User{ID: 10, Role: models.RoleUser, IsActive: true}
	f := newUserFixture(user)

	req := validProfileRequest()
	req.FacultyID = int64Ptr(42)
	_, err := f.service.CreateStudentProfile(context.Background(), user, req)
	requireRequestError(t, err, http.StatusNotFound, "Faculty not found")

	req = validProfileRequest()
	req.DepartmentID = int64Ptr(42)
	_, err = f.service.CreateStudentProfile(context.Background(), user, req)
	requireRequestError(t, err, http.StatusNotFound, "Department not found")
}

func TestUpdateRole(t *testing.T) {
	admin := adminUser(1)
	target := &models.User{ID: 10, Role: models.RoleUser, IsActive: true}
	f := newUserFixture(admin, target)

	updated, err := f.service.UpdateRole(context.Background(), admin, 10, "lecturer")
	require.NoError(t, err)
	assert.Equal(t, models.RoleLecturer, updated.Role)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, models.AuditActionRoleUpdated, f.audit.entries[0].actionType)
	assert.Equal(t, int64(1), f.audit.entries[0].actorID)
}

func TestUpdateRoleValidation(t *testing.T) {
	admin := adminUser(1)
	f := newUserFixture(admin)

	_, err := f.service.UpdateRole(context.Background(), admin, 10, "superuser")
	requireRequestError(t, err, http.StatusBadRequest, "Invalid role supplied")

	_, err = f.service.UpdateRole(context.Background(), admin, 999, "lecturer")
	requireRequestError(t, err, http.StatusNotFound, "User not found")
}

func TestGetUserWithProfile(t *testing.T) {
	user := &models.User{ID: 10, Role: models.RoleUser, IsActive: true}
	f := newUserFixture(user)

	// Without a profile the relation stays nil.
	loaded, err := f.service.GetUserWithProfile(context.Background(), 10)
	require.NoError(t, err)
	assert.Nil(t, loaded.StudentProfile)

	_, err = f.service.CreateStudentProfile(context.Background(), user, validProfileRequest())
	require.NoError(t, err)

	loaded, err = f.service.GetUserWithProfile(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, loaded.StudentProfile)
	assert.Equal(t, "U2021/1234", loaded.StudentProfile.MatricNo)

	_, err = f.service.GetUserWithProfile(context.Background(), 999)
	requireRequestError(t, err, http.StatusNotFound, "User not found")
}

func TestExportStudentsCSV(t *testing.T) {
	f := newUserFixture()
	f.profiles.records = []*models.StudentRecord{
		{
			StudentProfile: &models.StudentProfile{MatricNo: "U2021/1234", Level: 200},
			User:           &models.User{ID: 10, FullName: "Ada Lovelace"},
			Faculty:        &models.Faculty{Name: "Faculty of Science"},
			Department:     &models.Department{Name: "Computer Science"},
		},
		{
			StudentProfile: &models.StudentProfile{MatricNo: "U2022/5678", Level: 100},
			User:           &models.User{ID: 11, FullName: "Alan Turing"},
			Faculty:        &models.Faculty{Name: "Faculty of Science"},
			Department:     &models.Department{Name: "Computer Science"},
		},
	}

	// The first student has a registration with one active and one removed
	// item; the second has none.
	registration := f.regs.addRegistration(&models.CourseRegistration{StudentID: 10, AcademicYearID: 1, CreatedAt: time.Now()})
	f.regs.addItem(&models.RegistrationItem{RegistrationID: registration.ID, Status: models.RegistrationItemStatusActive})
	f.regs.addItem(&models.RegistrationItem{RegistrationID: registration.ID, Status: models.RegistrationItemStatusRemoved})

	out, err := f.service.ExportStudentsCSV(context.Background())
	require.NoError(t, err)

	csv := string(out)
	assert.Contains(t, csv, "Matric No,Full Name,Faculty,Department,Academic Year,Total Courses\r\n")
	assert.Contains(t, csv, "U2021/1234,Ada Lovelace,Faculty of Science,Computer Science,2024/2025,1\r\n")
	assert.Contains(t, csv, "U2022/5678,Alan Turing,Faculty of Science,Computer Science,-,0\r\n")
}
