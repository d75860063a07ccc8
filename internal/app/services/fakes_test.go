package services

// In-memory fakes for the repository interfaces the services consume.

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oseghale/unireg/internal/app/models"
	"github.com/oseghale/unireg/internal/app/repositories"
	"github.com/oseghale/unireg/internal/db"
	"github.com/oseghale/unireg/internal/pkg/apperrors"
)

// requireRequestError asserts that err is a RequestError with the given
// status and client-facing message.
func requireRequestError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	reqErr, ok := apperrors.AsRequestError(err)
	require.True(t, ok, "expected a RequestError, got %v", err)
	assert.Equal(t, status, reqErr.Status)
	assert.Equal(t, message, reqErr.Message)
}

type fakeYearStore struct {
	years        map[int64]*models.AcademicYear
	nextID       int64
	clearedCalls []int64
}

func newFakeYearStore(years ...*models.AcademicYear) *fakeYearStore {
	s := &fakeYearStore{years: map[int64]*models.AcademicYear{}, nextID: 1}
	for _, y := range years {
		if y.ID >= s.nextID {
			s.nextID = y.ID + 1
		}
		s.years[y.ID] = y
	}
	return s
}

func (s *fakeYearStore) Create(_ context.Context, year *models.AcademicYear) error {
	year.ID = s.nextID
	s.nextID++
	s.years[year.ID] = year
	return nil
}

func (s *fakeYearStore) GetByID(_ context.Context, id int64) (*models.AcademicYear, error) {
	year, ok := s.years[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return year, nil
}

func (s *fakeYearStore) List(_ context.Context) ([]*models.AcademicYear, error) {
	out := []*models.AcademicYear{}
	for _, y := range s.years {
		out = append(out, y)
	}
	return out, nil
}

func (s *fakeYearStore) NameExists(_ context.Context, name string) (bool, error) {
	for _, y := range s.years {
		if y.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeYearStore) ClearCurrentExcept(_ context.Context, id int64) error {
	s.clearedCalls = append(s.clearedCalls, id)
	for _, y := range s.years {
		if y.ID != id {
			y.IsCurrent = false
		}
	}
	return nil
}

type fakeProfileReader struct {
	profiles map[int64]*models.StudentProfile
}

func (s *fakeProfileReader) GetByUserID(_ context.Context, userID int64) (*models.StudentProfile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return profile, nil
}

type feeKey struct {
	studentID      int64
	academicYearID int64
}

type fakeFeeStatusReader struct {
	statuses map[feeKey]string
}

func (s *fakeFeeStatusReader) GetPaymentStatus(_ context.Context, studentID, academicYearID int64) (string, error) {
	status, ok := s.statuses[feeKey{studentID, academicYearID}]
	if !ok {
		return "", repositories.ErrNotFound
	}
	return status, nil
}

type fakeCourseStore struct {
	courses map[int64]*models.Course
	nextID  int64
	updates map[int64]map[string]interface{}
}

func newFakeCourseStore(courses ...*models.Course) *fakeCourseStore {
	s := &fakeCourseStore{
		courses: map[int64]*models.Course{},
		nextID:  1,
		updates: map[int64]map[string]interface{}{},
	}
	for _, c := range courses {
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
		s.courses[c.ID] = c
	}
	return s
}

func (s *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	course.ID = s.nextID
	s.nextID++
	s.courses[course.ID] = course
	return nil
}

func (s *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := s.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return course, nil
}

func (s *fakeCourseStore) CodeExists(_ context.Context, code string) (bool, error) {
	for _, c := range s.courses {
		if c.CourseCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeCourseStore) Update(_ context.Context, id int64, updates map[string]interface{}) error {
	course, ok := s.courses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	s.updates[id] = updates
	if name, ok := updates["course_name"].(string); ok {
		course.CourseName = name
	}
	if level, ok := updates["level"].(int); ok {
		course.Level = level
	}
	if facultyID, ok := updates["faculty_id"].(int64); ok {
		course.FacultyID = facultyID
	}
	if departmentID, ok := updates["department_id"].(int64); ok {
		course.DepartmentID = departmentID
	}
	if isActive, ok := updates["is_active"].(bool); ok {
		course.IsActive = isActive
	}
	return nil
}

func (s *fakeCourseStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.courses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.courses, id)
	return nil
}

func (s *fakeCourseStore) List(_ context.Context, query *repositories.CourseQuery) ([]*models.Course, error) {
	out := []*models.Course{}
	for _, c := range s.courses {
		if query != nil {
			if query.FacultyID != nil && c.FacultyID != *query.FacultyID {
				continue
			}
			if query.DepartmentID != nil && c.DepartmentID != *query.DepartmentID {
				continue
			}
			if query.Level != nil && c.Level != *query.Level {
				continue
			}
			if query.IsActive != nil && c.IsActive != *query.IsActive {
				continue
			}
		}
		out = append(out, c)
	}
	return out, nil
}

type fakeFacultyStore struct {
	faculties map[int64]*models.Faculty
	nextID    int64
}

func newFakeFacultyStore(faculties ...*models.Faculty) *fakeFacultyStore {
	s := &fakeFacultyStore{faculties: map[int64]*models.Faculty{}, nextID: 1}
	for _, f := range faculties {
		if f.ID >= s.nextID {
			s.nextID = f.ID + 1
		}
		s.faculties[f.ID] = f
	}
	return s
}

func (s *fakeFacultyStore) Create(_ context.Context, faculty *models.Faculty) error {
	faculty.ID = s.nextID
	s.nextID++
	s.faculties[faculty.ID] = faculty
	return nil
}

func (s *fakeFacultyStore) GetByID(_ context.Context, id int64) (*models.Faculty, error) {
	faculty, ok := s.faculties[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return faculty, nil
}

func (s *fakeFacultyStore) List(_ context.Context) ([]*models.Faculty, error) {
	out := []*models.Faculty{}
	for _, f := range s.faculties {
		out = append(out, f)
	}
	return out, nil
}

func (s *fakeFacultyStore) Update(_ context.Context, id int64, updates map[string]interface{}) error {
	faculty, ok := s.faculties[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if name, ok := updates["name"].(string); ok {
		faculty.Name = name
	}
	if code, ok := updates["code"].(string); ok {
		faculty.Code = code
	}
	return nil
}

func (s *fakeFacultyStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.faculties[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.faculties, id)
	return nil
}

func (s *fakeFacultyStore) NameExists(_ context.Context, name string, excludeID int64) (bool, error) {
	for _, f := range s.faculties {
		if f.Name == name && f.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeFacultyStore) CodeExists(_ context.Context, code string, excludeID int64) (bool, error) {
	for _, f := range s.faculties {
		if f.Code == code && f.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeDepartmentStore struct {
	departments map[int64]*models.Department
	nextID      int64
}

func newFakeDepartmentStore(departments ...*models.Department) *fakeDepartmentStore {
	s := &fakeDepartmentStore{departments: map[int64]*models.Department{}, nextID: 1}
	for _, d := range departments {
		if d.ID >= s.nextID {
			s.nextID = d.ID + 1
		}
		s.departments[d.ID] = d
	}
	return s
}

func (s *fakeDepartmentStore) Create(_ context.Context, department *models.Department) error {
	department.ID = s.nextID
	s.nextID++
	s.departments[department.ID] = department
	return nil
}

func (s *fakeDepartmentStore) GetByID(_ context.Context, id int64) (*models.Department, error) {
	department, ok := s.departments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return department, nil
}

func (s *fakeDepartmentStore) List(_ context.Context, facultyID *int64) ([]*models.Department, error) {
	out := []*models.Department{}
	for _, d := range s.departments {
		if facultyID != nil && d.FacultyID != *facultyID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *fakeDepartmentStore) Update(_ context.Context, id int64, updates map[string]interface{}) error {
	department, ok := s.departments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if name, ok := updates["name"].(string); ok {
		department.Name = name
	}
	if code, ok := updates["code"].(string); ok {
		department.Code = code
	}
	if facultyID, ok := updates["faculty_id"].(int64); ok {
		department.FacultyID = facultyID
	}
	return nil
}

func (s *fakeDepartmentStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.departments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.departments, id)
	return nil
}

func (s *fakeDepartmentStore) NameExists(_ context.Context, name string, excludeID int64) (bool, error) {
	for _, d := range s.departments {
		if d.Name == name && d.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeDepartmentStore) CodeExists(_ context.Context, code string, excludeID int64) (bool, error) {
	for _, d := range s.departments {
		if d.Code == code && d.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeRegistrationStore struct {
	registrations map[int64]*models.CourseRegistration
	items         map[int64]*models.RegistrationItem
	submitted     []*models.SubmittedRegistration
	nextRegID     int64
	nextItemID    int64
}

func newFakeRegistrationStore() *fakeRegistrationStore {
	return &fakeRegistrationStore{
		registrations: map[int64]*models.CourseRegistration{},
		items:         map[int64]*models.RegistrationItem{},
		nextRegID:     1,
		nextItemID:    1,
	}
}

func (s *fakeRegistrationStore) addRegistration(reg *models.CourseRegistration) *models.CourseRegistration {
	if reg.ID == 0 {
		reg.ID = s.nextRegID
	}
	if reg.ID >= s.nextRegID {
		s.nextRegID = reg.ID + 1
	}
	s.registrations[reg.ID] = reg
	return reg
}

func (s *fakeRegistrationStore) addItem(item *models.RegistrationItem) *models.RegistrationItem {
	if item.ID == 0 {
		item.ID = s.nextItemID
	}
	if item.ID >= s.nextItemID {
		s.nextItemID = item.ID + 1
	}
	if item.Status == "" {
		item.Status = models.RegistrationItemStatusActive
	}
	s.items[item.ID] = item
	return item
}

func (s *fakeRegistrationStore) Create(_ context.Context, registration *models.CourseRegistration) error {
	for _, r := range s.registrations {
		if r.StudentID == registration.StudentID && r.AcademicYearID == registration.AcademicYearID {
			return repositories.ErrDuplicate
		}
	}
	registration.CreatedAt = time.Now()
	s.addRegistration(registration)
	return nil
}

func (s *fakeRegistrationStore) GetByID(_ context.Context, id int64) (*models.CourseRegistration, error) {
	registration, ok := s.registrations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return registration, nil
}

func (s *fakeRegistrationStore) ExistsForStudentYear(_ context.Context, studentID, academicYearID int64) (bool, error) {
	for _, r := range s.registrations {
		if r.StudentID == studentID && r.AcademicYearID == academicYearID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeRegistrationStore) ListByStudent(_ context.Context, studentID int64) ([]*models.CourseRegistration, error) {
	out := []*models.CourseRegistration{}
	for _, r := range s.registrations {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeRegistrationStore) LatestForStudent(_ context.Context, studentID int64) (*models.CourseRegistration, error) {
	var latest *models.CourseRegistration
	for _, r := range s.registrations {
		if r.StudentID != studentID {
			continue
		}
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, repositories.ErrNotFound
	}
	return latest, nil
}

func (s *fakeRegistrationStore) SetSubmitted(_ context.Context, id int64, submitted bool, submittedAt *time.Time) error {
	registration, ok := s.registrations[id]
	if !ok {
		return repositories.ErrNotFound
	}
	registration.Submitted = submitted
	registration.SubmittedAt = submittedAt
	return nil
}

func (s *fakeRegistrationStore) ListItems(_ context.Context, registrationID int64) ([]*models.RegistrationItem, error) {
	out := []*models.RegistrationItem{}
	for _, item := range s.items {
		if item.RegistrationID == registrationID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *fakeRegistrationStore) GetItemByID(_ context.Context, itemID int64) (*models.RegistrationItem, error) {
	item, ok := s.items[itemID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return item, nil
}

func (s *fakeRegistrationStore) HasActiveItem(_ context.Context, registrationID, courseID int64) (bool, error) {
	for _, item := range s.items {
		if item.RegistrationID == registrationID &&
			item.CourseID != nil && *item.CourseID == courseID &&
			item.Status == models.RegistrationItemStatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeRegistrationStore) CreateItem(_ context.Context, item *models.RegistrationItem) error {
	item.CreatedAt = time.Now()
	s.addItem(item)
	return nil
}

func (s *fakeRegistrationStore) MarkItemRemoved(_ context.Context, itemID int64, removedAt time.Time) (*models.RegistrationItem, error) {
	item, ok := s.items[itemID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	item.Status = models.RegistrationItemStatusRemoved
	item.RemovedAt = &removedAt
	return item, nil
}

func (s *fakeRegistrationStore) CountActiveItems(_ context.Context, registrationID int64) (int, error) {
	count := 0
	for _, item := range s.items {
		if item.RegistrationID == registrationID && item.Status == models.RegistrationItemStatusActive {
			count++
		}
	}
	return count, nil
}

func (s *fakeRegistrationStore) ListSubmitted(_ context.Context, academicYearID *int64) ([]*models.SubmittedRegistration, error) {
	out := []*models.SubmittedRegistration{}
	for _, row := range s.submitted {
		if academicYearID != nil && row.AcademicYearID != *academicYearID {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

type fakeSchoolFeeStore struct {
	policies     map[int64]*models.SchoolFeePolicy
	payments     map[int64]*models.SchoolFeePayment
	nextPolicyID int64
	nextPayID    int64
}

func newFakeSchoolFeeStore() *fakeSchoolFeeStore {
	return &fakeSchoolFeeStore{
		policies:     map[int64]*models.SchoolFeePolicy{},
		payments:     map[int64]*models.SchoolFeePayment{},
		nextPolicyID: 1,
		nextPayID:    1,
	}
}

func (s *fakeSchoolFeeStore) addPolicy(policy *models.SchoolFeePolicy) *models.SchoolFeePolicy {
	if policy.ID == 0 {
		policy.ID = s.nextPolicyID
	}
	if policy.ID >= s.nextPolicyID {
		s.nextPolicyID = policy.ID + 1
	}
	s.policies[policy.ID] = policy
	return policy
}

func (s *fakeSchoolFeeStore) addPayment(payment *models.SchoolFeePayment) *models.SchoolFeePayment {
	if payment.ID == 0 {
		payment.ID = s.nextPayID
	}
	if payment.ID >= s.nextPayID {
		s.nextPayID = payment.ID + 1
	}
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}
	s.payments[payment.ID] = payment
	return payment
}

func (s *fakeSchoolFeeStore) ListPolicies(_ context.Context) ([]*models.SchoolFeePolicy, error) {
	out := []*models.SchoolFeePolicy{}
	for _, p := range s.policies {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeSchoolFeeStore) GetPolicyByID(_ context.Context, id int64) (*models.SchoolFeePolicy, error) {
	policy, ok := s.policies[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return policy, nil
}

func (s *fakeSchoolFeeStore) GetPolicyByYear(_ context.Context, academicYearID int64) (*models.SchoolFeePolicy, error) {
	for _, p := range s.policies {
		if p.AcademicYearID == academicYearID {
			return p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *fakeSchoolFeeStore) CreatePolicy(_ context.Context, policy *models.SchoolFeePolicy) error {
	for _, p := range s.policies {
		if p.AcademicYearID == policy.AcademicYearID {
			return repositories.ErrDuplicate
		}
	}
	s.addPolicy(policy)
	return nil
}

func (s *fakeSchoolFeeStore) UpdatePolicyAmount(_ context.Context, id, amount int64, updatedBy *int64) error {
	policy, ok := s.policies[id]
	if !ok {
		return repositories.ErrNotFound
	}
	policy.Amount = amount
	policy.UpdatedBy = updatedBy
	return nil
}

func (s *fakeSchoolFeeStore) GetPaymentByID(_ context.Context, id int64) (*models.SchoolFeePayment, error) {
	payment, ok := s.payments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return payment, nil
}

func (s *fakeSchoolFeeStore) GetPaymentByStudentYear(_ context.Context, studentID, academicYearID int64) (*models.SchoolFeePayment, error) {
	for _, p := range s.payments {
		if p.StudentID == studentID && p.AcademicYearID == academicYearID {
			return p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *fakeSchoolFeeStore) ListPayments(_ context.Context, query *repositories.PaymentQuery) ([]*models.SchoolFeePayment, error) {
	out := []*models.SchoolFeePayment{}
	for _, p := range s.payments {
		if query != nil {
			if query.StudentID != nil && p.StudentID != *query.StudentID {
				continue
			}
			if query.AcademicYearID != nil && p.AcademicYearID != *query.AcademicYearID {
				continue
			}
			if query.Status != nil && p.Status != *query.Status {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeSchoolFeeStore) CreatePayment(_ context.Context, payment *models.SchoolFeePayment) error {
	for _, p := range s.payments {
		if p.StudentID == payment.StudentID && p.AcademicYearID == payment.AcademicYearID {
			return repositories.ErrDuplicate
		}
	}
	payment.Status = models.PaymentStatusPending
	payment.CreatedAt = time.Now()
	s.addPayment(payment)
	return nil
}

func (s *fakeSchoolFeeStore) ResetDeclinedPayment(_ context.Context, id, amount int64, reference *string, notes *string) error {
	payment, ok := s.payments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	payment.Amount = amount
	payment.Status = models.PaymentStatusPending
	payment.PaymentReference = reference
	payment.Notes = notes
	payment.ApprovedBy = nil
	payment.ApprovedAt = nil
	payment.DeclinedBy = nil
	payment.DeclinedAt = nil
	payment.DeclinedReason = nil
	return nil
}

func (s *fakeSchoolFeeStore) ApprovePayment(_ context.Context, id, adminID int64, decidedAt time.Time) error {
	payment, ok := s.payments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	payment.Status = models.PaymentStatusApproved
	payment.ApprovedBy = &adminID
	payment.ApprovedAt = &decidedAt
	payment.DeclinedBy = nil
	payment.DeclinedAt = nil
	payment.DeclinedReason = nil
	return nil
}

func (s *fakeSchoolFeeStore) DeclinePayment(_ context.Context, id, adminID int64, reason string, decidedAt time.Time) error {
	payment, ok := s.payments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	payment.Status = models.PaymentStatusDeclined
	payment.DeclinedBy = &adminID
	payment.DeclinedAt = &decidedAt
	payment.DeclinedReason = &reason
	payment.ApprovedBy = nil
	payment.ApprovedAt = nil
	return nil
}

type auditEntry struct {
	actorID    int64
	actionType string
	actionData interface{}
}

type fakeAuditRecorder struct {
	entries []auditEntry
	err     error
}

func (s *fakeAuditRecorder) Record(_ context.Context, actorID int64, actionType string, actionData interface{}) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, auditEntry{actorID: actorID, actionType: actionType, actionData: actionData})
	return nil
}

type fakeUserStore struct {
	users       map[int64]*models.User
	roleUpdates map[int64]models.Role
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: map[int64]*models.User{}, roleUpdates: map[int64]models.Role{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserStore) UpdateRole(_ context.Context, userID int64, role models.Role) error {
	user, ok := s.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Role = role
	s.roleUpdates[userID] = role
	return nil
}

func (s *fakeUserStore) UpdateRoleTx(ctx context.Context, _ pgx.Tx, userID int64, role models.Role) error {
	return s.UpdateRole(ctx, userID, role)
}

type fakeProfileStore struct {
	profiles map[int64]*models.StudentProfile
	records  []*models.StudentRecord
	nextID   int64
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[int64]*models.StudentProfile{}, nextID: 1}
}

func (s *fakeProfileStore) GetByUserID(_ context.Context, userID int64) (*models.StudentProfile, error) {
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return profile, nil
}

func (s *fakeProfileStore) MatricNoExists(_ context.Context, matricNo string) (bool, error) {
	for _, p := range s.profiles {
		if p.MatricNo == matricNo {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeProfileStore) CreateTx(_ context.Context, _ pgx.Tx, profile *models.StudentProfile) error {
	if _, exists := s.profiles[profile.UserID]; exists {
		return repositories.ErrDuplicate
	}
	profile.ID = s.nextID
	s.nextID++
	s.profiles[profile.UserID] = profile
	return nil
}

func (s *fakeProfileStore) ListStudents(_ context.Context, _ *repositories.StudentQuery) ([]*models.StudentRecord, error) {
	return s.records, nil
}

// fakeTransactor runs the function directly with a nil transaction. The
// fake stores above ignore the tx handle.
type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

type fakeAuthUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeAuthUserStore(users ...*models.User) *fakeAuthUserStore {
	s := &fakeAuthUserStore{users: map[int64]*models.User{}, nextID: 1}
	for _, u := range users {
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeAuthUserStore) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = user
	return nil
}

func (s *fakeAuthUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *fakeAuthUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}
