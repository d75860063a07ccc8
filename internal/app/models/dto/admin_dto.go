package dto

// UpdateRoleRequest represents an admin role change
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// RoleResponse represents the result of a role change
type RoleResponse struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
}

// StudentFilters represents the admin student listing query parameters
type StudentFilters struct {
	Name         string
	MatricNo     string
	FacultyID    *int64
	DepartmentID *int64
}
