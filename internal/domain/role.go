package domain

type Role string

const (
	RoleClient        Role = "client"
	RoleBusinessOwner Role = "business_owner"
	RoleEmployee      Role = "employee"
	RoleAdmin         Role = "admin"
)

// IsStaff reports whether the role bypasses client-side cancellation windows.
func (r Role) IsStaff() bool {
	return r == RoleBusinessOwner || r == RoleEmployee || r == RoleAdmin
}
