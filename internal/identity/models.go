package identity

import "github.com/studyhall/studyhall-lms/internal/errs"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
}

// RequireRole is the single authorization check the services share. Role
// comparisons never happen inline in an operation; they all come through here.
func RequireRole(u User, role string) error {
	if u.Role != role {
		return errs.RoleViolation("operation requires " + role + " role")
	}
	return nil
}

// RequireAnyRole allows any of the given roles (teacher-or-admin guards).
func RequireAnyRole(u User, roles ...string) error {
	for _, r := range roles {
		if u.Role == r {
			return nil
		}
	}
	return errs.RoleViolation("operation not permitted for role " + u.Role)
}
