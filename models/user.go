package models

// UserRole is the closed set of roles the API assigns to accounts.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleEditor    UserRole = "editor"
	RoleModerator UserRole = "moderator"
	RoleCustomer  UserRole = "customer"
)

// IsStaff reports whether the role grants access to the admin panel at all.
func (r UserRole) IsStaff() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleModerator:
		return true
	}
	return false
}

type User struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            UserRole `json:"role"`
	EmailVerifiedAt *string  `json:"email_verified_at"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	DeletedAt       *string  `json:"deleted_at,omitempty"`
}

// AuthResponse is the payload of /login and /register.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type CreateUserRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role,omitempty"`
}

type UpdateUserRequest struct {
	Name  string   `json:"name,omitempty"`
	Email string   `json:"email,omitempty"`
	Role  UserRole `json:"role,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword         string `json:"current_password"`
	NewPassword             string `json:"new_password"`
	NewPasswordConfirmation string `json:"new_password_confirmation"`
}
