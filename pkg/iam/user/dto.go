package user

import (
	"time"

	"github.com/adilnv/internlink/pkg/kernel"
)

// RegisterRequest is the payload to create an account
type RegisterRequest struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	Role      string `json:"role"`

	// Intern fields
	School      string `json:"school,omitempty"`
	DegreeLevel string `json:"degree_level,omitempty"`
	Skills      string `json:"skills,omitempty"`

	// Staff fields
	OrganizationID string `json:"organization_id,omitempty"`
	Position       string `json:"position,omitempty"`
}

// LoginRequest is the payload to authenticate
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token alongside the user
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// UserResponse is the API representation of a user
type UserResponse struct {
	ID        kernel.UserID  `json:"id"`
	Email     kernel.Email   `json:"email"`
	Phone     kernel.Phone   `json:"phone"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	FullName  string         `json:"full_name"`
	Role      Role           `json:"role"`
	Status    UserStatus     `json:"status"`
	Intern    *InternProfile `json:"intern,omitempty"`
	Staff     *StaffProfile  `json:"staff,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ToResponse converts the entity to its API representation
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		FirstName: string(u.FirstName),
		LastName:  string(u.LastName),
		FullName:  u.GetFullName(),
		Role:      u.Role,
		Status:    u.Status,
		Intern:    u.Intern,
		Staff:     u.Staff,
		CreatedAt: u.CreatedAt,
	}
}
