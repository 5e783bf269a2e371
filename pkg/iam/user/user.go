package user

import (
	"fmt"
	"time"

	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/kernel"
)

// Role tags the user variant. Authorization decisions match on this tag
// explicitly; there is no dispatch through the role payloads.
type Role string

const (
	RoleIntern    Role = "INTERN"
	RoleRecruiter Role = "RECRUITER"
	RoleHRManager Role = "HR_MANAGER"
	RoleAdmin     Role = "ADMIN"
)

// UserStatus represents the account status
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// InternProfile is the role payload for interns
type InternProfile struct {
	School      string `db:"school" json:"school"`
	DegreeLevel string `db:"degree_level" json:"degree_level"`
	Skills      string `db:"skills" json:"skills"`
}

// StaffProfile is the role payload for recruiters and HR managers
type StaffProfile struct {
	OrganizationID kernel.OrganizationID `db:"organization_id" json:"organization_id"`
	Position       string                `db:"position" json:"position"`
}

// User is a shared identity plus exactly one role-specific payload.
// Intern is set iff Role == RoleIntern; Staff iff Role is RECRUITER or
// HR_MANAGER; admins carry neither.
type User struct {
	ID           kernel.UserID    `db:"id" json:"id"`
	Email        kernel.Email     `db:"email" json:"email"`
	Phone        kernel.Phone     `db:"phone" json:"phone"`
	FirstName    kernel.FirstName `db:"first_name" json:"first_name"`
	LastName     kernel.LastName  `db:"last_name" json:"last_name"`
	Role         Role             `db:"role" json:"role"`
	Status       UserStatus       `db:"status" json:"status"`
	PasswordHash string           `db:"password_hash" json:"-"`

	Intern *InternProfile `json:"intern,omitempty"`
	Staff  *StaffProfile  `json:"staff,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive checks if the account may act
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsIntern checks the role tag
func (u *User) IsIntern() bool {
	return u.Role == RoleIntern
}

// IsRecruiter checks the role tag
func (u *User) IsRecruiter() bool {
	return u.Role == RoleRecruiter
}

// IsHRManager checks the role tag
func (u *User) IsHRManager() bool {
	return u.Role == RoleHRManager
}

// IsAdmin checks the role tag
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// OrganizationID returns the organization a staff user belongs to
func (u *User) OrganizationID() (kernel.OrganizationID, bool) {
	if u.Staff == nil {
		return "", false
	}
	return u.Staff.OrganizationID, true
}

// BelongsTo checks staff membership in an organization; admins belong everywhere
func (u *User) BelongsTo(orgID kernel.OrganizationID) bool {
	if u.IsAdmin() {
		return true
	}
	if u.Staff == nil {
		return false
	}
	return u.Staff.OrganizationID == orgID
}

// Scopes returns the scope set granted by the user's role
func (u *User) Scopes() []string {
	return auth.ScopesForRole(string(u.Role))
}

// HasAnyScope reports whether the user's role grants at least one of the scopes
func (u *User) HasAnyScope(scopes ...string) bool {
	for _, held := range u.Scopes() {
		for _, required := range scopes {
			if auth.MatchScope(held, required) {
				return true
			}
		}
	}
	return false
}

// GetFullName returns the user's full name
func (u *User) GetFullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// Position returns the job title recorded for staff, or a role fallback
func (u *User) Position() string {
	if u.Staff != nil && u.Staff.Position != "" {
		return u.Staff.Position
	}
	switch u.Role {
	case RoleHRManager:
		return "HR Manager"
	case RoleRecruiter:
		return "Recruiter"
	default:
		return string(u.Role)
	}
}

// Suspend marks the account suspended
func (u *User) Suspend() {
	u.Status = UserStatusSuspended
	u.UpdatedAt = time.Now()
}

// Activate reinstates the account
func (u *User) Activate() {
	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()
}
