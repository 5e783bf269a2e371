package usersrv

import (
	"context"
	"strings"
	"time"

	"github.com/adilnv/internlink/pkg/errx"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/iam/user"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/google/uuid"
)

// UserService provides account registration and authentication
type UserService struct {
	userRepo  user.Repository
	passwords auth.PasswordService
	tokens    auth.TokenService
}

// NewUserService creates a new instance of the user service
func NewUserService(
	userRepo user.Repository,
	passwords auth.PasswordService,
	tokens auth.TokenService,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		passwords: passwords,
		tokens:    tokens,
	}
}

// Register creates a new account with its role profile
func (s *UserService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	email := kernel.Email(strings.ToLower(strings.TrimSpace(req.Email)))
	if email.IsEmpty() {
		return nil, user.ErrMissingProfile().WithDetail("field", "email")
	}

	taken, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check email uniqueness", errx.TypeInternal)
	}
	if taken {
		return nil, user.ErrEmailTaken().WithDetail("email", string(email))
	}

	role := user.Role(strings.ToUpper(req.Role))
	switch role {
	case user.RoleIntern, user.RoleRecruiter, user.RoleHRManager, user.RoleAdmin:
	default:
		return nil, user.ErrInvalidRole().WithDetail("role", req.Role)
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}

	newUser := &user.User{
		ID:           kernel.NewUserID(uuid.NewString()),
		Email:        email,
		Phone:        kernel.Phone(req.Phone),
		FirstName:    kernel.FirstName(req.FirstName),
		LastName:     kernel.LastName(req.LastName),
		Role:         role,
		Status:       user.UserStatusActive,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	switch role {
	case user.RoleIntern:
		newUser.Intern = &user.InternProfile{
			School:      req.School,
			DegreeLevel: req.DegreeLevel,
			Skills:      req.Skills,
		}
	case user.RoleRecruiter, user.RoleHRManager:
		if req.OrganizationID == "" {
			return nil, user.ErrMissingProfile().WithDetail("field", "organization_id")
		}
		newUser.Staff = &user.StaffProfile{
			OrganizationID: kernel.NewOrganizationID(req.OrganizationID),
			Position:       req.Position,
		}
	}

	if err := s.userRepo.Save(ctx, newUser); err != nil {
		return nil, errx.Wrap(err, "failed to create user", errx.TypeInternal)
	}

	return newUser, nil
}

// Login verifies credentials and issues an access token
func (s *UserService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	email := kernel.Email(strings.ToLower(strings.TrimSpace(req.Email)))

	account, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, user.ErrInvalidCredentials()
	}

	if !s.passwords.Compare(account.PasswordHash, req.Password) {
		return nil, user.ErrInvalidCredentials()
	}

	if !account.IsActive() {
		return nil, user.ErrUserSuspended().WithDetail("user_id", account.ID.String())
	}

	token, err := s.tokens.GenerateAccessToken(account.ID, string(account.Role), string(account.Email))
	if err != nil {
		return nil, errx.Wrap(err, "failed to issue access token", errx.TypeInternal)
	}

	return &user.LoginResponse{
		AccessToken: token,
		User:        account.ToResponse(),
	}, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	account, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	return account, nil
}

// ListByOrganization lists staff and interns attached to an organization
func (s *UserService) ListByOrganization(ctx context.Context, orgID kernel.OrganizationID, opts kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	page, err := s.userRepo.FindByOrganization(ctx, orgID, opts)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list users", errx.TypeInternal)
	}
	return page, nil
}
