package userapi

import (
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/iam/user"
	"github.com/adilnv/internlink/pkg/iam/user/usersrv"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for account operations
type Handlers struct {
	service *usersrv.UserService
}

// NewHandlers creates a new user handlers instance
func NewHandlers(service *usersrv.UserService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Register creates a new account
// POST /api/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req user.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrMissingProfile().WithDetail("parse_error", err.Error())
	}

	account, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(account.ToResponse())
}

// Login authenticates and returns an access token
// POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req user.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidCredentials().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Me returns the authenticated caller's account
// GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrTokenMissing()
	}

	account, err := h.service.GetByID(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(account.ToResponse())
}

// GetUserByID retrieves a user by ID
// GET /api/users/:id
func (h *Handlers) GetUserByID(c *fiber.Ctx) error {
	userID := kernel.UserID(c.Params("id"))
	if userID.IsEmpty() {
		return user.ErrUserNotFound().WithDetail("id", "missing or empty")
	}

	account, err := h.service.GetByID(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(account.ToResponse())
}

// RegisterRoutes registers all account routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)
	authGroup.Get("/me",
		authMiddleware.Authenticate(),
		handlers.Me,
	)

	users := app.Group("/api/users")
	users.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeUsersRead),
		handlers.GetUserByID,
	)
}
