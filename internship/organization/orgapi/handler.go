package orgapi

import (
	"strconv"

	"github.com/adilnv/internlink/internship/organization"
	"github.com/adilnv/internlink/internship/organization/orgsrv"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for organization operations
type Handlers struct {
	service *orgsrv.OrganizationService
}

// NewHandlers creates a new organization handlers instance
func NewHandlers(service *orgsrv.OrganizationService) *Handlers {
	return &Handlers{service: service}
}

// CreateOrganization registers a host company
// POST /api/organizations
func (h *Handlers) CreateOrganization(c *fiber.Ctx) error {
	var req orgsrv.CreateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return organization.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	org, err := h.service.Create(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(org)
}

// GetOrganizationByID retrieves an organization by ID
// GET /api/organizations/:id
func (h *Handlers) GetOrganizationByID(c *fiber.Ctx) error {
	orgID := kernel.OrganizationID(c.Params("id"))
	if orgID.IsEmpty() {
		return organization.ErrOrganizationNotFound().WithDetail("id", "missing or empty")
	}

	org, err := h.service.GetByID(c.Context(), orgID)
	if err != nil {
		return err
	}

	return c.JSON(org)
}

// ListOrganizations retrieves organizations with pagination
// GET /api/organizations
func (h *Handlers) ListOrganizations(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	result, err := h.service.List(c.Context(), kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// RegisterRoutes registers all organization routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/organizations")

	api.Get("/",
		authMiddleware.Authenticate(),
		handlers.ListOrganizations,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		handlers.GetOrganizationByID,
	)

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeAll),
		handlers.CreateOrganization,
	)
}
