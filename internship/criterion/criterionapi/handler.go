package criterionapi

import (
	"context"
	"strconv"

	"github.com/adilnv/internlink/internship/criterion"
	"github.com/adilnv/internlink/internship/criterion/criterionsrv"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for criterion operations
type Handlers struct {
	service *criterionsrv.CriterionService
}

// NewHandlers creates a new criterion handlers instance
func NewHandlers(service *criterionsrv.CriterionService) *Handlers {
	return &Handlers{service: service}
}

// CreateCriterion registers an evaluation criterion
// POST /api/criteria
func (h *Handlers) CreateCriterion(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return criterion.ErrInsufficientPermissions()
	}

	var req criterion.CreateCriterionRequest
	if err := c.BodyParser(&req); err != nil {
		return criterion.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateCriterion(c.Context(), req, authContext.UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateCriterion patches criterion fields
// PATCH /api/criteria/:id
func (h *Handlers) UpdateCriterion(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return criterion.ErrInsufficientPermissions()
	}

	criterionID := kernel.CriterionID(c.Params("id"))
	if criterionID.IsEmpty() {
		return criterion.ErrCriterionNotFound().WithDetail("id", "missing or empty")
	}

	var req criterion.UpdateCriterionRequest
	if err := c.BodyParser(&req); err != nil {
		return criterion.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateCriterion(c.Context(), criterionID, req, authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// DeactivateCriterion excludes a criterion from future aggregates
// POST /api/criteria/:id/deactivate
func (h *Handlers) DeactivateCriterion(c *fiber.Ctx) error {
	return h.toggle(c, h.service.DeactivateCriterion)
}

// ActivateCriterion re-enables a criterion
// POST /api/criteria/:id/activate
func (h *Handlers) ActivateCriterion(c *fiber.Ctx) error {
	return h.toggle(c, h.service.ActivateCriterion)
}

// GetCriterionByID retrieves a criterion by ID
// GET /api/criteria/:id
func (h *Handlers) GetCriterionByID(c *fiber.Ctx) error {
	criterionID := kernel.CriterionID(c.Params("id"))
	if criterionID.IsEmpty() {
		return criterion.ErrCriterionNotFound().WithDetail("id", "missing or empty")
	}

	found, err := h.service.GetCriterionByID(c.Context(), criterionID)
	if err != nil {
		return err
	}
	return c.JSON(found)
}

// ListCriteria retrieves all criteria with pagination
// GET /api/criteria
func (h *Handlers) ListCriteria(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	result, err := h.service.ListCriteria(c.Context(), kernel.PaginationOptions{Page: page, PageSize: pageSize})
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// ListAvailable retrieves the active criteria usable for one organization
// GET /api/criteria/available/:orgId
func (h *Handlers) ListAvailable(c *fiber.Ctx) error {
	orgID := kernel.OrganizationID(c.Params("orgId"))

	criteria, err := h.service.ListAvailable(c.Context(), orgID)
	if err != nil {
		return err
	}
	return c.JSON(criteria)
}

func (h *Handlers) toggle(c *fiber.Ctx, op func(ctx context.Context, id kernel.CriterionID, actor kernel.UserID) (*criterion.Criterion, error)) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return criterion.ErrInsufficientPermissions()
	}

	criterionID := kernel.CriterionID(c.Params("id"))
	if criterionID.IsEmpty() {
		return criterion.ErrCriterionNotFound().WithDetail("id", "missing or empty")
	}

	updated, err := op(c.Context(), criterionID, authContext.UserID)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// RegisterRoutes registers all criterion routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/criteria")

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCriteriaWrite),
		handlers.CreateCriterion,
	)

	api.Get("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCriteriaRead),
		handlers.ListCriteria,
	)

	api.Get("/available/:orgId",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCriteriaRead),
		handlers.ListAvailable,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCriteriaRead),
		handlers.GetCriterionByID,
	)

	api.Patch("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCriteriaWrite),
		handlers.UpdateCriterion,
	)

	api.Post("/:id/deactivate",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCriteriaWrite),
		handlers.DeactivateCriterion,
	)

	api.Post("/:id/activate",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCriteriaWrite),
		handlers.ActivateCriterion,
	)
}
