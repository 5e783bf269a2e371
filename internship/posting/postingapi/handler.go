package postingapi

import (
	"context"
	"strconv"

	"github.com/adilnv/internlink/internship/posting"
	"github.com/adilnv/internlink/internship/posting/postingsrv"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for posting operations
type Handlers struct {
	service *postingsrv.PostingService
}

// NewHandlers creates a new posting handlers instance
func NewHandlers(service *postingsrv.PostingService) *Handlers {
	return &Handlers{service: service}
}

// CreatePosting creates a new posting
// POST /api/postings
func (h *Handlers) CreatePosting(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return posting.ErrInsufficientPermissions()
	}

	var req posting.CreatePostingRequest
	if err := c.BodyParser(&req); err != nil {
		return posting.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	newPosting, err := h.service.CreatePosting(c.Context(), req, authContext.UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newPosting)
}

// UpdatePosting edits a posting
// PATCH /api/postings/:id
func (h *Handlers) UpdatePosting(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return posting.ErrInsufficientPermissions()
	}

	postingID := kernel.PostingID(c.Params("id"))

	var req posting.UpdatePostingRequest
	if err := c.BodyParser(&req); err != nil {
		return posting.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdatePosting(c.Context(), postingID, req, authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// PublishPosting opens a posting for candidatures
// POST /api/postings/:id/publish
func (h *Handlers) PublishPosting(c *fiber.Ctx) error {
	return h.transition(c, h.service.PublishPosting)
}

// ClosePosting stops a posting from accepting candidatures
// POST /api/postings/:id/close
func (h *Handlers) ClosePosting(c *fiber.Ctx) error {
	return h.transition(c, h.service.ClosePosting)
}

// ArchivePosting archives a posting
// POST /api/postings/:id/archive
func (h *Handlers) ArchivePosting(c *fiber.Ctx) error {
	return h.transition(c, h.service.ArchivePosting)
}

// GetPostingByID retrieves a posting by ID
// GET /api/postings/:id
func (h *Handlers) GetPostingByID(c *fiber.Ctx) error {
	postingID := kernel.PostingID(c.Params("id"))
	if postingID.IsEmpty() {
		return posting.ErrPostingNotFound().WithDetail("id", "missing or empty")
	}

	p, err := h.service.GetPostingByID(c.Context(), postingID)
	if err != nil {
		return err
	}

	return c.JSON(p)
}

// ListPublished retrieves postings open for candidatures
// GET /api/postings
func (h *Handlers) ListPublished(c *fiber.Ctx) error {
	result, err := h.service.ListPublished(c.Context(), paginationFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// ListByOrganization retrieves postings of one organization
// GET /api/postings/by-organization/:orgId
func (h *Handlers) ListByOrganization(c *fiber.Ctx) error {
	orgID := kernel.OrganizationID(c.Params("orgId"))

	result, err := h.service.ListByOrganization(c.Context(), orgID, paginationFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *Handlers) transition(c *fiber.Ctx, op func(ctx context.Context, postingID kernel.PostingID, actorID kernel.UserID) (*posting.Posting, error)) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return posting.ErrInsufficientPermissions()
	}

	postingID := kernel.PostingID(c.Params("id"))
	if postingID.IsEmpty() {
		return posting.ErrPostingNotFound().WithDetail("id", "missing or empty")
	}

	p, err := op(c.Context(), postingID, authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(p)
}

func paginationFromQuery(c *fiber.Ctx) kernel.PaginationOptions {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	return kernel.PaginationOptions{Page: page, PageSize: pageSize}
}

// RegisterRoutes registers all posting routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/postings")

	api.Get("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopePostingsRead),
		handlers.ListPublished,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopePostingsRead),
		handlers.GetPostingByID,
	)

	api.Get("/by-organization/:orgId",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopePostingsRead),
		handlers.ListByOrganization,
	)

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopePostingsWrite),
		handlers.CreatePosting,
	)

	api.Patch("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopePostingsWrite),
		handlers.UpdatePosting,
	)

	api.Post("/:id/publish",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopePostingsPublish),
		handlers.PublishPosting,
	)

	api.Post("/:id/close",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopePostingsPublish),
		handlers.ClosePosting,
	)

	api.Post("/:id/archive",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopePostingsDelete),
		handlers.ArchivePosting,
	)
}
