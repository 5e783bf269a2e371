package stageapi

import (
	"context"
	"strconv"

	"github.com/adilnv/internlink/internship/stage"
	"github.com/adilnv/internlink/internship/stage/stagesrv"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for stage operations
type Handlers struct {
	service *stagesrv.StageService
}

// NewHandlers creates a new stage handlers instance
func NewHandlers(service *stagesrv.StageService) *Handlers {
	return &Handlers{service: service}
}

// BeginStage starts a pending stage
// POST /api/stages/:id/begin
func (h *Handlers) BeginStage(c *fiber.Ctx) error {
	return h.transition(c, func(ctx context.Context, id kernel.StageID, actor kernel.UserID) (*stage.Stage, error) {
		return h.service.BeginStage(ctx, id, actor)
	})
}

// CompleteStage concludes an active stage
// POST /api/stages/:id/complete
func (h *Handlers) CompleteStage(c *fiber.Ctx) error {
	var req stage.CompleteStageRequest
	if err := c.BodyParser(&req); err != nil {
		return stage.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	return h.transition(c, func(ctx context.Context, id kernel.StageID, actor kernel.UserID) (*stage.Stage, error) {
		return h.service.CompleteStage(ctx, id, req, actor)
	})
}

// InterruptStage ends an active stage early
// POST /api/stages/:id/interrupt
func (h *Handlers) InterruptStage(c *fiber.Ctx) error {
	var req stage.NotesRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return stage.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	return h.transition(c, func(ctx context.Context, id kernel.StageID, actor kernel.UserID) (*stage.Stage, error) {
		return h.service.InterruptStage(ctx, id, req.Notes, actor)
	})
}

// SuspendStage pauses an active stage
// POST /api/stages/:id/suspend
func (h *Handlers) SuspendStage(c *fiber.Ctx) error {
	var req stage.NotesRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return stage.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	return h.transition(c, func(ctx context.Context, id kernel.StageID, actor kernel.UserID) (*stage.Stage, error) {
		return h.service.SuspendStage(ctx, id, req.Notes, actor)
	})
}

// ResumeStage reactivates a suspended stage
// POST /api/stages/:id/resume
func (h *Handlers) ResumeStage(c *fiber.Ctx) error {
	return h.transition(c, func(ctx context.Context, id kernel.StageID, actor kernel.UserID) (*stage.Stage, error) {
		return h.service.ResumeStage(ctx, id, actor)
	})
}

// DeleteStage removes a stage that has not started
// DELETE /api/stages/:id
func (h *Handlers) DeleteStage(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return stage.ErrInsufficientPermissions()
	}

	stageID := kernel.StageID(c.Params("id"))
	if stageID.IsEmpty() {
		return stage.ErrStageNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteStage(c.Context(), stageID, authContext.UserID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetStageByID retrieves a stage by ID
// GET /api/stages/:id
func (h *Handlers) GetStageByID(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return stage.ErrInsufficientPermissions()
	}

	stageID := kernel.StageID(c.Params("id"))
	if stageID.IsEmpty() {
		return stage.ErrStageNotFound().WithDetail("id", "missing or empty")
	}

	st, err := h.service.GetStageByID(c.Context(), stageID, authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(st)
}

// ListMyStages retrieves the authenticated intern's stages
// GET /api/stages/mine
func (h *Handlers) ListMyStages(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return stage.ErrInsufficientPermissions()
	}

	result, err := h.service.ListStagesByIntern(c.Context(), authContext.UserID, paginationFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// ListByOrganization retrieves stages hosted by one organization
// GET /api/stages/by-organization/:orgId
func (h *Handlers) ListByOrganization(c *fiber.Ctx) error {
	orgID := kernel.OrganizationID(c.Params("orgId"))

	result, err := h.service.ListStagesByOrganization(c.Context(), orgID, paginationFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *Handlers) transition(c *fiber.Ctx, op func(ctx context.Context, id kernel.StageID, actor kernel.UserID) (*stage.Stage, error)) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return stage.ErrInsufficientPermissions()
	}

	stageID := kernel.StageID(c.Params("id"))
	if stageID.IsEmpty() {
		return stage.ErrStageNotFound().WithDetail("id", "missing or empty")
	}

	st, err := op(c.Context(), stageID, authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(st)
}

func paginationFromQuery(c *fiber.Ctx) kernel.PaginationOptions {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	return kernel.PaginationOptions{Page: page, PageSize: pageSize}
}

// RegisterRoutes registers all stage routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/stages")

	api.Get("/mine",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeStagesRead),
		handlers.ListMyStages,
	)

	api.Get("/by-organization/:orgId",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeStagesRead),
		handlers.ListByOrganization,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeStagesRead),
		handlers.GetStageByID,
	)

	api.Post("/:id/begin",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeStagesWrite),
		handlers.BeginStage,
	)

	api.Post("/:id/complete",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeStagesWrite),
		handlers.CompleteStage,
	)

	api.Post("/:id/interrupt",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeStagesWrite),
		handlers.InterruptStage,
	)

	api.Post("/:id/suspend",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeStagesWrite),
		handlers.SuspendStage,
	)

	api.Post("/:id/resume",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeStagesWrite),
		handlers.ResumeStage,
	)

	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeStagesDelete),
		handlers.DeleteStage,
	)
}
