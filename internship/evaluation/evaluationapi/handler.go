package evaluationapi

import (
	"context"

	"github.com/adilnv/internlink/internship/evaluation"
	"github.com/adilnv/internlink/internship/evaluation/evaluationsrv"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for evaluation operations
type Handlers struct {
	service *evaluationsrv.EvaluationService
}

// NewHandlers creates a new evaluation handlers instance
func NewHandlers(service *evaluationsrv.EvaluationService) *Handlers {
	return &Handlers{service: service}
}

// CreateEvaluation assesses a concluded stage
// POST /api/evaluations
func (h *Handlers) CreateEvaluation(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return evaluation.ErrInsufficientPermissions()
	}

	var req evaluation.CreateEvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return evaluation.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateEvaluation(c.Context(), req, authContext.UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateEvaluation patches a draft evaluation
// PATCH /api/evaluations/:id
func (h *Handlers) UpdateEvaluation(c *fiber.Ctx) error {
	var req evaluation.UpdateEvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return evaluation.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	return h.transition(c, func(ctx context.Context, id kernel.EvaluationID, actor kernel.UserID) (*evaluation.Evaluation, error) {
		return h.service.UpdateEvaluation(ctx, id, req, actor)
	})
}

// FinalizeEvaluation freezes a draft for validation
// POST /api/evaluations/:id/finalize
func (h *Handlers) FinalizeEvaluation(c *fiber.Ctx) error {
	return h.transition(c, func(ctx context.Context, id kernel.EvaluationID, actor kernel.UserID) (*evaluation.Evaluation, error) {
		return h.service.FinalizeEvaluation(ctx, id, actor)
	})
}

// ValidateEvaluation countersigns a completed evaluation
// POST /api/evaluations/:id/validate
func (h *Handlers) ValidateEvaluation(c *fiber.Ctx) error {
	return h.transition(c, func(ctx context.Context, id kernel.EvaluationID, actor kernel.UserID) (*evaluation.Evaluation, error) {
		return h.service.ValidateEvaluation(ctx, id, actor)
	})
}

// GetEvaluationByID retrieves an evaluation by ID
// GET /api/evaluations/:id
func (h *Handlers) GetEvaluationByID(c *fiber.Ctx) error {
	return h.transition(c, func(ctx context.Context, id kernel.EvaluationID, actor kernel.UserID) (*evaluation.Evaluation, error) {
		return h.service.GetEvaluationByID(ctx, id, actor)
	})
}

// GetEvaluationByStage retrieves the evaluation of one stage
// GET /api/evaluations/by-stage/:stageId
func (h *Handlers) GetEvaluationByStage(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return evaluation.ErrInsufficientPermissions()
	}

	stageID := kernel.StageID(c.Params("stageId"))
	if stageID.IsEmpty() {
		return evaluation.ErrEvaluationNotFound().WithDetail("stage_id", "missing or empty")
	}

	e, err := h.service.GetEvaluationByStage(c.Context(), stageID, authContext.UserID)
	if err != nil {
		return err
	}
	return c.JSON(e)
}

func (h *Handlers) transition(c *fiber.Ctx, op func(ctx context.Context, id kernel.EvaluationID, actor kernel.UserID) (*evaluation.Evaluation, error)) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return evaluation.ErrInsufficientPermissions()
	}

	evaluationID := kernel.EvaluationID(c.Params("id"))
	if evaluationID.IsEmpty() {
		return evaluation.ErrEvaluationNotFound().WithDetail("id", "missing or empty")
	}

	e, err := op(c.Context(), evaluationID, authContext.UserID)
	if err != nil {
		return err
	}
	return c.JSON(e)
}

// RegisterRoutes registers all evaluation routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/evaluations")

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeEvaluationsWrite),
		handlers.CreateEvaluation,
	)

	api.Get("/by-stage/:stageId",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeEvaluationsRead),
		handlers.GetEvaluationByStage,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeEvaluationsRead),
		handlers.GetEvaluationByID,
	)

	api.Patch("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeEvaluationsWrite),
		handlers.UpdateEvaluation,
	)

	api.Post("/:id/finalize",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeEvaluationsWrite),
		handlers.FinalizeEvaluation,
	)

	api.Post("/:id/validate",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeEvaluationsValidate),
		handlers.ValidateEvaluation,
	)
}
