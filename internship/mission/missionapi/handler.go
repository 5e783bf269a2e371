package missionapi

import (
	"context"
	"strconv"

	"github.com/adilnv/internlink/internship/mission"
	"github.com/adilnv/internlink/internship/mission/missionsrv"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for mission operations
type Handlers struct {
	service *missionsrv.MissionService
}

// NewHandlers creates a new mission handlers instance
func NewHandlers(service *missionsrv.MissionService) *Handlers {
	return &Handlers{service: service}
}

// CreateMission assigns a new mission within a stage
// POST /api/missions
func (h *Handlers) CreateMission(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return mission.ErrInsufficientPermissions()
	}

	var req mission.CreateMissionRequest
	if err := c.BodyParser(&req); err != nil {
		return mission.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	m, err := h.service.CreateMission(c.Context(), req, authContext.UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(m)
}

// UpdateMission patches mission fields
// PATCH /api/missions/:id
func (h *Handlers) UpdateMission(c *fiber.Ctx) error {
	var req mission.UpdateMissionRequest
	if err := c.BodyParser(&req); err != nil {
		return mission.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	return h.transition(c, func(ctx context.Context, id kernel.MissionID, actor kernel.UserID) (*mission.Mission, error) {
		return h.service.UpdateMission(ctx, id, req, actor)
	})
}

// BeginMission starts a mission
// POST /api/missions/:id/begin
func (h *Handlers) BeginMission(c *fiber.Ctx) error {
	return h.transition(c, func(ctx context.Context, id kernel.MissionID, actor kernel.UserID) (*mission.Mission, error) {
		return h.service.BeginMission(ctx, id, actor)
	})
}

// SubmitMission hands work over for review
// POST /api/missions/:id/submit
func (h *Handlers) SubmitMission(c *fiber.Ctx) error {
	var req mission.SubmitMissionRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return mission.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	return h.transition(c, func(ctx context.Context, id kernel.MissionID, actor kernel.UserID) (*mission.Mission, error) {
		return h.service.SubmitMission(ctx, id, req, actor)
	})
}

// ApproveMission accepts submitted work
// POST /api/missions/:id/approve
func (h *Handlers) ApproveMission(c *fiber.Ctx) error {
	var req mission.ApproveMissionRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return mission.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	return h.transition(c, func(ctx context.Context, id kernel.MissionID, actor kernel.UserID) (*mission.Mission, error) {
		return h.service.ApproveMission(ctx, id, req, actor)
	})
}

// RejectMission sends submitted work back
// POST /api/missions/:id/reject
func (h *Handlers) RejectMission(c *fiber.Ctx) error {
	var req mission.RejectMissionRequest
	if err := c.BodyParser(&req); err != nil {
		return mission.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	return h.transition(c, func(ctx context.Context, id kernel.MissionID, actor kernel.UserID) (*mission.Mission, error) {
		return h.service.RejectMission(ctx, id, req.Feedback, actor)
	})
}

// CancelMission terminates a mission
// POST /api/missions/:id/cancel
func (h *Handlers) CancelMission(c *fiber.Ctx) error {
	var req mission.CancelMissionRequest
	if err := c.BodyParser(&req); err != nil {
		return mission.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	return h.transition(c, func(ctx context.Context, id kernel.MissionID, actor kernel.UserID) (*mission.Mission, error) {
		return h.service.CancelMission(ctx, id, req.Reason, actor)
	})
}

// UpdateProgress sets the completion percentage
// POST /api/missions/:id/progress
func (h *Handlers) UpdateProgress(c *fiber.Ctx) error {
	var req mission.ProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return mission.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	return h.transition(c, func(ctx context.Context, id kernel.MissionID, actor kernel.UserID) (*mission.Mission, error) {
		return h.service.UpdateProgress(ctx, id, req.Percent, actor)
	})
}

// DeleteMission removes a mission not currently being worked on
// DELETE /api/missions/:id
func (h *Handlers) DeleteMission(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return mission.ErrInsufficientPermissions()
	}

	missionID := kernel.MissionID(c.Params("id"))
	if missionID.IsEmpty() {
		return mission.ErrMissionNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteMission(c.Context(), missionID, authContext.UserID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetMissionByID retrieves a mission by ID
// GET /api/missions/:id
func (h *Handlers) GetMissionByID(c *fiber.Ctx) error {
	return h.transition(c, func(ctx context.Context, id kernel.MissionID, actor kernel.UserID) (*mission.Mission, error) {
		return h.service.GetMissionByID(ctx, id, actor)
	})
}

// ListMyMissions retrieves the authenticated intern's missions
// GET /api/missions/mine
func (h *Handlers) ListMyMissions(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return mission.ErrInsufficientPermissions()
	}

	result, err := h.service.ListByAssignee(c.Context(), authContext.UserID, paginationFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// ListByStage retrieves missions of one stage
// GET /api/missions/by-stage/:stageId
func (h *Handlers) ListByStage(c *fiber.Ctx) error {
	stageID := kernel.StageID(c.Params("stageId"))

	result, err := h.service.ListByStage(c.Context(), stageID, paginationFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *Handlers) transition(c *fiber.Ctx, op func(ctx context.Context, id kernel.MissionID, actor kernel.UserID) (*mission.Mission, error)) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return mission.ErrInsufficientPermissions()
	}

	missionID := kernel.MissionID(c.Params("id"))
	if missionID.IsEmpty() {
		return mission.ErrMissionNotFound().WithDetail("id", "missing or empty")
	}

	m, err := op(c.Context(), missionID, authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(m)
}

func paginationFromQuery(c *fiber.Ctx) kernel.PaginationOptions {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	return kernel.PaginationOptions{Page: page, PageSize: pageSize}
}

// RegisterRoutes registers all mission routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/missions")

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeMissionsWrite),
		handlers.CreateMission,
	)

	api.Get("/mine",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeMissionsRead),
		handlers.ListMyMissions,
	)

	api.Get("/by-stage/:stageId",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeMissionsRead),
		handlers.ListByStage,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeMissionsRead),
		handlers.GetMissionByID,
	)

	api.Patch("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeMissionsWrite, auth.ScopeMissionsProgress),
		handlers.UpdateMission,
	)

	api.Post("/:id/begin",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeMissionsWrite, auth.ScopeMissionsProgress),
		handlers.BeginMission,
	)

	api.Post("/:id/submit",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeMissionsProgress),
		handlers.SubmitMission,
	)

	api.Post("/:id/approve",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeMissionsWrite),
		handlers.ApproveMission,
	)

	api.Post("/:id/reject",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeMissionsWrite),
		handlers.RejectMission,
	)

	api.Post("/:id/cancel",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeMissionsWrite),
		handlers.CancelMission,
	)

	api.Post("/:id/progress",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeMissionsProgress),
		handlers.UpdateProgress,
	)

	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeMissionsDelete),
		handlers.DeleteMission,
	)
}
