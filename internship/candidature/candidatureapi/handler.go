package candidatureapi

import (
	"context"
	"io"
	"strconv"

	"github.com/adilnv/internlink/internship/candidature"
	"github.com/adilnv/internlink/internship/candidature/candidaturesrv"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for candidature operations
type Handlers struct {
	service *candidaturesrv.CandidatureService
}

// NewHandlers creates a new candidature handlers instance
func NewHandlers(service *candidaturesrv.CandidatureService) *Handlers {
	return &Handlers{service: service}
}

// SubmitCandidature applies to a posting
// POST /api/candidatures
func (h *Handlers) SubmitCandidature(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidature.ErrInsufficientPermissions()
	}

	var req candidature.SubmitCandidatureRequest
	if err := c.BodyParser(&req); err != nil {
		return candidature.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.Submit(c.Context(), req, authContext.UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UploadCV attaches the intern's CV to a candidature
// POST /api/candidatures/:id/cv
func (h *Handlers) UploadCV(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidature.ErrInsufficientPermissions()
	}

	candidatureID := kernel.CandidatureID(c.Params("id"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return candidature.ErrInvalidRequest().WithDetail("file", "missing multipart file field")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return candidature.ErrInvalidRequest().WithDetail("file", err.Error())
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		return candidature.ErrInvalidRequest().WithDetail("file", err.Error())
	}

	if err := h.service.UploadCV(c.Context(), candidatureID, fileData, fileHeader.Filename, authContext.UserID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// PreviewCV serves the first page of the stored CV as a JPEG
// GET /api/candidatures/:id/cv/preview
func (h *Handlers) PreviewCV(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidature.ErrInsufficientPermissions()
	}

	candidatureID := kernel.CandidatureID(c.Params("id"))
	if candidatureID.IsEmpty() {
		return candidature.ErrCandidatureNotFound().WithDetail("id", "missing or empty")
	}

	pages, err := h.service.PreviewCV(c.Context(), candidatureID, authContext.UserID)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return candidature.ErrCVNotUploaded().WithDetail("candidature_id", candidatureID.String())
	}

	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.Send(pages[0])
}

// MarkInReview moves a pending candidature into review
// POST /api/candidatures/:id/review
func (h *Handlers) MarkInReview(c *fiber.Ctx) error {
	return h.reviewTransition(c, h.service.MarkInReview)
}

// AcceptCandidature accepts a candidature and creates its stage
// POST /api/candidatures/:id/accept
func (h *Handlers) AcceptCandidature(c *fiber.Ctx) error {
	return h.reviewTransition(c, h.service.Accept)
}

// RefuseCandidature refuses a candidature
// POST /api/candidatures/:id/refuse
func (h *Handlers) RefuseCandidature(c *fiber.Ctx) error {
	return h.reviewTransition(c, h.service.Refuse)
}

// WithdrawCandidature withdraws the intern's own candidature
// POST /api/candidatures/:id/withdraw
func (h *Handlers) WithdrawCandidature(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidature.ErrInsufficientPermissions()
	}

	candidatureID := kernel.CandidatureID(c.Params("id"))
	if candidatureID.IsEmpty() {
		return candidature.ErrCandidatureNotFound().WithDetail("id", "missing or empty")
	}

	withdrawn, err := h.service.Withdraw(c.Context(), candidatureID, authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(withdrawn)
}

// RateCandidature records the reviewer's rating
// POST /api/candidatures/:id/rate
func (h *Handlers) RateCandidature(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidature.ErrInsufficientPermissions()
	}

	candidatureID := kernel.CandidatureID(c.Params("id"))

	var req candidature.RateRequest
	if err := c.BodyParser(&req); err != nil {
		return candidature.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	rated, err := h.service.Rate(c.Context(), candidatureID, req.Rating, authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(rated)
}

// GetCandidatureByID retrieves a candidature by ID
// GET /api/candidatures/:id
func (h *Handlers) GetCandidatureByID(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidature.ErrInsufficientPermissions()
	}

	candidatureID := kernel.CandidatureID(c.Params("id"))
	if candidatureID.IsEmpty() {
		return candidature.ErrCandidatureNotFound().WithDetail("id", "missing or empty")
	}

	result, err := h.service.GetByID(c.Context(), candidatureID, authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// ListMyCandidatures retrieves the authenticated intern's candidatures
// GET /api/candidatures/mine
func (h *Handlers) ListMyCandidatures(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidature.ErrInsufficientPermissions()
	}

	result, err := h.service.ListByIntern(c.Context(), authContext.UserID, paginationFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// ListByPosting retrieves candidatures for a posting
// GET /api/candidatures/by-posting/:postingId
func (h *Handlers) ListByPosting(c *fiber.Ctx) error {
	postingID := kernel.PostingID(c.Params("postingId"))

	result, err := h.service.ListByPosting(c.Context(), postingID, paginationFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *Handlers) reviewTransition(c *fiber.Ctx, op func(ctx context.Context, id kernel.CandidatureID, notes string, reviewer kernel.UserID) (*candidature.Candidature, error)) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return candidature.ErrInsufficientPermissions()
	}

	candidatureID := kernel.CandidatureID(c.Params("id"))
	if candidatureID.IsEmpty() {
		return candidature.ErrCandidatureNotFound().WithDetail("id", "missing or empty")
	}

	var req candidature.ReviewRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return candidature.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	result, err := op(c.Context(), candidatureID, req.Notes, authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func paginationFromQuery(c *fiber.Ctx) kernel.PaginationOptions {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	return kernel.PaginationOptions{Page: page, PageSize: pageSize}
}

// RegisterRoutes registers all candidature routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/candidatures")

	api.Get("/mine",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidaturesRead),
		handlers.ListMyCandidatures,
	)

	api.Get("/by-posting/:postingId",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidaturesReview),
		handlers.ListByPosting,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidaturesRead),
		handlers.GetCandidatureByID,
	)

	api.Get("/:id/cv/preview",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidaturesRead),
		handlers.PreviewCV,
	)

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidaturesWrite),
		handlers.SubmitCandidature,
	)

	api.Post("/:id/cv",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidaturesWrite),
		handlers.UploadCV,
	)

	api.Post("/:id/review",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidaturesReview),
		handlers.MarkInReview,
	)

	api.Post("/:id/accept",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidaturesReview),
		handlers.AcceptCandidature,
	)

	api.Post("/:id/refuse",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidaturesReview),
		handlers.RefuseCandidature,
	)

	api.Post("/:id/withdraw",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidaturesWrite),
		handlers.WithdrawCandidature,
	)

	api.Post("/:id/rate",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidaturesReview),
		handlers.RateCandidature,
	)
}
