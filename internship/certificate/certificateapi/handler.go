package certificateapi

import (
	"strconv"

	"github.com/adilnv/internlink/internship/certificate"
	"github.com/adilnv/internlink/internship/certificate/certificatesrv"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for certificate operations
type Handlers struct {
	service *certificatesrv.CertificateService
}

// NewHandlers creates a new certificate handlers instance
func NewHandlers(service *certificatesrv.CertificateService) *Handlers {
	return &Handlers{service: service}
}

// IssueCertificate issues the certificate of a validated evaluation
// POST /api/certificates
func (h *Handlers) IssueCertificate(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return certificate.ErrInsufficientPermissions()
	}

	var req certificate.IssueCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return certificate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if req.EvaluationID == "" {
		return certificate.ErrInvalidRequest().WithDetail("evaluation_id", "missing or empty")
	}

	cert, err := h.service.IssueCertificate(c.Context(), kernel.EvaluationID(req.EvaluationID), authContext.UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(cert)
}

// DownloadCertificate streams the rendered PDF
// GET /api/certificates/:id/download
func (h *Handlers) DownloadCertificate(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return certificate.ErrInsufficientPermissions()
	}

	certificateID := kernel.CertificateID(c.Params("id"))
	if certificateID.IsEmpty() {
		return certificate.ErrCertificateNotFound().WithDetail("id", "missing or empty")
	}

	document, filename, err := h.service.DownloadCertificate(c.Context(), certificateID, authContext.UserID)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(document)
}

// VerifyCertificate is the public verification lookup; no
// authentication, third-party verifiability is the whole point
// GET /api/certificates/verify/:code
func (h *Handlers) VerifyCertificate(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return certificate.ErrCertificateNotFound().WithDetail("code", "missing or empty")
	}

	view, err := h.service.VerifyCertificate(c.Context(), code)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// GetByEvaluation retrieves the certificate of an evaluation
// GET /api/certificates/by-evaluation/:evaluationId
func (h *Handlers) GetByEvaluation(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return certificate.ErrInsufficientPermissions()
	}

	evaluationID := kernel.EvaluationID(c.Params("evaluationId"))
	if evaluationID.IsEmpty() {
		return certificate.ErrCertificateNotFound().WithDetail("evaluation_id", "missing or empty")
	}

	cert, err := h.service.GetCertificateByEvaluation(c.Context(), evaluationID, authContext.UserID)
	if err != nil {
		return err
	}
	return c.JSON(cert)
}

// ListMyCertificates retrieves the caller's certificates
// GET /api/certificates/mine
func (h *Handlers) ListMyCertificates(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return certificate.ErrInsufficientPermissions()
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	result, err := h.service.ListMyCertificates(c.Context(), authContext.UserID, kernel.PaginationOptions{Page: page, PageSize: pageSize})
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// RegisterRoutes registers all certificate routes. The verification
// route stays outside the authenticated group.
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/certificates")

	api.Get("/verify/:code", handlers.VerifyCertificate)

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCertificatesIssue),
		handlers.IssueCertificate,
	)

	api.Get("/mine",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCertificatesRead),
		handlers.ListMyCertificates,
	)

	api.Get("/by-evaluation/:evaluationId",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCertificatesRead),
		handlers.GetByEvaluation,
	)

	api.Get("/:id/download",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCertificatesDownload),
		handlers.DownloadCertificate,
	)
}
