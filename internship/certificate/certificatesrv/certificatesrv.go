package certificatesrv

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/adilnv/internlink/internal/pdf"
	"github.com/adilnv/internlink/internal/qr"
	"github.com/adilnv/internlink/internship/certificate"
	"github.com/adilnv/internlink/internship/evaluation"
	"github.com/adilnv/internlink/internship/organization"
	"github.com/adilnv/internlink/internship/stage"
	"github.com/adilnv/internlink/pkg/errx"
	"github.com/adilnv/internlink/pkg/fsx"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/iam/user"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/adilnv/internlink/pkg/logx"
	"github.com/adilnv/internlink/pkg/notify"
	"github.com/google/uuid"
)

const (
	// maxCodeAttempts caps the retry-until-unique loop; with 36^8
	// codes per year an exhausted loop means something else is wrong
	maxCodeAttempts = 10

	qrImageSize = 256
)

// CertificateService provides business operations for certificates
type CertificateService struct {
	certificateRepo certificate.Repository
	evaluationRepo  evaluation.Repository
	stageRepo       stage.Repository
	orgRepo         organization.Repository
	userRepo        user.Repository
	fs              fsx.FileSystem
	notifier        notify.Notifier
	verifyBaseURL   string
}

// NewCertificateService creates a new instance of the certificate
// service. verifyBaseURL is the public origin the QR payload points at.
func NewCertificateService(
	certificateRepo certificate.Repository,
	evaluationRepo evaluation.Repository,
	stageRepo stage.Repository,
	orgRepo organization.Repository,
	userRepo user.Repository,
	fs fsx.FileSystem,
	notifier notify.Notifier,
	verifyBaseURL string,
) *CertificateService {
	return &CertificateService{
		certificateRepo: certificateRepo,
		evaluationRepo:  evaluationRepo,
		stageRepo:       stageRepo,
		orgRepo:         orgRepo,
		userRepo:        userRepo,
		fs:              fs,
		notifier:        notifier,
		verifyBaseURL:   verifyBaseURL,
	}
}

// IssueCertificate issues the certificate of a validated evaluation.
// Issuance is idempotent: if one already exists for the evaluation or
// its candidature, that certificate is returned instead of an error,
// including when a concurrent request wins the insert race.
func (s *CertificateService) IssueCertificate(ctx context.Context, evaluationID kernel.EvaluationID, issuerID kernel.UserID) (*certificate.Certificate, error) {
	issuer, err := s.userRepo.FindByID(ctx, issuerID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", issuerID.String())
	}
	if !issuer.IsActive() {
		return nil, user.ErrUserSuspended().WithDetail("user_id", issuerID.String())
	}
	if !issuer.HasAnyScope(auth.ScopeCertificatesIssue, auth.ScopeCertificatesAll, auth.ScopeAll) {
		return nil, certificate.ErrInsufficientPermissions().WithDetail("required_scope", auth.ScopeCertificatesIssue)
	}

	e, err := s.evaluationRepo.GetByID(ctx, evaluationID)
	if err != nil {
		return nil, evaluation.ErrEvaluationNotFound().WithDetail("evaluation_id", evaluationID.String())
	}
	if !e.IsValidated() {
		return nil, certificate.ErrEvaluationNotValidated().WithDetail("evaluation_status", e.Status)
	}
	if e.AggregateScore == nil {
		return nil, evaluation.ErrAggregateUndefined().WithDetail("evaluation_id", evaluationID.String())
	}

	if existing, err := s.certificateRepo.GetByEvaluationID(ctx, evaluationID); err == nil {
		return existing, nil
	}

	st, err := s.stageRepo.GetByID(ctx, e.StageID)
	if err != nil {
		return nil, stage.ErrStageNotFound().WithDetail("stage_id", e.StageID.String())
	}
	if !issuer.BelongsTo(st.OrganizationID) {
		return nil, certificate.ErrInsufficientPermissions().WithDetail("organization_id", st.OrganizationID.String())
	}
	if existing, err := s.certificateRepo.GetByCandidatureID(ctx, st.CandidatureID); err == nil {
		return existing, nil
	}

	intern, err := s.userRepo.FindByID(ctx, st.InternID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", st.InternID.String())
	}
	org, err := s.orgRepo.GetByID(ctx, st.OrganizationID)
	if err != nil {
		return nil, organization.ErrOrganizationNotFound().WithDetail("organization_id", st.OrganizationID.String())
	}

	start, end := stageDates(st)
	score := *e.AggregateScore
	now := time.Now()

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := certificate.GenerateCode(now)
		if err != nil {
			return nil, errx.Wrap(err, "failed to generate verification code", errx.TypeInternal)
		}

		taken, err := s.certificateRepo.ExistsByCode(ctx, code)
		if err != nil {
			return nil, errx.Wrap(err, "failed to check verification code", errx.TypeInternal)
		}
		if taken {
			continue
		}

		verifyURL := fmt.Sprintf("%s/api/certificates/verify/%s", s.verifyBaseURL, code)
		qrPayload, err := qr.GenerateBase64(verifyURL, qrImageSize)
		if err != nil {
			return nil, errx.Wrap(err, "failed to generate QR payload", errx.TypeExternal)
		}

		cert := &certificate.Certificate{
			ID:                 kernel.NewCertificateID(uuid.NewString()),
			Code:               code,
			EvaluationID:       e.ID,
			CandidatureID:      st.CandidatureID,
			StageID:            st.ID,
			InternID:           intern.ID,
			Status:             certificate.CertificateStatusGenerated,
			StageTitle:         string(st.Title),
			StartDate:          start,
			EndDate:            end,
			DurationDays:       certificate.DurationInDays(start, end),
			FinalScore:         score,
			Mention:            certificate.MentionForScore(score),
			InternFullName:     intern.GetFullName(),
			OrganizationName:   org.Name,
			OrganizationSector: string(org.Sector),
			IssuerName:         issuer.GetFullName(),
			IssuerRole:         string(issuer.Role),
			QRPayload:          qrPayload,
			VerificationCount:  0,
			IssuedAt:           now,
			CreatedAt:          now,
			UpdatedAt:          now,
		}

		err = s.certificateRepo.Create(ctx, cert)
		if errx.IsType(err, errx.TypeConflict) {
			if errx.HasCode(err, certificate.CodeCodeCollision) {
				continue
			}
			// Lost the insert race; the committed certificate wins
			if existing, gerr := s.certificateRepo.GetByEvaluationID(ctx, evaluationID); gerr == nil {
				return existing, nil
			}
			if existing, gerr := s.certificateRepo.GetByCandidatureID(ctx, st.CandidatureID); gerr == nil {
				return existing, nil
			}
			return nil, err
		}
		if err != nil {
			return nil, errx.Wrap(err, "failed to create certificate", errx.TypeInternal)
		}

		s.markStageCertified(ctx, st)

		s.notifier.Notify(ctx, &notify.Notification{
			Event:       notify.EventCertificateIssued,
			RecipientID: intern.ID,
			Subject:     "Your internship certificate is ready",
			Body:        fmt.Sprintf("Certificate %s for your internship %q has been issued.", cert.Code, st.Title),
			Data:        map[string]any{"certificate_code": cert.Code},
		})

		return cert, nil
	}

	return nil, certificate.ErrUniqueCodeExhausted()
}

// DownloadCertificate renders the certificate PDF from its snapshot,
// stores the document and marks the certificate downloaded. Repeated
// downloads only move the timestamp.
func (s *CertificateService) DownloadCertificate(ctx context.Context, certificateID kernel.CertificateID, actorID kernel.UserID) ([]byte, string, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, "", user.ErrUserNotFound().WithDetail("user_id", actorID.String())
	}
	if !actor.IsActive() {
		return nil, "", user.ErrUserSuspended().WithDetail("user_id", actorID.String())
	}
	if !actor.HasAnyScope(auth.ScopeCertificatesDownload, auth.ScopeCertificatesAll, auth.ScopeAll) {
		return nil, "", certificate.ErrInsufficientPermissions().WithDetail("required_scope", auth.ScopeCertificatesDownload)
	}

	cert, err := s.certificateRepo.GetByID(ctx, certificateID)
	if err != nil {
		return nil, "", certificate.ErrCertificateNotFound().WithDetail("certificate_id", certificateID.String())
	}
	if err := s.checkAccess(ctx, actor, cert); err != nil {
		return nil, "", err
	}

	qrPNG, err := base64.StdEncoding.DecodeString(cert.QRPayload)
	if err != nil {
		return nil, "", certificate.ErrRenderFailed().WithCause(err)
	}

	document, err := pdf.RenderCertificate(pdf.CertificateDocument{
		Code:             cert.Code,
		InternFullName:   cert.InternFullName,
		OrganizationName: cert.OrganizationName,
		PostingTitle:     cert.StageTitle,
		StartDate:        cert.StartDate,
		EndDate:          cert.EndDate,
		DurationDays:     cert.DurationDays,
		Score:            cert.FinalScore,
		Mention:          string(cert.Mention),
		IssuedAt:         cert.IssuedAt,
		VerificationURL:  fmt.Sprintf("%s/api/certificates/verify/%s", s.verifyBaseURL, cert.Code),
		QRCodePNG:        qrPNG,
	})
	if err != nil {
		return nil, "", certificate.ErrRenderFailed().WithCause(err)
	}

	if cert.DocumentURL.IsEmpty() {
		path := s.fs.Join("certificates", cert.Code+".pdf")
		if err := s.fs.WriteFile(ctx, path, document); err != nil {
			logx.Warnf("failed to store certificate document %s: %v", cert.Code, err)
		} else if err := s.certificateRepo.UpdateDocumentURL(ctx, cert.ID, kernel.BucketURL(path)); err != nil {
			logx.Warnf("failed to link certificate document %s: %v", cert.Code, err)
		}
	}

	if err := s.certificateRepo.MarkDownloaded(ctx, cert.ID, time.Now()); err != nil {
		return nil, "", errx.Wrap(err, "failed to mark certificate downloaded", errx.TypeInternal)
	}

	return document, cert.Code + ".pdf", nil
}

// VerifyCertificate is the public, unauthenticated lookup. A hit bumps
// the verification counter atomically; a miss touches nothing.
func (s *CertificateService) VerifyCertificate(ctx context.Context, code string) (*certificate.PublicView, error) {
	cert, err := s.certificateRepo.IncrementVerification(ctx, code)
	if err != nil {
		return nil, err
	}
	view := cert.ToPublicView()
	return &view, nil
}

// GetCertificateByEvaluation retrieves the certificate of an
// evaluation, visible only to its intern and the issuing side
func (s *CertificateService) GetCertificateByEvaluation(ctx context.Context, evaluationID kernel.EvaluationID, actorID kernel.UserID) (*certificate.Certificate, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", actorID.String())
	}
	if !actor.IsActive() {
		return nil, user.ErrUserSuspended().WithDetail("user_id", actorID.String())
	}

	cert, err := s.certificateRepo.GetByEvaluationID(ctx, evaluationID)
	if err != nil {
		return nil, certificate.ErrCertificateNotFound().WithDetail("evaluation_id", evaluationID.String())
	}
	if err := s.checkAccess(ctx, actor, cert); err != nil {
		return nil, err
	}
	return cert, nil
}

// checkAccess gates full-record reads: the certified intern, anyone in
// the issuing organization, or a wildcard holder.
func (s *CertificateService) checkAccess(ctx context.Context, actor *user.User, cert *certificate.Certificate) error {
	if actor.ID == cert.InternID || actor.HasAnyScope(auth.ScopeAll) {
		return nil
	}
	st, err := s.stageRepo.GetByID(ctx, cert.StageID)
	if err != nil || !actor.BelongsTo(st.OrganizationID) {
		return certificate.ErrInsufficientPermissions().WithDetail("certificate_id", cert.ID.String())
	}
	return nil
}

// ListMyCertificates retrieves the certificates issued to one intern
func (s *CertificateService) ListMyCertificates(ctx context.Context, internID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[certificate.Certificate], error) {
	page, err := s.certificateRepo.ListByIntern(ctx, internID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list certificates", errx.TypeInternal)
	}
	return page, nil
}

// markStageCertified flags the stage; issuance already committed, so a
// failure here is logged and not propagated.
func (s *CertificateService) markStageCertified(ctx context.Context, st *stage.Stage) {
	st.MarkCertificateIssued()
	if err := s.stageRepo.Update(ctx, st.ID, st); err != nil {
		logx.Warnf("failed to flag stage %s as certified: %v", st.ID, err)
	}
}

// stageDates prefers the actual period over the planned one
func stageDates(st *stage.Stage) (time.Time, time.Time) {
	start := st.PlannedStartDate
	if st.ActualStart != nil {
		start = *st.ActualStart
	}
	end := st.PlannedEndDate
	if st.ActualEnd != nil {
		end = *st.ActualEnd
	}
	return start, end
}
