package candidaturesrv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adilnv/internlink/internal/pdf"
	"github.com/adilnv/internlink/internship/candidature"
	"github.com/adilnv/internlink/internship/posting"
	"github.com/adilnv/internlink/pkg/errx"
	"github.com/adilnv/internlink/pkg/fsx"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/iam/user"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/adilnv/internlink/pkg/notify"
	"github.com/google/uuid"
)

const maxCVSize = 10 * 1024 * 1024 // 10MB

// CandidatureService provides business operations for candidatures
type CandidatureService struct {
	candidatureRepo candidature.Repository
	postingRepo     posting.Repository
	userRepo        user.Repository
	fileSystem      fsx.FileSystem
	notifier        notify.Notifier
}

// NewCandidatureService creates a new instance of the candidature service
func NewCandidatureService(
	candidatureRepo candidature.Repository,
	postingRepo posting.Repository,
	userRepo user.Repository,
	fileSystem fsx.FileSystem,
	notifier notify.Notifier,
) *CandidatureService {
	return &CandidatureService{
		candidatureRepo: candidatureRepo,
		postingRepo:     postingRepo,
		userRepo:        userRepo,
		fileSystem:      fileSystem,
		notifier:        notifier,
	}
}

// Submit creates a new candidature in pending
func (s *CandidatureService) Submit(ctx context.Context, req candidature.SubmitCandidatureRequest, internID kernel.UserID) (*candidature.Candidature, error) {
	intern, err := s.userRepo.FindByID(ctx, internID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", internID.String())
	}
	if !intern.IsActive() {
		return nil, user.ErrUserSuspended().WithDetail("user_id", internID.String())
	}
	if !intern.HasAnyScope(auth.ScopeCandidaturesWrite, auth.ScopeCandidaturesAll, auth.ScopeAll) {
		return nil, candidature.ErrInsufficientPermissions().WithDetail("required_scope", auth.ScopeCandidaturesWrite)
	}

	postingID := kernel.PostingID(req.PostingID)
	p, err := s.postingRepo.GetByID(ctx, postingID)
	if err != nil {
		return nil, posting.ErrPostingNotFound().WithDetail("posting_id", req.PostingID)
	}
	if !p.CanReceiveCandidatures() {
		return nil, candidature.ErrPostingNotPublished().
			WithDetail("posting_id", req.PostingID).
			WithDetail("posting_status", p.Status)
	}

	open, err := s.candidatureRepo.ExistsOpen(ctx, internID, postingID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check for an existing candidature", errx.TypeInternal)
	}
	if open {
		return nil, candidature.ErrDuplicateCandidature().
			WithDetail("intern_id", internID.String()).
			WithDetail("posting_id", req.PostingID)
	}

	now := time.Now()
	newCandidature := &candidature.Candidature{
		ID:          kernel.NewCandidatureID(uuid.NewString()),
		PostingID:   postingID,
		InternID:    internID,
		Status:      candidature.CandidatureStatusPending,
		InternNotes: req.InternNotes,
		SubmittedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.candidatureRepo.Create(ctx, newCandidature); err != nil {
		return nil, errx.Wrap(err, "failed to create candidature", errx.TypeInternal)
	}

	s.notifier.Notify(ctx, &notify.Notification{
		Event:       notify.EventCandidatureSubmitted,
		RecipientID: p.RecruiterID,
		Subject:     "New candidature received",
		Body:        fmt.Sprintf("%s applied to %q.", intern.GetFullName(), p.Title),
		Data:        map[string]any{"candidature_id": newCandidature.ID.String()},
	})

	return newCandidature, nil
}

// UploadCV stores the intern's CV and links it to the candidature.
// PDFs are stored as-is; images are normalized to JPEG first.
func (s *CandidatureService) UploadCV(ctx context.Context, candidatureID kernel.CandidatureID, fileData []byte, fileName string, actorID kernel.UserID) error {
	c, err := s.candidatureRepo.GetByID(ctx, candidatureID)
	if err != nil {
		return candidature.ErrCandidatureNotFound().WithDetail("candidature_id", candidatureID.String())
	}
	if c.InternID != actorID {
		return candidature.ErrNotOwner().WithDetail("candidature_id", candidatureID.String())
	}

	if len(fileData) > maxCVSize {
		return candidature.ErrFileSizeTooLarge().
			WithDetail("file_size", len(fileData)).
			WithDetail("max_size", maxCVSize)
	}

	if format, err := pdf.DetectImageFormat(fileData); err == nil {
		// Scanned CVs arrive as images; store them as JPEG
		fileData, err = pdf.NormalizeImageToJPEG(fileData)
		if err != nil {
			return errx.Wrap(err, "failed to normalize CV image", errx.TypeInternal)
		}
		fileName = strings.TrimSuffix(fileName, "."+format) + ".jpg"
	} else if !strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		return candidature.ErrInvalidFileType().WithDetail("file_name", fileName)
	}

	storagePath := s.fileSystem.Join("cvs", c.ID.String(), fileName)
	if err := s.fileSystem.WriteFile(ctx, storagePath, fileData); err != nil {
		return errx.Wrap(err, "failed to upload CV", errx.TypeExternal)
	}

	if err := s.candidatureRepo.UpdateCVBucketURL(ctx, candidatureID, kernel.BucketURL(storagePath)); err != nil {
		// Cleanup uploaded file on failure
		s.fileSystem.DeleteFile(context.Background(), storagePath)
		return errx.Wrap(err, "failed to link CV to candidature", errx.TypeInternal)
	}

	return nil
}

// PreviewCV returns the stored CV rasterized as JPEG pages. A PDF is
// rendered page by page; an image CV comes back as its single page.
func (s *CandidatureService) PreviewCV(ctx context.Context, candidatureID kernel.CandidatureID, actorID kernel.UserID) ([][]byte, error) {
	c, err := s.GetByID(ctx, candidatureID, actorID)
	if err != nil {
		return nil, err
	}
	if c.CVBucketURL.IsEmpty() {
		return nil, candidature.ErrCVNotUploaded().WithDetail("candidature_id", candidatureID.String())
	}

	fileData, err := s.fileSystem.ReadFile(ctx, c.CVBucketURL.String())
	if err != nil {
		return nil, errx.Wrap(err, "failed to read stored CV", errx.TypeExternal)
	}

	if _, err := pdf.DetectImageFormat(fileData); err == nil {
		return [][]byte{fileData}, nil
	}

	pages, err := pdf.RenderPages(fileData)
	if err != nil {
		return nil, errx.Wrap(err, "failed to render CV preview", errx.TypeInternal)
	}
	return pages, nil
}

// MarkInReview moves a pending candidature into review
func (s *CandidatureService) MarkInReview(ctx context.Context, candidatureID kernel.CandidatureID, notes string, reviewerID kernel.UserID) (*candidature.Candidature, error) {
	_, c, err := s.loadReviewer(ctx, candidatureID, reviewerID)
	if err != nil {
		return nil, err
	}

	if err := c.MarkInReview(reviewerID, notes); err != nil {
		return nil, err
	}

	if err := s.candidatureRepo.Update(ctx, candidatureID, c); err != nil {
		return nil, errx.Wrap(err, "failed to update candidature", errx.TypeInternal)
	}

	return c, nil
}

// Accept closes the candidature positively and persists the resulting
// stage in the same transaction.
func (s *CandidatureService) Accept(ctx context.Context, candidatureID kernel.CandidatureID, notes string, reviewerID kernel.UserID) (*candidature.Candidature, error) {
	reviewer, c, err := s.loadReviewer(ctx, candidatureID, reviewerID)
	if err != nil {
		return nil, err
	}

	p, err := s.postingRepo.GetByID(ctx, c.PostingID)
	if err != nil {
		return nil, posting.ErrPostingNotFound().WithDetail("posting_id", c.PostingID.String())
	}

	newStage, err := c.Accept(reviewerID, notes, p)
	if err != nil {
		return nil, err
	}

	if err := s.candidatureRepo.SaveAcceptance(ctx, c, newStage); err != nil {
		return nil, errx.Wrap(err, "failed to persist acceptance", errx.TypeInternal)
	}

	s.notifier.Notify(ctx, &notify.Notification{
		Event:       notify.EventCandidatureAccepted,
		RecipientID: c.InternID,
		Subject:     "Your candidature was accepted",
		Body:        fmt.Sprintf("%s accepted your candidature for %q.", reviewer.GetFullName(), p.Title),
		Data: map[string]any{
			"candidature_id": c.ID.String(),
			"stage_id":       newStage.ID.String(),
		},
	})

	return c, nil
}

// Refuse closes the candidature negatively
func (s *CandidatureService) Refuse(ctx context.Context, candidatureID kernel.CandidatureID, notes string, reviewerID kernel.UserID) (*candidature.Candidature, error) {
	_, c, err := s.loadReviewer(ctx, candidatureID, reviewerID)
	if err != nil {
		return nil, err
	}

	if err := c.Refuse(reviewerID, notes); err != nil {
		return nil, err
	}

	if err := s.candidatureRepo.Update(ctx, candidatureID, c); err != nil {
		return nil, errx.Wrap(err, "failed to update candidature", errx.TypeInternal)
	}

	s.notifier.Notify(ctx, &notify.Notification{
		Event:       notify.EventCandidatureRefused,
		RecipientID: c.InternID,
		Subject:     "Your candidature was refused",
		Body:        "Your candidature was not retained this time.",
		Data:        map[string]any{"candidature_id": c.ID.String()},
	})

	return c, nil
}

// Withdraw closes the candidature at the owning intern's request
func (s *CandidatureService) Withdraw(ctx context.Context, candidatureID kernel.CandidatureID, actorID kernel.UserID) (*candidature.Candidature, error) {
	c, err := s.candidatureRepo.GetByID(ctx, candidatureID)
	if err != nil {
		return nil, candidature.ErrCandidatureNotFound().WithDetail("candidature_id", candidatureID.String())
	}
	if c.InternID != actorID {
		return nil, candidature.ErrNotOwner().WithDetail("candidature_id", candidatureID.String())
	}

	if err := c.Withdraw(); err != nil {
		return nil, err
	}

	if err := s.candidatureRepo.Update(ctx, candidatureID, c); err != nil {
		return nil, errx.Wrap(err, "failed to update candidature", errx.TypeInternal)
	}

	return c, nil
}

// Rate records the reviewer's rating
func (s *CandidatureService) Rate(ctx context.Context, candidatureID kernel.CandidatureID, rating int, reviewerID kernel.UserID) (*candidature.Candidature, error) {
	_, c, err := s.loadReviewer(ctx, candidatureID, reviewerID)
	if err != nil {
		return nil, err
	}

	if err := c.Rate(reviewerID, rating); err != nil {
		return nil, err
	}

	if err := s.candidatureRepo.Update(ctx, candidatureID, c); err != nil {
		return nil, errx.Wrap(err, "failed to update candidature", errx.TypeInternal)
	}

	return c, nil
}

// GetByID retrieves a candidature, visible to its intern and the reviewing side
func (s *CandidatureService) GetByID(ctx context.Context, candidatureID kernel.CandidatureID, actorID kernel.UserID) (*candidature.Candidature, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", actorID.String())
	}

	c, err := s.candidatureRepo.GetByID(ctx, candidatureID)
	if err != nil {
		return nil, candidature.ErrCandidatureNotFound().WithDetail("candidature_id", candidatureID.String())
	}

	if c.InternID != actor.ID &&
		!actor.HasAnyScope(auth.ScopeCandidaturesRead, auth.ScopeCandidaturesAll, auth.ScopeAll) {
		return nil, candidature.ErrInsufficientPermissions().WithDetail("candidature_id", candidatureID.String())
	}

	return c, nil
}

// ListByPosting retrieves candidatures for a posting
func (s *CandidatureService) ListByPosting(ctx context.Context, postingID kernel.PostingID, pagination kernel.PaginationOptions) (*kernel.Paginated[candidature.Candidature], error) {
	page, err := s.candidatureRepo.ListByPosting(ctx, postingID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list candidatures", errx.TypeInternal)
	}
	return page, nil
}

// ListByIntern retrieves candidatures of one intern
func (s *CandidatureService) ListByIntern(ctx context.Context, internID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[candidature.Candidature], error) {
	page, err := s.candidatureRepo.ListByIntern(ctx, internID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list candidatures", errx.TypeInternal)
	}
	return page, nil
}

func (s *CandidatureService) loadReviewer(ctx context.Context, candidatureID kernel.CandidatureID, reviewerID kernel.UserID) (*user.User, *candidature.Candidature, error) {
	reviewer, err := s.userRepo.FindByID(ctx, reviewerID)
	if err != nil {
		return nil, nil, user.ErrUserNotFound().WithDetail("user_id", reviewerID.String())
	}
	if !reviewer.IsActive() {
		return nil, nil, user.ErrUserSuspended().WithDetail("user_id", reviewerID.String())
	}
	if !reviewer.HasAnyScope(auth.ScopeCandidaturesReview, auth.ScopeCandidaturesAll, auth.ScopeAll) {
		return nil, nil, candidature.ErrInsufficientPermissions().WithDetail("required_scope", auth.ScopeCandidaturesReview)
	}

	c, err := s.candidatureRepo.GetByID(ctx, candidatureID)
	if err != nil {
		return nil, nil, candidature.ErrCandidatureNotFound().WithDetail("candidature_id", candidatureID.String())
	}

	return reviewer, c, nil
}
