package postingsrv

import (
	"context"
	"time"

	"github.com/adilnv/internlink/internship/organization"
	"github.com/adilnv/internlink/internship/posting"
	"github.com/adilnv/internlink/pkg/errx"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/iam/user"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/google/uuid"
)

// PostingService provides business operations for internship postings
type PostingService struct {
	postingRepo posting.Repository
	orgRepo     organization.Repository
	userRepo    user.Repository
}

// NewPostingService creates a new instance of the posting service
func NewPostingService(
	postingRepo posting.Repository,
	orgRepo organization.Repository,
	userRepo user.Repository,
) *PostingService {
	return &PostingService{
		postingRepo: postingRepo,
		orgRepo:     orgRepo,
		userRepo:    userRepo,
	}
}

// CreatePosting creates a new posting in draft
func (s *PostingService) CreatePosting(ctx context.Context, req posting.CreatePostingRequest, creatorID kernel.UserID) (*posting.Posting, error) {
	creator, err := s.userRepo.FindByID(ctx, creatorID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", creatorID.String())
	}

	if !creator.IsActive() {
		return nil, user.ErrUserSuspended().WithDetail("user_id", creatorID.String())
	}

	if !creator.HasAnyScope(auth.ScopePostingsWrite, auth.ScopePostingsAll, auth.ScopeAll) {
		return nil, posting.ErrInsufficientPermissions().WithDetail("required_scope", auth.ScopePostingsWrite)
	}

	if req.Title == "" {
		return nil, posting.ErrTitleRequired()
	}

	orgID := kernel.OrganizationID(req.OrganizationID)
	if !creator.BelongsTo(orgID) {
		return nil, posting.ErrInsufficientPermissions().WithDetail("organization_id", req.OrganizationID)
	}

	exists, err := s.orgRepo.Exists(ctx, orgID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check organization", errx.TypeInternal)
	}
	if !exists {
		return nil, organization.ErrOrganizationNotFound().WithDetail("organization_id", req.OrganizationID)
	}

	newPosting := &posting.Posting{
		ID:               kernel.NewPostingID(uuid.NewString()),
		OrganizationID:   orgID,
		RecruiterID:      creatorID,
		Title:            kernel.PostingTitle(req.Title),
		Description:      kernel.PostingDescription(req.Description),
		Sector:           kernel.Sector(req.Sector),
		PlannedStartDate: req.PlannedStartDate,
		PlannedEndDate:   req.PlannedEndDate,
		Status:           posting.PostingStatusDraft,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if !newPosting.HasValidDates() {
		return nil, posting.ErrInvalidDates().
			WithDetail("planned_start_date", req.PlannedStartDate).
			WithDetail("planned_end_date", req.PlannedEndDate)
	}

	if err := s.postingRepo.Create(ctx, newPosting); err != nil {
		return nil, errx.Wrap(err, "failed to create posting", errx.TypeInternal)
	}

	return newPosting, nil
}

// UpdatePosting edits a posting's descriptive fields
func (s *PostingService) UpdatePosting(ctx context.Context, postingID kernel.PostingID, req posting.UpdatePostingRequest, editorID kernel.UserID) (*posting.Posting, error) {
	editor, p, err := s.loadActor(ctx, postingID, editorID)
	if err != nil {
		return nil, err
	}

	if !editor.HasAnyScope(auth.ScopePostingsWrite, auth.ScopePostingsAll, auth.ScopeAll) {
		return nil, posting.ErrInsufficientPermissions().WithDetail("required_scope", auth.ScopePostingsWrite)
	}
	if !editor.BelongsTo(p.OrganizationID) {
		return nil, posting.ErrInsufficientPermissions().WithDetail("organization_id", p.OrganizationID.String())
	}

	if !p.CanBeEdited() {
		return nil, posting.ErrAlreadyArchived().WithDetail("posting_id", postingID.String())
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, posting.ErrTitleRequired()
		}
		p.Title = kernel.PostingTitle(*req.Title)
	}
	if req.Description != nil {
		p.Description = kernel.PostingDescription(*req.Description)
	}
	if req.Sector != nil {
		p.Sector = kernel.Sector(*req.Sector)
	}
	if req.PlannedStartDate != nil {
		p.PlannedStartDate = *req.PlannedStartDate
	}
	if req.PlannedEndDate != nil {
		p.PlannedEndDate = *req.PlannedEndDate
	}

	if !p.HasValidDates() {
		return nil, posting.ErrInvalidDates().
			WithDetail("planned_start_date", p.PlannedStartDate).
			WithDetail("planned_end_date", p.PlannedEndDate)
	}

	p.UpdatedAt = time.Now()
	if err := s.postingRepo.Update(ctx, postingID, p); err != nil {
		return nil, errx.Wrap(err, "failed to update posting", errx.TypeInternal)
	}

	return p, nil
}

// PublishPosting opens a draft posting for candidatures
func (s *PostingService) PublishPosting(ctx context.Context, postingID kernel.PostingID, actorID kernel.UserID) (*posting.Posting, error) {
	return s.transition(ctx, postingID, actorID, auth.ScopePostingsPublish, func(p *posting.Posting) error {
		return p.Publish()
	})
}

// ClosePosting stops a published posting from accepting candidatures
func (s *PostingService) ClosePosting(ctx context.Context, postingID kernel.PostingID, actorID kernel.UserID) (*posting.Posting, error) {
	return s.transition(ctx, postingID, actorID, auth.ScopePostingsPublish, func(p *posting.Posting) error {
		return p.Close()
	})
}

// ArchivePosting archives a posting
func (s *PostingService) ArchivePosting(ctx context.Context, postingID kernel.PostingID, actorID kernel.UserID) (*posting.Posting, error) {
	return s.transition(ctx, postingID, actorID, auth.ScopePostingsDelete, func(p *posting.Posting) error {
		return p.Archive()
	})
}

// GetPostingByID retrieves a posting by ID
func (s *PostingService) GetPostingByID(ctx context.Context, postingID kernel.PostingID) (*posting.Posting, error) {
	p, err := s.postingRepo.GetByID(ctx, postingID)
	if err != nil {
		return nil, posting.ErrPostingNotFound().WithDetail("posting_id", postingID.String())
	}
	return p, nil
}

// ListPublished retrieves postings open for candidatures
func (s *PostingService) ListPublished(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[posting.Posting], error) {
	page, err := s.postingRepo.ListPublished(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list published postings", errx.TypeInternal)
	}
	return page, nil
}

// ListByOrganization retrieves postings of one organization
func (s *PostingService) ListByOrganization(ctx context.Context, orgID kernel.OrganizationID, pagination kernel.PaginationOptions) (*kernel.Paginated[posting.Posting], error) {
	page, err := s.postingRepo.ListByOrganization(ctx, orgID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list postings", errx.TypeInternal)
	}
	return page, nil
}

func (s *PostingService) transition(ctx context.Context, postingID kernel.PostingID, actorID kernel.UserID, requiredScope string, apply func(*posting.Posting) error) (*posting.Posting, error) {
	actor, p, err := s.loadActor(ctx, postingID, actorID)
	if err != nil {
		return nil, err
	}

	if !actor.HasAnyScope(requiredScope, auth.ScopePostingsAll, auth.ScopeAll) {
		return nil, posting.ErrInsufficientPermissions().WithDetail("required_scope", requiredScope)
	}
	if !actor.BelongsTo(p.OrganizationID) {
		return nil, posting.ErrInsufficientPermissions().WithDetail("organization_id", p.OrganizationID.String())
	}

	if err := apply(p); err != nil {
		return nil, err
	}

	if err := s.postingRepo.Update(ctx, postingID, p); err != nil {
		return nil, errx.Wrap(err, "failed to update posting", errx.TypeInternal)
	}

	return p, nil
}

func (s *PostingService) loadActor(ctx context.Context, postingID kernel.PostingID, actorID kernel.UserID) (*user.User, *posting.Posting, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, nil, user.ErrUserNotFound().WithDetail("user_id", actorID.String())
	}
	if !actor.IsActive() {
		return nil, nil, user.ErrUserSuspended().WithDetail("user_id", actorID.String())
	}

	p, err := s.postingRepo.GetByID(ctx, postingID)
	if err != nil {
		return nil, nil, posting.ErrPostingNotFound().WithDetail("posting_id", postingID.String())
	}

	return actor, p, nil
}
