package criterionsrv

import (
	"context"
	"time"

	"github.com/adilnv/internlink/internship/criterion"
	"github.com/adilnv/internlink/internship/organization"
	"github.com/adilnv/internlink/pkg/errx"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/iam/user"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/google/uuid"
)

// CriterionService provides business operations for the criterion registry
type CriterionService struct {
	criterionRepo criterion.Repository
	orgRepo       organization.Repository
	userRepo      user.Repository
}

// NewCriterionService creates a new instance of the criterion service
func NewCriterionService(
	criterionRepo criterion.Repository,
	orgRepo organization.Repository,
	userRepo user.Repository,
) *CriterionService {
	return &CriterionService{
		criterionRepo: criterionRepo,
		orgRepo:       orgRepo,
		userRepo:      userRepo,
	}
}

// CreateCriterion registers a new evaluation criterion. Global criteria
// require the wildcard scope; organization-scoped ones only membership.
func (s *CriterionService) CreateCriterion(ctx context.Context, req criterion.CreateCriterionRequest, actorID kernel.UserID) (*criterion.Criterion, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var orgID *kernel.OrganizationID
	if req.OrganizationID != "" {
		id := kernel.OrganizationID(req.OrganizationID)
		exists, err := s.orgRepo.Exists(ctx, id)
		if err != nil {
			return nil, errx.Wrap(err, "failed to check organization", errx.TypeInternal)
		}
		if !exists {
			return nil, organization.ErrOrganizationNotFound().WithDetail("organization_id", req.OrganizationID)
		}
		if !actor.BelongsTo(id) {
			return nil, criterion.ErrInsufficientPermissions().WithDetail("organization_id", req.OrganizationID)
		}
		orgID = &id
	} else if !actor.HasAnyScope(auth.ScopeAll) {
		return nil, criterion.ErrInsufficientPermissions().WithDetail("reason", "only administrators may create global criteria")
	}

	now := time.Now()
	c := &criterion.Criterion{
		ID:             kernel.NewCriterionID(uuid.NewString()),
		Name:           req.Name,
		Category:       req.Category,
		Weight:         req.Weight,
		Active:         true,
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.criterionRepo.Create(ctx, c); err != nil {
		return nil, errx.Wrap(err, "failed to create criterion", errx.TypeInternal)
	}
	return c, nil
}

// UpdateCriterion patches criterion fields
func (s *CriterionService) UpdateCriterion(ctx context.Context, criterionID kernel.CriterionID, req criterion.UpdateCriterionRequest, actorID kernel.UserID) (*criterion.Criterion, error) {
	c, err := s.loadManaged(ctx, criterionID, actorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Category != nil {
		c.Category = *req.Category
	}
	if req.Weight != nil {
		c.Weight = *req.Weight
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now()

	return s.save(ctx, c)
}

// DeactivateCriterion excludes the criterion from future aggregates
func (s *CriterionService) DeactivateCriterion(ctx context.Context, criterionID kernel.CriterionID, actorID kernel.UserID) (*criterion.Criterion, error) {
	c, err := s.loadManaged(ctx, criterionID, actorID)
	if err != nil {
		return nil, err
	}
	c.Deactivate()
	return s.save(ctx, c)
}

// ActivateCriterion re-enables the criterion
func (s *CriterionService) ActivateCriterion(ctx context.Context, criterionID kernel.CriterionID, actorID kernel.UserID) (*criterion.Criterion, error) {
	c, err := s.loadManaged(ctx, criterionID, actorID)
	if err != nil {
		return nil, err
	}
	c.Activate()
	return s.save(ctx, c)
}

// GetCriterionByID retrieves a criterion by ID
func (s *CriterionService) GetCriterionByID(ctx context.Context, criterionID kernel.CriterionID) (*criterion.Criterion, error) {
	c, err := s.criterionRepo.GetByID(ctx, criterionID)
	if err != nil {
		return nil, criterion.ErrCriterionNotFound().WithDetail("criterion_id", criterionID.String())
	}
	return c, nil
}

// ListCriteria retrieves all criteria with pagination
func (s *CriterionService) ListCriteria(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[criterion.Criterion], error) {
	page, err := s.criterionRepo.List(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list criteria", errx.TypeInternal)
	}
	return page, nil
}

// ListAvailable retrieves the active criteria usable for one organization
func (s *CriterionService) ListAvailable(ctx context.Context, orgID kernel.OrganizationID) ([]criterion.Criterion, error) {
	criteria, err := s.criterionRepo.ListAvailable(ctx, orgID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list available criteria", errx.TypeInternal)
	}
	return criteria, nil
}

func (s *CriterionService) save(ctx context.Context, c *criterion.Criterion) (*criterion.Criterion, error) {
	if err := s.criterionRepo.Update(ctx, c.ID, c); err != nil {
		return nil, errx.Wrap(err, "failed to update criterion", errx.TypeInternal)
	}
	return c, nil
}

func (s *CriterionService) loadActor(ctx context.Context, actorID kernel.UserID) (*user.User, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", actorID.String())
	}
	if !actor.IsActive() {
		return nil, user.ErrUserSuspended().WithDetail("user_id", actorID.String())
	}
	if !actor.HasAnyScope(auth.ScopeCriteriaWrite, auth.ScopeCriteriaAll, auth.ScopeAll) {
		return nil, criterion.ErrInsufficientPermissions().WithDetail("required_scope", auth.ScopeCriteriaWrite)
	}
	return actor, nil
}

func (s *CriterionService) loadManaged(ctx context.Context, criterionID kernel.CriterionID, actorID kernel.UserID) (*criterion.Criterion, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	c, err := s.criterionRepo.GetByID(ctx, criterionID)
	if err != nil {
		return nil, criterion.ErrCriterionNotFound().WithDetail("criterion_id", criterionID.String())
	}

	if c.IsGlobal() {
		if !actor.HasAnyScope(auth.ScopeAll) {
			return nil, criterion.ErrInsufficientPermissions().WithDetail("reason", "only administrators may manage global criteria")
		}
	} else if !actor.BelongsTo(*c.OrganizationID) {
		return nil, criterion.ErrInsufficientPermissions().WithDetail("organization_id", c.OrganizationID.String())
	}

	return c, nil
}
