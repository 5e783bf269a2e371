package orgsrv

import (
	"context"
	"time"

	"github.com/adilnv/internlink/internship/organization"
	"github.com/adilnv/internlink/pkg/errx"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/google/uuid"
)

// OrganizationService provides business operations for organizations
type OrganizationService struct {
	orgRepo organization.Repository
}

// NewOrganizationService creates a new instance of the organization service
func NewOrganizationService(orgRepo organization.Repository) *OrganizationService {
	return &OrganizationService{orgRepo: orgRepo}
}

// CreateOrganizationRequest is the payload to register a host company
type CreateOrganizationRequest struct {
	Name        string `json:"name"`
	Sector      string `json:"sector"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

// Create registers a new host organization
func (s *OrganizationService) Create(ctx context.Context, req CreateOrganizationRequest) (*organization.Organization, error) {
	if req.Name == "" {
		return nil, organization.ErrNameRequired()
	}

	org := &organization.Organization{
		ID:          kernel.NewOrganizationID(uuid.NewString()),
		Name:        req.Name,
		Sector:      kernel.Sector(req.Sector),
		Description: req.Description,
		Website:     req.Website,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, errx.Wrap(err, "failed to create organization", errx.TypeInternal)
	}

	return org, nil
}

// GetByID retrieves an organization by ID
func (s *OrganizationService) GetByID(ctx context.Context, id kernel.OrganizationID) (*organization.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, organization.ErrOrganizationNotFound().WithDetail("organization_id", id.String())
	}
	return org, nil
}

// List retrieves organizations with pagination
func (s *OrganizationService) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[organization.Organization], error) {
	page, err := s.orgRepo.List(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list organizations", errx.TypeInternal)
	}
	return page, nil
}
