package criterion

// CreateCriterionRequest is the payload to register a criterion. An
// empty OrganizationID creates a global criterion.
type CreateCriterionRequest struct {
	Name           string  `json:"name"`
	Category       string  `json:"category,omitempty"`
	Weight         float64 `json:"weight"`
	OrganizationID string  `json:"organization_id,omitempty"`
}

// UpdateCriterionRequest patches criterion fields
type UpdateCriterionRequest struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
}
