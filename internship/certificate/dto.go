package certificate

import "time"

// IssueCertificateRequest issues a certificate from a validated
// evaluation
type IssueCertificateRequest struct {
	EvaluationID string `json:"evaluation_id"`
}

// PublicView is the snapshot returned by the unauthenticated
// verification endpoint; internal identifiers are not exposed.
type PublicView struct {
	Code               string    `json:"code"`
	StageTitle         string    `json:"stage_title"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	DurationDays       int       `json:"duration_days"`
	FinalScore         float64   `json:"final_score"`
	Mention            Mention   `json:"mention"`
	InternFullName     string    `json:"intern_full_name"`
	OrganizationName   string    `json:"organization_name"`
	OrganizationSector string    `json:"organization_sector"`
	IssuerName         string    `json:"issuer_name"`
	IssuerRole         string    `json:"issuer_role"`
	IssuedAt           time.Time `json:"issued_at"`
	VerificationCount  int       `json:"verification_count"`
}

// ToPublicView strips the certificate down to third-party verifiable
// fields
func (c *Certificate) ToPublicView() PublicView {
	return PublicView{
		Code:               c.Code,
		StageTitle:         c.StageTitle,
		StartDate:          c.StartDate,
		EndDate:            c.EndDate,
		DurationDays:       c.DurationDays,
		FinalScore:         c.FinalScore,
		Mention:            c.Mention,
		InternFullName:     c.InternFullName,
		OrganizationName:   c.OrganizationName,
		OrganizationSector: c.OrganizationSector,
		IssuerName:         c.IssuerName,
		IssuerRole:         c.IssuerRole,
		IssuedAt:           c.IssuedAt,
		VerificationCount:  c.VerificationCount,
	}
}
