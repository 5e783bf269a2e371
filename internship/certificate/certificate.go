package certificate

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/adilnv/internlink/pkg/kernel"
)

// CertificateStatus represents the status of a certificate
type CertificateStatus string

const (
	CertificateStatusGenerated  CertificateStatus = "GENERATED"  // Issued, never downloaded
	CertificateStatusDownloaded CertificateStatus = "DOWNLOADED" // Rendered at least once
)

// Mention is the qualitative grade printed on the certificate
type Mention string

const (
	MentionExcellent    Mention = "EXCELLENT"
	MentionVeryGood     Mention = "VERY_GOOD"
	MentionGood         Mention = "GOOD"
	MentionFairlyGood   Mention = "FAIRLY_GOOD"
	MentionPassable     Mention = "PASSABLE"
	MentionInsufficient Mention = "INSUFFICIENT"
)

// Certificate is an immutable, publicly verifiable attestation issued
// from one validated evaluation. Snapshot fields are denormalized at
// issuance and never follow later edits to their source records.
type Certificate struct {
	ID                 kernel.CertificateID `db:"id" json:"id"`
	Code               string               `db:"code" json:"code"`
	EvaluationID       kernel.EvaluationID  `db:"evaluation_id" json:"evaluation_id"`
	CandidatureID      kernel.CandidatureID `db:"candidature_id" json:"candidature_id"`
	StageID            kernel.StageID       `db:"stage_id" json:"stage_id"`
	InternID           kernel.UserID        `db:"intern_id" json:"intern_id"`
	Status             CertificateStatus    `db:"status" json:"status"`
	StageTitle         string               `db:"stage_title" json:"stage_title"`
	StartDate          time.Time            `db:"start_date" json:"start_date"`
	EndDate            time.Time            `db:"end_date" json:"end_date"`
	DurationDays       int                  `db:"duration_days" json:"duration_days"`
	FinalScore         float64              `db:"final_score" json:"final_score"`
	Mention            Mention              `db:"mention" json:"mention"`
	InternFullName     string               `db:"intern_full_name" json:"intern_full_name"`
	OrganizationName   string               `db:"organization_name" json:"organization_name"`
	OrganizationSector string               `db:"organization_sector" json:"organization_sector"`
	IssuerName         string               `db:"issuer_name" json:"issuer_name"`
	IssuerRole         string               `db:"issuer_role" json:"issuer_role"`
	QRPayload          string               `db:"qr_payload" json:"qr_payload"`
	DocumentURL        kernel.BucketURL     `db:"document_url" json:"document_url,omitempty"`
	VerificationCount  int                  `db:"verification_count" json:"verification_count"`
	IssuedAt           time.Time            `db:"issued_at" json:"issued_at"`
	LastDownloadedAt   *time.Time           `db:"last_downloaded_at" json:"last_downloaded_at,omitempty"`
	CreatedAt          time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time            `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// MentionForScore maps an aggregate score to its mention through fixed
// thresholds
func MentionForScore(score float64) Mention {
	switch {
	case score >= 9:
		return MentionExcellent
	case score >= 8:
		return MentionVeryGood
	case score >= 7:
		return MentionGood
	case score >= 6:
		return MentionFairlyGood
	case score >= 5:
		return MentionPassable
	default:
		return MentionInsufficient
	}
}

// DurationInDays is the certified internship length; never below one
// day even for same-day stages
func DurationInDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode builds a candidate verification code of the form
// CERT-<year>-<8 random uppercase alphanumerics>. Uniqueness is the
// caller's problem; collisions are retried against the store.
func GenerateCode(now time.Time) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeCharset[int(b)%len(codeCharset)]
	}
	return fmt.Sprintf("CERT-%d-%s", now.Year(), buf), nil
}
