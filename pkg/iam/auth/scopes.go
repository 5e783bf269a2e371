package auth

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - Internship lifecycle platform
// ============================================================================

const (
	// Wildcard
	ScopeAll = "*"

	// Posting scopes
	ScopePostingsAll     = "postings:*"
	ScopePostingsRead    = "postings:read"
	ScopePostingsWrite   = "postings:write"
	ScopePostingsDelete  = "postings:delete"
	ScopePostingsPublish = "postings:publish"

	// Candidature scopes
	ScopeCandidaturesAll    = "candidatures:*"
	ScopeCandidaturesRead   = "candidatures:read"
	ScopeCandidaturesWrite  = "candidatures:write"
	ScopeCandidaturesReview = "candidatures:review" // move to review / accept / refuse
	ScopeCandidaturesDelete = "candidatures:delete"

	// Stage scopes
	ScopeStagesAll    = "stages:*"
	ScopeStagesRead   = "stages:read"
	ScopeStagesWrite  = "stages:write" // begin/complete/interrupt/suspend/resume
	ScopeStagesDelete = "stages:delete"

	// Mission scopes
	ScopeMissionsAll      = "missions:*"
	ScopeMissionsRead     = "missions:read"
	ScopeMissionsWrite    = "missions:write"
	ScopeMissionsProgress = "missions:progress" // assignee-side updates
	ScopeMissionsDelete   = "missions:delete"

	// Criterion scopes
	ScopeCriteriaAll   = "criteria:*"
	ScopeCriteriaRead  = "criteria:read"
	ScopeCriteriaWrite = "criteria:write"

	// Evaluation scopes
	ScopeEvaluationsAll      = "evaluations:*"
	ScopeEvaluationsRead     = "evaluations:read"
	ScopeEvaluationsWrite    = "evaluations:write"
	ScopeEvaluationsValidate = "evaluations:validate"

	// Certificate scopes
	ScopeCertificatesAll      = "certificates:*"
	ScopeCertificatesRead     = "certificates:read"
	ScopeCertificatesIssue    = "certificates:issue"
	ScopeCertificatesDownload = "certificates:download"

	// Account management
	ScopeUsersAll  = "users:*"
	ScopeUsersRead = "users:read"
)

// RoleScopeGroups maps a user role to the scopes it holds
var RoleScopeGroups = map[string][]string{
	"INTERN": {
		ScopePostingsRead,
		ScopeCandidaturesRead,
		ScopeCandidaturesWrite,
		ScopeStagesRead,
		ScopeMissionsRead,
		ScopeMissionsProgress,
		ScopeCertificatesRead,
		ScopeCertificatesDownload,
	},
	"RECRUITER": {
		ScopePostingsAll,
		ScopeCandidaturesAll,
		ScopeStagesAll,
		ScopeMissionsAll,
		ScopeCriteriaRead,
		ScopeEvaluationsRead,
		ScopeEvaluationsWrite,
		ScopeCertificatesRead,
		ScopeCertificatesDownload,
		ScopeUsersRead,
	},
	"HR_MANAGER": {
		ScopePostingsRead,
		ScopeCandidaturesRead,
		ScopeStagesRead,
		ScopeMissionsRead,
		ScopeCriteriaAll,
		ScopeEvaluationsAll,
		ScopeEvaluationsValidate,
		ScopeCertificatesAll,
		ScopeCertificatesIssue,
		ScopeUsersRead,
	},
	"ADMIN": {
		ScopeAll,
	},
}

// ScopesForRole returns the scope set granted to a role
func ScopesForRole(role string) []string {
	return RoleScopeGroups[role]
}

// MatchScope reports whether a held scope satisfies a required scope,
// honoring "*" and "<resource>:*" wildcards.
func MatchScope(held, required string) bool {
	if held == ScopeAll || held == required {
		return true
	}
	if n := len(held); n > 2 && held[n-2:] == ":*" {
		prefix := held[:n-1] // keep the colon
		return len(required) > len(prefix) && required[:len(prefix)] == prefix
	}
	return false
}
