package candidature

// SubmitCandidatureRequest is the payload to apply to a posting
type SubmitCandidatureRequest struct {
	PostingID   string `json:"posting_id"`
	InternNotes string `json:"intern_notes,omitempty"`
}

// ReviewRequest carries the reviewer's notes for review transitions
type ReviewRequest struct {
	Notes string `json:"notes,omitempty"`
}

// RateRequest records the reviewer's rating
type RateRequest struct {
	Rating int `json:"rating"`
}
