package stage

// CompleteStageRequest concludes a stage
type CompleteStageRequest struct {
	FinalScore *float64 `json:"final_score,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// NotesRequest carries the free-text notes of interrupt/suspend actions
type NotesRequest struct {
	Notes string `json:"notes,omitempty"`
}
