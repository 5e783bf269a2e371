package evaluation

// RatingInput is one per-criterion score in a request payload
type RatingInput struct {
	CriterionID string `json:"criterion_id"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment,omitempty"`
}

// CreateEvaluationRequest is the payload to assess a concluded stage
type CreateEvaluationRequest struct {
	StageID         string        `json:"stage_id"`
	Ratings         []RatingInput `json:"ratings"`
	Strengths       string        `json:"strengths,omitempty"`
	Weaknesses      string        `json:"weaknesses,omitempty"`
	Recommendations string        `json:"recommendations,omitempty"`
	RecommendHire   bool          `json:"recommend_hire"`
}

// UpdateEvaluationRequest patches a draft evaluation; a non-nil Ratings
// slice replaces the whole rating set.
type UpdateEvaluationRequest struct {
	Ratings         []RatingInput `json:"ratings,omitempty"`
	Strengths       *string       `json:"strengths,omitempty"`
	Weaknesses      *string       `json:"weaknesses,omitempty"`
	Recommendations *string       `json:"recommendations,omitempty"`
	RecommendHire   *bool         `json:"recommend_hire,omitempty"`
}
