package evaluationsrv

import (
	"context"
	"testing"
	"time"

	"github.com/adilnv/internlink/internship/criterion"
	"github.com/adilnv/internlink/internship/evaluation"
	"github.com/adilnv/internlink/internship/stage"
	"github.com/adilnv/internlink/pkg/iam/user"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/adilnv/internlink/pkg/notify"
)

// ----------------------------------------------------------------------------
// In-memory fakes
// ----------------------------------------------------------------------------

type fakeEvaluationRepo struct {
	evaluations  map[kernel.EvaluationID]*evaluation.Evaluation
	updateCalls  int
	replaceCalls int
}

func newFakeEvaluationRepo() *fakeEvaluationRepo {
	return &fakeEvaluationRepo{evaluations: make(map[kernel.EvaluationID]*evaluation.Evaluation)}
}

func cloneEvaluation(e *evaluation.Evaluation) *evaluation.Evaluation {
	clone := *e
	clone.Ratings = append([]evaluation.Rating(nil), e.Ratings...)
	if e.AggregateScore != nil {
		score := *e.AggregateScore
		clone.AggregateScore = &score
	}
	return &clone
}

func (r *fakeEvaluationRepo) CreateWithRatings(ctx context.Context, e *evaluation.Evaluation) error {
	r.evaluations[e.ID] = cloneEvaluation(e)
	return nil
}

func (r *fakeEvaluationRepo) Update(ctx context.Context, id kernel.EvaluationID, e *evaluation.Evaluation) error {
	r.updateCalls++
	ratings := r.evaluations[id].Ratings
	stored := cloneEvaluation(e)
	stored.Ratings = ratings
	r.evaluations[id] = stored
	return nil
}

func (r *fakeEvaluationRepo) ReplaceRatings(ctx context.Context, id kernel.EvaluationID, ratings []evaluation.Rating, aggregate *float64) error {
	r.replaceCalls++
	stored, ok := r.evaluations[id]
	if !ok {
		return evaluation.ErrEvaluationNotFound()
	}
	stored.Ratings = append([]evaluation.Rating(nil), ratings...)
	stored.AggregateScore = aggregate
	return nil
}

func (r *fakeEvaluationRepo) UpdateAggregate(ctx context.Context, id kernel.EvaluationID, aggregate *float64) error {
	if stored, ok := r.evaluations[id]; ok {
		stored.AggregateScore = aggregate
	}
	return nil
}

func (r *fakeEvaluationRepo) GetByID(ctx context.Context, id kernel.EvaluationID) (*evaluation.Evaluation, error) {
	if e, ok := r.evaluations[id]; ok {
		return cloneEvaluation(e), nil
	}
	return nil, evaluation.ErrEvaluationNotFound()
}

func (r *fakeEvaluationRepo) GetByStageID(ctx context.Context, stageID kernel.StageID) (*evaluation.Evaluation, error) {
	for _, e := range r.evaluations {
		if e.StageID == stageID {
			return cloneEvaluation(e), nil
		}
	}
	return nil, evaluation.ErrEvaluationNotFound()
}

func (r *fakeEvaluationRepo) ExistsByStageID(ctx context.Context, stageID kernel.StageID) (bool, error) {
	_, err := r.GetByStageID(ctx, stageID)
	return err == nil, nil
}

type fakeCriterionRepo struct {
	weights map[kernel.CriterionID]float64
}

func (r *fakeCriterionRepo) Create(ctx context.Context, c *criterion.Criterion) error { return nil }

func (r *fakeCriterionRepo) Update(ctx context.Context, id kernel.CriterionID, c *criterion.Criterion) error {
	return nil
}

func (r *fakeCriterionRepo) GetByID(ctx context.Context, id kernel.CriterionID) (*criterion.Criterion, error) {
	return nil, criterion.ErrCriterionNotFound()
}

func (r *fakeCriterionRepo) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[criterion.Criterion], error) {
	return &kernel.Paginated[criterion.Criterion]{}, nil
}

func (r *fakeCriterionRepo) ListAvailable(ctx context.Context, orgID kernel.OrganizationID) ([]criterion.Criterion, error) {
	return nil, nil
}

func (r *fakeCriterionRepo) WeightsByID(ctx context.Context) (map[kernel.CriterionID]float64, error) {
	return r.weights, nil
}

type fakeStageRepo struct {
	stages map[kernel.StageID]*stage.Stage
}

func (r *fakeStageRepo) Create(ctx context.Context, s *stage.Stage) error {
	r.stages[s.ID] = s
	return nil
}

func (r *fakeStageRepo) Update(ctx context.Context, id kernel.StageID, s *stage.Stage) error {
	r.stages[id] = s
	return nil
}

func (r *fakeStageRepo) GetByID(ctx context.Context, id kernel.StageID) (*stage.Stage, error) {
	if s, ok := r.stages[id]; ok {
		return s, nil
	}
	return nil, stage.ErrStageNotFound()
}

func (r *fakeStageRepo) GetByCandidatureID(ctx context.Context, candidatureID kernel.CandidatureID) (*stage.Stage, error) {
	for _, s := range r.stages {
		if s.CandidatureID == candidatureID {
			return s, nil
		}
	}
	return nil, stage.ErrStageNotFound()
}

func (r *fakeStageRepo) Delete(ctx context.Context, id kernel.StageID) error {
	delete(r.stages, id)
	return nil
}

func (r *fakeStageRepo) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[stage.Stage], error) {
	return &kernel.Paginated[stage.Stage]{}, nil
}

func (r *fakeStageRepo) ListByIntern(ctx context.Context, internID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[stage.Stage], error) {
	return &kernel.Paginated[stage.Stage]{}, nil
}

func (r *fakeStageRepo) ListByOrganization(ctx context.Context, orgID kernel.OrganizationID, pagination kernel.PaginationOptions) (*kernel.Paginated[stage.Stage], error) {
	return &kernel.Paginated[stage.Stage]{}, nil
}

func (r *fakeStageRepo) Exists(ctx context.Context, id kernel.StageID) (bool, error) {
	_, ok := r.stages[id]
	return ok, nil
}

type fakeUserRepo struct {
	users map[kernel.UserID]*user.User
}

func (r *fakeUserRepo) Save(ctx context.Context, u *user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound()
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound()
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) FindByOrganization(ctx context.Context, orgID kernel.OrganizationID, opts kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	return &kernel.Paginated[user.User]{}, nil
}

// ----------------------------------------------------------------------------
// Fixtures
// ----------------------------------------------------------------------------

func newTestService(t *testing.T) (*EvaluationService, *fakeEvaluationRepo) {
	t.Helper()

	orgID := kernel.OrganizationID("org-1")
	aggregate := 8.0

	users := &fakeUserRepo{users: map[kernel.UserID]*user.User{
		"rec-1": {
			ID:        "rec-1",
			Email:     "recruiter@example.com",
			FirstName: "Sam",
			LastName:  "Okafor",
			Role:      user.RoleRecruiter,
			Status:    user.UserStatusActive,
			Staff:     &user.StaffProfile{OrganizationID: orgID, Position: "Recruiter"},
		},
	}}

	stages := &fakeStageRepo{stages: map[kernel.StageID]*stage.Stage{
		"stage-1": {
			ID:             "stage-1",
			CandidatureID:  "cand-1",
			OrganizationID: orgID,
			InternID:       "intern-1",
			SupervisorID:   "rec-1",
			Status:         stage.StageStatusCompleted,
		},
	}}

	evaluations := newFakeEvaluationRepo()
	evaluations.evaluations["eval-1"] = &evaluation.Evaluation{
		ID:             "eval-1",
		StageID:        "stage-1",
		EvaluatorID:    "rec-1",
		Status:         evaluation.EvaluationStatusDraft,
		Strengths:      "initial strengths",
		AggregateScore: &aggregate,
		EvaluatedAt:    time.Now(),
		Ratings: []evaluation.Rating{
			{EvaluationID: "eval-1", CriterionID: "crit-1", Rating: 8},
		},
	}

	svc := NewEvaluationService(
		evaluations,
		&fakeCriterionRepo{weights: map[kernel.CriterionID]float64{"crit-1": 2, "crit-2": 1}},
		stages,
		users,
		notify.NoopNotifier{},
	)
	return svc, evaluations
}

func strPtr(s string) *string { return &s }

// ----------------------------------------------------------------------------
// Tests
// ----------------------------------------------------------------------------

func TestUpdateRejectedPatchLeavesDraftUntouched(t *testing.T) {
	svc, repo := newTestService(t)

	req := evaluation.UpdateEvaluationRequest{
		Strengths: strPtr("tampered strengths"),
		Ratings:   []evaluation.RatingInput{{CriterionID: "crit-1", Rating: 99}},
	}

	if _, err := svc.UpdateEvaluation(context.Background(), "eval-1", req, "rec-1"); err == nil {
		t.Fatal("out-of-range rating should reject the whole patch")
	}

	stored := repo.evaluations["eval-1"]
	if stored.Strengths != "initial strengths" {
		t.Errorf("strengths = %q, want the pre-patch value", stored.Strengths)
	}
	if repo.updateCalls != 0 || repo.replaceCalls != 0 {
		t.Errorf("repo writes = %d update / %d replace, want none", repo.updateCalls, repo.replaceCalls)
	}
}

func TestUpdateAppliesTextAndRatingsTogether(t *testing.T) {
	svc, repo := newTestService(t)

	req := evaluation.UpdateEvaluationRequest{
		Strengths: strPtr("sharper delivery"),
		Ratings: []evaluation.RatingInput{
			{CriterionID: "crit-1", Rating: 8},
			{CriterionID: "crit-2", Rating: 6},
		},
	}

	updated, err := svc.UpdateEvaluation(context.Background(), "eval-1", req, "rec-1")
	if err != nil {
		t.Fatalf("UpdateEvaluation: %v", err)
	}

	if updated.Strengths != "sharper delivery" {
		t.Errorf("strengths = %q", updated.Strengths)
	}
	if updated.AggregateScore == nil || *updated.AggregateScore != 7.33 {
		t.Errorf("aggregate = %v, want 7.33", updated.AggregateScore)
	}

	stored := repo.evaluations["eval-1"]
	if stored.Strengths != "sharper delivery" || len(stored.Ratings) != 2 {
		t.Errorf("stored draft out of sync: strengths=%q ratings=%d", stored.Strengths, len(stored.Ratings))
	}
	if repo.updateCalls != 1 || repo.replaceCalls != 1 {
		t.Errorf("repo writes = %d update / %d replace, want 1 each", repo.updateCalls, repo.replaceCalls)
	}
}

func TestUpdateOnlyByAuthorWhileDraft(t *testing.T) {
	svc, repo := newTestService(t)

	repo.evaluations["eval-1"].Status = evaluation.EvaluationStatusCompleted
	req := evaluation.UpdateEvaluationRequest{Strengths: strPtr("late edit")}

	if _, err := svc.UpdateEvaluation(context.Background(), "eval-1", req, "rec-1"); err == nil {
		t.Error("a completed evaluation should not accept patches")
	}
	if repo.updateCalls != 0 {
		t.Errorf("update calls = %d, want 0", repo.updateCalls)
	}
}
