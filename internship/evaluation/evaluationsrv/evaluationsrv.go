package evaluationsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/adilnv/internlink/internship/criterion"
	"github.com/adilnv/internlink/internship/evaluation"
	"github.com/adilnv/internlink/internship/stage"
	"github.com/adilnv/internlink/pkg/errx"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/iam/user"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/adilnv/internlink/pkg/notify"
	"github.com/google/uuid"
)

// EvaluationService provides business operations for evaluations
type EvaluationService struct {
	evaluationRepo evaluation.Repository
	criterionRepo  criterion.Repository
	stageRepo      stage.Repository
	userRepo       user.Repository
	notifier       notify.Notifier
}

// NewEvaluationService creates a new instance of the evaluation service
func NewEvaluationService(
	evaluationRepo evaluation.Repository,
	criterionRepo criterion.Repository,
	stageRepo stage.Repository,
	userRepo user.Repository,
	notifier notify.Notifier,
) *EvaluationService {
	return &EvaluationService{
		evaluationRepo: evaluationRepo,
		criterionRepo:  criterionRepo,
		stageRepo:      stageRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

// CreateEvaluation assesses a concluded stage. The draft is persisted
// together with its ratings and an immediately computed aggregate, so a
// freshly created evaluation already reflects its rating set.
func (s *EvaluationService) CreateEvaluation(ctx context.Context, req evaluation.CreateEvaluationRequest, evaluatorID kernel.UserID) (*evaluation.Evaluation, error) {
	evaluator, err := s.loadActor(ctx, evaluatorID, auth.ScopeEvaluationsWrite, auth.ScopeEvaluationsAll, auth.ScopeAll)
	if err != nil {
		return nil, err
	}

	st, err := s.stageRepo.GetByID(ctx, kernel.StageID(req.StageID))
	if err != nil {
		return nil, stage.ErrStageNotFound().WithDetail("stage_id", req.StageID)
	}
	if !st.IsCompleted() {
		return nil, evaluation.ErrStageNotConcluded().WithDetail("stage_status", st.Status)
	}
	if evaluator.ID != st.SupervisorID && !evaluator.BelongsTo(st.OrganizationID) {
		return nil, evaluation.ErrInsufficientPermissions().WithDetail("stage_id", req.StageID)
	}

	exists, err := s.evaluationRepo.ExistsByStageID(ctx, st.ID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to check existing evaluation", errx.TypeInternal)
	}
	if exists {
		return nil, evaluation.ErrDuplicateEvaluation().WithDetail("stage_id", req.StageID)
	}

	ratings := toRatings(req.Ratings)
	if err := evaluation.ValidateRatings(ratings); err != nil {
		return nil, err
	}

	weights, err := s.criterionRepo.WeightsByID(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load criterion weights", errx.TypeInternal)
	}

	now := time.Now()
	e := &evaluation.Evaluation{
		ID:              kernel.NewEvaluationID(uuid.NewString()),
		StageID:         st.ID,
		EvaluatorID:     evaluatorID,
		Status:          evaluation.EvaluationStatusDraft,
		Strengths:       req.Strengths,
		Weaknesses:      req.Weaknesses,
		Recommendations: req.Recommendations,
		RecommendHire:   req.RecommendHire,
		AggregateScore:  evaluation.ComputeAggregate(ratings, weights),
		EvaluatedAt:     now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for i := range ratings {
		ratings[i].EvaluationID = e.ID
	}
	e.Ratings = ratings

	if err := s.evaluationRepo.CreateWithRatings(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateEvaluation patches a draft; only its author may edit it. A
// replaced rating set is validated like at creation and the aggregate
// recomputed in the same transaction.
func (s *EvaluationService) UpdateEvaluation(ctx context.Context, evaluationID kernel.EvaluationID, req evaluation.UpdateEvaluationRequest, actorID kernel.UserID) (*evaluation.Evaluation, error) {
	actor, err := s.loadActor(ctx, actorID, auth.ScopeEvaluationsWrite, auth.ScopeEvaluationsAll, auth.ScopeAll)
	if err != nil {
		return nil, err
	}

	e, err := s.evaluationRepo.GetByID(ctx, evaluationID)
	if err != nil {
		return nil, evaluation.ErrEvaluationNotFound().WithDetail("evaluation_id", evaluationID.String())
	}
	if actor.ID != e.EvaluatorID && !actor.HasAnyScope(auth.ScopeAll) {
		return nil, evaluation.ErrInsufficientPermissions().WithDetail("evaluation_id", evaluationID.String())
	}
	if e.IsValidated() {
		return nil, evaluation.ErrAlreadyValidated()
	}
	if !e.IsDraft() {
		return nil, evaluation.ErrInvalidStatusTransition().
			WithDetail("current_status", e.Status).
			WithDetail("action", "update")
	}

	// Validate the whole patch before the first write so a rejected
	// rating set leaves the stored draft untouched
	replaceRatings := req.Ratings != nil
	if replaceRatings {
		if err := e.ReplaceRatings(toRatings(req.Ratings)); err != nil {
			return nil, err
		}

		weights, err := s.criterionRepo.WeightsByID(ctx)
		if err != nil {
			return nil, errx.Wrap(err, "failed to load criterion weights", errx.TypeInternal)
		}
		e.AggregateScore = evaluation.ComputeAggregate(e.Ratings, weights)
	}

	if req.Strengths != nil {
		e.Strengths = *req.Strengths
	}
	if req.Weaknesses != nil {
		e.Weaknesses = *req.Weaknesses
	}
	if req.Recommendations != nil {
		e.Recommendations = *req.Recommendations
	}
	if req.RecommendHire != nil {
		e.RecommendHire = *req.RecommendHire
	}
	e.UpdatedAt = time.Now()

	if err := s.evaluationRepo.Update(ctx, e.ID, e); err != nil {
		return nil, errx.Wrap(err, "failed to update evaluation", errx.TypeInternal)
	}
	if replaceRatings {
		if err := s.evaluationRepo.ReplaceRatings(ctx, e.ID, e.Ratings, e.AggregateScore); err != nil {
			return nil, errx.Wrap(err, "failed to replace ratings", errx.TypeInternal)
		}
	}

	return e, nil
}

// FinalizeEvaluation freezes a draft for validation
func (s *EvaluationService) FinalizeEvaluation(ctx context.Context, evaluationID kernel.EvaluationID, actorID kernel.UserID) (*evaluation.Evaluation, error) {
	actor, err := s.loadActor(ctx, actorID, auth.ScopeEvaluationsWrite, auth.ScopeEvaluationsAll, auth.ScopeAll)
	if err != nil {
		return nil, err
	}

	e, err := s.loadFresh(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	if actor.ID != e.EvaluatorID && !actor.HasAnyScope(auth.ScopeAll) {
		return nil, evaluation.ErrInsufficientPermissions().WithDetail("evaluation_id", evaluationID.String())
	}

	if err := e.Finalize(); err != nil {
		return nil, err
	}

	if err := s.evaluationRepo.Update(ctx, e.ID, e); err != nil {
		return nil, errx.Wrap(err, "failed to update evaluation", errx.TypeInternal)
	}
	return e, nil
}

// ValidateEvaluation countersigns a completed evaluation. The validator
// must belong to the stage's organization and be distinct from the
// author; the transition is terminal.
func (s *EvaluationService) ValidateEvaluation(ctx context.Context, evaluationID kernel.EvaluationID, validatorID kernel.UserID) (*evaluation.Evaluation, error) {
	validator, err := s.loadActor(ctx, validatorID, auth.ScopeEvaluationsValidate, auth.ScopeEvaluationsAll, auth.ScopeAll)
	if err != nil {
		return nil, err
	}

	e, err := s.loadFresh(ctx, evaluationID)
	if err != nil {
		return nil, err
	}

	st, err := s.stageRepo.GetByID(ctx, e.StageID)
	if err != nil {
		return nil, stage.ErrStageNotFound().WithDetail("stage_id", e.StageID.String())
	}
	if !validator.BelongsTo(st.OrganizationID) {
		return nil, evaluation.ErrInsufficientPermissions().WithDetail("organization_id", st.OrganizationID.String())
	}

	if err := e.Validate(validatorID); err != nil {
		return nil, err
	}

	if err := s.evaluationRepo.Update(ctx, e.ID, e); err != nil {
		return nil, errx.Wrap(err, "failed to update evaluation", errx.TypeInternal)
	}

	s.notifier.Notify(ctx, &notify.Notification{
		Event:       notify.EventEvaluationValidated,
		RecipientID: st.InternID,
		Subject:     "Your internship evaluation was validated",
		Body:        fmt.Sprintf("The evaluation of your internship %q has been validated.", st.Title),
		Data:        map[string]any{"evaluation_id": e.ID.String()},
	})

	return e, nil
}

// GetEvaluationByID retrieves an evaluation with a fresh aggregate
func (s *EvaluationService) GetEvaluationByID(ctx context.Context, evaluationID kernel.EvaluationID, actorID kernel.UserID) (*evaluation.Evaluation, error) {
	e, err := s.loadFresh(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	if err := s.checkViewer(ctx, e, actorID); err != nil {
		return nil, err
	}
	return e, nil
}

// GetEvaluationByStage retrieves the evaluation of one stage
func (s *EvaluationService) GetEvaluationByStage(ctx context.Context, stageID kernel.StageID, actorID kernel.UserID) (*evaluation.Evaluation, error) {
	e, err := s.evaluationRepo.GetByStageID(ctx, stageID)
	if err != nil {
		return nil, evaluation.ErrEvaluationNotFound().WithDetail("stage_id", stageID.String())
	}
	if err := s.refreshAggregate(ctx, e); err != nil {
		return nil, err
	}
	if err := s.checkViewer(ctx, e, actorID); err != nil {
		return nil, err
	}
	return e, nil
}

// loadFresh loads an evaluation and recomputes its aggregate against
// the currently active criteria, persisting any drift. A criterion
// deactivated after the last write changes the result here.
func (s *EvaluationService) loadFresh(ctx context.Context, evaluationID kernel.EvaluationID) (*evaluation.Evaluation, error) {
	e, err := s.evaluationRepo.GetByID(ctx, evaluationID)
	if err != nil {
		return nil, evaluation.ErrEvaluationNotFound().WithDetail("evaluation_id", evaluationID.String())
	}
	if err := s.refreshAggregate(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EvaluationService) refreshAggregate(ctx context.Context, e *evaluation.Evaluation) error {
	weights, err := s.criterionRepo.WeightsByID(ctx)
	if err != nil {
		return errx.Wrap(err, "failed to load criterion weights", errx.TypeInternal)
	}

	computed := evaluation.ComputeAggregate(e.Ratings, weights)
	if aggregatesEqual(computed, e.AggregateScore) {
		return nil
	}

	e.AggregateScore = computed
	if err := s.evaluationRepo.UpdateAggregate(ctx, e.ID, computed); err != nil {
		return errx.Wrap(err, "failed to persist aggregate", errx.TypeInternal)
	}
	return nil
}

func (s *EvaluationService) checkViewer(ctx context.Context, e *evaluation.Evaluation, actorID kernel.UserID) error {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return user.ErrUserNotFound().WithDetail("user_id", actorID.String())
	}
	if !actor.IsActive() {
		return user.ErrUserSuspended().WithDetail("user_id", actorID.String())
	}
	if actor.ID == e.EvaluatorID || actor.HasAnyScope(auth.ScopeAll) {
		return nil
	}

	st, err := s.stageRepo.GetByID(ctx, e.StageID)
	if err != nil {
		return stage.ErrStageNotFound().WithDetail("stage_id", e.StageID.String())
	}
	if actor.ID == st.InternID || actor.ID == st.SupervisorID || actor.BelongsTo(st.OrganizationID) {
		return nil
	}
	return evaluation.ErrInsufficientPermissions().WithDetail("evaluation_id", e.ID.String())
}

func (s *EvaluationService) loadActor(ctx context.Context, actorID kernel.UserID, scopes ...string) (*user.User, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", actorID.String())
	}
	if !actor.IsActive() {
		return nil, user.ErrUserSuspended().WithDetail("user_id", actorID.String())
	}
	if !actor.HasAnyScope(scopes...) {
		return nil, evaluation.ErrInsufficientPermissions().WithDetail("required_scope", scopes[0])
	}
	return actor, nil
}

func toRatings(inputs []evaluation.RatingInput) []evaluation.Rating {
	ratings := make([]evaluation.Rating, 0, len(inputs))
	for _, in := range inputs {
		ratings = append(ratings, evaluation.Rating{
			CriterionID: kernel.CriterionID(in.CriterionID),
			Rating:      in.Rating,
			Comment:     in.Comment,
		})
	}
	return ratings
}

func aggregatesEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
