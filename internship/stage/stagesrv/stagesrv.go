package stagesrv

import (
	"context"
	"fmt"

	"github.com/adilnv/internlink/internship/stage"
	"github.com/adilnv/internlink/pkg/errx"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/iam/user"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/adilnv/internlink/pkg/notify"
)

// StageService provides business operations for internship stages
type StageService struct {
	stageRepo stage.Repository
	userRepo  user.Repository
	notifier  notify.Notifier
}

// NewStageService creates a new instance of the stage service
func NewStageService(
	stageRepo stage.Repository,
	userRepo user.Repository,
	notifier notify.Notifier,
) *StageService {
	return &StageService{
		stageRepo: stageRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// BeginStage starts a pending stage
func (s *StageService) BeginStage(ctx context.Context, stageID kernel.StageID, actorID kernel.UserID) (*stage.Stage, error) {
	_, st, err := s.loadSupervisingActor(ctx, stageID, actorID)
	if err != nil {
		return nil, err
	}

	if err := st.Begin(); err != nil {
		return nil, err
	}

	if err := s.stageRepo.Update(ctx, stageID, st); err != nil {
		return nil, errx.Wrap(err, "failed to update stage", errx.TypeInternal)
	}

	s.notifier.Notify(ctx, &notify.Notification{
		Event:       notify.EventStageStarted,
		RecipientID: st.InternID,
		Subject:     "Your internship has started",
		Body:        fmt.Sprintf("Internship %q is now active.", st.Title),
		Data:        map[string]any{"stage_id": st.ID.String()},
	})

	return st, nil
}

// CompleteStage concludes an active stage normally
func (s *StageService) CompleteStage(ctx context.Context, stageID kernel.StageID, req stage.CompleteStageRequest, actorID kernel.UserID) (*stage.Stage, error) {
	_, st, err := s.loadSupervisingActor(ctx, stageID, actorID)
	if err != nil {
		return nil, err
	}

	if err := st.Complete(req.FinalScore, req.Notes); err != nil {
		return nil, err
	}

	if err := s.stageRepo.Update(ctx, stageID, st); err != nil {
		return nil, errx.Wrap(err, "failed to update stage", errx.TypeInternal)
	}

	s.notifier.Notify(ctx, &notify.Notification{
		Event:       notify.EventStageCompleted,
		RecipientID: st.InternID,
		Subject:     "Your internship is completed",
		Body:        fmt.Sprintf("Internship %q has been marked completed.", st.Title),
		Data:        map[string]any{"stage_id": st.ID.String()},
	})

	return st, nil
}

// InterruptStage ends an active stage early
func (s *StageService) InterruptStage(ctx context.Context, stageID kernel.StageID, notes string, actorID kernel.UserID) (*stage.Stage, error) {
	_, st, err := s.loadSupervisingActor(ctx, stageID, actorID)
	if err != nil {
		return nil, err
	}

	if err := st.Interrupt(notes); err != nil {
		return nil, err
	}

	if err := s.stageRepo.Update(ctx, stageID, st); err != nil {
		return nil, errx.Wrap(err, "failed to update stage", errx.TypeInternal)
	}

	return st, nil
}

// SuspendStage pauses an active stage
func (s *StageService) SuspendStage(ctx context.Context, stageID kernel.StageID, notes string, actorID kernel.UserID) (*stage.Stage, error) {
	_, st, err := s.loadSupervisingActor(ctx, stageID, actorID)
	if err != nil {
		return nil, err
	}

	if err := st.Suspend(notes); err != nil {
		return nil, err
	}

	if err := s.stageRepo.Update(ctx, stageID, st); err != nil {
		return nil, errx.Wrap(err, "failed to update stage", errx.TypeInternal)
	}

	return st, nil
}

// ResumeStage reactivates a suspended stage
func (s *StageService) ResumeStage(ctx context.Context, stageID kernel.StageID, actorID kernel.UserID) (*stage.Stage, error) {
	_, st, err := s.loadSupervisingActor(ctx, stageID, actorID)
	if err != nil {
		return nil, err
	}

	if err := st.Resume(); err != nil {
		return nil, err
	}

	if err := s.stageRepo.Update(ctx, stageID, st); err != nil {
		return nil, errx.Wrap(err, "failed to update stage", errx.TypeInternal)
	}

	return st, nil
}

// DeleteStage removes a stage that has not started
func (s *StageService) DeleteStage(ctx context.Context, stageID kernel.StageID, actorID kernel.UserID) error {
	actor, st, err := s.loadSupervisingActor(ctx, stageID, actorID)
	if err != nil {
		return err
	}

	if !actor.HasAnyScope(auth.ScopeStagesDelete, auth.ScopeStagesAll, auth.ScopeAll) {
		return stage.ErrInsufficientPermissions().WithDetail("required_scope", auth.ScopeStagesDelete)
	}

	if !st.CanBeDeleted() {
		return stage.ErrCannotDelete().WithDetail("current_status", st.Status)
	}

	if err := s.stageRepo.Delete(ctx, stageID); err != nil {
		return errx.Wrap(err, "failed to delete stage", errx.TypeInternal)
	}

	return nil
}

// GetStageByID retrieves a stage, visible to its intern and the host staff
func (s *StageService) GetStageByID(ctx context.Context, stageID kernel.StageID, actorID kernel.UserID) (*stage.Stage, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", actorID.String())
	}

	st, err := s.stageRepo.GetByID(ctx, stageID)
	if err != nil {
		return nil, stage.ErrStageNotFound().WithDetail("stage_id", stageID.String())
	}

	if !s.canView(actor, st) {
		return nil, stage.ErrInsufficientPermissions().WithDetail("stage_id", stageID.String())
	}

	return st, nil
}

// ListStagesByIntern retrieves stages of one intern
func (s *StageService) ListStagesByIntern(ctx context.Context, internID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[stage.Stage], error) {
	page, err := s.stageRepo.ListByIntern(ctx, internID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list stages", errx.TypeInternal)
	}
	return page, nil
}

// ListStagesByOrganization retrieves stages hosted by one organization
func (s *StageService) ListStagesByOrganization(ctx context.Context, orgID kernel.OrganizationID, pagination kernel.PaginationOptions) (*kernel.Paginated[stage.Stage], error) {
	page, err := s.stageRepo.ListByOrganization(ctx, orgID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list stages", errx.TypeInternal)
	}
	return page, nil
}

func (s *StageService) canView(actor *user.User, st *stage.Stage) bool {
	if actor.ID == st.InternID || actor.ID == st.SupervisorID {
		return true
	}
	return actor.BelongsTo(st.OrganizationID) &&
		actor.HasAnyScope(auth.ScopeStagesRead, auth.ScopeStagesAll, auth.ScopeAll)
}

// loadSupervisingActor resolves the acting user and the stage, and
// enforces that stage transitions come from the host side.
func (s *StageService) loadSupervisingActor(ctx context.Context, stageID kernel.StageID, actorID kernel.UserID) (*user.User, *stage.Stage, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, nil, user.ErrUserNotFound().WithDetail("user_id", actorID.String())
	}
	if !actor.IsActive() {
		return nil, nil, user.ErrUserSuspended().WithDetail("user_id", actorID.String())
	}

	st, err := s.stageRepo.GetByID(ctx, stageID)
	if err != nil {
		return nil, nil, stage.ErrStageNotFound().WithDetail("stage_id", stageID.String())
	}

	if !actor.HasAnyScope(auth.ScopeStagesWrite, auth.ScopeStagesAll, auth.ScopeAll) {
		return nil, nil, stage.ErrInsufficientPermissions().WithDetail("required_scope", auth.ScopeStagesWrite)
	}
	if actor.ID != st.SupervisorID && !actor.BelongsTo(st.OrganizationID) {
		return nil, nil, stage.ErrInsufficientPermissions().WithDetail("stage_id", stageID.String())
	}

	return actor, st, nil
}
