package missionsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/adilnv/internlink/internship/mission"
	"github.com/adilnv/internlink/internship/stage"
	"github.com/adilnv/internlink/pkg/errx"
	"github.com/adilnv/internlink/pkg/iam/auth"
	"github.com/adilnv/internlink/pkg/iam/user"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/adilnv/internlink/pkg/notify"
	"github.com/google/uuid"
)

// MissionService provides business operations for missions
type MissionService struct {
	missionRepo mission.Repository
	stageRepo   stage.Repository
	userRepo    user.Repository
	notifier    notify.Notifier
}

// NewMissionService creates a new instance of the mission service
func NewMissionService(
	missionRepo mission.Repository,
	stageRepo stage.Repository,
	userRepo user.Repository,
	notifier notify.Notifier,
) *MissionService {
	return &MissionService{
		missionRepo: missionRepo,
		stageRepo:   stageRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// CreateMission assigns a new mission within a stage
func (s *MissionService) CreateMission(ctx context.Context, req mission.CreateMissionRequest, supervisorID kernel.UserID) (*mission.Mission, error) {
	supervisor, err := s.userRepo.FindByID(ctx, supervisorID)
	if err != nil {
		return nil, user.ErrUserNotFound().WithDetail("user_id", supervisorID.String())
	}
	if !supervisor.IsActive() {
		return nil, user.ErrUserSuspended().WithDetail("user_id", supervisorID.String())
	}
	if !supervisor.HasAnyScope(auth.ScopeMissionsWrite, auth.ScopeMissionsAll, auth.ScopeAll) {
		return nil, mission.ErrInsufficientPermissions().WithDetail("required_scope", auth.ScopeMissionsWrite)
	}

	if req.Title == "" {
		return nil, mission.ErrTitleRequired()
	}

	st, err := s.stageRepo.GetByID(ctx, kernel.StageID(req.StageID))
	if err != nil {
		return nil, stage.ErrStageNotFound().WithDetail("stage_id", req.StageID)
	}
	if !st.IsPending() && !st.IsActive() {
		return nil, mission.ErrStageNotOpen().WithDetail("stage_status", st.Status)
	}
	if !supervisor.BelongsTo(st.OrganizationID) {
		return nil, mission.ErrInsufficientPermissions().WithDetail("organization_id", st.OrganizationID.String())
	}

	priority := mission.MissionPriority(req.Priority)
	switch priority {
	case mission.MissionPriorityLow, mission.MissionPriorityNormal, mission.MissionPriorityHigh, mission.MissionPriorityUrgent:
	case "":
		priority = mission.MissionPriorityNormal
	default:
		return nil, mission.ErrInvalidRequest().WithDetail("priority", req.Priority)
	}

	now := time.Now()
	newMission := &mission.Mission{
		ID:                   kernel.NewMissionID(uuid.NewString()),
		StageID:              st.ID,
		SupervisorID:         supervisorID,
		AssigneeID:           st.InternID,
		Title:                req.Title,
		Description:          req.Description,
		Priority:             priority,
		Status:               mission.MissionStatusToDo,
		DeliverablesExpected: req.DeliverablesExpected,
		PlannedStart:         req.PlannedStart,
		PlannedEnd:           req.PlannedEnd,
		AssignedAt:           now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.missionRepo.Create(ctx, newMission); err != nil {
		return nil, errx.Wrap(err, "failed to create mission", errx.TypeInternal)
	}

	s.notifier.Notify(ctx, &notify.Notification{
		Event:       notify.EventMissionAssigned,
		RecipientID: newMission.AssigneeID,
		Subject:     "New mission assigned",
		Body:        fmt.Sprintf("You were assigned the mission %q.", newMission.Title),
		Data:        map[string]any{"mission_id": newMission.ID.String()},
	})

	return newMission, nil
}

// BeginMission starts a mission; allowed from both sides
func (s *MissionService) BeginMission(ctx context.Context, missionID kernel.MissionID, actorID kernel.UserID) (*mission.Mission, error) {
	_, m, err := s.loadParticipant(ctx, missionID, actorID)
	if err != nil {
		return nil, err
	}

	if err := m.Begin(); err != nil {
		return nil, err
	}

	return s.save(ctx, m)
}

// SubmitMission hands work over for review; assignee only
func (s *MissionService) SubmitMission(ctx context.Context, missionID kernel.MissionID, req mission.SubmitMissionRequest, actorID kernel.UserID) (*mission.Mission, error) {
	m, err := s.loadAssignee(ctx, missionID, actorID)
	if err != nil {
		return nil, err
	}

	if err := m.Submit(req.Deliverables, req.Feedback); err != nil {
		return nil, err
	}

	saved, err := s.save(ctx, m)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, &notify.Notification{
		Event:       notify.EventMissionInReview,
		RecipientID: m.SupervisorID,
		Subject:     "Mission submitted for review",
		Body:        fmt.Sprintf("Mission %q is awaiting your review.", m.Title),
		Data:        map[string]any{"mission_id": m.ID.String()},
	})

	return saved, nil
}

// ApproveMission accepts submitted work; supervising side only
func (s *MissionService) ApproveMission(ctx context.Context, missionID kernel.MissionID, req mission.ApproveMissionRequest, actorID kernel.UserID) (*mission.Mission, error) {
	m, err := s.loadSupervisor(ctx, missionID, actorID)
	if err != nil {
		return nil, err
	}

	if err := m.Approve(req.Score, req.Feedback); err != nil {
		return nil, err
	}

	return s.save(ctx, m)
}

// RejectMission sends submitted work back; supervising side only
func (s *MissionService) RejectMission(ctx context.Context, missionID kernel.MissionID, feedback string, actorID kernel.UserID) (*mission.Mission, error) {
	m, err := s.loadSupervisor(ctx, missionID, actorID)
	if err != nil {
		return nil, err
	}

	if err := m.Reject(feedback); err != nil {
		return nil, err
	}

	return s.save(ctx, m)
}

// CancelMission terminates a mission; supervising side only
func (s *MissionService) CancelMission(ctx context.Context, missionID kernel.MissionID, reason string, actorID kernel.UserID) (*mission.Mission, error) {
	m, err := s.loadSupervisor(ctx, missionID, actorID)
	if err != nil {
		return nil, err
	}

	if err := m.Cancel(reason); err != nil {
		return nil, err
	}

	return s.save(ctx, m)
}

// UpdateProgress sets the completion percentage; assignee only
func (s *MissionService) UpdateProgress(ctx context.Context, missionID kernel.MissionID, percent int, actorID kernel.UserID) (*mission.Mission, error) {
	m, err := s.loadAssignee(ctx, missionID, actorID)
	if err != nil {
		return nil, err
	}

	wasInProgress := m.Status == mission.MissionStatusInProgress

	if err := m.UpdateProgress(percent); err != nil {
		return nil, err
	}

	saved, err := s.save(ctx, m)
	if err != nil {
		return nil, err
	}

	if wasInProgress && m.Status == mission.MissionStatusInReview {
		s.notifier.Notify(ctx, &notify.Notification{
			Event:       notify.EventMissionInReview,
			RecipientID: m.SupervisorID,
			Subject:     "Mission reached 100%",
			Body:        fmt.Sprintf("Mission %q is awaiting your review.", m.Title),
			Data:        map[string]any{"mission_id": m.ID.String()},
		})
	}

	return saved, nil
}

// UpdateMission patches mission fields. The supervising side may change
// any field; the assignee only the work-report fields.
func (s *MissionService) UpdateMission(ctx context.Context, missionID kernel.MissionID, req mission.UpdateMissionRequest, actorID kernel.UserID) (*mission.Mission, error) {
	actor, m, err := s.loadParticipant(ctx, missionID, actorID)
	if err != nil {
		return nil, err
	}

	if m.IsTerminal() {
		return nil, mission.ErrInvalidStatusTransition().
			WithDetail("current_status", m.Status).
			WithDetail("action", "update")
	}

	supervising := s.isSupervising(actor, m)
	if !supervising {
		// Assignee rights cover only the work-report fields
		if req.Title != nil || req.Description != nil || req.Priority != nil ||
			req.DeliverablesExpected != nil || req.PlannedStart != nil || req.PlannedEnd != nil {
			return nil, mission.ErrInsufficientPermissions().WithDetail("reason", "assignee may only update work-report fields")
		}
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, mission.ErrTitleRequired()
		}
		m.Title = *req.Title
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Priority != nil {
		m.Priority = *req.Priority
	}
	if req.DeliverablesExpected != nil {
		m.DeliverablesExpected = *req.DeliverablesExpected
	}
	if req.DeliverablesProvided != nil {
		m.DeliverablesProvided = *req.DeliverablesProvided
	}
	if req.ToolsUsed != nil {
		m.ToolsUsed = *req.ToolsUsed
	}
	if req.Feedback != nil {
		m.Feedback = *req.Feedback
	}
	if req.PlannedStart != nil {
		m.PlannedStart = req.PlannedStart
	}
	if req.PlannedEnd != nil {
		m.PlannedEnd = req.PlannedEnd
	}

	m.UpdatedAt = time.Now()
	return s.save(ctx, m)
}

// DeleteMission removes a mission not currently being worked on
func (s *MissionService) DeleteMission(ctx context.Context, missionID kernel.MissionID, actorID kernel.UserID) error {
	m, err := s.loadSupervisor(ctx, missionID, actorID)
	if err != nil {
		return err
	}

	if !m.CanBeDeleted() {
		return mission.ErrCannotDelete().WithDetail("current_status", m.Status)
	}

	if err := s.missionRepo.Delete(ctx, missionID); err != nil {
		return errx.Wrap(err, "failed to delete mission", errx.TypeInternal)
	}
	return nil
}

// GetMissionByID retrieves a mission visible to its participants
func (s *MissionService) GetMissionByID(ctx context.Context, missionID kernel.MissionID, actorID kernel.UserID) (*mission.Mission, error) {
	_, m, err := s.loadParticipant(ctx, missionID, actorID)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListByStage retrieves missions of one stage
func (s *MissionService) ListByStage(ctx context.Context, stageID kernel.StageID, pagination kernel.PaginationOptions) (*kernel.Paginated[mission.Mission], error) {
	page, err := s.missionRepo.ListByStage(ctx, stageID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list missions", errx.TypeInternal)
	}
	return page, nil
}

// ListByAssignee retrieves missions assigned to one intern
func (s *MissionService) ListByAssignee(ctx context.Context, assigneeID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[mission.Mission], error) {
	page, err := s.missionRepo.ListByAssignee(ctx, assigneeID, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list missions", errx.TypeInternal)
	}
	return page, nil
}

func (s *MissionService) save(ctx context.Context, m *mission.Mission) (*mission.Mission, error) {
	if err := s.missionRepo.Update(ctx, m.ID, m); err != nil {
		return nil, errx.Wrap(err, "failed to update mission", errx.TypeInternal)
	}
	return m, nil
}

func (s *MissionService) isSupervising(actor *user.User, m *mission.Mission) bool {
	return actor.ID == m.SupervisorID ||
		(actor.HasAnyScope(auth.ScopeMissionsWrite, auth.ScopeMissionsAll, auth.ScopeAll) && actor.ID != m.AssigneeID)
}

func (s *MissionService) loadParticipant(ctx context.Context, missionID kernel.MissionID, actorID kernel.UserID) (*user.User, *mission.Mission, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, nil, user.ErrUserNotFound().WithDetail("user_id", actorID.String())
	}
	if !actor.IsActive() {
		return nil, nil, user.ErrUserSuspended().WithDetail("user_id", actorID.String())
	}

	m, err := s.missionRepo.GetByID(ctx, missionID)
	if err != nil {
		return nil, nil, mission.ErrMissionNotFound().WithDetail("mission_id", missionID.String())
	}

	if actor.ID != m.AssigneeID && !s.isSupervising(actor, m) {
		return nil, nil, mission.ErrInsufficientPermissions().WithDetail("mission_id", missionID.String())
	}

	return actor, m, nil
}

func (s *MissionService) loadAssignee(ctx context.Context, missionID kernel.MissionID, actorID kernel.UserID) (*mission.Mission, error) {
	actor, m, err := s.loadParticipant(ctx, missionID, actorID)
	if err != nil {
		return nil, err
	}
	if actor.ID != m.AssigneeID {
		return nil, mission.ErrNotAssignee().WithDetail("mission_id", missionID.String())
	}
	if !actor.HasAnyScope(auth.ScopeMissionsProgress, auth.ScopeMissionsAll, auth.ScopeAll) {
		return nil, mission.ErrInsufficientPermissions().WithDetail("required_scope", auth.ScopeMissionsProgress)
	}
	return m, nil
}

func (s *MissionService) loadSupervisor(ctx context.Context, missionID kernel.MissionID, actorID kernel.UserID) (*mission.Mission, error) {
	actor, m, err := s.loadParticipant(ctx, missionID, actorID)
	if err != nil {
		return nil, err
	}
	if !s.isSupervising(actor, m) {
		return nil, mission.ErrInsufficientPermissions().WithDetail("mission_id", missionID.String())
	}
	return m, nil
}
