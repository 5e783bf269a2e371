package missioninfra

import (
	"context"
	"database/sql"

	"github.com/adilnv/internlink/internship/mission"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

type PostgresMissionRepository struct {
	db *sqlx.DB
}

func NewPostgresMissionRepository(db *sqlx.DB) mission.Repository {
	return &PostgresMissionRepository{db: db}
}

const selectColumns = `
	SELECT
		id, stage_id, supervisor_id, assignee_id, title, description,
		priority, status, completion_percent,
		deliverables_expected, deliverables_provided, tools_used,
		feedback, cancel_reason, score,
		assigned_at, planned_start, planned_end, actual_start, actual_end,
		created_at, updated_at
	FROM missions
`

// Create creates a new mission
func (r *PostgresMissionRepository) Create(ctx context.Context, m *mission.Mission) error {
	query := `
		INSERT INTO missions (
			id, stage_id, supervisor_id, assignee_id, title, description,
			priority, status, completion_percent,
			deliverables_expected, deliverables_provided, tools_used,
			feedback, cancel_reason, score,
			assigned_at, planned_start, planned_end, actual_start, actual_end,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		m.ID,
		m.StageID,
		m.SupervisorID,
		m.AssigneeID,
		m.Title,
		m.Description,
		m.Priority,
		m.Status,
		m.CompletionPercent,
		m.DeliverablesExpected,
		m.DeliverablesProvided,
		m.ToolsUsed,
		m.Feedback,
		m.CancelReason,
		m.Score,
		m.AssignedAt,
		m.PlannedStart,
		m.PlannedEnd,
		m.ActualStart,
		m.ActualEnd,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

// Update updates an existing mission
func (r *PostgresMissionRepository) Update(ctx context.Context, id kernel.MissionID, m *mission.Mission) error {
	query := `
		UPDATE missions
		SET
			title = $2,
			description = $3,
			priority = $4,
			status = $5,
			completion_percent = $6,
			deliverables_expected = $7,
			deliverables_provided = $8,
			tools_used = $9,
			feedback = $10,
			cancel_reason = $11,
			score = $12,
			planned_start = $13,
			planned_end = $14,
			actual_start = $15,
			actual_end = $16,
			updated_at = $17
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		id,
		m.Title,
		m.Description,
		m.Priority,
		m.Status,
		m.CompletionPercent,
		m.DeliverablesExpected,
		m.DeliverablesProvided,
		m.ToolsUsed,
		m.Feedback,
		m.CancelReason,
		m.Score,
		m.PlannedStart,
		m.PlannedEnd,
		m.ActualStart,
		m.ActualEnd,
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return mission.ErrMissionNotFound()
	}

	return nil
}

// GetByID retrieves a mission by ID
func (r *PostgresMissionRepository) GetByID(ctx context.Context, id kernel.MissionID) (*mission.Mission, error) {
	var m mission.Mission
	err := r.db.GetContext(ctx, &m, selectColumns+`WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, mission.ErrMissionNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Delete deletes a mission by ID
func (r *PostgresMissionRepository) Delete(ctx context.Context, id kernel.MissionID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM missions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return mission.ErrMissionNotFound()
	}
	return nil
}

// ListByStage retrieves missions of one stage
func (r *PostgresMissionRepository) ListByStage(ctx context.Context, stageID kernel.StageID, pagination kernel.PaginationOptions) (*kernel.Paginated[mission.Mission], error) {
	return r.list(ctx, `WHERE stage_id = $1`, stageID, pagination)
}

// ListByAssignee retrieves missions assigned to one intern
func (r *PostgresMissionRepository) ListByAssignee(ctx context.Context, assigneeID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[mission.Mission], error) {
	return r.list(ctx, `WHERE assignee_id = $1`, assigneeID, pagination)
}

func (r *PostgresMissionRepository) list(ctx context.Context, where string, arg any, pagination kernel.PaginationOptions) (*kernel.Paginated[mission.Mission], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM missions `+where, arg); err != nil {
		return nil, err
	}

	query := selectColumns + where + `
		ORDER BY assigned_at DESC
		LIMIT $2 OFFSET $3
	`

	var missions []mission.Mission
	if err := r.db.SelectContext(ctx, &missions, query, arg, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, err
	}

	return &kernel.Paginated[mission.Mission]{
		Items: missions,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(missions) == 0,
	}, nil
}
