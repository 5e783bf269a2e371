package evaluationinfra

import (
	"context"
	"database/sql"

	"github.com/adilnv/internlink/internship/evaluation"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresEvaluationRepository struct {
	db *sqlx.DB
}

func NewPostgresEvaluationRepository(db *sqlx.DB) evaluation.Repository {
	return &PostgresEvaluationRepository{db: db}
}

const selectColumns = `
	SELECT
		id, stage_id, evaluator_id, status,
		strengths, weaknesses, recommendations, recommend_hire,
		aggregate_score, evaluated_at, validated_at, validator_id,
		created_at, updated_at
	FROM evaluations
`

const insertRatingQuery = `
	INSERT INTO evaluation_ratings (evaluation_id, criterion_id, rating, comment)
	VALUES ($1, $2, $3, $4)
`

// CreateWithRatings persists the evaluation and its ratings in one
// transaction. The unique constraint on stage_id enforces the
// one-evaluation-per-stage rule under concurrency.
func (r *PostgresEvaluationRepository) CreateWithRatings(ctx context.Context, e *evaluation.Evaluation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO evaluations (
			id, stage_id, evaluator_id, status,
			strengths, weaknesses, recommendations, recommend_hire,
			aggregate_score, evaluated_at, validated_at, validator_id,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
	`

	_, err = tx.ExecContext(
		ctx,
		query,
		e.ID,
		e.StageID,
		e.EvaluatorID,
		e.Status,
		e.Strengths,
		e.Weaknesses,
		e.Recommendations,
		e.RecommendHire,
		e.AggregateScore,
		e.EvaluatedAt,
		e.ValidatedAt,
		e.ValidatorID,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return evaluation.ErrDuplicateEvaluation().WithDetail("stage_id", e.StageID.String())
	}
	if err != nil {
		return err
	}

	for _, rating := range e.Ratings {
		if _, err := tx.ExecContext(ctx, insertRatingQuery, e.ID, rating.CriterionID, rating.Rating, rating.Comment); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Update persists the evaluation's own fields
func (r *PostgresEvaluationRepository) Update(ctx context.Context, id kernel.EvaluationID, e *evaluation.Evaluation) error {
	query := `
		UPDATE evaluations
		SET
			status = $2,
			strengths = $3,
			weaknesses = $4,
			recommendations = $5,
			recommend_hire = $6,
			aggregate_score = $7,
			validated_at = $8,
			validator_id = $9,
			updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		id,
		e.Status,
		e.Strengths,
		e.Weaknesses,
		e.Recommendations,
		e.RecommendHire,
		e.AggregateScore,
		e.ValidatedAt,
		e.ValidatorID,
		e.UpdatedAt,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return evaluation.ErrEvaluationNotFound()
	}

	return nil
}

// ReplaceRatings swaps the rating set and the aggregate in one
// transaction
func (r *PostgresEvaluationRepository) ReplaceRatings(ctx context.Context, id kernel.EvaluationID, ratings []evaluation.Rating, aggregate *float64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM evaluation_ratings WHERE evaluation_id = $1`, id); err != nil {
		return err
	}
	for _, rating := range ratings {
		if _, err := tx.ExecContext(ctx, insertRatingQuery, id, rating.CriterionID, rating.Rating, rating.Comment); err != nil {
			return err
		}
	}

	result, err := tx.ExecContext(ctx, `UPDATE evaluations SET aggregate_score = $2, updated_at = NOW() WHERE id = $1`, id, aggregate)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return evaluation.ErrEvaluationNotFound()
	}

	return tx.Commit()
}

// UpdateAggregate persists a recomputed aggregate score
func (r *PostgresEvaluationRepository) UpdateAggregate(ctx context.Context, id kernel.EvaluationID, aggregate *float64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE evaluations SET aggregate_score = $2 WHERE id = $1`, id, aggregate)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return evaluation.ErrEvaluationNotFound()
	}
	return nil
}

// GetByID retrieves an evaluation and its ratings
func (r *PostgresEvaluationRepository) GetByID(ctx context.Context, id kernel.EvaluationID) (*evaluation.Evaluation, error) {
	var e evaluation.Evaluation
	err := r.db.GetContext(ctx, &e, selectColumns+`WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, evaluation.ErrEvaluationNotFound()
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadRatings(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByStageID retrieves the evaluation of one stage
func (r *PostgresEvaluationRepository) GetByStageID(ctx context.Context, stageID kernel.StageID) (*evaluation.Evaluation, error) {
	var e evaluation.Evaluation
	err := r.db.GetContext(ctx, &e, selectColumns+`WHERE stage_id = $1`, stageID)
	if err == sql.ErrNoRows {
		return nil, evaluation.ErrEvaluationNotFound()
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadRatings(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ExistsByStageID checks whether a stage already has an evaluation
func (r *PostgresEvaluationRepository) ExistsByStageID(ctx context.Context, stageID kernel.StageID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM evaluations WHERE stage_id = $1)`, stageID)
	return exists, err
}

func (r *PostgresEvaluationRepository) loadRatings(ctx context.Context, e *evaluation.Evaluation) error {
	query := `
		SELECT evaluation_id, criterion_id, rating, comment
		FROM evaluation_ratings
		WHERE evaluation_id = $1
		ORDER BY criterion_id
	`
	return r.db.SelectContext(ctx, &e.Ratings, query, e.ID)
}
