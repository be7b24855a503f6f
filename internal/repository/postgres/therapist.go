package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/minatoh/spa-desk/internal/model"
	apperrors "github.com/minatoh/spa-desk/pkg/errors"
)

func (r *therapistRepository) Create(ctx context.Context, therapist *model.Therapist) error {
	query := `
		INSERT INTO therapists (
			id, name, gender, status, commission_rate,
			total_serves, today_serves, today_commission, rating,
			service_ids, current_client_id, next_client_id,
			service_end_time, last_served_time,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	if therapist.ID == uuid.Nil {
		therapist.ID = uuid.New()
	}
	therapist.CreatedAt = time.Now()
	therapist.UpdatedAt = therapist.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		therapist.ID,
		therapist.Name,
		therapist.Gender,
		therapist.Status,
		therapist.CommissionRate,
		therapist.TotalServes,
		therapist.TodayServes,
		therapist.TodayCommission,
		therapist.Rating,
		pq.Array(therapist.ServiceIDs),
		therapist.CurrentClientID,
		therapist.NextClientID,
		therapist.ServiceEndTime,
		therapist.LastServedTime,
		therapist.CreatedAt,
		therapist.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create therapist: %w", err)
	}
	return nil
}

func (r *therapistRepository) Get(ctx context.Context, id uuid.UUID) (*model.Therapist, error) {
	query := `
		SELECT id, name, gender, status, commission_rate,
			   total_serves, today_serves, today_commission, rating,
			   current_client_id, next_client_id, service_end_time, last_served_time,
			   created_at, updated_at
		FROM therapists
		WHERE id = $1
	`
	var therapist model.Therapist
	if err := r.db.GetContext(ctx, &therapist, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("therapist", err)
		}
		return nil, fmt.Errorf("failed to get therapist: %w", err)
	}
	if err := r.loadServiceIDs(ctx, &therapist); err != nil {
		return nil, err
	}
	return &therapist, nil
}

func (r *therapistRepository) Update(ctx context.Context, therapist *model.Therapist) error {
	query := `
		UPDATE therapists
		SET name = $1, gender = $2, status = $3, commission_rate = $4,
			total_serves = $5, today_serves = $6, today_commission = $7,
			rating = $8, service_ids = $9, current_client_id = $10,
			next_client_id = $11, service_end_time = $12, last_served_time = $13,
			updated_at = $14
		WHERE id = $15
	`
	therapist.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		therapist.Name,
		therapist.Gender,
		therapist.Status,
		therapist.CommissionRate,
		therapist.TotalServes,
		therapist.TodayServes,
		therapist.TodayCommission,
		therapist.Rating,
		pq.Array(therapist.ServiceIDs),
		therapist.CurrentClientID,
		therapist.NextClientID,
		therapist.ServiceEndTime,
		therapist.LastServedTime,
		therapist.UpdatedAt,
		therapist.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update therapist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("therapist", nil)
	}
	return nil
}

func (r *therapistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM therapists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete therapist: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("therapist", nil)
	}
	return nil
}

func (r *therapistRepository) List(ctx context.Context) ([]*model.Therapist, error) {
	query := `
		SELECT id, name, gender, status, commission_rate,
			   total_serves, today_serves, today_commission, rating,
			   current_client_id, next_client_id, service_end_time, last_served_time,
			   created_at, updated_at
		FROM therapists
		ORDER BY created_at
	`
	var therapists []*model.Therapist
	if err := r.db.SelectContext(ctx, &therapists, query); err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}
	for _, therapist := range therapists {
		if err := r.loadServiceIDs(ctx, therapist); err != nil {
			return nil, err
		}
	}
	return therapists, nil
}

func (r *therapistRepository) loadServiceIDs(ctx context.Context, therapist *model.Therapist) error {
	var ids []uuid.UUID
	err := r.db.QueryRowContext(ctx,
		`SELECT service_ids FROM therapists WHERE id = $1`, therapist.ID,
	).Scan(pq.Array(&ids))
	if err != nil {
		return fmt.Errorf("failed to load therapist service ids: %w", err)
	}
	therapist.ServiceIDs = ids
	return nil
}
