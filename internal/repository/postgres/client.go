package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minatoh/spa-desk/internal/model"
	apperrors "github.com/minatoh/spa-desk/pkg/errors"
)

// The catalog snapshot taken at check-in is denormalized onto the clients
// table, so later catalog edits cannot leak into live assignments.
const clientColumns = `
	id, name, phone, gender, preferred_gender,
	service_id, service_name, service_category, service_duration,
	service_price, service_commission,
	status, type, assigned_therapist, waiting_since, scheduled_time,
	started_at, completed_at, priority, notes, created_at, updated_at
`

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
				$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		client.ID, client.Name, client.Phone, client.Gender, client.PreferredGender,
		client.Service.ID, client.Service.Name, client.Service.Category,
		client.Service.Duration, client.Service.Price, client.Service.Commission,
		client.Status, client.Type, client.AssignedTherapist, client.WaitingSince,
		client.ScheduledTime, client.StartedAt, client.CompletedAt,
		client.Priority, client.Notes, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *clientRepository) scanClient(row *sql.Row) (*model.Client, error) {
	var client model.Client
	err := row.Scan(
		&client.ID, &client.Name, &client.Phone, &client.Gender, &client.PreferredGender,
		&client.Service.ID, &client.Service.Name, &client.Service.Category,
		&client.Service.Duration, &client.Service.Price, &client.Service.Commission,
		&client.Status, &client.Type, &client.AssignedTherapist, &client.WaitingSince,
		&client.ScheduledTime, &client.StartedAt, &client.CompletedAt,
		&client.Priority, &client.Notes, &client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) scanClients(rows *sql.Rows) ([]*model.Client, error) {
	var clients []*model.Client
	for rows.Next() {
		var client model.Client
		err := rows.Scan(
			&client.ID, &client.Name, &client.Phone, &client.Gender, &client.PreferredGender,
			&client.Service.ID, &client.Service.Name, &client.Service.Category,
			&client.Service.Duration, &client.Service.Price, &client.Service.Commission,
			&client.Status, &client.Type, &client.AssignedTherapist, &client.WaitingSince,
			&client.ScheduledTime, &client.StartedAt, &client.CompletedAt,
			&client.Priority, &client.Notes, &client.CreatedAt, &client.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		clients = append(clients, &client)
	}
	return clients, rows.Err()
}

func (r *clientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	client, err := r.scanClient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("client", err)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	query := `
		UPDATE clients
		SET name = $1, phone = $2, status = $3, assigned_therapist = $4,
			scheduled_time = $5, started_at = $6, completed_at = $7,
			priority = $8, notes = $9, updated_at = $10
		WHERE id = $11
	`
	client.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		client.Name, client.Phone, client.Status, client.AssignedTherapist,
		client.ScheduledTime, client.StartedAt, client.CompletedAt,
		client.Priority, client.Notes, client.UpdatedAt, client.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("client", nil)
	}
	return nil
}

func (r *clientRepository) ListWaiting(ctx context.Context) ([]*model.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE status = $1
		ORDER BY priority
	`
	rows, err := r.db.QueryContext(ctx, query, model.ClientStatusWaiting)
	if err != nil {
		return nil, fmt.Errorf("failed to list waiting clients: %w", err)
	}
	defer rows.Close()

	clients, err := r.scanClients(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan waiting clients: %w", err)
	}
	return clients, nil
}

func (r *clientRepository) ListCompletedBetween(ctx context.Context, from, to time.Time) ([]*model.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE status = $1 AND completed_at >= $2 AND completed_at < $3
		ORDER BY completed_at
	`
	rows, err := r.db.QueryContext(ctx, query, model.ClientStatusCompleted, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed clients: %w", err)
	}
	defer rows.Close()

	clients, err := r.scanClients(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan completed clients: %w", err)
	}
	return clients, nil
}

func (r *clientRepository) UpdatePriorities(ctx context.Context, priorities map[uuid.UUID]int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for id, priority := range priorities {
		if _, err := tx.ExecContext(ctx,
			`UPDATE clients SET priority = $1, updated_at = $2 WHERE id = $3`,
			priority, now, id,
		); err != nil {
			return fmt.Errorf("failed to update client priority: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit priority update: %w", err)
	}
	return nil
}
