package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"salespipeline/internal/models"
)

type WorkOrderRepository interface {
	Store(ctx context.Context, wo *models.WorkOrder) error
	FindByID(ctx context.Context, id int64) (*models.WorkOrder, error)
	FindAll(ctx context.Context, filter models.WorkOrderFilter) ([]models.WorkOrder, error)
	UpdateStatus(ctx context.Context, id int64, to models.WorkOrderStatus, lastErr *string) error
}

type workOrderRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewWorkOrderRepository(db *sql.DB) WorkOrderRepository {
	return &workOrderRepository{db: db, now: time.Now}
}

const workOrderColumns = `id, dispatch_id, lead_id, specialist, action, priority, reason,
	lead_data, status, last_error, created_at, updated_at`

func (r *workOrderRepository) Store(ctx context.Context, wo *models.WorkOrder) error {
	now := r.now().UTC()
	if wo.CreatedAt.IsZero() {
		wo.CreatedAt = now
	}
	wo.UpdatedAt = now
	if wo.Status == "" {
		wo.Status = models.WorkOrderPending
	}
	query := `
		INSERT INTO work_orders (
			dispatch_id, lead_id, specialist, action, priority, reason,
			lead_data, status, last_error, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		wo.DispatchID, wo.LeadID, wo.Specialist, wo.Action, wo.Priority, wo.Reason,
		wo.LeadData, wo.Status, wo.LastError, wo.CreatedAt, wo.UpdatedAt,
	).Scan(&wo.ID)
}

func scanWorkOrder(row rowScanner, wo *models.WorkOrder) error {
	return row.Scan(
		&wo.ID, &wo.DispatchID, &wo.LeadID, &wo.Specialist, &wo.Action, &wo.Priority,
		&wo.Reason, &wo.LeadData, &wo.Status, &wo.LastError, &wo.CreatedAt, &wo.UpdatedAt,
	)
}

func (r *workOrderRepository) FindByID(ctx context.Context, id int64) (*models.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1`
	wo := &models.WorkOrder{}
	if err := scanWorkOrder(r.db.QueryRowContext(ctx, query, id), wo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work order %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return wo, nil
}

// FindAll returns the most urgent work first, oldest first within a
// priority.
func (r *workOrderRepository) FindAll(ctx context.Context, filter models.WorkOrderFilter) ([]models.WorkOrder, error) {
	baseQuery := `SELECT ` + workOrderColumns + ` FROM work_orders`

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.LeadID != nil {
		conditions = append(conditions, fmt.Sprintf("lead_id = $%d", argID))
		args = append(args, *filter.LeadID)
		argID++
	}
	if filter.Specialist != nil {
		conditions = append(conditions, fmt.Sprintf("specialist = $%d", argID))
		args = append(args, *filter.Specialist)
		argID++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += ` ORDER BY CASE priority
		WHEN 'critical' THEN 0 WHEN 'high' THEN 1 WHEN 'normal' THEN 2 ELSE 3 END,
		created_at ASC, id ASC`

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	baseQuery += fmt.Sprintf(" LIMIT $%d", argID)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.WorkOrder{}
	for rows.Next() {
		var wo models.WorkOrder
		if err := scanWorkOrder(rows, &wo); err != nil {
			return nil, err
		}
		out = append(out, wo)
	}
	return out, rows.Err()
}

func (r *workOrderRepository) UpdateStatus(ctx context.Context, id int64, to models.WorkOrderStatus, lastErr *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE work_orders SET status = $1, last_error = $2, updated_at = $3 WHERE id = $4`,
		to, lastErr, r.now().UTC(), id,
	)
	if err != nil {
		return err
	}
	return expectRow(res, "work order", id)
}
