package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"salespipeline/internal/models"
)

type LeadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &LeadRepository{db: db}
}

const leadColumns = `id, title, company, owner_id, stage, stage_entered_at,
	budget, authority, need, timeline,
	has_scraper_data, has_competitor_data, has_social_profiles, has_contact_verified,
	email_opens, website_visits, content_downloads, demo_requests,
	closing_confirmed, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*models.Lead, error) {
	l := &models.Lead{}
	err := row.Scan(
		&l.ID, &l.Title, &l.Company, &l.OwnerID, &l.Stage, &l.StageEnteredAt,
		&l.BANT.Budget, &l.BANT.Authority, &l.BANT.Need, &l.BANT.Timeline,
		&l.Intelligence.HasScraperData, &l.Intelligence.HasCompetitorData,
		&l.Intelligence.HasSocialProfiles, &l.Intelligence.HasContactVerified,
		&l.Engagement.EmailOpens, &l.Engagement.WebsiteVisits,
		&l.Engagement.ContentDownloads, &l.Engagement.DemoRequests,
		&l.ClosingConfirmed, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	const query = `
		INSERT INTO leads (
			title, company, owner_id, stage, stage_entered_at,
			budget, authority, need, timeline,
			has_scraper_data, has_competitor_data, has_social_profiles, has_contact_verified,
			email_opens, website_visits, content_downloads, demo_requests,
			closing_confirmed, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		lead.Title, lead.Company, lead.OwnerID, lead.Stage, lead.StageEnteredAt,
		lead.BANT.Budget, lead.BANT.Authority, lead.BANT.Need, lead.BANT.Timeline,
		lead.Intelligence.HasScraperData, lead.Intelligence.HasCompetitorData,
		lead.Intelligence.HasSocialProfiles, lead.Intelligence.HasContactVerified,
		lead.Engagement.EmailOpens, lead.Engagement.WebsiteVisits,
		lead.Engagement.ContentDownloads, lead.Engagement.DemoRequests,
		lead.ClosingConfirmed, lead.CreatedAt, lead.UpdatedAt,
	).Scan(&lead.ID)
}

// Update writes every mutable column except the stage, which only moves
// through UpdateStage.
func (r *LeadRepository) Update(ctx context.Context, lead *models.Lead) error {
	const query = `
		UPDATE leads
		SET title=$1, company=$2, owner_id=$3,
			budget=$4, authority=$5, need=$6, timeline=$7,
			has_scraper_data=$8, has_competitor_data=$9, has_social_profiles=$10, has_contact_verified=$11,
			email_opens=$12, website_visits=$13, content_downloads=$14, demo_requests=$15,
			closing_confirmed=$16, updated_at=$17
		WHERE id=$18`
	res, err := r.db.ExecContext(ctx, query,
		lead.Title, lead.Company, lead.OwnerID,
		lead.BANT.Budget, lead.BANT.Authority, lead.BANT.Need, lead.BANT.Timeline,
		lead.Intelligence.HasScraperData, lead.Intelligence.HasCompetitorData,
		lead.Intelligence.HasSocialProfiles, lead.Intelligence.HasContactVerified,
		lead.Engagement.EmailOpens, lead.Engagement.WebsiteVisits,
		lead.Engagement.ContentDownloads, lead.Engagement.DemoRequests,
		lead.ClosingConfirmed, lead.UpdatedAt, lead.ID,
	)
	if err != nil {
		return err
	}
	return expectRow(res, "lead", lead.ID)
}

// UpdateStage moves a lead and restarts its stage clock.
func (r *LeadRepository) UpdateStage(ctx context.Context, id int, stage models.Stage, enteredAt time.Time) error {
	const query = `UPDATE leads SET stage=$1, stage_entered_at=$2, updated_at=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, stage, enteredAt, enteredAt, id)
	if err != nil {
		return err
	}
	return expectRow(res, "lead", id)
}

func (r *LeadRepository) UpdateOwner(ctx context.Context, id, ownerID int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE leads SET owner_id=$1 WHERE id=$2`, ownerID, id)
	if err != nil {
		return err
	}
	return expectRow(res, "lead", id)
}

func (r *LeadRepository) GetByID(ctx context.Context, id int) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id=$1`
	lead, err := scanLead(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lead %d: %w", id, ErrNotFound)
	}
	return lead, err
}

func (r *LeadRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM leads WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectRow(res, "lead", id)
}

// List returns leads newest first.
func (r *LeadRepository) List(ctx context.Context, filter models.LeadFilter, limit, offset int) ([]*models.Lead, error) {
	conditions := []string{}
	args := []any{}
	argID := 1

	if filter.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argID))
		args = append(args, *filter.OwnerID)
		argID++
	}
	if filter.Stage != nil {
		conditions = append(conditions, fmt.Sprintf("stage = $%d", argID))
		args = append(args, *filter.Stage)
		argID++
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CountByStage returns the number of leads per stage. Stages without
// leads are reported as zero.
func (r *LeadRepository) CountByStage(ctx context.Context) (map[models.Stage]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT stage, COUNT(*) FROM leads GROUP BY stage`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[models.Stage]int, len(models.Stages))
	for _, s := range models.Stages {
		out[s] = 0
	}
	for rows.Next() {
		var stage models.Stage
		var n int
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, err
		}
		out[stage] = n
	}
	return out, rows.Err()
}

func expectRow(res sql.Result, entity string, id any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
	}
	return nil
}
