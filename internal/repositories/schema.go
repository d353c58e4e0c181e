package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

const leadsTable = `
CREATE TABLE IF NOT EXISTS leads (
	id %s,
	title TEXT NOT NULL,
	company TEXT NOT NULL DEFAULT '',
	owner_id INTEGER NOT NULL DEFAULT 0,
	stage TEXT NOT NULL,
	stage_entered_at TIMESTAMP NOT NULL,
	budget DOUBLE PRECISION NOT NULL DEFAULT 0,
	authority DOUBLE PRECISION NOT NULL DEFAULT 0,
	need DOUBLE PRECISION NOT NULL DEFAULT 0,
	timeline DOUBLE PRECISION NOT NULL DEFAULT 0,
	has_scraper_data BOOLEAN NOT NULL DEFAULT FALSE,
	has_competitor_data BOOLEAN NOT NULL DEFAULT FALSE,
	has_social_profiles BOOLEAN NOT NULL DEFAULT FALSE,
	has_contact_verified BOOLEAN NOT NULL DEFAULT FALSE,
	email_opens INTEGER NOT NULL DEFAULT 0,
	website_visits INTEGER NOT NULL DEFAULT 0,
	content_downloads INTEGER NOT NULL DEFAULT 0,
	demo_requests INTEGER NOT NULL DEFAULT 0,
	closing_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

const workOrdersTable = `
CREATE TABLE IF NOT EXISTS work_orders (
	id %s,
	dispatch_id TEXT NOT NULL UNIQUE,
	lead_id TEXT NOT NULL,
	specialist TEXT NOT NULL,
	action TEXT NOT NULL,
	priority TEXT NOT NULL,
	reason TEXT NOT NULL DEFAULT '',
	lead_data TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	last_error TEXT,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

const workOrdersLeadIndex = `CREATE INDEX IF NOT EXISTS idx_work_orders_lead ON work_orders (lead_id)`

// Migrate creates the tables for the given driver ("postgres" or "sqlite").
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	idColumn := "BIGSERIAL PRIMARY KEY"
	if strings.HasPrefix(driver, "sqlite") {
		idColumn = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	stmts := []string{
		fmt.Sprintf(leadsTable, idColumn),
		fmt.Sprintf(workOrdersTable, idColumn),
		workOrdersLeadIndex,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
