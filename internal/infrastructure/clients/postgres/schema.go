package postgres

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		color TEXT NOT NULL DEFAULT '#3498db',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS activities (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT 'Entertainment',
		location TEXT NOT NULL DEFAULT '',
		duration INTEGER NOT NULL DEFAULT 60,
		url TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		estimated_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		excitement INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS calendar_events (
		id TEXT PRIMARY KEY,
		activity_id TEXT REFERENCES activities (id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		is_archived BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS activity_history (
		id TEXT PRIMARY KEY,
		original_activity_id TEXT REFERENCES activities (id) ON DELETE SET NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT 'Entertainment',
		location TEXT NOT NULL DEFAULT '',
		duration INTEGER NOT NULL DEFAULT 60,
		url TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		estimated_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
		excitement INTEGER NOT NULL DEFAULT 0,
		completed_date TIMESTAMPTZ NOT NULL,
		event_start_date TIMESTAMPTZ NOT NULL,
		event_end_date TIMESTAMPTZ NOT NULL,
		event_notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_calendar_events_start_date ON calendar_events (start_date)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_history_completed_date ON activity_history (completed_date DESC)`,
}

// defaultCategories is the fixed category set the normalizer infers into.
var defaultCategories = []struct {
	Name  string
	Color string
}{
	{"Food & Dining", "#8e44ad"},
	{"Entertainment", "#3498db"},
	{"Outdoor", "#16a085"},
	{"Relaxation", "#27ae60"},
	{"Adventure", "#f39c12"},
	{"Travel", "#34495e"},
	{"Date Night", "#e74c3c"},
	{"Cultural", "#9b59b6"},
	{"Shopping", "#d35400"},
}

// InitSchema creates the application tables and seeds the category set.
// All statements are idempotent so startup can run this unconditionally.
func (c *Client) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	for _, cat := range defaultCategories {
		_, err := c.db.ExecContext(ctx,
			`INSERT INTO categories (name, color) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			cat.Name, cat.Color,
		)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.Name, err)
		}
	}

	return nil
}
