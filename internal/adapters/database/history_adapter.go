package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/dateplanhq/dateplan/backend/internal/domain/entities"
	"github.com/dateplanhq/dateplan/backend/internal/domain/repositories"
	"github.com/dateplanhq/dateplan/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/dateplanhq/dateplan/backend/pkg/errors"
)

// HistoryAdapter implements activity history persistence in Postgres.
type HistoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHistoryAdapter creates a new history adapter.
func NewHistoryAdapter(client *postgres.Client) repositories.HistoryRepository {
	return &HistoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a history entry.
func (a *HistoryAdapter) Create(ctx context.Context, entry *entities.ActivityHistory) error {
	if entry == nil {
		return apperrors.NewInternalError("history entry is nil", fmt.Errorf("history entry is nil"))
	}

	record := goqu.Record{
		"id":                   entry.ID,
		"original_activity_id": entry.OriginalActivityID,
		"title":                entry.Title,
		"description":          entry.Description,
		"category":             entry.Category,
		"location":             entry.Location,
		"duration":             entry.Duration,
		"url":                  entry.URL,
		"image_url":            entry.ImageURL,
		"estimated_cost":       entry.EstimatedCost,
		"excitement":           entry.Excitement,
		"completed_date":       entry.CompletedDate,
		"event_start_date":     entry.EventStartDate,
		"event_end_date":       entry.EventEndDate,
		"event_notes":          entry.EventNotes,
		"created_at":           entry.CreatedAt,
	}

	query, args, err := a.db.Insert("activity_history").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build history insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create history entry", err)
	}

	return nil
}

// GetByID retrieves a history entry by ID.
func (a *HistoryAdapter) GetByID(ctx context.Context, id string) (*entities.ActivityHistory, error) {
	query, args, err := a.selectWithColor().
		Where(goqu.I("ah.id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build history select query", err)
	}

	entry, err := scanHistory(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("history entry with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get history entry", err)
	}

	return entry, nil
}

// Delete removes a history entry.
func (a *HistoryAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("activity_history").Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build history delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete history entry", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("history entry with id %s not found", id))
	}

	return nil
}

// List retrieves history entries, most recently completed first.
func (a *HistoryAdapter) List(ctx context.Context) ([]*entities.ActivityHistory, error) {
	query, args, err := a.selectWithColor().
		Order(goqu.I("ah.completed_date").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build history list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list history entries", err)
	}
	defer rows.Close()

	entries := []*entities.ActivityHistory{}
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan history entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate history entries", err)
	}

	return entries, nil
}

func (a *HistoryAdapter) selectWithColor() *goqu.SelectDataset {
	return a.db.From(goqu.T("activity_history").As("ah")).
		LeftJoin(
			goqu.T("categories").As("c"),
			goqu.On(goqu.I("ah.category").Eq(goqu.I("c.name"))),
		).
		Select(
			goqu.I("ah.id"), goqu.I("ah.original_activity_id"), goqu.I("ah.title"),
			goqu.I("ah.description"), goqu.I("ah.category"), goqu.I("ah.location"),
			goqu.I("ah.duration"), goqu.I("ah.url"), goqu.I("ah.image_url"),
			goqu.I("ah.estimated_cost"), goqu.I("ah.excitement"),
			goqu.I("ah.completed_date"), goqu.I("ah.event_start_date"),
			goqu.I("ah.event_end_date"), goqu.I("ah.event_notes"),
			goqu.I("ah.created_at"),
			goqu.I("c.color").As("category_color"),
		)
}

func scanHistory(row rowScanner) (*entities.ActivityHistory, error) {
	entry := &entities.ActivityHistory{}
	var originalID, color sql.NullString

	err := row.Scan(
		&entry.ID,
		&originalID,
		&entry.Title,
		&entry.Description,
		&entry.Category,
		&entry.Location,
		&entry.Duration,
		&entry.URL,
		&entry.ImageURL,
		&entry.EstimatedCost,
		&entry.Excitement,
		&entry.CompletedDate,
		&entry.EventStartDate,
		&entry.EventEndDate,
		&entry.EventNotes,
		&entry.CreatedAt,
		&color,
	)
	if err != nil {
		return nil, err
	}

	if originalID.Valid {
		entry.OriginalActivityID = &originalID.String
	}
	entry.CategoryColor = color.String

	return entry, nil
}
