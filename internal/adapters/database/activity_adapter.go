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

// ActivityAdapter implements activity persistence in Postgres.
type ActivityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewActivityAdapter creates a new activity adapter.
func NewActivityAdapter(client *postgres.Client) repositories.ActivityRepository {
	return &ActivityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts an activity record.
func (a *ActivityAdapter) Create(ctx context.Context, activity *entities.Activity) error {
	if activity == nil {
		return apperrors.NewInternalError("activity is nil", fmt.Errorf("activity is nil"))
	}

	record := goqu.Record{
		"id":             activity.ID,
		"title":          activity.Title,
		"description":    activity.Description,
		"category":       activity.Category,
		"location":       activity.Location,
		"duration":       activity.Duration,
		"url":            activity.URL,
		"image_url":      activity.ImageURL,
		"estimated_cost": activity.EstimatedCost,
		"excitement":     activity.Excitement,
		"created_at":     activity.CreatedAt,
		"updated_at":     activity.UpdatedAt,
	}

	query, args, err := a.db.Insert("activities").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build activity insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create activity", err)
	}

	return nil
}

// GetByID retrieves an activity by ID with its category color joined.
func (a *ActivityAdapter) GetByID(ctx context.Context, id string) (*entities.Activity, error) {
	query, args, err := a.selectWithColor().
		Where(goqu.I("a.id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build activity select query", err)
	}

	activity, err := scanActivity(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("activity with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get activity", err)
	}

	return activity, nil
}

// Update updates an activity record.
func (a *ActivityAdapter) Update(ctx context.Context, activity *entities.Activity) error {
	record := goqu.Record{
		"title":          activity.Title,
		"description":    activity.Description,
		"category":       activity.Category,
		"location":       activity.Location,
		"duration":       activity.Duration,
		"url":            activity.URL,
		"image_url":      activity.ImageURL,
		"estimated_cost": activity.EstimatedCost,
		"excitement":     activity.Excitement,
		"updated_at":     activity.UpdatedAt,
	}

	query, args, err := a.db.Update("activities").Set(record).Where(goqu.C("id").Eq(activity.ID)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build activity update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update activity", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("activity with id %s not found", activity.ID))
	}

	return nil
}

// Delete removes an activity record.
func (a *ActivityAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("activities").Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build activity delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete activity", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("activity with id %s not found", id))
	}

	return nil
}

// List retrieves all activities, newest first.
func (a *ActivityAdapter) List(ctx context.Context) ([]*entities.Activity, error) {
	query, args, err := a.selectWithColor().
		Order(goqu.I("a.created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build activity list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list activities", err)
	}
	defer rows.Close()

	activities := []*entities.Activity{}
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan activity", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate activities", err)
	}

	return activities, nil
}

func (a *ActivityAdapter) selectWithColor() *goqu.SelectDataset {
	return a.db.From(goqu.T("activities").As("a")).
		LeftJoin(
			goqu.T("categories").As("c"),
			goqu.On(goqu.I("a.category").Eq(goqu.I("c.name"))),
		).
		Select(
			goqu.I("a.id"), goqu.I("a.title"), goqu.I("a.description"),
			goqu.I("a.category"), goqu.I("a.location"), goqu.I("a.duration"),
			goqu.I("a.url"), goqu.I("a.image_url"), goqu.I("a.estimated_cost"),
			goqu.I("a.excitement"), goqu.I("a.created_at"), goqu.I("a.updated_at"),
			goqu.I("c.color").As("category_color"),
		)
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanActivity(row rowScanner) (*entities.Activity, error) {
	activity := &entities.Activity{}
	var color sql.NullString

	err := row.Scan(
		&activity.ID,
		&activity.Title,
		&activity.Description,
		&activity.Category,
		&activity.Location,
		&activity.Duration,
		&activity.URL,
		&activity.ImageURL,
		&activity.EstimatedCost,
		&activity.Excitement,
		&activity.CreatedAt,
		&activity.UpdatedAt,
		&color,
	)
	if err != nil {
		return nil, err
	}

	activity.CategoryColor = color.String
	return activity, nil
}
