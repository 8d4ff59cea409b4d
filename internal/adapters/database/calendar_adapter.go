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

// CalendarAdapter implements calendar event persistence in Postgres.
type CalendarAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCalendarAdapter creates a new calendar adapter.
func NewCalendarAdapter(client *postgres.Client) repositories.CalendarRepository {
	return &CalendarAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a calendar event record.
func (a *CalendarAdapter) Create(ctx context.Context, event *entities.CalendarEvent) error {
	if event == nil {
		return apperrors.NewInternalError("event is nil", fmt.Errorf("event is nil"))
	}

	record := goqu.Record{
		"id":          event.ID,
		"activity_id": event.ActivityID,
		"title":       event.Title,
		"start_date":  event.StartDate,
		"end_date":    event.EndDate,
		"notes":       event.Notes,
		"completed":   event.Completed,
		"is_archived": event.IsArchived,
		"created_at":  event.CreatedAt,
		"updated_at":  event.UpdatedAt,
	}

	query, args, err := a.db.Insert("calendar_events").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build event insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create calendar event", err)
	}

	return nil
}

// GetByID retrieves a calendar event with activity fields joined.
func (a *CalendarAdapter) GetByID(ctx context.Context, id string) (*entities.CalendarEvent, error) {
	query, args, err := a.selectWithActivity().
		Where(goqu.I("ce.id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build event select query", err)
	}

	event, err := scanCalendarEvent(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("calendar event with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get calendar event", err)
	}

	return event, nil
}

// Update updates a calendar event record.
func (a *CalendarAdapter) Update(ctx context.Context, event *entities.CalendarEvent) error {
	record := goqu.Record{
		"activity_id": event.ActivityID,
		"title":       event.Title,
		"start_date":  event.StartDate,
		"end_date":    event.EndDate,
		"notes":       event.Notes,
		"completed":   event.Completed,
		"is_archived": event.IsArchived,
		"updated_at":  event.UpdatedAt,
	}

	query, args, err := a.db.Update("calendar_events").Set(record).Where(goqu.C("id").Eq(event.ID)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build event update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update calendar event", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("calendar event with id %s not found", event.ID))
	}

	return nil
}

// Delete removes a calendar event record.
func (a *CalendarAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("calendar_events").Where(goqu.C("id").Eq(id)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build event delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete calendar event", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("calendar event with id %s not found", id))
	}

	return nil
}

// List retrieves events ordered by start date, optionally range-filtered.
func (a *CalendarAdapter) List(ctx context.Context, filter repositories.EventFilter) ([]*entities.CalendarEvent, error) {
	dataset := a.selectWithActivity()
	if filter.Start != nil && filter.End != nil {
		dataset = dataset.Where(
			goqu.I("ce.start_date").Gte(*filter.Start),
			goqu.I("ce.end_date").Lte(*filter.End),
		)
	}

	query, args, err := dataset.Order(goqu.I("ce.start_date").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build event list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list calendar events", err)
	}
	defer rows.Close()

	events := []*entities.CalendarEvent{}
	for rows.Next() {
		event, err := scanCalendarEvent(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan calendar event", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate calendar events", err)
	}

	return events, nil
}

// SetCompleted updates the completion flag of an event.
func (a *CalendarAdapter) SetCompleted(ctx context.Context, id string, completed bool) error {
	query, args, err := a.db.Update("calendar_events").
		Set(goqu.Record{"completed": completed, "updated_at": goqu.L("NOW()")}).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build event completion query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update event completion", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("calendar event with id %s not found", id))
	}

	return nil
}

func (a *CalendarAdapter) selectWithActivity() *goqu.SelectDataset {
	return a.db.From(goqu.T("calendar_events").As("ce")).
		LeftJoin(
			goqu.T("activities").As("a"),
			goqu.On(goqu.I("ce.activity_id").Eq(goqu.I("a.id"))),
		).
		LeftJoin(
			goqu.T("categories").As("c"),
			goqu.On(goqu.I("a.category").Eq(goqu.I("c.name"))),
		).
		Select(
			goqu.I("ce.id"), goqu.I("ce.activity_id"), goqu.I("ce.title"),
			goqu.I("ce.start_date"), goqu.I("ce.end_date"), goqu.I("ce.notes"),
			goqu.I("ce.completed"), goqu.I("ce.is_archived"),
			goqu.I("ce.created_at"), goqu.I("ce.updated_at"),
			goqu.I("a.title").As("activity_title"), goqu.I("a.category"),
			goqu.I("a.location"), goqu.I("a.duration"),
			goqu.I("c.color").As("category_color"),
		)
}

func scanCalendarEvent(row rowScanner) (*entities.CalendarEvent, error) {
	event := &entities.CalendarEvent{}
	var activityID, activityTitle, category, location, color sql.NullString
	var duration sql.NullInt64

	err := row.Scan(
		&event.ID,
		&activityID,
		&event.Title,
		&event.StartDate,
		&event.EndDate,
		&event.Notes,
		&event.Completed,
		&event.IsArchived,
		&event.CreatedAt,
		&event.UpdatedAt,
		&activityTitle,
		&category,
		&location,
		&duration,
		&color,
	)
	if err != nil {
		return nil, err
	}

	if activityID.Valid {
		event.ActivityID = &activityID.String
	}
	event.ActivityTitle = activityTitle.String
	event.Category = category.String
	event.Location = location.String
	event.Duration = int(duration.Int64)
	event.CategoryColor = color.String

	return event, nil
}
