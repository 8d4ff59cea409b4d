package repositories

import (
	"context"
	"time"

	"github.com/dateplanhq/dateplan/backend/internal/domain/entities"
)

// EventFilter restricts a calendar listing to a date range. Nil bounds mean
// unbounded.
type EventFilter struct {
	Start *time.Time
	End   *time.Time
}

// CalendarRepository defines the interface for calendar event data operations
type CalendarRepository interface {
	// Create creates a new calendar event
	Create(ctx context.Context, event *entities.CalendarEvent) error

	// GetByID retrieves a calendar event by ID, with activity fields joined
	GetByID(ctx context.Context, id string) (*entities.CalendarEvent, error)

	// Update updates a calendar event
	Update(ctx context.Context, event *entities.CalendarEvent) error

	// Delete deletes a calendar event
	Delete(ctx context.Context, id string) error

	// List retrieves events ordered by start date, optionally range-filtered
	List(ctx context.Context, filter EventFilter) ([]*entities.CalendarEvent, error)

	// SetCompleted updates the completion flag of an event
	SetCompleted(ctx context.Context, id string, completed bool) error
}
