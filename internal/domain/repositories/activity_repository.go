package repositories

import (
	"context"

	"github.com/dateplanhq/dateplan/backend/internal/domain/entities"
)

// ActivityRepository defines the interface for activity data operations
type ActivityRepository interface {
	// Create creates a new activity
	Create(ctx context.Context, activity *entities.Activity) error

	// GetByID retrieves an activity by ID
	GetByID(ctx context.Context, id string) (*entities.Activity, error)

	// Update updates an activity
	Update(ctx context.Context, activity *entities.Activity) error

	// Delete deletes an activity
	Delete(ctx context.Context, id string) error

	// List retrieves all activities, newest first
	List(ctx context.Context) ([]*entities.Activity, error)
}

// CategoryRepository defines the interface for category lookups
type CategoryRepository interface {
	// List retrieves all categories ordered by name
	List(ctx context.Context) ([]*entities.Category, error)
}
