package repositories

import (
	"context"

	"github.com/dateplanhq/dateplan/backend/internal/domain/entities"
)

// HistoryRepository defines the interface for activity history operations
type HistoryRepository interface {
	// Create creates a new history entry
	Create(ctx context.Context, entry *entities.ActivityHistory) error

	// GetByID retrieves a history entry by ID
	GetByID(ctx context.Context, id string) (*entities.ActivityHistory, error)

	// Delete deletes a history entry
	Delete(ctx context.Context, id string) error

	// List retrieves history entries, most recently completed first
	List(ctx context.Context) ([]*entities.ActivityHistory, error)
}
