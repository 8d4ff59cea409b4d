package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/dateplanhq/dateplan/backend/internal/domain/entities"
	"github.com/dateplanhq/dateplan/backend/internal/domain/repositories"
	"github.com/dateplanhq/dateplan/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/dateplanhq/dateplan/backend/pkg/errors"
)

// CategoryAdapter implements category lookups in Postgres.
type CategoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCategoryAdapter creates a new category adapter.
func NewCategoryAdapter(client *postgres.Client) repositories.CategoryRepository {
	return &CategoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List retrieves all categories ordered by name.
func (a *CategoryAdapter) List(ctx context.Context) ([]*entities.Category, error) {
	query, args, err := a.db.From("categories").
		Select("id", "name", "color", "created_at").
		Order(goqu.C("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build category list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list categories", err)
	}
	defer rows.Close()

	categories := []*entities.Category{}
	for rows.Next() {
		category := &entities.Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Color, &category.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan category", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate categories", err)
	}

	return categories, nil
}
