package menu

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

// Repository defines persistence operations for categories, items and options.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context, includeInactive bool) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	ListItems(ctx context.Context, params pagination.Params, filters ItemFilters) ([]models.MenuItem, int64, error)
	UpdateItem(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteItem(ctx context.Context, id uuid.UUID) error

	CreateOption(ctx context.Context, option *models.MenuItemOption) (*models.MenuItemOption, error)
	FindOptionByID(ctx context.Context, id uuid.UUID) (*models.MenuItemOption, error)
	UpdateOption(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteOption(ctx context.Context, id uuid.UUID) error
}
