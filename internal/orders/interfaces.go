package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

// Repository defines persistence operations for orders and their items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateItems(ctx context.Context, items []models.OrderItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindActiveByTable(ctx context.Context, tableID uuid.UUID) (*models.Order, error)
	ListActive(ctx context.Context) ([]models.Order, error)
	ListActiveByTable(ctx context.Context, tableID uuid.UUID) ([]models.Order, error)
	ListByTable(ctx context.Context, tableID uuid.UUID) ([]models.Order, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Order, int64, error)
	CountByNumberPrefix(ctx context.Context, prefix string) (int64, error)
	Save(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	DeleteUnpaidItems(ctx context.Context, orderID uuid.UUID) error
	MarkItemsPaid(ctx context.Context, orderID uuid.UUID, itemIDs []uuid.UUID) error
	FindMenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MenuItem, error)
	FindTable(ctx context.Context, tableID uuid.UUID) (*models.LayoutObject, error)
}
