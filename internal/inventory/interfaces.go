package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

// Repository defines persistence operations for stock items and their ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateItem(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error)
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	ListItems(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.InventoryItem, int64, error)
	ListLowStockItems(ctx context.Context) ([]models.InventoryItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	CreateTransaction(ctx context.Context, txn *models.InventoryTransaction) (*models.InventoryTransaction, error)
	ListTransactions(ctx context.Context, itemID uuid.UUID, params pagination.Params) ([]models.InventoryTransaction, int64, error)
}
