package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

// CreateItemInput registers a new stock position.
type CreateItemInput struct {
	Name        string
	Unit        string
	Quantity    decimal.Decimal
	MinQuantity decimal.Decimal
	CostPerUnit int64
}

// UpdateItemInput edits a stock position. Nil fields are left untouched.
// Quantity is deliberately absent: stock moves only through transactions.
type UpdateItemInput struct {
	ID          uuid.UUID
	Name        *string
	Unit        *string
	MinQuantity *decimal.Decimal
	CostPerUnit *int64
}

// RecordTransactionInput appends a ledger entry and moves the item quantity.
type RecordTransactionInput struct {
	ItemID   uuid.UUID
	UserID   uuid.UUID
	Type     enums.InventoryTransactionType
	Quantity decimal.Decimal
	Reason   *string
}

// TransactionResult carries the post-mutation item together with its
// reorder-point state so callers can surface low-stock warnings immediately.
type TransactionResult struct {
	Item     *models.InventoryItem `json:"item"`
	LowStock bool                  `json:"low_stock"`
}

// ListFilters describe the inputs supported by the item list.
type ListFilters struct {
	Search   *string
	LowStock bool
}

// ItemList wraps one page of stock items plus page metadata.
type ItemList struct {
	Items []models.InventoryItem `json:"items"`
	Meta  pagination.Meta        `json:"meta"`
}

// TransactionList wraps one page of ledger entries plus page metadata.
type TransactionList struct {
	Transactions []models.InventoryTransaction `json:"transactions"`
	Meta         pagination.Meta               `json:"meta"`
}
