package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haianhng/cafepos-backend/pkg/enums"
)

// InventoryItem tracks a stock position. Quantity moves only through recorded
// transactions.
type InventoryItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	Unit        string          `gorm:"column:unit;not null" json:"unit"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:numeric(14,2);not null;default:0" json:"quantity"`
	MinQuantity decimal.Decimal `gorm:"column:min_quantity;type:numeric(14,2);not null;default:0" json:"min_quantity"`
	CostPerUnit int64           `gorm:"column:cost_per_unit;not null;default:0" json:"cost_per_unit"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// IsLowStock reports whether the position is at or below its reorder point.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity.LessThanOrEqual(i.MinQuantity)
}

// InventoryTransaction is an append-only stock ledger entry.
type InventoryTransaction struct {
	ID              uuid.UUID                      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InventoryItemID uuid.UUID                      `gorm:"column:inventory_item_id;type:uuid;not null;index" json:"inventory_item_id"`
	UserID          uuid.UUID                      `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	Type            enums.InventoryTransactionType `gorm:"column:type;type:text;not null" json:"type"`
	Quantity        decimal.Decimal                `gorm:"column:quantity;type:numeric(14,2);not null" json:"quantity"`
	Reason          *string                        `gorm:"column:reason" json:"reason"`
	User            *User                          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt       time.Time                      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
