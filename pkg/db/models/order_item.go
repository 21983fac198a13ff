package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/pkg/db/types"
)

// OrderItem snapshots one line of an order. UnitPrice is resolved from the
// menu at creation time as the base price plus the selected option extras,
// and never changes afterwards.
type OrderItem struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID    uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	MenuItemID uuid.UUID         `gorm:"column:menu_item_id;type:uuid;not null;index" json:"menu_item_id"`
	Quantity   int               `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice  int64             `gorm:"column:unit_price;not null" json:"unit_price"`
	Subtotal   int64             `gorm:"column:subtotal;not null" json:"subtotal"`
	Notes      *string           `gorm:"column:notes" json:"notes"`
	Options    types.ItemOptions `gorm:"column:options;type:jsonb;serializer:json" json:"options"`
	IsPaid     bool              `gorm:"column:is_paid;not null;default:false" json:"is_paid"`
	MenuItem   *MenuItem         `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
