package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/pkg/enums"
)

// Customer is a loyalty program member. Tier is derived from Points and never
// set directly.
type Customer struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string             `gorm:"column:name;not null" json:"name"`
	Phone     *string            `gorm:"column:phone;uniqueIndex" json:"phone"`
	Email     *string            `gorm:"column:email" json:"email"`
	Points    int64              `gorm:"column:points;not null;default:0" json:"points"`
	Tier      enums.CustomerTier `gorm:"column:tier;type:text;not null;default:'regular'" json:"tier"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// CustomerPoint is an append-only loyalty ledger entry with a signed value.
type CustomerPoint struct {
	ID          uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID  uuid.UUID               `gorm:"column:customer_id;type:uuid;not null;index" json:"customer_id"`
	OrderID     *uuid.UUID              `gorm:"column:order_id;type:uuid" json:"order_id"`
	Points      int64                   `gorm:"column:points;not null" json:"points"`
	Type        enums.CustomerPointType `gorm:"column:type;type:text;not null" json:"type"`
	Description string                  `gorm:"column:description;not null;default:''" json:"description"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
