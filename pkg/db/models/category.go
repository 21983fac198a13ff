package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups menu items for display ordering.
type Category struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string     `gorm:"column:name;not null" json:"name"`
	SortOrder int        `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	IsActive  bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	MenuItems []MenuItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"menu_items,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
