package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is a sellable product. Price is a whole-unit amount; options add
// their extra price on top at order time.
type MenuItem struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CategoryID  uuid.UUID        `gorm:"column:category_id;type:uuid;not null;index" json:"category_id"`
	Name        string           `gorm:"column:name;not null" json:"name"`
	Description *string          `gorm:"column:description" json:"description"`
	Price       int64            `gorm:"column:price;not null" json:"price"`
	ImageURL    *string          `gorm:"column:image_url" json:"image_url"`
	IsAvailable bool             `gorm:"column:is_available;not null;default:true" json:"is_available"`
	SortOrder   int              `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	Options     []MenuItemOption `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// MenuItemOption is a named add-on with a fixed surcharge.
type MenuItemOption struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	MenuItemID uuid.UUID `gorm:"column:menu_item_id;type:uuid;not null;index" json:"menu_item_id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	ExtraPrice int64     `gorm:"column:extra_price;not null;default:0" json:"extra_price"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
