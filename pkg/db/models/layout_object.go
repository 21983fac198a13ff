package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/pkg/db/types"
	"github.com/haianhng/cafepos-backend/pkg/enums"
)

// LayoutObject is one element on the floor plan. Objects of type "table" can
// hold orders and reservations.
type LayoutObject struct {
	ID         uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FloorID    uuid.UUID              `gorm:"column:floor_id;type:uuid;not null;index" json:"floor_id"`
	Type       enums.LayoutObjectType `gorm:"column:type;type:text;not null" json:"type"`
	Name       string                 `gorm:"column:name;not null" json:"name"`
	PositionX  float64                `gorm:"column:position_x;not null;default:0" json:"position_x"`
	PositionY  float64                `gorm:"column:position_y;not null;default:0" json:"position_y"`
	Width      float64                `gorm:"column:width;not null;default:80" json:"width"`
	Height     float64                `gorm:"column:height;not null;default:80" json:"height"`
	Rotation   float64                `gorm:"column:rotation;not null;default:0" json:"rotation"`
	Properties types.JSONMap          `gorm:"column:properties;type:jsonb;serializer:json" json:"properties"`
	IsActive   bool                   `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt  time.Time              `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
