package models

import (
	"time"

	"github.com/google/uuid"
)

// Floor groups layout objects into one level of the venue.
type Floor struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string         `gorm:"column:name;not null" json:"name"`
	FloorNumber   int            `gorm:"column:floor_number;not null" json:"floor_number"`
	IsActive      bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	LayoutObjects []LayoutObject `gorm:"foreignKey:FloorID;constraint:OnDelete:CASCADE" json:"layout_objects,omitempty"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
