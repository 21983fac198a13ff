package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/pkg/enums"
)

// Shift is a scheduled work window for a staff member on a given date.
// Date is YYYY-MM-DD, times are HH:MM.
type Shift struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Date      string            `gorm:"column:date;not null;index" json:"date"`
	StartTime string            `gorm:"column:start_time;not null" json:"start_time"`
	EndTime   string            `gorm:"column:end_time;not null" json:"end_time"`
	Status    enums.ShiftStatus `gorm:"column:status;type:text;not null;default:scheduled" json:"status"`
	Note      *string           `gorm:"column:note" json:"note"`
	User      *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
