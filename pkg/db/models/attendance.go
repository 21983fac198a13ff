package models

import (
	"time"

	"github.com/google/uuid"
)

// Attendance records one check-in (and eventual check-out) per user per date.
// ShiftID links the record to the scheduled shift on the same date when one
// exists.
type Attendance struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:idx_attendance_user_date,unique" json:"user_id"`
	ShiftID    *uuid.UUID `gorm:"column:shift_id;type:uuid" json:"shift_id"`
	Date       string     `gorm:"column:date;not null;index:idx_attendance_user_date,unique" json:"date"`
	CheckInAt  time.Time  `gorm:"column:check_in_at;not null" json:"check_in_at"`
	CheckOutAt *time.Time `gorm:"column:check_out_at" json:"check_out_at"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Shift      *Shift     `gorm:"foreignKey:ShiftID" json:"shift,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
