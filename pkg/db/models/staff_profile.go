package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StaffProfile carries HR details attached to a user account.
type StaffProfile struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID           uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"user_id"`
	Position         *string         `gorm:"column:position" json:"position"`
	Salary           decimal.Decimal `gorm:"column:salary;type:numeric(14,2);not null;default:0" json:"salary"`
	HireDate         *time.Time      `gorm:"column:hire_date;type:date" json:"hire_date"`
	Address          *string         `gorm:"column:address" json:"address"`
	EmergencyContact *string         `gorm:"column:emergency_contact" json:"emergency_contact"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
