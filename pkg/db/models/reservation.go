package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/pkg/enums"
)

// Reservation blocks a table on a date for the half-open window
// [StartTime, EndTime). Times are stored as HH:MM strings, Date as YYYY-MM-DD.
type Reservation struct {
	ID            uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TableID       uuid.UUID               `gorm:"column:table_id;type:uuid;not null;index" json:"table_id"`
	CustomerID    *uuid.UUID              `gorm:"column:customer_id;type:uuid" json:"customer_id"`
	CustomerName  string                  `gorm:"column:customer_name;not null" json:"customer_name"`
	CustomerPhone *string                 `gorm:"column:customer_phone" json:"customer_phone"`
	Date          string                  `gorm:"column:date;not null;index" json:"date"`
	StartTime     string                  `gorm:"column:start_time;not null" json:"start_time"`
	EndTime       string                  `gorm:"column:end_time;not null" json:"end_time"`
	Guests        int                     `gorm:"column:guests;not null;default:1" json:"guests"`
	Status        enums.ReservationStatus `gorm:"column:status;type:text;not null;default:pending" json:"status"`
	Note          *string                 `gorm:"column:note" json:"note"`
	Table         *LayoutObject           `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Customer      *Customer               `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CreatedAt     time.Time               `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time               `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
