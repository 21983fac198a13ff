package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/pkg/enums"
)

// Order is one tab, usually tied to a table. Totals are maintained by the
// order service: Total reflects what is still owed across split payments,
// TotalAll the full value of everything ordered.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	CustomerID    *uuid.UUID        `gorm:"column:customer_id;type:uuid;index" json:"customer_id"`
	TableID       *uuid.UUID        `gorm:"column:table_id;type:uuid;index" json:"table_id"`
	OrderNumber   string            `gorm:"column:order_number;not null;uniqueIndex" json:"order_number"`
	Status        enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`
	Subtotal      int64             `gorm:"column:subtotal;not null;default:0" json:"subtotal"`
	Tax           int64             `gorm:"column:tax;not null;default:0" json:"tax"`
	Discount      int64             `gorm:"column:discount;not null;default:0" json:"discount"`
	Total         int64             `gorm:"column:total;not null;default:0" json:"total"`
	TotalAll      int64             `gorm:"column:total_all;not null;default:0" json:"total_all"`
	HighestTotal  int64             `gorm:"column:highest_total;not null;default:0" json:"highest_total"`
	Notes         *string           `gorm:"column:notes" json:"notes"`
	OrderHistory  string            `gorm:"column:order_history;not null;default:''" json:"order_history"`
	IsDeletedItem bool              `gorm:"column:is_deleted_item;not null;default:false" json:"is_deleted_item"`
	Items         []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Invoice       *Invoice          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"invoice,omitempty"`
	User          *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Customer      *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Table         *LayoutObject     `gorm:"foreignKey:TableID" json:"table,omitempty"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// AppendHistory joins one human-readable action onto the semicolon-separated
// activity log. Semicolons inside the entry are flattened to keep the log
// parseable.
func (o *Order) AppendHistory(entry string) {
	entry = strings.TrimSpace(strings.ReplaceAll(entry, ";", " "))
	if entry == "" {
		return
	}
	if o.OrderHistory == "" {
		o.OrderHistory = entry
		return
	}
	o.OrderHistory = o.OrderHistory + ";" + entry
}
