package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/pkg/enums"
)

// Invoice is the one-per-order billing snapshot taken when an order completes.
type Invoice struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID        uuid.UUID           `gorm:"column:order_id;type:uuid;not null;uniqueIndex" json:"order_id"`
	InvoiceNumber  string              `gorm:"column:invoice_number;not null;uniqueIndex" json:"invoice_number"`
	Subtotal       int64               `gorm:"column:subtotal;not null" json:"subtotal"`
	TaxRate        float64             `gorm:"column:tax_rate;not null;default:0" json:"tax_rate"`
	TaxAmount      int64               `gorm:"column:tax_amount;not null;default:0" json:"tax_amount"`
	DiscountAmount int64               `gorm:"column:discount_amount;not null;default:0" json:"discount_amount"`
	Total          int64               `gorm:"column:total;not null" json:"total"`
	PaymentStatus  enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'unpaid'" json:"payment_status"`
	Order          *Order              `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Payments       []Payment           `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TotalPaid sums the recorded payments.
func (i *Invoice) TotalPaid() int64 {
	var paid int64
	for _, p := range i.Payments {
		paid += p.Amount
	}
	return paid
}

// Payment is one settlement against an invoice.
type Payment struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceID       uuid.UUID           `gorm:"column:invoice_id;type:uuid;not null;index" json:"invoice_id"`
	Amount          int64               `gorm:"column:amount;not null" json:"amount"`
	PaymentMethod   enums.PaymentMethod `gorm:"column:payment_method;type:text;not null;default:'cash'" json:"payment_method"`
	ReferenceNumber *string             `gorm:"column:reference_number" json:"reference_number"`
	PaidAt          time.Time           `gorm:"column:paid_at;not null" json:"paid_at"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
