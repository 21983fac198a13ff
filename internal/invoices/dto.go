package invoices

import (
	"time"

	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

// GenerateInput requests an invoice for a completed order.
type GenerateInput struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
}

// AddPaymentInput records a settlement against an invoice. Method defaults to
// cash when empty.
type AddPaymentInput struct {
	InvoiceID       uuid.UUID
	UserID          uuid.UUID
	Amount          int64
	Method          enums.PaymentMethod
	ReferenceNumber *string
}

// ListFilters describe the inputs supported by the invoice list.
type ListFilters struct {
	PaymentStatus *enums.PaymentStatus
	DateFrom      *time.Time
	DateTo        *time.Time
}

// InvoiceList wraps one page of invoices plus page metadata.
type InvoiceList struct {
	Invoices []models.Invoice `json:"invoices"`
	Meta     pagination.Meta  `json:"meta"`
}
