package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

// OrderItemInput is one requested line. Options are referenced by ID and
// re-priced from the menu, never trusted from the client.
type OrderItemInput struct {
	MenuItemID uuid.UUID
	Quantity   int
	Notes      *string
	OptionIDs  []uuid.UUID
}

// CreateOrderInput captures everything needed to open a tab.
type CreateOrderInput struct {
	UserID     uuid.UUID
	CustomerID *uuid.UUID
	TableID    *uuid.UUID
	Notes      *string
	Discount   int64
	Items      []OrderItemInput
}

// AddItemsInput appends lines to an existing order.
type AddItemsInput struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
	Items   []OrderItemInput
}

// UpdateOrderInput patches an order's header fields and, when Items is
// non-nil, replaces the unpaid lines with the desired state. Paid lines are
// never touched.
type UpdateOrderInput struct {
	OrderID    uuid.UUID
	UserID     uuid.UUID
	CustomerID *uuid.UUID
	TableID    *uuid.UUID
	Notes      *string
	Discount   *int64
	Items      []OrderItemInput
}

// UpdateStatusInput moves an order through its lifecycle.
type UpdateStatusInput struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
	Status  enums.OrderStatus
}

// PayItemsInput settles a subset of an order's lines.
type PayItemsInput struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
	ItemIDs []uuid.UUID
}

// MergeTablesInput folds the source table's open order into the target table.
type MergeTablesInput struct {
	SourceTableID uuid.UUID
	TargetTableID uuid.UUID
	UserID        uuid.UUID
}

// MoveTableInput relocates one order, or every active order, to another table.
type MoveTableInput struct {
	FromTableID uuid.UUID
	ToTableID   uuid.UUID
	OrderID     *uuid.UUID
	UserID      uuid.UUID
}

// ListFilters describe the inputs supported by the order list.
type ListFilters struct {
	Status   *enums.OrderStatus
	TableID  *uuid.UUID
	UserID   *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
}

// OrderList wraps one page of orders plus page metadata.
type OrderList struct {
	Orders []models.Order  `json:"orders"`
	Meta   pagination.Meta `json:"meta"`
}
