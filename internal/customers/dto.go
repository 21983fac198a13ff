package customers

import (
	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

// CreateInput registers a loyalty member.
type CreateInput struct {
	Name  string
	Phone *string
	Email *string
}

// UpdateInput edits a member. Nil fields are left untouched. Points and tier
// are deliberately absent: the balance moves only through the ledger.
type UpdateInput struct {
	ID    uuid.UUID
	Name  *string
	Phone *string
	Email *string
}

// PointsInput appends a ledger entry. Points must be positive; the direction
// comes from the operation (earn or redeem).
type PointsInput struct {
	CustomerID  uuid.UUID
	OrderID     *uuid.UUID
	Points      int64
	Description string
}

// ListFilters describe the inputs supported by the customer list.
type ListFilters struct {
	Search *string
	Tier   *enums.CustomerTier
}

// CustomerList wraps one page of customers plus page metadata.
type CustomerList struct {
	Customers []models.Customer `json:"customers"`
	Meta      pagination.Meta   `json:"meta"`
}

// PointList wraps one page of ledger entries plus page metadata.
type PointList struct {
	Points []models.CustomerPoint `json:"points"`
	Meta   pagination.Meta        `json:"meta"`
}
