package reservations

import (
	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

// CreateInput books a table for the half-open window [StartTime, EndTime).
type CreateInput struct {
	TableID       uuid.UUID
	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerPhone *string
	Date          string
	StartTime     string
	EndTime       string
	Guests        int
	Note          *string
}

// UpdateInput changes the mutable fields of a booking. Nil fields are left
// untouched. Moving the window or the table re-runs the conflict check.
type UpdateInput struct {
	ID            uuid.UUID
	TableID       *uuid.UUID
	Date          *string
	StartTime     *string
	EndTime       *string
	Guests        *int
	CustomerName  *string
	CustomerPhone *string
	Note          *string
}

// UpdateStatusInput moves a booking to a new status.
type UpdateStatusInput struct {
	ID     uuid.UUID
	Status enums.ReservationStatus
}

// AvailabilityInput asks which tables are already booked in a window.
type AvailabilityInput struct {
	Date      string
	StartTime string
	EndTime   string
}

// ListFilters describe the inputs supported by the reservation list.
type ListFilters struct {
	TableID *uuid.UUID
	Date    *string
	Status  *enums.ReservationStatus
}

// ReservationList wraps one page of reservations plus page metadata.
type ReservationList struct {
	Reservations []models.Reservation `json:"reservations"`
	Meta         pagination.Meta      `json:"meta"`
}
