package staff

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

// UpsertProfileInput creates or edits the HR details of a user.
type UpsertProfileInput struct {
	UserID           uuid.UUID
	Position         *string
	Salary           *decimal.Decimal
	HireDate         *time.Time
	Address          *string
	EmergencyContact *string
}

// CreateShiftInput schedules a work window. Date is YYYY-MM-DD, times HH:MM.
type CreateShiftInput struct {
	UserID    uuid.UUID
	Date      string
	StartTime string
	EndTime   string
	Note      *string
}

// UpdateShiftInput edits a scheduled shift. Nil fields are left untouched.
type UpdateShiftInput struct {
	ID        uuid.UUID
	Date      *string
	StartTime *string
	EndTime   *string
	Status    *enums.ShiftStatus
	Note      *string
}

// CheckInInput opens the attendance record for today.
type CheckInInput struct {
	UserID uuid.UUID
}

// CheckOutInput closes today's attendance record.
type CheckOutInput struct {
	UserID uuid.UUID
}

// ShiftFilters describe the inputs supported by the shift list.
type ShiftFilters struct {
	UserID *uuid.UUID
	Date   *string
	Status *enums.ShiftStatus
}

// AttendanceFilters describe the inputs supported by the attendance list.
type AttendanceFilters struct {
	UserID   *uuid.UUID
	DateFrom *string
	DateTo   *string
}

// ShiftList wraps one page of shifts plus page metadata.
type ShiftList struct {
	Shifts []models.Shift  `json:"shifts"`
	Meta   pagination.Meta `json:"meta"`
}

// AttendanceList wraps one page of attendance records plus page metadata.
type AttendanceList struct {
	Records []models.Attendance `json:"records"`
	Meta    pagination.Meta     `json:"meta"`
}
