package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	pkgerrors "github.com/haianhng/cafepos-backend/pkg/errors"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines table booking operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Reservation, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*ReservationList, error)
	Update(ctx context.Context, input UpdateInput) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Reservation, error)
	TableAvailability(ctx context.Context, input AvailabilityInput) ([]uuid.UUID, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a reservation service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reservations repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// Create books a table after checking the window against every non-cancelled
// booking for the same table and date.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Reservation, error) {
	if input.TableID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "table id required")
	}
	if input.CustomerName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if input.Guests <= 0 {
		input.Guests = 1
	}
	if err := validateWindow(input.Date, input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	var result *models.Reservation
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindTable(ctx, input.TableID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "table not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load table")
		}

		if err := s.checkConflicts(ctx, repo, input.TableID, input.Date, input.StartTime, input.EndTime, uuid.Nil); err != nil {
			return err
		}

		reservation := &models.Reservation{
			TableID:       input.TableID,
			CustomerID:    input.CustomerID,
			CustomerName:  input.CustomerName,
			CustomerPhone: input.CustomerPhone,
			Date:          input.Date,
			StartTime:     input.StartTime,
			EndTime:       input.EndTime,
			Guests:        input.Guests,
			Status:        enums.ReservationStatusPending,
			Note:          input.Note,
		}
		created, err := repo.Create(ctx, reservation)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create reservation")
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reservation id required")
	}
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "reservation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reservation")
	}
	return reservation, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*ReservationList, error) {
	list, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reservations")
	}
	return &ReservationList{
		Reservations: list,
		Meta:         pagination.NewMeta(params, total),
	}, nil
}

// Update edits a booking. Moving the table, date or window re-runs the
// conflict check against the other bookings.
func (s *service) Update(ctx context.Context, input UpdateInput) (*models.Reservation, error) {
	if input.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reservation id required")
	}

	var result *models.Reservation
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		reservation, err := repo.FindByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "reservation not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reservation")
		}
		if isTerminalStatus(reservation.Status) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("reservation is %s and cannot be edited", reservation.Status))
		}

		tableID := reservation.TableID
		date := reservation.Date
		start := reservation.StartTime
		end := reservation.EndTime
		windowMoved := false

		updates := map[string]any{}
		if input.TableID != nil && *input.TableID != tableID {
			if _, err := repo.FindTable(ctx, *input.TableID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "table not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load table")
			}
			tableID = *input.TableID
			updates["table_id"] = tableID
			windowMoved = true
		}
		if input.Date != nil && *input.Date != date {
			date = *input.Date
			updates["date"] = date
			windowMoved = true
		}
		if input.StartTime != nil && *input.StartTime != start {
			start = *input.StartTime
			updates["start_time"] = start
			windowMoved = true
		}
		if input.EndTime != nil && *input.EndTime != end {
			end = *input.EndTime
			updates["end_time"] = end
			windowMoved = true
		}
		if windowMoved {
			if err := validateWindow(date, start, end); err != nil {
				return err
			}
			if err := s.checkConflicts(ctx, repo, tableID, date, start, end, reservation.ID); err != nil {
				return err
			}
		}

		if input.Guests != nil {
			if *input.Guests <= 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "guests must be positive")
			}
			updates["guests"] = *input.Guests
		}
		if input.CustomerName != nil {
			if *input.CustomerName == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
			}
			updates["customer_name"] = *input.CustomerName
		}
		if input.CustomerPhone != nil {
			updates["customer_phone"] = *input.CustomerPhone
		}
		if input.Note != nil {
			updates["note"] = *input.Note
		}

		if len(updates) > 0 {
			if err := repo.Update(ctx, reservation.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update reservation")
			}
		}

		updated, err := repo.FindByID(ctx, reservation.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload reservation")
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Reservation, error) {
	if input.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reservation id required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid reservation status")
	}

	var result *models.Reservation
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		reservation, err := repo.FindByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "reservation not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reservation")
		}
		if !canTransition(reservation.Status, input.Status) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot move reservation from %s to %s", reservation.Status, input.Status))
		}

		if err := repo.Update(ctx, reservation.ID, map[string]any{"status": input.Status}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update reservation status")
		}
		reservation.Status = input.Status
		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// TableAvailability returns the ids of tables that already have a conflicting
// booking in the window, so clients can grey them out.
func (s *service) TableAvailability(ctx context.Context, input AvailabilityInput) ([]uuid.UUID, error) {
	if err := validateWindow(input.Date, input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	reservations, err := s.repo.ListActiveForDate(ctx, input.Date)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reservations")
	}

	seen := map[uuid.UUID]bool{}
	var booked []uuid.UUID
	for _, r := range reservations {
		if !windowsOverlap(input.StartTime, input.EndTime, r.StartTime, r.EndTime) {
			continue
		}
		if !seen[r.TableID] {
			seen[r.TableID] = true
			booked = append(booked, r.TableID)
		}
	}
	return booked, nil
}

func (s *service) checkConflicts(ctx context.Context, repo Repository, tableID uuid.UUID, date, start, end string, skip uuid.UUID) error {
	existing, err := repo.ListActiveForTableDate(ctx, tableID, date)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load table reservations")
	}
	for _, r := range existing {
		if r.ID == skip {
			continue
		}
		if windowsOverlap(start, end, r.StartTime, r.EndTime) {
			return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("table already reserved from %s to %s", r.StartTime, r.EndTime))
		}
	}
	return nil
}

// windowsOverlap compares half-open [start, end) windows. HH:MM strings are
// zero-padded so plain string comparison orders them correctly.
func windowsOverlap(newStart, newEnd, start, end string) bool {
	startsInside := newStart >= start && newStart < end
	endsInside := newEnd > start && newEnd <= end
	contains := newStart <= start && newEnd >= end
	return startsInside || endsInside || contains
}

func validateWindow(date, start, end string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(timeLayout, start); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "start_time must be HH:MM")
	}
	if _, err := time.Parse(timeLayout, end); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "end_time must be HH:MM")
	}
	if start >= end {
		return pkgerrors.New(pkgerrors.CodeValidation, "start_time must be before end_time")
	}
	return nil
}

func isTerminalStatus(status enums.ReservationStatus) bool {
	return status == enums.ReservationStatusCancelled || status == enums.ReservationStatusCompleted
}

func canTransition(from, to enums.ReservationStatus) bool {
	switch from {
	case enums.ReservationStatusPending:
		return to == enums.ReservationStatusConfirmed || to == enums.ReservationStatusCancelled
	case enums.ReservationStatusConfirmed:
		return to == enums.ReservationStatusCompleted || to == enums.ReservationStatusCancelled
	default:
		return false
	}
}
