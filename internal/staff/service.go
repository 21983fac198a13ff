package staff

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

// Service defines staff scheduling and attendance operations.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.StaffProfile, error)
	UpsertProfile(ctx context.Context, input UpsertProfileInput) (*models.StaffProfile, error)

	CreateShift(ctx context.Context, input CreateShiftInput) (*models.Shift, error)
	ListShifts(ctx context.Context, params pagination.Params, filters ShiftFilters) (*ShiftList, error)
	UpdateShift(ctx context.Context, input UpdateShiftInput) (*models.Shift, error)
	DeleteShift(ctx context.Context, id uuid.UUID) error

	CheckIn(ctx context.Context, input CheckInInput) (*models.Attendance, error)
	CheckOut(ctx context.Context, input CheckOutInput) (*models.Attendance, error)
	ListAttendance(ctx context.Context, params pagination.Params, filters AttendanceFilters) (*AttendanceList, error)
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService builds a staff service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("staff repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, now: time.Now}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*models.StaffProfile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	profile, err := s.repo.FindProfileByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "staff profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return profile, nil
}

// UpsertProfile creates the profile on first write and patches it afterwards.
func (s *service) UpsertProfile(ctx context.Context, input UpsertProfileInput) (*models.StaffProfile, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if input.Salary != nil && input.Salary.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "salary cannot be negative")
	}

	var result *models.StaffProfile
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindUser(ctx, input.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
		}

		profile, err := repo.FindProfileByUser(ctx, input.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
		}
		if profile == nil {
			profile = &models.StaffProfile{UserID: input.UserID}
			if input.Salary != nil {
				profile.Salary = *input.Salary
			}
			profile.Position = input.Position
			profile.HireDate = input.HireDate
			profile.Address = input.Address
			profile.EmergencyContact = input.EmergencyContact
			created, err := repo.CreateProfile(ctx, profile)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create profile")
			}
			result = created
			return nil
		}

		updates := map[string]any{}
		if input.Position != nil {
			updates["position"] = *input.Position
		}
		if input.Salary != nil {
			updates["salary"] = *input.Salary
		}
		if input.HireDate != nil {
			updates["hire_date"] = *input.HireDate
		}
		if input.Address != nil {
			updates["address"] = *input.Address
		}
		if input.EmergencyContact != nil {
			updates["emergency_contact"] = *input.EmergencyContact
		}
		if len(updates) > 0 {
			if err := repo.UpdateProfile(ctx, profile.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
			}
			profile, err = repo.FindProfileByUser(ctx, input.UserID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload profile")
			}
		}
		result = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) CreateShift(ctx context.Context, input CreateShiftInput) (*models.Shift, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if err := validateShiftWindow(input.Date, input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindUser(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	shift := &models.Shift{
		UserID:    input.UserID,
		Date:      input.Date,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Status:    enums.ShiftStatusScheduled,
		Note:      input.Note,
	}
	created, err := s.repo.CreateShift(ctx, shift)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shift")
	}
	return created, nil
}

func (s *service) ListShifts(ctx context.Context, params pagination.Params, filters ShiftFilters) (*ShiftList, error) {
	shifts, total, err := s.repo.ListShifts(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shifts")
	}
	return &ShiftList{
		Shifts: shifts,
		Meta:   pagination.NewMeta(params, total),
	}, nil
}

func (s *service) UpdateShift(ctx context.Context, input UpdateShiftInput) (*models.Shift, error) {
	if input.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shift id required")
	}

	shift, err := s.repo.FindShiftByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shift not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shift")
	}

	date := shift.Date
	start := shift.StartTime
	end := shift.EndTime
	updates := map[string]any{}
	if input.Date != nil {
		date = *input.Date
		updates["date"] = date
	}
	if input.StartTime != nil {
		start = *input.StartTime
		updates["start_time"] = start
	}
	if input.EndTime != nil {
		end = *input.EndTime
		updates["end_time"] = end
	}
	if input.Date != nil || input.StartTime != nil || input.EndTime != nil {
		if err := validateShiftWindow(date, start, end); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shift status")
		}
		updates["status"] = *input.Status
	}
	if input.Note != nil {
		updates["note"] = *input.Note
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateShift(ctx, shift.ID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shift")
		}
		shift, err = s.repo.FindShiftByID(ctx, shift.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload shift")
		}
	}
	return shift, nil
}

func (s *service) DeleteShift(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "shift id required")
	}
	if _, err := s.repo.FindShiftByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "shift not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shift")
	}
	if err := s.repo.DeleteShift(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete shift")
	}
	return nil
}

// CheckIn opens today's attendance record. A second check-in on the same date
// is rejected. When a shift is scheduled for today it is linked to the record.
func (s *service) CheckIn(ctx context.Context, input CheckInInput) (*models.Attendance, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	var result *models.Attendance
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		now := s.now()
		today := now.Format(dateLayout)

		if _, err := repo.FindUser(ctx, input.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
		}

		if _, err := repo.FindAttendanceForUserDate(ctx, input.UserID, today); err == nil {
			return pkgerrors.New(pkgerrors.CodeDomainRule, "already checked in today")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check attendance")
		}

		attendance := &models.Attendance{
			UserID:    input.UserID,
			Date:      today,
			CheckInAt: now,
		}
		if shift, err := repo.FindShiftForUserDate(ctx, input.UserID, today); err == nil {
			attendance.ShiftID = &shift.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shift")
		}

		created, err := repo.CreateAttendance(ctx, attendance)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create attendance")
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CheckOut stamps today's open attendance record and completes the linked
// shift when there is one.
func (s *service) CheckOut(ctx context.Context, input CheckOutInput) (*models.Attendance, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	var result *models.Attendance
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		now := s.now()
		today := now.Format(dateLayout)

		attendance, err := repo.FindAttendanceForUserDate(ctx, input.UserID, today)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeDomainRule, "not checked in today")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load attendance")
		}
		if attendance.CheckOutAt != nil {
			return pkgerrors.New(pkgerrors.CodeDomainRule, "already checked out today")
		}

		if err := repo.UpdateAttendance(ctx, attendance.ID, map[string]any{"check_out_at": now}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update attendance")
		}
		attendance.CheckOutAt = &now

		if attendance.ShiftID != nil {
			if err := repo.UpdateShift(ctx, *attendance.ShiftID, map[string]any{"status": enums.ShiftStatusCompleted}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete shift")
			}
		}
		result = attendance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) ListAttendance(ctx context.Context, params pagination.Params, filters AttendanceFilters) (*AttendanceList, error) {
	records, total, err := s.repo.ListAttendance(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list attendance")
	}
	return &AttendanceList{
		Records: records,
		Meta:    pagination.NewMeta(params, total),
	}, nil
}

func validateShiftWindow(date, start, end string) error {
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
