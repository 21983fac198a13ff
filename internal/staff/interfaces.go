package staff

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

// Repository defines persistence operations for profiles, shifts and
// attendance.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindProfileByUser(ctx context.Context, userID uuid.UUID) (*models.StaffProfile, error)
	CreateProfile(ctx context.Context, profile *models.StaffProfile) (*models.StaffProfile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]any) error

	CreateShift(ctx context.Context, shift *models.Shift) (*models.Shift, error)
	FindShiftByID(ctx context.Context, id uuid.UUID) (*models.Shift, error)
	FindShiftForUserDate(ctx context.Context, userID uuid.UUID, date string) (*models.Shift, error)
	ListShifts(ctx context.Context, params pagination.Params, filters ShiftFilters) ([]models.Shift, int64, error)
	UpdateShift(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteShift(ctx context.Context, id uuid.UUID) error

	CreateAttendance(ctx context.Context, attendance *models.Attendance) (*models.Attendance, error)
	FindAttendanceByID(ctx context.Context, id uuid.UUID) (*models.Attendance, error)
	FindAttendanceForUserDate(ctx context.Context, userID uuid.UUID, date string) (*models.Attendance, error)
	ListAttendance(ctx context.Context, params pagination.Params, filters AttendanceFilters) ([]models.Attendance, int64, error)
	UpdateAttendance(ctx context.Context, id uuid.UUID, updates map[string]any) error
}
