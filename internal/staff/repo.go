package staff

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a staff repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindProfileByUser(ctx context.Context, userID uuid.UUID) (*models.StaffProfile, error) {
	var profile models.StaffProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) CreateProfile(ctx context.Context, profile *models.StaffProfile) (*models.StaffProfile, error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *repository) UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.StaffProfile{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) CreateShift(ctx context.Context, shift *models.Shift) (*models.Shift, error) {
	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(shift).Error; err != nil {
		return nil, err
	}
	return shift, nil
}

func (r *repository) FindShiftByID(ctx context.Context, id uuid.UUID) (*models.Shift, error) {
	var shift models.Shift
	if err := r.db.WithContext(ctx).First(&shift, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *repository) FindShiftForUserDate(ctx context.Context, userID uuid.UUID, date string) (*models.Shift, error) {
	var shift models.Shift
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("start_time ASC").
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *repository) ListShifts(ctx context.Context, params pagination.Params, filters ShiftFilters) ([]models.Shift, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Shift{})
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.Date != nil {
		query = query.Where("date = ?", *filters.Date)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var shifts []models.Shift
	err := query.
		Order("date DESC, start_time ASC").
		Limit(params.Limit()).
		Offset(params.Offset()).
		Find(&shifts).Error
	if err != nil {
		return nil, 0, err
	}
	return shifts, total, nil
}

func (r *repository) UpdateShift(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Shift{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteShift(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Shift{}, "id = ?", id).Error
}

func (r *repository) CreateAttendance(ctx context.Context, attendance *models.Attendance) (*models.Attendance, error) {
	if attendance.ID == uuid.Nil {
		attendance.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(attendance).Error; err != nil {
		return nil, err
	}
	return attendance, nil
}

func (r *repository) FindAttendanceByID(ctx context.Context, id uuid.UUID) (*models.Attendance, error) {
	var attendance models.Attendance
	if err := r.db.WithContext(ctx).First(&attendance, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *repository) FindAttendanceForUserDate(ctx context.Context, userID uuid.UUID, date string) (*models.Attendance, error) {
	var attendance models.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *repository) ListAttendance(ctx context.Context, params pagination.Params, filters AttendanceFilters) ([]models.Attendance, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Attendance{})
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.DateFrom != nil {
		query = query.Where("date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("date <= ?", *filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.Attendance
	err := query.
		Order("date DESC").
		Limit(params.Limit()).
		Offset(params.Offset()).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *repository) UpdateAttendance(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("id = ?", id).
		Updates(updates).Error
}
