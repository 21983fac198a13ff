package layout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a layout repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateFloor(ctx context.Context, floor *models.Floor) (*models.Floor, error) {
	if floor.ID == uuid.Nil {
		floor.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(floor).Error; err != nil {
		return nil, err
	}
	return floor, nil
}

func (r *repository) FindFloorByID(ctx context.Context, id uuid.UUID) (*models.Floor, error) {
	var floor models.Floor
	err := r.db.WithContext(ctx).
		Preload("LayoutObjects", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("name ASC")
		}).
		First(&floor, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &floor, nil
}

func (r *repository) ListFloors(ctx context.Context, includeInactive bool) ([]models.Floor, error) {
	query := r.db.WithContext(ctx).Model(&models.Floor{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	var floors []models.Floor
	err := query.
		Preload("LayoutObjects", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("name ASC")
		}).
		Order("floor_number ASC").
		Find(&floors).Error
	if err != nil {
		return nil, err
	}
	return floors, nil
}

func (r *repository) UpdateFloor(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Floor{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteFloor(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Floor{}, "id = ?", id).Error
}

func (r *repository) CreateObject(ctx context.Context, object *models.LayoutObject) (*models.LayoutObject, error) {
	if object.ID == uuid.Nil {
		object.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(object).Error; err != nil {
		return nil, err
	}
	return object, nil
}

func (r *repository) FindObjectByID(ctx context.Context, id uuid.UUID) (*models.LayoutObject, error) {
	var object models.LayoutObject
	if err := r.db.WithContext(ctx).First(&object, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &object, nil
}

func (r *repository) ListObjectsByFloor(ctx context.Context, floorID uuid.UUID) ([]models.LayoutObject, error) {
	var objects []models.LayoutObject
	err := r.db.WithContext(ctx).
		Where("floor_id = ? AND is_active = ?", floorID, true).
		Order("name ASC").
		Find(&objects).Error
	if err != nil {
		return nil, err
	}
	return objects, nil
}

func (r *repository) UpdateObject(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.LayoutObject{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteObject(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.LayoutObject{}, "id = ?", id).Error
}

// ListOccupiedTableIDs returns the table ids holding at least one active order.
func (r *repository) ListOccupiedTableIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Distinct("table_id").
		Where("table_id IS NOT NULL AND status IN ?", enums.ActiveOrderStatuses).
		Pluck("table_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
