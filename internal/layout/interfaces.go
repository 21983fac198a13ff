package layout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
)

// Repository defines persistence operations for floors and layout objects.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateFloor(ctx context.Context, floor *models.Floor) (*models.Floor, error)
	FindFloorByID(ctx context.Context, id uuid.UUID) (*models.Floor, error)
	ListFloors(ctx context.Context, includeInactive bool) ([]models.Floor, error)
	UpdateFloor(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteFloor(ctx context.Context, id uuid.UUID) error

	CreateObject(ctx context.Context, object *models.LayoutObject) (*models.LayoutObject, error)
	FindObjectByID(ctx context.Context, id uuid.UUID) (*models.LayoutObject, error)
	ListObjectsByFloor(ctx context.Context, floorID uuid.UUID) ([]models.LayoutObject, error)
	UpdateObject(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteObject(ctx context.Context, id uuid.UUID) error

	ListOccupiedTableIDs(ctx context.Context) ([]uuid.UUID, error)
}
