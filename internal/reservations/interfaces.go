package reservations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

// Repository defines persistence operations for table reservations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Reservation, int64, error)
	ListActiveForTableDate(ctx context.Context, tableID uuid.UUID, date string) ([]models.Reservation, error)
	ListActiveForDate(ctx context.Context, date string) ([]models.Reservation, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	FindTable(ctx context.Context, id uuid.UUID) (*models.LayoutObject, error)
}
