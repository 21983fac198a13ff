package customers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

// Repository defines persistence operations for customers and their points.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*models.Customer, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Customer, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	CreatePoint(ctx context.Context, point *models.CustomerPoint) (*models.CustomerPoint, error)
	ListPoints(ctx context.Context, customerID uuid.UUID, params pagination.Params) ([]models.CustomerPoint, int64, error)
}
