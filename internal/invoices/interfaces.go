package invoices

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

// Repository defines persistence operations for invoices and payments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Invoice, int64, error)
	CountByNumberPrefix(ctx context.Context, prefix string) (int64, error)
	Update(ctx context.Context, invoiceID uuid.UUID, updates map[string]any) error
	CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
}
