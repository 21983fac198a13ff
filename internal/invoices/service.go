package invoices

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

const invoiceNumberPrefix = "INV"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines invoice and payment operations.
type Service interface {
	Generate(ctx context.Context, input GenerateInput) (*models.Invoice, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	GetByOrder(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*InvoiceList, error)
	AddPayment(ctx context.Context, input AddPaymentInput) (*models.Invoice, error)
	RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	renderer *PDFRenderer
	now      func() time.Time
}

// NewService builds an invoice service with the required dependencies.
func NewService(repo Repository, tx txRunner, renderer *PDFRenderer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoices repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if renderer == nil {
		return nil, fmt.Errorf("pdf renderer required")
	}
	return &service{repo: repo, tx: tx, renderer: renderer, now: time.Now}, nil
}

// Generate creates the invoice for a completed order. Calling it twice
// returns the existing invoice unchanged.
func (s *service) Generate(ctx context.Context, input GenerateInput) (*models.Invoice, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var result *models.Invoice
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.FindByOrder(ctx, input.OrderID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing invoice")
		}
		if existing != nil {
			result = existing
			return nil
		}

		order, err := repo.FindOrder(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status != enums.OrderStatusCompleted {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order must be completed before invoicing")
		}

		number, err := s.nextNumber(ctx, repo)
		if err != nil {
			return err
		}

		invoice := &models.Invoice{
			OrderID:        order.ID,
			InvoiceNumber:  number,
			Subtotal:       order.Subtotal,
			TaxRate:        0,
			TaxAmount:      0,
			DiscountAmount: order.Discount,
			Total:          order.Total,
			PaymentStatus:  enums.PaymentStatusUnpaid,
		}
		created, err := repo.Create(ctx, invoice)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create invoice")
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice id required")
	}
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	return invoice, nil
}

func (s *service) GetByOrder(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	invoice, err := s.repo.FindByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	return invoice, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*InvoiceList, error) {
	list, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}
	return &InvoiceList{
		Invoices: list,
		Meta:     pagination.NewMeta(params, total),
	}, nil
}

func (s *service) AddPayment(ctx context.Context, input AddPaymentInput) (*models.Invoice, error) {
	if input.InvoiceID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice id required")
	}
	if input.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	method := input.Method
	if method == "" {
		method = enums.PaymentMethodCash
	}
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}

	var result *models.Invoice
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		invoice, err := repo.FindByID(ctx, input.InvoiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
		}
		if invoice.PaymentStatus == enums.PaymentStatusPaid {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "invoice already settled")
		}

		payment := &models.Payment{
			InvoiceID:       invoice.ID,
			Amount:          input.Amount,
			PaymentMethod:   method,
			ReferenceNumber: input.ReferenceNumber,
			PaidAt:          s.now(),
		}
		if _, err := repo.CreatePayment(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record payment")
		}
		invoice.Payments = append(invoice.Payments, *payment)

		status := enums.PaymentStatusPartial
		if invoice.TotalPaid() >= invoice.Total {
			status = enums.PaymentStatusPaid
		}
		if err := repo.Update(ctx, invoice.ID, map[string]any{"payment_status": status}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update invoice status")
		}
		invoice.PaymentStatus = status

		// A fully settled invoice closes its order.
		if status == enums.PaymentStatusPaid {
			if err := repo.UpdateOrder(ctx, invoice.OrderID, map[string]any{
				"status": enums.OrderStatusPaid,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close order")
			}
		}

		result = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.renderer.Render(invoice)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render invoice pdf")
	}
	return data, nil
}

// nextNumber issues the day-scoped sequential number, e.g. INV-20250901-0003.
func (s *service) nextNumber(ctx context.Context, repo Repository) (string, error) {
	day := s.now().Format("20060102")
	dayPrefix := fmt.Sprintf("%s-%s-", invoiceNumberPrefix, day)
	count, err := repo.CountByNumberPrefix(ctx, dayPrefix)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count invoice numbers")
	}
	return fmt.Sprintf("%s%04d", dayPrefix, count+1), nil
}
