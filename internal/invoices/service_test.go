package invoices

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	pkgerrors "github.com/haianhng/cafepos-backend/pkg/errors"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

type stubRepo struct {
	invoices map[uuid.UUID]*models.Invoice
	payments map[uuid.UUID][]models.Payment
	orders   map[uuid.UUID]*models.Order
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		invoices: map[uuid.UUID]*models.Invoice{},
		payments: map[uuid.UUID][]models.Payment{},
		orders:   map[uuid.UUID]*models.Order{},
	}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	s.invoices[invoice.ID] = invoice
	return invoice, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	invoice, ok := s.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *invoice
	clone.Payments = append([]models.Payment(nil), s.payments[id]...)
	if order, ok := s.orders[invoice.OrderID]; ok {
		orderClone := *order
		clone.Order = &orderClone
	}
	return &clone, nil
}

func (s *stubRepo) FindByOrder(ctx context.Context, orderID uuid.UUID) (*models.Invoice, error) {
	for _, invoice := range s.invoices {
		if invoice.OrderID == orderID {
			return s.FindByID(ctx, invoice.ID)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Invoice, int64, error) {
	var out []models.Invoice
	for _, invoice := range s.invoices {
		if filters.PaymentStatus != nil && invoice.PaymentStatus != *filters.PaymentStatus {
			continue
		}
		out = append(out, *invoice)
	}
	return out, int64(len(out)), nil
}

func (s *stubRepo) CountByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	for _, invoice := range s.invoices {
		if len(invoice.InvoiceNumber) >= len(prefix) && invoice.InvoiceNumber[:len(prefix)] == prefix {
			count++
		}
	}
	return count, nil
}

func (s *stubRepo) Update(ctx context.Context, invoiceID uuid.UUID, updates map[string]any) error {
	invoice, ok := s.invoices[invoiceID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if status, ok := updates["payment_status"]; ok {
		invoice.PaymentStatus = status.(enums.PaymentStatus)
	}
	return nil
}

func (s *stubRepo) CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	s.payments[payment.InvoiceID] = append(s.payments[payment.InvoiceID], *payment)
	return payment, nil
}

func (s *stubRepo) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *order
	return &clone, nil
}

func (s *stubRepo) UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error {
	order, ok := s.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if status, ok := updates["status"]; ok {
		order.Status = status.(enums.OrderStatus)
	}
	return nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	svc, err := NewService(repo, stubTx{}, NewPDFRenderer(testReceiptConfig()))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.(*service).now = func() time.Time {
		return time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func errCode(t *testing.T, err error) pkgerrors.Code {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	return typed.Code()
}

func seedOrder(repo *stubRepo, status enums.OrderStatus, subtotal, discount, total int64) *models.Order {
	order := &models.Order{
		ID:       uuid.New(),
		Status:   status,
		Subtotal: subtotal,
		Discount: discount,
		Total:    total,
	}
	repo.orders[order.ID] = order
	return order
}

func TestGenerateSnapshotsCompletedOrder(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	order := seedOrder(repo, enums.OrderStatusCompleted, 120000, 20000, 100000)

	invoice, err := svc.Generate(context.Background(), GenerateInput{OrderID: order.ID})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if invoice.InvoiceNumber != "INV-20250901-0001" {
		t.Fatalf("unexpected invoice number %q", invoice.InvoiceNumber)
	}
	if invoice.Subtotal != 120000 || invoice.DiscountAmount != 20000 || invoice.Total != 100000 {
		t.Fatalf("unexpected amounts: %+v", invoice)
	}
	if invoice.TaxRate != 0 || invoice.TaxAmount != 0 {
		t.Fatalf("tax should be zero, got %+v", invoice)
	}
	if invoice.PaymentStatus != enums.PaymentStatusUnpaid {
		t.Fatalf("expected unpaid, got %s", invoice.PaymentStatus)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	order := seedOrder(repo, enums.OrderStatusCompleted, 50000, 0, 50000)

	first, err := svc.Generate(context.Background(), GenerateInput{OrderID: order.ID})
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	second, err := svc.Generate(context.Background(), GenerateInput{OrderID: order.ID})
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if first.ID != second.ID || first.InvoiceNumber != second.InvoiceNumber {
		t.Fatalf("expected same invoice, got %s and %s", first.InvoiceNumber, second.InvoiceNumber)
	}
	if len(repo.invoices) != 1 {
		t.Fatalf("expected a single invoice, got %d", len(repo.invoices))
	}
}

func TestGenerateNumbersAreSequentialPerDay(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	first := seedOrder(repo, enums.OrderStatusCompleted, 10000, 0, 10000)
	second := seedOrder(repo, enums.OrderStatusCompleted, 20000, 0, 20000)

	a, err := svc.Generate(context.Background(), GenerateInput{OrderID: first.ID})
	if err != nil {
		t.Fatalf("generate first: %v", err)
	}
	b, err := svc.Generate(context.Background(), GenerateInput{OrderID: second.ID})
	if err != nil {
		t.Fatalf("generate second: %v", err)
	}
	if a.InvoiceNumber != "INV-20250901-0001" || b.InvoiceNumber != "INV-20250901-0002" {
		t.Fatalf("unexpected numbers %q %q", a.InvoiceNumber, b.InvoiceNumber)
	}
}

func TestGenerateRejectsUnfinishedOrder(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	order := seedOrder(repo, enums.OrderStatusInProgress, 50000, 0, 50000)

	_, err := svc.Generate(context.Background(), GenerateInput{OrderID: order.ID})
	if err == nil {
		t.Fatal("expected error for in-progress order")
	}
	if code := errCode(t, err); code != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %s", code)
	}
}

func TestGenerateUnknownOrder(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	_, err := svc.Generate(context.Background(), GenerateInput{OrderID: uuid.New()})
	if err == nil {
		t.Fatal("expected error for missing order")
	}
	if code := errCode(t, err); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %s", code)
	}
}

func TestAddPaymentPartialThenSettled(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	order := seedOrder(repo, enums.OrderStatusCompleted, 100000, 0, 100000)

	invoice, err := svc.Generate(context.Background(), GenerateInput{OrderID: order.ID})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	partial, err := svc.AddPayment(context.Background(), AddPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    40000,
		Method:    enums.PaymentMethodCard,
	})
	if err != nil {
		t.Fatalf("partial payment: %v", err)
	}
	if partial.PaymentStatus != enums.PaymentStatusPartial {
		t.Fatalf("expected partial, got %s", partial.PaymentStatus)
	}
	if repo.orders[order.ID].Status != enums.OrderStatusCompleted {
		t.Fatal("order should stay completed until fully paid")
	}

	settled, err := svc.AddPayment(context.Background(), AddPaymentInput{
		InvoiceID: invoice.ID,
		Amount:    60000,
	})
	if err != nil {
		t.Fatalf("settling payment: %v", err)
	}
	if settled.PaymentStatus != enums.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", settled.PaymentStatus)
	}
	if repo.orders[order.ID].Status != enums.OrderStatusPaid {
		t.Fatalf("expected order closed, got %s", repo.orders[order.ID].Status)
	}
	payments := repo.payments[invoice.ID]
	if len(payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(payments))
	}
	if payments[1].PaymentMethod != enums.PaymentMethodCash {
		t.Fatalf("expected cash default, got %s", payments[1].PaymentMethod)
	}
}

func TestAddPaymentRejectsSettledInvoice(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	order := seedOrder(repo, enums.OrderStatusCompleted, 30000, 0, 30000)

	invoice, err := svc.Generate(context.Background(), GenerateInput{OrderID: order.ID})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.AddPayment(context.Background(), AddPaymentInput{InvoiceID: invoice.ID, Amount: 30000}); err != nil {
		t.Fatalf("settling payment: %v", err)
	}

	_, err = svc.AddPayment(context.Background(), AddPaymentInput{InvoiceID: invoice.ID, Amount: 100})
	if err == nil {
		t.Fatal("expected error for settled invoice")
	}
	if code := errCode(t, err); code != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %s", code)
	}
}

func TestAddPaymentValidation(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	_, err := svc.AddPayment(context.Background(), AddPaymentInput{InvoiceID: uuid.New(), Amount: 0})
	if err == nil {
		t.Fatal("expected error for zero amount")
	}
	if code := errCode(t, err); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", code)
	}

	_, err = svc.AddPayment(context.Background(), AddPaymentInput{InvoiceID: uuid.New(), Amount: 100, Method: "barter"})
	if err == nil {
		t.Fatal("expected error for bad method")
	}
	if code := errCode(t, err); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", code)
	}
}

func TestRenderPDFProducesDocument(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	order := seedOrder(repo, enums.OrderStatusCompleted, 45000, 0, 45000)
	order.OrderNumber = "ORD-20250901-0001"

	invoice, err := svc.Generate(context.Background(), GenerateInput{OrderID: order.ID})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := svc.RenderPDF(context.Background(), invoice.ID)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected pdf bytes")
	}
	if string(data[:4]) != "%PDF" {
		t.Fatalf("unexpected header %q", data[:4])
	}
}
