package orders

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
	orders    map[uuid.UUID]*models.Order
	menuItems map[uuid.UUID]*models.MenuItem
	tables    map[uuid.UUID]*models.LayoutObject
	numbered  int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		orders:    map[uuid.UUID]*models.Order{},
		menuItems: map[uuid.UUID]*models.MenuItem{},
		tables:    map[uuid.UUID]*models.LayoutObject{},
	}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
	}
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubRepo) CreateItems(ctx context.Context, items []models.OrderItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		if order, ok := s.orders[items[i].OrderID]; ok {
			order.Items = append(order.Items, items[i])
		}
	}
	return nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *order
	return &clone, nil
}

func (s *stubRepo) FindActiveByTable(ctx context.Context, tableID uuid.UUID) (*models.Order, error) {
	for _, order := range s.orders {
		if order.TableID != nil && *order.TableID == tableID && order.Status.IsActive() {
			clone := *order
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) ListActive(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	for _, order := range s.orders {
		if order.Status.IsActive() {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (s *stubRepo) ListActiveByTable(ctx context.Context, tableID uuid.UUID) ([]models.Order, error) {
	var out []models.Order
	for _, order := range s.orders {
		if order.TableID != nil && *order.TableID == tableID && order.Status.IsActive() {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (s *stubRepo) ListByTable(ctx context.Context, tableID uuid.UUID) ([]models.Order, error) {
	var out []models.Order
	for _, order := range s.orders {
		if order.TableID != nil && *order.TableID == tableID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (s *stubRepo) List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Order, int64, error) {
	var out []models.Order
	for _, order := range s.orders {
		out = append(out, *order)
	}
	return out, int64(len(out)), nil
}

func (s *stubRepo) CountByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	return s.numbered, nil
}

func (s *stubRepo) Save(ctx context.Context, order *models.Order) error {
	clone := *order
	s.orders[order.ID] = &clone
	return nil
}

func (s *stubRepo) Update(ctx context.Context, orderID uuid.UUID, updates map[string]any) error {
	return nil
}

func (s *stubRepo) DeleteUnpaidItems(ctx context.Context, orderID uuid.UUID) error {
	order, ok := s.orders[orderID]
	if !ok {
		return nil
	}
	var kept []models.OrderItem
	for _, item := range order.Items {
		if item.IsPaid {
			kept = append(kept, item)
		}
	}
	order.Items = kept
	return nil
}

func (s *stubRepo) MarkItemsPaid(ctx context.Context, orderID uuid.UUID, itemIDs []uuid.UUID) error {
	order, ok := s.orders[orderID]
	if !ok {
		return nil
	}
	wanted := map[uuid.UUID]bool{}
	for _, id := range itemIDs {
		wanted[id] = true
	}
	for i := range order.Items {
		if wanted[order.Items[i].ID] {
			order.Items[i].IsPaid = true
		}
	}
	return nil
}

func (s *stubRepo) FindMenuItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MenuItem, error) {
	var out []models.MenuItem
	seen := map[uuid.UUID]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if item, ok := s.menuItems[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (s *stubRepo) FindTable(ctx context.Context, tableID uuid.UUID) (*models.LayoutObject, error) {
	table, ok := s.tables[tableID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return table, nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	svc, err := NewService(repo, stubTx{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.(*service).now = func() time.Time {
		return time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func seedMenuItem(repo *stubRepo, name string, price int64, options ...models.MenuItemOption) *models.MenuItem {
	item := &models.MenuItem{
		ID:          uuid.New(),
		CategoryID:  uuid.New(),
		Name:        name,
		Price:       price,
		IsAvailable: true,
		Options:     options,
	}
	for i := range item.Options {
		if item.Options[i].ID == uuid.Nil {
			item.Options[i].ID = uuid.New()
		}
		item.Options[i].MenuItemID = item.ID
	}
	repo.menuItems[item.ID] = item
	return item
}

func seedTable(repo *stubRepo, name string) *models.LayoutObject {
	table := &models.LayoutObject{
		ID:       uuid.New(),
		FloorID:  uuid.New(),
		Type:     enums.LayoutObjectTable,
		Name:     name,
		IsActive: true,
	}
	repo.tables[table.ID] = table
	return table
}

func errCode(t *testing.T, err error) pkgerrors.Code {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	return typed.Code()
}

func TestCreateOrderNumbersAndTotals(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	latte := seedMenuItem(repo, "Latte", 45000)
	mocha := seedMenuItem(repo, "Mocha", 55000)

	order, err := svc.Create(context.Background(), CreateOrderInput{
		UserID:   uuid.New(),
		Discount: 5000,
		Items: []OrderItemInput{
			{MenuItemID: latte.ID, Quantity: 2},
			{MenuItemID: mocha.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if order.OrderNumber != "ORD-20250901-0001" {
		t.Fatalf("unexpected order number %s", order.OrderNumber)
	}
	if order.Subtotal != 145000 {
		t.Fatalf("expected subtotal 145000, got %d", order.Subtotal)
	}
	if order.Total != 140000 {
		t.Fatalf("expected total 140000, got %d", order.Total)
	}
	if order.TotalAll != 140000 {
		t.Fatalf("expected total_all 140000, got %d", order.TotalAll)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
}

func TestCreateOrderResolvesOptionPricesFromMenu(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	latte := seedMenuItem(repo, "Latte", 45000,
		models.MenuItemOption{Name: "Oat milk", ExtraPrice: 10000},
	)

	order, err := svc.Create(context.Background(), CreateOrderInput{
		UserID: uuid.New(),
		Items: []OrderItemInput{
			{MenuItemID: latte.ID, Quantity: 2, OptionIDs: []uuid.UUID{latte.Options[0].ID}},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	// unit price snapshots base + selected extras, 45000 + 10000
	if order.Items[0].UnitPrice != 55000 {
		t.Fatalf("expected unit price 55000, got %d", order.Items[0].UnitPrice)
	}
	if order.Items[0].Subtotal != order.Items[0].UnitPrice*int64(order.Items[0].Quantity) {
		t.Fatalf("subtotal %d is not unit price %d x quantity %d",
			order.Items[0].Subtotal, order.Items[0].UnitPrice, order.Items[0].Quantity)
	}
	if order.Items[0].Subtotal != 110000 {
		t.Fatalf("expected line subtotal 110000, got %d", order.Items[0].Subtotal)
	}
	if order.Items[0].Options[0].ExtraPrice != 10000 {
		t.Fatalf("option price not snapshotted from menu")
	}
}

func TestCreateOrderRejectsForeignOption(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	latte := seedMenuItem(repo, "Latte", 45000)

	_, err := svc.Create(context.Background(), CreateOrderInput{
		UserID: uuid.New(),
		Items: []OrderItemInput{
			{MenuItemID: latte.ID, Quantity: 1, OptionIDs: []uuid.UUID{uuid.New()}},
		},
	})
	if err == nil {
		t.Fatal("expected error for unknown option")
	}
	if code := errCode(t, err); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", code)
	}
}

func TestCreateOrderMergesIntoTableSession(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	latte := seedMenuItem(repo, "Latte", 45000)
	table := seedTable(repo, "T1")

	first, err := svc.Create(context.Background(), CreateOrderInput{
		UserID:  uuid.New(),
		TableID: &table.ID,
		Items:   []OrderItemInput{{MenuItemID: latte.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("first order: %v", err)
	}

	second, err := svc.Create(context.Background(), CreateOrderInput{
		UserID:  uuid.New(),
		TableID: &table.ID,
		Items:   []OrderItemInput{{MenuItemID: latte.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("second order: %v", err)
	}

	if second.ID != first.ID {
		t.Fatal("expected items to merge into the open table order")
	}
	if len(second.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(second.Items))
	}
	if second.Subtotal != 135000 {
		t.Fatalf("expected subtotal 135000, got %d", second.Subtotal)
	}
	if len(repo.orders) != 1 {
		t.Fatalf("expected a single order, got %d", len(repo.orders))
	}
}

func TestUpdateReplacesUnpaidLinesOnly(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	latte := seedMenuItem(repo, "Latte", 45000)
	mocha := seedMenuItem(repo, "Mocha", 55000)

	order, err := svc.Create(context.Background(), CreateOrderInput{
		UserID: uuid.New(),
		Items: []OrderItemInput{
			{MenuItemID: latte.ID, Quantity: 2},
			{MenuItemID: mocha.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	// Settle the mocha line, then shrink the latte line.
	_, err = svc.PayItems(context.Background(), PayItemsInput{
		OrderID: order.ID,
		UserID:  uuid.New(),
		ItemIDs: []uuid.UUID{order.Items[1].ID},
	})
	if err != nil {
		t.Fatalf("pay items: %v", err)
	}

	updated, err := svc.Update(context.Background(), UpdateOrderInput{
		OrderID: order.ID,
		UserID:  uuid.New(),
		Items:   []OrderItemInput{{MenuItemID: latte.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("update order: %v", err)
	}

	if len(updated.Items) != 2 {
		t.Fatalf("expected paid line to survive, got %d lines", len(updated.Items))
	}
	if !updated.IsDeletedItem {
		t.Fatal("expected deleted item flag after quantity decrease")
	}
	if updated.Subtotal != 45000 {
		t.Fatalf("expected unpaid subtotal 45000, got %d", updated.Subtotal)
	}
	if updated.TotalAll != 100000 {
		t.Fatalf("expected total_all 100000, got %d", updated.TotalAll)
	}
}

func TestUpdateWithoutItemsPatchesHeaderOnly(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	latte := seedMenuItem(repo, "Latte", 45000)
	table := seedTable(repo, "T1")

	order, err := svc.Create(context.Background(), CreateOrderInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{MenuItemID: latte.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	discount := int64(5000)
	customerID := uuid.New()
	updated, err := svc.Update(context.Background(), UpdateOrderInput{
		OrderID:    order.ID,
		UserID:     uuid.New(),
		CustomerID: &customerID,
		TableID:    &table.ID,
		Discount:   &discount,
	})
	if err != nil {
		t.Fatalf("update order: %v", err)
	}

	if len(updated.Items) != 1 || updated.Items[0].Quantity != 2 {
		t.Fatalf("expected lines untouched, got %+v", updated.Items)
	}
	if updated.Discount != 5000 {
		t.Fatalf("expected discount 5000, got %d", updated.Discount)
	}
	if updated.CustomerID == nil || *updated.CustomerID != customerID {
		t.Fatal("expected customer id to be set")
	}
	if updated.TableID == nil || *updated.TableID != table.ID {
		t.Fatal("expected table id to be set")
	}
	if updated.Total != 85000 {
		t.Fatalf("expected total 85000 after discount, got %d", updated.Total)
	}
}

func TestUpdateRejectsClosedOrder(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	latte := seedMenuItem(repo, "Latte", 45000)

	order, err := svc.Create(context.Background(), CreateOrderInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{MenuItemID: latte.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	repo.orders[order.ID].Status = enums.OrderStatusCompleted

	_, err = svc.Update(context.Background(), UpdateOrderInput{
		OrderID: order.ID,
		UserID:  uuid.New(),
		Items:   []OrderItemInput{{MenuItemID: latte.ID, Quantity: 3}},
	})
	if err == nil {
		t.Fatal("expected state conflict")
	}
	if code := errCode(t, err); code != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %s", code)
	}
}

func TestPayItemsClosesOrderWhenEverythingPaid(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	latte := seedMenuItem(repo, "Latte", 45000)

	order, err := svc.Create(context.Background(), CreateOrderInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{MenuItemID: latte.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	paid, err := svc.PayItems(context.Background(), PayItemsInput{
		OrderID: order.ID,
		UserID:  uuid.New(),
		ItemIDs: []uuid.UUID{order.Items[0].ID},
	})
	if err != nil {
		t.Fatalf("pay items: %v", err)
	}

	if paid.Status != enums.OrderStatusPaid {
		t.Fatalf("expected order paid, got %s", paid.Status)
	}
	if paid.Total != 0 {
		t.Fatalf("expected nothing owed, got %d", paid.Total)
	}
	if paid.HighestTotal != 45000 {
		t.Fatalf("expected highest total to survive, got %d", paid.HighestTotal)
	}
}

func TestPayItemsRejectsForeignItem(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	latte := seedMenuItem(repo, "Latte", 45000)

	order, err := svc.Create(context.Background(), CreateOrderInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{MenuItemID: latte.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	_, err = svc.PayItems(context.Background(), PayItemsInput{
		OrderID: order.ID,
		UserID:  uuid.New(),
		ItemIDs: []uuid.UUID{uuid.New()},
	})
	if err == nil {
		t.Fatal("expected error for foreign item id")
	}
	if code := errCode(t, err); code != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %s", code)
	}
}

func TestMergeTablesFreeTargetReassigns(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	latte := seedMenuItem(repo, "Latte", 45000)
	source := seedTable(repo, "T1")
	target := seedTable(repo, "T2")

	order, err := svc.Create(context.Background(), CreateOrderInput{
		UserID:  uuid.New(),
		TableID: &source.ID,
		Items:   []OrderItemInput{{MenuItemID: latte.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	merged, err := svc.MergeTables(context.Background(), MergeTablesInput{
		SourceTableID: source.ID,
		TargetTableID: target.ID,
		UserID:        uuid.New(),
	})
	if err != nil {
		t.Fatalf("merge tables: %v", err)
	}

	if merged.ID != order.ID {
		t.Fatal("expected the same order back")
	}
	if merged.TableID == nil || *merged.TableID != target.ID {
		t.Fatal("expected order reassigned to target table")
	}
}

func TestMergeTablesOccupiedTargetAbsorbsItems(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	latte := seedMenuItem(repo, "Latte", 45000)
	mocha := seedMenuItem(repo, "Mocha", 55000)
	source := seedTable(repo, "T1")
	target := seedTable(repo, "T2")

	sourceOrder, err := svc.Create(context.Background(), CreateOrderInput{
		UserID:  uuid.New(),
		TableID: &source.ID,
		Items:   []OrderItemInput{{MenuItemID: latte.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("source order: %v", err)
	}
	targetOrder, err := svc.Create(context.Background(), CreateOrderInput{
		UserID:  uuid.New(),
		TableID: &target.ID,
		Items:   []OrderItemInput{{MenuItemID: mocha.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("target order: %v", err)
	}

	merged, err := svc.MergeTables(context.Background(), MergeTablesInput{
		SourceTableID: source.ID,
		TargetTableID: target.ID,
		UserID:        uuid.New(),
	})
	if err != nil {
		t.Fatalf("merge tables: %v", err)
	}

	if merged.ID != targetOrder.ID {
		t.Fatal("expected target order to absorb the source")
	}
	if len(merged.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(merged.Items))
	}
	if merged.Subtotal != 100000 {
		t.Fatalf("expected subtotal 100000, got %d", merged.Subtotal)
	}

	closed := repo.orders[sourceOrder.ID]
	if closed.Status != enums.OrderStatusCancelled {
		t.Fatalf("expected source cancelled, got %s", closed.Status)
	}
	if closed.TableID != nil {
		t.Fatal("expected source detached from its table")
	}
}

func TestMoveTableRejectsOccupiedTarget(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	latte := seedMenuItem(repo, "Latte", 45000)
	source := seedTable(repo, "T1")
	target := seedTable(repo, "T2")

	if _, err := svc.Create(context.Background(), CreateOrderInput{
		UserID:  uuid.New(),
		TableID: &source.ID,
		Items:   []OrderItemInput{{MenuItemID: latte.ID, Quantity: 1}},
	}); err != nil {
		t.Fatalf("source order: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateOrderInput{
		UserID:  uuid.New(),
		TableID: &target.ID,
		Items:   []OrderItemInput{{MenuItemID: latte.ID, Quantity: 1}},
	}); err != nil {
		t.Fatalf("target order: %v", err)
	}

	err := svc.MoveTable(context.Background(), MoveTableInput{
		FromTableID: source.ID,
		ToTableID:   target.ID,
		UserID:      uuid.New(),
	})
	if err == nil {
		t.Fatal("expected conflict for occupied target")
	}
	if code := errCode(t, err); code != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %s", code)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	latte := seedMenuItem(repo, "Latte", 45000)

	order, err := svc.Create(context.Background(), CreateOrderInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{MenuItemID: latte.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		OrderID: order.ID, UserID: uuid.New(), Status: enums.OrderStatusInProgress,
	}); err != nil {
		t.Fatalf("to in_progress: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		OrderID: order.ID, UserID: uuid.New(), Status: enums.OrderStatusCompleted,
	}); err != nil {
		t.Fatalf("to completed: %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), UpdateStatusInput{
		OrderID: order.ID, UserID: uuid.New(), Status: enums.OrderStatusPending,
	})
	if err == nil {
		t.Fatal("expected rejection of backwards transition")
	}
	if code := errCode(t, err); code != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %s", code)
	}
}

func TestUpdateStatusCancelFreesTable(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	latte := seedMenuItem(repo, "Latte", 45000)
	table := seedTable(repo, "T1")

	order, err := svc.Create(context.Background(), CreateOrderInput{
		UserID:  uuid.New(),
		TableID: &table.ID,
		Items:   []OrderItemInput{{MenuItemID: latte.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	cancelled, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		OrderID: order.ID, UserID: uuid.New(), Status: enums.OrderStatusCancelled,
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.TableID != nil {
		t.Fatal("expected table detached on cancel")
	}
}
