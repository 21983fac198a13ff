package reports

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
)

func setupReportsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schemas := []string{`
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS menu_items (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  price INTEGER NOT NULL,
  image_url TEXT,
  is_available INTEGER NOT NULL DEFAULT 1,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS layout_objects (
  id TEXT PRIMARY KEY,
  floor_id TEXT NOT NULL,
  type TEXT NOT NULL,
  name TEXT NOT NULL,
  position_x REAL NOT NULL DEFAULT 0,
  position_y REAL NOT NULL DEFAULT 0,
  width REAL NOT NULL DEFAULT 80,
  height REAL NOT NULL DEFAULT 80,
  rotation REAL NOT NULL DEFAULT 0,
  properties TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  customer_id TEXT,
  table_id TEXT,
  order_number TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'pending',
  subtotal INTEGER NOT NULL DEFAULT 0,
  tax INTEGER NOT NULL DEFAULT 0,
  discount INTEGER NOT NULL DEFAULT 0,
  total INTEGER NOT NULL DEFAULT 0,
  total_all INTEGER NOT NULL DEFAULT 0,
  highest_total INTEGER NOT NULL DEFAULT 0,
  notes TEXT,
  order_history TEXT NOT NULL DEFAULT '',
  is_deleted_item INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  menu_item_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price INTEGER NOT NULL,
  subtotal INTEGER NOT NULL,
  notes TEXT,
  options TEXT,
  is_paid INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS payments (
  id TEXT PRIMARY KEY,
  invoice_id TEXT NOT NULL,
  amount INTEGER NOT NULL,
  payment_method TEXT NOT NULL DEFAULT 'cash',
  reference_number TEXT,
  paid_at DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`}
	for _, schema := range schemas {
		require.NoError(t, db.Exec(schema).Error)
	}
	return db
}

type reportsFixture struct {
	db       *gorm.DB
	coffee   uuid.UUID
	pastry   uuid.UUID
	espresso uuid.UUID
	latte    uuid.UUID
	muffin   uuid.UUID
	tableA   uuid.UUID
	tableB   uuid.UUID
	seq      int
}

func (f *reportsFixture) order(t *testing.T, status enums.OrderStatus, tableID *uuid.UUID, day string, totalAll int64) uuid.UUID {
	t.Helper()
	f.seq++
	createdAt, err := time.Parse("2006-01-02 15:04", day+" 10:00")
	require.NoError(t, err)
	order := models.Order{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		TableID:     tableID,
		OrderNumber: "ORD-" + day + "-" + uuid.NewString()[:8],
		Status:      status,
		Subtotal:    totalAll,
		Total:       totalAll,
		TotalAll:    totalAll,
		CreatedAt:   createdAt,
	}
	require.NoError(t, f.db.Create(&order).Error)
	return order.ID
}

func (f *reportsFixture) line(t *testing.T, orderID, menuItemID uuid.UUID, quantity int, unitPrice int64) {
	t.Helper()
	item := models.OrderItem{
		ID:         uuid.New(),
		OrderID:    orderID,
		MenuItemID: menuItemID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Subtotal:   int64(quantity) * unitPrice,
	}
	require.NoError(t, f.db.Create(&item).Error)
}

func newReportsFixture(t *testing.T) *reportsFixture {
	t.Helper()
	f := &reportsFixture{
		db:       setupReportsTestDB(t),
		coffee:   uuid.New(),
		pastry:   uuid.New(),
		espresso: uuid.New(),
		latte:    uuid.New(),
		muffin:   uuid.New(),
		tableA:   uuid.New(),
		tableB:   uuid.New(),
	}

	require.NoError(t, f.db.Exec(
		`INSERT INTO categories (id, name) VALUES (?, 'Coffee'), (?, 'Pastry')`,
		f.coffee, f.pastry,
	).Error)
	require.NoError(t, f.db.Exec(
		`INSERT INTO menu_items (id, category_id, name, price) VALUES (?, ?, 'Espresso', 30000), (?, ?, 'Latte', 45000), (?, ?, 'Muffin', 25000)`,
		f.espresso, f.coffee, f.latte, f.coffee, f.muffin, f.pastry,
	).Error)
	require.NoError(t, f.db.Exec(
		`INSERT INTO layout_objects (id, floor_id, type, name) VALUES (?, ?, 'table', 'T1'), (?, ?, 'table', 'T2')`,
		f.tableA, uuid.New(), f.tableB, uuid.New(),
	).Error)
	return f
}

func TestSalesByDay(t *testing.T) {
	f := newReportsFixture(t)
	repo := NewRepository(f.db)

	f.order(t, enums.OrderStatusCompleted, &f.tableA, "2025-08-30", 100000)
	f.order(t, enums.OrderStatusPaid, &f.tableA, "2025-08-30", 50000)
	f.order(t, enums.OrderStatusCompleted, &f.tableB, "2025-08-31", 75000)
	// Open and cancelled orders never count as revenue.
	f.order(t, enums.OrderStatusInProgress, &f.tableB, "2025-08-31", 999999)
	f.order(t, enums.OrderStatusCancelled, nil, "2025-08-31", 888888)
	// Outside the requested range.
	f.order(t, enums.OrderStatusPaid, nil, "2025-08-01", 10000)

	days, err := repo.SalesByDay(context.Background(), "2025-08-30", "2025-08-31")
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, "2025-08-30", days[0].Date)
	assert.Equal(t, int64(150000), days[0].Revenue)
	assert.Equal(t, int64(2), days[0].Orders)
	assert.Equal(t, "2025-08-31", days[1].Date)
	assert.Equal(t, int64(75000), days[1].Revenue)
	assert.Equal(t, int64(1), days[1].Orders)
}

func TestTopItemsRanksByQuantity(t *testing.T) {
	f := newReportsFixture(t)
	repo := NewRepository(f.db)

	settled := f.order(t, enums.OrderStatusPaid, &f.tableA, "2025-08-30", 0)
	f.line(t, settled, f.espresso, 5, 30000)
	f.line(t, settled, f.latte, 2, 45000)
	f.line(t, settled, f.muffin, 3, 25000)

	open := f.order(t, enums.OrderStatusPending, &f.tableB, "2025-08-30", 0)
	f.line(t, open, f.latte, 50, 45000)

	items, err := repo.TopItems(context.Background(), "", "", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Espresso", items[0].Name)
	assert.Equal(t, int64(5), items[0].Quantity)
	assert.Equal(t, int64(150000), items[0].Revenue)
	assert.Equal(t, "Muffin", items[1].Name)
}

func TestCategoryRevenue(t *testing.T) {
	f := newReportsFixture(t)
	repo := NewRepository(f.db)

	settled := f.order(t, enums.OrderStatusCompleted, &f.tableA, "2025-08-30", 0)
	f.line(t, settled, f.espresso, 2, 30000)
	f.line(t, settled, f.latte, 1, 45000)
	f.line(t, settled, f.muffin, 4, 25000)

	rows, err := repo.CategoryRevenue(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Coffee", rows[0].Name)
	assert.Equal(t, int64(105000), rows[0].Revenue)
	assert.Equal(t, int64(3), rows[0].Quantity)
	assert.Equal(t, "Pastry", rows[1].Name)
	assert.Equal(t, int64(100000), rows[1].Revenue)
}

func TestTableUsage(t *testing.T) {
	f := newReportsFixture(t)
	repo := NewRepository(f.db)

	f.order(t, enums.OrderStatusCompleted, &f.tableA, "2025-08-30", 100000)
	f.order(t, enums.OrderStatusPaid, &f.tableA, "2025-08-31", 60000)
	f.order(t, enums.OrderStatusCompleted, &f.tableB, "2025-08-31", 40000)
	// Takeaway orders carry no table and are left out.
	f.order(t, enums.OrderStatusPaid, nil, "2025-08-31", 30000)

	rows, err := repo.TableUsage(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "T1", rows[0].Name)
	assert.Equal(t, int64(2), rows[0].Orders)
	assert.Equal(t, int64(160000), rows[0].Revenue)
	assert.Equal(t, "T2", rows[1].Name)
	assert.Equal(t, int64(1), rows[1].Orders)
}

func TestDailySummaryQueries(t *testing.T) {
	f := newReportsFixture(t)
	repo := NewRepository(f.db)

	f.order(t, enums.OrderStatusPending, &f.tableA, "2025-08-31", 20000)
	f.order(t, enums.OrderStatusCompleted, &f.tableA, "2025-08-31", 80000)
	f.order(t, enums.OrderStatusPaid, &f.tableB, "2025-08-31", 50000)
	f.order(t, enums.OrderStatusPaid, &f.tableB, "2025-08-30", 70000)

	paidAt, err := time.Parse("2006-01-02 15:04", "2025-08-31 14:30")
	require.NoError(t, err)
	require.NoError(t, f.db.Create(&models.Payment{
		ID:        uuid.New(),
		InvoiceID: uuid.New(),
		Amount:    50000,
		PaidAt:    paidAt,
	}).Error)

	counts, err := repo.OrderCountsByStatus(context.Background(), "2025-08-31")
	require.NoError(t, err)
	require.Len(t, counts, 3)

	byStatus := map[string]int64{}
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	assert.Equal(t, int64(1), byStatus["pending"])
	assert.Equal(t, int64(1), byStatus["completed"])
	assert.Equal(t, int64(1), byStatus["paid"])

	revenue, err := repo.RevenueForDay(context.Background(), "2025-08-31")
	require.NoError(t, err)
	assert.Equal(t, int64(130000), revenue)

	collected, err := repo.CollectedForDay(context.Background(), "2025-08-31")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), collected)
}
