package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schemas := []string{`
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
CREATE TABLE IF NOT EXISTS menu_item_options (
  id TEXT PRIMARY KEY,
  menu_item_id TEXT NOT NULL,
  name TEXT NOT NULL,
  extra_price INTEGER NOT NULL DEFAULT 0,
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
CREATE TABLE IF NOT EXISTS invoices (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  invoice_number TEXT NOT NULL,
  subtotal INTEGER NOT NULL,
  tax_rate REAL NOT NULL DEFAULT 0,
  tax_amount INTEGER NOT NULL DEFAULT 0,
  discount_amount INTEGER NOT NULL DEFAULT 0,
  total INTEGER NOT NULL,
  payment_status TEXT NOT NULL DEFAULT 'unpaid',
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

func insertTable(t *testing.T, db *gorm.DB) *models.LayoutObject {
	t.Helper()
	table := &models.LayoutObject{
		ID:       uuid.New(),
		FloorID:  uuid.New(),
		Type:     enums.LayoutObjectTable,
		Name:     "T1",
		IsActive: true,
	}
	require.NoError(t, db.Create(table).Error)
	return table
}

func insertMenuItem(t *testing.T, db *gorm.DB, name string, price int64) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		ID:          uuid.New(),
		CategoryID:  uuid.New(),
		Name:        name,
		Price:       price,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	menuItem := insertMenuItem(t, db, "Latte", 45000)
	order := &models.Order{
		UserID:      uuid.New(),
		OrderNumber: "ORD-20250901-0001",
		Status:      enums.OrderStatusPending,
		Items: []models.OrderItem{
			{MenuItemID: menuItem.ID, Quantity: 2, UnitPrice: 45000, Subtotal: 90000},
		},
	}

	created, err := repo.Create(ctx, order)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-20250901-0001", found.OrderNumber)
	require.Len(t, found.Items, 1)
	assert.Equal(t, int64(90000), found.Items[0].Subtotal)
}

func TestRepositoryFindActiveByTable(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	table := insertTable(t, db)

	closed := &models.Order{
		UserID:      uuid.New(),
		TableID:     &table.ID,
		OrderNumber: "ORD-20250901-0001",
		Status:      enums.OrderStatusPaid,
	}
	_, err := repo.Create(ctx, closed)
	require.NoError(t, err)

	_, err = repo.FindActiveByTable(ctx, table.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	open := &models.Order{
		UserID:      uuid.New(),
		TableID:     &table.ID,
		OrderNumber: "ORD-20250901-0002",
		Status:      enums.OrderStatusInProgress,
	}
	_, err = repo.Create(ctx, open)
	require.NoError(t, err)

	found, err := repo.FindActiveByTable(ctx, table.ID)
	require.NoError(t, err)
	assert.Equal(t, open.ID, found.ID)
}

func TestRepositoryCountByNumberPrefix(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, number := range []string{"ORD-20250901-0001", "ORD-20250901-0002", "ORD-20250831-0001"} {
		_, err := repo.Create(ctx, &models.Order{
			UserID:      uuid.New(),
			OrderNumber: number,
			Status:      enums.OrderStatusPending,
		})
		require.NoError(t, err)
	}

	count, err := repo.CountByNumberPrefix(ctx, "ORD-20250901-")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRepositoryItemMutations(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	menuItem := insertMenuItem(t, db, "Latte", 45000)
	order := &models.Order{
		UserID:      uuid.New(),
		OrderNumber: "ORD-20250901-0001",
		Status:      enums.OrderStatusPending,
		Items: []models.OrderItem{
			{MenuItemID: menuItem.ID, Quantity: 1, UnitPrice: 45000, Subtotal: 45000},
			{MenuItemID: menuItem.ID, Quantity: 2, UnitPrice: 45000, Subtotal: 90000},
		},
	}
	created, err := repo.Create(ctx, order)
	require.NoError(t, err)

	require.NoError(t, repo.MarkItemsPaid(ctx, created.ID, []uuid.UUID{created.Items[0].ID}))

	require.NoError(t, repo.DeleteUnpaidItems(ctx, created.ID))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.True(t, found.Items[0].IsPaid)
}

func TestRepositoryListFilters(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	statuses := []enums.OrderStatus{
		enums.OrderStatusPending,
		enums.OrderStatusCompleted,
		enums.OrderStatusCompleted,
	}
	for i, status := range statuses {
		_, err := repo.Create(ctx, &models.Order{
			UserID:      userID,
			OrderNumber: uuid.NewString()[:8],
			Status:      status,
			Total:       int64(1000 * (i + 1)),
		})
		require.NoError(t, err)
	}

	completed := enums.OrderStatusCompleted
	list, total, err := repo.List(ctx, pagination.Params{Page: 1, PerPage: 10}, ListFilters{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)
}

func TestRepositoryFindMenuItemsPreloadsOptions(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	menuItem := insertMenuItem(t, db, "Latte", 45000)
	option := &models.MenuItemOption{
		ID:         uuid.New(),
		MenuItemID: menuItem.ID,
		Name:       "Oat milk",
		ExtraPrice: 10000,
	}
	require.NoError(t, db.Create(option).Error)

	items, err := repo.FindMenuItemsByIDs(ctx, []uuid.UUID{menuItem.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Len(t, items[0].Options, 1)
	assert.Equal(t, int64(10000), items[0].Options[0].ExtraPrice)
}
