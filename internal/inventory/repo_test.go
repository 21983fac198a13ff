package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schemas := []string{`
CREATE TABLE IF NOT EXISTS inventory_items (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  unit TEXT NOT NULL,
  quantity NUMERIC NOT NULL DEFAULT 0,
  min_quantity NUMERIC NOT NULL DEFAULT 0,
  cost_per_unit INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS inventory_transactions (
  id TEXT PRIMARY KEY,
  inventory_item_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  type TEXT NOT NULL,
  quantity NUMERIC NOT NULL,
  reason TEXT,
  created_at DATETIME
);`}
	for _, schema := range schemas {
		require.NoError(t, db.Exec(schema).Error)
	}
	return db
}

func createTestItem(t *testing.T, repo Repository, name, quantity, minQuantity string) *models.InventoryItem {
	t.Helper()
	item, err := repo.CreateItem(context.Background(), &models.InventoryItem{
		Name:        name,
		Unit:        "kg",
		Quantity:    decimal.RequireFromString(quantity),
		MinQuantity: decimal.RequireFromString(minQuantity),
		CostPerUnit: 100000,
	})
	require.NoError(t, err)
	return item
}

func TestRepositoryItemRoundTrip(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)

	created := createTestItem(t, repo, "Coffee beans", "12.5", "2")
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindItemByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coffee beans", found.Name)
	assert.True(t, found.Quantity.Equal(decimal.RequireFromString("12.5")))
}

func TestRepositoryListItemsFilters(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)

	createTestItem(t, repo, "Coffee beans", "10", "2")
	createTestItem(t, repo, "Oat milk", "1", "4")

	low, total, err := repo.ListItems(context.Background(), pagination.Params{Page: 1, PerPage: 10}, ListFilters{LowStock: true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, low, 1)
	assert.Equal(t, "Oat milk", low[0].Name)

	search := "coffee"
	named, _, err := repo.ListItems(context.Background(), pagination.Params{Page: 1, PerPage: 10}, ListFilters{Search: &search})
	require.NoError(t, err)
	require.Len(t, named, 1)
	assert.Equal(t, "Coffee beans", named[0].Name)
}

func TestRepositoryTransactionsLedger(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	item := createTestItem(t, repo, "Coffee beans", "10", "2")
	userID := uuid.New()

	_, err := repo.CreateTransaction(context.Background(), &models.InventoryTransaction{
		InventoryItemID: item.ID,
		UserID:          userID,
		Type:            enums.InventoryTransactionIn,
		Quantity:        decimal.RequireFromString("5"),
	})
	require.NoError(t, err)
	_, err = repo.CreateTransaction(context.Background(), &models.InventoryTransaction{
		InventoryItemID: item.ID,
		UserID:          userID,
		Type:            enums.InventoryTransactionOut,
		Quantity:        decimal.RequireFromString("-3"),
	})
	require.NoError(t, err)

	transactions, total, err := repo.ListTransactions(context.Background(), item.ID, pagination.Params{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, transactions, 2)

	other, _, err := repo.ListTransactions(context.Background(), uuid.New(), pagination.Params{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRepositoryDeleteItem(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	item := createTestItem(t, repo, "Coffee beans", "10", "2")

	require.NoError(t, repo.DeleteItem(context.Background(), item.ID))
	_, err := repo.FindItemByID(context.Background(), item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
