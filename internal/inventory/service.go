package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	pkgerrors "github.com/haianhng/cafepos-backend/pkg/errors"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines stock tracking operations.
type Service interface {
	CreateItem(ctx context.Context, input CreateItemInput) (*models.InventoryItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	ListItems(ctx context.Context, params pagination.Params, filters ListFilters) (*ItemList, error)
	ListLowStock(ctx context.Context) ([]models.InventoryItem, error)
	UpdateItem(ctx context.Context, input UpdateItemInput) (*models.InventoryItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	RecordTransaction(ctx context.Context, input RecordTransactionInput) (*TransactionResult, error)
	ListTransactions(ctx context.Context, itemID uuid.UUID, params pagination.Params) (*TransactionList, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds an inventory service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*models.InventoryItem, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if input.Unit == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit required")
	}
	if input.Quantity.IsNegative() || input.MinQuantity.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantities cannot be negative")
	}
	if input.CostPerUnit < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
	}

	item := &models.InventoryItem{
		Name:        input.Name,
		Unit:        input.Unit,
		Quantity:    input.Quantity,
		MinQuantity: input.MinQuantity,
		CostPerUnit: input.CostPerUnit,
	}
	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory item")
	}
	return created, nil
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}
	return item, nil
}

func (s *service) ListItems(ctx context.Context, params pagination.Params, filters ListFilters) (*ItemList, error) {
	items, total, err := s.repo.ListItems(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory items")
	}
	return &ItemList{
		Items: items,
		Meta:  pagination.NewMeta(params, total),
	}, nil
}

func (s *service) ListLowStock(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.repo.ListLowStockItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock items")
	}
	return items, nil
}

func (s *service) UpdateItem(ctx context.Context, input UpdateItemInput) (*models.InventoryItem, error) {
	if input.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
		}
		updates["name"] = *input.Name
	}
	if input.Unit != nil {
		if *input.Unit == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit required")
		}
		updates["unit"] = *input.Unit
	}
	if input.MinQuantity != nil {
		if input.MinQuantity.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "min quantity cannot be negative")
		}
		updates["min_quantity"] = *input.MinQuantity
	}
	if input.CostPerUnit != nil {
		if *input.CostPerUnit < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
		}
		updates["cost_per_unit"] = *input.CostPerUnit
	}

	var result *models.InventoryItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindItemByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
		}
		if len(updates) > 0 {
			if err := repo.UpdateItem(ctx, item.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory item")
			}
			item, err = repo.FindItemByID(ctx, item.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload inventory item")
			}
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete inventory item")
	}
	return nil
}

// RecordTransaction appends a ledger entry and moves the item quantity.
// "in" adds, "out" subtracts and fails on insufficient stock, "adjust" sets
// the quantity to the given value and records the signed delta.
func (s *service) RecordTransaction(ctx context.Context, input RecordTransactionInput) (*TransactionResult, error) {
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction type")
	}
	switch input.Type {
	case enums.InventoryTransactionIn, enums.InventoryTransactionOut:
		if !input.Quantity.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
	case enums.InventoryTransactionAdjust:
		if input.Quantity.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
		}
	}

	var result *TransactionResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindItemByID(ctx, input.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
		}

		var newQuantity, ledgerQuantity decimal.Decimal
		switch input.Type {
		case enums.InventoryTransactionIn:
			newQuantity = item.Quantity.Add(input.Quantity)
			ledgerQuantity = input.Quantity
		case enums.InventoryTransactionOut:
			if item.Quantity.LessThan(input.Quantity) {
				return pkgerrors.New(pkgerrors.CodeDomainRule, fmt.Sprintf("insufficient stock: have %s %s, need %s", item.Quantity, item.Unit, input.Quantity))
			}
			newQuantity = item.Quantity.Sub(input.Quantity)
			ledgerQuantity = input.Quantity.Neg()
		case enums.InventoryTransactionAdjust:
			newQuantity = input.Quantity
			ledgerQuantity = input.Quantity.Sub(item.Quantity)
		}

		txn := &models.InventoryTransaction{
			InventoryItemID: item.ID,
			UserID:          input.UserID,
			Type:            input.Type,
			Quantity:        ledgerQuantity,
			Reason:          input.Reason,
		}
		if _, err := repo.CreateTransaction(ctx, txn); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record transaction")
		}
		if err := repo.UpdateItem(ctx, item.ID, map[string]any{"quantity": newQuantity}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item quantity")
		}
		item.Quantity = newQuantity
		result = &TransactionResult{Item: item, LowStock: item.IsLowStock()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) ListTransactions(ctx context.Context, itemID uuid.UUID, params pagination.Params) (*TransactionList, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if _, err := s.GetItem(ctx, itemID); err != nil {
		return nil, err
	}
	transactions, total, err := s.repo.ListTransactions(ctx, itemID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
	}
	return &TransactionList{
		Transactions: transactions,
		Meta:         pagination.NewMeta(params, total),
	}, nil
}
