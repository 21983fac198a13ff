package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/db/types"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	pkgerrors "github.com/haianhng/cafepos-backend/pkg/errors"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

const orderNumberPrefix = "ORD"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error)
	ListActive(ctx context.Context) ([]models.Order, error)
	ListByTable(ctx context.Context, tableID uuid.UUID) ([]models.Order, error)
	AddItems(ctx context.Context, input AddItemsInput) (*models.Order, error)
	Update(ctx context.Context, input UpdateOrderInput) (*models.Order, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Order, error)
	PayItems(ctx context.Context, input PayItemsInput) (*models.Order, error)
	MergeTables(ctx context.Context, input MergeTablesInput) (*models.Order, error)
	MoveTable(ctx context.Context, input MoveTableInput) error
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one item")
	}
	if input.Discount < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount cannot be negative")
	}

	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if input.TableID != nil {
			if _, err := repo.FindTable(ctx, *input.TableID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "table not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load table")
			}

			// An open tab on the same table absorbs the new items instead of
			// starting a second order.
			existing, err := repo.FindActiveByTable(ctx, *input.TableID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check table session")
			}
			if existing != nil {
				merged, mergeErr := s.appendItems(ctx, repo, existing, input.Items, "items added to table session")
				if mergeErr != nil {
					return mergeErr
				}
				result = merged
				return nil
			}
		}

		items, _, err := s.resolveItems(ctx, repo, input.Items)
		if err != nil {
			return err
		}

		number, err := s.nextNumber(ctx, repo, orderNumberPrefix)
		if err != nil {
			return err
		}

		order := &models.Order{
			UserID:      input.UserID,
			CustomerID:  input.CustomerID,
			TableID:     input.TableID,
			OrderNumber: number,
			Status:      enums.OrderStatusPending,
			Discount:    input.Discount,
			Notes:       input.Notes,
			Items:       items,
		}
		recalculate(order)
		order.AppendHistory(fmt.Sprintf("order opened with %d items", len(items)))

		created, err := repo.Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error) {
	list, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return &OrderList{
		Orders: list,
		Meta:   pagination.NewMeta(params, total),
	}, nil
}

func (s *service) ListActive(ctx context.Context) ([]models.Order, error) {
	list, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active orders")
	}
	return list, nil
}

func (s *service) ListByTable(ctx context.Context, tableID uuid.UUID) ([]models.Order, error) {
	if tableID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "table id required")
	}
	list, err := s.repo.ListByTable(ctx, tableID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list table orders")
	}
	return list, nil
}

func (s *service) AddItems(ctx context.Context, input AddItemsInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item required")
	}

	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := loadEditable(ctx, repo, input.OrderID)
		if err != nil {
			return err
		}
		updated, err := s.appendItems(ctx, repo, order, input.Items, "items added")
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, input UpdateOrderInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.Discount != nil && *input.Discount < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount cannot be negative")
	}

	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := loadEditable(ctx, repo, input.OrderID)
		if err != nil {
			return err
		}

		// A nil items slice patches the header fields only.
		if input.Items != nil {
			if err := s.replaceUnpaidItems(ctx, repo, order, input.Items); err != nil {
				return err
			}
		}

		if input.CustomerID != nil {
			order.CustomerID = input.CustomerID
		}
		if input.TableID != nil {
			order.TableID = input.TableID
		}
		if input.Notes != nil {
			order.Notes = input.Notes
		}
		if input.Discount != nil {
			order.Discount = *input.Discount
		}
		recalculate(order)

		if err := repo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// replaceUnpaidItems swaps the order's unpaid lines for the requested ones,
// leaving paid lines untouched.
func (s *service) replaceUnpaidItems(ctx context.Context, repo Repository, order *models.Order, inputs []OrderItemInput) error {
	newItems, names, err := s.resolveItems(ctx, repo, inputs)
	if err != nil {
		return err
	}

	// Diff requested quantities against the current unpaid lines so the
	// activity log records what actually changed.
	oldCounts := map[uuid.UUID]int{}
	var paid []models.OrderItem
	for _, item := range order.Items {
		if item.IsPaid {
			paid = append(paid, item)
			continue
		}
		oldCounts[item.MenuItemID] += item.Quantity
	}
	newCounts := map[uuid.UUID]int{}
	for _, item := range newItems {
		newCounts[item.MenuItemID] += item.Quantity
	}

	removedAny := false
	for id, oldQty := range oldCounts {
		diff := newCounts[id] - oldQty
		if diff < 0 {
			removedAny = true
			order.AppendHistory(fmt.Sprintf("removed %d x %s", -diff, itemLabel(names, id)))
		} else if diff > 0 {
			order.AppendHistory(fmt.Sprintf("added %d x %s", diff, itemLabel(names, id)))
		}
	}
	for id, qty := range newCounts {
		if _, existed := oldCounts[id]; !existed {
			order.AppendHistory(fmt.Sprintf("added %d x %s", qty, itemLabel(names, id)))
		}
	}

	if err := repo.DeleteUnpaidItems(ctx, order.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear unpaid items")
	}
	for i := range newItems {
		newItems[i].OrderID = order.ID
	}
	if err := repo.CreateItems(ctx, newItems); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write items")
	}

	order.Items = append(paid, newItems...)
	if removedAny {
		order.IsDeletedItem = true
	}
	return nil
}

func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := findOrder(ctx, repo, input.OrderID)
		if err != nil {
			return err
		}
		if order.Status == input.Status {
			result = order
			return nil
		}
		if !canTransition(order.Status, input.Status) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move order from %s to %s", order.Status, input.Status))
		}

		order.Status = input.Status
		if input.Status == enums.OrderStatusCancelled {
			// A cancelled order frees its table immediately.
			order.TableID = nil
		}
		order.AppendHistory(fmt.Sprintf("status set to %s", input.Status))

		if err := repo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) PayItems(ctx context.Context, input PayItemsInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if len(input.ItemIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item id required")
	}

	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := findOrder(ctx, repo, input.OrderID)
		if err != nil {
			return err
		}
		if order.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is closed")
		}

		known := map[uuid.UUID]*models.OrderItem{}
		for i := range order.Items {
			known[order.Items[i].ID] = &order.Items[i]
		}
		var toMark []uuid.UUID
		for _, id := range input.ItemIDs {
			item, ok := known[id]
			if !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound, "item does not belong to order")
			}
			if item.IsPaid {
				continue
			}
			toMark = append(toMark, id)
		}
		if len(toMark) == 0 {
			result = order
			return nil
		}

		if err := repo.MarkItemsPaid(ctx, order.ID, toMark); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark items paid")
		}
		for _, id := range toMark {
			known[id].IsPaid = true
		}

		allPaid := true
		for _, item := range order.Items {
			if !item.IsPaid {
				allPaid = false
				break
			}
		}
		if allPaid {
			order.Status = enums.OrderStatusPaid
			order.AppendHistory("all items paid, order closed")
		} else {
			order.AppendHistory(fmt.Sprintf("%d items paid", len(toMark)))
		}
		recalculate(order)

		if err := repo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) MergeTables(ctx context.Context, input MergeTablesInput) (*models.Order, error) {
	if input.SourceTableID == uuid.Nil || input.TargetTableID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "source and target table ids required")
	}
	if input.SourceTableID == input.TargetTableID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "source and target tables are the same")
	}

	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		source, err := repo.FindActiveByTable(ctx, input.SourceTableID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no open order on source table")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load source order")
		}

		target, err := repo.FindActiveByTable(ctx, input.TargetTableID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load target order")
		}

		if target == nil {
			// Target table is free: the whole tab just changes seats.
			if _, err := repo.FindTable(ctx, input.TargetTableID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "target table not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load target table")
			}
			source.TableID = &input.TargetTableID
			source.AppendHistory("moved to another table")
			if err := repo.Save(ctx, source); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
			}
			result = source
			return nil
		}

		// Target already has a tab: copy the source's lines over, close the
		// source, and let the target absorb the bill.
		copied := make([]models.OrderItem, 0, len(source.Items))
		for _, item := range source.Items {
			copied = append(copied, models.OrderItem{
				OrderID:    target.ID,
				MenuItemID: item.MenuItemID,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				Subtotal:   item.Subtotal,
				Notes:      item.Notes,
				Options:    item.Options,
				IsPaid:     item.IsPaid,
			})
		}
		if err := repo.CreateItems(ctx, copied); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "copy items")
		}

		source.Status = enums.OrderStatusCancelled
		source.TableID = nil
		source.AppendHistory(fmt.Sprintf("merged into order %s", target.OrderNumber))
		if err := repo.Save(ctx, source); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close source order")
		}

		target.Items = append(target.Items, copied...)
		target.AppendHistory(fmt.Sprintf("absorbed order %s", source.OrderNumber))
		recalculate(target)
		if err := repo.Save(ctx, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save target order")
		}
		result = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) MoveTable(ctx context.Context, input MoveTableInput) error {
	if input.FromTableID == uuid.Nil || input.ToTableID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "from and to table ids required")
	}
	if input.FromTableID == input.ToTableID {
		return pkgerrors.New(pkgerrors.CodeValidation, "tables are the same")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindTable(ctx, input.ToTableID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "target table not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load target table")
		}

		occupied, err := repo.FindActiveByTable(ctx, input.ToTableID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check target table")
		}
		if occupied != nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "target table already has an open order")
		}

		var toMove []models.Order
		if input.OrderID != nil {
			order, err := findOrder(ctx, repo, *input.OrderID)
			if err != nil {
				return err
			}
			if order.TableID == nil || *order.TableID != input.FromTableID {
				return pkgerrors.New(pkgerrors.CodeDomainRule, "order is not on the source table")
			}
			if order.Status.IsTerminal() {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "order is closed")
			}
			toMove = []models.Order{*order}
		} else {
			toMove, err = repo.ListActiveByTable(ctx, input.FromTableID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list source orders")
			}
			if len(toMove) == 0 {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no open order on source table")
			}
		}

		for i := range toMove {
			order := toMove[i]
			order.TableID = &input.ToTableID
			order.AppendHistory("moved to another table")
			if err := repo.Save(ctx, &order); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
			}
		}
		return nil
	})
}

// appendItems resolves and attaches new lines to an open order, then
// recalculates totals.
func (s *service) appendItems(ctx context.Context, repo Repository, order *models.Order, inputs []OrderItemInput, note string) (*models.Order, error) {
	items, _, err := s.resolveItems(ctx, repo, inputs)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := repo.CreateItems(ctx, items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write items")
	}

	order.Items = append(order.Items, items...)
	order.AppendHistory(fmt.Sprintf("%s (%d lines)", note, len(items)))
	recalculate(order)

	if err := repo.Save(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
	}
	return order, nil
}

// resolveItems prices each requested line from the menu. Client-sent prices
// are ignored entirely. The returned map carries menu item names for history
// entries.
func (s *service) resolveItems(ctx context.Context, repo Repository, inputs []OrderItemInput) ([]models.OrderItem, map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if in.MenuItemID == uuid.Nil {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item id required")
		}
		if in.Quantity <= 0 {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		ids = append(ids, in.MenuItemID)
	}

	menuItems, err := repo.FindMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu items")
	}
	byID := make(map[uuid.UUID]*models.MenuItem, len(menuItems))
	names := make(map[uuid.UUID]string, len(menuItems))
	for i := range menuItems {
		byID[menuItems[i].ID] = &menuItems[i]
		names[menuItems[i].ID] = menuItems[i].Name
	}

	items := make([]models.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		menuItem, ok := byID[in.MenuItemID]
		if !ok {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		if !menuItem.IsAvailable {
			return nil, nil, pkgerrors.New(pkgerrors.CodeDomainRule,
				fmt.Sprintf("%s is not available", menuItem.Name))
		}

		options, err := resolveOptions(menuItem, in.OptionIDs)
		if err != nil {
			return nil, nil, err
		}

		lineUnit := menuItem.Price + options.ExtraTotal()
		items = append(items, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   in.Quantity,
			UnitPrice:  lineUnit,
			Subtotal:   lineUnit * int64(in.Quantity),
			Notes:      in.Notes,
			Options:    options,
		})
	}
	return items, names, nil
}

func resolveOptions(menuItem *models.MenuItem, optionIDs []uuid.UUID) (types.ItemOptions, error) {
	if len(optionIDs) == 0 {
		return nil, nil
	}
	byID := make(map[uuid.UUID]models.MenuItemOption, len(menuItem.Options))
	for _, opt := range menuItem.Options {
		byID[opt.ID] = opt
	}
	options := make(types.ItemOptions, 0, len(optionIDs))
	for _, id := range optionIDs {
		opt, ok := byID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("option does not belong to %s", menuItem.Name))
		}
		optID := opt.ID
		options = append(options, types.ItemOption{
			ID:         &optID,
			Name:       opt.Name,
			ExtraPrice: opt.ExtraPrice,
		})
	}
	return options, nil
}

// nextNumber issues the day-scoped sequential number, e.g. ORD-20250901-0007.
func (s *service) nextNumber(ctx context.Context, repo Repository, prefix string) (string, error) {
	day := s.now().Format("20060102")
	dayPrefix := fmt.Sprintf("%s-%s-", prefix, day)
	count, err := repo.CountByNumberPrefix(ctx, dayPrefix)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count order numbers")
	}
	return fmt.Sprintf("%s%04d", dayPrefix, count+1), nil
}

// recalculate derives the money fields from the current line set. Total is
// what is still owed: paid lines no longer count toward it.
func recalculate(order *models.Order) {
	var unpaid, all int64
	for _, item := range order.Items {
		all += item.Subtotal
		if !item.IsPaid {
			unpaid += item.Subtotal
		}
	}

	order.Subtotal = unpaid
	order.Total = unpaid - order.Discount
	if order.Total < 0 {
		order.Total = 0
	}
	order.TotalAll = all - order.Discount
	if order.TotalAll < 0 {
		order.TotalAll = 0
	}
	if order.TotalAll > order.HighestTotal {
		order.HighestTotal = order.TotalAll
	}
}

func canTransition(from, to enums.OrderStatus) bool {
	switch from {
	case enums.OrderStatusPending:
		return to == enums.OrderStatusInProgress || to == enums.OrderStatusCompleted || to == enums.OrderStatusCancelled
	case enums.OrderStatusInProgress:
		return to == enums.OrderStatusCompleted || to == enums.OrderStatusCancelled
	case enums.OrderStatusCompleted:
		return to == enums.OrderStatusPaid
	default:
		return false
	}
}

func loadEditable(ctx context.Context, repo Repository, orderID uuid.UUID) (*models.Order, error) {
	order, err := findOrder(ctx, repo, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order can no longer be edited")
	}
	return order, nil
}

func findOrder(ctx context.Context, repo Repository, orderID uuid.UUID) (*models.Order, error) {
	order, err := repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func itemLabel(names map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return id.String()
}
