package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/api/middleware"
	"github.com/haianhng/cafepos-backend/api/responses"
	"github.com/haianhng/cafepos-backend/api/validators"
	ordersvc "github.com/haianhng/cafepos-backend/internal/orders"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	pkgerrors "github.com/haianhng/cafepos-backend/pkg/errors"
	"github.com/haianhng/cafepos-backend/pkg/logger"
)

type orderItemRequest struct {
	MenuItemID string   `json:"menu_item_id" validate:"required,uuid"`
	Quantity   int      `json:"quantity" validate:"required,min=1"`
	Notes      *string  `json:"notes,omitempty"`
	OptionIDs  []string `json:"option_ids,omitempty" validate:"omitempty,dive,uuid"`
}

type createOrderRequest struct {
	CustomerID *string            `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	TableID    *string            `json:"table_id,omitempty" validate:"omitempty,uuid"`
	Notes      *string            `json:"notes,omitempty"`
	Discount   int64              `json:"discount" validate:"omitempty,min=0"`
	Items      []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type updateOrderRequest struct {
	CustomerID *string            `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	TableID    *string            `json:"table_id,omitempty" validate:"omitempty,uuid"`
	Notes      *string            `json:"notes,omitempty"`
	Discount   *int64             `json:"discount,omitempty" validate:"omitempty,min=0"`
	Items      []orderItemRequest `json:"items,omitempty" validate:"omitempty,min=1,dive"`
}

type addOrderItemsRequest struct {
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled paid"`
}

type payItemsRequest struct {
	ItemIDs []string `json:"item_ids" validate:"required,min=1,dive,uuid"`
}

type mergeTablesRequest struct {
	SourceTableID string `json:"source_table_id" validate:"required,uuid"`
	TargetTableID string `json:"target_table_id" validate:"required,uuid"`
}

type moveTableRequest struct {
	FromTableID string  `json:"from_table_id" validate:"required,uuid"`
	ToTableID   string  `json:"to_table_id" validate:"required,uuid"`
	OrderID     *string `json:"order_id,omitempty" validate:"omitempty,uuid"`
}

func OrderCreate(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ordersvc.CreateOrderInput{
			UserID:   middleware.UserIDFromContext(r.Context()),
			Notes:    payload.Notes,
			Discount: payload.Discount,
		}
		if payload.CustomerID != nil {
			customerID, err := uuid.Parse(*payload.CustomerID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer id"))
				return
			}
			input.CustomerID = &customerID
		}
		if payload.TableID != nil {
			tableID, err := uuid.Parse(*payload.TableID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid table id"))
				return
			}
			input.TableID = &tableID
		}
		items, err := toOrderItems(payload.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.Items = items

		order, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func OrderGet(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

func OrderList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := ordersvc.ListFilters{}
		if raw := validators.ParseQueryString(r, "status"); raw != nil {
			status := enums.OrderStatus(*raw)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			filters.Status = &status
		}
		if raw := validators.ParseQueryString(r, "table_id"); raw != nil {
			tableID, err := uuid.Parse(*raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid table id"))
				return
			}
			filters.TableID = &tableID
		}
		if from, err := parseDateQuery(r, "date_from"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else {
			filters.DateFrom = from
		}
		if to, err := parseDateQuery(r, "date_to"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else {
			filters.DateTo = to
		}

		list, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

func OrderListActive(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}

func OrderListByTable(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tableID, err := validators.ParseUUIDParam(r, "tableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.ListByTable(r.Context(), tableID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}

func OrderUpdate(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ordersvc.UpdateOrderInput{
			OrderID:  id,
			UserID:   middleware.UserIDFromContext(r.Context()),
			Notes:    payload.Notes,
			Discount: payload.Discount,
		}
		if payload.CustomerID != nil {
			customerID, err := uuid.Parse(*payload.CustomerID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer id"))
				return
			}
			input.CustomerID = &customerID
		}
		if payload.TableID != nil {
			tableID, err := uuid.Parse(*payload.TableID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid table id"))
				return
			}
			input.TableID = &tableID
		}
		if payload.Items != nil {
			items, err := toOrderItems(payload.Items)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Items = items
		}

		order, err := svc.Update(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

func OrderAddItems(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addOrderItemsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := toOrderItems(payload.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.AddItems(r.Context(), ordersvc.AddItemsInput{
			OrderID: id,
			UserID:  middleware.UserIDFromContext(r.Context()),
			Items:   items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

func OrderUpdateStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(r.Context(), ordersvc.UpdateStatusInput{
			OrderID: id,
			UserID:  middleware.UserIDFromContext(r.Context()),
			Status:  enums.OrderStatus(payload.Status),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

func OrderPayItems(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload payItemsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemIDs, err := parseUUIDs(payload.ItemIDs, "invalid item id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PayItems(r.Context(), ordersvc.PayItemsInput{
			OrderID: id,
			UserID:  middleware.UserIDFromContext(r.Context()),
			ItemIDs: itemIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

func OrderMergeTables(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload mergeTablesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sourceID, err := uuid.Parse(payload.SourceTableID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid source table id"))
			return
		}
		targetID, err := uuid.Parse(payload.TargetTableID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target table id"))
			return
		}

		order, err := svc.MergeTables(r.Context(), ordersvc.MergeTablesInput{
			SourceTableID: sourceID,
			TargetTableID: targetID,
			UserID:        middleware.UserIDFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

func OrderMoveTable(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload moveTableRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fromID, err := uuid.Parse(payload.FromTableID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid source table id"))
			return
		}
		toID, err := uuid.Parse(payload.ToTableID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target table id"))
			return
		}

		input := ordersvc.MoveTableInput{
			FromTableID: fromID,
			ToTableID:   toID,
			UserID:      middleware.UserIDFromContext(r.Context()),
		}
		if payload.OrderID != nil {
			orderID, err := uuid.Parse(*payload.OrderID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
				return
			}
			input.OrderID = &orderID
		}

		if err := svc.MoveTable(r.Context(), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "moved"})
	}
}

func toOrderItems(items []orderItemRequest) ([]ordersvc.OrderItemInput, error) {
	out := make([]ordersvc.OrderItemInput, 0, len(items))
	for _, item := range items {
		menuItemID, err := uuid.Parse(item.MenuItemID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid menu item id")
		}
		optionIDs, err := parseUUIDs(item.OptionIDs, "invalid option id")
		if err != nil {
			return nil, err
		}
		out = append(out, ordersvc.OrderItemInput{
			MenuItemID: menuItemID,
			Quantity:   item.Quantity,
			Notes:      item.Notes,
			OptionIDs:  optionIDs,
		})
	}
	return out, nil
}

func parseUUIDs(raw []string, msg string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, msg)
		}
		out = append(out, id)
	}
	return out, nil
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter as a time.
func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	raw := validators.ParseQueryString(r, key)
	if raw == nil {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date must be formatted as YYYY-MM-DD").WithDetails(map[string]any{"field": key})
	}
	return &parsed, nil
}
