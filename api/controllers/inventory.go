package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/haianhng/cafepos-backend/api/middleware"
	"github.com/haianhng/cafepos-backend/api/responses"
	"github.com/haianhng/cafepos-backend/api/validators"
	"github.com/haianhng/cafepos-backend/internal/inventory"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	pkgerrors "github.com/haianhng/cafepos-backend/pkg/errors"
	"github.com/haianhng/cafepos-backend/pkg/logger"
)

type createInventoryItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Unit        string `json:"unit" validate:"required"`
	Quantity    string `json:"quantity" validate:"required"`
	MinQuantity string `json:"min_quantity" validate:"required"`
	CostPerUnit int64  `json:"cost_per_unit" validate:"gte=0"`
}

type updateInventoryItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Unit        *string `json:"unit,omitempty"`
	MinQuantity *string `json:"min_quantity,omitempty"`
	CostPerUnit *int64  `json:"cost_per_unit,omitempty" validate:"omitempty,gte=0"`
}

type recordTransactionRequest struct {
	Type     string  `json:"type" validate:"required,oneof=in out adjust"`
	Quantity string  `json:"quantity" validate:"required"`
	Reason   *string `json:"reason,omitempty"`
}

func parseQuantity(raw, field string) (decimal.Decimal, error) {
	qty, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+field)
	}
	return qty, nil
}

func InventoryItemCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createInventoryItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity, err := parseQuantity(payload.Quantity, "quantity")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		minQuantity, err := parseQuantity(payload.MinQuantity, "min_quantity")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.CreateItem(r.Context(), inventory.CreateItemInput{
			Name:        payload.Name,
			Unit:        payload.Unit,
			Quantity:    quantity,
			MinQuantity: minQuantity,
			CostPerUnit: payload.CostPerUnit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func InventoryItemGet(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

func InventoryItemList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := inventory.ListFilters{Search: validators.ParseQueryString(r, "search")}
		lowStock, err := validators.ParseQueryBool(r, "low_stock")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if lowStock != nil {
			filters.LowStock = *lowStock
		}

		list, err := svc.ListItems(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

func InventoryLowStock(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListLowStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

func InventoryItemUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateInventoryItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := inventory.UpdateItemInput{
			ID:          id,
			Name:        payload.Name,
			Unit:        payload.Unit,
			CostPerUnit: payload.CostPerUnit,
		}
		if payload.MinQuantity != nil {
			minQuantity, err := parseQuantity(*payload.MinQuantity, "min_quantity")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.MinQuantity = &minQuantity
		}

		item, err := svc.UpdateItem(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

func InventoryItemDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func InventoryTransactionCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload recordTransactionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity, err := parseQuantity(payload.Quantity, "quantity")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.RecordTransaction(r.Context(), inventory.RecordTransactionInput{
			ItemID:   itemID,
			UserID:   middleware.UserIDFromContext(r.Context()),
			Type:     enums.InventoryTransactionType(payload.Type),
			Quantity: quantity,
			Reason:   payload.Reason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func InventoryTransactionList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListTransactions(r.Context(), itemID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}
