package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/api/responses"
	"github.com/haianhng/cafepos-backend/api/validators"
	"github.com/haianhng/cafepos-backend/internal/reservations"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	pkgerrors "github.com/haianhng/cafepos-backend/pkg/errors"
	"github.com/haianhng/cafepos-backend/pkg/logger"
)

type createReservationRequest struct {
	TableID       string  `json:"table_id" validate:"required,uuid"`
	CustomerID    *string `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	CustomerName  string  `json:"customer_name" validate:"required"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	Date          string  `json:"date" validate:"required"`
	StartTime     string  `json:"start_time" validate:"required"`
	EndTime       string  `json:"end_time" validate:"required"`
	Guests        int     `json:"guests" validate:"required,gt=0"`
	Note          *string `json:"note,omitempty"`
}

type updateReservationRequest struct {
	TableID       *string `json:"table_id,omitempty" validate:"omitempty,uuid"`
	Date          *string `json:"date,omitempty"`
	StartTime     *string `json:"start_time,omitempty"`
	EndTime       *string `json:"end_time,omitempty"`
	Guests        *int    `json:"guests,omitempty" validate:"omitempty,gt=0"`
	CustomerName  *string `json:"customer_name,omitempty"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	Note          *string `json:"note,omitempty"`
}

type updateReservationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

func ReservationCreate(svc reservations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createReservationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tableID, err := uuid.Parse(payload.TableID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid table id"))
			return
		}

		input := reservations.CreateInput{
			TableID:       tableID,
			CustomerName:  payload.CustomerName,
			CustomerPhone: payload.CustomerPhone,
			Date:          payload.Date,
			StartTime:     payload.StartTime,
			EndTime:       payload.EndTime,
			Guests:        payload.Guests,
			Note:          payload.Note,
		}
		if payload.CustomerID != nil {
			customerID, err := uuid.Parse(*payload.CustomerID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer id"))
				return
			}
			input.CustomerID = &customerID
		}

		reservation, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, reservation)
	}
}

func ReservationGet(svc reservations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "reservationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reservation, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, reservation)
	}
}

func ReservationList(svc reservations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := reservations.ListFilters{Date: validators.ParseQueryString(r, "date")}
		if raw := validators.ParseQueryString(r, "table_id"); raw != nil {
			tableID, err := uuid.Parse(*raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid table id"))
				return
			}
			filters.TableID = &tableID
		}
		if raw := validators.ParseQueryString(r, "status"); raw != nil {
			status := enums.ReservationStatus(*raw)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			filters.Status = &status
		}

		list, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

func ReservationUpdate(svc reservations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "reservationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateReservationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := reservations.UpdateInput{
			ID:            id,
			Date:          payload.Date,
			StartTime:     payload.StartTime,
			EndTime:       payload.EndTime,
			Guests:        payload.Guests,
			CustomerName:  payload.CustomerName,
			CustomerPhone: payload.CustomerPhone,
			Note:          payload.Note,
		}
		if payload.TableID != nil {
			tableID, err := uuid.Parse(*payload.TableID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid table id"))
				return
			}
			input.TableID = &tableID
		}

		reservation, err := svc.Update(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, reservation)
	}
}

func ReservationUpdateStatus(svc reservations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "reservationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateReservationStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reservation, err := svc.UpdateStatus(r.Context(), reservations.UpdateStatusInput{
			ID:     id,
			Status: enums.ReservationStatus(payload.Status),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, reservation)
	}
}

func ReservationAvailability(svc reservations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := validators.ParseQueryString(r, "date")
		start := validators.ParseQueryString(r, "start_time")
		end := validators.ParseQueryString(r, "end_time")
		if date == nil || start == nil || end == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "date, start_time and end_time are required"))
			return
		}

		booked, err := svc.TableAvailability(r.Context(), reservations.AvailabilityInput{
			Date:      *date,
			StartTime: *start,
			EndTime:   *end,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"booked_table_ids": booked})
	}
}
