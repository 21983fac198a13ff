package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/api/responses"
	"github.com/haianhng/cafepos-backend/api/validators"
	layoutsvc "github.com/haianhng/cafepos-backend/internal/layout"
	"github.com/haianhng/cafepos-backend/pkg/db/types"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	pkgerrors "github.com/haianhng/cafepos-backend/pkg/errors"
	"github.com/haianhng/cafepos-backend/pkg/logger"
)

type createFloorRequest struct {
	Name        string `json:"name" validate:"required"`
	FloorNumber int    `json:"floor_number" validate:"omitempty,min=0"`
}

type updateFloorRequest struct {
	Name        *string `json:"name,omitempty"`
	FloorNumber *int    `json:"floor_number,omitempty" validate:"omitempty,min=0"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type createObjectRequest struct {
	FloorID    string         `json:"floor_id" validate:"required,uuid"`
	Type       string         `json:"type" validate:"required,oneof=table wall window door reception"`
	Name       string         `json:"name" validate:"required"`
	PositionX  float64        `json:"position_x"`
	PositionY  float64        `json:"position_y"`
	Width      float64        `json:"width" validate:"omitempty,gt=0"`
	Height     float64        `json:"height" validate:"omitempty,gt=0"`
	Rotation   float64        `json:"rotation"`
	Properties map[string]any `json:"properties,omitempty"`
}

type updateObjectRequest struct {
	Name       *string        `json:"name,omitempty"`
	PositionX  *float64       `json:"position_x,omitempty"`
	PositionY  *float64       `json:"position_y,omitempty"`
	Width      *float64       `json:"width,omitempty" validate:"omitempty,gt=0"`
	Height     *float64       `json:"height,omitempty" validate:"omitempty,gt=0"`
	Rotation   *float64       `json:"rotation,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	IsActive   *bool          `json:"is_active,omitempty"`
}

type batchObjectRequest struct {
	ID string `json:"id" validate:"required,uuid"`
	updateObjectRequest
}

type batchUpdateRequest struct {
	Objects []batchObjectRequest `json:"objects" validate:"required,min=1,dive"`
}

func FloorCreate(svc layoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createFloorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		floor, err := svc.CreateFloor(r.Context(), layoutsvc.CreateFloorInput{
			Name:        payload.Name,
			FloorNumber: payload.FloorNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, floor)
	}
}

func FloorGet(svc layoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "floorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		floor, err := svc.GetFloor(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, floor)
	}
}

func FloorList(svc layoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		includeInactive, err := validators.ParseQueryBool(r, "include_inactive")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		floors, err := svc.ListFloors(r.Context(), includeInactive != nil && *includeInactive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, floors)
	}
}

func FloorUpdate(svc layoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "floorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateFloorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		floor, err := svc.UpdateFloor(r.Context(), layoutsvc.UpdateFloorInput{
			ID:          id,
			Name:        payload.Name,
			FloorNumber: payload.FloorNumber,
			IsActive:    payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, floor)
	}
}

func FloorDelete(svc layoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "floorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteFloor(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func FloorTables(svc layoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "floorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tables, err := svc.FloorTables(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tables)
	}
}

func LayoutObjectCreate(svc layoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createObjectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		floorID, err := uuid.Parse(payload.FloorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid floor id"))
			return
		}

		object, err := svc.CreateObject(r.Context(), layoutsvc.CreateObjectInput{
			FloorID:    floorID,
			Type:       enums.LayoutObjectType(payload.Type),
			Name:       payload.Name,
			PositionX:  payload.PositionX,
			PositionY:  payload.PositionY,
			Width:      payload.Width,
			Height:     payload.Height,
			Rotation:   payload.Rotation,
			Properties: types.JSONMap(payload.Properties),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, object)
	}
}

func LayoutObjectUpdate(svc layoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "objectId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateObjectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		object, err := svc.UpdateObject(r.Context(), toObjectUpdate(id, payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, object)
	}
}

func LayoutObjectBatchUpdate(svc layoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		floorID, err := validators.ParseUUIDParam(r, "floorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload batchUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := layoutsvc.BatchUpdateInput{FloorID: floorID}
		for _, obj := range payload.Objects {
			objectID, err := uuid.Parse(obj.ID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid object id"))
				return
			}
			input.Objects = append(input.Objects, toObjectUpdate(objectID, obj.updateObjectRequest))
		}

		objects, err := svc.BatchUpdateObjects(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, objects)
	}
}

func LayoutObjectDelete(svc layoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "objectId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteObject(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func toObjectUpdate(id uuid.UUID, payload updateObjectRequest) layoutsvc.UpdateObjectInput {
	return layoutsvc.UpdateObjectInput{
		ID:         id,
		Name:       payload.Name,
		PositionX:  payload.PositionX,
		PositionY:  payload.PositionY,
		Width:      payload.Width,
		Height:     payload.Height,
		Rotation:   payload.Rotation,
		Properties: types.JSONMap(payload.Properties),
		IsActive:   payload.IsActive,
	}
}
