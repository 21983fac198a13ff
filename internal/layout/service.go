package layout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	pkgerrors "github.com/haianhng/cafepos-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines floor-plan operations.
type Service interface {
	CreateFloor(ctx context.Context, input CreateFloorInput) (*models.Floor, error)
	GetFloor(ctx context.Context, id uuid.UUID) (*models.Floor, error)
	ListFloors(ctx context.Context, includeInactive bool) ([]models.Floor, error)
	UpdateFloor(ctx context.Context, input UpdateFloorInput) (*models.Floor, error)
	DeleteFloor(ctx context.Context, id uuid.UUID) error

	CreateObject(ctx context.Context, input CreateObjectInput) (*models.LayoutObject, error)
	UpdateObject(ctx context.Context, input UpdateObjectInput) (*models.LayoutObject, error)
	BatchUpdateObjects(ctx context.Context, input BatchUpdateInput) ([]models.LayoutObject, error)
	DeleteObject(ctx context.Context, id uuid.UUID) error

	FloorTables(ctx context.Context, floorID uuid.UUID) ([]TableStatus, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a layout service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("layout repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) CreateFloor(ctx context.Context, input CreateFloorInput) (*models.Floor, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	floor := &models.Floor{
		Name:        input.Name,
		FloorNumber: input.FloorNumber,
		IsActive:    true,
	}
	created, err := s.repo.CreateFloor(ctx, floor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create floor")
	}
	return created, nil
}

func (s *service) GetFloor(ctx context.Context, id uuid.UUID) (*models.Floor, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "floor id required")
	}
	floor, err := s.repo.FindFloorByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "floor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load floor")
	}
	return floor, nil
}

func (s *service) ListFloors(ctx context.Context, includeInactive bool) ([]models.Floor, error) {
	floors, err := s.repo.ListFloors(ctx, includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list floors")
	}
	return floors, nil
}

func (s *service) UpdateFloor(ctx context.Context, input UpdateFloorInput) (*models.Floor, error) {
	if input.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "floor id required")
	}
	if _, err := s.GetFloor(ctx, input.ID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
		}
		updates["name"] = *input.Name
	}
	if input.FloorNumber != nil {
		updates["floor_number"] = *input.FloorNumber
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateFloor(ctx, input.ID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update floor")
		}
	}
	return s.GetFloor(ctx, input.ID)
}

func (s *service) DeleteFloor(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetFloor(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteFloor(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete floor")
	}
	return nil
}

func (s *service) CreateObject(ctx context.Context, input CreateObjectInput) (*models.LayoutObject, error) {
	if input.FloorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "floor id required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid object type")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if _, err := s.GetFloor(ctx, input.FloorID); err != nil {
		return nil, err
	}

	object := &models.LayoutObject{
		FloorID:    input.FloorID,
		Type:       input.Type,
		Name:       input.Name,
		PositionX:  input.PositionX,
		PositionY:  input.PositionY,
		Width:      input.Width,
		Height:     input.Height,
		Rotation:   input.Rotation,
		Properties: input.Properties,
		IsActive:   true,
	}
	if object.Width <= 0 {
		object.Width = 80
	}
	if object.Height <= 0 {
		object.Height = 80
	}
	created, err := s.repo.CreateObject(ctx, object)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create layout object")
	}
	return created, nil
}

func (s *service) UpdateObject(ctx context.Context, input UpdateObjectInput) (*models.LayoutObject, error) {
	var result *models.LayoutObject
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		updated, err := applyObjectUpdate(ctx, repo, input)
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

// BatchUpdateObjects saves a whole editor session atomically. Any failing
// object aborts the batch.
func (s *service) BatchUpdateObjects(ctx context.Context, input BatchUpdateInput) ([]models.LayoutObject, error) {
	if input.FloorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "floor id required")
	}
	if len(input.Objects) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "objects required")
	}

	var result []models.LayoutObject
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, edit := range input.Objects {
			updated, err := applyObjectUpdate(ctx, repo, edit)
			if err != nil {
				return err
			}
			if updated.FloorID != input.FloorID {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("object %s is not on this floor", updated.ID))
			}
			result = append(result, *updated)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) DeleteObject(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "object id required")
	}
	if _, err := s.repo.FindObjectByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "layout object not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load layout object")
	}
	if err := s.repo.DeleteObject(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete layout object")
	}
	return nil
}

// FloorTables lists the tables on a floor with their live occupancy, derived
// from active orders rather than stored on the table row.
func (s *service) FloorTables(ctx context.Context, floorID uuid.UUID) ([]TableStatus, error) {
	if _, err := s.GetFloor(ctx, floorID); err != nil {
		return nil, err
	}
	objects, err := s.repo.ListObjectsByFloor(ctx, floorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list objects")
	}
	occupiedIDs, err := s.repo.ListOccupiedTableIDs(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list occupied tables")
	}
	occupied := make(map[uuid.UUID]bool, len(occupiedIDs))
	for _, id := range occupiedIDs {
		occupied[id] = true
	}

	var tables []TableStatus
	for _, object := range objects {
		if object.Type != enums.LayoutObjectTable {
			continue
		}
		tables = append(tables, TableStatus{
			Table: ObjectView{
				ID:        object.ID,
				FloorID:   object.FloorID,
				Type:      object.Type,
				Name:      object.Name,
				PositionX: object.PositionX,
				PositionY: object.PositionY,
				Width:     object.Width,
				Height:    object.Height,
				Rotation:  object.Rotation,
			},
			Occupied: occupied[object.ID],
		})
	}
	return tables, nil
}

func applyObjectUpdate(ctx context.Context, repo Repository, input UpdateObjectInput) (*models.LayoutObject, error) {
	if input.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "object id required")
	}
	object, err := repo.FindObjectByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "layout object not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load layout object")
	}

	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
		}
		updates["name"] = *input.Name
	}
	if input.PositionX != nil {
		updates["position_x"] = *input.PositionX
	}
	if input.PositionY != nil {
		updates["position_y"] = *input.PositionY
	}
	if input.Width != nil {
		if *input.Width <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "width must be positive")
		}
		updates["width"] = *input.Width
	}
	if input.Height != nil {
		if *input.Height <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "height must be positive")
		}
		updates["height"] = *input.Height
	}
	if input.Rotation != nil {
		updates["rotation"] = *input.Rotation
	}
	if input.Properties != nil {
		updates["properties"] = input.Properties
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := repo.UpdateObject(ctx, object.ID, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update layout object")
		}
		object, err = repo.FindObjectByID(ctx, object.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload layout object")
		}
	}
	return object, nil
}
