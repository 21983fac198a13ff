package layout

import (
	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/pkg/db/types"
	"github.com/haianhng/cafepos-backend/pkg/enums"
)

// CreateFloorInput adds a level to the venue.
type CreateFloorInput struct {
	Name        string
	FloorNumber int
}

// UpdateFloorInput edits a level. Nil fields are left untouched.
type UpdateFloorInput struct {
	ID          uuid.UUID
	Name        *string
	FloorNumber *int
	IsActive    *bool
}

// CreateObjectInput places an element on a floor plan.
type CreateObjectInput struct {
	FloorID    uuid.UUID
	Type       enums.LayoutObjectType
	Name       string
	PositionX  float64
	PositionY  float64
	Width      float64
	Height     float64
	Rotation   float64
	Properties types.JSONMap
}

// UpdateObjectInput moves or edits an element. Nil fields are left untouched.
type UpdateObjectInput struct {
	ID         uuid.UUID
	Name       *string
	PositionX  *float64
	PositionY  *float64
	Width      *float64
	Height     *float64
	Rotation   *float64
	Properties types.JSONMap
	IsActive   *bool
}

// BatchUpdateInput applies a set of object edits in one transaction, the way
// the floor-plan editor saves a whole drag session.
type BatchUpdateInput struct {
	FloorID uuid.UUID
	Objects []UpdateObjectInput
}

// TableStatus pairs a table with whether an active order sits on it.
type TableStatus struct {
	Table    ObjectView `json:"table"`
	Occupied bool       `json:"occupied"`
}

// ObjectView is the API shape of a layout object.
type ObjectView struct {
	ID        uuid.UUID              `json:"id"`
	FloorID   uuid.UUID              `json:"floor_id"`
	Type      enums.LayoutObjectType `json:"type"`
	Name      string                 `json:"name"`
	PositionX float64                `json:"position_x"`
	PositionY float64                `json:"position_y"`
	Width     float64                `json:"width"`
	Height    float64                `json:"height"`
	Rotation  float64                `json:"rotation"`
}
