package menu

import (
	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

// CreateCategoryInput adds a menu section.
type CreateCategoryInput struct {
	Name      string
	SortOrder int
}

// UpdateCategoryInput edits a menu section. Nil fields are left untouched.
type UpdateCategoryInput struct {
	ID        uuid.UUID
	Name      *string
	SortOrder *int
	IsActive  *bool
}

// CreateItemInput adds a sellable product to a category.
type CreateItemInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description *string
	Price       int64
	ImageURL    *string
	SortOrder   int
}

// UpdateItemInput edits a product. Nil fields are left untouched.
type UpdateItemInput struct {
	ID          uuid.UUID
	CategoryID  *uuid.UUID
	Name        *string
	Description *string
	Price       *int64
	ImageURL    *string
	IsAvailable *bool
	SortOrder   *int
}

// CreateOptionInput adds an add-on to a product.
type CreateOptionInput struct {
	MenuItemID uuid.UUID
	Name       string
	ExtraPrice int64
}

// UpdateOptionInput edits an add-on. Nil fields are left untouched.
type UpdateOptionInput struct {
	ID         uuid.UUID
	Name       *string
	ExtraPrice *int64
}

// ItemFilters describe the inputs supported by the item list.
type ItemFilters struct {
	CategoryID    *uuid.UUID
	Search        *string
	OnlyAvailable bool
}

// ItemList wraps one page of menu items plus page metadata.
type ItemList struct {
	Items []models.MenuItem `json:"items"`
	Meta  pagination.Meta   `json:"meta"`
}
