package users

import (
	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
	"github.com/haianhng/cafepos-backend/pkg/enums"
	"github.com/haianhng/cafepos-backend/pkg/pagination"
)

// CreateInput registers a staff account. The account receives a generated
// temporary password which is returned exactly once.
type CreateInput struct {
	Name  string
	Email string
	Phone *string
	Role  enums.UserRole
}

// CreatedUser pairs the new account with its one-time temporary password.
type CreatedUser struct {
	User         *models.User `json:"user"`
	TempPassword string       `json:"temp_password"`
}

// UpdateInput edits an account. Nil fields are left untouched. Role changes
// go through UpdateRole.
type UpdateInput struct {
	ID       uuid.UUID
	Name     *string
	Phone    *string
	IsActive *bool
}

// UpdateRoleInput changes an account's permission level.
type UpdateRoleInput struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// ChangePasswordInput lets a signed-in user rotate their own password.
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ListFilters describe the inputs supported by the user list.
type ListFilters struct {
	Role     *enums.UserRole
	IsActive *bool
	Search   *string
}

// UserList wraps one page of accounts plus page metadata.
type UserList struct {
	Users []models.User   `json:"users"`
	Meta  pagination.Meta `json:"meta"`
}
