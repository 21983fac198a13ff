package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/haianhng/cafepos-backend/pkg/db/models"
)

// Repository defines the account lookups the auth flows need.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// sessionManager is the slice of session.Manager used by the service.
type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// rateLimiter is the slice of the redis client used for login throttling.
type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}
