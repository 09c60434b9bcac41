package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/foundit/foundit-api/internal/domain"
)

type PasswordResetRepository interface {
	Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.PasswordReset, error)
	FindPendingByTokenHash(ctx context.Context, tokenHash string) (*domain.PasswordReset, error)
	MarkConsumed(ctx context.Context, id int64) error
	ConsumeByUser(ctx context.Context, userID uuid.UUID) error
}
