package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/foundit/foundit-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, username, fullName, email string, passwordHash, passwordSalt []byte) (*domain.User, error)
	UpsertByEmail(ctx context.Context, email, fullName string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, fullName, username *string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
