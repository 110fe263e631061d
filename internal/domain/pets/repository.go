package pets

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven los adapters de storage.
var ErrNotFound = errors.New("not found")

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
}
