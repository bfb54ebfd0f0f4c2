package repository

import (
	"context"

	"github.com/oksasatya/taskhub-api/internal/domain/entity"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	Insert(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, skip, limit int) ([]entity.User, int64, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id int64) error
}
