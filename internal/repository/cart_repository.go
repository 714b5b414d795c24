package repository

import (
	"app/internal/domain/model"
	"context"
)

type CartRepository interface {
	Create(ctx context.Context, userID int64) (model.Cart, error)
}
