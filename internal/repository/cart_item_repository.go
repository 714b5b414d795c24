package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

// 追加・数量変更が商品在庫を超えるとき
var ErrInsufficientStock = errors.New("insufficient stock")

type CartItemRepository interface {
	FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error)
	// Product を結合して取得
	FindByIDWithProduct(ctx context.Context, cartItemID int64) (model.CartItem, error)
	ListByCartWithProduct(ctx context.Context, cartID int64) ([]model.CartItem, error)
	// 同一商品は数量加算。商品行と明細行をロックした上で
	// 加算後の数量が在庫を超えないことを確認してから書く。
	// 超える場合は ErrInsufficientStock、商品が消えていれば ErrNotFound。
	UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64) (model.CartItem, error)
	// 数量の置き換え。同じロックと在庫チェックを通す。
	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) (model.CartItem, error)
	DeleteByID(ctx context.Context, cartItemID int64) error
}
