package usecase

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"
	"net/http"
)

// CartUsecase は /carts の業務ロジックです。
// 在庫はここでは読むだけ（カート追加で減らさない）。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// カート作成。同一ユーザーの既存カートがあっても新しく作る。
func (u *CartUsecase) CreateCart(ctx context.Context, userID int64) (model.Cart, error) {
	if userID <= 0 {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	return u.cartRepo.Create(ctx, userID)
}

// カートに追加（同一商品は数量加算）。
// 在庫チェックは加算後の合計に対して行う。足りなければ既存明細はそのまま。
func (u *CartUsecase) AddItemToCart(ctx context.Context, cartID int64, productID int64, quantity int64) (model.CartItem, error) {
	if quantity < 1 {
		return model.CartItem{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, ErrProductNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}

	// 先に合計数量を確かめて、超過なら書き込みに進まない
	existing, err := u.cartItemRepo.FindByCartAndProduct(ctx, cartID, productID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, err
	}

	requested := existing.Quantity + quantity
	if requested > p.Inventory {
		return model.CartItem{}, ErrInsufficientInventory
	}

	// 本チェックはrepo側。商品行と明細行をロックして同時addの取りこぼしを防ぐ。
	item, err := u.cartItemRepo.UpsertByCartAndProduct(ctx, cartID, productID, quantity)
	if errors.Is(err, repo.ErrInsufficientStock) {
		return model.CartItem{}, ErrInsufficientInventory
	}
	if errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, ErrProductNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}

	return item, nil
}

// カート明細の一覧と金額サマリ。空カートは items=[] と 0 サマリ。
func (u *CartUsecase) GetCartItems(ctx context.Context, cartID int64) (CartItemsOutput, error) {
	items, err := u.cartItemRepo.ListByCartWithProduct(ctx, cartID)
	if err != nil {
		return CartItemsOutput{}, err
	}

	return priceCart(items), nil
}

// 数量変更（加算ではなく置き換え）。在庫チェックはaddと同じ上限。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, cartItemID int64, quantity int64) (model.CartItem, error) {
	if quantity < 1 {
		return model.CartItem{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	item, err := u.cartItemRepo.FindByIDWithProduct(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, ErrItemNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}

	if item.Product != nil && quantity > item.Product.Inventory {
		return model.CartItem{}, ErrInsufficientInventory
	}

	updated, err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, quantity)
	if errors.Is(err, repo.ErrInsufficientStock) {
		return model.CartItem{}, ErrInsufficientInventory
	}
	if errors.Is(err, repo.ErrNotFound) {
		return model.CartItem{}, ErrItemNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}

	return updated, nil
}

// 明細削除
func (u *CartUsecase) RemoveCartItem(ctx context.Context, cartItemID int64) error {
	_, err := u.cartItemRepo.FindByIDWithProduct(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrItemNotFound
	}
	if err != nil {
		return err
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	return nil
}
