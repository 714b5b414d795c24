package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

// (cart_id, product_id) で明細を取得
func (r *CartItemGormRepository) FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// 明細をProduct結合付きで取得
func (r *CartItemGormRepository) FindByIDWithProduct(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Preload("Product").
		First(&item, cartItemID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// カート明細をProduct結合付きで一覧取得
func (r *CartItemGormRepository) ListByCartWithProduct(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", cartID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

// 同一商品は数量加算。
// 商品行と明細行を FOR UPDATE で押さえ、加算後の数量を在庫と突き合わせてから書く。
// ここのロックが並行 add 同士のlost updateを防ぐ。
func (r *CartItemGormRepository) UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64) (model.CartItem, error) {
	if addQty <= 0 {
		return model.CartItem{}, errors.New("invalid quantity")
	}

	var result model.CartItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 在庫を持つ商品行を先にロック
		var p model.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}

		var item model.CartItem
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			First(&item).Error

		if err == nil {
			// 既存ありなら加算した数量で在庫チェック
			newQty := item.Quantity + addQty
			if newQty > p.Inventory {
				return repo.ErrInsufficientStock
			}

			res := tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Update("quantity", newQty)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}

			item.Quantity = newQty
			result = item
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 無い場合は新規作成
		if addQty > p.Inventory {
			return repo.ErrInsufficientStock
		}

		now := time.Now()
		newItem := model.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  addQty,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := tx.Create(&newItem).Error; err != nil {
			return err
		}

		result = newItem
		return nil
	})

	if err != nil {
		return model.CartItem{}, err
	}
	return result, nil
}

// 明細の数量を置き換え。
// ロック順はupsertと同じ「商品→明細」に揃える（逆順だと同一商品への
// 同時add/updateで互いに待ち合ってデッドロックする）。
// product_idを知るための最初の読みはロック無しで行う。
func (r *CartItemGormRepository) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) (model.CartItem, error) {
	if qty <= 0 {
		return model.CartItem{}, errors.New("invalid quantity")
	}

	var result model.CartItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem
		if err := tx.First(&item, cartItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}

		var p model.Product
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}

		// 商品ロックを取ってから明細を取り直す
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, cartItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}

		if qty > p.Inventory {
			return repo.ErrInsufficientStock
		}

		res := tx.Model(&model.CartItem{}).
			Where("id = ?", cartItemID).
			Update("quantity", qty)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}

		item.Quantity = qty
		result = item
		return nil
	})

	if err != nil {
		return model.CartItem{}, err
	}
	return result, nil
}

// 明細を削除
func (r *CartItemGormRepository) DeleteByID(ctx context.Context, cartItemID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.CartItem{}, cartItemID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
