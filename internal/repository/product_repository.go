package repository

import (
	"app/internal/domain/model"
	"context"
)

// カテゴリ絞り込み一覧のオプション
// Sort は "price,ASC" のようなカラム名と向きの組。
type ProductListOptions struct {
	Sort   string
	Limit  *int
	Offset *int
}

// 商品の永続化（保存・取得）だけを約束。
// 在庫(Inventory)はここでは読み取りのみ。
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	ListByCategoryIDs(ctx context.Context, categoryIDs []int64, opts ProductListOptions) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
}
