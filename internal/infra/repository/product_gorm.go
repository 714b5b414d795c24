package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 商品一覧
func (r *ProductGormRepository) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Order("id asc").Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// ソートに使ってよいカラム
func sortColumn(name string) (string, bool) {
	switch name {
	case "name", "price", "created_at":
		return name, true
	}
	return "", false
}

// カテゴリ（複数可）で絞った商品一覧。ソート/limit/offsetは任意。
func (r *ProductGormRepository) ListByCategoryIDs(ctx context.Context, categoryIDs []int64, opts repo.ProductListOptions) ([]model.Product, error) {
	var products []model.Product

	tx := r.db.WithContext(ctx).
		Preload("Category").
		Where("category_id IN ?", categoryIDs)

	// "price,ASC" 形式。知らないカラムは無視してID順。
	if opts.Sort != "" {
		parts := strings.SplitN(opts.Sort, ",", 2)
		if col, ok := sortColumn(parts[0]); ok {
			dir := "asc"
			if len(parts) == 2 && strings.EqualFold(parts[1], "DESC") {
				dir = "desc"
			}
			tx = tx.Order(col + " " + dir)
		}
	}
	tx = tx.Order("id asc")

	if opts.Limit != nil {
		tx = tx.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		tx = tx.Offset(*opts.Offset)
	}

	if err := tx.Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"tax_rate":    p.TaxRate,
		"inventory":   p.Inventory,
		"category_id": p.CategoryID,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
