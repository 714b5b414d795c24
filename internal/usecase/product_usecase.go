package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// POST /productsの入力DTO
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	TaxRate     float64
	Inventory   int64
	CategoryID  int64
}

// PUT /products/:idの入力DTO。nilのフィールドは現在値を維持する（部分更新）
type ProductUpdateInput struct {
	Name        *string
	Description *string
	Price       *float64
	TaxRate     *float64
	Inventory   *int64
	CategoryID  *int64
}

// カテゴリ絞り込みの任意オプション
type ProductListOptions struct {
	Sort   string
	Limit  *int
	Offset *int
}

func (u *ProductUsecase) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	return u.productRepo.List(ctx)
}

func (u *ProductUsecase) GetProductByID(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// カテゴリ実在チェックは作成時のみ必須。
func (u *ProductUsecase) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.TaxRate < 0 || in.TaxRate > 1 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "tax_rate must be in [0,1]")
	}
	if in.Inventory < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "inventory must be >= 0")
	}

	if err := u.requireCategory(ctx, in.CategoryID); err != nil {
		return model.Product{}, err
	}

	now := time.Now()
	p, err := u.productRepo.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		TaxRate:     in.TaxRate,
		Inventory:   in.Inventory,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 部分更新。リクエストに含まれたフィールドだけ検証して書き換える。
func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in ProductUpdateInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price != nil && *in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.TaxRate != nil && (*in.TaxRate < 0 || *in.TaxRate > 1) {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "tax_rate must be in [0,1]")
	}
	if in.Inventory != nil && *in.Inventory < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "inventory must be >= 0")
	}

	// カテゴリ変更時だけ実在チェック
	if in.CategoryID != nil {
		if err := u.requireCategory(ctx, *in.CategoryID); err != nil {
			return model.Product{}, err
		}
	}

	current, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, err
	}

	updated := current
	if in.Name != nil {
		updated.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		updated.Description = *in.Description
	}
	if in.Price != nil {
		updated.Price = *in.Price
	}
	if in.TaxRate != nil {
		updated.TaxRate = *in.TaxRate
	}
	if in.Inventory != nil {
		updated.Inventory = *in.Inventory
	}
	if in.CategoryID != nil && *in.CategoryID != current.CategoryID {
		updated.CategoryID = *in.CategoryID
		updated.Category = nil
	}
	updated.UpdatedAt = time.Now()

	err = u.productRepo.Update(ctx, updated)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, err
	}
	return updated, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.Delete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	return err
}

func (u *ProductUsecase) GetProductsByCategory(ctx context.Context, categoryID int64, opts ProductListOptions) ([]model.Product, error) {
	if categoryID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	return u.productRepo.ListByCategoryIDs(ctx, []int64{categoryID}, repo.ProductListOptions{
		Sort:   opts.Sort,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
}

// categories は "1,2,3" 形式。空はエラー。
func (u *ProductUsecase) GetProductsByCategories(ctx context.Context, categories string, opts ProductListOptions) ([]model.Product, error) {
	if strings.TrimSpace(categories) == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "Categories parameter is required")
	}

	parts := strings.Split(categories, ",")
	ids := make([]int64, 0, len(parts))
	for _, s := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil || id <= 0 {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid categories parameter")
		}
		ids = append(ids, id)
	}

	return u.productRepo.ListByCategoryIDs(ctx, ids, repo.ProductListOptions{
		Sort:   opts.Sort,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
}

func (u *ProductUsecase) requireCategory(ctx context.Context, categoryID int64) error {
	if categoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "category id required")
	}

	_, err := u.categoryRepo.FindByID(ctx, categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Category with id %d does not exist", categoryID))
	}
	return err
}
