package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type cartRepoMock struct{ mock.Mock }

func (m *cartRepoMock) Create(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

type cartItemRepoMock struct{ mock.Mock }

func (m *cartItemRepoMock) FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, productID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *cartItemRepoMock) FindByIDWithProduct(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *cartItemRepoMock) ListByCartWithProduct(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *cartItemRepoMock) UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, productID, addQty)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *cartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID, qty)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *cartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

type productRepoMock struct{ mock.Mock }

func (m *productRepoMock) List(ctx context.Context) ([]model.Product, error) {
	panic("not used in CartHandler tests")
}

func (m *productRepoMock) ListByCategoryIDs(ctx context.Context, categoryIDs []int64, opts repo.ProductListOptions) ([]model.Product, error) {
	panic("not used in CartHandler tests")
}

func (m *productRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *productRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in CartHandler tests")
}

func (m *productRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in CartHandler tests")
}

func (m *productRepoMock) Delete(ctx context.Context, id int64) error {
	panic("not used in CartHandler tests")
}

// =====================
// Test server
// =====================

func newCartTestServer() (*echo.Echo, *cartRepoMock, *cartItemRepoMock, *productRepoMock) {
	cartRepo := new(cartRepoMock)
	itemRepo := new(cartItemRepoMock)
	productRepo := new(productRepoMock)

	uc := usecase.NewCartUsecase(cartRepo, itemRepo, productRepo)

	e := echo.New()
	NewCartHandler(uc).RegisterRoutes(e.Group("/api"))

	return e, cartRepo, itemRepo, productRepo
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var v ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("json.Unmarshal(ErrorResponse) failed: %v body=%s", err, rec.Body.String())
	}
	return v
}

// =====================
// カート作成
// =====================

func TestCartRoutes_CreateCart(t *testing.T) {
	e, cartRepo, _, _ := newCartTestServer()

	cartRepo.On("Create", mock.Anything, int64(123)).Return(model.Cart{ID: 1, UserID: 123}, nil)

	rec := doJSON(e, http.MethodPost, "/api/carts/123", "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	var cart model.Cart
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Equal(t, int64(1), cart.ID)
	assert.Equal(t, int64(123), cart.UserID)
}

// userIdが数値でなければコアに届く前に400
func TestCartRoutes_CreateCart_MalformedUserID(t *testing.T) {
	e, cartRepo, _, _ := newCartTestServer()

	rec := doJSON(e, http.MethodPost, "/api/carts/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	cartRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// =====================
// 明細追加
// =====================

// シナリオ: price=100, taxRate=0.1, inventory=10 の商品を qty=2 で追加 → 一覧で 200/20/220
func TestCartRoutes_AddThenListWithTotals(t *testing.T) {
	e, _, itemRepo, productRepo := newCartTestServer()

	product := model.Product{ID: 1, Price: 100, TaxRate: 0.1, Inventory: 10}

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(product, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, int64(1), int64(1)).Return(model.CartItem{}, repo.ErrNotFound)
	itemRepo.On("UpsertByCartAndProduct", mock.Anything, int64(1), int64(1), int64(2)).
		Return(model.CartItem{ID: 10, CartID: 1, ProductID: 1, Quantity: 2}, nil)

	rec := doJSON(e, http.MethodPost, "/api/carts/1/items", `{"product_id":1,"quantity":2}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var item model.CartItem
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, int64(2), item.Quantity)

	itemRepo.On("ListByCartWithProduct", mock.Anything, int64(1)).
		Return([]model.CartItem{{ID: 10, CartID: 1, ProductID: 1, Quantity: 2, Product: &product}}, nil)

	rec = doJSON(e, http.MethodGet, "/api/carts/1/items", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var out usecase.CartItemsOutput
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Items, 1)
	assert.Equal(t, float64(200), out.Items[0].ItemSubtotal)
	assert.Equal(t, float64(20), out.Items[0].ItemTax)
	assert.Equal(t, usecase.CartSummary{Subtotal: 200, TotalTax: 20, Total: 220}, out.Summary)
}

// シナリオ: 存在しない商品IDの追加は 400 "Product not found"
func TestCartRoutes_AddItem_ProductNotFound(t *testing.T) {
	e, _, _, productRepo := newCartTestServer()

	productRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	rec := doJSON(e, http.MethodPost, "/api/carts/1/items", `{"product_id":99,"quantity":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Product not found", decodeErrorBody(t, rec).Error)
}

// シナリオ: 在庫10・既存8に qty=5 追加 → 400 "Not enough inventory available"、既存は無変更
func TestCartRoutes_AddItem_InsufficientInventoryOnMerge(t *testing.T) {
	e, _, itemRepo, productRepo := newCartTestServer()

	productRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, Inventory: 10}, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, int64(1), int64(1)).
		Return(model.CartItem{ID: 10, CartID: 1, ProductID: 1, Quantity: 8}, nil)

	rec := doJSON(e, http.MethodPost, "/api/carts/1/items", `{"product_id":1,"quantity":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Not enough inventory available", decodeErrorBody(t, rec).Error)

	itemRepo.AssertNotCalled(t, "UpsertByCartAndProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// 数量が文字列ならバインドの時点で400
func TestCartRoutes_AddItem_MalformedQuantity(t *testing.T) {
	e, _, _, productRepo := newCartTestServer()

	rec := doJSON(e, http.MethodPost, "/api/carts/1/items", `{"product_id":1,"quantity":"two"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	productRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// =====================
// 空カート
// =====================

func TestCartRoutes_ListItems_EmptyCart(t *testing.T) {
	e, _, itemRepo, _ := newCartTestServer()

	itemRepo.On("ListByCartWithProduct", mock.Anything, int64(1)).Return([]model.CartItem{}, nil)

	rec := doJSON(e, http.MethodGet, "/api/carts/1/items", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var out usecase.CartItemsOutput
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
	assert.Equal(t, usecase.CartSummary{Subtotal: 0, TotalTax: 0, Total: 0}, out.Summary)
}

// =====================
// 数量変更・削除
// =====================

func TestCartRoutes_UpdateItem_Success(t *testing.T) {
	e, _, itemRepo, _ := newCartTestServer()

	itemRepo.On("FindByIDWithProduct", mock.Anything, int64(10)).
		Return(model.CartItem{ID: 10, CartID: 1, ProductID: 1, Quantity: 2, Product: &model.Product{ID: 1, Inventory: 10}}, nil)
	itemRepo.On("UpdateQuantity", mock.Anything, int64(10), int64(5)).
		Return(model.CartItem{ID: 10, CartID: 1, ProductID: 1, Quantity: 5}, nil)

	rec := doJSON(e, http.MethodPut, "/api/carts/1/items/10", `{"quantity":5}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var item model.CartItem
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, int64(5), item.Quantity)
}

func TestCartRoutes_UpdateItem_NotFound(t *testing.T) {
	e, _, itemRepo, _ := newCartTestServer()

	itemRepo.On("FindByIDWithProduct", mock.Anything, int64(10)).Return(model.CartItem{}, repo.ErrNotFound)

	rec := doJSON(e, http.MethodPut, "/api/carts/1/items/10", `{"quantity":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Item not found", decodeErrorBody(t, rec).Error)
}

func TestCartRoutes_DeleteItem_Success(t *testing.T) {
	e, _, itemRepo, _ := newCartTestServer()

	itemRepo.On("FindByIDWithProduct", mock.Anything, int64(10)).Return(model.CartItem{ID: 10}, nil)
	itemRepo.On("DeleteByID", mock.Anything, int64(10)).Return(nil)

	rec := doJSON(e, http.MethodDelete, "/api/carts/1/items/10", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCartRoutes_DeleteItem_NotFound(t *testing.T) {
	e, _, itemRepo, _ := newCartTestServer()

	itemRepo.On("FindByIDWithProduct", mock.Anything, int64(10)).Return(model.CartItem{}, repo.ErrNotFound)

	rec := doJSON(e, http.MethodDelete, "/api/carts/1/items/10", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Item not found", decodeErrorBody(t, rec).Error)

	itemRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}
