package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/carts のHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

func (h *CartHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/carts/:userId", h.createCart)
	g.POST("/carts/:cartId/items", h.addItem)
	g.GET("/carts/:cartId/items", h.listItems)
	g.PUT("/carts/:cartId/items/:itemId", h.updateItem)
	g.DELETE("/carts/:cartId/items/:itemId", h.deleteItem)
}

func (h *CartHandler) createCart(c echo.Context) error {
	userID, ok := paramInt64(c, "userId")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
	}

	out, err := h.uc.CreateCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	cartID, ok := paramInt64(c, "cartId")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cart id"})
	}

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddItemToCart(c.Request().Context(), cartID, req.ProductID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CartHandler) listItems(c echo.Context) error {
	cartID, ok := paramInt64(c, "cartId")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid cart id"})
	}

	out, err := h.uc.GetCartItems(c.Request().Context(), cartID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	itemID, ok := paramInt64(c, "itemId")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateCartItem(c.Request().Context(), itemID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	itemID, ok := paramInt64(c, "itemId")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item id"})
	}

	if err := h.uc.RemoveCartItem(c.Request().Context(), itemID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
