package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// 業務エラーはそのステータスとメッセージ。それ以外（DB等）は500。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	slog.Error("unexpected error",
		"method", c.Request().Method,
		"path", c.Path(),
		"err", err,
	)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// パスパラメータの数値は境界で厳密にパースする（空・非数値は400）。
func paramInt64(c echo.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
