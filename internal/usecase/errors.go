package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 業務エラーはメッセージ固定でそのままレスポンスに載る。
// ストレージ起因のエラーはここに来ず、素のまま呼び出し元へ返す。
var (
	ErrProductNotFound       = &HTTPError{Status: http.StatusBadRequest, Message: "Product not found"}
	ErrItemNotFound          = &HTTPError{Status: http.StatusBadRequest, Message: "Item not found"}
	ErrInsufficientInventory = &HTTPError{Status: http.StatusBadRequest, Message: "Not enough inventory available"}
)
