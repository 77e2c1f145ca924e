package cart

import (
	"errors"
	"net/http"

	"github.com/shopkart-next/internal/http/response"
	"github.com/shopkart-next/internal/logger"
	"github.com/shopkart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
// message 为空时直接使用业务错误文本。
type mappedHandlerError struct {
	target  error
	status  int
	message string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackMessage string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			message := rule.message
			if message == "" {
				message = err.Error()
			}
			respondStatus(c, rule.status, message)
			return
		}
	}
	logger.Errorw("cart_handler_unmapped_error", "path", c.FullPath(), "error", err)
	response.Internal(c, fallbackMessage)
}

func respondStatus(c *gin.Context, status int, message string) {
	switch status {
	case http.StatusBadRequest:
		response.BadRequest(c, message)
	case http.StatusNotFound:
		response.NotFound(c, message)
	case http.StatusConflict:
		response.Conflict(c, message)
	default:
		response.Internal(c, message)
	}
}

var cartCommonErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidParam, status: http.StatusBadRequest},
	{target: service.ErrInvalidQuantity, status: http.StatusBadRequest, message: "Quantity must be a positive integer"},
	{target: service.ErrQuantityExceedsCart, status: http.StatusBadRequest, message: "Quantity exceeds the quantity currently in the cart"},
	{target: service.ErrUserNotFound, status: http.StatusNotFound, message: "User not found"},
	{target: service.ErrProductNotFound, status: http.StatusNotFound, message: "Product not found"},
	{target: service.ErrCartItemNotFound, status: http.StatusNotFound, message: "Product not found in cart"},
	{target: service.ErrCartEmpty, status: http.StatusNotFound, message: "Cart is empty"},
}

var userErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidParam, status: http.StatusBadRequest},
	{target: service.ErrPasswordMismatch, status: http.StatusBadRequest, message: "Password and confirmation do not match"},
	{target: service.ErrUserExists, status: http.StatusConflict, message: "Username is already registered"},
	{target: service.ErrUserNotFound, status: http.StatusNotFound, message: "User not found"},
}
