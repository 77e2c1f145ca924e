package catalog

import (
	"errors"
	"net/http"

	"github.com/shopkart-next/internal/http/response"
	"github.com/shopkart-next/internal/logger"
	"github.com/shopkart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
// message 为空时直接使用业务错误文本，用于需要回显参数名的校验错误。
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
	logger.Errorw("catalog_handler_unmapped_error", "path", c.FullPath(), "error", err)
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

var catalogQueryErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidParam, status: http.StatusBadRequest},
	{target: service.ErrNoFilterProvided, status: http.StatusBadRequest, message: "At least one filter parameter is required"},
	{target: service.ErrInvalidSpecsPayload, status: http.StatusBadRequest, message: "Request body must contain a specs object"},
	{target: service.ErrProductNotFound, status: http.StatusNotFound, message: "Product not found"},
}

var catalogMutationErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidParam, status: http.StatusBadRequest},
	{target: service.ErrInvalidPrice, status: http.StatusBadRequest, message: "Price must be a non-negative number"},
	{target: service.ErrInvalidTypeBrand, status: http.StatusBadRequest, message: "Invalid product type or brand"},
	{target: service.ErrProductUUIDConflict, status: http.StatusConflict, message: "A product with this uuid already exists"},
	{target: service.ErrProductNotFound, status: http.StatusNotFound, message: "Product not found"},
}

var catalogBulkErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidPercentage, status: http.StatusBadRequest, message: "Percentage must be within the allowed range"},
	{target: service.ErrClearanceNotActive, status: http.StatusBadRequest, message: "Clearance sale is not active"},
}
