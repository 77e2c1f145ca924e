package service

import "errors"

// 商品目录业务错误
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductUUIDConflict = errors.New("product uuid already exists")
	ErrInvalidTypeBrand    = errors.New("type/brand not in allow list")
	ErrInvalidPrice        = errors.New("price must be non-negative")
	ErrInvalidPercentage   = errors.New("percentage out of allowed range")
	ErrClearanceNotActive  = errors.New("clearance sale not active")
	ErrNoFilterProvided    = errors.New("at least one filter is required")
	ErrInvalidSpecsPayload = errors.New("specs payload invalid")
	ErrInvalidParam        = errors.New("invalid parameter")
)

// 购物车业务错误
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrQuantityExceedsCart = errors.New("quantity exceeds current cart quantity")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
)

// 用户注册业务错误
var (
	ErrUserExists       = errors.New("username already registered")
	ErrPasswordMismatch = errors.New("password confirmation mismatch")
)

// 邮件发送业务错误
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)
