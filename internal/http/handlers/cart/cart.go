package cart

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopkart-next/internal/cache"
	"github.com/shopkart-next/internal/constants"
	"github.com/shopkart-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

const mostPurchasedCacheKey = "cart:most_purchased"
const mostPurchasedCacheTTL = 30 * time.Second

// formOrQuery 表单优先，查询参数兜底
func formOrQuery(c *gin.Context, name string) string {
	if v := c.PostForm(name); v != "" {
		return v
	}
	return c.Query(name)
}

func parseQuantity(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(formOrQuery(c, "quantity"))
	if raw == "" {
		response.BadRequest(c, "quantity is required")
		return 0, false
	}
	quantity, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(c, "quantity must be an integer")
		return 0, false
	}
	return quantity, true
}

// AddToCart 加购商品
func (h *Handler) AddToCart(c *gin.Context) {
	username := formOrQuery(c, "username")
	productUUID := formOrQuery(c, "product_uuid")
	quantity, ok := parseQuantity(c)
	if !ok {
		return
	}

	result, err := h.CartService.AddToCart(username, productUUID, quantity)
	if err != nil {
		h.Notifier.NotifyFailure("Add to Cart Failed",
			fmt.Sprintf("Adding product %s to %s's cart failed: %v", productUUID, username, err))
		respondWithMappedError(c, err, cartCommonErrorRules, "Failed to add product to cart")
		return
	}

	_ = cache.Del(c.Request.Context(), mostPurchasedCacheKey)
	h.Notifier.NotifySuccess("Product Added to Cart",
		fmt.Sprintf("User %s added %d x %s (%s) to the cart.", username, quantity, result.Product.Model, result.Product.UUID))
	response.Success(c, gin.H{
		"status":  "success",
		"message": "Product added to cart",
		"data": gin.H{
			"product":             result.Product,
			"quantity":            result.Quantity,
			"total_items_in_cart": result.TotalItems,
			"added_at":            result.AddedAt.Format(constants.TimestampLayout),
		},
	})
}

// RemoveQuantity 减少购物车中商品数量
func (h *Handler) RemoveQuantity(c *gin.Context) {
	username := formOrQuery(c, "username")
	productUUID := formOrQuery(c, "product_uuid")
	quantity, ok := parseQuantity(c)
	if !ok {
		return
	}

	result, err := h.CartService.RemoveQuantity(username, productUUID, quantity)
	if err != nil {
		h.Notifier.NotifyFailure("Cart Quantity Removal Failed",
			fmt.Sprintf("Removing %d of product %s from %s's cart failed: %v", quantity, productUUID, username, err))
		respondWithMappedError(c, err, cartCommonErrorRules, "Failed to remove quantity from cart")
		return
	}

	_ = cache.Del(c.Request.Context(), mostPurchasedCacheKey)
	h.Notifier.NotifySuccess("Cart Quantity Removed",
		fmt.Sprintf("User %s removed %d of product %s; %d remain in the cart.",
			username, result.RemovedQuantity, productUUID, result.RemainingQuantity))
	response.Success(c, gin.H{
		"status":  "success",
		"message": "Quantity removed from cart",
		"data": gin.H{
			"product_uuid":       productUUID,
			"removed_quantity":   result.RemovedQuantity,
			"remaining_quantity": result.RemainingQuantity,
		},
	})
}

// DeleteSingle 整行移出购物车
func (h *Handler) DeleteSingle(c *gin.Context) {
	username := formOrQuery(c, "username")
	productUUID := formOrQuery(c, "product_uuid")

	item, err := h.CartService.DeleteSingle(username, productUUID)
	if err != nil {
		h.Notifier.NotifyFailure("Cart Item Removal Failed",
			fmt.Sprintf("Removing product %s from %s's cart failed: %v", productUUID, username, err))
		respondWithMappedError(c, err, cartCommonErrorRules, "Failed to remove product from cart")
		return
	}

	_ = cache.Del(c.Request.Context(), mostPurchasedCacheKey)
	h.Notifier.NotifySuccess("Product Removed from Cart",
		fmt.Sprintf("User %s removed product %s (quantity %d) from the cart.", username, productUUID, item.Quantity))
	response.Success(c, gin.H{
		"status":  "success",
		"message": "Product removed from cart",
		"data": gin.H{
			"product_uuid": item.ProductUUID,
			"quantity":     item.Quantity,
		},
	})
}

// ClearCart 清空用户购物车
func (h *Handler) ClearCart(c *gin.Context) {
	username := formOrQuery(c, "username")
	if strings.TrimSpace(username) == "" {
		response.BadRequest(c, "username is required")
		return
	}

	cleared, err := h.CartService.ClearCart(username)
	if err != nil {
		h.Notifier.NotifyFailure("Cart Clear Failed",
			fmt.Sprintf("Clearing %s's cart failed: %v", username, err))
		respondWithMappedError(c, err, cartCommonErrorRules, "Failed to clear cart")
		return
	}

	_ = cache.Del(c.Request.Context(), mostPurchasedCacheKey)
	h.Notifier.NotifySuccess("Cart Cleared",
		fmt.Sprintf("User %s cleared the cart (%d items removed).", username, cleared))
	response.Success(c, gin.H{
		"status":  "success",
		"message": "Cart cleared",
		"data": gin.H{
			"username":      username,
			"cleared_items": cleared,
		},
	})
}

// MostPurchased 在途购物车中加购量最高的商品，短 TTL 缓存聚合结果
func (h *Handler) MostPurchased(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), mostPurchasedCacheKey, &cached); err == nil && hit {
		h.Notifier.NotifySuccess("Most Purchased Product Fetched",
			"Served the most purchased product from cache.")
		response.Success(c, cached)
		return
	}

	top, err := h.CartService.MostPurchased()
	if err != nil {
		h.Notifier.NotifyFailure("Most Purchased Product Fetch Failed",
			fmt.Sprintf("Fetching the most purchased product failed: %v", err))
		respondWithMappedError(c, err, cartCommonErrorRules, "Failed to fetch most purchased product")
		return
	}
	data := gin.H{
		"product":        top.Product,
		"total_quantity": top.TotalQuantity,
	}
	_ = cache.SetJSON(c.Request.Context(), mostPurchasedCacheKey, data, mostPurchasedCacheTTL)
	h.Notifier.NotifySuccess("Most Purchased Product Fetched",
		fmt.Sprintf("Product %s leads carts with quantity %d.", top.Product.UUID, top.TotalQuantity))
	response.Success(c, data)
}
