package cart

import (
	"fmt"

	"github.com/shopkart-next/internal/cache"
	"github.com/shopkart-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// PurchaseSingle 结算单件商品（折后价）
func (h *Handler) PurchaseSingle(c *gin.Context) {
	username := formOrQuery(c, "username")
	productUUID := formOrQuery(c, "product_uuid")

	item, err := h.CartService.PurchaseSingle(username, productUUID)
	if err != nil {
		h.Notifier.NotifyFailure("Purchase Failed",
			fmt.Sprintf("Purchase of product %s by %s failed: %v", productUUID, username, err))
		respondWithMappedError(c, err, cartCommonErrorRules, "Failed to purchase product")
		return
	}

	_ = cache.Del(c.Request.Context(), mostPurchasedCacheKey)
	h.Notifier.NotifySuccess("Product Purchased",
		fmt.Sprintf("User %s purchased %d x %s for %s.", username, item.Quantity, item.Product.Model, item.TotalCost.String()))
	response.Success(c, gin.H{
		"status":  "success",
		"message": "Product purchased",
		"data": gin.H{
			"product":            item.Product,
			"quantity":           item.Quantity,
			"unit_price":         item.UnitPrice,
			"total_cost":         item.TotalCost,
			"delivery_time_days": item.Product.DeliveryTimeDays,
		},
	})
}

// PurchaseAll 整车结算（原价）
func (h *Handler) PurchaseAll(c *gin.Context) {
	username := formOrQuery(c, "username")

	result, err := h.CartService.PurchaseAll(username)
	if err != nil {
		h.Notifier.NotifyFailure("Cart Purchase Failed",
			fmt.Sprintf("Purchase of %s's cart failed: %v", username, err))
		respondWithMappedError(c, err, cartCommonErrorRules, "Failed to purchase cart")
		return
	}

	items := make([]gin.H, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, gin.H{
			"product":    item.Product,
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
			"total_cost": item.TotalCost,
		})
	}

	_ = cache.Del(c.Request.Context(), mostPurchasedCacheKey)
	h.Notifier.NotifySuccess("Cart Purchased",
		fmt.Sprintf("User %s purchased %d items for %s.", username, result.TotalQuantity, result.TotalCost.String()))
	response.Success(c, gin.H{
		"status":  "success",
		"message": "All cart products purchased",
		"data": gin.H{
			"items":          items,
			"total_cost":     result.TotalCost,
			"total_quantity": result.TotalQuantity,
		},
	})
}
