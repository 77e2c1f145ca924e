package catalog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopkart-next/internal/constants"
	"github.com/shopkart-next/internal/http/response"
	"github.com/shopkart-next/internal/models"

	"github.com/gin-gonic/gin"
)

func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		response.BadRequest(c, fmt.Sprintf("%s is required (format %s)", name, constants.DateLayout))
		return time.Time{}, false
	}
	t, err := time.Parse(constants.DateLayout, raw)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("%s must use the format %s", name, constants.DateLayout))
		return time.Time{}, false
	}
	return t, true
}

func parseFloatQuery(c *gin.Context, name string) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		response.BadRequest(c, fmt.Sprintf("%s is required", name))
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("%s must be a number", name))
		return 0, false
	}
	return v, true
}

// ClearanceSale 清仓打折：活动窗口内统一降价
func (h *Handler) ClearanceSale(c *gin.Context) {
	startDate, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	cutoffDate, ok := parseDateQuery(c, "cutoff_date")
	if !ok {
		return
	}
	percentage, ok := parseFloatQuery(c, "discount_percentage")
	if !ok {
		return
	}

	result, err := h.ProductAdminService.ClearanceSale(startDate, cutoffDate, percentage)
	if err != nil {
		h.Notifier.NotifyFailure("Clearance Sale Failed",
			fmt.Sprintf("Clearance sale starting %s failed: %v", startDate.Format(constants.DateLayout), err))
		respondWithMappedError(c, err, catalogBulkErrorRules, "Failed to apply clearance sale")
		return
	}

	h.Notifier.NotifySuccess("Clearance Sale Applied",
		fmt.Sprintf("Clearance sale discounted %d products by %.2f%%.", result.UpdatedCount, percentage))
	response.Success(c, gin.H{
		"message":       "Clearance sale applied",
		"updated_count": result.UpdatedCount,
		"changes":       result.Changes,
	})
}

// IncreasePriceByDateRange 按上架时间区间统一涨价
func (h *Handler) IncreasePriceByDateRange(c *gin.Context) {
	startDate, ok := parseDateQuery(c, "start_date")
	if !ok {
		return
	}
	endDate, ok := parseDateQuery(c, "end_date")
	if !ok {
		return
	}
	percentage, ok := parseFloatQuery(c, "increase_percentage")
	if !ok {
		return
	}

	result, err := h.ProductAdminService.IncreasePriceByDateRange(startDate, endDate, percentage)
	if err != nil {
		h.Notifier.NotifyFailure("Bulk Price Increase Failed",
			fmt.Sprintf("Bulk price increase for %s to %s failed: %v",
				startDate.Format(constants.DateLayout), endDate.Format(constants.DateLayout), err))
		respondWithMappedError(c, err, catalogBulkErrorRules, "Failed to increase prices")
		return
	}

	h.Notifier.NotifySuccess("Bulk Price Increase Applied",
		fmt.Sprintf("Increased prices of %d products by %.2f%%.", result.UpdatedCount, percentage))
	response.Success(c, gin.H{
		"message":       "Prices increased",
		"updated_count": result.UpdatedCount,
		"changes":       result.Changes,
	})
}

// ClearOldStock 清理截止日前上架的过期库存
func (h *Handler) ClearOldStock(c *gin.Context) {
	cutoffDate, ok := parseDateQuery(c, "cutoff_date")
	if !ok {
		return
	}

	result, err := h.ProductAdminService.ClearOldStock(cutoffDate)
	if err != nil {
		h.Notifier.NotifyFailure("Old Stock Cleanup Failed",
			fmt.Sprintf("Clearing stock older than %s failed: %v", cutoffDate.Format(constants.DateLayout), err))
		respondWithMappedError(c, err, catalogBulkErrorRules, "Failed to clear old stock")
		return
	}

	h.Notifier.NotifySuccess("Old Stock Cleared",
		fmt.Sprintf("Removed %d products created before %s.", result.DeletedCount, cutoffDate.Format(constants.DateLayout)))
	deleted := result.Deleted
	if deleted == nil {
		deleted = []models.Product{}
	}
	response.Success(c, gin.H{
		"message":       "Old stock cleared",
		"deleted_count": result.DeletedCount,
		"deleted":       deleted,
	})
}

// CreateTables 建表/迁移
func (h *Handler) CreateTables(c *gin.Context) {
	if err := models.AutoMigrate(); err != nil {
		response.Internal(c, "Failed to create tables")
		return
	}
	response.Message(c, "Tables created successfully")
}
