package catalog

import (
	"fmt"
	"strconv"

	"github.com/shopkart-next/internal/http/response"
	"github.com/shopkart-next/internal/models"
	"github.com/shopkart-next/internal/repository"

	"github.com/gin-gonic/gin"
)

func productListPayload(products []models.Product) gin.H {
	if products == nil {
		products = []models.Product{}
	}
	return gin.H{
		"total_count": len(products),
		"products":    products,
	}
}

func filterFromQuery(c *gin.Context) repository.ProductFilter {
	return repository.ProductFilter{
		Type:  c.Query("type"),
		Brand: c.Query("brand"),
		Model: c.Query("model"),
	}
}

func describeFilter(filter repository.ProductFilter) string {
	return fmt.Sprintf("type=%q brand=%q model=%q", filter.Type, filter.Brand, filter.Model)
}

// ListProducts 模糊过滤商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	filter := filterFromQuery(c)
	products, err := h.CatalogService.ListProducts(filter)
	if err != nil {
		h.Notifier.NotifyFailure("Product Fetch Failed",
			fmt.Sprintf("Fetching products with %s failed: %v", describeFilter(filter), err))
		respondWithMappedError(c, err, catalogQueryErrorRules, "Failed to fetch products")
		return
	}
	if len(products) == 0 {
		h.Notifier.NotifyFailure("Product Fetch Failed",
			fmt.Sprintf("No products found with %s.", describeFilter(filter)))
		response.NotFound(c, "No products found")
		return
	}
	h.Notifier.NotifySuccess("Products Fetched",
		fmt.Sprintf("Fetched %d products with %s.", len(products), describeFilter(filter)))
	response.Success(c, productListPayload(products))
}

// FilterProducts 精确过滤商品列表
func (h *Handler) FilterProducts(c *gin.Context) {
	filter := filterFromQuery(c)
	products, err := h.CatalogService.FilterProducts(filter)
	if err != nil {
		h.Notifier.NotifyFailure("Product Filter Failed",
			fmt.Sprintf("Filtering products with %s failed: %v", describeFilter(filter), err))
		respondWithMappedError(c, err, catalogQueryErrorRules, "Failed to filter products")
		return
	}
	if len(products) == 0 {
		h.Notifier.NotifyFailure("Product Filter Failed",
			fmt.Sprintf("No products match the filter criteria %s.", describeFilter(filter)))
		response.NotFound(c, "No products found matching the criteria")
		return
	}
	h.Notifier.NotifySuccess("Products Filtered",
		fmt.Sprintf("Filtered %d products with %s.", len(products), describeFilter(filter)))
	response.Success(c, productListPayload(products))
}

// SearchProducts 搜索商品并累加搜索计数
func (h *Handler) SearchProducts(c *gin.Context) {
	query := c.Query("query")
	products, err := h.CatalogService.SearchProducts(query)
	if err != nil {
		h.Notifier.NotifyFailure("Product Search Failed",
			fmt.Sprintf("Searching products for %q failed: %v", query, err))
		respondWithMappedError(c, err, catalogQueryErrorRules, "Failed to search products")
		return
	}
	h.Notifier.NotifySuccess("Product Search Completed",
		fmt.Sprintf("Search for %q matched %d products.", query, len(products)))
	response.Success(c, productListPayload(products))
}

// CountProducts 统计匹配商品数
func (h *Handler) CountProducts(c *gin.Context) {
	filter := filterFromQuery(c)
	count, products, err := h.CatalogService.CountProducts(filter)
	if err != nil {
		h.Notifier.NotifyFailure("Product Count Failed",
			fmt.Sprintf("Counting products with %s failed: %v", describeFilter(filter), err))
		respondWithMappedError(c, err, catalogQueryErrorRules, "Failed to count products")
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	h.Notifier.NotifySuccess("Products Counted",
		fmt.Sprintf("Counted %d products with %s.", count, describeFilter(filter)))
	response.Success(c, gin.H{
		"count":    count,
		"products": products,
	})
}

// LatestProducts 最新上架商品
func (h *Handler) LatestProducts(c *gin.Context) {
	products, err := h.CatalogService.LatestProducts()
	if err != nil {
		h.Notifier.NotifyFailure("Latest Products Fetch Failed",
			fmt.Sprintf("Fetching latest products failed: %v", err))
		respondWithMappedError(c, err, catalogQueryErrorRules, "Failed to fetch latest products")
		return
	}
	h.Notifier.NotifySuccess("Latest Products Fetched",
		fmt.Sprintf("Fetched %d latest products.", len(products)))
	response.Success(c, productListPayload(products))
}

// LatestDiscountedProducts 折扣高于阈值的最新商品
func (h *Handler) LatestDiscountedProducts(c *gin.Context) {
	products, err := h.CatalogService.LatestDiscountedProducts()
	if err != nil {
		h.Notifier.NotifyFailure("Discounted Products Fetch Failed",
			fmt.Sprintf("Fetching latest discounted products failed: %v", err))
		respondWithMappedError(c, err, catalogQueryErrorRules, "Failed to fetch discounted products")
		return
	}
	h.Notifier.NotifySuccess("Discounted Products Fetched",
		fmt.Sprintf("Fetched %d latest discounted products.", len(products)))
	response.Success(c, productListPayload(products))
}

// DiscountedProducts 按折扣倒序的商品
func (h *Handler) DiscountedProducts(c *gin.Context) {
	products, err := h.CatalogService.DiscountedProducts()
	if err != nil {
		h.Notifier.NotifyFailure("Discounted Products Fetch Failed",
			fmt.Sprintf("Fetching products sorted by discount failed: %v", err))
		respondWithMappedError(c, err, catalogQueryErrorRules, "Failed to fetch discounted products")
		return
	}
	if len(products) == 0 {
		h.Notifier.NotifyFailure("Discounted Products Fetch Failed",
			"No discounted products found.")
		response.NotFound(c, "No discounted products found")
		return
	}
	h.Notifier.NotifySuccess("Discounted Products Fetched",
		fmt.Sprintf("Fetched %d products sorted by discount.", len(products)))
	response.Success(c, productListPayload(products))
}

// MostSearchedProducts 按搜索热度倒序的商品
func (h *Handler) MostSearchedProducts(c *gin.Context) {
	products, err := h.CatalogService.MostSearchedProducts()
	if err != nil {
		h.Notifier.NotifyFailure("Most Searched Products Fetch Failed",
			fmt.Sprintf("Fetching most searched products failed: %v", err))
		respondWithMappedError(c, err, catalogQueryErrorRules, "Failed to fetch most searched products")
		return
	}
	if len(products) == 0 {
		h.Notifier.NotifyFailure("Most Searched Products Fetch Failed",
			"No products found.")
		response.NotFound(c, "No products found")
		return
	}
	h.Notifier.NotifySuccess("Most Searched Products Fetched",
		fmt.Sprintf("Fetched %d products sorted by search count.", len(products)))
	response.Success(c, productListPayload(products))
}

// ProductsByPriceRange 按价格区间过滤
func (h *Handler) ProductsByPriceRange(c *gin.Context) {
	minRaw := c.Query("min_price")
	maxRaw := c.Query("max_price")
	if minRaw == "" || maxRaw == "" {
		h.Notifier.NotifyFailure("Price Range Fetch Failed",
			"min_price and max_price are required.")
		response.BadRequest(c, "min_price and max_price are required")
		return
	}
	minPrice, err := strconv.ParseFloat(minRaw, 64)
	if err != nil {
		h.Notifier.NotifyFailure("Price Range Fetch Failed",
			fmt.Sprintf("min_price %q is not a number.", minRaw))
		response.BadRequest(c, "min_price must be a number")
		return
	}
	maxPrice, err := strconv.ParseFloat(maxRaw, 64)
	if err != nil {
		h.Notifier.NotifyFailure("Price Range Fetch Failed",
			fmt.Sprintf("max_price %q is not a number.", maxRaw))
		response.BadRequest(c, "max_price must be a number")
		return
	}

	products, err := h.CatalogService.ProductsByPriceRange(minPrice, maxPrice)
	if err != nil {
		h.Notifier.NotifyFailure("Price Range Fetch Failed",
			fmt.Sprintf("Fetching products in range %.2f-%.2f failed: %v", minPrice, maxPrice, err))
		respondWithMappedError(c, err, catalogQueryErrorRules, "Failed to fetch products by price range")
		return
	}
	h.Notifier.NotifySuccess("Products Fetched by Price Range",
		fmt.Sprintf("Fetched %d products in range %.2f-%.2f.", len(products), minPrice, maxPrice))
	response.Success(c, productListPayload(products))
}

// SpecsRequest 规格匹配请求
type SpecsRequest struct {
	Specs map[string]interface{} `json:"specs"`
}

// ProductsBySpecs 按规格子集匹配
func (h *Handler) ProductsBySpecs(c *gin.Context) {
	var req SpecsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Notifier.NotifyFailure("Specs Match Failed",
			fmt.Sprintf("Invalid specs request body: %v", err))
		response.BadRequest(c, "Request body must be valid JSON with a specs object")
		return
	}

	products, err := h.CatalogService.ProductsBySpecs(req.Specs)
	if err != nil {
		h.Notifier.NotifyFailure("Specs Match Failed",
			fmt.Sprintf("Matching products by specs failed: %v", err))
		respondWithMappedError(c, err, catalogQueryErrorRules, "Failed to match products by specs")
		return
	}
	if len(products) == 0 {
		h.Notifier.NotifySuccess("Specs Match Completed",
			"No products match the given specs.")
		response.Success(c, gin.H{
			"message":  "No products match the given specs",
			"products": []models.Product{},
		})
		return
	}
	h.Notifier.NotifySuccess("Specs Match Completed",
		fmt.Sprintf("Matched %d products by specs.", len(products)))
	response.Success(c, productListPayload(products))
}

// RecentProducts 最近 24 小时上架的商品
func (h *Handler) RecentProducts(c *gin.Context) {
	products, err := h.CatalogService.RecentProducts()
	if err != nil {
		h.Notifier.NotifyFailure("Recent Products Fetch Failed",
			fmt.Sprintf("Fetching recent products failed: %v", err))
		respondWithMappedError(c, err, catalogQueryErrorRules, "Failed to fetch recent products")
		return
	}
	h.Notifier.NotifySuccess("Recent Products Fetched",
		fmt.Sprintf("Fetched %d products added in the last 24 hours.", len(products)))
	response.Success(c, productListPayload(products))
}

// ProductUUIDs 商品主键清单与重复审计
func (h *Handler) ProductUUIDs(c *gin.Context) {
	audit, err := h.CatalogService.ProductUUIDs()
	if err != nil {
		h.Notifier.NotifyFailure("Product UUIDs Fetch Failed",
			fmt.Sprintf("Fetching product uuids failed: %v", err))
		respondWithMappedError(c, err, catalogQueryErrorRules, "Failed to fetch product uuids")
		return
	}
	if len(audit.UUIDs) == 0 {
		h.Notifier.NotifyFailure("Product UUIDs Fetch Failed",
			"No products found.")
		response.NotFound(c, "No products found")
		return
	}
	duplicates := audit.Duplicates
	if duplicates == nil {
		duplicates = []string{}
	}
	h.Notifier.NotifySuccess("Product UUIDs Fetched",
		fmt.Sprintf("Fetched %d product uuids (%d duplicates).", len(audit.UUIDs), len(duplicates)))
	response.Success(c, gin.H{
		"total_count": len(audit.UUIDs),
		"uuids":       audit.UUIDs,
		"duplicates":  duplicates,
	})
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id := c.Param("uuid")
	product, err := h.CatalogService.GetProduct(id)
	if err != nil {
		h.Notifier.NotifyFailure("Product Retrieval Failed",
			fmt.Sprintf("Retrieving product %s failed: %v", id, err))
		respondWithMappedError(c, err, catalogQueryErrorRules, "Failed to fetch product")
		return
	}
	h.Notifier.NotifySuccess("Product Retrieved",
		fmt.Sprintf("Retrieved product %s (%s %s).", product.UUID, product.Brand, product.Model))
	response.Success(c, product)
}

// DeliveryEstimate 商品交付天数
func (h *Handler) DeliveryEstimate(c *gin.Context) {
	id := c.Param("uuid")
	product, err := h.CatalogService.DeliveryEstimate(id)
	if err != nil {
		h.Notifier.NotifyFailure("Delivery Estimate Failed",
			fmt.Sprintf("Fetching delivery estimate for %s failed: %v", id, err))
		respondWithMappedError(c, err, catalogQueryErrorRules, "Failed to fetch delivery estimate")
		return
	}
	h.Notifier.NotifySuccess("Delivery Estimate Fetched",
		fmt.Sprintf("Product %s ships in %d days.", product.UUID, product.DeliveryTimeDays))
	response.Success(c, gin.H{
		"uuid":               product.UUID,
		"model":              product.Model,
		"delivery_time_days": product.DeliveryTimeDays,
		"product":            product,
	})
}
