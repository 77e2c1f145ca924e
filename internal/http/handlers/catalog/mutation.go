package catalog

import (
	"fmt"

	"github.com/shopkart-next/internal/http/response"
	"github.com/shopkart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateProductRequest 新建商品请求
type CreateProductRequest struct {
	UUID             string                 `json:"uuid"`
	Type             string                 `json:"type" binding:"required"`
	Brand            string                 `json:"brand" binding:"required"`
	Model            string                 `json:"model" binding:"required"`
	Price            float64                `json:"price"`
	Discounts        float64                `json:"discounts"`
	Specs            map[string]interface{} `json:"specs"`
	DeliveryTimeDays int                    `json:"delivery_time_days"`
}

// UpdateProductRequest 商品部分更新请求
type UpdateProductRequest struct {
	Type             *string                `json:"type"`
	Brand            *string                `json:"brand"`
	Model            *string                `json:"model"`
	Price            *float64               `json:"price"`
	Discounts        *float64               `json:"discounts"`
	Specs            map[string]interface{} `json:"specs"`
	DeliveryTimeDays *int                   `json:"delivery_time_days"`
}

// CreateProduct 新建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Request body must include type, brand and model")
		return
	}

	product, err := h.ProductAdminService.CreateProduct(toCreateInput(req))
	if err != nil {
		h.Notifier.NotifyFailure("Product Creation Failed",
			fmt.Sprintf("Creating product %q %q %q failed: %v", req.Type, req.Brand, req.Model, err))
		respondWithMappedError(c, err, catalogMutationErrorRules, "Failed to create product")
		return
	}

	h.Notifier.NotifySuccess("Product Created",
		fmt.Sprintf("Product %s (%s %s) was created with uuid %s.", product.Model, product.Brand, product.Type, product.UUID))
	response.Created(c, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct 部分更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id := c.Param("uuid")
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Request body must be valid JSON")
		return
	}

	product, err := h.ProductAdminService.UpdateProduct(id, toUpdateInput(req))
	if err != nil {
		h.Notifier.NotifyFailure("Product Update Failed",
			fmt.Sprintf("Updating product %s failed: %v", id, err))
		respondWithMappedError(c, err, catalogMutationErrorRules, "Failed to update product")
		return
	}

	h.Notifier.NotifySuccess("Product Updated",
		fmt.Sprintf("Product %s (%s %s) was updated.", product.UUID, product.Brand, product.Model))
	response.Success(c, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct 删除商品并回显被删行
func (h *Handler) DeleteProduct(c *gin.Context) {
	id := c.Param("uuid")
	product, err := h.ProductAdminService.DeleteProduct(id)
	if err != nil {
		h.Notifier.NotifyFailure("Product Deletion Failed",
			fmt.Sprintf("Deleting product %s failed: %v", id, err))
		respondWithMappedError(c, err, catalogMutationErrorRules, "Failed to delete product")
		return
	}

	h.Notifier.NotifySuccess("Product Deleted",
		fmt.Sprintf("Product %s (%s %s) was deleted.", product.UUID, product.Brand, product.Model))
	response.Success(c, gin.H{
		"message": "Product deleted successfully",
		"product": product,
	})
}

func toCreateInput(req CreateProductRequest) service.CreateProductInput {
	return service.CreateProductInput{
		UUID:             req.UUID,
		Type:             req.Type,
		Brand:            req.Brand,
		Model:            req.Model,
		Price:            req.Price,
		Discounts:        req.Discounts,
		Specs:            req.Specs,
		DeliveryTimeDays: req.DeliveryTimeDays,
	}
}

func toUpdateInput(req UpdateProductRequest) service.UpdateProductInput {
	return service.UpdateProductInput{
		Type:             req.Type,
		Brand:            req.Brand,
		Model:            req.Model,
		Price:            req.Price,
		Discounts:        req.Discounts,
		Specs:            req.Specs,
		DeliveryTimeDays: req.DeliveryTimeDays,
	}
}
