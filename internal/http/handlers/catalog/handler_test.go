package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopkart-next/internal/models"
	"github.com/shopkart-next/internal/provider"
	"github.com/shopkart-next/internal/repository"
	"github.com/shopkart-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCatalogHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:catalog_handler_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ValidProductDetail{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	validProductRepo := repository.NewValidProductRepository(db)

	pairs := []models.ValidProductDetail{
		{Product: "Lenovo Laptop", Type: "Laptop", Brand: "Lenovo"},
		{Product: "Samsung Phone", Type: "Phone", Brand: "Samsung"},
	}
	for i := range pairs {
		if err := validProductRepo.Create(&pairs[i]); err != nil {
			t.Fatalf("seed allowed pair failed: %v", err)
		}
	}

	h := New(&provider.Container{
		CatalogService:      service.NewCatalogService(productRepo, 10),
		ProductAdminService: service.NewProductAdminService(productRepo, validProductRepo, 12),
		Notifier:            service.NewEmailNotifier(nil, nil, ""),
	})
	return h, db
}

func seedCatalogHandlerProduct(t *testing.T, db *gorm.DB, uuid, typ, brand, model string, price float64) {
	t.Helper()
	err := db.Create(&models.Product{
		UUID:             uuid,
		Type:             typ,
		Brand:            brand,
		Model:            model,
		Price:            models.NewMoneyFromFloat(price),
		DeliveryTimeDays: 7,
	}).Error
	if err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
}

func newTestContext(t *testing.T, method, target string, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal response failed: %v (body %s)", err, w.Body.String())
	}
	return payload
}

func TestListProductsEmptyCatalog(t *testing.T) {
	h, _ := setupCatalogHandlerTest(t)

	c, w := newTestContext(t, http.MethodGet, "/products", "")
	h.ListProducts(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "No products found" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestListProductsFuzzyFilter(t *testing.T) {
	h, db := setupCatalogHandlerTest(t)
	seedCatalogHandlerProduct(t, db, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1499)
	seedCatalogHandlerProduct(t, db, "p-2", "Phone", "Samsung", "Galaxy S24", 899)

	c, w := newTestContext(t, http.MethodGet, "/products?brand=leno", "")
	h.ListProducts(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["total_count"].(float64) != 1 {
		t.Fatalf("total_count want 1 got %v", body["total_count"])
	}
}

func TestListProductsRejectsNumericQueryParam(t *testing.T) {
	h, db := setupCatalogHandlerTest(t)
	seedCatalogHandlerProduct(t, db, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1499)

	c, w := newTestContext(t, http.MethodGet, "/products?brand=12345", "")
	h.ListProducts(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	body := decodeBody(t, w)
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "brand") {
		t.Fatalf("error should name the parameter, got %q", msg)
	}
}

func TestCountProductsRequiresFilter(t *testing.T) {
	h, _ := setupCatalogHandlerTest(t)

	c, w := newTestContext(t, http.MethodGet, "/products/count", "")
	h.CountProducts(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
}

func TestGetProductNotFoundStatus(t *testing.T) {
	h, _ := setupCatalogHandlerTest(t)

	c, w := newTestContext(t, http.MethodGet, "/products/missing", "")
	c.Params = gin.Params{{Key: "uuid", Value: "missing"}}
	h.GetProduct(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "Product not found" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestProductsByPriceRangeRequiresBounds(t *testing.T) {
	h, _ := setupCatalogHandlerTest(t)

	c, w := newTestContext(t, http.MethodGet, "/products/price-range?min_price=100", "")
	h.ProductsByPriceRange(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "min_price and max_price are required" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestProductsBySpecsNoMatch(t *testing.T) {
	h, db := setupCatalogHandlerTest(t)
	seedCatalogHandlerProduct(t, db, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1499)

	c, w := newTestContext(t, http.MethodPost, "/products/specs", `{"specs":{"ram":"64GB"}}`)
	h.ProductsBySpecs(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["message"] != "No products match the given specs" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestCreateProductRequiresIdentityFields(t *testing.T) {
	h, _ := setupCatalogHandlerTest(t)

	c, w := newTestContext(t, http.MethodPost, "/products", `{"type":"Laptop"}`)
	h.CreateProduct(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
}

func TestCreateProductRejectsDisallowedPair(t *testing.T) {
	h, _ := setupCatalogHandlerTest(t)

	c, w := newTestContext(t, http.MethodPost, "/products",
		`{"type":"Tablet","brand":"Lenovo","model":"Tab P12","price":499}`)
	h.CreateProduct(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Invalid product type or brand" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestCreateProductSuccess(t *testing.T) {
	h, _ := setupCatalogHandlerTest(t)

	c, w := newTestContext(t, http.MethodPost, "/products",
		`{"type":"Laptop","brand":"Lenovo","model":"ThinkPad X1","price":1499}`)
	h.CreateProduct(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("status want 201 got %d", w.Code)
	}
	body := decodeBody(t, w)
	product, ok := body["product"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing product in response: %v", body)
	}
	if product["uuid"] == "" {
		t.Fatalf("expected generated uuid")
	}
	if product["delivery_time_days"].(float64) != 7 {
		t.Fatalf("delivery_time_days want 7 got %v", product["delivery_time_days"])
	}
	if product["price"] != "1499.00" {
		t.Fatalf("price want 1499.00 got %v", product["price"])
	}
}

func TestCreateProductUUIDConflictStatus(t *testing.T) {
	h, db := setupCatalogHandlerTest(t)
	seedCatalogHandlerProduct(t, db, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1499)

	c, w := newTestContext(t, http.MethodPost, "/products",
		`{"uuid":"p-1","type":"Laptop","brand":"Lenovo","model":"ThinkPad X1","price":1499}`)
	h.CreateProduct(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("status want 409 got %d", w.Code)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	h, _ := setupCatalogHandlerTest(t)

	c, w := newTestContext(t, http.MethodPut, "/products/missing", `{"price":999}`)
	c.Params = gin.Params{{Key: "uuid", Value: "missing"}}
	h.UpdateProduct(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d", w.Code)
	}
}

func TestDeleteProductEchoesDeletedRow(t *testing.T) {
	h, db := setupCatalogHandlerTest(t)
	seedCatalogHandlerProduct(t, db, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1499)

	c, w := newTestContext(t, http.MethodDelete, "/products/p-1", "")
	c.Params = gin.Params{{Key: "uuid", Value: "p-1"}}
	h.DeleteProduct(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	body := decodeBody(t, w)
	product, ok := body["product"].(map[string]interface{})
	if !ok || product["uuid"] != "p-1" {
		t.Fatalf("expected deleted product echo, got %v", body)
	}
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("product should be gone, %d rows remain", count)
	}
}

func TestClearanceSaleValidation(t *testing.T) {
	h, _ := setupCatalogHandlerTest(t)

	c, w := newTestContext(t, http.MethodPatch, "/products/clearance_sale?cutoff_date=2026-01-01&discount_percentage=20", "")
	h.ClearanceSale(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing start_date: status want 400 got %d", w.Code)
	}

	today := time.Now().Format("2006-01-02")
	c, w = newTestContext(t, http.MethodPatch,
		fmt.Sprintf("/products/clearance_sale?start_date=%s&cutoff_date=%s&discount_percentage=150", today, today), "")
	h.ClearanceSale(c)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid percentage: status want 400 got %d", w.Code)
	}
}

func TestClearanceSaleDiscountsOldStock(t *testing.T) {
	h, db := setupCatalogHandlerTest(t)
	seedCatalogHandlerProduct(t, db, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1000)

	now := time.Now()
	start := now.AddDate(0, 0, -2).Format("2006-01-02")
	cutoff := now.AddDate(0, 0, 1).Format("2006-01-02")
	c, w := newTestContext(t, http.MethodPatch,
		fmt.Sprintf("/products/clearance_sale?start_date=%s&cutoff_date=%s&discount_percentage=20", start, cutoff), "")
	h.ClearanceSale(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d (body %s)", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["updated_count"].(float64) != 1 {
		t.Fatalf("updated_count want 1 got %v", body["updated_count"])
	}
	var stored models.Product
	if err := db.First(&stored, "uuid = ?", "p-1").Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.Price.String() != "800.00" {
		t.Fatalf("price want 800.00 got %s", stored.Price.String())
	}
}

func TestClearOldStockReturnsDeletedRows(t *testing.T) {
	h, db := setupCatalogHandlerTest(t)
	seedCatalogHandlerProduct(t, db, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1000)
	backdated := time.Now().AddDate(0, -6, 0)
	if err := db.Model(&models.Product{}).Where("uuid = ?", "p-1").UpdateColumn("created_at", backdated).Error; err != nil {
		t.Fatalf("backdate product failed: %v", err)
	}
	seedCatalogHandlerProduct(t, db, "p-2", "Phone", "Samsung", "Galaxy S24", 899)

	cutoff := time.Now().AddDate(0, -1, 0).Format("2006-01-02")
	c, w := newTestContext(t, http.MethodDelete, "/products/clear_old_stock?cutoff_date="+cutoff, "")
	h.ClearOldStock(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["deleted_count"].(float64) != 1 {
		t.Fatalf("deleted_count want 1 got %v", body["deleted_count"])
	}
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("want 1 surviving product, got %d", count)
	}
}

type recordingNotifier struct {
	successes []string
	failures  []string
}

func (n *recordingNotifier) NotifySuccess(subject, body string) {
	n.successes = append(n.successes, subject)
}

func (n *recordingNotifier) NotifyFailure(subject, body string) {
	n.failures = append(n.failures, subject)
}

func TestQueryEndpointsEmitNotifications(t *testing.T) {
	h, db := setupCatalogHandlerTest(t)
	seedCatalogHandlerProduct(t, db, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1499)
	recorder := &recordingNotifier{}
	h.Notifier = recorder

	c, w := newTestContext(t, http.MethodGet, "/products/search?query=think", "")
	h.SearchProducts(c)
	if w.Code != http.StatusOK {
		t.Fatalf("search status want 200 got %d", w.Code)
	}

	c, w = newTestContext(t, http.MethodGet, "/products?brand=lenovo", "")
	h.ListProducts(c)
	if w.Code != http.StatusOK {
		t.Fatalf("list status want 200 got %d", w.Code)
	}

	if len(recorder.successes) != 2 {
		t.Fatalf("success notifications want 2 got %d (%v)", len(recorder.successes), recorder.successes)
	}
	if len(recorder.failures) != 0 {
		t.Fatalf("unexpected failure notifications: %v", recorder.failures)
	}

	// 空结果 404 与无效参数同样走失败通知
	c, w = newTestContext(t, http.MethodGet, "/products?brand=Apple", "")
	h.ListProducts(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("empty list status want 404 got %d", w.Code)
	}
	c, w = newTestContext(t, http.MethodGet, "/products/12345", "")
	c.Params = gin.Params{{Key: "uuid", Value: "missing-uuid"}}
	h.GetProduct(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get product status want 404 got %d", w.Code)
	}
	if len(recorder.failures) != 2 {
		t.Fatalf("failure notifications want 2 got %d (%v)", len(recorder.failures), recorder.failures)
	}
}
