package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopkart-next/internal/models"
	"github.com/shopkart-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTest(t *testing.T) (*CatalogService, *repository.GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	repo := repository.NewProductRepository(db)
	return NewCatalogService(repo, 10), repo, db
}

func seedProduct(t *testing.T, repo repository.ProductRepository, uuid, typ, brand, model string, price, discounts float64, specs models.JSON) {
	t.Helper()
	product := &models.Product{
		UUID:             uuid,
		Type:             typ,
		Brand:            brand,
		Model:            model,
		Price:            models.NewMoneyFromFloat(price),
		Discounts:        discounts,
		Specs:            specs,
		DeliveryTimeDays: 7,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
}

func TestListProductsRejectsNumericParam(t *testing.T) {
	svc, _, _ := setupCatalogTest(t)

	_, err := svc.ListProducts(repository.ProductFilter{Brand: "12345"})
	if !errors.Is(err, ErrInvalidParam) {
		t.Fatalf("want ErrInvalidParam got %v", err)
	}
}

func TestCountProductsRequiresFilter(t *testing.T) {
	svc, repo, _ := setupCatalogTest(t)
	seedProduct(t, repo, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1200, 0, nil)

	_, _, err := svc.CountProducts(repository.ProductFilter{})
	if !errors.Is(err, ErrNoFilterProvided) {
		t.Fatalf("want ErrNoFilterProvided got %v", err)
	}

	count, products, err := svc.CountProducts(repository.ProductFilter{Brand: "lenovo"})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 || len(products) != 1 {
		t.Fatalf("want count 1 got %d (%d products)", count, len(products))
	}
}

func TestSearchProductsIncrementsSearchCount(t *testing.T) {
	svc, repo, _ := setupCatalogTest(t)
	seedProduct(t, repo, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1200, 0, nil)
	seedProduct(t, repo, "p-2", "Phone", "Samsung", "Galaxy S24", 900, 0, nil)

	got, err := svc.SearchProducts("lenovo")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 1 || got[0].UUID != "p-1" {
		t.Fatalf("want p-1 got %+v", got)
	}
	if got[0].SearchCount != 1 {
		t.Fatalf("returned search_count want 1 got %d", got[0].SearchCount)
	}

	stored, err := repo.GetByUUID("p-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.SearchCount != 1 {
		t.Fatalf("stored search_count want 1 got %d", stored.SearchCount)
	}
	other, _ := repo.GetByUUID("p-2")
	if other.SearchCount != 0 {
		t.Fatalf("unmatched product search_count want 0 got %d", other.SearchCount)
	}
}

func TestLatestDiscountedUsesThreshold(t *testing.T) {
	svc, repo, _ := setupCatalogTest(t)
	seedProduct(t, repo, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1200, 5, nil)
	seedProduct(t, repo, "p-2", "Phone", "Samsung", "Galaxy S24", 900, 25, nil)

	got, err := svc.LatestDiscountedProducts()
	if err != nil {
		t.Fatalf("latest discounted failed: %v", err)
	}
	if len(got) != 1 || got[0].UUID != "p-2" {
		t.Fatalf("want only p-2 got %+v", got)
	}
}

func TestProductsBySpecsSubsetMatch(t *testing.T) {
	svc, repo, _ := setupCatalogTest(t)
	seedProduct(t, repo, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1200, 0, models.JSON{"ram": "16GB", "cpu": "i7"})
	seedProduct(t, repo, "p-2", "Laptop", "Dell", "XPS 13", 1100, 0, models.JSON{"ram": "8GB"})

	got, err := svc.ProductsBySpecs(map[string]interface{}{"ram": "16GB"})
	if err != nil {
		t.Fatalf("specs match failed: %v", err)
	}
	if len(got) != 1 || got[0].UUID != "p-1" {
		t.Fatalf("want p-1 got %+v", got)
	}

	if _, err := svc.ProductsBySpecs(nil); !errors.Is(err, ErrInvalidSpecsPayload) {
		t.Fatalf("want ErrInvalidSpecsPayload got %v", err)
	}
}

func TestRecentProductsWindow(t *testing.T) {
	svc, repo, db := setupCatalogTest(t)
	seedProduct(t, repo, "p-old", "Laptop", "Lenovo", "ThinkPad X1", 1200, 0, nil)
	seedProduct(t, repo, "p-new", "Phone", "Samsung", "Galaxy S24", 900, 0, nil)
	err := db.Model(&models.Product{}).Where("uuid = ?", "p-old").
		UpdateColumn("created_at", time.Now().Add(-48*time.Hour)).Error
	if err != nil {
		t.Fatalf("backdate failed: %v", err)
	}

	got, err := svc.RecentProducts()
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(got) != 1 || got[0].UUID != "p-new" {
		t.Fatalf("want only p-new got %+v", got)
	}
}

func TestProductUUIDsAuditsDuplicates(t *testing.T) {
	svc, repo, _ := setupCatalogTest(t)
	seedProduct(t, repo, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1200, 0, nil)
	seedProduct(t, repo, "p-2", "Phone", "Samsung", "Galaxy S24", 900, 0, nil)

	audit, err := svc.ProductUUIDs()
	if err != nil {
		t.Fatalf("uuid audit failed: %v", err)
	}
	if len(audit.UUIDs) != 2 || len(audit.Duplicates) != 0 {
		t.Fatalf("want 2 uuids no duplicates got %+v", audit)
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc, _, _ := setupCatalogTest(t)

	_, err := svc.GetProduct("missing")
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}
