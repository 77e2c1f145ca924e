package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopkart-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate product failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestProduct(t *testing.T, repo *GormProductRepository, uuid, typ, brand, model string, price float64, discounts float64) *models.Product {
	t.Helper()
	product := &models.Product{
		UUID:             uuid,
		Type:             typ,
		Brand:            brand,
		Model:            model,
		Price:            models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		Discounts:        discounts,
		DeliveryTimeDays: 7,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestListFuzzyMatchesCaseInsensitiveSubstring(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1200, 0)
	createTestProduct(t, repo, "p-2", "Phone", "Samsung", "Galaxy S24", 900, 0)

	got, err := repo.ListFuzzy(ProductFilter{Brand: "leno"})
	if err != nil {
		t.Fatalf("list fuzzy failed: %v", err)
	}
	if len(got) != 1 || got[0].UUID != "p-1" {
		t.Fatalf("fuzzy brand match want p-1 got %+v", got)
	}

	got, err = repo.ListFuzzy(ProductFilter{Type: "PHONE"})
	if err != nil {
		t.Fatalf("list fuzzy failed: %v", err)
	}
	if len(got) != 1 || got[0].UUID != "p-2" {
		t.Fatalf("fuzzy type match want p-2 got %+v", got)
	}
}

func TestListExactIsCaseSensitive(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1200, 0)

	got, err := repo.ListExact(ProductFilter{Brand: "lenovo"})
	if err != nil {
		t.Fatalf("list exact failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("exact match should be case sensitive, got %+v", got)
	}

	got, err = repo.ListExact(ProductFilter{Brand: "Lenovo"})
	if err != nil {
		t.Fatalf("list exact failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("exact match want 1 row got %d", len(got))
	}
}

func TestListExactFoldIgnoresCase(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1200, 0)

	got, err := repo.ListExactFold(ProductFilter{Type: "laptop", Brand: "LENOVO"})
	if err != nil {
		t.Fatalf("list exact fold failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("fold match want 1 row got %d", len(got))
	}
}

func TestSearchAndIncrementSearchCount(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "p-1", "Laptop", "Lenovo", "ThinkPad X1", 1200, 0)
	createTestProduct(t, repo, "p-2", "Phone", "Samsung", "Galaxy S24", 900, 0)

	matches, err := repo.Search("think")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(matches) != 1 || matches[0].UUID != "p-1" {
		t.Fatalf("search want p-1 got %+v", matches)
	}

	uuids := []string{matches[0].UUID}
	if err := repo.IncrementSearchCount(uuids); err != nil {
		t.Fatalf("increment search count failed: %v", err)
	}

	var got models.Product
	if err := db.Where("uuid = ?", "p-1").First(&got).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.SearchCount != 1 {
		t.Fatalf("search count want 1 got %d", got.SearchCount)
	}

	var other models.Product
	if err := db.Where("uuid = ?", "p-2").First(&other).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if other.SearchCount != 0 {
		t.Fatalf("non-matched product should keep count 0, got %d", other.SearchCount)
	}
}

func TestListDiscountedAboveThreshold(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "p-1", "Laptop", "Lenovo", "A", 100, 5)
	createTestProduct(t, repo, "p-2", "Laptop", "Lenovo", "B", 100, 15)
	createTestProduct(t, repo, "p-3", "Laptop", "Lenovo", "C", 100, 20)

	got, err := repo.ListDiscountedAbove(10)
	if err != nil {
		t.Fatalf("list discounted failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("discounted above 10 want 2 rows got %d", len(got))
	}
	for _, p := range got {
		if p.Discounts <= 10 {
			t.Fatalf("unexpected product %s with discounts %v", p.UUID, p.Discounts)
		}
	}
}

func TestListByPriceRangeInclusive(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "p-1", "Laptop", "Lenovo", "A", 50, 0)
	createTestProduct(t, repo, "p-2", "Laptop", "Lenovo", "B", 150, 0)
	createTestProduct(t, repo, "p-3", "Laptop", "Lenovo", "C", 300, 0)

	got, err := repo.ListByPriceRange(100, 200)
	if err != nil {
		t.Fatalf("list by price range failed: %v", err)
	}
	if len(got) != 1 || got[0].UUID != "p-2" {
		t.Fatalf("price range want p-2 got %+v", got)
	}
}

func TestListCreatedBeforeAndDelete(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	old := createTestProduct(t, repo, "p-old", "Laptop", "Lenovo", "A", 100, 0)
	createTestProduct(t, repo, "p-new", "Laptop", "Lenovo", "B", 100, 0)

	cutoff := time.Now().Add(-time.Hour)
	if err := db.Model(&models.Product{}).Where("uuid = ?", old.UUID).
		UpdateColumn("created_at", cutoff.Add(-24*time.Hour)).Error; err != nil {
		t.Fatalf("backdate product failed: %v", err)
	}

	got, err := repo.ListCreatedBefore(cutoff)
	if err != nil {
		t.Fatalf("list created before failed: %v", err)
	}
	if len(got) != 1 || got[0].UUID != "p-old" {
		t.Fatalf("created before want p-old got %+v", got)
	}

	deleted, err := repo.DeleteByUUIDs([]string{"p-old"})
	if err != nil {
		t.Fatalf("delete by uuids failed: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("delete want 1 row got %d", deleted)
	}

	remaining, err := repo.ListAll()
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].UUID != "p-new" {
		t.Fatalf("remaining want p-new got %+v", remaining)
	}
}

func TestGetByUUIDReturnsNilWhenAbsent(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	got, err := repo.GetByUUID("missing")
	if err != nil {
		t.Fatalf("get by uuid failed: %v", err)
	}
	if got != nil {
		t.Fatalf("absent uuid should return nil, got %+v", got)
	}

	exists, err := repo.ExistsUUID("missing")
	if err != nil {
		t.Fatalf("exists uuid failed: %v", err)
	}
	if exists {
		t.Fatalf("absent uuid should not exist")
	}
}
