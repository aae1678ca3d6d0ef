package config

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/smartstock/inventory_shop/internal/models"
)

// SeedDatabase fills an empty catalog with the starter categories and
// products so a fresh install has something to browse.
func SeedDatabase(db *gorm.DB) error {
	var categories int64
	if err := db.Model(&models.Category{}).Count(&categories).Error; err != nil {
		return fmt.Errorf("seed: count categories: %w", err)
	}
	if categories == 0 {
		seed := []models.Category{
			{Name: "Electronics", Description: "Electronic devices and accessories"},
			{Name: "Clothing", Description: "Apparel and fashion items"},
			{Name: "Food", Description: "Food and beverages"},
		}
		if err := db.Create(&seed).Error; err != nil {
			return fmt.Errorf("seed: create categories: %w", err)
		}
	}

	var products int64
	if err := db.Model(&models.Product{}).Count(&products).Error; err != nil {
		return fmt.Errorf("seed: count products: %w", err)
	}
	if products == 0 {
		one, two := uint(1), uint(2)
		seed := []models.Product{
			{Name: "Product 1", Price: 10, QuantityInStock: 100, LowStockThreshold: 10, CategoryID: &one},
			{Name: "Product 2", Price: 20, QuantityInStock: 200, LowStockThreshold: 20, CategoryID: &two},
		}
		if err := db.Create(&seed).Error; err != nil {
			return fmt.Errorf("seed: create products: %w", err)
		}
	}

	return nil
}
