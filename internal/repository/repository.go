// Package repository is the persistence boundary for stores and products.
// The ingest engine only sees the Repository interface, so tests run
// against an in-memory fake while production uses the GORM implementation.
package repository

import (
	"github.com/affiscout/affiscout/internal/models"
)

// Repository exposes find-by-natural-key, insert and update semantics.
// Find methods return (nil, nil) when no record matches; every write
// commits before it returns.
type Repository interface {
	FindStoreByNaturalKey(name, platform string) (*models.AffiliateStore, error)
	FindStoreByName(name string) (*models.AffiliateStore, error)
	InsertStore(store *models.AffiliateStore) error
	UpdateStore(store *models.AffiliateStore) error
	ListStores(offset, limit int) ([]models.AffiliateStore, error)

	FindProductByNaturalKey(externalID, title, platform string) (*models.Product, error)
	FindProductByID(id uint) (*models.Product, error)
	InsertProduct(product *models.Product) error
	UpdateProduct(product *models.Product) error
	ListProducts(offset, limit int, onlyApproved bool) ([]models.Product, error)
}
