package repository

import (
	"errors"
	"fmt"

	"github.com/affiscout/affiscout/internal/models"
	"gorm.io/gorm"
)

// Gorm is the PostgreSQL-backed Repository. GORM autocommits each write,
// which gives the per-record durability the bulk upsert path relies on.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (r *Gorm) FindStoreByNaturalKey(name, platform string) (*models.AffiliateStore, error) {
	var store models.AffiliateStore
	err := r.db.Where("name = ? AND platform = ?", name, platform).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find store (%s, %s): %w", name, platform, err)
	}
	return &store, nil
}

func (r *Gorm) FindStoreByName(name string) (*models.AffiliateStore, error) {
	var store models.AffiliateStore
	err := r.db.Where("name = ?", name).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find store %q: %w", name, err)
	}
	return &store, nil
}

func (r *Gorm) InsertStore(store *models.AffiliateStore) error {
	if err := r.db.Create(store).Error; err != nil {
		return fmt.Errorf("insert store %q: %w", store.Name, err)
	}
	return nil
}

func (r *Gorm) UpdateStore(store *models.AffiliateStore) error {
	if err := r.db.Save(store).Error; err != nil {
		return fmt.Errorf("update store %q: %w", store.Name, err)
	}
	return nil
}

func (r *Gorm) ListStores(offset, limit int) ([]models.AffiliateStore, error) {
	var stores []models.AffiliateStore
	if err := r.db.Offset(offset).Limit(limit).Order("id").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

// FindProductByNaturalKey prefers (external_id, platform) and falls back
// to (title, platform) when the source gave us no external ID or the ID
// lookup comes up empty.
func (r *Gorm) FindProductByNaturalKey(externalID, title, platform string) (*models.Product, error) {
	if externalID != "" {
		var product models.Product
		err := r.db.Where("external_id = ? AND platform = ?", externalID, platform).First(&product).Error
		if err == nil {
			return &product, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find product by external id %q: %w", externalID, err)
		}
	}

	if title == "" {
		return nil, nil
	}

	var product models.Product
	err := r.db.Where("title = ? AND platform = ?", title, platform).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by title %q: %w", title, err)
	}
	return &product, nil
}

func (r *Gorm) FindProductByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product %d: %w", id, err)
	}
	return &product, nil
}

func (r *Gorm) InsertProduct(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("insert product %q: %w", product.Title, err)
	}
	return nil
}

func (r *Gorm) UpdateProduct(product *models.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		return fmt.Errorf("update product %q: %w", product.Title, err)
	}
	return nil
}

func (r *Gorm) ListProducts(offset, limit int, onlyApproved bool) ([]models.Product, error) {
	q := r.db.Offset(offset).Limit(limit).Order("rank, id")
	if onlyApproved {
		q = q.Where("approved = ?", true)
	}
	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
