package models

import (
	"time"

	"gorm.io/datatypes"
)

// AffiliateStore is a partner store whose affiliate program we joined
// (or intend to join). Uniqueness is by (Name, Platform).
type AffiliateStore struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	Name           string            `gorm:"index;not null" json:"name"`
	Platform       string            `gorm:"index;not null" json:"platform"` // amazon, mercadolivre, shopee, ...
	AffiliateURL   string            `json:"affiliate_url"`
	Description    string            `gorm:"type:text" json:"description,omitempty"`
	APICredentials datatypes.JSONMap `gorm:"type:jsonb" json:"api_credentials"`
	Active         bool              `gorm:"default:true" json:"active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func (AffiliateStore) TableName() string { return "affiliate_stores" }
