package models

import "time"

// ItemStatus is the listing lifecycle state of an inventory item.
type ItemStatus string

const (
	ItemStatusPending  ItemStatus = "pending"
	ItemStatusPriced   ItemStatus = "priced"
	ItemStatusListed   ItemStatus = "listed"
	ItemStatusUnlisted ItemStatus = "unlisted"
	ItemStatusSold     ItemStatus = "sold"
)

// InventoryItem is a normalized merchant inventory record. Uniqueness is
// enforced on (user_id, merchant_id, sku); re-ingesting the same key
// updates the row instead of duplicating it.
type InventoryItem struct {
	ID            int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID        string     `json:"user_id" gorm:"uniqueIndex:idx_inventory_owner_merchant_sku;not null"`
	UploadID      *int64     `json:"upload_id" gorm:"index"`
	MerchantID    string     `json:"merchant_id" gorm:"uniqueIndex:idx_inventory_owner_merchant_sku;not null"`
	SKU           string     `json:"sku" gorm:"uniqueIndex:idx_inventory_owner_merchant_sku;not null"`
	Title         string     `json:"title"`
	Brand         *string    `json:"brand"`
	Category      string     `json:"category"`
	Condition     string     `json:"condition"`
	OriginalPrice float64    `json:"original_price"`
	Currency      string     `json:"currency"`
	Quantity      int        `json:"quantity"`
	ResalePrice   *float64   `json:"resale_price"`
	IsPriceManual bool       `json:"is_price_manual"`
	Status        ItemStatus `json:"status" gorm:"default:pending"`
	ListedAt      *time.Time `json:"listed_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
