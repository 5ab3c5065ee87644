package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is the inventory ledger entry. The check constraints are the second
// line of defense: the usecase layer rejects invalid stock values before the
// store is touched, and the schema rejects anything that slips past it.
type Product struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name              string    `gorm:"type:varchar(100);not null;check:chk_products_name_not_blank,btrim(name) <> ''"`
	Description       string    `gorm:"type:varchar(500);not null;check:chk_products_description_not_blank,btrim(description) <> ''"`
	StockQuantity     int       `gorm:"not null;default:0;check:chk_products_stock_quantity,stock_quantity >= 0"`
	LowStockThreshold int       `gorm:"not null;default:10;check:chk_products_low_stock_threshold,low_stock_threshold >= 0"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether the product is at or below its threshold.
// The boundary is inclusive.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}
