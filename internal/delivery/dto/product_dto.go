package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateProductRequest struct {
	Name              string `json:"name" validate:"required,notblank,max=100"`
	Description       string `json:"description" validate:"required,notblank,max=500"`
	StockQuantity     int    `json:"stock_quantity" validate:"gte=0"`
	LowStockThreshold *int   `json:"low_stock_threshold" validate:"omitempty,gte=0"`
}

// UpdateProductRequest carries a partial replacement: nil fields stay
// untouched. A present negative stock_quantity is rejected by the usecase
// before the store is called.
type UpdateProductRequest struct {
	Name              *string `json:"name" validate:"omitempty,notblank,max=100"`
	Description       *string `json:"description" validate:"omitempty,notblank,max=500"`
	StockQuantity     *int    `json:"stock_quantity"`
	LowStockThreshold *int    `json:"low_stock_threshold" validate:"omitempty,gte=0"`
}

type AdjustStockRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// Response DTOs

type ProductResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	StockQuantity     int       `json:"stock_quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	IsLowStock        bool      `json:"is_low_stock"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
