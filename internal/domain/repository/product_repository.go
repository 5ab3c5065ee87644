package repository

import (
	"context"
	"errors"
	"strings"

	"go-inventory-service/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrStockGuardFailed reports that a stock adjustment was rejected because the
// resulting quantity would be negative. The usecase translates it into an
// insufficient-stock failure carrying the current balance.
var ErrStockGuardFailed = errors.New("stock adjustment rejected by non-negative guard")

// ProductRepository is the persistence contract for products. Implementations
// return (nil, nil) when a record is absent; domain errors are left to the
// usecase layer.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindAll(ctx context.Context) ([]entity.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// Update applies a partial field replacement and returns the post-update
	// record, or (nil, nil) if no record has that ID.
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Product, error)

	// Delete removes and returns the deleted record, or (nil, nil) if absent.
	Delete(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// AdjustStock changes stock_quantity by delta as a single conditional
	// update guarded by "resulting value >= 0". It returns the post-update
	// record, (nil, nil) if the product is absent, or the current record
	// together with ErrStockGuardFailed if the guard rejected the adjustment.
	// Two concurrent adjustments serialize on the record, so a lost update or
	// a negative balance cannot occur.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*entity.Product, error)

	// FindLowStock returns products with stock_quantity <= low_stock_threshold,
	// ascending by stock_quantity. The boundary is inclusive.
	FindLowStock(ctx context.Context) ([]entity.Product, error)
}

// ConstraintViolationError is returned when the store schema rejects a write
// (length, required field, negative value). It carries one message per
// violated field.
type ConstraintViolationError struct {
	Messages []string
}

func (e *ConstraintViolationError) Error() string {
	return strings.Join(e.Messages, ", ")
}
