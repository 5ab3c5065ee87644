package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go-inventory-service/internal/domain/entity"
	domainRepo "go-inventory-service/internal/domain/repository"

	"github.com/google/uuid"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// The mutex gives AdjustStock the same serialization guarantee the SQL
// implementation gets from a conditional UPDATE.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]entity.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[uuid.UUID]entity.Product),
	}
}

func (r *MemoryProductRepository) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkConstraints(product); err != nil {
		return err
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = *product
	return nil
}

func (r *MemoryProductRepository) FindAll(_ context.Context) ([]entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (r *MemoryProductRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (r *MemoryProductRepository) Update(_ context.Context, id uuid.UUID, fields map[string]any) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["name"]; ok {
		product.Name = v.(string)
	}
	if v, ok := fields["description"]; ok {
		product.Description = v.(string)
	}
	if v, ok := fields["stock_quantity"]; ok {
		product.StockQuantity = v.(int)
	}
	if v, ok := fields["low_stock_threshold"]; ok {
		product.LowStockThreshold = v.(int)
	}
	if err := checkConstraints(&product); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return &product, nil
}

func (r *MemoryProductRepository) Delete(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	delete(r.products, id)
	return &product, nil
}

func (r *MemoryProductRepository) AdjustStock(_ context.Context, id uuid.UUID, delta int) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	if product.StockQuantity+delta < 0 {
		return &product, domainRepo.ErrStockGuardFailed
	}
	product.StockQuantity += delta
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return &product, nil
}

func (r *MemoryProductRepository) FindLowStock(_ context.Context) ([]entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []entity.Product
	for _, p := range r.products {
		if p.IsLowStock() {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].StockQuantity < products[j].StockQuantity
	})
	return products, nil
}

// checkConstraints mirrors the schema rules the SQL store enforces,
// including the btrim checks that reject blank names and descriptions.
func checkConstraints(product *entity.Product) error {
	var messages []string
	if strings.TrimSpace(product.Name) == "" {
		messages = append(messages, "name cannot be blank")
	}
	if len(product.Name) > 100 {
		messages = append(messages, "name cannot exceed 100 characters")
	}
	if strings.TrimSpace(product.Description) == "" {
		messages = append(messages, "description cannot be blank")
	}
	if len(product.Description) > 500 {
		messages = append(messages, "description cannot exceed 500 characters")
	}
	if product.StockQuantity < 0 {
		messages = append(messages, "stock quantity cannot be negative")
	}
	if product.LowStockThreshold < 0 {
		messages = append(messages, "low stock threshold cannot be negative")
	}
	if len(messages) > 0 {
		return &domainRepo.ConstraintViolationError{Messages: messages}
	}
	return nil
}
