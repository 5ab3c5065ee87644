package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-inventory-service/internal/delivery/dto"
	"go-inventory-service/internal/domain/entity"
	"go-inventory-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ProductCache is the best-effort read cache consulted on point lookups.
// Implementations must degrade silently: a cache failure is never a request
// failure. Mutations invalidate rather than refresh, so a slow write can
// never pin a stale record past the next read.
type ProductCache interface {
	Get(ctx context.Context, id uuid.UUID) *entity.Product
	Set(ctx context.Context, product *entity.Product)
	Invalidate(ctx context.Context, id uuid.UUID)
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("quantity must be a positive number")
	ErrNegativeStock   = errors.New("stock quantity cannot be negative")
)

const defaultLowStockThreshold = 10

// InsufficientStockError is returned when a stock removal asks for more than
// is available. It carries both quantities so the caller can report them.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock. available: %d, requested: %d", e.Available, e.Requested)
}

type ProductUsecase interface {
	Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetAll(ctx context.Context) ([]dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddStock(ctx context.Context, id uuid.UUID, quantity int) (*dto.ProductResponse, error)
	RemoveStock(ctx context.Context, id uuid.UUID, quantity int) (*dto.ProductResponse, error)
	GetLowStock(ctx context.Context) ([]dto.ProductResponse, error)
}

type productUsecase struct {
	log         *logrus.Logger
	productRepo repository.ProductRepository
	cache       ProductCache
}

// NewProductUsecase wires the inventory rules over an injected store. The
// cache may be nil, in which case every read goes to the store.
func NewProductUsecase(log *logrus.Logger, productRepo repository.ProductRepository, productCache ProductCache) ProductUsecase {
	return &productUsecase{
		log:         log,
		productRepo: productRepo,
		cache:       productCache,
	}
}

func (u *productUsecase) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := &entity.Product{
		Name:              strings.TrimSpace(req.Name),
		Description:       strings.TrimSpace(req.Description),
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: defaultLowStockThreshold,
	}
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = *req.LowStockThreshold
	}

	if err := u.productRepo.Create(ctx, product); err != nil {
		u.log.Warnf("Failed to create product: %+v", err)
		return nil, err
	}

	u.cacheSet(ctx, product)
	return toProductResponse(product), nil
}

func (u *productUsecase) GetAll(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := u.productRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list products: %+v", err)
		return nil, err
	}
	return toProductResponses(products), nil
}

func (u *productUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	if cached := u.cacheGet(ctx, id); cached != nil {
		return toProductResponse(cached), nil
	}

	product, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find product: %+v", err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	u.cacheSet(ctx, product)
	return toProductResponse(product), nil
}

func (u *productUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	// Domain guard ahead of the store: a negative stock quantity never
	// reaches the write path. The schema check remains behind it.
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		return nil, ErrNegativeStock
	}

	fields := make(map[string]any)
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.StockQuantity != nil {
		fields["stock_quantity"] = *req.StockQuantity
	}
	if req.LowStockThreshold != nil {
		fields["low_stock_threshold"] = *req.LowStockThreshold
	}

	// Nothing to change: behave like a read so an empty body is not a 404.
	if len(fields) == 0 {
		return u.GetByID(ctx, id)
	}

	product, err := u.productRepo.Update(ctx, id, fields)
	if err != nil {
		u.log.Warnf("Failed to update product: %+v", err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	u.cacheInvalidate(ctx, id)
	return toProductResponse(product), nil
}

func (u *productUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := u.productRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete product: %+v", err)
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	u.cacheInvalidate(ctx, id)
	return nil
}

func (u *productUsecase) AddStock(ctx context.Context, id uuid.UUID, quantity int) (*dto.ProductResponse, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := u.productRepo.AdjustStock(ctx, id, quantity)
	if err != nil {
		u.log.Warnf("Failed to add stock: %+v", err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	u.cacheInvalidate(ctx, id)
	return toProductResponse(product), nil
}

func (u *productUsecase) RemoveStock(ctx context.Context, id uuid.UUID, quantity int) (*dto.ProductResponse, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := u.productRepo.AdjustStock(ctx, id, -quantity)
	if err != nil {
		if errors.Is(err, repository.ErrStockGuardFailed) && product != nil {
			return nil, &InsufficientStockError{
				Available: product.StockQuantity,
				Requested: quantity,
			}
		}
		u.log.Warnf("Failed to remove stock: %+v", err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	u.cacheInvalidate(ctx, id)
	return toProductResponse(product), nil
}

func (u *productUsecase) GetLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := u.productRepo.FindLowStock(ctx)
	if err != nil {
		u.log.Warnf("Failed to list low stock products: %+v", err)
		return nil, err
	}
	return toProductResponses(products), nil
}

func (u *productUsecase) cacheGet(ctx context.Context, id uuid.UUID) *entity.Product {
	if u.cache == nil {
		return nil
	}
	return u.cache.Get(ctx, id)
}

func (u *productUsecase) cacheSet(ctx context.Context, product *entity.Product) {
	if u.cache != nil {
		u.cache.Set(ctx, product)
	}
}

func (u *productUsecase) cacheInvalidate(ctx context.Context, id uuid.UUID) {
	if u.cache != nil {
		u.cache.Invalidate(ctx, id)
	}
}

func toProductResponse(product *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                product.ID,
		Name:              product.Name,
		Description:       product.Description,
		StockQuantity:     product.StockQuantity,
		LowStockThreshold: product.LowStockThreshold,
		IsLowStock:        product.IsLowStock(),
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
}

func toProductResponses(products []entity.Product) []dto.ProductResponse {
	responses := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *toProductResponse(&products[i]))
	}
	return responses
}
