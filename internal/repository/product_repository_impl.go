package repository

import (
	"context"
	"errors"

	"go-inventory-service/internal/domain/entity"
	domainRepo "go-inventory-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return translateConstraintError(err)
	}
	return nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).
		Model(&product).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, translateConstraintError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &product, nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&product)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &product, nil
}

// AdjustStock performs the increment/decrement and the non-negative guard in
// one UPDATE, so concurrent adjustments serialize on the row at the database.
// A zero-row result is disambiguated with a follow-up point read: absent
// record vs. guard rejection.
func (r *productRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).
		Model(&product).
		Clauses(clause.Returning{}).
		Where("id = ? AND stock_quantity + ? >= 0", id, delta).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	if result.Error != nil {
		return nil, translateConstraintError(result.Error)
	}
	if result.RowsAffected == 0 {
		existing, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, nil
		}
		return existing, domainRepo.ErrStockGuardFailed
	}
	return &product, nil
}

func (r *productRepository) FindLowStock(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("stock_quantity <= low_stock_threshold").
		Order("stock_quantity ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Postgres error codes for schema-level rejections.
const (
	pgCodeNotNullViolation = "23502"
	pgCodeCheckViolation   = "23514"
	pgCodeStringTooLong    = "22001"
)

// translateConstraintError maps Postgres schema rejections onto the store's
// typed constraint failure; anything else passes through as a storage error.
func translateConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgCodeCheckViolation:
		return &domainRepo.ConstraintViolationError{
			Messages: []string{constraintMessage(pgErr.ConstraintName)},
		}
	case pgCodeNotNullViolation:
		return &domainRepo.ConstraintViolationError{
			Messages: []string{pgErr.ColumnName + " is required"},
		}
	case pgCodeStringTooLong:
		return &domainRepo.ConstraintViolationError{
			Messages: []string{"value exceeds maximum length"},
		}
	}
	return err
}

func constraintMessage(constraint string) string {
	switch constraint {
	case "chk_products_stock_quantity":
		return "stock quantity cannot be negative"
	case "chk_products_low_stock_threshold":
		return "low stock threshold cannot be negative"
	case "chk_products_name_not_blank":
		return "name cannot be blank"
	case "chk_products_description_not_blank":
		return "description cannot be blank"
	}
	return "constraint violated: " + constraint
}
