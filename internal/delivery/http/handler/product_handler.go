package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go-inventory-service/internal/delivery/dto"
	domainRepo "go-inventory-service/internal/domain/repository"
	"go-inventory-service/internal/usecase"
	"go-inventory-service/pkg/response"
	"go-inventory-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ProductHandler struct {
	productUsecase usecase.ProductUsecase
	validator      *validator.CustomValidator
}

func NewProductHandler(productUsecase usecase.ProductUsecase, validator *validator.CustomValidator) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		validator:      validator,
	}
}

// Create handles POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	product, err := h.productUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create product")
		return
	}

	response.Success(w, http.StatusCreated, "Product created successfully", product)
}

// GetAll handles GET /products
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.productUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get products")
		return
	}

	response.SuccessList(w, http.StatusOK, "Products retrieved successfully", len(products), products)
}

// GetByID handles GET /products/{id}
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.productUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get product")
		return
	}

	response.Success(w, http.StatusOK, "Product retrieved successfully", product)
}

// Update handles PUT /products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	product, err := h.productUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update product")
		return
	}

	response.Success(w, http.StatusOK, "Product updated successfully", product)
}

// Delete handles DELETE /products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.productUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete product")
		return
	}

	response.Success(w, http.StatusOK, "Product deleted successfully", nil)
}

// AddStock handles PATCH /products/{id}/add-stock
func (h *ProductHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.stockAdjustment(w, r)
	if !ok {
		return
	}

	product, err := h.productUsecase.AddStock(r.Context(), id, req.Quantity)
	if err != nil {
		h.writeError(w, err, "Failed to add stock")
		return
	}

	message := fmt.Sprintf("Added %d units to stock", req.Quantity)
	response.Success(w, http.StatusOK, message, product)
}

// RemoveStock handles PATCH /products/{id}/remove-stock
func (h *ProductHandler) RemoveStock(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.stockAdjustment(w, r)
	if !ok {
		return
	}

	product, err := h.productUsecase.RemoveStock(r.Context(), id, req.Quantity)
	if err != nil {
		h.writeError(w, err, "Failed to remove stock")
		return
	}

	message := fmt.Sprintf("Removed %d units from stock", req.Quantity)
	response.Success(w, http.StatusOK, message, product)
}

// GetLowStock handles GET /products/low-stock
func (h *ProductHandler) GetLowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.productUsecase.GetLowStock(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get low stock products")
		return
	}

	response.SuccessList(w, http.StatusOK, "Low stock products retrieved successfully", len(products), products)
}

// productID parses the path identifier. A malformed UUID is a 400, distinct
// from the 404 a well-formed but unknown identifier produces.
func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid product ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *ProductHandler) stockAdjustment(w http.ResponseWriter, r *http.Request) (uuid.UUID, *dto.AdjustStockRequest, bool) {
	id, ok := h.productID(w, r)
	if !ok {
		return uuid.Nil, nil, false
	}

	var req dto.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return uuid.Nil, nil, false
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return uuid.Nil, nil, false
	}

	return id, &req, true
}

// writeError maps domain failures onto HTTP statuses: not-found is 404,
// rule violations are 400, everything else is 500 behind a generic message.
func (h *ProductHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	var insufficientStock *usecase.InsufficientStockError
	var constraintViolation *domainRepo.ConstraintViolationError

	switch {
	case errors.Is(err, usecase.ErrProductNotFound):
		response.NotFound(w, "Product not found")
	case errors.Is(err, usecase.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrNegativeStock):
		response.BadRequest(w, err.Error())
	case errors.As(err, &insufficientStock):
		message := fmt.Sprintf("Insufficient stock. Available: %d, Requested: %d",
			insufficientStock.Available, insufficientStock.Requested)
		response.BadRequest(w, message)
	case errors.As(err, &constraintViolation):
		response.BadRequest(w, constraintViolation.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
