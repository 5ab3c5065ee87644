package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-inventory-service/internal/delivery/dto"
	deliveryHttp "go-inventory-service/internal/delivery/http"
	"go-inventory-service/internal/delivery/http/handler"
	"go-inventory-service/internal/delivery/http/middleware"
	"go-inventory-service/internal/usecase"
	"go-inventory-service/pkg/response"
	"go-inventory-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductUsecase is a mock implementation of usecase.ProductUsecase
type MockProductUsecase struct {
	mock.Mock
}

func (m *MockProductUsecase) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProductResponse), args.Error(1)
}

func (m *MockProductUsecase) GetAll(ctx context.Context) ([]dto.ProductResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ProductResponse), args.Error(1)
}

func (m *MockProductUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProductResponse), args.Error(1)
}

func (m *MockProductUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProductResponse), args.Error(1)
}

func (m *MockProductUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductUsecase) AddStock(ctx context.Context, id uuid.UUID, quantity int) (*dto.ProductResponse, error) {
	args := m.Called(ctx, id, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProductResponse), args.Error(1)
}

func (m *MockProductUsecase) RemoveStock(ctx context.Context, id uuid.UUID, quantity int) (*dto.ProductResponse, error) {
	args := m.Called(ctx, id, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProductResponse), args.Error(1)
}

func (m *MockProductUsecase) GetLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ProductResponse), args.Error(1)
}

func newTestRouter(uc usecase.ProductUsecase) *mux.Router {
	h := handler.NewProductHandler(uc, validator.NewValidator())
	return deliveryHttp.NewRouter(h, middleware.NewCORSMiddleware()).Setup()
}

func doRequest(router *mux.Router, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestProductHandler_GetByID_InvalidIDIsBadRequest(t *testing.T) {
	mockUc := new(MockProductUsecase)
	router := newTestRouter(mockUc)

	rec := doRequest(router, http.MethodGet, "/api/v1/products/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Invalid product ID", resp.Message)
	mockUc.AssertNotCalled(t, "GetByID")
}

func TestProductHandler_GetByID_NotFound(t *testing.T) {
	mockUc := new(MockProductUsecase)
	router := newTestRouter(mockUc)
	id := uuid.New()

	mockUc.On("GetByID", mock.Anything, id).Return(nil, usecase.ErrProductNotFound).Once()

	rec := doRequest(router, http.MethodGet, "/api/v1/products/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Product not found", resp.Message)
	mockUc.AssertExpectations(t)
}

func TestProductHandler_Create(t *testing.T) {
	mockUc := new(MockProductUsecase)
	router := newTestRouter(mockUc)

	created := &dto.ProductResponse{ID: uuid.New(), Name: "Laptop", StockQuantity: 10, LowStockThreshold: 10}
	mockUc.On("Create", mock.Anything, mock.Anything).Return(created, nil).Once()

	rec := doRequest(router, http.MethodPost, "/api/v1/products", map[string]any{
		"name":           "Laptop",
		"description":    "High performance laptop",
		"stock_quantity": 10,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockUc.AssertExpectations(t)
}

func TestProductHandler_Create_ValidationFailure(t *testing.T) {
	mockUc := new(MockProductUsecase)
	router := newTestRouter(mockUc)

	rec := doRequest(router, http.MethodPost, "/api/v1/products", map[string]any{
		"name":        "   ",
		"description": "d",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Validation failed", resp.Message)
	mockUc.AssertNotCalled(t, "Create")
}

func TestProductHandler_Update_NegativeStock(t *testing.T) {
	mockUc := new(MockProductUsecase)
	router := newTestRouter(mockUc)
	id := uuid.New()

	mockUc.On("Update", mock.Anything, id, mock.Anything).Return(nil, usecase.ErrNegativeStock).Once()

	rec := doRequest(router, http.MethodPut, "/api/v1/products/"+id.String(), map[string]any{
		"stock_quantity": -5,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "stock quantity cannot be negative", resp.Message)
	mockUc.AssertExpectations(t)
}

func TestProductHandler_Delete(t *testing.T) {
	mockUc := new(MockProductUsecase)
	router := newTestRouter(mockUc)
	id := uuid.New()

	mockUc.On("Delete", mock.Anything, id).Return(nil).Once()

	rec := doRequest(router, http.MethodDelete, "/api/v1/products/"+id.String(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockUc.AssertExpectations(t)
}

func TestProductHandler_AddStock(t *testing.T) {
	mockUc := new(MockProductUsecase)
	router := newTestRouter(mockUc)
	id := uuid.New()

	updated := &dto.ProductResponse{ID: id, Name: "Laptop", StockQuantity: 150}
	mockUc.On("AddStock", mock.Anything, id, 50).Return(updated, nil).Once()

	rec := doRequest(router, http.MethodPatch, "/api/v1/products/"+id.String()+"/add-stock", map[string]any{
		"quantity": 50,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Added 50 units to stock", resp.Message)
	mockUc.AssertExpectations(t)
}

func TestProductHandler_AddStock_MissingQuantity(t *testing.T) {
	mockUc := new(MockProductUsecase)
	router := newTestRouter(mockUc)
	id := uuid.New()

	rec := doRequest(router, http.MethodPatch, "/api/v1/products/"+id.String()+"/add-stock", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockUc.AssertNotCalled(t, "AddStock")
}

func TestProductHandler_RemoveStock_Insufficient(t *testing.T) {
	mockUc := new(MockProductUsecase)
	router := newTestRouter(mockUc)
	id := uuid.New()

	insufficient := &usecase.InsufficientStockError{Available: 120, Requested: 200}
	mockUc.On("RemoveStock", mock.Anything, id, 200).Return(nil, insufficient).Once()

	rec := doRequest(router, http.MethodPatch, "/api/v1/products/"+id.String()+"/remove-stock", map[string]any{
		"quantity": 200,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Insufficient stock. Available: 120, Requested: 200", resp.Message)
	mockUc.AssertExpectations(t)
}

func TestProductHandler_LowStockRouteIsNotCapturedAsID(t *testing.T) {
	mockUc := new(MockProductUsecase)
	router := newTestRouter(mockUc)

	mockUc.On("GetLowStock", mock.Anything).Return([]dto.ProductResponse{}, nil).Once()

	rec := doRequest(router, http.MethodGet, "/api/v1/products/low-stock", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockUc.AssertNotCalled(t, "GetByID")
	mockUc.AssertExpectations(t)
}

func TestProductHandler_GetAll_ReturnsCount(t *testing.T) {
	mockUc := new(MockProductUsecase)
	router := newTestRouter(mockUc)

	products := []dto.ProductResponse{
		{ID: uuid.New(), Name: "A"},
		{ID: uuid.New(), Name: "B"},
	}
	mockUc.On("GetAll", mock.Anything).Return(products, nil).Once()

	rec := doRequest(router, http.MethodGet, "/api/v1/products", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 2, *resp.Count)
	mockUc.AssertExpectations(t)
}
