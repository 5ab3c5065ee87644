package http

import (
	"net/http"

	"go-inventory-service/internal/delivery/http/handler"
	"go-inventory-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router         *mux.Router
	productHandler *handler.ProductHandler
	corsMiddleware *middleware.CORSMiddleware
}

func NewRouter(
	productHandler *handler.ProductHandler,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		productHandler: productHandler,
		corsMiddleware: corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Product routes. The low-stock route is registered before the {id}
	// routes so "low-stock" is never captured as an identifier.
	api.HandleFunc("/products/low-stock", r.productHandler.GetLowStock).Methods(http.MethodGet)
	api.HandleFunc("/products", r.productHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/products", r.productHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", r.productHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", r.productHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", r.productHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/products/{id}/add-stock", r.productHandler.AddStock).Methods(http.MethodPatch)
	api.HandleFunc("/products/{id}/remove-stock", r.productHandler.RemoveStock).Methods(http.MethodPatch)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
