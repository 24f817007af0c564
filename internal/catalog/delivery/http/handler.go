package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"favorites-service/internal/catalog"
)

// CatalogHandler exposes the cached catalog proxy endpoints. They are public,
// matching the remote catalog itself.
type CatalogHandler struct {
	client *catalog.Client
}

// NewCatalogHandler creates a new catalog proxy handler
func NewCatalogHandler(client *catalog.Client) *CatalogHandler {
	return &CatalogHandler{client: client}
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.client.GetAllProducts(r.Context())
	if err != nil {
		h.respondJSON(w, http.StatusBadGateway, map[string]string{"error": "Erro ao acessar API externa."})
		return
	}

	h.respondRaw(w, http.StatusOK, products)
}

// GetProduct handles GET /products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
		return
	}

	product, err := h.client.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			h.respondJSON(w, http.StatusNotFound, map[string]string{"detail": "Produto não encontrado."})
			return
		}
		h.respondJSON(w, http.StatusBadGateway, map[string]string{"error": "Erro ao acessar API externa."})
		return
	}

	h.respondRaw(w, http.StatusOK, product)
}

// respondRaw writes an already-serialized catalog payload
func (h *CatalogHandler) respondRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func (h *CatalogHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RegisterRoutes registers the catalog proxy routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/products", h.ListProducts).Methods("GET")
	router.HandleFunc("/products/{id}", h.GetProduct).Methods("GET")
}
