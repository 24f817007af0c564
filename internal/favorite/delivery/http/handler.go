package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"favorites-service/internal/catalog"
	"favorites-service/internal/favorite/domain"
	"favorites-service/internal/favorite/usecase/command"
	"favorites-service/internal/favorite/usecase/query"
	"favorites-service/internal/middleware"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorites_requests_total",
			Help: "Total number of requests to the favorites endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "favorites_request_duration_seconds",
			Help:    "Duration of favorites requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

func init() {
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
}

// FavoriteHandler handles HTTP requests for favorites
type FavoriteHandler struct {
	createHandler     *command.CreateFavoriteHandler
	deactivateHandler *command.DeactivateFavoriteHandler
	listHandler       *query.ListFavoritesHandler
	getHandler        *query.GetFavoriteHandler
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(
	createHandler *command.CreateFavoriteHandler,
	deactivateHandler *command.DeactivateFavoriteHandler,
	listHandler *query.ListFavoritesHandler,
	getHandler *query.GetFavoriteHandler,
) *FavoriteHandler {
	return &FavoriteHandler{
		createHandler:     createHandler,
		deactivateHandler: deactivateHandler,
		listHandler:       listHandler,
		getHandler:        getHandler,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *FavoriteHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListFavorites handles GET /favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Principal not found in context")
		return
	}

	views, err := h.listHandler.Handle(r.Context(), query.ListFavoritesQuery{CustomerID: principal.ID})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, views)
}

// CreateFavorite handles POST /favorites
func (h *FavoriteHandler) CreateFavorite(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Principal not found in context")
		return
	}

	var req struct {
		ProductID int `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.CreateFavoriteCommand{
		CustomerID: principal.ID,
		ProductID:  req.ProductID,
	}

	favorite, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyFavorited):
			h.respondDetail(w, http.StatusBadRequest, "Produto já está nos favoritos.")
		case errors.Is(err, domain.ErrProductNotFound):
			h.respondDetail(w, http.StatusNotFound, "Produto não encontrado.")
		case errors.Is(err, catalog.ErrUpstreamUnavailable):
			h.respondError(w, http.StatusBadGateway, "Erro ao acessar API externa.")
		default:
			h.respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, favorite)
}

// GetFavorite handles GET /favorites/{id}
func (h *FavoriteHandler) GetFavorite(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Principal not found in context")
		return
	}

	// Unparseable ids get the same 404 as unknown or inactive ones
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}

	favorite, err := h.getHandler.Handle(r.Context(), query.GetFavoriteQuery{
		FavoriteID: id,
		Principal:  principal,
	})
	if err != nil {
		h.respondFavoriteError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, favorite)
}

// DeactivateFavorite handles DELETE /favorites/{id}
func (h *FavoriteHandler) DeactivateFavorite(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Principal not found in context")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}

	cmd := command.DeactivateFavoriteCommand{
		FavoriteID: id,
		Principal:  principal,
	}

	if err := h.deactivateHandler.Handle(r.Context(), cmd); err != nil {
		h.respondFavoriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondFavoriteError maps taxonomy errors to their status codes. Missing and
// inactive favorites share one 404 body.
func (h *FavoriteHandler) respondFavoriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.respondDetail(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, domain.ErrForbidden):
		h.respondDetail(w, http.StatusForbidden, "You do not have permission to perform this action.")
	default:
		h.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *FavoriteHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *FavoriteHandler) respondDetail(w http.ResponseWriter, status int, detail string) {
	h.respondJSON(w, status, map[string]string{"detail": detail})
}

func (h *FavoriteHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all favorites routes
func (h *FavoriteHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/favorites", h.metricsMiddleware("/favorites", middleware.Auth(h.ListFavorites))).Methods("GET")
	router.HandleFunc("/favorites", h.metricsMiddleware("/favorites", middleware.Auth(h.CreateFavorite))).Methods("POST")
	router.HandleFunc("/favorites/{id}", h.metricsMiddleware("/favorites/{id}", middleware.Auth(h.GetFavorite))).Methods("GET")
	router.HandleFunc("/favorites/{id}", h.metricsMiddleware("/favorites/{id}", middleware.Auth(h.DeactivateFavorite))).Methods("DELETE")
}
