package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"favorites-service/internal/middleware"
	"favorites-service/internal/user/domain"
	"favorites-service/internal/user/usecase/command"
	"favorites-service/internal/user/usecase/query"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customer_requests_total",
			Help: "Total number of requests to the customer endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "customer_request_duration_seconds",
			Help:    "Duration of customer requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

func init() {
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
}

// CustomerHandler handles HTTP requests for customer accounts
type CustomerHandler struct {
	registerHandler *command.RegisterCustomerHandler
	loginHandler    *command.LoginCustomerHandler
	updateHandler   *command.UpdateCustomerHandler
	deleteHandler   *command.DeleteCustomerHandler
	getHandler      *query.GetCustomerHandler
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(
	registerHandler *command.RegisterCustomerHandler,
	loginHandler *command.LoginCustomerHandler,
	updateHandler *command.UpdateCustomerHandler,
	deleteHandler *command.DeleteCustomerHandler,
	getHandler *query.GetCustomerHandler,
) *CustomerHandler {
	return &CustomerHandler{
		registerHandler: registerHandler,
		loginHandler:    loginHandler,
		updateHandler:   updateHandler,
		deleteHandler:   deleteHandler,
		getHandler:      getHandler,
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

func (h *CustomerHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

type customerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register handles POST /auth/register
func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.RegisterCustomerCommand{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	customer, err := h.registerHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, customer)
}

// Login handles POST /auth/login
func (h *CustomerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.loginHandler.Handle(r.Context(), command.LoginCustomerCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.respondJSON(w, http.StatusOK, response)
}

// GetProfile handles GET /users/me
func (h *CustomerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Principal not found in context")
		return
	}

	customer, err := h.getHandler.Handle(r.Context(), query.GetCustomerQuery{ID: principal.ID})
	if err != nil {
		h.respondCustomerError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, customer)
}

// UpdateProfile handles PUT /users/me
func (h *CustomerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Principal not found in context")
		return
	}

	h.update(w, r, principal.ID)
}

// DeleteProfile handles DELETE /users/me
func (h *CustomerHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Principal not found in context")
		return
	}

	h.delete(w, r, principal.ID)
}

// GetCustomer handles GET /users/{id}
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	customer, err := h.getHandler.Handle(r.Context(), query.GetCustomerQuery{ID: id})
	if err != nil {
		h.respondCustomerError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, customer)
}

// UpdateCustomer handles PUT /users/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	h.update(w, r, id)
}

// DeleteCustomer handles DELETE /users/{id}
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}

	h.delete(w, r, id)
}

func (h *CustomerHandler) update(w http.ResponseWriter, r *http.Request, id uint) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateCustomerCommand{
		ID:        id,
		Principal: principal,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	customer, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondCustomerError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) delete(w http.ResponseWriter, r *http.Request, id uint) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	cmd := command.DeleteCustomerCommand{ID: id, Principal: principal}
	if err := h.deleteHandler.Handle(r.Context(), cmd); err != nil {
		h.respondCustomerError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CustomerHandler) pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func (h *CustomerHandler) respondCustomerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.respondError(w, http.StatusNotFound, "Customer not found")
	case errors.Is(err, domain.ErrForbidden):
		h.respondError(w, http.StatusForbidden, "You can only manage your own profile")
	default:
		h.respondError(w, http.StatusBadRequest, err.Error())
	}
}

func (h *CustomerHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *CustomerHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// HealthCheck handles GET /health
func (h *CustomerHandler) HealthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// RegisterHealthCheck registers the health check endpoint
func (h *CustomerHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", h.metricsMiddleware("/health", h.HealthCheck(db))).Methods("GET")
}

// RegisterRoutes registers all customer routes
func (h *CustomerHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/auth/register", h.metricsMiddleware("/auth/register", h.Register)).Methods("POST")
	router.HandleFunc("/auth/login", h.metricsMiddleware("/auth/login", h.Login)).Methods("POST")

	// Authenticated routes
	router.HandleFunc("/users/me", h.metricsMiddleware("/users/me", middleware.Auth(h.GetProfile))).Methods("GET")
	router.HandleFunc("/users/me", h.metricsMiddleware("/users/me", middleware.Auth(h.UpdateProfile))).Methods("PUT")
	router.HandleFunc("/users/me", h.metricsMiddleware("/users/me", middleware.Auth(h.DeleteProfile))).Methods("DELETE")
	router.HandleFunc("/users/{id}", h.metricsMiddleware("/users/{id}", middleware.Auth(h.GetCustomer))).Methods("GET")
	router.HandleFunc("/users/{id}", h.metricsMiddleware("/users/{id}", middleware.Auth(h.UpdateCustomer))).Methods("PUT")
	router.HandleFunc("/users/{id}", h.metricsMiddleware("/users/{id}", middleware.Auth(h.DeleteCustomer))).Methods("DELETE")
}
