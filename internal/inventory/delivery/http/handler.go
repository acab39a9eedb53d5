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

	"github.com/pmusial/spizarka/internal/inventory/domain"
	"github.com/pmusial/spizarka/internal/inventory/usecase/command"
	"github.com/pmusial/spizarka/internal/inventory/usecase/query"
	"github.com/pmusial/spizarka/internal/middleware"
	"github.com/pmusial/spizarka/pkg/logger"
)

// InventoryHandler handles HTTP requests for the manual inventory surface
type InventoryHandler struct {
	// Command handlers
	createContainerHandler *command.CreateContainerHandler
	createShelfHandler     *command.CreateShelfHandler
	upsertItemHandler      *command.UpsertItemHandler
	deleteContainerHandler *command.DeleteContainerHandler
	deleteShelfHandler     *command.DeleteShelfHandler
	deleteItemHandler      *command.DeleteItemHandler

	// Query handlers
	listContainersHandler *query.ListContainersHandler
	getContainerHandler   *query.GetContainerHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(repo domain.InventoryRepository) *InventoryHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_requests_total",
			Help: "Total number of requests to the inventory endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_request_duration_seconds",
			Help:    "Duration of inventory requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &InventoryHandler{
		createContainerHandler: command.NewCreateContainerHandler(repo),
		createShelfHandler:     command.NewCreateShelfHandler(repo),
		upsertItemHandler:      command.NewUpsertItemHandler(repo),
		deleteContainerHandler: command.NewDeleteContainerHandler(repo),
		deleteShelfHandler:     command.NewDeleteShelfHandler(repo),
		deleteItemHandler:      command.NewDeleteItemHandler(repo),
		listContainersHandler:  query.NewListContainersHandler(repo),
		getContainerHandler:    query.NewGetContainerHandler(repo),
		requestCounter:         requestCounter,
		requestLatency:         requestLatency,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers the inventory routes, all behind authentication
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/containers", middleware.AuthMiddleware(h.ListContainers)).Methods("GET")
	router.HandleFunc("/api/containers", middleware.AuthMiddleware(h.CreateContainer)).Methods("POST")
	router.HandleFunc("/api/containers/{id}", middleware.AuthMiddleware(h.GetContainer)).Methods("GET")
	router.HandleFunc("/api/containers/{id}", middleware.AuthMiddleware(h.DeleteContainer)).Methods("DELETE")
	router.HandleFunc("/api/containers/{id}/shelves", middleware.AuthMiddleware(h.CreateShelf)).Methods("POST")
	router.HandleFunc("/api/shelves/{id}", middleware.AuthMiddleware(h.DeleteShelf)).Methods("DELETE")
	router.HandleFunc("/api/shelves/{id}/items", middleware.AuthMiddleware(h.UpsertItem)).Methods("POST")
	router.HandleFunc("/api/items/{id}", middleware.AuthMiddleware(h.DeleteItem)).Methods("DELETE")
}

// RegisterHealthCheck registers the health check endpoint
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}
		respondJSON(w, http.StatusOK, Response{Success: true, Message: "ok"})
	}).Methods("GET")
}

// CreateContainer handles POST /api/containers
func (h *InventoryHandler) CreateContainer(w http.ResponseWriter, r *http.Request) {
	defer h.observe("POST", "/api/containers", time.Now())
	userID, _ := middleware.UserID(r.Context())

	var req struct {
		Name string `json:"name"`
		Kind string `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, "POST", "/api/containers", http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	container, err := h.createContainerHandler.Handle(r.Context(), command.CreateContainerCommand{
		UserID: userID,
		Name:   req.Name,
		Kind:   req.Kind,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrDuplicateName) {
			status = http.StatusConflict
		}
		h.respond(w, "POST", "/api/containers", status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.respond(w, "POST", "/api/containers", http.StatusCreated, Response{
		Success: true,
		Message: "Container created successfully",
		Data:    container,
	})
}

// ListContainers handles GET /api/containers
func (h *InventoryHandler) ListContainers(w http.ResponseWriter, r *http.Request) {
	defer h.observe("GET", "/api/containers", time.Now())
	userID, _ := middleware.UserID(r.Context())

	containers, err := h.listContainersHandler.Handle(r.Context(), query.ListContainersQuery{UserID: userID})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list containers")
		h.respond(w, "GET", "/api/containers", http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list containers",
		})
		return
	}

	h.respond(w, "GET", "/api/containers", http.StatusOK, Response{
		Success: true,
		Data:    containers,
	})
}

// GetContainer handles GET /api/containers/{id}
func (h *InventoryHandler) GetContainer(w http.ResponseWriter, r *http.Request) {
	defer h.observe("GET", "/api/containers/{id}", time.Now())
	userID, _ := middleware.UserID(r.Context())

	id, err := pathID(r)
	if err != nil {
		h.respond(w, "GET", "/api/containers/{id}", http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid container ID",
		})
		return
	}

	container, err := h.getContainerHandler.Handle(r.Context(), query.GetContainerQuery{UserID: userID, ID: id})
	if err != nil {
		h.respond(w, "GET", "/api/containers/{id}", http.StatusNotFound, Response{
			Success: false,
			Error:   "Container not found",
		})
		return
	}

	h.respond(w, "GET", "/api/containers/{id}", http.StatusOK, Response{
		Success: true,
		Data:    container,
	})
}

// DeleteContainer handles DELETE /api/containers/{id}
func (h *InventoryHandler) DeleteContainer(w http.ResponseWriter, r *http.Request) {
	defer h.observe("DELETE", "/api/containers/{id}", time.Now())
	userID, _ := middleware.UserID(r.Context())

	id, err := pathID(r)
	if err != nil {
		h.respond(w, "DELETE", "/api/containers/{id}", http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid container ID",
		})
		return
	}

	if err := h.deleteContainerHandler.Handle(r.Context(), command.DeleteContainerCommand{UserID: userID, ID: id}); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrNotFound) {
			status = http.StatusNotFound
		}
		h.respond(w, "DELETE", "/api/containers/{id}", status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.respond(w, "DELETE", "/api/containers/{id}", http.StatusOK, Response{
		Success: true,
		Message: "Container deleted successfully",
	})
}

// CreateShelf handles POST /api/containers/{id}/shelves
func (h *InventoryHandler) CreateShelf(w http.ResponseWriter, r *http.Request) {
	defer h.observe("POST", "/api/containers/{id}/shelves", time.Now())
	userID, _ := middleware.UserID(r.Context())

	containerID, err := pathID(r)
	if err != nil {
		h.respond(w, "POST", "/api/containers/{id}/shelves", http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid container ID",
		})
		return
	}

	var req struct {
		Name     string `json:"name"`
		Position int    `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, "POST", "/api/containers/{id}/shelves", http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	shelf, err := h.createShelfHandler.Handle(r.Context(), command.CreateShelfCommand{
		UserID:      userID,
		ContainerID: containerID,
		Name:        req.Name,
		Position:    req.Position,
	})
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, domain.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrPositionTaken):
			status = http.StatusConflict
		}
		h.respond(w, "POST", "/api/containers/{id}/shelves", status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.respond(w, "POST", "/api/containers/{id}/shelves", http.StatusCreated, Response{
		Success: true,
		Message: "Shelf created successfully",
		Data:    shelf,
	})
}

// DeleteShelf handles DELETE /api/shelves/{id}
func (h *InventoryHandler) DeleteShelf(w http.ResponseWriter, r *http.Request) {
	defer h.observe("DELETE", "/api/shelves/{id}", time.Now())
	userID, _ := middleware.UserID(r.Context())

	id, err := pathID(r)
	if err != nil {
		h.respond(w, "DELETE", "/api/shelves/{id}", http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid shelf ID",
		})
		return
	}

	if err := h.deleteShelfHandler.Handle(r.Context(), command.DeleteShelfCommand{UserID: userID, ID: id}); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrNotFound) {
			status = http.StatusNotFound
		}
		h.respond(w, "DELETE", "/api/shelves/{id}", status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.respond(w, "DELETE", "/api/shelves/{id}", http.StatusOK, Response{
		Success: true,
		Message: "Shelf deleted successfully",
	})
}

// UpsertItem handles POST /api/shelves/{id}/items
func (h *InventoryHandler) UpsertItem(w http.ResponseWriter, r *http.Request) {
	defer h.observe("POST", "/api/shelves/{id}/items", time.Now())
	userID, _ := middleware.UserID(r.Context())

	shelfID, err := pathID(r)
	if err != nil {
		h.respond(w, "POST", "/api/shelves/{id}/items", http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid shelf ID",
		})
		return
	}

	var req struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
		Unit     string `json:"unit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, "POST", "/api/shelves/{id}/items", http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	item, err := h.upsertItemHandler.Handle(r.Context(), command.UpsertItemCommand{
		UserID:   userID,
		ShelfID:  shelfID,
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrNotFound) {
			status = http.StatusNotFound
		}
		h.respond(w, "POST", "/api/shelves/{id}/items", status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.respond(w, "POST", "/api/shelves/{id}/items", http.StatusCreated, Response{
		Success: true,
		Message: "Item saved successfully",
		Data:    item,
	})
}

// DeleteItem handles DELETE /api/items/{id}
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	defer h.observe("DELETE", "/api/items/{id}", time.Now())
	userID, _ := middleware.UserID(r.Context())

	id, err := pathID(r)
	if err != nil {
		h.respond(w, "DELETE", "/api/items/{id}", http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid item ID",
		})
		return
	}

	if err := h.deleteItemHandler.Handle(r.Context(), command.DeleteItemCommand{UserID: userID, ID: id}); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrNotFound) {
			status = http.StatusNotFound
		}
		h.respond(w, "DELETE", "/api/items/{id}", status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.respond(w, "DELETE", "/api/items/{id}", http.StatusOK, Response{
		Success: true,
		Message: "Item deleted successfully",
	})
}

func (h *InventoryHandler) respond(w http.ResponseWriter, method, endpoint string, status int, resp Response) {
	h.requestCounter.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	respondJSON(w, status, resp)
}

func (h *InventoryHandler) observe(method, endpoint string, start time.Time) {
	h.requestLatency.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

func respondJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
