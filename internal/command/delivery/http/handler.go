package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pmusial/spizarka/internal/command"
	"github.com/pmusial/spizarka/internal/middleware"
	"github.com/pmusial/spizarka/pkg/logger"
)

// CommandHandler exposes the natural-language command pipeline over HTTP
type CommandHandler struct {
	processor *command.Processor
	limiter   *middleware.RateLimiter

	commandCounter *prometheus.CounterVec
	commandLatency *prometheus.HistogramVec
}

// NewCommandHandler creates a new command handler. The rate limiter is
// optional.
func NewCommandHandler(processor *command.Processor, limiter *middleware.RateLimiter) *CommandHandler {
	commandCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "command_pipeline_total",
			Help: "Total number of processed commands by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	commandLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "command_pipeline_duration_seconds",
			Help:    "Duration of command pipeline runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	prometheus.MustRegister(commandCounter)
	prometheus.MustRegister(commandLatency)

	return &CommandHandler{
		processor:      processor,
		limiter:        limiter,
		commandCounter: commandCounter,
		commandLatency: commandLatency,
	}
}

// Response is the command endpoint's envelope. Candidates is present only
// for ambiguous references, so the UI can render a clarification prompt.
type Response struct {
	Success    bool                `json:"success"`
	Result     *command.Result     `json:"result,omitempty"`
	Error      string              `json:"error,omitempty"`
	ErrorKind  string              `json:"error_kind,omitempty"`
	Candidates []command.Candidate `json:"candidates,omitempty"`
	Retryable  bool                `json:"retryable,omitempty"`
}

// RegisterRoutes registers the command processing route
func (h *CommandHandler) RegisterRoutes(router *mux.Router) {
	handler := h.ProcessCommand
	if h.limiter != nil {
		handler = h.limiter.Middleware(handler)
	}
	router.HandleFunc("/api/command/process", middleware.AuthMiddleware(handler)).Methods("POST")
}

// ProcessCommand handles POST /api/command/process
func (h *CommandHandler) ProcessCommand(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respond(w, "unknown", "unauthenticated", start, http.StatusUnauthorized, Response{
			Success:   false,
			Error:     "Authentication required",
			ErrorKind: "unauthenticated",
		})
		return
	}

	var req struct {
		Command string `json:"command"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respond(w, "unknown", "bad_request", start, http.StatusBadRequest, Response{
			Success:   false,
			Error:     "Invalid request body",
			ErrorKind: "bad_request",
		})
		return
	}

	result, err := h.processor.Process(r.Context(), userID, req.Command)
	if err != nil {
		status, resp := errorResponse(err)
		logger.Warn(r.Context()).
			Err(err).
			Str("error_kind", resp.ErrorKind).
			Str("command", req.Command).
			Msg("Command rejected")
		h.respond(w, "unknown", resp.ErrorKind, start, status, resp)
		return
	}

	logger.Info(r.Context()).
		Str("action", result.Action).
		Str("item", result.ItemName).
		Int("quantity", result.Quantity).
		Msg("Command applied")

	h.respond(w, result.Action, "success", start, http.StatusOK, Response{
		Success: true,
		Result:  result,
	})
}

// errorResponse maps the pipeline error taxonomy onto HTTP statuses. The
// typed error text is surfaced verbatim; nothing is rephrased or guessed.
func errorResponse(err error) (int, Response) {
	resp := Response{Success: false, Error: err.Error()}

	var (
		emptyErr     *command.EmptyUtteranceError
		intentErr    *command.UnknownIntentError
		ambiguousErr *command.AmbiguousReferenceError
		unresolved   *command.UnresolvedReferenceError
		notFoundErr  *command.ItemNotFoundError
		missingErr   *command.MissingArgumentError
		quantityErr  *command.InsufficientQuantityError
		conflictErr  *command.ConcurrentModificationError
	)

	switch {
	case errors.As(err, &emptyErr):
		resp.ErrorKind = "empty_utterance"
		return http.StatusBadRequest, resp
	case errors.As(err, &intentErr):
		resp.ErrorKind = "unknown_intent"
		return http.StatusBadRequest, resp
	case errors.As(err, &ambiguousErr):
		resp.ErrorKind = "ambiguous_reference"
		resp.Candidates = ambiguousErr.Candidates
		return http.StatusUnprocessableEntity, resp
	case errors.As(err, &unresolved):
		resp.ErrorKind = "unresolved_reference"
		return http.StatusNotFound, resp
	case errors.As(err, &notFoundErr):
		resp.ErrorKind = "item_not_found"
		return http.StatusNotFound, resp
	case errors.As(err, &missingErr):
		resp.ErrorKind = "missing_argument"
		return http.StatusBadRequest, resp
	case errors.As(err, &quantityErr):
		resp.ErrorKind = "insufficient_quantity"
		return http.StatusConflict, resp
	case errors.As(err, &conflictErr):
		resp.ErrorKind = "concurrent_modification"
		resp.Retryable = true
		return http.StatusConflict, resp
	default:
		resp.Error = "Failed to process command"
		resp.ErrorKind = "internal"
		return http.StatusInternalServerError, resp
	}
}

func (h *CommandHandler) respond(w http.ResponseWriter, action, outcome string, start time.Time, status int, resp Response) {
	h.commandCounter.WithLabelValues(action, outcome).Inc()
	h.commandLatency.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
