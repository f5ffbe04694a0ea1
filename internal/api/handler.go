package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/optstore/internal/inference"
	"github.com/eugenenazirov/optstore/internal/options"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler exposes the option store and the inferrer over HTTP. The store is
// not safe for concurrent use, so every request that touches it holds mu.
type Handler struct {
	store    *options.Store
	inferrer inference.Inferrer
	logger   *zap.Logger

	clock func() time.Time

	mu sync.Mutex
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithLogger sets the logger used to record option changes.
func WithLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(store *options.Store, inferrer inference.Inferrer, opts ...HandlerOption) *Handler {
	h := &Handler{
		store:    store,
		inferrer: inferrer,
		logger:   zap.NewNop(),
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListOptions(w http.ResponseWriter, r *http.Request) {
	_ = r
	var current, defaults []options.Option
	_ = h.locked(func() error {
		current = h.store.Snapshot()
		defaults = h.store.Defaults()
		return nil
	})

	resp := optionsResponse{Options: make([]optionResponse, 0, len(current))}
	for i, opt := range current {
		resp.Options = append(resp.Options, optionResponse{
			Key:     opt.Name,
			Value:   opt.Value,
			Default: defaults[i].Value,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetOption(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	var resp optionResponse
	err := h.locked(func() error {
		var err error
		resp, err = h.describe(key)
		return err
	})
	if err != nil {
		writeOptionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutOption(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	var req setOptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	if len(req.Value) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid request", "value is required")
		return
	}
	var value any
	if err := json.Unmarshal(req.Value, &value); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse option value")
		return
	}

	var resp optionResponse
	err := h.locked(func() error {
		if err := h.store.Set(key, value); err != nil {
			return err
		}
		var err error
		resp, err = h.describe(key)
		return err
	})
	if err != nil {
		writeOptionError(w, err)
		return
	}

	h.logger.Info("option updated",
		zap.String("key", key),
		zap.String("value", options.FormatValue(value)),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)
	resp.Message = "Option updated successfully"
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleResetOption(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	var resp optionResponse
	err := h.locked(func() error {
		if err := h.store.Reset(key); err != nil {
			return err
		}
		var err error
		resp, err = h.describe(key)
		return err
	})
	if err != nil {
		writeOptionError(w, err)
		return
	}

	h.logger.Info("option reset",
		zap.String("key", key),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)
	resp.Message = "Option reset to default"
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleInfer(w http.ResponseWriter, r *http.Request) {
	var req inferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	if len(req.Values) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid request", "values must contain at least one entry")
		return
	}

	overrides := make([]options.Override, 0, len(req.Overrides))
	for _, o := range req.Overrides {
		overrides = append(overrides, options.Override{Key: o.Key, Value: o.Value})
	}

	var result inference.Result
	start := time.Now()
	err := h.locked(func() error {
		return h.store.WithOverrides(overrides, func() error {
			var inferErr error
			result, inferErr = h.inferrer.Infer(req.Values)
			return inferErr
		})
	})
	elapsed := time.Since(start)

	if err != nil {
		switch {
		case errors.Is(err, inference.ErrInvalidOptionValue):
			writeError(w, http.StatusUnprocessableEntity, "Invalid option value", err.Error())
		default:
			writeOptionError(w, err)
		}
		return
	}

	resp := inferResponse{
		Kind:              string(result.Kind),
		UniqueRatio:       result.UniqueRatio,
		Considered:        result.Considered,
		CalculationTimeMs: elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	_ = r
	var text string
	_ = h.locked(func() error {
		text = h.store.String()
		return nil
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text + "\n"))
}

func (h *Handler) locked(fn func() error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn()
}

// describe must be called with mu held.
func (h *Handler) describe(key string) (optionResponse, error) {
	value, err := h.store.Get(key)
	if err != nil {
		return optionResponse{}, err
	}
	def, err := h.store.Default(key)
	if err != nil {
		return optionResponse{}, err
	}
	return optionResponse{Key: key, Value: value, Default: def}, nil
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type setOptionRequest struct {
	Value json.RawMessage `json:"value"`
}

type overrideRequest struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type inferRequest struct {
	Values    []string          `json:"values"`
	Overrides []overrideRequest `json:"overrides"`
}

type inferResponse struct {
	Kind              string  `json:"kind"`
	UniqueRatio       float64 `json:"uniqueRatio"`
	Considered        int     `json:"considered"`
	CalculationTimeMs int64   `json:"calculationTimeMs"`
}

type optionResponse struct {
	Key     string `json:"key"`
	Value   any    `json:"value"`
	Default any    `json:"default"`
	Message string `json:"message,omitempty"`
}

type optionsResponse struct {
	Options []optionResponse `json:"options"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// writeJSON encodes payload before touching the response so a value JSON
// cannot represent, such as NaN, becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{
			Error:   "Internal error",
			Details: fmt.Sprintf("unable to encode response: %v", err),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeOptionError(w http.ResponseWriter, err error) {
	if errors.Is(err, options.ErrUnknownOption) {
		writeError(w, http.StatusNotFound, "Unknown option", err.Error(), "GET /api/options lists the available keys")
		return
	}
	writeInternalError(w, err)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
