package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/prequal/internal/config"
	"github.com/iwvelando/prequal/internal/optimizer"
	"github.com/iwvelando/prequal/pkg/coerce"
	"github.com/iwvelando/prequal/pkg/constants"
	"github.com/iwvelando/prequal/pkg/optimization"
	"github.com/iwvelando/prequal/pkg/output"
	"github.com/iwvelando/prequal/pkg/prequal"
	"github.com/iwvelando/prequal/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const requestIDHeader = "X-Request-Id"

type contextKey string

const requestIDKey contextKey = "requestId"

type handler struct {
	logger        *zap.Logger
	engine        *prequal.Engine
	maxUploadSize int64
	batchWorkers  int
	version       string
	metrics       *metrics
}

// NewHandler constructs the HTTP handler that serves the pre-qualification
// API. A nil engine evaluates with the default policy and a nil cfg uses the
// server defaults.
func NewHandler(logger *zap.Logger, engine *prequal.Engine, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = prequal.New()
	}

	maxUploadSize := constants.DefaultMaxUploadSizeBytes
	batchWorkers := constants.DefaultBatchWorkers
	if cfg != nil {
		if cfg.UploadSizeBytes() > 0 {
			maxUploadSize = cfg.UploadSizeBytes()
		}
		if cfg.BatchWorkers > 0 {
			batchWorkers = cfg.BatchWorkers
		}
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		engine:        engine,
		maxUploadSize: maxUploadSize,
		batchWorkers:  batchWorkers,
		version:       trimmedVersion,
		metrics:       newMetrics(),
	}

	mux := http.NewServeMux()

	// Single application evaluation
	mux.Handle("/api/prequal", h.instrument("prequal", h.handlePrequal))

	// Batch evaluation
	mux.Handle("/api/prequal/batch", h.instrument("batch", h.handleBatch))

	// Active thresholds
	mux.Handle("/api/policy", h.instrument("policy", h.handlePolicy))

	// Version endpoint for client metadata
	mux.Handle("/api/version", h.instrument("version", h.handleVersion))

	mux.Handle("/metrics", h.metrics.handler())

	return h.withRequestID(mux)
}

// Run serves the API on cfg.Address until ctx is cancelled, then shuts the
// server down gracefully.
func Run(ctx context.Context, logger *zap.Logger, cfg *Config, engine *prequal.Engine, version string) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      NewHandler(logger, engine, cfg, version),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "server.Run"),
			zap.String("address", cfg.Address),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server", zap.String("op", "server.Run"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

type prequalResponse struct {
	RequestID string `json:"requestId"`
	prequal.Result
	Optimization *optimization.Summary `json:"optimization,omitempty"`
	Warnings     []string              `json:"warnings,omitempty"`
}

type batchEntry struct {
	output.Evaluation
	Warnings []string `json:"warnings,omitempty"`
}

type batchSummary struct {
	Approved    int `json:"approved"`
	Conditional int `json:"conditional"`
	Declined    int `json:"declined"`
}

type batchResponse struct {
	RequestID string       `json:"requestId"`
	Results   []batchEntry `json:"results"`
	Summary   batchSummary `json:"summary"`
	CSV       string       `json:"csv"`
	Duration  string       `json:"duration"`
}

func (h *handler) handlePrequal(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePrequal"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	payload, err := decodeJSON(r.Body)
	if err != nil {
		h.respondDecodeError(w, r, err, op)
		return
	}
	fields, ok := payload.(map[string]interface{})
	if !ok {
		h.respondError(w, r, http.StatusBadRequest, "invalid request payload: expected object", op)
		return
	}

	req := requestFromPayload(fields)
	result := h.engine.Compute(req)
	h.metrics.observeVerdict(result)

	h.requestLogger(r).Info("prequalification computed",
		zap.String("op", op),
		zap.String("category", string(result.Category)),
		zap.String("status", string(result.Status)),
	)

	response := prequalResponse{
		RequestID: requestID(r.Context()),
		Result:    result,
		Warnings:  validation.ValidateRequest("request", req),
	}

	if raw, present := fields["optimizer"]; present && raw != nil {
		directive, ok := raw.(map[string]interface{})
		if !ok {
			h.respondError(w, r, http.StatusBadRequest, "invalid optimizer: expected object", op)
			return
		}
		summary, err := optimizer.NewRunner(h.requestLogger(r), h.engine).
			MaxLoanAmount("request", req, optimizerFromPayload(directive))
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, "invalid optimizer: "+err.Error(), op)
			return
		}
		response.Optimization = &summary
	}

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBatch"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	payload, err := decodeJSON(r.Body)
	if err != nil {
		h.respondDecodeError(w, r, err, op)
		return
	}

	items, err := batchItems(payload)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	if len(items) > constants.MaxBatchSize {
		h.respondError(w, r, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("batch of %d applications exceeds limit of %d", len(items), constants.MaxBatchSize), op)
		return
	}

	names := make([]string, len(items))
	reqs := make([]prequal.Request, len(items))
	for i, item := range items {
		fields, ok := item.(map[string]interface{})
		if !ok {
			h.respondError(w, r, http.StatusBadRequest,
				fmt.Sprintf("invalid application at index %d: expected object", i), op)
			return
		}
		names[i] = coerce.String(fields["name"])
		reqs[i] = requestFromPayload(fields)
	}

	results, err := h.engine.ComputeBatch(r.Context(), reqs, h.batchWorkers)
	if err != nil {
		h.respondError(w, r, http.StatusServiceUnavailable, err.Error(), op)
		return
	}

	response := batchResponse{
		RequestID: requestID(r.Context()),
		Results:   make([]batchEntry, len(results)),
	}
	evaluations := make([]output.Evaluation, len(results))
	for i, result := range results {
		h.metrics.observeVerdict(result)
		evaluations[i] = output.Evaluation{Name: names[i], Result: result}
		response.Results[i] = batchEntry{
			Evaluation: evaluations[i],
			Warnings:   validation.ValidateRequest(applicationLabel(names[i], i), reqs[i]),
		}
		switch result.Status {
		case prequal.StatusApproved:
			response.Summary.Approved++
		case prequal.StatusConditional:
			response.Summary.Conditional++
		default:
			response.Summary.Declined++
		}
	}
	response.CSV = output.CsvString(evaluations)

	elapsed := time.Since(start)
	response.Duration = elapsed.String()

	h.requestLogger(r).Info("batch computed",
		zap.String("op", op),
		zap.Int("applications", len(results)),
		zap.Int("approved", response.Summary.Approved),
		zap.Int("conditional", response.Summary.Conditional),
		zap.Int("declined", response.Summary.Declined),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handlePolicy(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePolicy"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	policy := h.engine.Policy()
	if !strings.EqualFold(r.URL.Query().Get("format"), "yaml") {
		h.writeJSON(w, http.StatusOK, policy)
		return
	}

	data, err := yaml.Marshal(policy)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to encode policy: %v", err), op)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.requestLogger(r).Error("failed to write YAML response", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// withRequestID tags every request with an id, reusing the caller's
// X-Request-Id when it is a valid UUID.
func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (h *handler) instrument(endpoint string, fn http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		fn(rec, r)
		h.metrics.requests.WithLabelValues(endpoint, strconv.Itoa(rec.status)).Inc()
		h.metrics.duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (h *handler) requestLogger(r *http.Request) *zap.Logger {
	return h.logger.With(zap.String("requestId", requestID(r.Context())))
}

func decodeJSON(body io.Reader) (interface{}, error) {
	decoder := json.NewDecoder(body)
	decoder.UseNumber()

	var payload interface{}
	if err := decoder.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// batchItems accepts either a bare array or an object with an applications
// array.
func batchItems(payload interface{}) ([]interface{}, error) {
	switch v := payload.(type) {
	case []interface{}:
		return v, nil
	case map[string]interface{}:
		raw, ok := v["applications"]
		if !ok || raw == nil {
			return nil, nil
		}
		items, ok := raw.([]interface{})
		if !ok {
			return nil, errors.New("invalid applications payload: expected array")
		}
		return items, nil
	}
	return nil, errors.New("invalid batch payload: expected array or object")
}

func applicationLabel(name string, index int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("#%d", index+1)
}

// requestFromPayload builds a Request from loosely typed JSON. Numbers may
// arrive as strings with currency symbols or separators; anything that does
// not parse is 0.
func requestFromPayload(fields map[string]interface{}) prequal.Request {
	return prequal.Request{
		LoanAmount:              coerce.Float(fields["loanAmount"]),
		GrossAnnualIncome:       coerce.Float(fields["grossAnnualIncome"]),
		ExistingMonthlyDebts:    coerce.Float(fields["existingMonthlyDebts"]),
		EstimatedPropertyValue:  coerce.Float(fields["estimatedPropertyValue"]),
		CreditScore:             coerce.Int(fields["creditScore"]),
		EmploymentDurationYears: coerce.Float(fields["employmentDurationYears"]),
		LoanCategory:            prequal.LoanCategory(coerce.String(fields["loanCategory"])),
		CurrentMortgageBalance:  coerce.Float(fields["currentMortgageBalance"]),
		MonthlyMortgagePayment:  coerce.Float(fields["monthlyMortgagePayment"]),
		PropertyTaxMonthly:      coerce.Float(fields["propertyTaxMonthly"]),
		HeatingCostMonthly:      coerce.Float(fields["heatingCostMonthly"]),
		CondoFeesMonthly:        coerce.Float(fields["condoFeesMonthly"]),
	}
}

func optimizerFromPayload(fields map[string]interface{}) config.OptimizerConfig {
	cfg := config.OptimizerConfig{
		Target:        coerce.String(fields["target"]),
		Tolerance:     coerce.Float(fields["tolerance"]),
		MaxIterations: coerce.Int(fields["maxIterations"]),
	}
	if v, ok := fields["min"]; ok && v != nil {
		minVal := coerce.Float(v)
		cfg.Min = &minVal
	}
	if v, ok := fields["max"]; ok && v != nil {
		maxVal := coerce.Float(v)
		cfg.Max = &maxVal
	}
	return cfg
}

func (h *handler) respondDecodeError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondError(w, r, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
		return
	}
	h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.requestLogger(r).Error("prequal request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
