package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/iwvelando/brewery-forecast/internal/config"
	"github.com/iwvelando/brewery-forecast/internal/forecast"
	"github.com/iwvelando/brewery-forecast/pkg/constants"
	"github.com/iwvelando/brewery-forecast/pkg/output"
	"github.com/iwvelando/brewery-forecast/pkg/projection"
	"github.com/iwvelando/brewery-forecast/pkg/quantities"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// RequestIDHeader carries the request ID on every response. A client-supplied
// value is echoed back.
const RequestIDHeader = "X-Request-ID"

type contextKey int

const requestIDKey contextKey = iota

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the projection API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(h.handleNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.handleMethodNotAllowed)

	// Single parameter set from the form
	router.HandleFunc("/api/projection", h.handleProjection).Methods(http.MethodPost)

	// Scenario file upload
	router.HandleFunc("/api/forecast", h.handleForecast).Methods(http.MethodPost)

	// Scenario file serialization for downloads
	router.HandleFunc("/api/export", h.handleConfigExport).Methods(http.MethodPost)

	router.HandleFunc("/api/defaults", h.handleDefaults).Methods(http.MethodGet)
	router.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)

	return h.withRequestID(router)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))

		h.logger.Info("request completed",
			zap.String("op", "server.withRequestID"),
			zap.String("requestId", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// RequestID returns the ID assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (h *handler) requestLogger(r *http.Request) *zap.Logger {
	return h.logger.With(zap.String("requestId", RequestID(r.Context())))
}

type projectionResponse struct {
	ID        string                   `json:"id"`
	Rows      []output.RowRecord       `json:"rows"`
	Summaries []projection.Summary     `json:"summaries"`
	Series    []projection.SeriesPoint `json:"series"`
	CSV       string                   `json:"csv"`
	Duration  string                   `json:"duration"`
}

type forecastResponse struct {
	ID        string             `json:"id"`
	Scenarios []scenarioResponse `json:"scenarios"`
	CSV       string             `json:"csv"`
	Warnings  []string           `json:"warnings,omitempty"`
	Duration  string             `json:"duration"`
}

type scenarioResponse struct {
	Name      string                   `json:"name"`
	Rows      []output.RowRecord       `json:"rows"`
	Summaries []projection.Summary     `json:"summaries"`
	Series    []projection.SeriesPoint `json:"series"`
}

type defaultsResponse struct {
	InitialInvestment   float64  `json:"initialInvestment"`
	VariableCostPerUnit float64  `json:"variableCostPerUnit"`
	FixedMonthlyCost    float64  `json:"fixedMonthlyCost"`
	SalePricePerUnit    float64  `json:"salePricePerUnit"`
	AlcoholPercent      float64  `json:"alcoholPercent"`
	Months              int      `json:"months"`
	Quantities          string   `json:"quantities"`
	Tax                 taxBody  `json:"tax"`
	TaxModes            []string `json:"taxModes"`
}

type taxBody struct {
	Mode string  `json:"mode"`
	Rate float64 `json:"rate"`
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjection"
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var req config.Parameters
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode parameters: %v", err), op)
		return
	}

	params, err := config.Resolve(config.Parameters{}, req)
	if err != nil {
		h.respondError(w, r, statusFor(err), err.Error(), op)
		return
	}

	result, err := forecast.Project(h.requestLogger(r), "projection", params)
	if err != nil {
		h.respondError(w, r, statusFor(err), err.Error(), op)
		return
	}

	elapsed := time.Since(start)
	response := projectionResponse{
		ID:        RequestID(r.Context()),
		Rows:      output.NewRowRecords(result.Rows),
		Summaries: result.Summaries,
		Series:    projection.Series(result.Rows),
		CSV:       output.CsvString([]forecast.Forecast{result}),
		Duration:  elapsed.String(),
	}

	h.requestLogger(r).Info("projection computed",
		zap.String("op", op),
		zap.Ints("quantities", params.Quantities),
		zap.Int("rows", len(response.Rows)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleForecast"
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.requestLogger(r).Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	warnings := cfg.ValidateConfiguration()

	results, err := forecast.GetForecast(h.requestLogger(r), *cfg)
	if err != nil {
		h.respondError(w, r, statusFor(err), fmt.Sprintf("failed to compute forecast: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	response := forecastResponse{
		ID:        RequestID(r.Context()),
		Scenarios: buildScenarios(results),
		CSV:       output.CsvString(results),
		Warnings:  warnings,
		Duration:  elapsed.String(),
	}

	h.requestLogger(r).Info("forecast computed",
		zap.String("op", op),
		zap.Int("scenarios", len(response.Scenarios)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var cfg config.Configuration
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode configuration: %v", err), op)
		return
	}

	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleDefaults(w http.ResponseWriter, _ *http.Request) {
	d := config.Defaults()
	h.writeJSON(w, http.StatusOK, defaultsResponse{
		InitialInvestment:   *d.InitialInvestment,
		VariableCostPerUnit: *d.VariableCostPerUnit,
		FixedMonthlyCost:    *d.FixedMonthlyCost,
		SalePricePerUnit:    *d.SalePricePerUnit,
		AlcoholPercent:      *d.AlcoholPercent,
		Months:              *d.Months,
		Quantities:          *d.Quantities,
		Tax:                 taxBody{Mode: d.Tax.Mode, Rate: d.Tax.Rate},
		TaxModes:            []string{constants.TaxModeFixed, constants.TaxModeTiered},
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.respondError(w, r, http.StatusNotFound,
		fmt.Sprintf("no route for %s", r.URL.Path), "server.handleNotFound")
}

func (h *handler) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.respondError(w, r, http.StatusMethodNotAllowed,
		fmt.Sprintf("method %s not allowed for %s", r.Method, r.URL.Path), "server.handleMethodNotAllowed")
}

// statusFor maps engine and parsing failures to client errors.
func statusFor(err error) int {
	if errors.Is(err, projection.ErrInvalidInput) || errors.Is(err, quantities.ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func buildScenarios(results []forecast.Forecast) []scenarioResponse {
	scenarios := make([]scenarioResponse, 0, len(results))
	for _, result := range results {
		record := output.NewScenarioRecord(result)
		scenarios = append(scenarios, scenarioResponse{
			Name:      record.Name,
			Rows:      record.Rows,
			Summaries: record.Summaries,
			Series:    projection.Series(result.Rows),
		})
	}
	return scenarios
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.requestLogger(r).Error("request failed",
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
