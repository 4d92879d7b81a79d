// Package api serves the bill splitter as a plain JSON REST API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/metrics"
	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/pkg/response"
)

const transport = "rest"

// Handler handles HTTP requests for bill operations
type Handler struct {
	metrics *metrics.Metrics
}

// NewHandler creates a new bill handler. m may be nil to disable metrics.
func NewHandler(m *metrics.Metrics) *Handler {
	return &Handler{metrics: m}
}

// Routes returns the router for bill endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/split", h.Split)
	r.Get("/date", h.FormatDate)

	return r
}

// Split handles POST /split
func (h *Handler) Split(w http.ResponseWriter, r *http.Request) {
	var input models.BillInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.metrics.ObserveFailure(transport, metrics.OutcomeInvalid)
		response.BadRequest(w, "Invalid request body")
		return
	}

	split, err := calculator.Calculate(input)
	if err != nil {
		if errors.Is(err, calculator.ErrNoPersons) {
			h.metrics.ObserveFailure(transport, metrics.OutcomeInvalid)
			response.Error(w, http.StatusBadRequest, "NO_PERSONS", err.Error())
			return
		}
		h.metrics.ObserveFailure(transport, metrics.OutcomeError)
		slog.Error("Split failed", "error", err)
		response.InternalError(w, "Failed to split bill")
		return
	}

	slog.Debug("Bill split",
		"location", split.Output.Location,
		"total", split.Output.TotalAmount,
		"persons", len(split.Output.Items),
		"reconciliation", split.Reconciliation,
		"difference", split.Difference,
		"adjustment", split.Adjustment,
		"finalDifference", split.FinalDifference,
	)
	h.metrics.ObserveSplit(transport, split.Reconciliation.String(), len(split.Output.Items))
	response.JSON(w, http.StatusOK, split.Output)
}

// FormatDate handles GET /date?date=YYYY-MM-DD. Like the RPC, it never
// rejects a date; unreadable parts come back as NaN.
func (h *Handler) FormatDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	response.JSON(w, http.StatusOK, map[string]string{
		"date":      date,
		"formatted": calculator.FormatDate(date),
	})
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
