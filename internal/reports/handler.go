package reports

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dafater-app/dafater/internal/platform/httpx"
	"github.com/dafater-app/dafater/internal/shared"
)

// Handler wires the reporting endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers reporting routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports/profit-loss/{companyID}", h.profitLoss)
	r.Get("/reports/cash-flow/{companyID}", h.cashFlow)
}

func (h *Handler) profitLoss(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(chi.URLParam(r, "companyID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid company id")
		return
	}
	start := r.URL.Query().Get("startDate")
	end := r.URL.Query().Get("endDate")

	report, err := h.service.ProfitLoss(r.Context(), companyID, shared.UserIDFromContext(r.Context()), start, end)
	if err != nil {
		h.logger.Error("profit loss report", slog.Any("error", err), slog.Int64("company_id", companyID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) cashFlow(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(chi.URLParam(r, "companyID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid company id")
		return
	}
	start := r.URL.Query().Get("startDate")
	end := r.URL.Query().Get("endDate")

	report, err := h.service.CashFlow(r.Context(), companyID, shared.UserIDFromContext(r.Context()), start, end)
	if err != nil {
		h.logger.Error("cash flow report", slog.Any("error", err), slog.Int64("company_id", companyID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}
