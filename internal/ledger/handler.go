package ledger

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dafater-app/dafater/internal/platform/httpx"
	"github.com/dafater-app/dafater/internal/shared"
)

// Handler wires the ledger endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers ledger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/transactions/{companyID}", h.listTransactions)
	r.Post("/transactions", h.createTransaction)
	r.Put("/transactions/{id}", h.updateTransaction)
	r.Delete("/transactions/{id}", h.deleteTransaction)

	r.Get("/clients/{companyID}", h.listClients)
	r.Post("/clients", h.createClient)

	r.Get("/categories/{companyID}", h.listCategories)
	r.Post("/categories", h.createCategory)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(chi.URLParam(r, "companyID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid company id")
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	listing, err := h.service.ListTransactions(r.Context(), companyID, shared.UserIDFromContext(r.Context()), page, pageSize)
	if err != nil {
		h.logger.Error("list transactions", slog.Any("error", err), slog.Int64("company_id", companyID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, listing)
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	created, err := h.service.CreateTransaction(r.Context(), shared.UserIDFromContext(r.Context()), req)
	if err != nil {
		h.logger.Error("create transaction", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) updateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid transaction id")
		return
	}
	var req TransactionRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	updated, err := h.service.UpdateTransaction(r.Context(), id, shared.UserIDFromContext(r.Context()), req)
	if err != nil {
		h.logger.Error("update transaction", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid transaction id")
		return
	}
	if err := h.service.DeleteTransaction(r.Context(), id, shared.UserIDFromContext(r.Context())); err != nil {
		h.logger.Error("delete transaction", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(chi.URLParam(r, "companyID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid company id")
		return
	}
	clients, err := h.service.ListClients(r.Context(), companyID, shared.UserIDFromContext(r.Context()))
	if err != nil {
		h.logger.Error("list clients", slog.Any("error", err), slog.Int64("company_id", companyID))
		httpx.RespondError(w, err)
		return
	}
	if clients == nil {
		clients = []Client{}
	}
	httpx.JSON(w, http.StatusOK, clients)
}

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	created, err := h.service.CreateClient(r.Context(), shared.UserIDFromContext(r.Context()), req)
	if err != nil {
		h.logger.Error("create client", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(chi.URLParam(r, "companyID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid company id")
		return
	}
	categories, err := h.service.ListCategories(r.Context(), companyID, shared.UserIDFromContext(r.Context()))
	if err != nil {
		h.logger.Error("list categories", slog.Any("error", err), slog.Int64("company_id", companyID))
		httpx.RespondError(w, err)
		return
	}
	if categories == nil {
		categories = []Category{}
	}
	httpx.JSON(w, http.StatusOK, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !h.decodeValid(w, r, &req) {
		return
	}
	created, err := h.service.CreateCategory(r.Context(), shared.UserIDFromContext(r.Context()), req)
	if err != nil {
		h.logger.Error("create category", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) decodeValid(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return false
	}
	if err := h.validate.Struct(target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return false
	}
	return true
}
