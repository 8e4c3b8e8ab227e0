package customer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

// Handler serves customer contact details remembered from earlier bills.
type Handler struct {
	svc *bill.Service
}

func NewHandler(svc *bill.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/lookup", h.lookup)
}

type lookupResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "name query parameter is required", http.StatusBadRequest)
		return
	}

	c, err := h.svc.LookupCustomer(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, bill.ErrNotFound):
			http.Error(w, "customer not found", http.StatusNotFound)
		case errors.Is(err, bill.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			slog.Error("failed to look up customer", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(lookupResponse{
		Name:    c.Name,
		Address: c.Address,
		Phone:   c.Phone,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
