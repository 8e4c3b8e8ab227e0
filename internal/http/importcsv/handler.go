package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
	"github.com/MrJamesThe3rd/billbook/internal/importer"
)

const maxUploadSize = 10 << 20

// Handler creates a bill whose items come from an uploaded CSV or XLSX file.
type Handler struct {
	svc *bill.Service
}

func NewHandler(svc *bill.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importBill)
}

type importResponse struct {
	ID       bill.ID `json:"id"`
	Items    int     `json:"items"`
	Subtotal float64 `json:"subtotal"`
	Total    float64 `json:"total"`
}

func (h *Handler) importBill(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := importer.Parse(importer.FormatFromFilename(header.Filename), file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Create(r.Context(), bill.Form{
		CustomerName:    r.FormValue("customer_name"),
		CustomerAddress: r.FormValue("customer_address"),
		CustomerPhone:   r.FormValue("customer_phone"),
		BillDate:        r.FormValue("bill_date"),
		DueDate:         r.FormValue("due_date"),
		Items:           rows,
		TaxRate:         r.FormValue("tax_rate"),
		DiscountRate:    r.FormValue("discount_rate"),
		Notes:           r.FormValue("notes"),
	})
	if err != nil {
		switch {
		case errors.Is(err, bill.ErrValidation), errors.Is(err, bill.ErrInvalidNumberFormat):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			slog.Error("failed to import bill", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importResponse{
		ID:       b.ID,
		Items:    len(b.Items),
		Subtotal: b.Subtotal,
		Total:    b.Total,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
