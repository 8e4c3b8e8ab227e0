package export

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
	"github.com/MrJamesThe3rd/billbook/internal/export"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes registers the download endpoints on a /bills router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/export", h.Workbook)
	r.Get("/{id}/pdf", h.PDF)
}

// PDF streams bill {id} as an attachment.
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := bill.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	doc, err := h.svc.PDF(r.Context(), id)
	if err != nil {
		if errors.Is(err, bill.ErrNotFound) {
			http.Error(w, "bill not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to render bill", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	write(w, doc)
}

// Workbook streams every bill as an XLSX attachment.
func (h *Handler) Workbook(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Workbook(r.Context())
	if err != nil {
		slog.Error("failed to render workbook", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	write(w, doc)
}

func write(w http.ResponseWriter, doc *export.Document) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))

	if _, err := w.Write(doc.Body); err != nil {
		slog.Error("failed to write download", "error", err)
	}
}
