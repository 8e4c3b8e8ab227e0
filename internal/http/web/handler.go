// Package web serves the server-rendered bill pages.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
	"github.com/MrJamesThe3rd/billbook/internal/export"
)

//go:embed templates/*.html
var templateFS embed.FS

type Handler struct {
	appName string
	bills   *bill.Service
	exports *export.Service
	flash   *Flasher
	pages   map[string]*template.Template
	now     func() time.Time
}

func NewHandler(appName string, bills *bill.Service, exports *export.Service, flash *Flasher) (*Handler, error) {
	pages := make(map[string]*template.Template)

	for _, name := range []string{"index.html", "bills.html", "bill.html", "form.html"} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}

		pages[name] = t
	}

	return &Handler{
		appName: appName,
		bills:   bills,
		exports: exports,
		flash:   flash,
		pages:   pages,
		now:     time.Now,
	}, nil
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.index)
	r.Get("/view_bills", h.list)
	r.Get("/view_bills/export", h.workbook)
	r.Get("/create_bill", h.createForm)
	r.Post("/create_bill", h.create)
	r.Get("/bill/{id:[0-9]+}", h.detail)
	r.Get("/bill/{id:[0-9]+}/pdf", h.pdf)
	r.Get("/edit_bill/{id:[0-9]+}", h.editForm)
	r.Post("/edit_bill/{id:[0-9]+}", h.update)
	r.Post("/delete_bill/{id:[0-9]+}", h.delete)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "index.html", &page{})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	bills, err := h.bills.List(r.Context())
	if err != nil {
		slog.Error("failed to list bills", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	h.render(w, r, "bills.html", &page{Bills: bills})
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBill(w, r)
	if !ok {
		return
	}

	h.render(w, r, "bill.html", &page{Bill: b})
}

func (h *Handler) createForm(w http.ResponseWriter, r *http.Request) {
	form := newFormView("New bill", "/create_bill", h.now().Format(time.DateOnly))
	h.render(w, r, "form.html", &page{Form: form})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(r)
	if err != nil {
		h.redirect(w, r, "/create_bill", FlashDanger, "Could not read the form.")
		return
	}

	if _, err := h.bills.Create(r.Context(), form); err != nil {
		h.fail(w, r, err, "/create_bill")
		return
	}

	h.redirect(w, r, "/view_bills", FlashSuccess, "Bill created successfully!")
}

func (h *Handler) editForm(w http.ResponseWriter, r *http.Request) {
	b, ok := h.loadBill(w, r)
	if !ok {
		return
	}

	h.render(w, r, "form.html", &page{Form: editFormView(b)})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := bill.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.redirect(w, r, "/view_bills", FlashDanger, "Bill not found!")
		return
	}

	formURL := fmt.Sprintf("/edit_bill/%d", id)

	form, err := parseForm(r)
	if err != nil {
		h.redirect(w, r, formURL, FlashDanger, "Could not read the form.")
		return
	}

	if _, err := h.bills.Update(r.Context(), id, form); err != nil {
		h.fail(w, r, err, formURL)
		return
	}

	h.redirect(w, r, fmt.Sprintf("/bill/%d", id), FlashSuccess, "Bill updated successfully!")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := bill.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.redirect(w, r, "/view_bills", FlashDanger, "Bill not found!")
		return
	}

	if err := h.bills.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "/view_bills")
		return
	}

	h.redirect(w, r, "/view_bills", FlashSuccess, "Bill deleted successfully!")
}

func (h *Handler) pdf(w http.ResponseWriter, r *http.Request) {
	id, err := bill.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.redirect(w, r, "/view_bills", FlashDanger, "Bill not found!")
		return
	}

	doc, err := h.exports.PDF(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "/view_bills")
		return
	}

	download(w, doc)
}

func (h *Handler) workbook(w http.ResponseWriter, r *http.Request) {
	doc, err := h.exports.Workbook(r.Context())
	if err != nil {
		h.fail(w, r, err, "/view_bills")
		return
	}

	download(w, doc)
}

// loadBill fetches the bill named in the URL. On failure it has already redirected to the list.
func (h *Handler) loadBill(w http.ResponseWriter, r *http.Request) (*bill.Bill, bool) {
	id, err := bill.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.redirect(w, r, "/view_bills", FlashDanger, "Bill not found!")
		return nil, false
	}

	b, err := h.bills.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "/view_bills")
		return nil, false
	}

	return b, true
}

// fail flashes err and redirects. Input errors go back to formURL; not-found and storage errors go
// to the bill list.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, formURL string) {
	switch {
	case errors.Is(err, bill.ErrValidation), errors.Is(err, bill.ErrInvalidNumberFormat):
		h.redirect(w, r, formURL, FlashDanger, "Could not save bill: "+err.Error())
	case errors.Is(err, bill.ErrNotFound):
		h.redirect(w, r, "/view_bills", FlashDanger, "Bill not found!")
	default:
		slog.Error("bill request failed", "path", r.URL.Path, "error", err)
		h.redirect(w, r, "/view_bills", FlashDanger, "Something went wrong, please try again.")
	}
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, url, kind, message string) {
	if err := h.flash.Set(w, kind, message); err != nil {
		slog.Error("failed to set flash", "error", err)
	}

	http.Redirect(w, r, url, http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, p *page) {
	p.AppName = h.appName
	p.Flash = h.flash.Pop(w, r)

	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", p); err != nil {
		slog.Error("failed to render page", "page", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write page", "page", name, "error", err)
	}
}

func download(w http.ResponseWriter, doc *export.Document) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))

	if _, err := w.Write(doc.Body); err != nil {
		slog.Error("failed to write download", "error", err)
	}
}

// parseForm reads the bill form using the field names of the HTML templates.
func parseForm(r *http.Request) (bill.Form, error) {
	if err := r.ParseForm(); err != nil {
		return bill.Form{}, err
	}

	return bill.Form{
		CustomerName:    r.PostFormValue("customer_name"),
		CustomerAddress: r.PostFormValue("customer_address"),
		CustomerPhone:   r.PostFormValue("customer_phone"),
		BillDate:        r.PostFormValue("bill_date"),
		DueDate:         r.PostFormValue("due_date"),
		Items: bill.ItemRows{
			Names:      r.PostForm["item_name[]"],
			Quantities: r.PostForm["item_quantity[]"],
			Prices:     r.PostForm["item_price[]"],
		},
		TaxRate:      r.PostFormValue("tax"),
		DiscountRate: r.PostFormValue("discount"),
		Notes:        r.PostFormValue("notes"),
	}, nil
}
