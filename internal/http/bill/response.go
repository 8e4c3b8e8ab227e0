package bill

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

type itemResponse struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

type billResponse struct {
	ID              bill.ID        `json:"id"`
	CustomerName    string         `json:"customer_name"`
	CustomerAddress string         `json:"customer_address"`
	CustomerPhone   string         `json:"customer_phone"`
	BillDate        string         `json:"bill_date"`
	DueDate         string         `json:"due_date"`
	Items           []itemResponse `json:"items"`
	Subtotal        float64        `json:"subtotal"`
	Tax             float64        `json:"tax"`
	Discount        float64        `json:"discount"`
	Total           float64        `json:"total"`
	Notes           string         `json:"notes"`
}

func toResponse(b *bill.Bill) billResponse {
	items := make([]itemResponse, len(b.Items))
	for i, it := range b.Items {
		items[i] = itemResponse(it)
	}

	return billResponse{
		ID:              b.ID,
		CustomerName:    b.CustomerName,
		CustomerAddress: b.CustomerAddress,
		CustomerPhone:   b.CustomerPhone,
		BillDate:        b.BillDate,
		DueDate:         b.DueDate,
		Items:           items,
		Subtotal:        b.Subtotal,
		Tax:             b.Tax,
		Discount:        b.Discount,
		Total:           b.Total,
		Notes:           b.Notes,
	}
}

func toResponseList(bills []*bill.Bill) []billResponse {
	resp := make([]billResponse, len(bills))
	for i, b := range bills {
		resp[i] = toResponse(b)
	}

	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps bill errors onto status codes. Storage details are logged, not returned.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bill.ErrValidation), errors.Is(err, bill.ErrInvalidNumberFormat):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, bill.ErrNotFound):
		http.Error(w, "bill not found", http.StatusNotFound)
	default:
		slog.Error("bill request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
