package handler

import (
	"net/http"

	"therapy-practice-admin/internal/model"
)

func (h *Handler) InvoiceList(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.store.ListInvoices(r.Context(), h.fields)
	if err != nil {
		h.fail(w, r, "Invoice", err)
		return
	}
	h.render(w, r, http.StatusOK, "invoices_list", map[string]any{
		"Fields":   h.fields,
		"Invoices": invoices,
	})
}

func (h *Handler) invoiceValues(r *http.Request) ([]any, error) {
	if err := r.ParseForm(); err != nil {
		return nil, &FieldError{Field: "form", Msg: err.Error()}
	}
	return h.fields.Values(r.PostForm)
}

// invoicePage renders the form with the client and appointment pick lists.
func (h *Handler) invoicePage(w http.ResponseWriter, r *http.Request, inv *model.Invoice) {
	clients, err := h.store.ListClients(r.Context())
	if err != nil {
		h.fail(w, r, "Client", err)
		return
	}
	appts, err := h.store.ListAppointments(r.Context())
	if err != nil {
		h.fail(w, r, "Appointment", err)
		return
	}
	h.render(w, r, http.StatusOK, "invoice_form", map[string]any{
		"Fields":       h.fields,
		"Invoice":      inv,
		"Clients":      clients,
		"Appointments": appts,
	})
}

func (h *Handler) InvoiceCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.invoicePage(w, r, nil)
		return
	}
	vals, err := h.invoiceValues(r)
	if err != nil {
		h.fail(w, r, "Invoice", err)
		return
	}
	if _, err := h.store.CreateInvoice(r.Context(), h.fields, vals); err != nil {
		h.fail(w, r, "Invoice", err)
		return
	}
	redirect(w, r, "/invoices")
}

func (h *Handler) InvoiceEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "Invoice", err)
		return
	}
	inv, err := h.store.GetInvoice(r.Context(), h.fields, id)
	if err != nil {
		h.fail(w, r, "Invoice", err)
		return
	}
	if r.Method != http.MethodPost {
		h.invoicePage(w, r, inv)
		return
	}
	vals, err := h.invoiceValues(r)
	if err != nil {
		h.fail(w, r, "Invoice", err)
		return
	}
	if err := h.store.UpdateInvoice(r.Context(), h.fields, id, vals); err != nil {
		h.fail(w, r, "Invoice", err)
		return
	}
	redirect(w, r, "/invoices")
}

func (h *Handler) InvoiceDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "Invoice", err)
		return
	}
	if err := h.store.DeleteInvoice(r.Context(), id); err != nil {
		h.fail(w, r, "Invoice", err)
		return
	}
	redirect(w, r, "/invoices")
}
