package handler

import (
	"net/http"

	"therapy-practice-admin/internal/model"
)

func (h *Handler) ClientList(w http.ResponseWriter, r *http.Request) {
	clients, err := h.store.ListClients(r.Context())
	if err != nil {
		h.fail(w, r, "Client", err)
		return
	}
	h.render(w, r, http.StatusOK, "clients_list", map[string]any{"Clients": clients})
}

// clientForm reads every client field; all must be submitted.
func clientForm(r *http.Request, c *model.Client) error {
	f, err := parseForm(r)
	if err != nil {
		return err
	}
	c.FirstName = f.required("first_name")
	c.LastName = f.required("last_name")
	c.DateOfBirth = f.required("date_of_birth")
	c.Phone = f.required("phone")
	c.Email = f.required("email")
	c.Address = f.required("address")
	c.EmergencyContactName = f.required("emergency_contact_name")
	c.EmergencyContactPhone = f.required("emergency_contact_phone")
	return f.err
}

func (h *Handler) ClientCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "client_form", map[string]any{"Client": (*model.Client)(nil)})
		return
	}
	c := &model.Client{}
	if err := clientForm(r, c); err != nil {
		h.fail(w, r, "Client", err)
		return
	}
	if err := h.store.CreateClient(r.Context(), c); err != nil {
		h.fail(w, r, "Client", err)
		return
	}
	redirect(w, r, "/clients")
}

func (h *Handler) ClientEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "Client", err)
		return
	}
	c, err := h.store.GetClient(r.Context(), id)
	if err != nil {
		h.fail(w, r, "Client", err)
		return
	}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "client_form", map[string]any{"Client": c})
		return
	}
	if err := clientForm(r, c); err != nil {
		h.fail(w, r, "Client", err)
		return
	}
	if err := h.store.UpdateClient(r.Context(), c); err != nil {
		h.fail(w, r, "Client", err)
		return
	}
	redirect(w, r, "/clients")
}

func (h *Handler) ClientDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "Client", err)
		return
	}
	if err := h.store.DeleteClient(r.Context(), id); err != nil {
		h.fail(w, r, "Client", err)
		return
	}
	redirect(w, r, "/clients")
}
