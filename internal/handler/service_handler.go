package handler

import (
	"net/http"

	"therapy-practice-admin/internal/model"
)

func (h *Handler) ServiceList(w http.ResponseWriter, r *http.Request) {
	services, err := h.store.ListServices(r.Context())
	if err != nil {
		h.fail(w, r, "Service", err)
		return
	}
	h.render(w, r, http.StatusOK, "services_list", map[string]any{"Services": services})
}

func serviceForm(r *http.Request, s *model.Service) error {
	f, err := parseForm(r)
	if err != nil {
		return err
	}
	s.Name = f.required("service_name")
	return f.err
}

func (h *Handler) ServiceCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "service_form", map[string]any{"Service": (*model.Service)(nil)})
		return
	}
	s := &model.Service{}
	if err := serviceForm(r, s); err != nil {
		h.fail(w, r, "Service", err)
		return
	}
	if err := h.store.CreateService(r.Context(), s); err != nil {
		h.fail(w, r, "Service", err)
		return
	}
	redirect(w, r, "/services")
}

func (h *Handler) ServiceEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "Service", err)
		return
	}
	s, err := h.store.GetService(r.Context(), id)
	if err != nil {
		h.fail(w, r, "Service", err)
		return
	}
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "service_form", map[string]any{"Service": s})
		return
	}
	if err := serviceForm(r, s); err != nil {
		h.fail(w, r, "Service", err)
		return
	}
	if err := h.store.UpdateService(r.Context(), s); err != nil {
		h.fail(w, r, "Service", err)
		return
	}
	redirect(w, r, "/services")
}

func (h *Handler) ServiceDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "Service", err)
		return
	}
	if err := h.store.DeleteService(r.Context(), id); err != nil {
		h.fail(w, r, "Service", err)
		return
	}
	redirect(w, r, "/services")
}
