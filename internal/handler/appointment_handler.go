package handler

import (
	"net/http"

	"therapy-practice-admin/internal/model"
)

func (h *Handler) AppointmentList(w http.ResponseWriter, r *http.Request) {
	appts, err := h.store.ListAppointments(r.Context())
	if err != nil {
		h.fail(w, r, "Appointment", err)
		return
	}
	h.render(w, r, http.StatusOK, "appointments_list", map[string]any{"Appointments": appts})
}

func appointmentForm(r *http.Request, a *model.Appointment) error {
	f, err := parseForm(r)
	if err != nil {
		return err
	}
	clientID := f.id("client_id")
	serviceID := f.id("service_id")
	start := f.dateTime("start_time", true)
	a.EndTime = f.dateTime("end_time", false)
	a.Notes = f.optional("notes")
	if f.err != nil {
		return f.err
	}
	a.ClientID = &clientID
	a.ServiceID = &serviceID
	a.StartTime = *start
	return nil
}

// appointmentPage renders the form with the client and service pick lists.
func (h *Handler) appointmentPage(w http.ResponseWriter, r *http.Request, a *model.Appointment) {
	clients, err := h.store.ListClients(r.Context())
	if err != nil {
		h.fail(w, r, "Client", err)
		return
	}
	services, err := h.store.ListServices(r.Context())
	if err != nil {
		h.fail(w, r, "Service", err)
		return
	}
	h.render(w, r, http.StatusOK, "appointment_form", map[string]any{
		"Appointment": a,
		"Clients":     clients,
		"Services":    services,
	})
}

func (h *Handler) AppointmentCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.appointmentPage(w, r, nil)
		return
	}
	a := &model.Appointment{}
	if err := appointmentForm(r, a); err != nil {
		h.fail(w, r, "Appointment", err)
		return
	}
	if err := h.store.CreateAppointment(r.Context(), a); err != nil {
		h.fail(w, r, "Appointment", err)
		return
	}
	redirect(w, r, "/appointments")
}

func (h *Handler) AppointmentEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "Appointment", err)
		return
	}
	a, err := h.store.GetAppointment(r.Context(), id)
	if err != nil {
		h.fail(w, r, "Appointment", err)
		return
	}
	if r.Method != http.MethodPost {
		h.appointmentPage(w, r, a)
		return
	}
	if err := appointmentForm(r, a); err != nil {
		h.fail(w, r, "Appointment", err)
		return
	}
	if err := h.store.UpdateAppointment(r.Context(), a); err != nil {
		h.fail(w, r, "Appointment", err)
		return
	}
	redirect(w, r, "/appointments")
}

func (h *Handler) AppointmentDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, "Appointment", err)
		return
	}
	if err := h.store.DeleteAppointment(r.Context(), id); err != nil {
		h.fail(w, r, "Appointment", err)
		return
	}
	redirect(w, r, "/appointments")
}
