package handler

import "net/http"

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.AppointmentsPerService(r.Context())
	if err != nil {
		h.fail(w, r, "Dashboard", err)
		return
	}
	labels := make([]string, 0, len(counts))
	values := make([]int, 0, len(counts))
	for _, c := range counts {
		labels = append(labels, c.Name)
		values = append(values, c.Count)
	}
	h.render(w, r, http.StatusOK, "dashboard", map[string]any{"Labels": labels, "Values": values})
}
