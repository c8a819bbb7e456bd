package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"therapy-practice-admin/internal/auth"
	"therapy-practice-admin/internal/invoice"
	"therapy-practice-admin/internal/model"
)

func ptr[T any](v T) *T { return &v }

func render(t *testing.T, name string, data map[string]any) string {
	t.Helper()
	v, err := New()
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, v.Render(rec, http.StatusOK, name, data))
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	return rec.Body.String()
}

func TestEveryPageRenders(t *testing.T) {
	fields, err := invoice.Default()
	require.NoError(t, err)
	sess := auth.Session{UserID: 1, Username: "ann", Role: "admin"}
	client := model.Client{ID: 1, FirstName: "Ann", LastName: "Lee"}
	appt := model.Appointment{ID: 4, ClientID: ptr(int64(1)), ServiceID: ptr(int64(2)), StartTime: "2024-05-01 09:00"}
	inv := model.Invoice{ID: 9, Values: map[string]any{
		"client_id":      int64(1),
		"appointment_id": nil,
		"amount":         80.5,
		"issued_date":    "2024-05-01 09:00",
		"due_date":       nil,
		"paid":           1,
		"notes":          nil,
	}}

	services := []model.Service{{ID: 2, Name: "Therapy"}}
	pages := map[string]map[string]any{
		"login": {
			"Error":    "Invalid username or password.",
			"Username": "ann",
		},
		"dashboard": {
			"Session": sess,
			"Labels":  []string{"Intake", "Therapy"},
			"Values":  []int{0, 2},
		},
		"clients_list": {
			"Session": sess,
			"Clients": []model.Client{client},
		},
		"client_form": {
			"Session": sess,
			"Client":  &client,
		},
		"services_list": {
			"Session":  sess,
			"Services": services,
		},
		"service_form": {
			"Session": sess,
			"Service": (*model.Service)(nil),
		},
		"appointments_list": {
			"Session": sess,
			"Appointments": []model.AppointmentRow{
				{Appointment: appt, FirstName: ptr("Ann"), LastName: ptr("Lee"), ServiceName: ptr("Therapy")},
			},
		},
		"appointment_form": {
			"Session":     sess,
			"Appointment": &appt,
			"Clients":     []model.Client{client},
			"Services":    services,
		},
		"invoices_list": {
			"Session":  sess,
			"Fields":   fields,
			"Invoices": []model.Invoice{inv},
		},
		"invoice_form": {
			"Session":      sess,
			"Fields":       fields,
			"Invoice":      &inv,
			"Clients":      []model.Client{client},
			"Appointments": []model.AppointmentRow{{Appointment: appt}},
		},
	}
	for name, data := range pages {
		t.Run(name, func(t *testing.T) {
			out := render(t, name, data)
			assert.NotEmpty(t, out)
		})
	}
}

func TestFormsPrefill(t *testing.T) {
	appt := model.Appointment{ID: 4, ClientID: ptr(int64(1)), StartTime: "2024-05-01 09:00", EndTime: ptr("2024-05-01 10:00")}
	out := render(t, "appointment_form", map[string]any{
		"Appointment": &appt,
		"Clients":     []model.Client{{ID: 1, FirstName: "Ann", LastName: "Lee"}, {ID: 2, FirstName: "Bo", LastName: "Ng"}},
	})
	assert.Contains(t, out, `value="2024-05-01T09:00"`)
	assert.Contains(t, out, `value="2024-05-01T10:00"`)
	assert.Contains(t, out, `<option value="1" selected>`)
	assert.NotContains(t, out, `<option value="2" selected>`)
}

func TestLoginShowsNotice(t *testing.T) {
	out := render(t, "login", map[string]any{"Error": "Invalid username or password.", "Username": "ann"})
	assert.Contains(t, out, "Invalid username or password.")
	assert.NotContains(t, out, "Log out", "no nav without a session")
}

func TestUnknownPage(t *testing.T) {
	v, err := New()
	require.NoError(t, err)
	err = v.Render(httptest.NewRecorder(), http.StatusOK, "nope", nil)
	assert.Error(t, err)
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "", display(nil))
	assert.Equal(t, "", display((*string)(nil)))
	assert.Equal(t, "x", display(ptr("x")))
	assert.Equal(t, "80.50", display(80.5))
	assert.Equal(t, "7", display(int64(7)))
	assert.True(t, strings.HasPrefix(inputDateTime("2024-01-05 10:30"), "2024-01-05T"))
	assert.True(t, sameID(ptr(int64(3)), 3))
	assert.False(t, sameID((*int64)(nil), 3))
}
