package handler_test

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"therapy-practice-admin/internal/invoice"
	"therapy-practice-admin/internal/model"
	"therapy-practice-admin/internal/store"
)

// fakeStore keeps rows in maps and mirrors the orderings and not-found
// behaviour of the Postgres store.
type fakeStore struct {
	mu       sync.Mutex
	next     int64
	users    map[string]model.User
	clients  map[int64]model.Client
	services map[int64]model.Service
	appts    map[int64]model.Appointment
	invoices map[int64]map[string]any
	sessions map[string]bool
	err      error // returned by every call when set
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]model.User{},
		clients:  map[int64]model.Client{},
		services: map[int64]model.Service{},
		appts:    map[int64]model.Appointment{},
		invoices: map[int64]map[string]any{},
		sessions: map[string]bool{},
	}
}

func (f *fakeStore) id() int64 {
	f.next++
	return f.next
}

func (f *fakeStore) Ping(ctx context.Context) error { return f.err }

func (f *fakeStore) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (f *fakeStore) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sessions[id] = true
	return nil
}

func (f *fakeStore) SessionActive(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[id], nil
}

func (f *fakeStore) RevokeSession(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[id]; ok {
		f.sessions[id] = false
	}
	return nil
}

func (f *fakeStore) ListClients(ctx context.Context) ([]model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Client, 0, len(f.clients))
	for _, c := range f.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (f *fakeStore) GetClient(ctx context.Context, id int64) (*model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (f *fakeStore) CreateClient(ctx context.Context, c *model.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	c.ID = f.id()
	f.clients[c.ID] = *c
	return nil
}

func (f *fakeStore) UpdateClient(ctx context.Context, c *model.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[c.ID]; !ok {
		return store.ErrNotFound
	}
	f.clients[c.ID] = *c
	return nil
}

func (f *fakeStore) DeleteClient(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.clients, id)
	return nil
}

func (f *fakeStore) ListServices(ctx context.Context) ([]model.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Service, 0, len(f.services))
	for _, s := range f.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) GetService(ctx context.Context, id int64) (*model.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.services[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &s, nil
}

func (f *fakeStore) CreateService(ctx context.Context, s *model.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = f.id()
	f.services[s.ID] = *s
	return nil
}

func (f *fakeStore) UpdateService(ctx context.Context, s *model.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.services[s.ID]; !ok {
		return store.ErrNotFound
	}
	f.services[s.ID] = *s
	return nil
}

func (f *fakeStore) DeleteService(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.services[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.services, id)
	return nil
}

func (f *fakeStore) ListAppointments(ctx context.Context) ([]model.AppointmentRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.AppointmentRow, 0, len(f.appts))
	for _, a := range f.appts {
		row := model.AppointmentRow{Appointment: a}
		if a.ClientID != nil {
			if c, ok := f.clients[*a.ClientID]; ok {
				row.FirstName, row.LastName = &c.FirstName, &c.LastName
			}
		}
		if a.ServiceID != nil {
			if s, ok := f.services[*a.ServiceID]; ok {
				row.ServiceName = &s.Name
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime > out[j].StartTime })
	return out, nil
}

func (f *fakeStore) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

func (f *fakeStore) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = f.id()
	f.appts[a.ID] = *a
	return nil
}

func (f *fakeStore) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appts[a.ID]; !ok {
		return store.ErrNotFound
	}
	f.appts[a.ID] = *a
	return nil
}

func (f *fakeStore) DeleteAppointment(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appts[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.appts, id)
	return nil
}

func (f *fakeStore) ListInvoices(ctx context.Context, fields invoice.Fields) ([]model.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Invoice, 0, len(f.invoices))
	for id, vals := range f.invoices {
		out = append(out, model.Invoice{ID: id, Values: vals})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeStore) GetInvoice(ctx context.Context, fields invoice.Fields, id int64) (*model.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	vals, ok := f.invoices[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &model.Invoice{ID: id, Values: vals}, nil
}

func rowOf(fields invoice.Fields, values []any) map[string]any {
	row := make(map[string]any, len(fields))
	for i, fd := range fields {
		row[fd.Name] = values[i]
	}
	return row
}

func (f *fakeStore) CreateInvoice(ctx context.Context, fields invoice.Fields, values []any) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id()
	f.invoices[id] = rowOf(fields, values)
	return id, nil
}

func (f *fakeStore) UpdateInvoice(ctx context.Context, fields invoice.Fields, id int64, values []any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.invoices[id]; !ok {
		return store.ErrNotFound
	}
	f.invoices[id] = rowOf(fields, values)
	return nil
}

func (f *fakeStore) DeleteInvoice(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.invoices[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.invoices, id)
	return nil
}

func (f *fakeStore) AppointmentsPerService(ctx context.Context) ([]model.ServiceCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	counts := map[int64]int{}
	for _, a := range f.appts {
		if a.ServiceID != nil {
			counts[*a.ServiceID]++
		}
	}
	out := make([]model.ServiceCount, 0, len(f.services))
	for id, s := range f.services {
		out = append(out, model.ServiceCount{Name: s.Name, Count: counts[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// capture records the last page rendered instead of producing markup.
type capture struct {
	name string
	data map[string]any
}

func (c *capture) Render(w http.ResponseWriter, status int, name string, data map[string]any) error {
	c.name = name
	c.data = data
	w.WriteHeader(status)
	return nil
}
