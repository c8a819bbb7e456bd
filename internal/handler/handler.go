package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"therapy-practice-admin/internal/auth"
	"therapy-practice-admin/internal/invoice"
	"therapy-practice-admin/internal/metrics"
	"therapy-practice-admin/internal/middleware"
	"therapy-practice-admin/internal/model"
	"therapy-practice-admin/internal/store"
)

// Store is the persistence the controllers need. *store.Store satisfies it.
type Store interface {
	Ping(ctx context.Context) error

	UserByUsername(ctx context.Context, username string) (*model.User, error)

	CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time) error
	SessionActive(ctx context.Context, id string) (bool, error)
	RevokeSession(ctx context.Context, id string) error

	ListClients(ctx context.Context) ([]model.Client, error)
	GetClient(ctx context.Context, id int64) (*model.Client, error)
	CreateClient(ctx context.Context, c *model.Client) error
	UpdateClient(ctx context.Context, c *model.Client) error
	DeleteClient(ctx context.Context, id int64) error

	ListServices(ctx context.Context) ([]model.Service, error)
	GetService(ctx context.Context, id int64) (*model.Service, error)
	CreateService(ctx context.Context, s *model.Service) error
	UpdateService(ctx context.Context, s *model.Service) error
	DeleteService(ctx context.Context, id int64) error

	ListAppointments(ctx context.Context) ([]model.AppointmentRow, error)
	GetAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	UpdateAppointment(ctx context.Context, a *model.Appointment) error
	DeleteAppointment(ctx context.Context, id int64) error

	ListInvoices(ctx context.Context, fields invoice.Fields) ([]model.Invoice, error)
	GetInvoice(ctx context.Context, fields invoice.Fields, id int64) (*model.Invoice, error)
	CreateInvoice(ctx context.Context, fields invoice.Fields, values []any) (int64, error)
	UpdateInvoice(ctx context.Context, fields invoice.Fields, id int64, values []any) error
	DeleteInvoice(ctx context.Context, id int64) error

	AppointmentsPerService(ctx context.Context) ([]model.ServiceCount, error)
}

// Renderer turns a page name and its named values into markup.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data map[string]any) error
}

type Config struct {
	Secret       string
	SessionTTL   time.Duration
	SecureCookie bool
	Fields       invoice.Fields
	Log          logrus.FieldLogger

	// CheckPassword compares a stored hash with a submitted password.
	// Defaults to auth.CheckPassword.
	CheckPassword func(hash, password string) bool
}

type Handler struct {
	store  Store
	view   Renderer
	fields invoice.Fields
	secret string
	ttl    time.Duration
	secure bool
	log    logrus.FieldLogger
	check  func(hash, password string) bool
}

func New(st Store, v Renderer, cfg Config) *Handler {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	check := cfg.CheckPassword
	if check == nil {
		check = auth.CheckPassword
	}
	return &Handler{
		store:  st,
		view:   v,
		fields: cfg.Fields,
		secret: cfg.Secret,
		ttl:    ttl,
		secure: cfg.SecureCookie,
		log:    log,
		check:  check,
	}
}

// Routes wires every page. Everything except login, logout, health and
// metrics sits behind the session gate.
func (h *Handler) Routes(rl *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(h.log))
	r.Use(chimw.Recoverer)
	r.Use(metrics.InstrumentHandler)

	r.Handle("/metrics", metrics.Handler())
	r.Get("/healthz", h.Healthz)

	r.Group(func(r chi.Router) {
		if rl != nil {
			r.Use(middleware.RateLimit(rl))
		}
		getPost(r, "/login", h.Login)
	})
	r.Get("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.secret, h.store))

		r.Get("/", h.Dashboard)

		r.Get("/clients", h.ClientList)
		getPost(r, "/clients/new", h.ClientCreate)
		getPost(r, "/clients/{id}/edit", h.ClientEdit)
		r.Post("/clients/{id}/delete", h.ClientDelete)

		r.Get("/services", h.ServiceList)
		getPost(r, "/services/new", h.ServiceCreate)
		getPost(r, "/services/{id}/edit", h.ServiceEdit)
		r.Post("/services/{id}/delete", h.ServiceDelete)

		r.Get("/appointments", h.AppointmentList)
		getPost(r, "/appointments/new", h.AppointmentCreate)
		getPost(r, "/appointments/{id}/edit", h.AppointmentEdit)
		r.Post("/appointments/{id}/delete", h.AppointmentDelete)

		r.Get("/invoices", h.InvoiceList)
		getPost(r, "/invoices/new", h.InvoiceCreate)
		getPost(r, "/invoices/{id}/edit", h.InvoiceEdit)
		r.Post("/invoices/{id}/delete", h.InvoiceDelete)
	})
	return r
}

func getPost(r chi.Router, pattern string, fn http.HandlerFunc) {
	r.Get(pattern, fn)
	r.Post(pattern, fn)
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.log.WithError(err).Warn("health check failed")
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("ok"))
}

// render adds the caller's session to the page data.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if s, ok := middleware.SessionFrom(r.Context()); ok {
		data["Session"] = s
	}
	if err := h.view.Render(w, status, name, data); err != nil {
		h.log.WithError(err).WithField("page", name).Error("render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// fail answers a request whose operation returned err. entity names the
// record kind for the not-found message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, entity string, err error) {
	var fe *FieldError
	var ife *invoice.FieldError
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, entity+" not found", http.StatusNotFound)
	case errors.As(err, &fe), errors.As(err, &ife):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// pathID reads the {id} route parameter. A non-numeric id is reported as
// not found, since no such route exists.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, store.ErrNotFound
	}
	return id, nil
}
