package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"therapy-practice-admin/internal/auth"
	"therapy-practice-admin/internal/metrics"
	"therapy-practice-admin/internal/middleware"
	"therapy-practice-admin/internal/store"
)

const badLogin = "Invalid username or password."

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "login", map[string]any{"Error": "", "Username": ""})
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")

	u, err := h.store.UserByUsername(r.Context(), username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.fail(w, r, "User", err)
		return
	}
	// unknown users still pay for a bcrypt comparison so timing does not
	// reveal which usernames exist
	hash := auth.DummyHash()
	if u != nil {
		hash = u.PasswordHash
	}
	ok := h.check(hash, password)
	// same notice whether the user or the password was wrong
	if u == nil || !ok {
		metrics.RecordLogin(false)
		h.log.WithField("username", username).Warn("login rejected")
		h.render(w, r, http.StatusOK, "login", map[string]any{"Error": badLogin, "Username": username})
		return
	}

	sess := auth.Session{ID: uuid.NewString(), UserID: u.ID, Username: u.Username, Role: u.Role}
	if err := h.store.CreateSession(r.Context(), sess.ID, u.ID, time.Now().Add(h.ttl)); err != nil {
		h.fail(w, r, "User", err)
		return
	}
	tok, err := auth.MakeToken(sess, h.secret, h.ttl)
	if err != nil {
		h.fail(w, r, "User", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(h.ttl / time.Second),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	metrics.RecordLogin(true)
	h.log.WithField("username", u.Username).Info("login")
	redirect(w, r, "/")
}

// Logout ends the server-side session named by the cookie, if any, and
// clears the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(middleware.SessionCookie); err == nil && c.Value != "" {
		if s, err := auth.ParseToken(c.Value, h.secret); err == nil {
			if err := h.store.RevokeSession(r.Context(), s.ID); err != nil {
				h.fail(w, r, "Session", err)
				return
			}
			h.log.WithField("username", s.Username).Info("logout")
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	redirect(w, r, "/login")
}
