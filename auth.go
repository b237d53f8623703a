package main

import (
	"context"
	"net/http"
	"time"
)

type ctxKey int

const claimsKey ctxKey = 0

// api carries the wiring every handler needs; built once in newRouter.
type api struct {
	cfg   Config
	store Store
	auth  *tokenAuth
}

func claimsFrom(r *http.Request) *Claims {
	c, _ := r.Context().Value(claimsKey).(*Claims)
	return c
}

// --------- Helpers (cookie) ---------

func (s *api) sameSite() http.SameSite {
	if s.cfg.production() {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}

func (s *api) setAuthCookie(w http.ResponseWriter, token string) {
	c := &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: s.sameSite(),
		Secure:   s.cfg.production(),
		Expires:  time.Now().Add(tokenTTL),
	}
	http.SetCookie(w, c)
}

func (s *api) clearAuthCookie(w http.ResponseWriter) {
	c := &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: s.sameSite(),
		Secure:   s.cfg.production(),
		MaxAge:   -1,
	}
	http.SetCookie(w, c)
}

// --------- Middleware ---------

// verifyToken gates a route on a valid session cookie and stashes the decoded
// claims in the request context.
func (s *api) verifyToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(s.cfg.CookieName)
		if err != nil || c.Value == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Forbidden Access!"})
			return
		}
		claims, err := s.auth.parse(c.Value)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Forbidden Access!"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// --------- Handlers ---------

type sessionReq struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// POST /jwt
func (s *api) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var in sessionReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	tok, err := s.auth.sign(in.Email, in.Role)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "token error")
		return
	}
	s.setAuthCookie(w, tok)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// POST /logout
func (s *api) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
