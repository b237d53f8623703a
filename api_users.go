package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type registerReq struct {
	User
	Password string `json:"password"`
}

// userWithBooks annotates a user with the names of their active borrows.
type userWithBooks struct {
	User
	BookNames []string `json:"bookNames"`
}

// GET /users?email=<exclude>
func (s *api) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		log.Error().Err(err).Msg("list users")
		errorJSON(w, http.StatusInternalServerError, "An error occurred while fetching data")
		return
	}

	emails := make([]string, 0, len(users))
	for _, u := range users {
		emails = append(emails, u.Email)
	}
	borrows, err := s.store.ListBorrowsByEmails(r.Context(), emails)
	if err != nil {
		log.Error().Err(err).Msg("list borrowed books")
		errorJSON(w, http.StatusInternalServerError, "An error occurred while fetching data")
		return
	}

	byEmail := make(map[string][]string)
	for _, rec := range borrows {
		byEmail[rec.UserEmail] = append(byEmail[rec.UserEmail], rec.BookName)
	}
	out := make([]userWithBooks, 0, len(users))
	for _, u := range users {
		names := byEmail[u.Email]
		if names == nil {
			names = []string{}
		}
		out = append(out, userWithBooks{User: u, BookNames: names})
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /user/{email}
func (s *api) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.FindUserByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// POST /users
func (s *api) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	existing, err := s.store.FindUserByEmail(r.Context(), in.Email)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if existing != nil {
		http.Error(w, "Forbidden Access!", http.StatusUnauthorized)
		return
	}

	// Never store a plaintext password; clients that register without one
	// (external auth) get a doc with no password_hash at all.
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			errorJSON(w, http.StatusInternalServerError, "hash error")
			return
		}
		in.User.PasswordHash = string(hash)
	}

	id, err := s.store.InsertUser(r.Context(), in.User)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"acknowledged": true, "insertedId": id})
}

// GET /user_role (token required)
func (s *api) handleUserRole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"access": claimsFrom(r).Role == "librarian"})
}

// DELETE /user/{id}
// Librarian-gated only when PROTECT_DELETE is set; the legacy surface leaves
// this open.
func (s *api) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if s.cfg.ProtectDelete {
		if c := claimsFrom(r); c == nil || c.Role != "librarian" {
			writeJSON(w, http.StatusOK, map[string]any{"access": false})
			return
		}
	}
	deleted, err := s.store.DeleteUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"acknowledged": true, "deletedCount": deleted})
}
