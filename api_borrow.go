package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const borrowLimit = 3

// GET /borrowed_books/{email} (token required, email must match claims)
func (s *api) handleListBorrowed(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if claimsFrom(r).Email != email {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Forbidden"})
		return
	}
	recs, err := s.store.ListBorrows(r.Context(), email)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// POST /borrowed_book/{name}/{email}
//
// The duplicate/limit checks and the decrement+insert below are separate
// store calls with no transaction; two concurrent borrows for the same user
// can interleave between them. Known limitation of the legacy contract.
func (s *api) handleBorrowBook(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	email := chi.URLParam(r, "email")

	var rec BorrowRecord
	if err := decodeJSON(r, &rec); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	if rec.BookName == "" {
		rec.BookName = name
	}
	if rec.UserEmail == "" {
		rec.UserEmail = email
	}

	existing, err := s.store.FindBorrow(r.Context(), name, email)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusOK, map[string]any{"message": "Already Borrowed This Book!"})
		return
	}

	held, err := s.store.CountBorrows(r.Context(), email)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if held >= borrowLimit {
		writeJSON(w, http.StatusOK, map[string]any{"message": "Only 3 Book Can Borrowed!"})
		return
	}

	if err := s.store.AdjustBookQuantity(r.Context(), name, -1); err != nil {
		log.Error().Err(err).Msg("decrement quantity")
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	if _, err := s.store.InsertBorrow(r.Context(), rec); err != nil {
		log.Error().Err(err).Msg("insert borrow record")
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Successfully Added Book!"})
}

// DELETE /borrowed_book/{id}/{name}
// No existence check: restoring stock and deleting the record are
// unconditional, and deleting a missing id reports deletedCount 0.
func (s *api) handleReturnBook(w http.ResponseWriter, r *http.Request) {
	if err := s.store.AdjustBookQuantity(r.Context(), chi.URLParam(r, "name"), +1); err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	deleted, err := s.store.DeleteBorrow(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"acknowledged": true, "deletedCount": deleted})
}
