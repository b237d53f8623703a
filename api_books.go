package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// GET /books?writer=&category=&search=&available_books=&page=&size=
func (s *api) handleListBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	size, _ := strconv.ParseInt(q.Get("size"), 10, 64)
	if size < 0 {
		size = 0
	}

	filter := BookFilter{
		Writer:        q.Get("writer"),
		Category:      q.Get("category"),
		Search:        q.Get("search"),
		AvailableOnly: q.Get("available_books") != "",
	}

	// count is the whole catalog, not the filtered set; the client's
	// pagination math depends on it.
	count, err := s.store.CountBooks(r.Context())
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	books, err := s.store.ListBooks(r.Context(), filter, (page-1)*size, size)
	if err != nil {
		log.Error().Err(err).Msg("list books")
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"books": books, "count": count})
}

// GET /book/{id}
func (s *api) handleGetBook(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.FindBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// GET /available_books
func (s *api) handleAvailableBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.store.ListBooks(r.Context(), BookFilter{AvailableOnly: true}, 0, 0)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, books)
}

// POST /books (librarian only)
func (s *api) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	if claimsFrom(r).Role != "librarian" {
		writeJSON(w, http.StatusOK, map[string]any{"access": false})
		return
	}
	var in Book
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	// Two independent writes: the writer aggregate first, then the book.
	// Not atomic; a failed book insert leaves the writer count bumped.
	if err := s.store.UpsertWriter(r.Context(), in.AuthorName, in.Author, in.AuthorPhoto); err != nil {
		log.Error().Err(err).Msg("upsert writer")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "An error occurred while adding the book.",
		})
		return
	}
	id, err := s.store.InsertBook(r.Context(), in)
	if err != nil {
		log.Error().Err(err).Msg("insert book")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "An error occurred while adding the book.",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access": true,
		"res":    map[string]any{"acknowledged": true, "insertedId": id},
	})
}

// PATCH /book/{id} (librarian only)
func (s *api) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	if claimsFrom(r).Role != "librarian" {
		writeJSON(w, http.StatusOK, map[string]any{"access": false})
		return
	}
	var in BookUpdate
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	matched, err := s.store.UpdateBook(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access": true,
		"res":    map[string]any{"acknowledged": true, "matchedCount": matched},
	})
}

// DELETE /book/{id}
// Librarian-gated only when PROTECT_DELETE is set; the legacy surface leaves
// this open.
func (s *api) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	if s.cfg.ProtectDelete {
		if c := claimsFrom(r); c == nil || c.Role != "librarian" {
			writeJSON(w, http.StatusOK, map[string]any{"access": false})
			return
		}
	}
	deleted, err := s.store.DeleteBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"acknowledged": true, "deletedCount": deleted})
}
