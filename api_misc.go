package main

import (
	"net/http"
)

// GET /
func (s *api) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"server_status": "Server Running"})
}

// GET /reviews?review=<bookId>
func (s *api) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.store.ListReviews(r.Context(), r.URL.Query().Get("review"))
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// POST /reviews
func (s *api) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var in Review
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}
	id, err := s.store.InsertReview(r.Context(), in)
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"acknowledged": true, "insertedId": id})
}

// GET /featured_books
func (s *api) handleFeaturedBooks(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListFeatured(r.Context())
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GET /news
func (s *api) handleNews(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListNews(r.Context())
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GET /writers?name=
func (s *api) handleListWriters(w http.ResponseWriter, r *http.Request) {
	writers, err := s.store.ListWriters(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, writers)
}

// GET /stats
func (s *api) handleStats(w http.ResponseWriter, r *http.Request) {
	books, err := s.store.CountBooks(r.Context())
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	users, err := s.store.CountUsers(r.Context())
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	borrows, err := s.store.CountAllBorrows(r.Context())
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bookCount":          books,
		"user":               users,
		"borrowedBooksCount": borrows,
	})
}
