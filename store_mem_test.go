package main

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory Store mirroring the mongo adapter's semantics,
// close enough for exercising the handlers without a database.
type memStore struct {
	mu       sync.Mutex
	users    []User
	books    []Book
	writers  []Writer
	featured []FeaturedBook
	reviews  []Review
	borrows  []BorrowRecord
	news     []NewsItem
}

func newMemStore() *memStore { return &memStore{} }

func (s *memStore) ListUsers(ctx context.Context, excludeEmail string) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []User{}
	for _, u := range s.users {
		if excludeEmail != "" && u.Email == excludeEmail {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *memStore) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			v := u
			return &v, nil
		}
	}
	return nil, nil
}

func (s *memStore) InsertUser(ctx context.Context, u User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users = append(s.users, u)
	return u.ID.Hex(), nil
}

func (s *memStore) DeleteUser(ctx context.Context, id string) (int64, error) {
	v, err := oid(id)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == v {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *memStore) CountUsers(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}

func matchBook(b Book, f BookFilter) bool {
	switch {
	case f.AvailableOnly:
		return b.Quantity > 0
	case f.Search != "":
		return strings.Contains(strings.ToLower(b.Name), strings.ToLower(f.Search))
	case f.Category != "":
		return b.Category == f.Category
	case f.Writer != "":
		return b.Author == f.Writer
	default:
		return true
	}
}

func (s *memStore) ListBooks(ctx context.Context, f BookFilter, skip, limit int64) ([]Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := []Book{}
	for _, b := range s.books {
		if matchBook(b, f) {
			matched = append(matched, b)
		}
	}
	if skip >= int64(len(matched)) {
		return []Book{}, nil
	}
	matched = matched[skip:]
	if limit > 0 && limit < int64(len(matched)) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *memStore) CountBooks(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.books)), nil
}

func (s *memStore) FindBook(ctx context.Context, id string) (*Book, error) {
	v, err := oid(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.ID == v {
			c := b
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memStore) InsertBook(ctx context.Context, b Book) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	s.books = append(s.books, b)
	return b.ID.Hex(), nil
}

func (s *memStore) UpdateBook(ctx context.Context, id string, u BookUpdate) (int64, error) {
	v, err := oid(id)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].ID == v {
			s.books[i].Name = u.Name
			s.books[i].Author = u.Author
			s.books[i].Category = u.Category
			s.books[i].Photo = u.Photo
			s.books[i].Rating = u.Rating
			return 1, nil
		}
	}
	return 0, nil
}

func (s *memStore) DeleteBook(ctx context.Context, id string) (int64, error) {
	v, err := oid(id)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.books {
		if b.ID == v {
			s.books = append(s.books[:i], s.books[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *memStore) AdjustBookQuantity(ctx context.Context, name string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].Name == name {
			s.books[i].Quantity += delta
			return nil
		}
	}
	return nil // missing book is a silent no-op, like the mongo adapter
}

func (s *memStore) ListWriters(ctx context.Context, name string) ([]Writer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Writer{}
	for _, wr := range s.writers {
		if name != "" && wr.Name != name {
			continue
		}
		out = append(out, wr)
	}
	return out, nil
}

func (s *memStore) UpsertWriter(ctx context.Context, keyName, name, photo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.writers {
		if s.writers[i].Name == keyName {
			s.writers[i].Name = name
			s.writers[i].Photo = photo
			s.writers[i].BookCount++
			return nil
		}
	}
	s.writers = append(s.writers, Writer{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Photo:     photo,
		BookCount: 1,
	})
	return nil
}

func (s *memStore) FindBorrow(ctx context.Context, bookName, email string) (*BorrowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.borrows {
		if rec.BookName == bookName && rec.UserEmail == email {
			c := rec
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memStore) CountBorrows(ctx context.Context, email string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, rec := range s.borrows {
		if rec.UserEmail == email {
			n++
		}
	}
	return n, nil
}

func (s *memStore) CountAllBorrows(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.borrows)), nil
}

func (s *memStore) ListBorrows(ctx context.Context, email string) ([]BorrowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []BorrowRecord{}
	for _, rec := range s.borrows {
		if rec.UserEmail == email {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *memStore) ListBorrowsByEmails(ctx context.Context, emails []string) ([]BorrowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := make(map[string]bool, len(emails))
	for _, e := range emails {
		set[e] = true
	}
	out := []BorrowRecord{}
	for _, rec := range s.borrows {
		if set[rec.UserEmail] {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *memStore) InsertBorrow(ctx context.Context, rec BorrowRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	s.borrows = append(s.borrows, rec)
	return rec.ID.Hex(), nil
}

func (s *memStore) DeleteBorrow(ctx context.Context, id string) (int64, error) {
	v, err := oid(id)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.borrows {
		if rec.ID == v {
			s.borrows = append(s.borrows[:i], s.borrows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *memStore) ListReviews(ctx context.Context, bookID string) ([]Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Review{}
	for _, rv := range s.reviews {
		if bookID != "" && rv.BookID != bookID {
			continue
		}
		out = append(out, rv)
	}
	return out, nil
}

func (s *memStore) InsertReview(ctx context.Context, rv Review) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rv.ID.IsZero() {
		rv.ID = primitive.NewObjectID()
	}
	s.reviews = append(s.reviews, rv)
	return rv.ID.Hex(), nil
}

func (s *memStore) ListFeatured(ctx context.Context) ([]FeaturedBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FeaturedBook{}, s.featured...), nil
}

func (s *memStore) ListNews(ctx context.Context) ([]NewsItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]NewsItem{}, s.news...), nil
}
