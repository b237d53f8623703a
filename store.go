package main

import "context"

// BookFilter is a single catalog predicate. The /books handler applies the
// query params in a fixed order and each one replaces the whole filter, so a
// populated filter has at most one field set.
type BookFilter struct {
	Writer        string
	Category      string
	Search        string // case-insensitive substring on book_name
	AvailableOnly bool   // book_quantity > 0
}

// BookUpdate is the fixed field set replaced by PATCH /book/:id. Anything
// else in the request body is dropped.
type BookUpdate struct {
	Name     string `json:"book_name"`
	Author   string `json:"book_author"`
	Category string `json:"book_category"`
	Photo    string `json:"book_photo"`
	Rating   any    `json:"book_rating"`
}

// Store is the document-store adapter over the bookify collections. Lookups
// that can miss return (nil, nil) so handlers can distinguish absence from
// store failure.
type Store interface {
	// users
	ListUsers(ctx context.Context, excludeEmail string) ([]User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	InsertUser(ctx context.Context, u User) (string, error)
	DeleteUser(ctx context.Context, id string) (int64, error)
	CountUsers(ctx context.Context) (int64, error)

	// books
	ListBooks(ctx context.Context, f BookFilter, skip, limit int64) ([]Book, error)
	CountBooks(ctx context.Context) (int64, error)
	FindBook(ctx context.Context, id string) (*Book, error)
	InsertBook(ctx context.Context, b Book) (string, error)
	UpdateBook(ctx context.Context, id string, u BookUpdate) (int64, error)
	DeleteBook(ctx context.Context, id string) (int64, error)
	// AdjustBookQuantity applies $inc to the first book matching name.
	AdjustBookQuantity(ctx context.Context, name string, delta int) error

	// writers
	ListWriters(ctx context.Context, name string) ([]Writer, error)
	// UpsertWriter increments the writer's book count, keyed by keyName;
	// name and photo are set on every call (insert-or-update).
	UpsertWriter(ctx context.Context, keyName, name, photo string) error

	// borrow records
	FindBorrow(ctx context.Context, bookName, email string) (*BorrowRecord, error)
	CountBorrows(ctx context.Context, email string) (int64, error)
	CountAllBorrows(ctx context.Context) (int64, error)
	ListBorrows(ctx context.Context, email string) ([]BorrowRecord, error)
	ListBorrowsByEmails(ctx context.Context, emails []string) ([]BorrowRecord, error)
	InsertBorrow(ctx context.Context, rec BorrowRecord) (string, error)
	DeleteBorrow(ctx context.Context, id string) (int64, error)

	// reviews
	ListReviews(ctx context.Context, bookID string) ([]Review, error)
	InsertReview(ctx context.Context, rv Review) (string, error)

	// reference collections
	ListFeatured(ctx context.Context) ([]FeaturedBook, error)
	ListNews(ctx context.Context) ([]NewsItem, error)
}
