package main

import "go.mongodb.org/mongo-driver/bson/primitive"

// Document shapes for the "bookify" collections. The store enforces no
// schema; these carry the fields the handlers actually read and write.

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	Photo        string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role         string             `bson:"role,omitempty" json:"role,omitempty"` // "librarian" | member
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
}

type Book struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"book_name" json:"book_name"`
	Author   string             `bson:"book_author" json:"book_author"`
	Category string             `bson:"book_category,omitempty" json:"book_category,omitempty"`
	Photo    string             `bson:"book_photo,omitempty" json:"book_photo,omitempty"`
	Rating   any                `bson:"book_rating,omitempty" json:"book_rating,omitempty"`
	Quantity int                `bson:"book_quantity" json:"book_quantity"`
	// author_name/author_photo key the writer aggregate on creation and are
	// persisted with the book, as the legacy service stored the whole body.
	AuthorName  string `bson:"author_name,omitempty" json:"author_name,omitempty"`
	AuthorPhoto string `bson:"author_photo,omitempty" json:"author_photo,omitempty"`
}

type Writer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"writer_name" json:"writer_name"`
	Photo     string             `bson:"writer_photo,omitempty" json:"writer_photo,omitempty"`
	BookCount int                `bson:"writer_book_count" json:"writer_book_count"`
}

type BorrowRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	BookID       string             `bson:"book_id,omitempty" json:"book_id,omitempty"`
	BookName     string             `bson:"book_name" json:"book_name"`
	BookPhoto    string             `bson:"book_photo,omitempty" json:"book_photo,omitempty"`
	UserEmail    string             `bson:"user_email" json:"user_email"`
	UserName     string             `bson:"user_name,omitempty" json:"user_name,omitempty"`
	BorrowedDate string             `bson:"borrowed_date,omitempty" json:"borrowed_date,omitempty"`
	ReturnDate   string             `bson:"return_date,omitempty" json:"return_date,omitempty"`
}

type Review struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	BookID string             `bson:"bookId" json:"bookId"`
	Name   string             `bson:"name,omitempty" json:"name,omitempty"`
	Photo  string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Review string             `bson:"review,omitempty" json:"review,omitempty"`
	Rating any                `bson:"rating,omitempty" json:"rating,omitempty"`
}

// FeaturedBook and NewsItem are read-only reference documents; they pass
// through to the client untouched.
type FeaturedBook map[string]any

type NewsItem map[string]any
