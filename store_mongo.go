package main

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoStore implements Store over the bookify database.
type mongoStore struct {
	users    *mongo.Collection
	books    *mongo.Collection
	writers  *mongo.Collection
	featured *mongo.Collection
	reviews  *mongo.Collection
	borrows  *mongo.Collection
	news     *mongo.Collection
}

func newMongoStore(client *mongo.Client) *mongoStore {
	db := client.Database(dbName)
	return &mongoStore{
		users:    db.Collection("users"),
		books:    db.Collection("books"),
		writers:  db.Collection("writers"),
		featured: db.Collection("featured"),
		reviews:  db.Collection("reviews"),
		borrows:  db.Collection("borrowed_books"),
		news:     db.Collection("news"),
	}
}

func oid(id string) (primitive.ObjectID, error) {
	v, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("bad object id %q: %w", id, err)
	}
	return v, nil
}

func insertedID(res *mongo.InsertOneResult) string {
	if v, ok := res.InsertedID.(primitive.ObjectID); ok {
		return v.Hex()
	}
	return fmt.Sprint(res.InsertedID)
}

// ----- users -----

func (s *mongoStore) ListUsers(ctx context.Context, excludeEmail string) ([]User, error) {
	filter := bson.M{}
	if excludeEmail != "" {
		filter = bson.M{"email": bson.M{"$ne": excludeEmail}}
	}
	cur, err := s.users.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []User{}
	return out, cur.All(ctx, &out)
}

func (s *mongoStore) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *mongoStore) InsertUser(ctx context.Context, u User) (string, error) {
	res, err := s.users.InsertOne(ctx, u)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

func (s *mongoStore) DeleteUser(ctx context.Context, id string) (int64, error) {
	v, err := oid(id)
	if err != nil {
		return 0, err
	}
	res, err := s.users.DeleteOne(ctx, bson.M{"_id": v})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *mongoStore) CountUsers(ctx context.Context) (int64, error) {
	return s.users.CountDocuments(ctx, bson.M{})
}

// ----- books -----

func bookFilterQuery(f BookFilter) bson.M {
	switch {
	case f.AvailableOnly:
		return bson.M{"book_quantity": bson.M{"$gt": 0}}
	case f.Search != "":
		return bson.M{"book_name": bson.M{"$regex": f.Search, "$options": "i"}}
	case f.Category != "":
		return bson.M{"book_category": f.Category}
	case f.Writer != "":
		return bson.M{"book_author": f.Writer}
	default:
		return bson.M{}
	}
}

func (s *mongoStore) ListBooks(ctx context.Context, f BookFilter, skip, limit int64) ([]Book, error) {
	opts := options.Find().SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.books.Find(ctx, bookFilterQuery(f), opts)
	if err != nil {
		return nil, err
	}
	out := []Book{}
	return out, cur.All(ctx, &out)
}

func (s *mongoStore) CountBooks(ctx context.Context) (int64, error) {
	return s.books.CountDocuments(ctx, bson.M{})
}

func (s *mongoStore) FindBook(ctx context.Context, id string) (*Book, error) {
	v, err := oid(id)
	if err != nil {
		return nil, err
	}
	var b Book
	err = s.books.FindOne(ctx, bson.M{"_id": v}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *mongoStore) InsertBook(ctx context.Context, b Book) (string, error) {
	res, err := s.books.InsertOne(ctx, b)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

func (s *mongoStore) UpdateBook(ctx context.Context, id string, u BookUpdate) (int64, error) {
	v, err := oid(id)
	if err != nil {
		return 0, err
	}
	set := bson.M{
		"book_name":     u.Name,
		"book_author":   u.Author,
		"book_category": u.Category,
		"book_photo":    u.Photo,
		"book_rating":   u.Rating,
	}
	res, err := s.books.UpdateOne(ctx, bson.M{"_id": v}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *mongoStore) DeleteBook(ctx context.Context, id string) (int64, error) {
	v, err := oid(id)
	if err != nil {
		return 0, err
	}
	res, err := s.books.DeleteOne(ctx, bson.M{"_id": v})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *mongoStore) AdjustBookQuantity(ctx context.Context, name string, delta int) error {
	err := s.books.FindOneAndUpdate(ctx,
		bson.M{"book_name": name},
		bson.M{"$inc": bson.M{"book_quantity": delta}},
	).Err()
	// Missing book is a silent no-op, matching the legacy contract.
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return err
}

// ----- writers -----

func (s *mongoStore) ListWriters(ctx context.Context, name string) ([]Writer, error) {
	filter := bson.M{}
	if name != "" {
		filter = bson.M{"writer_name": name}
	}
	cur, err := s.writers.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []Writer{}
	return out, cur.All(ctx, &out)
}

func (s *mongoStore) UpsertWriter(ctx context.Context, keyName, name, photo string) error {
	err := s.writers.FindOneAndUpdate(ctx,
		bson.M{"writer_name": keyName},
		bson.M{
			"$set": bson.M{"writer_name": name, "writer_photo": photo},
			"$inc": bson.M{"writer_book_count": 1},
		},
		options.FindOneAndUpdate().SetUpsert(true),
	).Err()
	// ErrNoDocuments here just means the upsert inserted a fresh writer.
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return err
}

// ----- borrow records -----

func (s *mongoStore) FindBorrow(ctx context.Context, bookName, email string) (*BorrowRecord, error) {
	var rec BorrowRecord
	err := s.borrows.FindOne(ctx, bson.M{"book_name": bookName, "user_email": email}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *mongoStore) CountBorrows(ctx context.Context, email string) (int64, error) {
	return s.borrows.CountDocuments(ctx, bson.M{"user_email": email})
}

func (s *mongoStore) CountAllBorrows(ctx context.Context) (int64, error) {
	return s.borrows.CountDocuments(ctx, bson.M{})
}

func (s *mongoStore) ListBorrows(ctx context.Context, email string) ([]BorrowRecord, error) {
	cur, err := s.borrows.Find(ctx, bson.M{"user_email": email})
	if err != nil {
		return nil, err
	}
	out := []BorrowRecord{}
	return out, cur.All(ctx, &out)
}

func (s *mongoStore) ListBorrowsByEmails(ctx context.Context, emails []string) ([]BorrowRecord, error) {
	cur, err := s.borrows.Find(ctx, bson.M{"user_email": bson.M{"$in": emails}})
	if err != nil {
		return nil, err
	}
	out := []BorrowRecord{}
	return out, cur.All(ctx, &out)
}

func (s *mongoStore) InsertBorrow(ctx context.Context, rec BorrowRecord) (string, error) {
	res, err := s.borrows.InsertOne(ctx, rec)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

func (s *mongoStore) DeleteBorrow(ctx context.Context, id string) (int64, error) {
	v, err := oid(id)
	if err != nil {
		return 0, err
	}
	res, err := s.borrows.DeleteOne(ctx, bson.M{"_id": v})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ----- reviews -----

func (s *mongoStore) ListReviews(ctx context.Context, bookID string) ([]Review, error) {
	filter := bson.M{}
	if bookID != "" {
		filter = bson.M{"bookId": bookID}
	}
	cur, err := s.reviews.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []Review{}
	return out, cur.All(ctx, &out)
}

func (s *mongoStore) InsertReview(ctx context.Context, rv Review) (string, error) {
	res, err := s.reviews.InsertOne(ctx, rv)
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

// ----- reference collections -----

func (s *mongoStore) ListFeatured(ctx context.Context) ([]FeaturedBook, error) {
	cur, err := s.featured.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	out := []FeaturedBook{}
	return out, cur.All(ctx, &out)
}

func (s *mongoStore) ListNews(ctx context.Context) ([]NewsItem, error) {
	cur, err := s.news.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	out := []NewsItem{}
	return out, cur.All(ctx, &out)
}
