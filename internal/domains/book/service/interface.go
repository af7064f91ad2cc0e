package service

import (
	"context"

	"bookshare-backend/internal/domains/book/model"

	"github.com/google/uuid"
)

// ObjectStorage is the image-store contract consumed by the service.
// Satisfied by storage.MinIOStorage; swapped for a fake in tests.
type ObjectStorage interface {
	// UploadCover stores an image payload and returns its durable public
	// URL plus the object key it was stored under.
	UploadCover(ctx context.Context, data []byte, contentType string) (url, key string, err error)

	// Remove deletes an object by key. Failures propagate; callers decide
	// whether they abort the surrounding operation.
	Remove(ctx context.Context, key string) error

	// KeyFromURL derives the object key from a stored URL when it points
	// into our store. No network round-trip.
	KeyFromURL(rawURL string) (string, bool)
}

// ServiceInterface is the book lifecycle API.
type ServiceInterface interface {
	CreateBook(ctx context.Context, userID uuid.UUID, req model.CreateBookRequest) (*model.BookResponse, error)
	ListBooks(ctx context.Context, page, limit int) (*model.ListBooksResponse, error)
	ListMyBooks(ctx context.Context, userID uuid.UUID) ([]model.Book, error)
	UpdateBook(ctx context.Context, userID, id uuid.UUID, req model.UpdateBookRequest) (*model.BookResponse, error)
	DeleteBook(ctx context.Context, userID, id uuid.UUID) error
}
