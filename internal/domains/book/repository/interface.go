package repository

import (
	"context"

	"bookshare-backend/internal/domains/book/model"

	"github.com/google/uuid"
)

// Interface is the narrow store contract the lifecycle service consumes.
// No multi-statement transaction is offered: each call is independent, and
// the title uniqueness race is closed by the UNIQUE constraint on
// books.title (Insert reports it as model.ErrDuplicateTitle).
type Interface interface {
	// TitleExists reports whether any book carries the exact title.
	TitleExists(ctx context.Context, title string) (bool, error)

	// TitleExistsExcept is TitleExists ignoring the given record, used when
	// an update changes the title.
	TitleExistsExcept(ctx context.Context, title string, exceptID uuid.UUID) (bool, error)

	// FindByID returns model.ErrBookNotFound when no record matches.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// FindByOwner returns the owner's books, newest first, unpaginated.
	FindByOwner(ctx context.Context, userID uuid.UUID) ([]model.Book, error)

	// FindPage returns a page of books sorted by created_at descending,
	// each joined with its owner projection.
	FindPage(ctx context.Context, offset, limit int) ([]model.BookWithOwner, error)

	// Count returns the total number of books.
	Count(ctx context.Context) (int, error)

	// Insert persists a new book, filling ID and CreatedAt on the passed
	// record. A title collision surfaces as model.ErrDuplicateTitle.
	Insert(ctx context.Context, book *model.Book) error

	// Update rewrites the mutable columns of an existing record.
	Update(ctx context.Context, book *model.Book) error

	// Delete removes the record permanently. No tombstone is kept.
	Delete(ctx context.Context, id uuid.UUID) error
}
