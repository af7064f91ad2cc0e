package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Book is the stored entity. Owner and creation time are set once at
// creation and never touched by updates.
type Book struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Caption   string    `json:"caption"`
	Image     *string   `json:"image,omitempty"`
	Rating    int       `json:"rating"`
	UserID    uuid.UUID `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Owner is the projection of the owning user exposed on listings.
// Display fields only, never credentials.
type Owner struct {
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"`
}

// BookWithOwner annotates a book with its owner projection for the
// paginated listing.
type BookWithOwner struct {
	Book
	Owner Owner `json:"user"`
}

// CreateBookRequest - POST /books body. Image carries the raw payload
// (base64 data URI), not a URL.
type CreateBookRequest struct {
	Title   string `json:"title"`
	Caption string `json:"caption"`
	Image   string `json:"image,omitempty"`
	Rating  int    `json:"rating"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(0, 255).Error("title must be at most 255 characters")),
		validation.Field(&r.Caption, validation.Length(0, 2000).Error("caption must be at most 2000 characters")),
		validation.Field(&r.Rating, validation.Min(0).Error("rating must be between 0 and 5"),
			validation.Max(5).Error("rating must be between 0 and 5")),
	)
}

// UpdateBookRequest - PUT /books/:id body. All fields optional; owner and
// id are never patchable.
type UpdateBookRequest struct {
	Title   *string `json:"title,omitempty"`
	Caption *string `json:"caption,omitempty"`
	Image   *string `json:"image,omitempty"`
	Rating  *int    `json:"rating,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty.Error("title must not be empty"),
			validation.Length(0, 255).Error("title must be at most 255 characters")),
		validation.Field(&r.Caption, validation.NilOrNotEmpty.Error("caption must not be empty"),
			validation.Length(0, 2000).Error("caption must be at most 2000 characters")),
		validation.Field(&r.Rating, validation.Min(0).Error("rating must be between 0 and 5"),
			validation.Max(5).Error("rating must be between 0 and 5")),
	)
}

// BookResponse is the projection echoed back on create/update.
// Owner and createdAt are deliberately not included.
type BookResponse struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Caption string    `json:"caption"`
	Image   *string   `json:"image,omitempty"`
	Rating  int       `json:"rating"`
}

func (b *Book) ToResponse() BookResponse {
	return BookResponse{
		ID:      b.ID,
		Title:   b.Title,
		Caption: b.Caption,
		Image:   b.Image,
		Rating:  b.Rating,
	}
}

// ListBooksResponse - GET /books body.
type ListBooksResponse struct {
	Books       []BookWithOwner `json:"books"`
	CurrentPage int             `json:"currentPage"`
	TotalPages  int             `json:"totalPages"`
	TotalBooks  int             `json:"totalBooks"`
}

// ListCacheKeyPrefix namespaces the cached listing pages so they can be
// invalidated together.
const ListCacheKeyPrefix = "books:list"
