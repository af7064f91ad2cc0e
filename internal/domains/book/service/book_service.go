package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookshare-backend/internal/domains/book/model"
	"bookshare-backend/internal/domains/book/repository"
	"bookshare-backend/pkg/cache"
	"bookshare-backend/pkg/logger"

	"github.com/google/uuid"
)

const listCacheTTL = 5 * time.Minute

// BookService orchestrates the book lifecycle: ownership and uniqueness
// invariants, and coordination between the record store and the image store.
type BookService struct {
	repo    repository.Interface
	storage ObjectStorage
	cache   cache.Cache
}

// NewService - constructor with DI
func NewService(repo repository.Interface, storage ObjectStorage, c cache.Cache) ServiceInterface {
	return &BookService{
		repo:    repo,
		storage: storage,
		cache:   c,
	}
}

// CreateBook validates the input, uploads the cover if one was supplied,
// checks title uniqueness and persists the record stamped with the caller
// as owner. If persistence fails after a successful upload, the uploaded
// object is destroyed again so it does not leak.
func (s *BookService) CreateBook(ctx context.Context, userID uuid.UUID, req model.CreateBookRequest) (*model.BookResponse, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Caption) == "" {
		return nil, model.ErrMissingFields
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var imageURL *string
	var imageKey string
	if req.Image != "" {
		data, contentType, err := model.DecodeImagePayload(req.Image)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrImageUpload, err)
		}

		url, key, err := s.storage.UploadCover(ctx, data, contentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrImageUpload, err)
		}
		imageURL, imageKey = &url, key
	}

	// Compensating destroy: the upload happened before the record exists,
	// so any failure from here on must take the object with it.
	cleanup := func() {
		if imageKey == "" {
			return
		}
		if err := s.storage.Remove(context.WithoutCancel(ctx), imageKey); err != nil {
			logger.Error("failed to remove orphaned cover "+imageKey, err)
		}
	}

	// Fast path only; the UNIQUE constraint on books.title is the real
	// guard against two concurrent creates with the same title.
	exists, err := s.repo.TitleExists(ctx, req.Title)
	if err != nil {
		cleanup()
		return nil, err
	}
	if exists {
		cleanup()
		return nil, model.ErrDuplicateTitle
	}

	book := &model.Book{
		Title:   req.Title,
		Caption: req.Caption,
		Image:   imageURL,
		Rating:  req.Rating,
		UserID:  userID,
	}

	if err := s.repo.Insert(ctx, book); err != nil {
		cleanup()
		return nil, err
	}

	s.invalidateListCache(ctx)

	resp := book.ToResponse()
	return &resp, nil
}

// ListBooks returns one page of books, newest first, each annotated with
// its owner projection. Pages are cached briefly and invalidated whenever
// any book changes.
func (s *BookService) ListBooks(ctx context.Context, page, limit int) (*model.ListBooksResponse, error) {
	page, limit = model.NormalizePageLimit(page, limit)

	cacheKey := fmt.Sprintf("%s:%d:%d", model.ListCacheKeyPrefix, page, limit)

	var cached model.ListBooksResponse
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warn("list cache read failed", err)
	}
	if found {
		return &cached, nil
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	offset, totalPages := model.Paginate(page, limit, total)

	books, err := s.repo.FindPage(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &model.ListBooksResponse{
		Books:       books,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalBooks:  total,
	}

	if err := s.cache.Set(ctx, cacheKey, resp, listCacheTTL); err != nil {
		logger.Warn("list cache write failed", err)
	}

	return resp, nil
}

// ListMyBooks returns every book owned by the caller, newest first.
func (s *BookService) ListMyBooks(ctx context.Context, userID uuid.UUID) ([]model.Book, error) {
	return s.repo.FindByOwner(ctx, userID)
}

// UpdateBook applies a partial patch to an existing book. Only the owner
// may update; owner and id are never patchable. A changed title is
// re-checked for uniqueness against every other book.
func (s *BookService) UpdateBook(ctx context.Context, userID, id uuid.UUID, req model.UpdateBookRequest) (*model.BookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book.UserID != userID {
		return nil, model.ErrNotOwner
	}

	if req.Title != nil && *req.Title != book.Title {
		exists, err := s.repo.TitleExistsExcept(ctx, *req.Title, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, model.ErrDuplicateTitle
		}
		book.Title = *req.Title
	}
	if req.Caption != nil {
		book.Caption = *req.Caption
	}
	if req.Rating != nil {
		book.Rating = *req.Rating
	}

	var newKey, oldKey string
	if req.Image != nil && *req.Image != "" {
		data, contentType, err := model.DecodeImagePayload(*req.Image)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrImageUpload, err)
		}

		url, key, err := s.storage.UploadCover(ctx, data, contentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrImageUpload, err)
		}

		if book.Image != nil {
			if k, ok := s.storage.KeyFromURL(*book.Image); ok {
				oldKey = k
			}
		}
		book.Image = &url
		newKey = key
	}

	if err := s.repo.Update(ctx, book); err != nil {
		if newKey != "" {
			if rmErr := s.storage.Remove(context.WithoutCancel(ctx), newKey); rmErr != nil {
				logger.Error("failed to remove orphaned cover "+newKey, rmErr)
			}
		}
		return nil, err
	}

	// The replaced cover is unreferenced now; removal is best effort.
	if oldKey != "" {
		if err := s.storage.Remove(ctx, oldKey); err != nil {
			logger.Warn("failed to remove replaced cover "+oldKey, err)
		}
	}

	s.invalidateListCache(ctx)

	resp := book.ToResponse()
	return &resp, nil
}

// DeleteBook removes a book permanently. Only the owner may delete. When
// the cover lives in our image store it is destroyed first; if that fails
// the record is kept so the caller sees all-or-nothing.
func (s *BookService) DeleteBook(ctx context.Context, userID, id uuid.UUID) error {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if book.UserID != userID {
		return model.ErrNotOwner
	}

	if book.Image != nil {
		if key, ok := s.storage.KeyFromURL(*book.Image); ok {
			if err := s.storage.Remove(ctx, key); err != nil {
				return fmt.Errorf("%w: %v", model.ErrImageDelete, err)
			}
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *BookService) invalidateListCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, model.ListCacheKeyPrefix+":*"); err != nil {
		logger.Warn("list cache invalidation failed", err)
	}
}
