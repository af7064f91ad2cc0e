package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"bookshare-backend/internal/domains/book/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakePublicBase = "http://localhost:9000/bookshare/"

// ---------- fakes ----------

type fakeRepo struct {
	books     map[uuid.UUID]*model.Book
	clock     time.Time
	insertErr error
	updateErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		books: make(map[uuid.UUID]*model.Book),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRepo) TitleExists(_ context.Context, title string) (bool, error) {
	for _, b := range r.books {
		if b.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) TitleExistsExcept(_ context.Context, title string, exceptID uuid.UUID) (bool, error) {
	for _, b := range r.books {
		if b.Title == title && b.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) FindByOwner(_ context.Context, userID uuid.UUID) ([]model.Book, error) {
	out := make([]model.Book, 0)
	for _, b := range r.books {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepo) FindPage(_ context.Context, offset, limit int) ([]model.BookWithOwner, error) {
	all := make([]model.BookWithOwner, 0, len(r.books))
	for _, b := range r.books {
		all = append(all, model.BookWithOwner{
			Book:  *b,
			Owner: model.Owner{Username: "reader", ProfileImage: "https://example.com/avatar.svg"},
		})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if offset >= len(all) {
		return []model.BookWithOwner{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeRepo) Count(_ context.Context) (int, error) {
	return len(r.books), nil
}

func (r *fakeRepo) Insert(_ context.Context, book *model.Book) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	for _, b := range r.books {
		if b.Title == book.Title {
			return model.ErrDuplicateTitle
		}
	}
	book.ID = uuid.New()
	r.clock = r.clock.Add(time.Second)
	book.CreatedAt = r.clock
	copied := *book
	r.books[book.ID] = &copied
	return nil
}

func (r *fakeRepo) Update(_ context.Context, book *model.Book) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	existing, ok := r.books[book.ID]
	if !ok {
		return model.ErrBookNotFound
	}
	existing.Title = book.Title
	existing.Caption = book.Caption
	existing.Image = book.Image
	existing.Rating = book.Rating
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

type fakeStorage struct {
	uploads   int
	removed   []string
	uploadErr error
	removeErr error
}

func (s *fakeStorage) UploadCover(_ context.Context, _ []byte, _ string) (string, string, error) {
	if s.uploadErr != nil {
		return "", "", s.uploadErr
	}
	s.uploads++
	key := fmt.Sprintf("covers/%d.jpg", s.uploads)
	return fakePublicBase + key, key, nil
}

func (s *fakeStorage) Remove(_ context.Context, key string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, key)
	return nil
}

func (s *fakeStorage) KeyFromURL(rawURL string) (string, bool) {
	key, ok := strings.CutPrefix(rawURL, fakePublicBase)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *fakeCache) DeletePattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *fakeCache) Ping(_ context.Context) error { return nil }

// ---------- helpers ----------

func testImagePayload() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))
}

func newTestService() (ServiceInterface, *fakeRepo, *fakeStorage, *fakeCache) {
	repo := newFakeRepo()
	st := &fakeStorage{}
	c := newFakeCache()
	return NewService(repo, st, c), repo, st, c
}

// ---------- create ----------

func TestCreateBookStampsOwnerAndReturnsProjection(t *testing.T) {
	svc, repo, st, _ := newTestService()
	owner := uuid.New()

	resp, err := svc.CreateBook(context.Background(), owner, model.CreateBookRequest{
		Title:   "Dune",
		Caption: "sci-fi classic",
		Image:   testImagePayload(),
		Rating:  5,
	})
	require.NoError(t, err)

	assert.Equal(t, "Dune", resp.Title)
	assert.Equal(t, "sci-fi classic", resp.Caption)
	assert.Equal(t, 5, resp.Rating)
	require.NotNil(t, resp.Image)
	assert.True(t, strings.HasPrefix(*resp.Image, fakePublicBase))
	assert.Equal(t, 1, st.uploads)

	stored, err := repo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, owner, stored.UserID)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestCreateBookWithoutImage(t *testing.T) {
	svc, _, st, _ := newTestService()

	resp, err := svc.CreateBook(context.Background(), uuid.New(), model.CreateBookRequest{
		Title:   "Hyperion",
		Caption: "space opera",
	})
	require.NoError(t, err)

	assert.Nil(t, resp.Image)
	assert.Equal(t, 0, st.uploads)
}

func TestCreateBookRequiresTitleAndCaption(t *testing.T) {
	svc, repo, st, _ := newTestService()

	cases := []model.CreateBookRequest{
		{Title: "", Caption: "c"},
		{Title: "t", Caption: ""},
		{Title: "   ", Caption: "c"},
	}
	for _, req := range cases {
		_, err := svc.CreateBook(context.Background(), uuid.New(), req)
		assert.ErrorIs(t, err, model.ErrMissingFields)
	}

	assert.Empty(t, repo.books)
	assert.Equal(t, 0, st.uploads)
}

func TestCreateBookRejectsOutOfRangeRating(t *testing.T) {
	svc, repo, _, _ := newTestService()

	_, err := svc.CreateBook(context.Background(), uuid.New(), model.CreateBookRequest{
		Title:   "Dune",
		Caption: "sci-fi classic",
		Rating:  6,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrMissingFields)
	assert.Empty(t, repo.books)
}

func TestCreateBookDuplicateTitleFailsAndCleansUpImage(t *testing.T) {
	svc, repo, st, _ := newTestService()

	_, err := svc.CreateBook(context.Background(), uuid.New(), model.CreateBookRequest{
		Title: "Dune", Caption: "first",
	})
	require.NoError(t, err)

	_, err = svc.CreateBook(context.Background(), uuid.New(), model.CreateBookRequest{
		Title: "Dune", Caption: "second", Image: testImagePayload(),
	})
	assert.ErrorIs(t, err, model.ErrDuplicateTitle)

	// no second record, and the uploaded cover was destroyed again
	assert.Len(t, repo.books, 1)
	assert.Equal(t, []string{"covers/1.jpg"}, st.removed)
}

func TestCreateBookInsertFailureDestroysUploadedImage(t *testing.T) {
	svc, repo, st, _ := newTestService()
	repo.insertErr = errors.New("connection reset")

	_, err := svc.CreateBook(context.Background(), uuid.New(), model.CreateBookRequest{
		Title: "Dune", Caption: "sci-fi classic", Image: testImagePayload(),
	})
	require.Error(t, err)
	assert.Equal(t, []string{"covers/1.jpg"}, st.removed)
}

func TestCreateBookUploadFailure(t *testing.T) {
	svc, repo, st, _ := newTestService()
	st.uploadErr = errors.New("bucket unreachable")

	_, err := svc.CreateBook(context.Background(), uuid.New(), model.CreateBookRequest{
		Title: "Dune", Caption: "sci-fi classic", Image: testImagePayload(),
	})
	assert.ErrorIs(t, err, model.ErrImageUpload)
	assert.Empty(t, repo.books)
}

// ---------- list ----------

func TestListBooksNewestFirstWithOwnerProjection(t *testing.T) {
	svc, _, _, _ := newTestService()
	owner := uuid.New()

	_, err := svc.CreateBook(context.Background(), owner, model.CreateBookRequest{Title: "Older", Caption: "c"})
	require.NoError(t, err)
	created, err := svc.CreateBook(context.Background(), owner, model.CreateBookRequest{Title: "Newer", Caption: "c"})
	require.NoError(t, err)

	resp, err := svc.ListBooks(context.Background(), 1, 5)
	require.NoError(t, err)

	require.Len(t, resp.Books, 2)
	assert.Equal(t, created.ID, resp.Books[0].ID)
	assert.Equal(t, "Newer", resp.Books[0].Title)
	assert.Equal(t, "reader", resp.Books[0].Owner.Username)
	assert.Equal(t, 1, resp.CurrentPage)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, 2, resp.TotalBooks)
}

func TestListBooksPagination(t *testing.T) {
	svc, _, _, _ := newTestService()
	owner := uuid.New()

	for i := 0; i < 2; i++ {
		_, err := svc.CreateBook(context.Background(), owner, model.CreateBookRequest{
			Title: fmt.Sprintf("Book %d", i), Caption: "c",
		})
		require.NoError(t, err)
	}

	resp, err := svc.ListBooks(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, resp.Books, 1)
	assert.Equal(t, "Book 1", resp.Books[0].Title)
	assert.Equal(t, 2, resp.TotalPages)

	// a page far past the end is empty, not an error
	resp, err = svc.ListBooks(context.Background(), 9, 1)
	require.NoError(t, err)
	assert.Empty(t, resp.Books)
	assert.Equal(t, 9, resp.CurrentPage)
}

func TestListBooksEmpty(t *testing.T) {
	svc, _, _, _ := newTestService()

	resp, err := svc.ListBooks(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Empty(t, resp.Books)
	assert.Equal(t, 0, resp.TotalPages)
	assert.Equal(t, 0, resp.TotalBooks)
}

func TestListBooksCachedAndInvalidatedOnCreate(t *testing.T) {
	svc, _, _, c := newTestService()
	owner := uuid.New()

	_, err := svc.CreateBook(context.Background(), owner, model.CreateBookRequest{Title: "First", Caption: "c"})
	require.NoError(t, err)

	_, err = svc.ListBooks(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Len(t, c.data, 1)

	_, err = svc.CreateBook(context.Background(), owner, model.CreateBookRequest{Title: "Second", Caption: "c"})
	require.NoError(t, err)
	assert.Empty(t, c.data)

	resp, err := svc.ListBooks(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalBooks)
}

func TestListMyBooksOnlyReturnsOwned(t *testing.T) {
	svc, _, _, _ := newTestService()
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.CreateBook(context.Background(), alice, model.CreateBookRequest{Title: "Alice's", Caption: "c"})
	require.NoError(t, err)
	_, err = svc.CreateBook(context.Background(), bob, model.CreateBookRequest{Title: "Bob's", Caption: "c"})
	require.NoError(t, err)

	mine, err := svc.ListMyBooks(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Alice's", mine[0].Title)
}

// ---------- update ----------

func TestUpdateBookByOwner(t *testing.T) {
	svc, repo, _, _ := newTestService()
	owner := uuid.New()

	created, err := svc.CreateBook(context.Background(), owner, model.CreateBookRequest{Title: "Dune", Caption: "old caption"})
	require.NoError(t, err)

	caption := "new caption"
	rating := 4
	resp, err := svc.UpdateBook(context.Background(), owner, created.ID, model.UpdateBookRequest{
		Caption: &caption,
		Rating:  &rating,
	})
	require.NoError(t, err)
	assert.Equal(t, "new caption", resp.Caption)
	assert.Equal(t, 4, resp.Rating)
	assert.Equal(t, "Dune", resp.Title)

	stored, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "new caption", stored.Caption)
	assert.Equal(t, owner, stored.UserID)
}

func TestUpdateBookByNonOwnerLeavesRecordUnchanged(t *testing.T) {
	svc, repo, _, _ := newTestService()
	owner := uuid.New()

	created, err := svc.CreateBook(context.Background(), owner, model.CreateBookRequest{Title: "Dune", Caption: "original"})
	require.NoError(t, err)

	caption := "hijacked"
	_, err = svc.UpdateBook(context.Background(), uuid.New(), created.ID, model.UpdateBookRequest{Caption: &caption})
	assert.ErrorIs(t, err, model.ErrNotOwner)

	stored, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Caption)
}

func TestUpdateBookUnknownID(t *testing.T) {
	svc, _, _, _ := newTestService()

	caption := "c"
	_, err := svc.UpdateBook(context.Background(), uuid.New(), uuid.New(), model.UpdateBookRequest{Caption: &caption})
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestUpdateBookTitleCollision(t *testing.T) {
	svc, _, _, _ := newTestService()
	owner := uuid.New()

	_, err := svc.CreateBook(context.Background(), owner, model.CreateBookRequest{Title: "Dune", Caption: "c"})
	require.NoError(t, err)
	created, err := svc.CreateBook(context.Background(), owner, model.CreateBookRequest{Title: "Hyperion", Caption: "c"})
	require.NoError(t, err)

	title := "Dune"
	_, err = svc.UpdateBook(context.Background(), owner, created.ID, model.UpdateBookRequest{Title: &title})
	assert.ErrorIs(t, err, model.ErrDuplicateTitle)

	// keeping its own title is not a collision
	title = "Hyperion"
	_, err = svc.UpdateBook(context.Background(), owner, created.ID, model.UpdateBookRequest{Title: &title})
	assert.NoError(t, err)
}

func TestUpdateBookReplacesCoverAndRemovesOldOne(t *testing.T) {
	svc, repo, st, _ := newTestService()
	owner := uuid.New()

	created, err := svc.CreateBook(context.Background(), owner, model.CreateBookRequest{
		Title: "Dune", Caption: "c", Image: testImagePayload(),
	})
	require.NoError(t, err)

	payload := testImagePayload()
	resp, err := svc.UpdateBook(context.Background(), owner, created.ID, model.UpdateBookRequest{Image: &payload})
	require.NoError(t, err)

	require.NotNil(t, resp.Image)
	assert.Equal(t, fakePublicBase+"covers/2.jpg", *resp.Image)
	assert.Contains(t, st.removed, "covers/1.jpg")

	stored, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, fakePublicBase+"covers/2.jpg", *stored.Image)
}

// ---------- delete ----------

func TestDeleteBookByOwnerDestroysCoverFirst(t *testing.T) {
	svc, repo, st, _ := newTestService()
	owner := uuid.New()

	created, err := svc.CreateBook(context.Background(), owner, model.CreateBookRequest{
		Title: "Dune", Caption: "c", Image: testImagePayload(),
	})
	require.NoError(t, err)

	err = svc.DeleteBook(context.Background(), owner, created.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"covers/1.jpg"}, st.removed)
	_, err = repo.FindByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestDeleteBookByNonOwner(t *testing.T) {
	svc, repo, _, _ := newTestService()
	owner := uuid.New()

	created, err := svc.CreateBook(context.Background(), owner, model.CreateBookRequest{Title: "Dune", Caption: "c"})
	require.NoError(t, err)

	err = svc.DeleteBook(context.Background(), uuid.New(), created.ID)
	assert.ErrorIs(t, err, model.ErrNotOwner)

	_, err = repo.FindByID(context.Background(), created.ID)
	assert.NoError(t, err)
}

func TestDeleteBookKeepsRecordWhenDestroyFails(t *testing.T) {
	svc, repo, st, _ := newTestService()
	owner := uuid.New()

	created, err := svc.CreateBook(context.Background(), owner, model.CreateBookRequest{
		Title: "Dune", Caption: "c", Image: testImagePayload(),
	})
	require.NoError(t, err)

	st.removeErr = errors.New("object store down")

	err = svc.DeleteBook(context.Background(), owner, created.ID)
	assert.ErrorIs(t, err, model.ErrImageDelete)

	// all-or-nothing: the record survives a failed destroy
	_, err = repo.FindByID(context.Background(), created.ID)
	assert.NoError(t, err)
}

func TestDeleteBookUnknownID(t *testing.T) {
	svc, _, _, _ := newTestService()

	err := svc.DeleteBook(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestDeleteBookWithForeignImageURLSkipsDestroy(t *testing.T) {
	svc, repo, st, _ := newTestService()
	owner := uuid.New()

	created, err := svc.CreateBook(context.Background(), owner, model.CreateBookRequest{Title: "Dune", Caption: "c"})
	require.NoError(t, err)

	// image hosted elsewhere: URL does not match our store
	foreign := "https://images.example.com/dune.jpg"
	stored := repo.books[created.ID]
	stored.Image = &foreign

	err = svc.DeleteBook(context.Background(), owner, created.ID)
	require.NoError(t, err)
	assert.Empty(t, st.removed)
}
