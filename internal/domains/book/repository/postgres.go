package repository

import (
	"context"
	"errors"
	"fmt"

	"bookshare-backend/internal/domains/book/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// postgresRepository - raw SQL with pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Interface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE title = $1)`,
		title,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("title lookup failed: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) TitleExistsExcept(ctx context.Context, title string, exceptID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE title = $1 AND id <> $2)`,
		title, exceptID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("title lookup failed: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `
		SELECT id, title, caption, image_url, rating, user_id, created_at
		FROM books
		WHERE id = $1
	`

	var book model.Book
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&book.ID, &book.Title, &book.Caption, &book.Image,
		&book.Rating, &book.UserID, &book.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("book lookup failed: %w", err)
	}

	return &book, nil
}

func (r *postgresRepository) FindByOwner(ctx context.Context, userID uuid.UUID) ([]model.Book, error) {
	query := `
		SELECT id, title, caption, image_url, rating, user_id, created_at
		FROM books
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("owner query failed: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(
			&book.ID, &book.Title, &book.Caption, &book.Image,
			&book.Rating, &book.UserID, &book.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) FindPage(ctx context.Context, offset, limit int) ([]model.BookWithOwner, error) {
	query := `
		SELECT b.id, b.title, b.caption, b.image_url, b.rating, b.user_id, b.created_at,
		       u.username, u.profile_image
		FROM books b
		JOIN users u ON b.user_id = u.id
		ORDER BY b.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("page query failed: %w", err)
	}
	defer rows.Close()

	books := make([]model.BookWithOwner, 0, limit)
	for rows.Next() {
		var book model.BookWithOwner
		if err := rows.Scan(
			&book.ID, &book.Title, &book.Caption, &book.Image,
			&book.Rating, &book.UserID, &book.CreatedAt,
			&book.Owner.Username, &book.Owner.ProfileImage,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) Insert(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (title, caption, image_url, rating, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		book.Title, book.Caption, book.Image, book.Rating, book.UserID,
	).Scan(&book.ID, &book.CreatedAt)
	if isUniqueViolation(err) {
		return model.ErrDuplicateTitle
	}
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}

	return nil
}

func (r *postgresRepository) Update(ctx context.Context, book *model.Book) error {
	// user_id and created_at stay out of the SET list on purpose.
	query := `
		UPDATE books
		SET title = $1, caption = $2, image_url = $3, rating = $4
		WHERE id = $5
	`

	tag, err := r.pool.Exec(ctx, query,
		book.Title, book.Caption, book.Image, book.Rating, book.ID,
	)
	if isUniqueViolation(err) {
		return model.ErrDuplicateTitle
	}
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
