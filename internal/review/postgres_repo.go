package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookreview/internal/platform/postgres"
)

const uniqueBookUser = "reviews_book_id_user_id_key"

// selectReview projects a review aliased r joined with its author u.
const selectReview = `
	SELECT r.id, r.content, r.rating, r.book_id, r.user_id, r.created_at, r.updated_at,
	       u.id, u.name`

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func scanReview(row pgx.Row, rev *Review) error {
	return row.Scan(
		&rev.ID, &rev.Content, &rev.Rating, &rev.BookID, &rev.UserID, &rev.CreatedAt, &rev.UpdatedAt,
		&rev.User.ID, &rev.User.Name,
	)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *PostgresRepo) Create(ctx context.Context, rev *Review) error {
	const query = `
	WITH inserted AS (
		INSERT INTO reviews (content, rating, book_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	)` + selectReview + `
	FROM inserted r
	JOIN users u ON u.id = r.user_id`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := scanReview(r.db.QueryRow(timeoutCtx, query, rev.Content, rev.Rating, rev.BookID, rev.UserID), rev)
	if postgres.IsUniqueViolation(err, uniqueBookUser) {
		return ErrDuplicate
	}
	return err
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Review, error) {
	if !validID(id) {
		return Review{}, ErrNotFound
	}
	const query = selectReview + `
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	WHERE r.id = $1`

	var rev Review
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := scanReview(r.db.QueryRow(timeoutCtx, query, id), &rev); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	return rev, nil
}

func (r *PostgresRepo) ExistsForUser(ctx context.Context, bookID, userID string) (bool, error) {
	if !validID(bookID) || !validID(userID) {
		return false, nil
	}
	const query = `SELECT EXISTS (SELECT 1 FROM reviews WHERE book_id = $1 AND user_id = $2)`

	var exists bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, bookID, userID).Scan(&exists)
	return exists, err
}

// Update applies the non-nil fields of in and bumps updated_at.
func (r *PostgresRepo) Update(ctx context.Context, id string, in UpdateInput) (Review, error) {
	if !validID(id) {
		return Review{}, ErrNotFound
	}
	const query = `
	WITH updated AS (
		UPDATE reviews
		SET content = COALESCE($2, content),
		    rating = COALESCE($3, rating),
		    updated_at = now()
		WHERE id = $1
		RETURNING *
	)` + selectReview + `
	FROM updated r
	JOIN users u ON u.id = r.user_id`

	var rev Review
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := scanReview(r.db.QueryRow(timeoutCtx, query, id, in.Content, in.Rating), &rev); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	return rev, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) ListByBook(ctx context.Context, bookID string, limit, offset int) ([]Review, error) {
	if !validID(bookID) {
		return []Review{}, nil
	}
	const query = selectReview + `
	FROM reviews r
	JOIN users u ON u.id = r.user_id
	WHERE r.book_id = $1
	ORDER BY r.created_at DESC, r.id DESC
	LIMIT $2 OFFSET $3`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, bookID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		var rev Review
		if err := scanReview(rows, &rev); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) StatsByBook(ctx context.Context, bookID string) (Stats, error) {
	if !validID(bookID) {
		return Stats{}, nil
	}
	const query = `
	SELECT COALESCE(AVG(rating), 0)::float8, COUNT(*)
	FROM reviews
	WHERE book_id = $1`

	var stats Stats
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, bookID).Scan(&stats.AverageRating, &stats.TotalReviews)
	return stats, err
}
