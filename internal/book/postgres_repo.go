package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookreview/internal/review"
)

const bookColumns = `id, title, author, description, genre, cover_image, created_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns user input into a literal substring ILIKE pattern.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// buildWhere renders f as a WHERE clause with positional arguments
// starting at $1. An empty filter yields an empty clause.
func buildWhere(f Filter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	add := func(tmpl, value string) {
		args = append(args, containsPattern(value))
		clauses = append(clauses, fmt.Sprintf(tmpl, len(args)))
	}

	if f.Author != "" {
		add("author ILIKE $%d", f.Author)
	}
	if f.Genre != "" {
		add("genre ILIKE $%d", f.Genre)
	}
	if f.Query != "" {
		switch f.Field {
		case FieldTitle:
			add("title ILIKE $%d", f.Query)
		case FieldAuthor:
			add("author ILIKE $%d", f.Query)
		default:
			add("(title ILIKE $%[1]d OR author ILIKE $%[1]d)", f.Query)
		}
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

var (
	_ Repository         = (*PostgresRepo)(nil)
	_ review.BookChecker = (*PostgresRepo)(nil)
)

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

func scanBook(row pgx.Row, b *Book) error {
	return row.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Genre, &b.CoverImage, &b.CreatedAt)
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
		INSERT INTO books (title, author, description, genre, cover_image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query, b.Title, b.Author, b.Description, b.Genre, b.CoverImage).
		Scan(&b.ID, &b.CreatedAt)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Book{}, ErrNotFound
	}
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := scanBook(r.db.QueryRow(timeoutCtx, query, id), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Exists(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	var exists bool
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *PostgresRepo) List(ctx context.Context, f Filter, limit, offset int) ([]Book, error) {
	where, args := buildWhere(f)
	query := fmt.Sprintf(`
		SELECT %s
		FROM books
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`,
		bookColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		var b Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Count(ctx context.Context, f Filter) (int, error) {
	where, args := buildWhere(f)

	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, "SELECT COUNT(*) FROM books "+where, args...).Scan(&total)
	return total, err
}
