package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared/utils"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/database"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
	ttl   time.Duration
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, ttl time.Duration) RepositoryInterface {
	return &postgresRepository{pool: pool, cache: c, ttl: ttl}
}

const (
	bookCacheKeyPrefix = "book:"
	bookListKeyPrefix  = "books:list:"
)

// selectBooks aggregates genre links so one row is one book.
const selectBooks = `
    SELECT b.id, b.title, b.author_id, b.summary, b.isbn, b.created_at, b.updated_at,
           COALESCE(array_agg(bg.genre_id::text) FILTER (WHERE bg.genre_id IS NOT NULL), '{}') AS genre_ids
    FROM books b
    LEFT JOIN book_genres bg ON bg.book_id = b.id
`

func scanBook(row pgx.Row) (*model.Book, error) {
	var (
		b        model.Book
		genreIDs pq.StringArray
	)
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.AuthorID,
		&b.Summary,
		&b.ISBN,
		&b.CreatedAt,
		&b.UpdatedAt,
		&genreIDs,
	)
	if err != nil {
		return nil, err
	}

	b.GenreIDs = make([]uuid.UUID, 0, len(genreIDs))
	for _, s := range genreIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid genre id %q: %w", s, err)
		}
		b.GenreIDs = append(b.GenreIDs, id)
	}
	return &b, nil
}

func collectBooks(rows pgx.Rows) ([]model.Book, error) {
	defer rows.Close()
	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}

func (r *postgresRepository) FindAll(ctx context.Context, filter model.Filter) ([]model.Book, error) {
	filter = filter.Normalize()

	var (
		conditions []string
		args       []interface{}
	)
	if filter.AuthorID != uuid.Nil {
		args = append(args, filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("b.author_id = $%d", len(args)))
	}
	if filter.GenreID != uuid.Nil {
		args = append(args, filter.GenreID)
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM book_genres f WHERE f.book_id = b.id AND f.genre_id = $%d)", len(args)))
	}

	// Only the unfiltered list is cached; filtered lists back detail pages.
	cacheKey := ""
	if len(conditions) == 0 {
		cacheKey = bookListKeyPrefix + filter.Sort + ":" + filter.Order
		var cached []model.Book
		if hit, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	query := selectBooks
	if len(conditions) > 0 {
		query += " WHERE " + utils.JoinWithAnd(conditions)
	}
	query += fmt.Sprintf(" GROUP BY b.id ORDER BY b.%s %s, b.id", filter.Sort, utils.NormalizeOrder(filter.Order))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	books, err := collectBooks(rows)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if err := r.cache.Set(ctx, cacheKey, books, r.ttl); err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("book list cache set failed")
		}
	}
	return books, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var cached model.Book
	if hit, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	b, err := scanBook(r.pool.QueryRow(ctx, selectBooks+` WHERE b.id = $1 GROUP BY b.id`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, b, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("book cache set failed")
	}
	return b, nil
}

func (r *postgresRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Book, error) {
	if len(ids) == 0 {
		return []model.Book{}, nil
	}
	rows, err := r.pool.Query(ctx,
		selectBooks+` WHERE b.id = ANY($1::uuid[]) GROUP BY b.id`,
		lo.Map(ids, func(id uuid.UUID, _ int) string { return id.String() }),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get books by ids: %w", err)
	}
	return collectBooks(rows)
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	id, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (uuid.UUID, error) {
		var id uuid.UUID
		err := tx.QueryRow(ctx, `
            INSERT INTO books (title, author_id, summary, isbn)
            VALUES ($1, $2, $3, $4)
            RETURNING id`,
			b.Title, b.AuthorID, b.Summary, b.ISBN,
		).Scan(&id)
		if err != nil {
			return uuid.Nil, err
		}
		return id, linkGenres(ctx, tx, id, b.GenreIDs)
	})
	if err != nil {
		return nil, mapWriteError("create", err)
	}

	r.invalidateListCache(ctx)
	return r.FindByID(ctx, id)
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
            UPDATE books
            SET title = $2, author_id = $3, summary = $4, isbn = $5, updated_at = NOW()
            WHERE id = $1`,
			b.ID, b.Title, b.AuthorID, b.Summary, b.ISBN,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return model.ErrBookNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM book_genres WHERE book_id = $1`, b.ID); err != nil {
			return err
		}
		return linkGenres(ctx, tx, b.ID, b.GenreIDs)
	})
	if err != nil {
		return nil, mapWriteError("update", err)
	}

	r.invalidateCache(ctx, b.ID)
	return r.FindByID(ctx, b.ID)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// book_genres rows go with the book (ON DELETE CASCADE); copies block it.
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return model.ErrBookHasInstances
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	r.invalidateCache(ctx, id)
	return nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return n, nil
}

func linkGenres(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, genreIDs []uuid.UUID) error {
	if len(genreIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO book_genres (book_id, genre_id) SELECT $1, unnest($2::uuid[]) ON CONFLICT DO NOTHING`,
		bookID,
		lo.Map(genreIDs, func(id uuid.UUID, _ int) string { return id.String() }),
	)
	return err
}

func mapWriteError(op string, err error) error {
	if errors.Is(err, model.ErrBookNotFound) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" { // author or genre vanished
		return model.ErrUnknownReference
	}
	return fmt.Errorf("failed to %s book: %w", op, err)
}

// ========================================
// CACHE
// ========================================

func (r *postgresRepository) invalidateCache(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, bookCacheKeyPrefix+id.String()); err != nil {
		log.Warn().Err(err).Str("book_id", id.String()).Msg("book cache delete failed")
	}
	r.invalidateListCache(ctx)
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, bookListKeyPrefix+"*"); err != nil {
		log.Warn().Err(err).Msg("book list cache invalidation failed")
	}
}
