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
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/bookinstance/model"
	"library-catalog/internal/shared/utils"
	"library-catalog/pkg/cache"
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
	instanceCacheKeyPrefix = "bookinstance:"

	instanceColumns = `id, book_id, imprint, status, due_back, created_at, updated_at`
)

var orderClauses = map[string]string{
	model.SortCreatedAt: "created_at %s, id",
	model.SortStatus:    "status %s, created_at",
	model.SortDueBack:   "due_back %s NULLS LAST, created_at",
}

func scanInstance(row pgx.Row) (*model.BookInstance, error) {
	var bi model.BookInstance
	err := row.Scan(
		&bi.ID,
		&bi.BookID,
		&bi.Imprint,
		&bi.Status,
		&bi.DueBack,
		&bi.CreatedAt,
		&bi.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bi, nil
}

func (r *postgresRepository) FindAll(ctx context.Context, filter model.Filter) ([]model.BookInstance, error) {
	filter = filter.Normalize()

	var (
		conditions []string
		args       []interface{}
	)
	if filter.BookID != uuid.Nil {
		args = append(args, filter.BookID)
		conditions = append(conditions, fmt.Sprintf("book_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + instanceColumns + ` FROM book_instances`
	if len(conditions) > 0 {
		query += " WHERE " + utils.JoinWithAnd(conditions)
	}
	query += " ORDER BY " + fmt.Sprintf(orderClauses[filter.Sort], utils.NormalizeOrder(filter.Order))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list book copies: %w", err)
	}
	defer rows.Close()

	instances := make([]model.BookInstance, 0)
	for rows.Next() {
		bi, err := scanInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book copy: %w", err)
		}
		instances = append(instances, *bi)
	}
	return instances, rows.Err()
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BookInstance, error) {
	cacheKey := instanceCacheKeyPrefix + id.String()

	var cached model.BookInstance
	if hit, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	bi, err := scanInstance(r.pool.QueryRow(ctx, `SELECT `+instanceColumns+` FROM book_instances WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookInstanceNotFound
		}
		return nil, fmt.Errorf("failed to get book copy by id: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, bi, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("book copy cache set failed")
	}
	return bi, nil
}

func (r *postgresRepository) Create(ctx context.Context, bi *model.BookInstance) (*model.BookInstance, error) {
	query := `
        INSERT INTO book_instances (book_id, imprint, status, due_back)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + instanceColumns

	created, err := scanInstance(r.pool.QueryRow(ctx, query,
		bi.BookID,
		bi.Imprint,
		string(bi.Status),
		bi.DueBack,
	))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, model.ErrUnknownBook
		}
		return nil, fmt.Errorf("failed to create book copy: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, bi *model.BookInstance) (*model.BookInstance, error) {
	query := `
        UPDATE book_instances
        SET book_id = $2, imprint = $3, status = $4, due_back = $5, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + instanceColumns

	updated, err := scanInstance(r.pool.QueryRow(ctx, query,
		bi.ID,
		bi.BookID,
		bi.Imprint,
		string(bi.Status),
		bi.DueBack,
	))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, model.ErrBookInstanceNotFound
		case isForeignKeyViolation(err):
			return nil, model.ErrUnknownBook
		}
		return nil, fmt.Errorf("failed to update book copy: %w", err)
	}

	r.invalidateCache(ctx, bi.ID)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM book_instances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book copy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookInstanceNotFound
	}

	r.invalidateCache(ctx, id)
	return nil
}

func (r *postgresRepository) CountByStatus(ctx context.Context) (map[model.Status]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM book_instances GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count copies by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.Status]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[model.Status(status)] = n
	}
	return counts, rows.Err()
}

func (r *postgresRepository) CountByBook(ctx context.Context) (map[uuid.UUID]model.CopyCounts, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT book_id, COUNT(*), COUNT(*) FILTER (WHERE status = 'Available')
        FROM book_instances
        GROUP BY book_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to count copies by book: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]model.CopyCounts)
	for rows.Next() {
		var (
			bookID uuid.UUID
			c      model.CopyCounts
		)
		if err := rows.Scan(&bookID, &c.Total, &c.Available); err != nil {
			return nil, fmt.Errorf("failed to scan book copy count: %w", err)
		}
		counts[bookID] = c
	}
	return counts, rows.Err()
}

func (r *postgresRepository) invalidateCache(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, instanceCacheKeyPrefix+id.String()); err != nil {
		log.Warn().Err(err).Str("instance_id", id.String()).Msg("book copy cache delete failed")
	}
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
