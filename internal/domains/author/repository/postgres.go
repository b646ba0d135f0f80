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
	"github.com/samber/lo"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/shared/utils"
	"library-catalog/pkg/cache"
)

// postgresRepository reads through the cache by id and for list pages.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
	ttl   time.Duration
}

func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, ttl time.Duration) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: c,
		ttl:   ttl,
	}
}

const (
	authorCacheKeyPrefix = "author:"
	authorListKeyPrefix  = "authors:list:"

	authorColumns = `id, first_name, family_name, date_of_birth, date_of_death, created_at, updated_at`
)

// Sort keys map to fixed SQL; never interpolate user input.
var orderClauses = map[string]string{
	model.SortFamilyName:  "family_name %[1]s, first_name %[1]s",
	model.SortFirstName:   "first_name %[1]s, family_name %[1]s",
	model.SortDateOfBirth: "date_of_birth %[1]s NULLS LAST, family_name ASC",
	model.SortCreatedAt:   "created_at %[1]s",
}

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var a model.Author
	err := row.Scan(
		&a.ID,
		&a.FirstName,
		&a.FamilyName,
		&a.DateOfBirth,
		&a.DateOfDeath,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) FindAll(ctx context.Context, filter model.Filter) ([]model.Author, error) {
	filter = filter.Normalize()
	cacheKey := authorListKeyPrefix + filter.Sort + ":" + filter.Order

	var authors []model.Author
	if hit, err := r.cache.Get(ctx, cacheKey, &authors); err == nil && hit {
		return authors, nil
	}

	order := fmt.Sprintf(orderClauses[filter.Sort], utils.NormalizeOrder(filter.Order))
	query := `SELECT ` + authorColumns + ` FROM authors ORDER BY ` + order

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors = make([]model.Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, authors, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("author list cache set failed")
	}
	return authors, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var cached model.Author
	if hit, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`
	a, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, a, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("author cache set failed")
	}
	return a, nil
}

func (r *postgresRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Author, error) {
	if len(ids) == 0 {
		return []model.Author{}, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = ANY($1::uuid[])`
	rows, err := r.pool.Query(ctx, query, lo.Map(ids, func(id uuid.UUID, _ int) string { return id.String() }))
	if err != nil {
		return nil, fmt.Errorf("failed to get authors by ids: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0, len(ids))
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	return authors, rows.Err()
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (first_name, family_name, date_of_birth, date_of_death)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + authorColumns

	created, err := scanAuthor(r.pool.QueryRow(ctx, query,
		a.FirstName,
		a.FamilyName,
		a.DateOfBirth,
		a.DateOfDeath,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	r.invalidateListCache(ctx)
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        UPDATE authors
        SET first_name = $2, family_name = $3, date_of_birth = $4, date_of_death = $5, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + authorColumns

	updated, err := scanAuthor(r.pool.QueryRow(ctx, query,
		a.ID,
		a.FirstName,
		a.FamilyName,
		a.DateOfBirth,
		a.DateOfDeath,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.invalidateCache(ctx, a.ID)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return model.ErrAuthorHasBooks
		}
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	r.invalidateCache(ctx, id)
	return nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return n, nil
}

// ========================================
// CACHE
// ========================================

func (r *postgresRepository) invalidateCache(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, authorCacheKeyPrefix+id.String()); err != nil {
		log.Warn().Err(err).Str("author_id", id.String()).Msg("author cache delete failed")
	}
	r.invalidateListCache(ctx)
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, authorListKeyPrefix+"*"); err != nil {
		log.Warn().Err(err).Msg("author list cache invalidation failed")
	}
}
