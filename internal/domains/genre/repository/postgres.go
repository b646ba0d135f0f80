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

	"library-catalog/internal/domains/genre/model"
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
	genreCacheKeyPrefix = "genre:"
	genreListKeyPrefix  = "genres:list:"

	genreColumns = `id, name, created_at, updated_at`
)

func scanGenre(row pgx.Row) (*model.Genre, error) {
	var g model.Genre
	if err := row.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *postgresRepository) collect(rows pgx.Rows) ([]model.Genre, error) {
	defer rows.Close()
	genres := make([]model.Genre, 0)
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, *g)
	}
	return genres, rows.Err()
}

func (r *postgresRepository) FindAll(ctx context.Context, filter model.Filter) ([]model.Genre, error) {
	filter = filter.Normalize()
	cacheKey := genreListKeyPrefix + filter.Sort + ":" + filter.Order

	var genres []model.Genre
	if hit, err := r.cache.Get(ctx, cacheKey, &genres); err == nil && hit {
		return genres, nil
	}

	// filter.Sort is one of the whitelisted column names.
	query := fmt.Sprintf(`SELECT %s FROM genres ORDER BY %s %s, id`,
		genreColumns, filter.Sort, utils.NormalizeOrder(filter.Order))
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	genres, err = r.collect(rows)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKey, genres, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("genre list cache set failed")
	}
	return genres, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	cacheKey := genreCacheKeyPrefix + id.String()

	var cached model.Genre
	if hit, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	g, err := scanGenre(r.pool.QueryRow(ctx, `SELECT `+genreColumns+` FROM genres WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre by id: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, g, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("genre cache set failed")
	}
	return g, nil
}

func (r *postgresRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Genre, error) {
	if len(ids) == 0 {
		return []model.Genre{}, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+genreColumns+` FROM genres WHERE id = ANY($1::uuid[]) ORDER BY name`,
		lo.Map(ids, func(id uuid.UUID, _ int) string { return id.String() }),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get genres by ids: %w", err)
	}
	return r.collect(rows)
}

func (r *postgresRepository) FindByName(ctx context.Context, name string) (*model.Genre, error) {
	g, err := scanGenre(r.pool.QueryRow(ctx, `SELECT `+genreColumns+` FROM genres WHERE LOWER(name) = LOWER($1)`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre by name: %w", err)
	}
	return g, nil
}

func (r *postgresRepository) Create(ctx context.Context, g *model.Genre) (*model.Genre, error) {
	created, err := scanGenre(r.pool.QueryRow(ctx,
		`INSERT INTO genres (name) VALUES ($1) RETURNING `+genreColumns, g.Name))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrDuplicateGenre
		}
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}

	r.invalidateListCache(ctx)
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, g *model.Genre) (*model.Genre, error) {
	updated, err := scanGenre(r.pool.QueryRow(ctx,
		`UPDATE genres SET name = $2, updated_at = NOW() WHERE id = $1 RETURNING `+genreColumns, g.ID, g.Name))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, model.ErrGenreNotFound
		case isUniqueViolation(err):
			return nil, model.ErrDuplicateGenre
		}
		return nil, fmt.Errorf("failed to update genre: %w", err)
	}

	r.invalidateCache(ctx, g.ID)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return model.ErrGenreHasBooks
		}
		return fmt.Errorf("failed to delete genre: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrGenreNotFound
	}

	r.invalidateCache(ctx, id)
	return nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM genres`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count genres: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) invalidateCache(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, genreCacheKeyPrefix+id.String()); err != nil {
		log.Warn().Err(err).Str("genre_id", id.String()).Msg("genre cache delete failed")
	}
	r.invalidateListCache(ctx)
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, genreListKeyPrefix+"*"); err != nil {
		log.Warn().Err(err).Msg("genre list cache invalidation failed")
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
