package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	bookModel "library-catalog/internal/domains/book/model"
	bookRepo "library-catalog/internal/domains/book/repository"
	"library-catalog/internal/domains/genre/model"
	"library-catalog/internal/domains/genre/repository"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/form"
)

type GenreService struct {
	repo     repository.RepositoryInterface
	bookRepo bookRepo.RepositoryInterface
	notifier shared.ChangeNotifier
}

func NewGenreService(
	repo repository.RepositoryInterface,
	bookRepo bookRepo.RepositoryInterface,
	notifier shared.ChangeNotifier,
) ServiceInterface {
	return &GenreService{repo: repo, bookRepo: bookRepo, notifier: notifier}
}

func (s *GenreService) List(ctx context.Context, filter model.Filter) ([]model.Genre, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *GenreService) Get(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *GenreService) Detail(ctx context.Context, id uuid.UUID) (*GenreDetail, error) {
	var (
		genre *model.Genre
		books []bookModel.Book
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		genre, err = s.repo.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = s.bookRepo.FindAll(gctx, bookModel.Filter{GenreID: id})
		if err != nil {
			return fmt.Errorf("list books by genre: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &GenreDetail{Genre: *genre, Books: books}, nil
}

func (s *GenreService) Create(ctx context.Context, f *model.GenreForm) (*model.Genre, error) {
	f.Sanitize()
	if errs := f.Validate(); len(errs) > 0 {
		return nil, errs
	}

	existing, err := s.repo.FindByName(ctx, f.Name)
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, model.ErrGenreNotFound):
		return nil, err
	}

	var genre model.Genre
	f.Apply(&genre)

	created, err := s.repo.Create(ctx, &genre)
	if errors.Is(err, model.ErrDuplicateGenre) {
		// Lost a race with a concurrent create of the same name.
		return s.repo.FindByName(ctx, f.Name)
	}
	if err != nil {
		return nil, err
	}

	log.Info().Str("genre_id", created.ID.String()).Str("name", created.Name).Msg("genre created")
	s.notifier.CatalogChanged(ctx)
	return created, nil
}

func (s *GenreService) Update(ctx context.Context, id uuid.UUID, f *model.GenreForm) (*model.Genre, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	f.Sanitize()
	if errs := f.Validate(); len(errs) > 0 {
		return nil, errs
	}

	f.Apply(existing)
	updated, err := s.repo.Update(ctx, existing)
	if errors.Is(err, model.ErrDuplicateGenre) {
		return nil, form.Errors{{Field: "name", Message: "Genre already exists"}}
	}
	if err != nil {
		return nil, err
	}

	log.Info().Str("genre_id", id.String()).Msg("genre updated")
	s.notifier.CatalogChanged(ctx)
	return updated, nil
}

func (s *GenreService) Delete(ctx context.Context, id uuid.UUID) (*GenreDetail, error) {
	detail, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(detail.Books) > 0 {
		return detail, model.ErrGenreHasBooks
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return detail, err
	}

	log.Info().Str("genre_id", id.String()).Msg("genre deleted")
	s.notifier.CatalogChanged(ctx)
	return detail, nil
}
