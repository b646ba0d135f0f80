package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/repository"
	bookModel "library-catalog/internal/domains/book/model"
	bookRepo "library-catalog/internal/domains/book/repository"
	"library-catalog/internal/shared"
)

type AuthorService struct {
	repo     repository.RepositoryInterface
	bookRepo bookRepo.RepositoryInterface
	notifier shared.ChangeNotifier
}

func NewAuthorService(
	repo repository.RepositoryInterface,
	bookRepo bookRepo.RepositoryInterface,
	notifier shared.ChangeNotifier,
) ServiceInterface {
	return &AuthorService{
		repo:     repo,
		bookRepo: bookRepo,
		notifier: notifier,
	}
}

func (s *AuthorService) List(ctx context.Context, filter model.Filter) ([]model.Author, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *AuthorService) Get(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	return s.repo.FindByID(ctx, id)
}

// Detail loads the author and their books concurrently.
func (s *AuthorService) Detail(ctx context.Context, id uuid.UUID) (*AuthorDetail, error) {
	var (
		author *model.Author
		books  []bookModel.Book
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		author, err = s.repo.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = s.bookRepo.FindAll(gctx, bookModel.Filter{AuthorID: id})
		if err != nil {
			return fmt.Errorf("list books by author: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &AuthorDetail{Author: *author, Books: books}, nil
}

func (s *AuthorService) Create(ctx context.Context, f *model.AuthorForm) (*model.Author, error) {
	f.Sanitize()
	if errs := f.Validate(); len(errs) > 0 {
		return nil, errs
	}

	var a model.Author
	f.Apply(&a)

	created, err := s.repo.Create(ctx, &a)
	if err != nil {
		return nil, err
	}

	log.Info().Str("author_id", created.ID.String()).Msg("author created")
	s.notifier.CatalogChanged(ctx)
	return created, nil
}

func (s *AuthorService) Update(ctx context.Context, id uuid.UUID, f *model.AuthorForm) (*model.Author, error) {
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
	if err != nil {
		return nil, err
	}

	log.Info().Str("author_id", id.String()).Msg("author updated")
	s.notifier.CatalogChanged(ctx)
	return updated, nil
}

func (s *AuthorService) Delete(ctx context.Context, id uuid.UUID) (*AuthorDetail, error) {
	detail, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(detail.Books) > 0 {
		return detail, model.ErrAuthorHasBooks
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return detail, err
	}

	log.Info().Str("author_id", id.String()).Msg("author deleted")
	s.notifier.CatalogChanged(ctx)
	return detail, nil
}
