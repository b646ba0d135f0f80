package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	authorModel "library-catalog/internal/domains/author/model"
	authorRepo "library-catalog/internal/domains/author/repository"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
	instanceModel "library-catalog/internal/domains/bookinstance/model"
	instanceRepo "library-catalog/internal/domains/bookinstance/repository"
	genreModel "library-catalog/internal/domains/genre/model"
	genreRepo "library-catalog/internal/domains/genre/repository"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/form"
)

type BookService struct {
	repo         repository.RepositoryInterface
	authorRepo   authorRepo.RepositoryInterface
	genreRepo    genreRepo.RepositoryInterface
	instanceRepo instanceRepo.RepositoryInterface
	notifier     shared.ChangeNotifier
}

func NewBookService(
	repo repository.RepositoryInterface,
	authorRepo authorRepo.RepositoryInterface,
	genreRepo genreRepo.RepositoryInterface,
	instanceRepo instanceRepo.RepositoryInterface,
	notifier shared.ChangeNotifier,
) ServiceInterface {
	return &BookService{
		repo:         repo,
		authorRepo:   authorRepo,
		genreRepo:    genreRepo,
		instanceRepo: instanceRepo,
		notifier:     notifier,
	}
}

// ========================================
// READ
// ========================================

func (s *BookService) List(ctx context.Context, filter model.Filter) ([]BookView, error) {
	books, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, books)
}

func (s *BookService) Get(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BookService) Detail(ctx context.Context, id uuid.UUID) (*BookDetail, error) {
	var (
		book      *model.Book
		instances []instanceModel.BookInstance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		book, err = s.repo.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		instances, err = s.instanceRepo.FindAll(gctx, instanceModel.Filter{BookID: id})
		if err != nil {
			return fmt.Errorf("list copies of book: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	views, err := s.populate(ctx, []model.Book{*book})
	if err != nil {
		return nil, err
	}
	return &BookDetail{BookView: views[0], Instances: instances}, nil
}

func (s *BookService) FormOptions(ctx context.Context) (*FormOptions, error) {
	opts := &FormOptions{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		opts.Authors, err = s.authorRepo.FindAll(gctx, authorModel.Filter{})
		return err
	})
	g.Go(func() error {
		var err error
		opts.Genres, err = s.genreRepo.FindAll(gctx, genreModel.Filter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load book form options: %w", err)
	}
	return opts, nil
}

// populate resolves authors and genres with one batch lookup per type.
func (s *BookService) populate(ctx context.Context, books []model.Book) ([]BookView, error) {
	authorIDs := lo.Uniq(lo.Map(books, func(b model.Book, _ int) uuid.UUID { return b.AuthorID }))
	genreIDs := lo.Uniq(lo.FlatMap(books, func(b model.Book, _ int) []uuid.UUID { return b.GenreIDs }))

	var (
		authors []authorModel.Author
		genres  []genreModel.Genre
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authors, err = s.authorRepo.FindByIDs(gctx, authorIDs)
		return err
	})
	g.Go(func() error {
		var err error
		genres, err = s.genreRepo.FindByIDs(gctx, genreIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("populate books: %w", err)
	}

	authorsByID := lo.KeyBy(authors, func(a authorModel.Author) uuid.UUID { return a.ID })
	genresByID := lo.KeyBy(genres, func(g genreModel.Genre) uuid.UUID { return g.ID })

	return lo.Map(books, func(b model.Book, _ int) BookView {
		view := BookView{Book: b}
		if a, ok := authorsByID[b.AuthorID]; ok {
			view.Author = &a
		}
		view.Genres = lo.FilterMap(b.GenreIDs, func(id uuid.UUID, _ int) (genreModel.Genre, bool) {
			g, ok := genresByID[id]
			return g, ok
		})
		sort.Slice(view.Genres, func(i, j int) bool { return view.Genres[i].Name < view.Genres[j].Name })
		return view
	}), nil
}

// ========================================
// WRITE
// ========================================

func (s *BookService) Create(ctx context.Context, f *model.BookForm) (*model.Book, error) {
	f.Sanitize()
	if errs := f.Validate(); len(errs) > 0 {
		return nil, errs
	}

	var book model.Book
	f.Apply(&book)
	if err := s.checkReferences(ctx, &book); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &book)
	if err != nil {
		return nil, referenceFormError(err)
	}

	log.Info().Str("book_id", created.ID.String()).Str("title", created.Title).Msg("book created")
	s.notifier.CatalogChanged(ctx)
	return created, nil
}

func (s *BookService) Update(ctx context.Context, id uuid.UUID, f *model.BookForm) (*model.Book, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	f.Sanitize()
	if errs := f.Validate(); len(errs) > 0 {
		return nil, errs
	}

	f.Apply(existing)
	if err := s.checkReferences(ctx, existing); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, referenceFormError(err)
	}

	log.Info().Str("book_id", id.String()).Msg("book updated")
	s.notifier.CatalogChanged(ctx)
	return updated, nil
}

func (s *BookService) Delete(ctx context.Context, id uuid.UUID) (*BookDetail, error) {
	detail, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(detail.Instances) > 0 {
		return detail, model.ErrBookHasInstances
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return detail, err
	}

	log.Info().Str("book_id", id.String()).Msg("book deleted")
	s.notifier.CatalogChanged(ctx)
	return detail, nil
}

// checkReferences reports missing authors or genres as field errors.
func (s *BookService) checkReferences(ctx context.Context, b *model.Book) error {
	var errs form.Errors

	if _, err := s.authorRepo.FindByID(ctx, b.AuthorID); err != nil {
		if !errors.Is(err, authorModel.ErrAuthorNotFound) {
			return err
		}
		errs = append(errs, form.FieldError{Field: "author", Message: "Author does not exist"})
	}

	if len(b.GenreIDs) > 0 {
		found, err := s.genreRepo.FindByIDs(ctx, b.GenreIDs)
		if err != nil {
			return err
		}
		if len(found) != len(b.GenreIDs) {
			errs = append(errs, form.FieldError{Field: "genre", Message: "Genre does not exist"})
		}
	}

	return errs.OrNil()
}

func referenceFormError(err error) error {
	if errors.Is(err, model.ErrUnknownReference) {
		return form.Errors{{Field: "author", Message: "Author or genre no longer exists"}}
	}
	return err
}
