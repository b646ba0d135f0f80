package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	bookModel "library-catalog/internal/domains/book/model"
	bookRepo "library-catalog/internal/domains/book/repository"
	"library-catalog/internal/domains/bookinstance/model"
	"library-catalog/internal/domains/bookinstance/repository"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/form"
)

type BookInstanceService struct {
	repo     repository.RepositoryInterface
	bookRepo bookRepo.RepositoryInterface
	notifier shared.ChangeNotifier
}

func NewBookInstanceService(
	repo repository.RepositoryInterface,
	bookRepo bookRepo.RepositoryInterface,
	notifier shared.ChangeNotifier,
) ServiceInterface {
	return &BookInstanceService{repo: repo, bookRepo: bookRepo, notifier: notifier}
}

func (s *BookInstanceService) List(ctx context.Context, filter model.Filter) ([]InstanceView, error) {
	instances, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, instances)
}

func (s *BookInstanceService) Get(ctx context.Context, id uuid.UUID) (*model.BookInstance, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BookInstanceService) Detail(ctx context.Context, id uuid.UUID) (*InstanceView, error) {
	bi, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.populate(ctx, []model.BookInstance{*bi})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *BookInstanceService) BookOptions(ctx context.Context) ([]bookModel.Book, error) {
	return s.bookRepo.FindAll(ctx, bookModel.Filter{Sort: bookModel.SortTitle})
}

// populate resolves every referenced book in one lookup.
func (s *BookInstanceService) populate(ctx context.Context, instances []model.BookInstance) ([]InstanceView, error) {
	bookIDs := lo.Uniq(lo.Map(instances, func(bi model.BookInstance, _ int) uuid.UUID { return bi.BookID }))
	books, err := s.bookRepo.FindByIDs(ctx, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("populate book copies: %w", err)
	}
	byID := lo.KeyBy(books, func(b bookModel.Book) uuid.UUID { return b.ID })

	return lo.Map(instances, func(bi model.BookInstance, _ int) InstanceView {
		view := InstanceView{BookInstance: bi}
		if b, ok := byID[bi.BookID]; ok {
			view.Book = &b
		}
		return view
	}), nil
}

func (s *BookInstanceService) Create(ctx context.Context, f *model.BookInstanceForm) (*model.BookInstance, error) {
	f.Sanitize()
	if errs := f.Validate(); len(errs) > 0 {
		return nil, errs
	}

	var bi model.BookInstance
	f.Apply(&bi)
	if err := s.checkBook(ctx, bi.BookID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &bi)
	if err != nil {
		return nil, bookFormError(err)
	}

	log.Info().
		Str("instance_id", created.ID.String()).
		Str("book_id", created.BookID.String()).
		Str("status", string(created.Status)).
		Msg("book copy created")
	s.notifier.CatalogChanged(ctx)
	return created, nil
}

func (s *BookInstanceService) Update(ctx context.Context, id uuid.UUID, f *model.BookInstanceForm) (*model.BookInstance, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	f.Sanitize()
	if errs := f.Validate(); len(errs) > 0 {
		return nil, errs
	}

	f.Apply(existing)
	if err := s.checkBook(ctx, existing.BookID); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, bookFormError(err)
	}

	log.Info().Str("instance_id", id.String()).Str("status", string(updated.Status)).Msg("book copy updated")
	s.notifier.CatalogChanged(ctx)
	return updated, nil
}

// Delete always succeeds for an existing copy; nothing references copies.
func (s *BookInstanceService) Delete(ctx context.Context, id uuid.UUID) (*InstanceView, error) {
	view, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return view, err
	}

	log.Info().Str("instance_id", id.String()).Msg("book copy deleted")
	s.notifier.CatalogChanged(ctx)
	return view, nil
}

func (s *BookInstanceService) checkBook(ctx context.Context, bookID uuid.UUID) error {
	_, err := s.bookRepo.FindByID(ctx, bookID)
	if errors.Is(err, bookModel.ErrBookNotFound) {
		return form.Errors{{Field: "book", Message: "Book does not exist"}}
	}
	return err
}

func bookFormError(err error) error {
	if errors.Is(err, model.ErrUnknownBook) {
		return form.Errors{{Field: "book", Message: "Book does not exist"}}
	}
	return err
}
