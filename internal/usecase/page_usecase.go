package usecase

import (
	"context"

	"github.com/exploretech/tweet-classifier/internal/domain/entity"
	"github.com/exploretech/tweet-classifier/internal/domain/repository"
)

// PageUsecase serves the static content
type PageUsecase interface {
	Menu(ctx context.Context) []entity.MenuItem
	Get(ctx context.Context, slug string) (*entity.Page, error)
}

type pageUsecase struct {
	pages repository.PageRepository
}

// NewPageUsecase creates a new page usecase
func NewPageUsecase(pages repository.PageRepository) PageUsecase {
	return &pageUsecase{pages: pages}
}

func (u *pageUsecase) Menu(_ context.Context) []entity.MenuItem {
	return u.pages.Menu()
}

func (u *pageUsecase) Get(_ context.Context, slug string) (*entity.Page, error) {
	page := u.pages.Get(slug)
	if page == nil {
		return nil, ErrPageNotFound
	}
	return page, nil
}
