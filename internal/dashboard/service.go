package dashboard

import (
	"context"
	"fmt"

	"github.com/nomad-tales/nomadtales/internal/api"
	"github.com/nomad-tales/nomadtales/internal/models"
)

// loadPageSize is the page size used when draining the article list. The
// dashboard aggregates over every article, not just the first screen.
const loadPageSize = 100

// Fetcher is the slice of the API client the dashboard needs.
type Fetcher interface {
	ListArticles(ctx context.Context, q api.ArticleQuery) ([]models.Article, api.Pagination, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// Service loads the records behind the dashboard and computes Stats.
type Service struct {
	fetcher Fetcher
}

func NewService(f Fetcher) *Service {
	return &Service{fetcher: f}
}

// Load fetches all articles and all categories, then aggregates them.
// If either fetch fails the whole load fails; no partial stats are
// returned. The raw article list is returned alongside the stats because
// the CSV export flattens the same records.
func (s *Service) Load(ctx context.Context) (Stats, []models.Article, error) {
	var all []models.Article
	page := 1
	for {
		articles, pg, err := s.fetcher.ListArticles(ctx, api.ArticleQuery{Page: page, PageSize: loadPageSize})
		if err != nil {
			return Stats{}, nil, fmt.Errorf("load articles: %w", err)
		}
		all = append(all, articles...)
		if pg.PageCount == 0 || page >= pg.PageCount {
			break
		}
		page++
	}

	categories, err := s.fetcher.ListCategories(ctx)
	if err != nil {
		return Stats{}, nil, fmt.Errorf("load categories: %w", err)
	}

	return Compute(all, categories), all, nil
}
