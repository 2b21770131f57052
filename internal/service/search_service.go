package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/relasjon/crm/internal/domain"
)

type SearchService struct {
	base
	repo domain.SearchRepository
}

func NewSearchService(repo domain.SearchRepository, deps Deps) *SearchService {
	return &SearchService{base: newBase("SearchService", deps), repo: repo}
}

// Search matches term against customers, contacts, communications and deals.
// Terms shorter than two characters return no results without touching storage.
// Hits are grouped by kind in that order, at most ten per kind.
func (s *SearchService) Search(ctx context.Context, term string) domain.Result[[]domain.SearchResult] {
	return run(ctx, &s.base, "Search", "record", func(ctx context.Context, identity *domain.Identity) ([]domain.SearchResult, error) {
		term, ok := domain.NormalizeSearchTerm(term)
		if !ok {
			return []domain.SearchResult{}, nil
		}

		queries := []func(context.Context, *domain.Identity, string, int) ([]domain.SearchResult, error){
			s.repo.SearchCustomers,
			s.repo.SearchContacts,
			s.repo.SearchCommunications,
			s.repo.SearchDeals,
		}
		hits := make([][]domain.SearchResult, len(queries))

		g, gctx := errgroup.WithContext(ctx)
		for i, query := range queries {
			i, query := i, query
			g.Go(func() error {
				res, err := query(gctx, identity, term, domain.SearchLimitPerEntity)
				if err != nil {
					return err
				}
				hits[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		results := []domain.SearchResult{}
		for _, h := range hits {
			results = append(results, h...)
		}
		return results, nil
	})
}
