package domain

import (
	"context"
	"strings"
)

//go:generate mockgen -destination mocks/mock_search_repository.go -package mocks github.com/relasjon/crm/internal/domain SearchRepository
//go:generate mockgen -destination mocks/mock_search_service.go -package mocks github.com/relasjon/crm/internal/domain SearchService

// SearchKind tags a search hit with the entity it came from
type SearchKind string

const (
	SearchKindCustomer      SearchKind = "customer"
	SearchKindContact       SearchKind = "contact"
	SearchKindCommunication SearchKind = "communication"
	SearchKindDeal          SearchKind = "deal"
)

// SearchResult is one hit of a global search
type SearchResult struct {
	Type       SearchKind `json:"type"`
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Subtitle   *string    `json:"subtitle,omitempty"`
	CustomerID string     `json:"customer_id"`
}

const (
	MinSearchLength      = 2
	SearchLimitPerEntity = 10
)

// NormalizeSearchTerm trims term and reports whether it is long enough to query
func NormalizeSearchTerm(term string) (string, bool) {
	term = strings.TrimSpace(term)
	return term, len([]rune(term)) >= MinSearchLength
}

// SearchRepository runs one bounded pattern match per entity kind
type SearchRepository interface {
	SearchCustomers(ctx context.Context, identity *Identity, term string, limit int) ([]SearchResult, error)
	SearchContacts(ctx context.Context, identity *Identity, term string, limit int) ([]SearchResult, error)
	SearchCommunications(ctx context.Context, identity *Identity, term string, limit int) ([]SearchResult, error)
	SearchDeals(ctx context.Context, identity *Identity, term string, limit int) ([]SearchResult, error)
}

type SearchService interface {
	Search(ctx context.Context, term string) Result[[]SearchResult]
}
