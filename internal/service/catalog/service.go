package catalog

import (
	"context"
	"errors"

	"mobile-pos/internal/domain"
)

// NotRegisteredMessage is returned when a scanned code has no master entry.
// A miss is a normal outcome of the lookup, not an error.
const NotRegisteredMessage = "商品がマスタ未登録です"

type Service struct {
	repo productRepo
}

type productRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

func New(repo productRepo) *Service {
	return &Service{repo: repo}
}

// LookupResult carries exactly one of Product or Message.
type LookupResult struct {
	Product *domain.Product
	Message string
}

// Lookup resolves a product code against the master's unique code index.
func (s *Service) Lookup(ctx context.Context, code string) (LookupResult, error) {
	p, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return LookupResult{Message: NotRegisteredMessage}, nil
		}
		return LookupResult{}, err
	}
	return LookupResult{Product: p}, nil
}

// List returns the full catalog, ordered by product id.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}
