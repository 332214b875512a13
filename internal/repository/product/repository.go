package product

import (
	"context"

	"mobile-pos/internal/domain"
)

type Repository interface {
	GetByCode(ctx context.Context, code string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Count(ctx context.Context) (int64, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}
