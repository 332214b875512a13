package product

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"mobile-pos/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*domain.Product, error) {
	const q = `
SELECT prd_id, TRIM(code), name, price
FROM product_master
WHERE code = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, code).Scan(&p.ID, &p.Code, &p.Name, &p.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get code=%s not found", code)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get code=%s error=%v", code, err)
		return nil, err
	}
	r.logger.Printf("product repo: get code=%s prd_id=%d", code, p.ID)
	return &p, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT prd_id, TRIM(code), name, price
FROM product_master
ORDER BY prd_id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Price); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("product repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM product_master`).Scan(&n); err != nil {
		r.logger.Printf("product repo: count error=%v", err)
		return 0, err
	}
	return n, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO product_master (code, name, price)
VALUES ($1, $2, $3)
ON CONFLICT (code) DO UPDATE SET
    name = EXCLUDED.name,
    price = EXCLUDED.price
RETURNING prd_id
`
	res := domain.Product{
		Code:  strings.TrimSpace(p.Code),
		Name:  p.Name,
		Price: p.Price,
	}
	if err := r.pool.QueryRow(ctx, q, res.Code, res.Name, res.Price).Scan(&res.ID); err != nil {
		r.logger.Printf("product repo: upsert code=%s error=%v", res.Code, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted code=%s prd_id=%d", res.Code, res.ID)
	return &res, nil
}
