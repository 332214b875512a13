package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Code  string
	Name  string
	Price int64
}

// Apply inserts the fixed sample catalog used for manual testing. It is
// idempotent via a row-count guard: if the product master already has rows,
// nothing is inserted.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	var count int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM product_master`).Scan(&count); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	products := []productSeed{
		{Code: "12345678901", Name: "おーいお茶", Price: 150},
		{Code: "12345678902", Name: "ソフラン", Price: 300},
		{Code: "12345678903", Name: "福島産ほうれん草", Price: 188},
		{Code: "12345678904", Name: "タイガー歯ブラシ青", Price: 200},
		{Code: "12345678905", Name: "四ツ谷サイダー", Price: 160},
	}

	for _, p := range products {
		if err := insertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("insert product %s: %w", p.Code, err)
		}
	}

	return nil
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO product_master (code, name, price)
VALUES ($1, $2, $3)
`
	_, err := pool.Exec(ctx, q, p.Code, p.Name, p.Price)
	return err
}
