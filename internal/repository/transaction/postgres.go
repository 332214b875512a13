package transaction

import (
	"context"
	"errors"
	"io"
	"log"

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

func (r *postgresRepo) Record(ctx context.Context, in RecordInput) (*domain.Transaction, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Header first with a provisional total of 0; the generated id is
	// needed before the lines can be written.
	const headerQ = `
INSERT INTO transactions (emp_cd, store_cd, pos_no, total_amt)
VALUES ($1, $2, $3, 0)
RETURNING trd_id, recorded_at
`
	result := domain.Transaction{
		EmployeeCode: in.EmployeeCode,
		StoreCode:    in.StoreCode,
		POSNo:        in.POSNo,
	}
	if err := tx.QueryRow(ctx, headerQ, in.EmployeeCode, in.StoreCode, in.POSNo).Scan(&result.ID, &result.RecordedAt); err != nil {
		r.logger.Printf("transaction repo: insert header error=%v", err)
		return nil, err
	}

	const lineQ = `
INSERT INTO transaction_details (trd_id, dtl_id, prd_id, prd_code, prd_name, prd_price)
VALUES ($1, $2, $3, $4, $5, $6)
`
	var total int64
	for i, item := range in.Items {
		line := domain.TransactionLine{
			TransactionID: result.ID,
			LineNo:        i + 1,
			ProductID:     item.ProductID,
			ProductCode:   item.ProductCode,
			ProductName:   item.ProductName,
			ProductPrice:  item.ProductPrice,
		}
		if _, err := tx.Exec(ctx, lineQ, line.TransactionID, line.LineNo, line.ProductID, line.ProductCode, line.ProductName, line.ProductPrice); err != nil {
			r.logger.Printf("transaction repo: insert line trd_id=%d dtl_id=%d error=%v", line.TransactionID, line.LineNo, err)
			return nil, err
		}
		total += line.ProductPrice
		result.Lines = append(result.Lines, line)
	}

	const totalQ = `
UPDATE transactions
SET total_amt = $1
WHERE trd_id = $2
`
	if _, err := tx.Exec(ctx, totalQ, total, result.ID); err != nil {
		r.logger.Printf("transaction repo: update total trd_id=%d error=%v", result.ID, err)
		return nil, err
	}
	result.TotalAmount = total

	if err := tx.Commit(ctx); err != nil {
		r.logger.Printf("transaction repo: commit trd_id=%d error=%v", result.ID, err)
		return nil, err
	}
	r.logger.Printf("transaction repo: recorded trd_id=%d lines=%d total=%d", result.ID, len(result.Lines), total)
	return &result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	const headerQ = `
SELECT trd_id, recorded_at, TRIM(emp_cd), TRIM(store_cd), TRIM(pos_no), total_amt
FROM transactions
WHERE trd_id = $1
`
	var t domain.Transaction
	err := r.pool.QueryRow(ctx, headerQ, id).Scan(&t.ID, &t.RecordedAt, &t.EmployeeCode, &t.StoreCode, &t.POSNo, &t.TotalAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("transaction repo: get trd_id=%d error=%v", id, err)
		return nil, err
	}

	const linesQ = `
SELECT trd_id, dtl_id, prd_id, TRIM(prd_code), prd_name, prd_price
FROM transaction_details
WHERE trd_id = $1
ORDER BY dtl_id ASC
`
	rows, err := r.pool.Query(ctx, linesQ, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.TransactionLine
		if err := rows.Scan(&line.TransactionID, &line.LineNo, &line.ProductID, &line.ProductCode, &line.ProductName, &line.ProductPrice); err != nil {
			return nil, err
		}
		t.Lines = append(t.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *postgresRepo) ListRecent(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT trd_id, recorded_at, TRIM(emp_cd), TRIM(store_cd), TRIM(pos_no), total_amt
FROM transactions
ORDER BY trd_id DESC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		r.logger.Printf("transaction repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.RecordedAt, &t.EmployeeCode, &t.StoreCode, &t.POSNo, &t.TotalAmount); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
