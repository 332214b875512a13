package transaction

import (
	"context"

	"mobile-pos/internal/domain"
)

// RecordInput is everything needed to persist one purchase event.
type RecordInput struct {
	EmployeeCode string
	StoreCode    string
	POSNo        string
	Items        []domain.TransactionLine
}

type Repository interface {
	// Record persists a transaction header and its line items as one unit
	// of work. On any failure nothing is persisted.
	Record(ctx context.Context, in RecordInput) (*domain.Transaction, error)
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Transaction, error)
}
