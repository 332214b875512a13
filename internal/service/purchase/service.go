package purchase

import (
	"context"
	"fmt"
	"strings"

	"mobile-pos/internal/domain"
	txrepo "mobile-pos/internal/repository/transaction"
)

// Defaults are the operator identifiers applied when a request leaves them
// blank. They come from configuration, not from the data model.
type Defaults struct {
	EmployeeCode string
	StoreCode    string
	POSNo        string
}

type Service struct {
	repo     transactionRepo
	defaults Defaults
}

type transactionRepo interface {
	Record(ctx context.Context, in txrepo.RecordInput) (*domain.Transaction, error)
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Transaction, error)
}

func New(repo txrepo.Repository, defaults Defaults) *Service {
	return &Service{repo: repo, defaults: defaults}
}

// Item is one purchased unit as asserted by the caller. Code, name and price
// are recorded verbatim; the catalog is never consulted here.
type Item struct {
	ProductID int64
	Code      string
	Name      string
	Price     int64
}

type RecordInput struct {
	EmployeeCode string
	StoreCode    string
	POSNo        string
	Items        []Item
}

// Record persists one purchase event. An empty item list is valid and yields
// a total of zero. All writes happen in a single storage transaction; on any
// failure nothing is persisted.
func (s *Service) Record(ctx context.Context, in RecordInput) (*domain.Transaction, error) {
	lines := make([]domain.TransactionLine, 0, len(in.Items))
	for i, item := range in.Items {
		if item.Price < 0 {
			return nil, fmt.Errorf("item %d: price must not be negative", i+1)
		}
		lines = append(lines, domain.TransactionLine{
			ProductID:    item.ProductID,
			ProductCode:  item.Code,
			ProductName:  item.Name,
			ProductPrice: item.Price,
		})
	}

	recorded, err := s.repo.Record(ctx, txrepo.RecordInput{
		EmployeeCode: orDefault(in.EmployeeCode, s.defaults.EmployeeCode),
		StoreCode:    orDefault(in.StoreCode, s.defaults.StoreCode),
		POSNo:        orDefault(in.POSNo, s.defaults.POSNo),
		Items:        lines,
	})
	if err != nil {
		return nil, fmt.Errorf("record purchase: %w", err)
	}
	return recorded, nil
}

// Get returns one recorded transaction with its line items.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Transaction, error) {
	return s.repo.GetByID(ctx, id)
}

// ListRecent returns the latest transaction headers, newest first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]domain.Transaction, error) {
	return s.repo.ListRecent(ctx, limit)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
