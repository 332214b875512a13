package domain

import "time"

// Transaction is one purchase event header. It is append-only: created and
// finalized in a single unit of work, never mutated afterwards. Lines are
// loaded on demand by the repository; a line holds only the parent id, not
// an object reference back to the header.
type Transaction struct {
	ID           int64             `json:"trd_id"`
	RecordedAt   time.Time         `json:"datetime"`
	EmployeeCode string            `json:"emp_cd"`
	StoreCode    string            `json:"store_cd"`
	POSNo        string            `json:"pos_no"`
	TotalAmount  int64             `json:"total_amt"`
	Lines        []TransactionLine `json:"details,omitempty"`
}

// TransactionLine is one purchased unit within a transaction. Product code,
// name and price are point-in-time snapshots copied from the request, so the
// recorded price stays what the caller asserted at sale time even if the
// catalog changes later.
type TransactionLine struct {
	TransactionID int64  `json:"trd_id"`
	LineNo        int    `json:"dtl_id"`
	ProductID     int64  `json:"prd_id"`
	ProductCode   string `json:"prd_code"`
	ProductName   string `json:"prd_name"`
	ProductPrice  int64  `json:"prd_price"`
}
