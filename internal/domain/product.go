package domain

// Product is one row of the product master. Entries are read-only from the
// API's point of view; they are written by the seeder or the importer only.
type Product struct {
	ID    int64  `json:"prd_id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}
