package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mobile-pos/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

// CSVImporter reads product master exports (code,name,price columns) and
// inserts/updates catalog entries.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts one product per row, keyed by code.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		p, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if p == nil {
			continue
		}

		if _, err := i.productRepo.Upsert(ctx, *p); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", p.Code, err)
		}
		imported++
	}

	return imported, nil
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	code := pick(record, index, "code")
	name := pick(record, index, "name")
	priceStr := pick(record, index, "price")

	if code == "" && name == "" && priceStr == "" {
		return nil, nil
	}
	if code == "" || name == "" || priceStr == "" {
		return nil, fmt.Errorf("invalid product row (missing required fields) for code %q", code)
	}
	if len(code) > 13 {
		return nil, fmt.Errorf("invalid code %q: longer than 13 characters", code)
	}

	price, err := strconv.ParseInt(priceStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price for code %q: %w", code, err)
	}
	if price < 0 {
		return nil, fmt.Errorf("invalid price for code %q: must not be negative", code)
	}

	return &domain.Product{
		Code:  code,
		Name:  name,
		Price: price,
	}, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
