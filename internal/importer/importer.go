package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

type ItemWriter interface {
	Upsert(ctx context.Context, item domain.Item) (*domain.Item, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates items.
type CSVImporter struct {
	reader   *csv.Reader
	itemRepo ItemWriter
}

func NewCSVImporter(r io.Reader, repo ItemWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		itemRepo: repo,
	}
}

// Run parses CSV rows and upserts items keyed by name.
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

		name := pick(record, index, "name")
		if name == "" {
			continue
		}
		cents, _ := strconv.ParseInt(pick(record, index, "price_cents"), 10, 64)
		if cents <= 0 {
			return imported, fmt.Errorf("invalid price for item %q", name)
		}

		item := domain.Item{
			Name:        name,
			PriceCents:  cents,
			Image:       pick(record, index, "image"),
			Description: pick(record, index, "description"),
		}
		if _, err := i.itemRepo.Upsert(ctx, item); err != nil {
			return imported, fmt.Errorf("upsert item %q: %w", name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[h] = i
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
