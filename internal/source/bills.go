package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/billscout/internal/model"
)

// BillFile reads extracted bill fields from a JSON array file.
type BillFile struct {
	path string
}

// NewBillFile creates a bill source for the given file.
func NewBillFile(path string) *BillFile {
	return &BillFile{path: path}
}

// Extract implements service.BillExtractor.
func (b *BillFile) Extract(ctx context.Context) ([]model.BillInput, error) {
	f, err := os.Open(b.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bills file: %w", err)
	}
	defer f.Close()

	return ParseBills(ctx, f)
}

// ParseBills decodes a JSON array of bills.
func ParseBills(ctx context.Context, r io.Reader) ([]model.BillInput, error) {
	var bills []model.BillInput
	if err := json.NewDecoder(r).Decode(&bills); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode bills: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return bills, nil
}
