package source

import (
	"context"

	"github.com/Veraticus/billscout/internal/model"
)

// MockPlacesLookup is a mock implementation of service.PlacesLookup for testing.
type MockPlacesLookup struct {
	LookupFn    func(ctx context.Context) ([]model.PlaceCandidate, error)
	Candidates  []model.PlaceCandidate
	LookupCalls int
}

// Lookup implements service.PlacesLookup.
func (m *MockPlacesLookup) Lookup(ctx context.Context) ([]model.PlaceCandidate, error) {
	m.LookupCalls++
	if m.LookupFn != nil {
		return m.LookupFn(ctx)
	}
	return m.Candidates, nil
}

// MockBillExtractor is a mock implementation of service.BillExtractor for testing.
type MockBillExtractor struct {
	ExtractFn    func(ctx context.Context) ([]model.BillInput, error)
	Bills        []model.BillInput
	ExtractCalls int
}

// Extract implements service.BillExtractor.
func (m *MockBillExtractor) Extract(ctx context.Context) ([]model.BillInput, error) {
	m.ExtractCalls++
	if m.ExtractFn != nil {
		return m.ExtractFn(ctx)
	}
	return m.Bills, nil
}
