// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/billscout/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Bill history
	SaveBill(ctx context.Context, bill *model.BillRecord) error
	SaveBills(ctx context.Context, bills []model.BillRecord) error
	GetBill(ctx context.Context, id int64) (*model.BillRecord, error)
	ListBills(ctx context.Context, limit int) ([]model.BillRecord, error)
	CountBillsByCategory(ctx context.Context) (map[string]int, error)

	// Ranking history
	SavePlaceSnapshot(ctx context.Context, snapshot *model.PlaceSnapshot) error
	GetPlaceSnapshot(ctx context.Context, id int64) (*model.PlaceSnapshot, error)
	ListPlaceSnapshots(ctx context.Context, limit int) ([]model.PlaceSnapshot, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// BillExtractor supplies the text fields an upstream extraction step
// pulled out of uploaded bills.
type BillExtractor interface {
	Extract(ctx context.Context) ([]model.BillInput, error)
}

// PlacesLookup supplies candidate vendors or places for ranking.
// Implementations drop candidates they could not enrich.
type PlacesLookup interface {
	Lookup(ctx context.Context) ([]model.PlaceCandidate, error)
}
