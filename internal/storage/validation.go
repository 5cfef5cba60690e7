package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/billscout/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrEmptySlice      = errors.New("slice cannot be empty")
	ErrInvalidBill     = errors.New("invalid bill")
	ErrInvalidSnapshot = errors.New("invalid place snapshot")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateBill validates a bill record before it is stored.
func validateBill(bill *model.BillRecord) error {
	if bill == nil {
		return fmt.Errorf("%w: bill", ErrNilParameter)
	}
	if bill.Match.Category == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidBill)
	}
	if bill.Match.Confidence < 0 || bill.Match.Confidence > 1 {
		return fmt.Errorf("%w: confidence %.2f outside [0, 1]", ErrInvalidBill, bill.Match.Confidence)
	}
	return nil
}

// validateSnapshot validates a place snapshot before it is stored.
func validateSnapshot(snapshot *model.PlaceSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: snapshot", ErrNilParameter)
	}
	if len(snapshot.Places) == 0 {
		return fmt.Errorf("%w: places", ErrEmptySlice)
	}
	for i, p := range snapshot.Places {
		if p.DistanceKm < 0 {
			return fmt.Errorf("%w: place %d has negative distance", ErrInvalidSnapshot, i)
		}
		for _, s := range []int{p.PriceScore, p.QualityScore, p.ServiceScore} {
			if s < 0 || s > 100 {
				return fmt.Errorf("%w: place %d has score %d outside [0, 100]", ErrInvalidSnapshot, i, s)
			}
		}
	}
	return nil
}
