// Package source adapts upstream collaborator output (extracted bill text
// and places lookup results) into domain models.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/billscout/internal/model"
	"github.com/Veraticus/billscout/internal/service"
)

var (
	_ service.PlacesLookup  = (*PlacesFile)(nil)
	_ service.BillExtractor = (*BillFile)(nil)
)

// PlacesFile reads candidates from a JSON file written by a places lookup.
type PlacesFile struct {
	path string
}

// NewPlacesFile creates a places source for the given file.
func NewPlacesFile(path string) *PlacesFile {
	return &PlacesFile{path: path}
}

// Lookup implements service.PlacesLookup.
func (p *PlacesFile) Lookup(ctx context.Context) ([]model.PlaceCandidate, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open places file: %w", err)
	}
	defer f.Close()

	return ParsePlaces(ctx, f)
}

// rawPlace accepts both the native candidate shape and the field names
// used by common places APIs.
type rawPlace struct {
	Rating           *float64        `json:"rating"`
	ReviewCount      *int            `json:"review_count"`
	UserRatingsTotal *int            `json:"user_ratings_total"`
	PriceLevel       *int            `json:"price_level"`
	OpenNow          *bool           `json:"open_now"`
	OpeningHours     *struct {
		OpenNow *bool `json:"open_now"`
	} `json:"opening_hours"`
	Location *model.Location `json:"location"`
	Geometry *struct {
		Location *struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	ID      string         `json:"id"`
	PlaceID string         `json:"place_id"`
	Name    string         `json:"name"`
	Type    string         `json:"type"`
	Types   []string       `json:"types"`
	Reviews []model.Review `json:"reviews"`
}

// ParsePlaces decodes a JSON array of places, or an object with a
// "places" or "results" array. Places without a location are dropped.
func ParsePlaces(ctx context.Context, r io.Reader) ([]model.PlaceCandidate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read places: %w", err)
	}

	raws, err := decodePlaceList(data)
	if err != nil {
		return nil, err
	}

	candidates := make([]model.PlaceCandidate, 0, len(raws))
	for i, raw := range raws {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c, ok := raw.toCandidate()
		if !ok {
			slog.Warn("Skipping place without location", "index", i, "name", raw.Name)
			continue
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

func decodePlaceList(data []byte) ([]rawPlace, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var raws []rawPlace
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("failed to decode places: %w", err)
		}
		return raws, nil
	}

	var wrapper struct {
		Places  []rawPlace `json:"places"`
		Results []rawPlace `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode places: %w", err)
	}
	if wrapper.Places != nil {
		return wrapper.Places, nil
	}
	return wrapper.Results, nil
}

func (r rawPlace) toCandidate() (model.PlaceCandidate, bool) {
	c := model.PlaceCandidate{
		ID:         r.ID,
		Name:       r.Name,
		Type:       r.Type,
		Rating:     r.Rating,
		PriceLevel: r.PriceLevel,
		OpenNow:    r.OpenNow,
		Reviews:    r.Reviews,
	}

	if c.ID == "" {
		c.ID = r.PlaceID
	}
	if c.Type == "" && len(r.Types) > 0 {
		c.Type = r.Types[0]
	}

	switch {
	case r.ReviewCount != nil:
		c.ReviewCount = *r.ReviewCount
	case r.UserRatingsTotal != nil:
		c.ReviewCount = *r.UserRatingsTotal
	}

	if c.OpenNow == nil && r.OpeningHours != nil {
		c.OpenNow = r.OpeningHours.OpenNow
	}

	switch {
	case r.Location != nil:
		c.Location = *r.Location
	case r.Geometry != nil && r.Geometry.Location != nil:
		c.Location = model.Location{Lat: r.Geometry.Location.Lat, Lon: r.Geometry.Location.Lng}
	default:
		return model.PlaceCandidate{}, false
	}

	return c, true
}
