package model

import "time"

// Location is a latitude/longitude pair in degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Review is a single review snippet with the rating its author gave.
type Review struct {
	Text   string  `json:"text"`
	Rating float64 `json:"rating"`
}

// PlaceCandidate is a vendor or place supplied by a places lookup.
// Pointer fields are optional; nil means the lookup did not report them.
type PlaceCandidate struct {
	Rating      *float64 `json:"rating,omitempty"`
	PriceLevel  *int     `json:"price_level,omitempty"`
	OpenNow     *bool    `json:"open_now,omitempty"`
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type,omitempty"`
	Reviews     []Review `json:"reviews,omitempty"`
	Location    Location `json:"location"`
	ReviewCount int      `json:"review_count"`
}

// ScoredPlace is a candidate annotated with distance and scores.
type ScoredPlace struct {
	PlaceCandidate
	DistanceKm   float64 `json:"distance_km"`
	PriceScore   int     `json:"price_score"`
	QualityScore int     `json:"quality_score"`
	ServiceScore int     `json:"service_score"`
}

// PlaceSnapshot is one persisted ranking run.
type PlaceSnapshot struct {
	ScoredAt time.Time
	Query    string
	Places   []ScoredPlace
	ID       int64
	RefLat   float64
	RefLon   float64
}
