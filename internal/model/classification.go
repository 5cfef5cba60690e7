// Package model defines the core domain models used throughout the application.
package model

import "time"

// CategoryMatch is the result of classifying one expense description.
type CategoryMatch struct {
	Category        string   `json:"category"`
	Subcategory     string   `json:"subcategory,omitempty"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
	Confidence      float64  `json:"confidence"`
}

// IsOther reports whether no rule matched.
func (m CategoryMatch) IsOther() bool {
	return m.Category == CategoryOther
}

// BillInput is the free text an extraction step produced for one bill.
type BillInput struct {
	Text        string `json:"text"`
	CompanyName string `json:"company_name,omitempty"`
	Description string `json:"description,omitempty"`
}

// BillRecord is a classified bill as persisted in history.
type BillRecord struct {
	ClassifiedAt time.Time
	BillInput
	Tags  []string
	Match CategoryMatch
	ID    int64
}
