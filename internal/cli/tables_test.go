package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/Veraticus/billscout/internal/model"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreLabel(t *testing.T) {
	tests := []struct {
		expected string
		score    int
	}{
		{score: 100, expected: ExcellentValue},
		{score: 85, expected: ExcellentValue},
		{score: 84, expected: GoodValue},
		{score: 70, expected: GoodValue},
		{score: 69, expected: FairValue},
		{score: 55, expected: FairValue},
		{score: 54, expected: PoorValue},
		{score: 0, expected: PoorValue},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScoreLabel(tt.score))
		})
	}
}

func TestColorScore_NoColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	assert.Equal(t, "85", ColorScore(85))
	assert.Equal(t, "40", ColorScore(40))
}

func TestWritePlacesTable(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	places := []model.ScoredPlace{
		{
			PlaceCandidate: model.PlaceCandidate{ID: "a", Name: "Fiber Co", Type: "isp"},
			DistanceKm:     1.234,
			PriceScore:     85,
			QualityScore:   100,
			ServiceScore:   65,
		},
		{
			PlaceCandidate: model.PlaceCandidate{ID: "b", Name: "Cable Corp"},
			DistanceKm:     12,
			PriceScore:     70,
			QualityScore:   60,
			ServiceScore:   60,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePlacesTable(&buf, places))

	out := buf.String()
	assert.Contains(t, out, "Fiber Co")
	assert.Contains(t, out, "1.23 km")
	assert.Contains(t, out, "12.00 km")
	assert.Contains(t, out, "Cable Corp")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Fiber Co")), bytes.Index(buf.Bytes(), []byte("Cable Corp")))
}

func TestWriteRulesTable(t *testing.T) {
	rules := []model.CategoryRule{
		{Category: "Utilities", Keywords: []string{"electric", "water"}, Subcategories: []string{"Electric"}, BaseConfidence: 0.9},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRulesTable(&buf, rules))

	out := buf.String()
	assert.Contains(t, out, "Utilities")
	assert.Contains(t, out, "0.90")
	assert.Contains(t, out, "electric, water")
}

func TestWriteHistoryTables(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	var bills bytes.Buffer
	require.NoError(t, WriteBillsTable(&bills, []model.BillRecord{{
		ID:           7,
		ClassifiedAt: at,
		BillInput:    model.BillInput{CompanyName: "Comcast"},
		Match:        model.CategoryMatch{Category: "Internet/Telecom", Subcategory: "Internet", Confidence: 0.25},
	}}))
	assert.Contains(t, bills.String(), "Comcast")
	assert.Contains(t, bills.String(), "25.0%")
	assert.Contains(t, bills.String(), "2024-03-01 09:30")

	var snaps bytes.Buffer
	require.NoError(t, WriteSnapshotsTable(&snaps, []model.PlaceSnapshot{{
		ID: 3, ScoredAt: at, Query: "isp", RefLat: 40.5, RefLon: -75.25,
	}}))
	assert.Contains(t, snaps.String(), "40.5000, -75.2500")
}

func TestFormatMatch(t *testing.T) {
	out := FormatMatch(model.CategoryMatch{
		Category:        "Utilities",
		Subcategory:     "Electric",
		MatchedKeywords: []string{"electric"},
		Confidence:      0.5,
	}, []string{"utilities", "electric"})
	assert.Contains(t, out, "Classification")
	assert.Contains(t, out, "Electric")
	assert.Contains(t, out, "50.0%")

	other := FormatMatch(model.CategoryMatch{Category: model.CategoryOther}, []string{"other"})
	assert.Contains(t, other, "Unclassified")
	assert.NotContains(t, other, "Keywords")
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 2, "Classifying bills...")
	p.Increment()
	p.Increment()

	assert.Equal(t, 2, p.Processed())
	assert.NotEmpty(t, buf.String())
}
