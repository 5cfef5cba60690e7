// Package scoring ranks alternative vendors and places by price, quality,
// and service signals.
package scoring

import (
	"math"
	"strings"

	"github.com/Veraticus/billscout/internal/model"
)

// Neutral defaults used when a candidate lacks the underlying signal.
const (
	neutralPriceScore   = 70
	neutralQualityScore = 60
	neutralServiceScore = 60
)

// priceLevelScores maps price levels 0..4 to scores; cheaper is better value.
var priceLevelScores = [...]int{95, 85, 70, 55, 40}

// serviceKeywords mark a review as talking about service.
var serviceKeywords = []string{"service", "staff", "friendly", "helpful", "quick", "fast"}

// PriceScore scores a price level. Unknown or out-of-range levels are neutral.
func PriceScore(priceLevel *int) int {
	if priceLevel == nil {
		return neutralPriceScore
	}
	level := *priceLevel
	if level < 0 || level >= len(priceLevelScores) {
		return neutralPriceScore
	}
	return priceLevelScores[level]
}

// QualityScore scores a rating, boosted for well-reviewed places.
// A missing or NaN rating is neutral.
func QualityScore(rating *float64, reviewCount int) int {
	if rating == nil || math.IsNaN(*rating) {
		return neutralQualityScore
	}

	score := ratingPercent(*rating)
	switch {
	case reviewCount > 100:
		score = math.Min(score+10, 100)
	case reviewCount > 50:
		score = math.Min(score+5, 100)
	}

	return roundScore(score)
}

// ServiceScore scores a rating, adding a bonus for being open and another
// for at least one well-rated review that mentions service.
// A missing or NaN rating is neutral.
func ServiceScore(rating *float64, openNow *bool, reviews []model.Review) int {
	if rating == nil || math.IsNaN(*rating) {
		return neutralServiceScore
	}

	score := ratingPercent(*rating)
	if openNow != nil && *openNow {
		score = math.Min(score+5, 100)
	}
	if hasServiceReview(reviews) {
		score = math.Min(score+5, 100)
	}

	return roundScore(score)
}

// hasServiceReview reports whether any review rated 4+ mentions service.
// The bonus is a single yes/no, never accumulated per review.
func hasServiceReview(reviews []model.Review) bool {
	for _, r := range reviews {
		if r.Rating < 4 {
			continue
		}
		text := strings.ToLower(r.Text)
		for _, kw := range serviceKeywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
	}
	return false
}

func ratingPercent(rating float64) float64 {
	return rating / 5 * 100
}

// roundScore rounds to the nearest integer and clamps to [0, 100].
func roundScore(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	return int(math.Max(0, math.Min(100, math.Round(score))))
}
