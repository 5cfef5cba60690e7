// Package classification assigns spending categories to expense descriptions.
package classification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/billscout/internal/model"
)

// Classifier matches expense text against an ordered keyword rule table.
// It holds only immutable state and is safe for concurrent use.
type Classifier struct {
	tags  map[string][]string
	rules []model.CategoryRule
}

// NewClassifier creates a classifier over a private copy of the rule set.
// Keywords are normalized the same way as the input text.
func NewClassifier(rules model.RuleSet) *Classifier {
	rs := rules.Clone()
	for i := range rs.Rules {
		for j, kw := range rs.Rules[i].Keywords {
			rs.Rules[i].Keywords[j] = normalizeText(kw)
		}
	}

	return &Classifier{
		rules: rs.Rules,
		tags:  rs.Tags,
	}
}

// Rules returns a copy of the rule table in evaluation order.
func (c *Classifier) Rules() []model.CategoryRule {
	return model.RuleSet{Rules: c.rules}.Clone().Rules
}

// Classify returns the best matching category for the given text.
// It never fails: text matching no rule yields the Other category with zero confidence.
func (c *Classifier) Classify(text, companyName, description string) model.CategoryMatch {
	corpus := buildCorpus(text, companyName, description)

	var (
		best        *model.CategoryRule
		bestMatched []string
		bestConf    float64
	)

	for i := range c.rules {
		rule := &c.rules[i]
		if len(rule.Keywords) == 0 {
			continue
		}

		matched := matchKeywords(corpus, rule.Keywords)
		if len(matched) == 0 {
			continue
		}

		density := float64(len(matched)) / float64(len(rule.Keywords))
		confidence := density * rule.BaseConfidence

		// Strictly greater keeps the earlier rule on ties
		if best == nil || confidence > bestConf {
			best = rule
			bestMatched = matched
			bestConf = confidence
		}
	}

	if best == nil {
		return model.CategoryMatch{Category: model.CategoryOther}
	}

	return model.CategoryMatch{
		Category:        best.Category,
		Confidence:      bestConf,
		Subcategory:     resolveSubcategory(best.Subcategories, bestMatched),
		MatchedKeywords: bestMatched,
	}
}

// ClassifyBatch classifies bills in order, stopping early if ctx is cancelled.
func (c *Classifier) ClassifyBatch(ctx context.Context, bills []model.BillInput) ([]model.CategoryMatch, error) {
	results := make([]model.CategoryMatch, 0, len(bills))

	err := c.ClassifyEach(ctx, bills, func(_ int, match model.CategoryMatch) {
		results = append(results, match)
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// ClassifyEach classifies bills in order and hands each result to fn as it
// is produced. It stops before the next bill once ctx is cancelled.
func (c *Classifier) ClassifyEach(ctx context.Context, bills []model.BillInput, fn func(i int, match model.CategoryMatch)) error {
	for i, bill := range bills {
		select {
		case <-ctx.Done():
			return fmt.Errorf("classification interrupted at bill %d: %w", i, ctx.Err())
		default:
		}

		match := c.Classify(bill.Text, bill.CompanyName, bill.Description)
		slog.Debug("Classified bill",
			"index", i,
			"category", match.Category,
			"confidence", match.Confidence)
		fn(i, match)
	}

	return nil
}

// GetRuleCount returns the number of rules in the table.
func (c *Classifier) GetRuleCount() int {
	return len(c.rules)
}

func matchKeywords(corpus string, keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(corpus, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}
