package model

import (
	"fmt"
	"strings"
)

// CategoryOther is the sentinel category returned when no rule matches.
const CategoryOther = "Other"

// CategoryRule maps a spending category to the keywords that identify it.
type CategoryRule struct {
	Category       string   `json:"category" yaml:"category"`
	Keywords       []string `json:"keywords" yaml:"keywords"`
	Subcategories  []string `json:"subcategories,omitempty" yaml:"subcategories,omitempty"`
	BaseConfidence float64  `json:"base_confidence" yaml:"base_confidence"`
}

// Validate ensures the rule can take part in classification.
func (r *CategoryRule) Validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return fmt.Errorf("category name is required")
	}
	if strings.EqualFold(strings.TrimSpace(r.Category), CategoryOther) {
		return fmt.Errorf("category %q is reserved for unmatched bills", r.Category)
	}
	if len(r.Keywords) == 0 {
		return fmt.Errorf("category %q has no keywords", r.Category)
	}
	for i, kw := range r.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("category %q has an empty keyword at index %d", r.Category, i)
		}
	}
	if r.BaseConfidence <= 0 || r.BaseConfidence > 1 {
		return fmt.Errorf("category %q base confidence must be in (0, 1], got %.2f", r.Category, r.BaseConfidence)
	}
	return nil
}

// RuleSet is the ordered rule table plus the curated tags per category.
// Rule order is significant: on a confidence tie the earlier rule wins.
type RuleSet struct {
	Tags  map[string][]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Rules []CategoryRule      `json:"rules" yaml:"rules"`
}

// Validate checks every rule and rejects duplicate category names.
func (rs *RuleSet) Validate() error {
	if len(rs.Rules) == 0 {
		return fmt.Errorf("rule set has no rules")
	}

	seen := make(map[string]struct{}, len(rs.Rules))
	for i := range rs.Rules {
		if err := rs.Rules[i].Validate(); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
		name := rs.Rules[i].Category
		if _, dup := seen[name]; dup {
			return fmt.Errorf("rule %d: duplicate category %q", i, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate a classifier's table.
func (rs RuleSet) Clone() RuleSet {
	out := RuleSet{
		Rules: make([]CategoryRule, len(rs.Rules)),
	}
	for i, r := range rs.Rules {
		out.Rules[i] = CategoryRule{
			Category:       r.Category,
			Keywords:       append([]string(nil), r.Keywords...),
			Subcategories:  append([]string(nil), r.Subcategories...),
			BaseConfidence: r.BaseConfidence,
		}
	}
	if rs.Tags != nil {
		out.Tags = make(map[string][]string, len(rs.Tags))
		for k, v := range rs.Tags {
			out.Tags[k] = append([]string(nil), v...)
		}
	}
	return out
}
