package classification

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/Veraticus/billscout/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules() model.RuleSet {
	return model.RuleSet{
		Rules: []model.CategoryRule{
			{
				Category:       "Power",
				Keywords:       []string{"electric", "kwh", "meter", "grid"},
				BaseConfidence: 0.8,
				Subcategories:  []string{"Residential", "Meter/Grid Fees"},
			},
			{
				Category:       "Coffee",
				Keywords:       []string{"latte", "espresso"},
				BaseConfidence: 0.6,
			},
			{
				Category:       "Books",
				Keywords:       []string{"novel", "paperback"},
				BaseConfidence: 0.6,
				Subcategories:  []string{"Fiction", "Non Fiction"},
			},
		},
		Tags: map[string][]string{
			"Power": {"recurring"},
		},
	}
}

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(testRules())

	tests := []struct {
		name            string
		text            string
		company         string
		description     string
		wantCategory    string
		wantSubcategory string
		wantConfidence  float64
	}{
		{
			name:           "no keyword yields other",
			text:           "random purchase",
			wantCategory:   model.CategoryOther,
			wantConfidence: 0,
		},
		{
			name:           "empty input yields other",
			wantCategory:   model.CategoryOther,
			wantConfidence: 0,
		},
		{
			name:            "partial density",
			text:            "Electric bill",
			wantCategory:    "Power",
			wantSubcategory: "Residential",
			wantConfidence:  0.2,
		},
		{
			name:            "all keywords give base confidence",
			text:            "electric kwh",
			company:         "meter",
			description:     "grid",
			wantCategory:    "Power",
			wantSubcategory: "Meter/Grid Fees",
			wantConfidence:  0.8,
		},
		{
			name:           "higher density beats earlier rule",
			text:           "electric latte espresso",
			wantCategory:   "Coffee",
			wantConfidence: 0.6,
		},
		{
			name:           "substring inside longer token matches",
			text:           "espressomachine",
			wantCategory:   "Coffee",
			wantConfidence: 0.3,
		},
		{
			name:            "keyword found in company name",
			company:         "Paperback Palace",
			wantCategory:    "Books",
			wantSubcategory: "Fiction",
			wantConfidence:  0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text, tt.company, tt.description)

			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.wantSubcategory, got.Subcategory)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
		})
	}
}

func TestClassifier_ClassifyIsCaseInsensitive(t *testing.T) {
	c := NewClassifier(DefaultRules())

	upper := c.Classify("INTERNET bill", "", "")
	lower := c.Classify("internet bill", "", "")

	assert.Equal(t, lower, upper)
	assert.Equal(t, "Internet/Telecom", upper.Category)
}

func TestClassifier_ClassifyNormalizesCompatibilityForms(t *testing.T) {
	c := NewClassifier(testRules())

	// Full-width letters fold to ASCII under NFKC.
	got := c.Classify("ｌａｔｔｅ", "", "")
	assert.Equal(t, "Coffee", got.Category)
}

func TestClassifier_TieKeepsEarlierRule(t *testing.T) {
	rules := model.RuleSet{
		Rules: []model.CategoryRule{
			{Category: "First", Keywords: []string{"shared", "alpha"}, BaseConfidence: 0.5},
			{Category: "Second", Keywords: []string{"shared", "beta"}, BaseConfidence: 0.5},
		},
	}

	got := NewClassifier(rules).Classify("shared", "", "")
	assert.Equal(t, "First", got.Category)
	assert.InDelta(t, 0.25, got.Confidence, 1e-9)

	// Reversing the table order flips the winner.
	rules.Rules[0], rules.Rules[1] = rules.Rules[1], rules.Rules[0]
	got = NewClassifier(rules).Classify("shared", "", "")
	assert.Equal(t, "Second", got.Category)
}

func TestClassifier_SkipsRulesWithoutKeywords(t *testing.T) {
	rules := model.RuleSet{
		Rules: []model.CategoryRule{
			{Category: "Empty", BaseConfidence: 1},
			{Category: "Real", Keywords: []string{"fee"}, BaseConfidence: 0.5},
		},
	}

	got := NewClassifier(rules).Classify("late fee", "", "")
	assert.Equal(t, "Real", got.Category)
}

func TestClassifier_FullDensityPerDefaultCategory(t *testing.T) {
	c := NewClassifier(DefaultRules())

	// Every keyword of a category present gives exactly its base confidence,
	// unless another category also picks up matches from the same text and
	// outranks it, which is why only the winner is asserted here.
	for _, rule := range DefaultRules().Rules {
		t.Run(rule.Category, func(t *testing.T) {
			got := c.Classify(strings.Join(rule.Keywords, " "), "", "")
			if got.Category != rule.Category {
				assert.GreaterOrEqual(t, got.Confidence, rule.BaseConfidence)
				return
			}
			assert.InDelta(t, rule.BaseConfidence, got.Confidence, 1e-9)
		})
	}
}

func TestClassifier_ComcastBill(t *testing.T) {
	c := NewClassifier(DefaultRules())

	got := c.Classify("Monthly bill", "Comcast", "internet service")

	assert.Equal(t, "Internet/Telecom", got.Category)
	assert.Greater(t, got.Confidence, 0.0)
	assert.Equal(t, "Internet", got.Subcategory)
	assert.Equal(t, []string{"internet", "comcast"}, got.MatchedKeywords)
}

func TestNewClassifier_CopiesRuleSet(t *testing.T) {
	rules := testRules()
	c := NewClassifier(rules)

	rules.Rules[0].Keywords[0] = "mutated"
	rules.Rules[0].Category = "Mutated"

	got := c.Classify("electric", "", "")
	assert.Equal(t, "Power", got.Category)

	exposed := c.Rules()
	exposed[0].Keywords[0] = "again"
	assert.Equal(t, "electric", c.Rules()[0].Keywords[0])
	assert.Equal(t, 3, c.GetRuleCount())
}

func TestClassifier_ConcurrentUse(t *testing.T) {
	c := NewClassifier(DefaultRules())
	want := c.Classify("Monthly bill", "Comcast", "internet service")

	var wg sync.WaitGroup
	results := make([]model.CategoryMatch, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Classify("Monthly bill", "Comcast", "internet service")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestClassifier_ClassifyBatch(t *testing.T) {
	c := NewClassifier(testRules())

	bills := []model.BillInput{
		{Text: "latte"},
		{Text: "nothing here"},
		{Text: "grid", Description: "meter"},
	}

	got, err := c.ClassifyBatch(context.Background(), bills)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Coffee", got[0].Category)
	assert.Equal(t, model.CategoryOther, got[1].Category)
	assert.Equal(t, "Power", got[2].Category)
}

func TestClassifier_ClassifyBatchCancelled(t *testing.T) {
	c := NewClassifier(testRules())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := c.ClassifyBatch(ctx, []model.BillInput{{Text: "latte"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}

func TestClassifier_ClassifyEachStopsMidBatch(t *testing.T) {
	c := NewClassifier(testRules())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bills := []model.BillInput{{Text: "latte"}, {Text: "grid"}, {Text: "latte"}}

	var seen []int
	var categories []string
	err := c.ClassifyEach(ctx, bills, func(i int, match model.CategoryMatch) {
		seen = append(seen, i)
		categories = append(categories, match.Category)
		if i == 1 {
			cancel()
		}
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "bill 2")
	assert.Equal(t, []int{0, 1}, seen)
	assert.Equal(t, []string{"Coffee", "Power"}, categories)
}

func TestDefaultRules_Valid(t *testing.T) {
	rules := DefaultRules()
	require.NoError(t, rules.Validate())

	for _, rule := range rules.Rules {
		for _, kw := range rule.Keywords {
			assert.Equal(t, strings.ToLower(kw), kw, "keyword %q in %s must be lowercase", kw, rule.Category)
		}
		assert.NotEmpty(t, rule.Subcategories, rule.Category)
		assert.NotEmpty(t, rules.Tags[rule.Category], rule.Category)
	}
}
