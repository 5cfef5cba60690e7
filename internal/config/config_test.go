package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/billscout/internal/common"
	"github.com/Veraticus/billscout/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRules = `rules:
  - category: Pets
    keywords: [vet, kibble, grooming]
    base_confidence: 0.8
    subcategories: [Vet, Food]
  - category: Childcare
    keywords: [daycare, nanny]
    base_confidence: 0.9
tags:
  Pets: [household]
`

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("BILLSCOUT_TEST_DIR", "/tmp/billscout")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/data/db.sqlite", want: filepath.Join(home, "data/db.sqlite")},
		{in: "$BILLSCOUT_TEST_DIR/x.db", want: "/tmp/billscout/x.db"},
		{in: "/abs/path.db", want: "/abs/path.db"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDatabasePath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	assert.Equal(t, "/home/tester/.local/share/billscout/billscout.db", DatabasePath(""))
	assert.Equal(t, "/var/db/bills.db", DatabasePath("/var/db/bills.db"))
}

func TestDecodeRuleSet(t *testing.T) {
	rs, err := DecodeRuleSet(strings.NewReader(sampleRules))
	require.NoError(t, err)

	require.Len(t, rs.Rules, 2)
	assert.Equal(t, "Pets", rs.Rules[0].Category)
	assert.Equal(t, "Childcare", rs.Rules[1].Category)
	assert.Equal(t, []string{"vet", "kibble", "grooming"}, rs.Rules[0].Keywords)
	assert.InDelta(t, 0.8, rs.Rules[0].BaseConfidence, 1e-9)
	assert.Empty(t, rs.Rules[1].Subcategories)
	assert.Equal(t, []string{"household"}, rs.Tags["Pets"])
}

func TestDecodeRuleSet_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		errText string
	}{
		{name: "empty document", input: "", errText: "empty rule table"},
		{name: "no rules", input: "rules: []\n", errText: "no rules"},
		{
			name:    "unknown field",
			input:   "rules:\n  - category: A\n    keywords: [a]\n    base_confidence: 0.5\n    weight: 3\n",
			errText: "weight",
		},
		{
			name:    "confidence out of range",
			input:   "rules:\n  - category: A\n    keywords: [a]\n    base_confidence: 1.5\n",
			errText: "base confidence",
		},
		{
			name:    "missing keywords",
			input:   "rules:\n  - category: A\n    base_confidence: 0.5\n",
			errText: "no keywords",
		},
		{
			name:    "duplicate category",
			input:   "rules:\n  - category: A\n    keywords: [a]\n    base_confidence: 0.5\n  - category: A\n    keywords: [b]\n    base_confidence: 0.5\n",
			errText: "duplicate category",
		},
		{
			name:    "reserved category",
			input:   "rules:\n  - category: other\n    keywords: [misc]\n    base_confidence: 0.5\n",
			errText: "reserved",
		},
		{
			name:    "tags for unknown category",
			input:   "rules:\n  - category: A\n    keywords: [a]\n    base_confidence: 0.5\ntags:\n  B: [x]\n",
			errText: "unknown category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRuleSet(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoadRuleSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleRules), 0o600))

	rs, err := LoadRuleSet(path)
	require.NoError(t, err)
	assert.Len(t, rs.Rules, 2)

	_, err = LoadRuleSet(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open rules file")
}

func TestEncodeRuleSet_RoundTripKeepsOrder(t *testing.T) {
	rs := model.RuleSet{
		Rules: []model.CategoryRule{
			{Category: "Zeta", Keywords: []string{"z"}, BaseConfidence: 0.5},
			{Category: "Alpha", Keywords: []string{"a"}, BaseConfidence: 0.7, Subcategories: []string{"First"}},
		},
		Tags: map[string][]string{"Alpha": {"tag"}},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeRuleSet(&buf, rs))

	got, err := DecodeRuleSet(&buf)
	require.NoError(t, err)
	assert.Equal(t, rs, got)
}
