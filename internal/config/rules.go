package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/billscout/internal/common"
	"github.com/Veraticus/billscout/internal/model"
	"gopkg.in/yaml.v3"
)

// LoadRuleSet reads a YAML rule table from path. Rules keep their file
// order, which decides ties during classification.
func LoadRuleSet(path string) (model.RuleSet, error) {
	f, err := os.Open(ExpandPath(path))
	if err != nil {
		return model.RuleSet{}, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer f.Close()

	rs, err := DecodeRuleSet(f)
	if err != nil {
		return model.RuleSet{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rs, nil
}

// DecodeRuleSet parses and validates a YAML rule table.
func DecodeRuleSet(r io.Reader) (model.RuleSet, error) {
	var rs model.RuleSet

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rs); err != nil {
		if errors.Is(err, io.EOF) {
			return model.RuleSet{}, fmt.Errorf("%w: empty rule table", common.ErrInvalidConfig)
		}
		return model.RuleSet{}, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	if err := rs.Validate(); err != nil {
		return model.RuleSet{}, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	for category := range rs.Tags {
		if !hasCategory(rs.Rules, category) {
			return model.RuleSet{}, fmt.Errorf("%w: tags reference unknown category %q", common.ErrInvalidConfig, category)
		}
	}

	return rs, nil
}

// EncodeRuleSet writes rs in the format DecodeRuleSet reads.
func EncodeRuleSet(w io.Writer, rs model.RuleSet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rs); err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	return enc.Close()
}

func hasCategory(rules []model.CategoryRule, name string) bool {
	for _, r := range rules {
		if r.Category == name {
			return true
		}
	}
	return false
}
