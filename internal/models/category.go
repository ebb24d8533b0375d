package models

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CategoryRule maps keywords to a category label. Rules are checked in
// order and the first keyword hit wins.
type CategoryRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// DefaultCategoryRules is the built-in keyword table used when no rule file
// is configured.
var DefaultCategoryRules = []CategoryRule{
	{Category: "Economics", Keywords: []string{"fed", "rate", "recession"}},
	{Category: "Cryptocurrency", Keywords: []string{"bitcoin", "crypto", "tether", "usdt"}},
	{Category: "Politics", Keywords: []string{"nuclear", "weapon", "iran", "nato"}},
	{Category: "Policy", Keywords: []string{"weed", "marijuana"}},
	{Category: "Taylor Swift", Keywords: []string{"taylor swift", "swift"}},
}

// LoadCategoryRules reads a YAML rule file. An empty path returns the
// built-in defaults.
func LoadCategoryRules(path string) ([]CategoryRule, error) {
	if path == "" {
		return DefaultCategoryRules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading category rules: %w", err)
	}

	var rules []CategoryRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing category rules: %w", err)
	}
	if len(rules) == 0 {
		return DefaultCategoryRules, nil
	}
	return rules, nil
}

// DeriveCategory infers a category from the title. Matching is
// case-insensitive substring, first rule hit wins; "" means no match.
func DeriveCategory(title string, rules []CategoryRule) string {
	lower := strings.ToLower(title)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category
			}
		}
	}
	return ""
}

// EffectiveCategory returns the record's explicit category, or the derived
// one when no explicit category is set. Filtering and category-option
// population must both go through this so the selectable options and the
// filter results agree.
func (m Market) EffectiveCategory(rules []CategoryRule) string {
	if m.Category != "" {
		return m.Category
	}
	return DeriveCategory(m.Title, rules)
}
