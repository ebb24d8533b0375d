package models

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDeriveCategory(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Will the Fed cut rates in March?", "Economics"},
		{"Will there be a recession?", "Economics"},
		{"Will Bitcoin reach $100,000 in 2025?", "Cryptocurrency"},
		{"Will USDT depeg?", "Cryptocurrency"},
		{"Will Iran strike a deal with NATO?", "Politics"},
		{"Will marijuana be rescheduled?", "Policy"},
		{"Will Taylor Swift announce a tour?", "Taylor Swift"},
		{"Will it rain tomorrow?", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := DeriveCategory(tt.title, DefaultCategoryRules); got != tt.want {
				t.Errorf("DeriveCategory(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

// Rule order matters: a title hitting both the crypto and economics keyword
// sets must classify by the earlier rule.
func TestDeriveCategory_FirstMatchWins(t *testing.T) {
	got := DeriveCategory("Will a Fed rate cut pump Bitcoin?", DefaultCategoryRules)
	if got != "Economics" {
		t.Errorf("got %q, want Economics (first rule)", got)
	}
}

func TestEffectiveCategory(t *testing.T) {
	explicit := Market{Title: "Will Bitcoin hit 100k?", Category: "Finance"}
	if got := explicit.EffectiveCategory(DefaultCategoryRules); got != "Finance" {
		t.Errorf("explicit category overridden: got %q", got)
	}

	derived := Market{Title: "Will Bitcoin hit 100k?"}
	if got := derived.EffectiveCategory(DefaultCategoryRules); got != "Cryptocurrency" {
		t.Errorf("derived category = %q, want Cryptocurrency", got)
	}
}

func TestLoadCategoryRules(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		rules, err := LoadCategoryRules("")
		if err != nil {
			t.Fatalf("LoadCategoryRules() error = %v", err)
		}
		if len(rules) != len(DefaultCategoryRules) {
			t.Errorf("got %d rules, want %d", len(rules), len(DefaultCategoryRules))
		}
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yml")
		content := "- category: Sports\n  keywords: [nba, super bowl]\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		rules, err := LoadCategoryRules(path)
		if err != nil {
			t.Fatalf("LoadCategoryRules() error = %v", err)
		}
		if got := DeriveCategory("Who wins the Super Bowl?", rules); got != "Sports" {
			t.Errorf("got %q, want Sports", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadCategoryRules("/does/not/exist.yml"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
