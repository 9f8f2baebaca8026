package chatbot

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// Rule maps keywords to a canned response.
type Rule struct {
	Keywords []string `yaml:"keywords"`
	Response string   `yaml:"response"`
}

// RuleSet is the full rule table. Crisis rules are consulted before general
// rules and order within each list is significant.
type RuleSet struct {
	Crisis   []Rule `yaml:"crisis"`
	General  []Rule `yaml:"general"`
	Fallback string `yaml:"fallback"`
}

// ParseRules decodes and checks a YAML rule table.
func ParseRules(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse chatbot rules: %w", err)
	}
	if err := rs.validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// DefaultRules returns the embedded rule table.
func DefaultRules() (*RuleSet, error) {
	return ParseRules(defaultRules)
}

func (rs *RuleSet) validate() error {
	if strings.TrimSpace(rs.Fallback) == "" {
		return errors.New("chatbot rules: fallback response is required")
	}
	check := func(tier string, rules []Rule) error {
		for i, r := range rules {
			if strings.TrimSpace(r.Response) == "" {
				return fmt.Errorf("chatbot rules: %s rule %d has no response", tier, i)
			}
			if len(r.Keywords) == 0 {
				return fmt.Errorf("chatbot rules: %s rule %d has no keywords", tier, i)
			}
			for _, k := range r.Keywords {
				if strings.TrimSpace(k) == "" {
					return fmt.Errorf("chatbot rules: %s rule %d has a blank keyword", tier, i)
				}
			}
		}
		return nil
	}
	if err := check("crisis", rs.Crisis); err != nil {
		return err
	}
	return check("general", rs.General)
}
