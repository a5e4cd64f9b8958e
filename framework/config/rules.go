package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	koanfenv "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/km-arc/go-nutrition/framework/http/validation"
)

// RulesEnvPrefix prefixes environment overrides of the validation rules:
// RULES_PASSWORD_MIN_LENGTH=10 sets password.min_length.
const RulesEnvPrefix = "RULES_"

// LoadRules builds the validation rule table. Layers, lowest first: the
// built-in defaults, the YAML file at path (skipped when path is empty or
// missing), then RULES_* environment variables.
//
// Example rules.yaml:
//
//	password:
//	  min_length: 10
//	  common_patterns: [password, qwerty, letmein]
//	search:
//	  max_length: 80
func LoadRules(path string) (*validation.Rules, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load rules file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat rules file: %w", err)
		}
	}

	if err := k.Load(koanfenv.Provider(RulesEnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load rules env: %w", err)
	}

	cfg := validation.DefaultConfig()
	// Lists replace the defaults instead of being merged index by index.
	for key, list := range map[string]*[]string{
		"password.common_patterns": &cfg.Password.CommonPatterns,
		"search.forbidden":         &cfg.Search.Forbidden,
	} {
		if k.Exists(key) {
			*list = nil
		}
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rules: %w", err)
	}

	rules, err := validation.NewRules(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	return rules, nil
}

// MustLoadRules is LoadRules that panics on error, for bootstrapping.
func MustLoadRules(path string) *validation.Rules {
	rules, err := LoadRules(path)
	if err != nil {
		panic(err)
	}
	return rules
}

// envKey maps RULES_PASSWORD_MIN_LENGTH to password.min_length. Only the
// first underscore separates section from key.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, RulesEnvPrefix)), "_", ".", 1)
}
