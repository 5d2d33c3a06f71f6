package spam

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Rules holds the lists the detector matches against. They are data, so an
// operator can tune them without a new build.
type Rules struct {
	SiteDomain        string   `yaml:"site_domain"`
	Keywords          []string `yaml:"keywords"`
	DisposableDomains []string `yaml:"disposable_domains"`
	BotUserAgents     []string `yaml:"bot_user_agents"`
}

// DefaultRules returns the lists shipped with the binary
func DefaultRules() Rules {
	var r Rules
	if err := yaml.Unmarshal(defaultRulesYAML, &r); err != nil {
		panic(fmt.Sprintf("spam: embedded rules are invalid: %v", err))
	}
	return r.normalized()
}

// LoadRules reads rules from a YAML file. Keys missing from the file keep
// their default values; an empty path returns the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read spam rules: %w", err)
	}
	return ParseRules(data, rules)
}

// ParseRules overlays YAML data on base
func ParseRules(data []byte, base Rules) (Rules, error) {
	var override Rules
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Rules{}, fmt.Errorf("parse spam rules: %w", err)
	}

	if override.SiteDomain != "" {
		base.SiteDomain = override.SiteDomain
	}
	if override.Keywords != nil {
		base.Keywords = override.Keywords
	}
	if override.DisposableDomains != nil {
		base.DisposableDomains = override.DisposableDomains
	}
	if override.BotUserAgents != nil {
		base.BotUserAgents = override.BotUserAgents
	}
	return base.normalized(), nil
}

// WithSiteDomain returns a copy of r matching referers against domain. An
// empty domain keeps the current one.
func (r Rules) WithSiteDomain(domain string) Rules {
	if strings.TrimSpace(domain) != "" {
		r.SiteDomain = domain
	}
	return r.normalized()
}

func (r Rules) normalized() Rules {
	r.SiteDomain = strings.ToLower(strings.TrimSpace(r.SiteDomain))
	r.Keywords = lowerAll(r.Keywords)
	r.DisposableDomains = lowerAll(r.DisposableDomains)
	r.BotUserAgents = lowerAll(r.BotUserAgents)
	return r
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
