// Package rulepack ships the regulatory rule definitions of each supported
// jurisdiction and seeds them into the rule catalog.
//
// Packs are YAML files embedded at build time, one per jurisdiction. Rules
// are keyed by code, so seeding twice updates rules in place.
package rulepack

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raviagarwal526/aioscrew/internal/domain"
)

//go:embed packs/*.yaml
var packFS embed.FS

// Pack is the rule set of one jurisdiction.
type Pack struct {
	Jurisdiction string    `yaml:"jurisdiction"`
	Rules        []RuleDef `yaml:"rules"`
}

// RuleDef is one rule as authored in a pack file.
type RuleDef struct {
	Code       string         `yaml:"code"`
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
	Limit      float64        `yaml:"limit"`
	Unit       string         `yaml:"unit"`
	Category   string         `yaml:"category"`
	Conditions map[string]any `yaml:"conditions"`
	Active     *bool          `yaml:"active"` // Defaults to true
}

// Upserter stores rules keyed by code. service.RuleService satisfies it.
type Upserter interface {
	Upsert(ctx context.Context, rules []domain.RegulatoryRule) ([]domain.RegulatoryRule, error)
}

// Parse decodes and validates a pack.
func Parse(data []byte) (*Pack, error) {
	var p Pack
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode rule pack: %w", err)
	}

	p.Jurisdiction = strings.ToUpper(strings.TrimSpace(p.Jurisdiction))
	if p.Jurisdiction == "" {
		return nil, fmt.Errorf("rule pack has no jurisdiction")
	}

	seen := make(map[string]bool, len(p.Rules))
	for i, r := range p.Rules {
		switch {
		case r.Code == "":
			return nil, fmt.Errorf("%s rule %d has no code", p.Jurisdiction, i)
		case seen[r.Code]:
			return nil, fmt.Errorf("%s rule %s is defined twice", p.Jurisdiction, r.Code)
		case !domain.RuleType(r.Type).IsValid():
			return nil, fmt.Errorf("%s rule %s has unknown type %q", p.Jurisdiction, r.Code, r.Type)
		case r.Limit <= 0:
			return nil, fmt.Errorf("%s rule %s needs a positive limit", p.Jurisdiction, r.Code)
		}
		seen[r.Code] = true
	}
	return &p, nil
}

// Load returns every embedded pack ordered by jurisdiction.
func Load() ([]*Pack, error) {
	entries, err := fs.ReadDir(packFS, "packs")
	if err != nil {
		return nil, fmt.Errorf("read rule packs: %w", err)
	}

	packs := make([]*Pack, 0, len(entries))
	for _, e := range entries {
		data, err := packFS.ReadFile(path.Join("packs", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		p, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		packs = append(packs, p)
	}

	sort.Slice(packs, func(i, j int) bool { return packs[i].Jurisdiction < packs[j].Jurisdiction })
	return packs, nil
}

// Jurisdictions lists the jurisdictions with an embedded pack.
func Jurisdictions() ([]string, error) {
	packs, err := Load()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(packs))
	for i, p := range packs {
		out[i] = p.Jurisdiction
	}
	return out, nil
}

// DomainRules converts the pack into catalog rules.
func (p *Pack) DomainRules() ([]domain.RegulatoryRule, error) {
	rules := make([]domain.RegulatoryRule, 0, len(p.Rules))
	for _, r := range p.Rules {
		var conditions json.RawMessage
		if len(r.Conditions) > 0 {
			b, err := json.Marshal(r.Conditions)
			if err != nil {
				return nil, fmt.Errorf("rule %s conditions: %w", r.Code, err)
			}
			conditions = b
		}
		active := r.Active == nil || *r.Active

		rules = append(rules, domain.RegulatoryRule{
			Code:         r.Code,
			Name:         r.Name,
			Type:         domain.RuleType(r.Type),
			Jurisdiction: p.Jurisdiction,
			LimitValue:   r.Limit,
			LimitUnit:    r.Unit,
			Conditions:   conditions,
			IsActive:     active,
			Category:     r.Category,
		})
	}
	return rules, nil
}

// Seed upserts the packs of the given jurisdictions, or of all embedded
// jurisdictions when none are named, and returns the stored rules.
func Seed(ctx context.Context, catalog Upserter, jurisdictions ...string) ([]domain.RegulatoryRule, error) {
	packs, err := Load()
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(jurisdictions))
	for _, j := range jurisdictions {
		wanted[strings.ToUpper(j)] = true
	}

	var rules []domain.RegulatoryRule
	matched := 0
	for _, p := range packs {
		if len(wanted) > 0 && !wanted[p.Jurisdiction] {
			continue
		}
		matched++
		pr, err := p.DomainRules()
		if err != nil {
			return nil, err
		}
		rules = append(rules, pr...)
	}
	if len(wanted) > 0 && matched < len(wanted) {
		return nil, domain.Invalid("rulepack.seed", "no rule pack for one or more of: "+strings.Join(jurisdictions, ", "))
	}

	return catalog.Upsert(ctx, rules)
}
