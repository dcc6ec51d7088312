package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/graflint/internal/grafico"
)

const rulesFile = "relationships.json"

// Wildcard matches any relationship type or any class group.
const Wildcard = "*"

// Rule permits one combination of relationship type and endpoint classes.
// A side matches on exact class, membership in a named group, or the
// wildcard group. SameClass additionally requires both endpoints to share
// a class.
type Rule struct {
	Relationship string `json:"relationship"`
	SameClass    bool   `json:"sameClass"`
	SourceClass  string `json:"sourceClass"`
	SourceGroup  string `json:"sourceGroup"`
	TargetClass  string `json:"targetClass"`
	TargetGroup  string `json:"targetGroup"`
}

// Validate checks that a rule can ever match: it must name a relationship
// type (or the wildcard) and carry at least one matcher per side.
func (r Rule) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Relationship, validation.Required),
		validation.Field(&r.SourceClass, validation.Required.When(r.SourceGroup == "").Error("either sourceClass or sourceGroup is required")),
		validation.Field(&r.TargetClass, validation.Required.When(r.TargetGroup == "").Error("either targetClass or targetGroup is required")),
	)
}

// RuleSet is the loaded relationship-legality rule document.
type RuleSet struct {
	Groups map[string][]string `json:"groups"`
	Rules  []Rule              `json:"rules"`

	loaded bool
}

// Loaded reports whether rule data is present. When false, every triple
// is legal.
func (rs *RuleSet) Loaded() bool {
	return rs != nil && rs.loaded
}

// Validate checks every rule in the set.
func (rs *RuleSet) Validate() error {
	for i, r := range rs.Rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}

// LoadRules reads types/relationships.json under the repository root. An
// absent file yields an unloaded set and no error. A malformed or invalid
// file yields an unloaded set and an error the caller should surface as a
// warning.
func LoadRules(repoRoot string) (*RuleSet, error) {
	path := filepath.Join(repoRoot, grafico.TypesDir, rulesFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &RuleSet{}, nil
	}
	if err != nil {
		return &RuleSet{}, fmt.Errorf("rules: read %s: %w", path, err)
	}

	var rs RuleSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return &RuleSet{}, fmt.Errorf("rules: parse %s: %w", path, err)
	}
	if err := rs.Validate(); err != nil {
		return &RuleSet{}, fmt.Errorf("rules: invalid %s: %w", path, err)
	}
	rs.loaded = true
	return &rs, nil
}

func (rs *RuleSet) inGroup(group, class string) bool {
	for _, c := range rs.Groups[group] {
		if c == class {
			return true
		}
	}
	return false
}

func (rs *RuleSet) matchSide(class, group, actual string) bool {
	if class != "" && class == actual {
		return true
	}
	if group != "" {
		if group == Wildcard {
			return true
		}
		if rs.inGroup(group, actual) {
			return true
		}
	}
	return false
}

// Allowed evaluates a (relationship, source, target) triple. Rules are
// tried in listed order and the first match allows the triple. When no
// rule matches, the triple is illegal only if at least one rule exists for
// the relationship type; relationship types with no rules at all remain
// permitted, so a partial rule set covers only the types its author cares
// about.
func (rs *RuleSet) Allowed(rel, src, tgt string) bool {
	if !rs.Loaded() {
		return true
	}
	for _, r := range rs.Rules {
		if r.Relationship != rel && r.Relationship != Wildcard {
			continue
		}
		if r.SameClass && src != tgt {
			continue
		}
		if rs.matchSide(r.SourceClass, r.SourceGroup, src) &&
			rs.matchSide(r.TargetClass, r.TargetGroup, tgt) {
			return true
		}
	}
	for _, r := range rs.Rules {
		if r.Relationship == rel {
			return false
		}
	}
	return true
}
