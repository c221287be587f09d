// Package category assigns a business-facing category tag to a video.
// Title keywords take priority over the creator profile fallback; the rule
// table itself is plain data embedded at build time.
package category

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	_ "embed"
)

//go:embed rules.yaml
var embeddedRules []byte

type rule struct {
	Tag      string   `yaml:"tag"`
	Keywords []string `yaml:"keywords"`
}

type profile struct {
	Match string `yaml:"match"`
	Tag   string `yaml:"tag"`
}

type ruleSet struct {
	Rules    []rule    `yaml:"rules"`
	Profiles []profile `yaml:"profiles"`
	Default  string    `yaml:"default"`
}

// Classifier maps video titles and channel names onto category tags.
// Keyword comparison is case- and accent-insensitive, so "RÉUSSIR" in a
// title matches the "réussir" keyword.
type Classifier struct {
	rules      []rule
	profiles   []profile
	defaultTag string
}

// NewClassifier builds a classifier from the embedded rule table.
func NewClassifier() (*Classifier, error) {
	return newClassifierFrom(embeddedRules)
}

func newClassifierFrom(data []byte) (*Classifier, error) {
	var rs ruleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse category rules: %w", err)
	}
	if rs.Default == "" {
		return nil, fmt.Errorf("category rules missing default tag")
	}
	c := &Classifier{
		rules:      rs.Rules,
		profiles:   rs.Profiles,
		defaultTag: rs.Default,
	}
	// Fold keywords once so classification only folds the inputs.
	for i := range c.rules {
		for j, kw := range c.rules[i].Keywords {
			c.rules[i].Keywords[j] = fold(kw)
		}
	}
	for i := range c.profiles {
		c.profiles[i].Match = fold(c.profiles[i].Match)
	}
	return c, nil
}

// Classify returns the category tag for a video. Title rules are checked in
// declaration order and the first keyword hit wins; otherwise the channel
// name is matched against creator profiles; otherwise the default applies.
func (c *Classifier) Classify(title, channelName string) string {
	foldedTitle := fold(title)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(foldedTitle, kw) {
				return r.Tag
			}
		}
	}

	foldedChannel := fold(channelName)
	for _, p := range c.profiles {
		if strings.Contains(foldedChannel, p.Match) {
			return p.Tag
		}
	}
	return c.defaultTag
}

// DefaultTag returns the fallback category.
func (c *Classifier) DefaultTag() string {
	return c.defaultTag
}

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// fold lowercases and strips combining marks so accented and plain
// spellings compare equal.
func fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
