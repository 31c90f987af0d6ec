package classifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Named colors accepted in rules
var namedColors = map[string]string{
	"red":     "#ff0000",
	"blue":    "#0000ff",
	"green":   "#008000",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"white":   "#ffffff",
	"black":   "#000000",
	"gray":    "#808080",
}

// DefaultSeed seeds the tag hash when no seed is configured
const DefaultSeed = "atak-replay"

// ColorRule maps tags starting with Prefix to a fixed color
type ColorRule struct {
	Prefix string `yaml:"prefix"`
	Color  string `yaml:"color"`
}

// DefaultRules mark friendly (ETG) units blue and hostile (BDR) units red
func DefaultRules() []ColorRule {
	return []ColorRule{
		{Prefix: "BDR", Color: "red"},
		{Prefix: "ETG", Color: "blue"},
	}
}

// NormalizeColor converts a named or #rrggbb color to lowercase #rrggbb
func NormalizeColor(color string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(color))
	if hex, ok := namedColors[c]; ok {
		return hex, nil
	}
	if len(c) == 7 && c[0] == '#' {
		for _, r := range c[1:] {
			if !strings.ContainsRune("0123456789abcdef", r) {
				return "", fmt.Errorf("invalid color %q", color)
			}
		}
		return c, nil
	}
	return "", fmt.Errorf("invalid color %q: use a name or #rrggbb", color)
}

// Palette assigns colors to tags. It is immutable after construction and
// safe for concurrent use.
type Palette struct {
	rules  []ColorRule
	seed   string
	colors map[string]string
}

// NewPalette builds a palette for the given tags. Rule colors are validated
// and normalized; rules are matched in order, first match wins.
func NewPalette(rules []ColorRule, seed string, tags []string) (*Palette, error) {
	if seed == "" {
		seed = DefaultSeed
	}
	normalized := make([]ColorRule, 0, len(rules))
	for _, rule := range rules {
		if rule.Prefix == "" {
			return nil, fmt.Errorf("color rule for %q has an empty prefix", rule.Color)
		}
		hex, err := NormalizeColor(rule.Color)
		if err != nil {
			return nil, fmt.Errorf("color rule %q: %w", rule.Prefix, err)
		}
		normalized = append(normalized, ColorRule{Prefix: strings.ToUpper(rule.Prefix), Color: hex})
	}

	p := &Palette{
		rules:  normalized,
		seed:   seed,
		colors: make(map[string]string, len(tags)),
	}
	for _, tag := range tags {
		p.colors[tag] = p.compute(tag)
	}
	return p, nil
}

// Color returns the color for a tag. Tags unknown at construction time are
// computed on the fly with the same rules, so the result never depends on
// which tags were preloaded.
func (p *Palette) Color(tag string) string {
	if c, ok := p.colors[tag]; ok {
		return c
	}
	return p.compute(tag)
}

// Tags returns the preloaded tags in sorted order
func (p *Palette) Tags() []string {
	tags := make([]string, 0, len(p.colors))
	for tag := range p.colors {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Seed returns the hash seed in use
func (p *Palette) Seed() string {
	return p.seed
}

func (p *Palette) compute(tag string) string {
	for _, rule := range p.rules {
		if strings.HasPrefix(tag, rule.Prefix) {
			return rule.Color
		}
	}
	return HashColor(p.seed, tag)
}

// HashColor derives a #rrggbb color from a seeded xxhash of the tag
func HashColor(seed, tag string) string {
	d := xxhash.New()
	_, _ = d.WriteString(seed)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(tag)
	return fmt.Sprintf("#%06x", d.Sum64()%0xFFFFFF)
}
