package motive

import (
	"fmt"
	"strings"
)

// TotalKey is the key of the per-region total inside a record's crime mapping.
const TotalKey = "Total"

// Category is one motive classification. Key is the label used by the source
// data; Slug is the short identifier used in config files and on the command line.
type Category struct {
	Slug  string `json:"slug"`
	Key   string `json:"key"`
	Label string `json:"label"`
}

func (c Category) String() string { return c.Slug }

// Categories is an ordered set of motive categories.
type Categories []Category

// The motive categories reported in the NCRB cyber-crime tables. Keys are kept
// byte-for-byte as they appear in the published data, trailing space included.
var (
	Revenge    = Category{Slug: "revenge", Key: "Revenge /Settling scores", Label: "Revenge/Settling Scores"}
	Greed      = Category{Slug: "greed", Key: "Greed/ Money", Label: "Greed/Money"}
	Extortion  = Category{Slug: "extortion", Key: "Extortion", Label: "Extortion"}
	Disrepute  = Category{Slug: "disrepute", Key: "Cause Disrepute", Label: "Cause Disrepute"}
	Prank      = Category{Slug: "prank", Key: "Prank/Satisfaction of Gaining Control ", Label: "Prank/Satisfaction of Gaining Control"}
	Fraud      = Category{Slug: "fraud", Key: "Fraud/Illegal Gain", Label: "Fraud/Illegal Gain"}
	EveTeasing = Category{Slug: "eve-teasing", Key: "Eve teasing/Harassment", Label: "Eve teasing/Harassment"}
	Others     = Category{Slug: "others", Key: "Others", Label: "Others"}
)

// CyberCrimeMotives returns the built-in category set in chart order.
func CyberCrimeMotives() Categories {
	return Categories{Revenge, Greed, Extortion, Disrepute, Prank, Fraud, EveTeasing, Others}
}

// ParseCategories resolves slugs against the built-in set, preserving the
// given order. An empty list selects every built-in category.
func ParseCategories(slugs []string) (Categories, error) {
	all := CyberCrimeMotives()
	if len(slugs) == 0 {
		return all, nil
	}
	bySlug := make(map[string]Category, len(all))
	for _, c := range all {
		bySlug[c.Slug] = c
	}
	cats := make(Categories, 0, len(slugs))
	for _, s := range slugs {
		c, ok := bySlug[strings.ToLower(strings.TrimSpace(s))]
		if !ok {
			return nil, fmt.Errorf("unknown motive category %q; valid options: %s", s, strings.Join(all.Slugs(), ", "))
		}
		cats = append(cats, c)
	}
	if err := cats.Validate(); err != nil {
		return nil, err
	}
	return cats, nil
}

// Slugs returns the slug of every category, in order.
func (cs Categories) Slugs() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Slug
	}
	return out
}

// Validate checks that the set is usable for aggregation: at least one
// category, and no two categories sharing a slug or a normalized key.
func (cs Categories) Validate() error {
	if len(cs) == 0 {
		return fmt.Errorf("no motive categories selected")
	}
	slugs := make(map[string]bool, len(cs))
	keys := make(map[string]bool, len(cs))
	for _, c := range cs {
		if c.Slug == "" || c.Key == "" {
			return fmt.Errorf("motive category %+v: slug and key are required", c)
		}
		if slugs[c.Slug] {
			return fmt.Errorf("duplicate motive category %q", c.Slug)
		}
		slugs[c.Slug] = true

		k := normalizeKey(c.Key)
		if k == normalizeKey(TotalKey) {
			return fmt.Errorf("motive category %q: key %q is reserved", c.Slug, c.Key)
		}
		if keys[k] {
			return fmt.Errorf("motive category %q: key %q is used twice", c.Slug, c.Key)
		}
		keys[k] = true
	}
	return nil
}

// Covers reports whether every key of other is also a key of cs.
func (cs Categories) Covers(other Categories) bool {
	keys := cs.keySet()
	for _, c := range other {
		if !keys[normalizeKey(c.Key)] {
			return false
		}
	}
	return true
}

// keySet holds the normalized category keys plus the total key.
func (cs Categories) keySet() map[string]bool {
	keys := make(map[string]bool, len(cs)+1)
	keys[normalizeKey(TotalKey)] = true
	for _, c := range cs {
		keys[normalizeKey(c.Key)] = true
	}
	return keys
}

// normalizeKey compares keys ignoring whitespace and case, so "Greed/ Money"
// and "greed/money" name the same column.
func normalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
