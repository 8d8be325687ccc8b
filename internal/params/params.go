// Package params resolves {{name}} placeholders in ad copy.
//
// Unmatched placeholders are deliberately left in the text so editors
// can spot unresolved copy in previews. Blanking them is the naming
// package's policy, not this one's.
package params

import (
	"regexp"
	"strings"
)

// Set holds the contextual values substituted into ad copy.
// Arbitrary extension keys are allowed next to the well-known ones.
type Set map[string]string

// Well-known keys.
const (
	KeyCity      = "city"
	KeyLabel     = "label"
	KeyCountry   = "country"
	KeyPlacement = "placement"
	KeyAudience  = "audience"
)

var placeholderRe = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// Replace substitutes every non-empty entry of p into text.
// Matching is case-insensitive and tolerates whitespace inside the braces.
func Replace(text string, p Set) string {
	if text == "" || len(p) == 0 {
		return text
	}
	return placeholderRe.ReplaceAllStringFunc(text, func(m string) string {
		name := strings.TrimSpace(placeholderRe.FindStringSubmatch(m)[1])
		for k, v := range p {
			if v != "" && strings.EqualFold(k, name) {
				return v
			}
		}
		return m // leave untouched
	})
}

// Has reports whether text contains any {{...}} placeholder.
func Has(text string) bool {
	return placeholderRe.MatchString(text)
}

// Extract returns the distinct placeholder names referenced by text.
func Extract(text string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// previewSet is the fixed example set used for UI preview rendering.
var previewSet = Set{
	KeyCity:      "Paris",
	KeyLabel:     "Premium",
	KeyCountry:   "France",
	KeyPlacement: "Feed",
	KeyAudience:  "Broad Audience",
}

// Preview applies the fixed example parameter set to text.
func Preview(text string) string {
	return Replace(text, previewSet)
}
