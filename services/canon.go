package services

import (
	"fmt"
	"regexp"
	"strings"
)

// Characters treated as noise when comparing product descriptions.
// Dimension separators (× and x) become spaces so "3x6m banner" and
// "3 x 6 m banner" canonicalize identically.
var canonStrip = regexp.MustCompile(`[*\-_/(),.:;\[\]{}]`)

var codePattern = regexp.MustCompile(`\d{4,}`)

// Canon normalizes free text for matching and de-duplication keys:
// lowercase, dimension markers and punctuation to spaces, whitespace
// collapsed. It is pure and idempotent: the same input always yields
// the same output, and Canon(Canon(x)) == Canon(x).
func Canon(input any) string {
	if input == nil {
		return ""
	}
	s, ok := input.(string)
	if !ok {
		s = fmt.Sprintf("%v", input)
	}

	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "×", " ")
	s = strings.ReplaceAll(s, "x", " ")
	s = canonStrip.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// ExtractCodes returns every run of 4 or more consecutive digits in the
// description. Tender line items frequently embed a supplier article
// number ("Install 600450 corex board"); those runs are matched against
// catalog SKUs as the highest-confidence strategy.
func ExtractCodes(description string) []string {
	return codePattern.FindAllString(description, -1)
}
