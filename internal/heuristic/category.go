package heuristic

import (
	"regexp"
	"strings"
)

// categoryRule maps a keyword pattern to a category slug. Rules run in
// order and the first match wins; this is the simple fallback used when no
// category list is available (the scored classifier lives in classify).
type categoryRule struct {
	slug    string
	pattern *regexp.Regexp
}

var categoryRules = []categoryRule{
	{"finance", regexp.MustCompile(`[$€]|invoice|receipt`)},
	{"fitness", regexp.MustCompile(`cal|workout|protein`)},
	{"travel", regexp.MustCompile(`flight|hotel|boarding`)},
	{"health", regexp.MustCompile(`prescription|diagnosis|lab`)},
	{"work", regexp.MustCompile(`salary|contract|timesheet`)},
}

func inferCategory(text string) string {
	lowered := strings.ToLower(text)
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(lowered) {
			return rule.slug
		}
	}
	return "general"
}
