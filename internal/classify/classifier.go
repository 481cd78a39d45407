// Package classify scores document text against an owner's known categories.
// Classification is deterministic and side-effect free; the same signal text
// and category list always yield the same slug.
package classify

import (
	"regexp"
	"strings"
)

// CategoryChoice is the minimal category projection the classifier needs.
type CategoryChoice struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type keywordRule struct {
	slug     string
	keywords []string
}

// keywordRules is the fixed slug-to-keyword table. A rule only scores when
// its slug exists among the known categories.
var keywordRules = []keywordRule{
	{"finance", []string{"invoice", "receipt", "bill", "expense", "tax", "total", "subtotal", "payment"}},
	{"travel", []string{"flight", "hotel", "boarding", "itinerary", "trip", "reservation"}},
	{"health", []string{"health", "lab", "medical", "prescription", "clinic", "doctor"}},
	{"fitness", []string{"fitness", "workout", "calorie", "weight", "protein", "exercise"}},
	{"work", []string{"contract", "timesheet", "salary", "proposal", "payroll", "meeting"}},
	{"school", []string{"class", "homework", "lecture", "exam", "whiteboard", "syllabus", "school"}},
}

// Classify picks the best-fitting known category slug for the signal text.
// Keyword rule matches score double weight; overlap with a category's own
// name/slug tokens scores single weight. Ties keep the earliest category.
// With no score at all, the known "general" category wins, then the first
// known category, then the literal "general".
func Classify(signalText string, known []CategoryChoice) string {
	signal := strings.ToLower(signalText)
	scores := map[string]int{}

	knownSlugs := map[string]bool{}
	for _, c := range known {
		knownSlugs[c.Slug] = true
	}

	for _, rule := range keywordRules {
		if !knownSlugs[rule.slug] {
			continue
		}
		matches := 0
		for _, keyword := range rule.keywords {
			matches += strings.Count(signal, keyword)
		}
		if matches > 0 {
			scores[rule.slug] += matches * 2
		}
	}

	for _, c := range known {
		tokens := append(tokenize(strings.ToLower(c.Name)), strings.Split(c.Slug, "-")...)
		overlap := 0
		for _, token := range tokens {
			if len(token) > 2 && strings.Contains(signal, token) {
				overlap++
			}
		}
		if overlap > 0 {
			scores[c.Slug] += overlap
		}
	}

	// Zero is not a win; a category must actually score to displace the
	// default.
	winner := defaultSlug(known)
	winnerScore := 0
	for _, c := range known {
		if score := scores[c.Slug]; score > winnerScore {
			winner = c.Slug
			winnerScore = score
		}
	}
	return winner
}

func defaultSlug(known []CategoryChoice) string {
	for _, c := range known {
		if c.Slug == "general" {
			return c.Slug
		}
	}
	if len(known) > 0 {
		return known[0].Slug
	}
	return "general"
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

func tokenize(s string) []string {
	tokens := []string{}
	for _, t := range nonAlnum.Split(s, -1) {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
