package heuristic

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"scanvault/internal/classify"
	"scanvault/internal/domain"
)

const (
	defaultConfidence = 0.6
	maxEntities       = 20
)

var (
	usdPattern      = regexp.MustCompile(`(?i)(?:USD\s*)?\$\s?([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{2})|[0-9]+(?:\.[0-9]{2})?)`)
	eurPattern      = regexp.MustCompile(`€\s?([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{2})|[0-9]+(?:\.[0-9]{2})?)`)
	datePattern     = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b|\b\d{1,2}/\d{1,2}/\d{4}\b|\b[A-Z][a-z]+\s\d{1,2},\s\d{4}\b`)
	invoicePattern  = regexp.MustCompile(`(?i)invoice\s*#?\s*([A-Za-z0-9-]+)|#\s*([A-Za-z0-9-]{4,})`)
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern    = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
	weightPattern   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s?(kg|lbs)`)
	caloriesPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s?(k?cal)`)

	entityPattern  = regexp.MustCompile(`\b[A-Z][A-Za-z0-9&.-]{2,}\b`)
	entityStoplist = map[string]bool{"Invoice": true, "Total": true, "Date": true, "Receipt": true}
)

// Extract runs every pattern family over rawText and assembles a result.
// It never fails: empty input yields an empty result with category "general".
func Extract(rawText string) *domain.ExtractionResult {
	text := strings.TrimSpace(rawText)
	fields := extractFields(text)
	slug := inferCategory(text)

	topKeys := "no key fields"
	if keys := uniqueKeys(fields, 3); len(keys) > 0 {
		topKeys = strings.Join(keys, ", ")
	}
	summary := fmt.Sprintf("Document processed on %s. Contains %d extracted fields including %s.",
		time.Now().UTC().Format("2006-01-02"), len(fields), topKeys)

	return &domain.ExtractionResult{
		Summary:      summary,
		Fields:       fields,
		Entities:     extractEntities(text),
		CategorySlug: slug,
		CategoryName: classify.HumanizeSlug(slug),
		RawText:      text,
	}
}

func addField(fields []domain.ExtractedField, key string, value interface{}, unit string) []domain.ExtractedField {
	return append(fields, domain.ExtractedField{
		Key:        key,
		Value:      value,
		Unit:       unit,
		Confidence: defaultConfidence,
		Source:     domain.SourceHeuristic,
	})
}

func extractFields(text string) []domain.ExtractedField {
	fields := []domain.ExtractedField{}

	for _, m := range usdPattern.FindAllStringSubmatch(text, -1) {
		if amount, ok := parseNumber(m[1]); ok {
			fields = addField(fields, "total_amount", amount, "USD")
		}
	}
	for _, m := range eurPattern.FindAllStringSubmatch(text, -1) {
		if amount, ok := parseNumber(m[1]); ok {
			fields = addField(fields, "total_amount", amount, "EUR")
		}
	}

	for _, m := range datePattern.FindAllString(text, -1) {
		fields = addField(fields, "date", m, "")
	}

	for _, m := range invoicePattern.FindAllStringSubmatch(text, -1) {
		number := m[1]
		if number == "" {
			number = m[2]
		}
		fields = addField(fields, "invoice_number", number, "")
	}

	for _, m := range emailPattern.FindAllString(text, -1) {
		fields = addField(fields, "email", m, "")
	}
	for _, m := range phonePattern.FindAllString(text, -1) {
		fields = addField(fields, "phone", strings.TrimSpace(m), "")
	}

	for _, m := range weightPattern.FindAllStringSubmatch(text, -1) {
		if value, ok := parseNumber(m[1]); ok {
			fields = addField(fields, "weight", value, strings.ToLower(m[2]))
		}
	}
	for _, m := range caloriesPattern.FindAllStringSubmatch(text, -1) {
		if value, ok := parseNumber(m[1]); ok {
			fields = addField(fields, "calories", value, "kcal")
		}
	}

	fields = append(fields, parseReceiptLineItems(text)...)
	if shouldParseWorkoutSchedule(text) {
		fields = append(fields, parseWorkoutSchedule(text)...)
	}

	return fields
}

// parseNumber parses a numeric match with thousands separators stripped.
func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func extractEntities(text string) []string {
	seen := map[string]bool{}
	entities := []string{}
	for _, candidate := range entityPattern.FindAllString(text, -1) {
		if entityStoplist[candidate] || seen[candidate] {
			continue
		}
		seen[candidate] = true
		entities = append(entities, candidate)
		if len(entities) >= maxEntities {
			break
		}
	}
	return entities
}

func uniqueKeys(fields []domain.ExtractedField, limit int) []string {
	seen := map[string]bool{}
	keys := []string{}
	for _, f := range fields {
		if seen[f.Key] {
			continue
		}
		seen[f.Key] = true
		keys = append(keys, f.Key)
		if len(keys) >= limit {
			break
		}
	}
	return keys
}
