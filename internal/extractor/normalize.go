package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"scanvault/internal/classify"
	"scanvault/internal/domain"
)

// Caps applied to model output before it enters the pipeline. Model
// responses are untrusted input and are clamped before anything downstream
// sees them.
const (
	maxFields      = 150
	maxEntities    = 50
	maxKeyLen      = 100
	maxUnitLen     = 50
	maxValueLen    = 2000
	maxSummaryLen  = 5000
	maxEntityLen   = 120
	defaultConfide = 0.5
)

// ParseResponse turns a raw model completion into an ExtractionResult.
// Providers frequently wrap JSON in prose or markdown fences, so the
// parser takes everything between the first '{' and the last '}'. The
// payload's declared types are not trusted: every entry is coerced
// item-by-item and a mistyped entry is dropped, never fatal. The source
// on each field is always the model source regardless of what the
// payload claims.
func ParseResponse(provider, raw string) (*domain.ExtractionResult, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, NewProviderError(provider, 0, fmt.Errorf("response contains no JSON object"))
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return nil, NewProviderError(provider, 0, fmt.Errorf("decoding response JSON: %w", err))
	}

	slug := classify.NormalizeSlug(asString(parsed["suggested_category"]))
	if slug == "" {
		slug = domain.DefaultCategorySlug
	}
	result := &domain.ExtractionResult{
		Summary:      truncate(strings.TrimSpace(asString(parsed["summary"])), maxSummaryLen),
		CategorySlug: slug,
	}

	rawFields, _ := parsed["fields"].([]interface{})
	for _, item := range rawFields {
		if len(result.Fields) >= maxFields {
			break
		}
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		key := truncate(strings.TrimSpace(asString(entry["key"])), maxKeyLen)
		if key == "" {
			continue
		}
		value := coerceValue(entry["value"])
		if value == nil {
			continue
		}
		result.Fields = append(result.Fields, domain.ExtractedField{
			Key:        key,
			Value:      value,
			Unit:       truncate(strings.TrimSpace(asString(entry["unit"])), maxUnitLen),
			Confidence: clampConfidence(entry["confidence"]),
			Source:     domain.SourceModel,
		})
	}

	rawEntities, _ := parsed["entities"].([]interface{})
	for _, item := range rawEntities {
		if len(result.Entities) >= maxEntities {
			break
		}
		e, ok := item.(string)
		if !ok {
			continue
		}
		e = truncate(strings.TrimSpace(e), maxEntityLen)
		if e == "" {
			continue
		}
		result.Entities = append(result.Entities, e)
	}

	return result, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// coerceValue keeps strings and numbers, truncating strings and dropping
// anything else (objects, arrays, booleans, nulls).
func coerceValue(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return nil
		}
		return truncate(trimmed, maxValueLen)
	case float64:
		return val
	default:
		return nil
	}
}

func clampConfidence(v interface{}) float64 {
	c, ok := v.(float64)
	if !ok {
		return defaultConfide
	}
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
