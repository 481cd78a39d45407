package reconcile

import (
	"regexp"
	"strings"

	"scanvault/internal/domain"
)

const (
	maxMergedFields   = 200
	maxMergedEntities = 60

	// Augmentation thresholds: a receipt-like primary result with too few
	// fields overall, or too few line-item fields, is worth a second pass.
	minReceiptFields  = 10
	minLineItemFields = 4
	minFieldsOverall  = 3
)

var receiptSignal = regexp.MustCompile(`(?i)receipt|invoice|subtotal|sales tax|total|payment instruction|bill to|ship to`)

// ShouldAugment reports whether the primary result is thin enough to be
// worth a heuristic augmentation pass over the OCR text.
func ShouldAugment(primary *domain.ExtractionResult, rawText string) bool {
	if primary == nil {
		return true
	}
	if len(primary.Fields) < minFieldsOverall {
		return true
	}
	if !isReceiptLike(primary, rawText) {
		return false
	}
	return len(primary.Fields) < minReceiptFields ||
		countLineItemFields(primary.Fields) < minLineItemFields
}

func isReceiptLike(primary *domain.ExtractionResult, rawText string) bool {
	if primary.CategorySlug == "finance" {
		return true
	}
	if receiptSignal.MatchString(primary.Summary) {
		return true
	}
	return receiptSignal.MatchString(rawText)
}

func countLineItemFields(fields []domain.ExtractedField) int {
	n := 0
	for _, f := range fields {
		if strings.HasPrefix(f.Key, "line_item_") {
			n++
		}
	}
	return n
}

// Merge combines a primary result with an augmentation result. Primary
// fields always survive; augmentation fields are added only when no
// primary field shares the same key/value signature. The merged category
// prefers a finance call from either side over the primary's "general".
func Merge(primary, aug *domain.ExtractionResult) *domain.ExtractionResult {
	if primary == nil {
		return aug
	}
	if aug == nil {
		return primary
	}

	merged := &domain.ExtractionResult{
		Summary:      primary.Summary,
		CategorySlug: primary.CategorySlug,
		CategoryName: primary.CategoryName,
		RawText:      primary.RawText,
		AssetName:    primary.AssetName,
	}
	if merged.Summary == "" {
		merged.Summary = aug.Summary
	}
	if merged.RawText == "" {
		merged.RawText = aug.RawText
	}
	if merged.AssetName == "" {
		merged.AssetName = aug.AssetName
	}

	seen := make(map[string]bool, len(primary.Fields))
	for _, f := range primary.Fields {
		if len(merged.Fields) >= maxMergedFields {
			break
		}
		seen[fieldSignature(f)] = true
		merged.Fields = append(merged.Fields, f)
	}
	for _, f := range aug.Fields {
		if len(merged.Fields) >= maxMergedFields {
			break
		}
		sig := fieldSignature(f)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		merged.Fields = append(merged.Fields, f)
	}

	seenEntities := make(map[string]bool, len(primary.Entities))
	for _, e := range append(append([]string{}, primary.Entities...), aug.Entities...) {
		if len(merged.Entities) >= maxMergedEntities {
			break
		}
		key := strings.ToLower(e)
		if seenEntities[key] {
			continue
		}
		seenEntities[key] = true
		merged.Entities = append(merged.Entities, e)
	}

	// A finance call from the augmentation pass outranks any non-finance
	// primary; otherwise a default-bucket primary yields to whatever the
	// augmentation decided.
	switch {
	case aug.CategorySlug == "finance" && merged.CategorySlug != "finance":
		merged.CategorySlug = aug.CategorySlug
		merged.CategoryName = aug.CategoryName
	case (merged.CategorySlug == "" || merged.CategorySlug == domain.DefaultCategorySlug) && aug.CategorySlug != "":
		merged.CategorySlug = aug.CategorySlug
		merged.CategoryName = aug.CategoryName
	}

	return merged
}

// fieldSignature is the dedupe key: same key and same rendered value means
// the same fact, regardless of which pass produced it.
func fieldSignature(f domain.ExtractedField) string {
	return strings.ToLower(f.Key) + "::" + strings.ToLower(f.ValueString())
}
