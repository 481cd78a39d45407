package heuristic

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"scanvault/internal/domain"
)

const (
	lineItemConfidence  = 0.8
	tableItemConfidence = 0.83
	qtyConfidence       = 0.72
)

var (
	// stoplist lines are never line items regardless of shape.
	stoplistPattern = regexp.MustCompile(`(?i)^(?:receipt total|total|subtotal|tax|cash|change|tender|visa|mastercard|amex|credit card|thank you)\b`)
	// tabular form: qty name unit_price amount
	tableLinePattern = regexp.MustCompile(`^(\d+)\s+(.+?)\s+([$€]?\s?\d+(?:[.,]\d{2})?)\s+([$€]?\s?\d+(?:[.,]\d{2})?)$`)
	// trailing-amount form: name ... amount
	trailingPattern = regexp.MustCompile(`(?i)^(.+?)\s+([$€]?\s?\d+(?:[.,]\d{2})?)$`)
	// a name must contain at least one run of two letters to count as an item
	namePattern   = regexp.MustCompile(`[A-Za-z]{2,}`)
	multiSpace    = regexp.MustCompile(`\s{2,}`)
	amountCleaner = strings.NewReplacer("$", "", "€", "", " ", "", "\t", "", ",", ".")
)

// parseReceiptLineItems scans text line by line for receipt item shapes and
// emits 1-indexed line_item_{n}_* fields in encounter order.
func parseReceiptLineItems(text string) []domain.ExtractedField {
	fields := []domain.ExtractedField{}
	itemIndex := 1

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" || stoplistPattern.MatchString(line) {
			continue
		}

		if m := tableLinePattern.FindStringSubmatch(line); m != nil {
			qty, qtyErr := strconv.Atoi(m[1])
			name := strings.TrimSpace(m[2])
			unitPrice, upOK := parseAmount(m[3])
			amount, amtOK := parseAmount(m[4])
			if qtyErr == nil && qty > 0 && upOK && unitPrice >= 0 && amtOK && amount > 0 && namePattern.MatchString(name) {
				fields = append(fields,
					itemField(itemIndex, "name", name, tableItemConfidence),
					itemField(itemIndex, "qty", float64(qty), tableItemConfidence),
					itemField(itemIndex, "unit_price", unitPrice, lineItemConfidence),
					itemField(itemIndex, "price", amount, tableItemConfidence),
				)
				itemIndex++
				continue
			}
		}

		m := trailingPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := multiSpace.ReplaceAllString(strings.TrimSpace(m[1]), " ")
		amount, ok := parseAmount(m[2])
		if !ok || amount <= 0 || !namePattern.MatchString(name) {
			continue
		}
		fields = append(fields,
			itemField(itemIndex, "name", name, lineItemConfidence),
			itemField(itemIndex, "price", amount, lineItemConfidence),
		)
		itemIndex++
	}

	return fields
}

func itemField(index int, suffix string, value interface{}, confidence float64) domain.ExtractedField {
	return domain.ExtractedField{
		Key:        fmt.Sprintf("line_item_%d_%s", index, suffix),
		Value:      value,
		Confidence: confidence,
		Source:     domain.SourceHeuristic,
	}
}

func parseAmount(s string) (float64, bool) {
	n, err := strconv.ParseFloat(amountCleaner.Replace(s), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
