package reconcile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"scanvault/internal/domain"
	"scanvault/internal/reconcile"
)

func TestDeriveAssetName_FinanceComposite(t *testing.T) {
	result := &domain.ExtractionResult{
		Fields: []domain.ExtractedField{
			field("store_name", "Acme Market", domain.SourceModel),
			field("receipt_number", "10423", domain.SourceModel),
			field("date", "2024-01-15", domain.SourceModel),
		},
	}

	name := reconcile.DeriveAssetName(result, "Finance", "scan_001.pdf")
	assert.Equal(t, "Acme Market - Receipt - 10423 - 2024-01-15.pdf", name)
}

func TestDeriveAssetName_InvoiceNumberFallback(t *testing.T) {
	result := &domain.ExtractionResult{
		Fields: []domain.ExtractedField{
			field("store_name", "Northwind", domain.SourceModel),
			field("invoice_number", "INV-42", domain.SourceModel),
		},
	}

	name := reconcile.DeriveAssetName(result, "finance", "upload.jpg")
	assert.Equal(t, "Northwind - Receipt - INV-42.jpg", name)
}

func TestDeriveAssetName_FinanceWithoutFields(t *testing.T) {
	result := &domain.ExtractionResult{}

	// No store, number or date: the composite is just "Receipt".
	name := reconcile.DeriveAssetName(result, "Finance", "scan.png")
	assert.Equal(t, "Receipt.png", name)
}

func TestDeriveAssetName_DateScrubbing(t *testing.T) {
	result := &domain.ExtractionResult{
		Fields: []domain.ExtractedField{
			field("store_name", "Acme", domain.SourceModel),
			field("date", "Jan 15, 2024", domain.SourceModel),
		},
	}

	// Non-numeric date characters are dropped from the composite.
	name := reconcile.DeriveAssetName(result, "finance", "scan.pdf")
	assert.Equal(t, "Acme - Receipt - 152024.pdf", name)
}

func TestDeriveAssetName_NonFinancePrefixesCategory(t *testing.T) {
	result := &domain.ExtractionResult{}

	name := reconcile.DeriveAssetName(result, "Fitness", "workout_plan.png")
	assert.Equal(t, "Fitness - workout_plan.png", name)
}

func TestDeriveAssetName_EmptyCategoryUsesDocument(t *testing.T) {
	result := &domain.ExtractionResult{}

	name := reconcile.DeriveAssetName(result, "", "notes.pdf")
	assert.Equal(t, "Document - notes.pdf", name)
}

func TestDeriveAssetName_NoExtension(t *testing.T) {
	result := &domain.ExtractionResult{}

	name := reconcile.DeriveAssetName(result, "Work", "contract")
	assert.Equal(t, "Work - contract", name)
}

func TestSanitizeAssetName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`Acme: Receipt*?`, "Acme Receipt"},
		{`a/b\c`, "abc"},
		{"  spaced   out  ", "spaced out"},
		{"trailing dots...", "trailing dots"},
		{`<>|"`, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, reconcile.SanitizeAssetName(tc.in))
	}
}

func TestSanitizeAssetName_CapsLength(t *testing.T) {
	name := reconcile.SanitizeAssetName(strings.Repeat("a", 300))
	assert.Len(t, name, 180)
}
