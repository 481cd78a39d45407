package reconcile

import (
	"regexp"
	"strings"

	"scanvault/internal/domain"
)

const maxAssetNameLen = 180

var (
	forbiddenNameChars = regexp.MustCompile(`[\\/:*?"<>|]`)
	nameWhitespace     = regexp.MustCompile(`\s+`)
	trailingDots       = regexp.MustCompile(`\.+$`)
	nonDateChars       = regexp.MustCompile(`[^\d/-]`)
)

// DeriveAssetName builds a display name for a stored document. Finance
// documents get a composite of store, receipt number and date; everything
// else gets the category name prefixed to the original file base name. The
// original file extension is always re-suffixed.
func DeriveAssetName(result *domain.ExtractionResult, categoryName, fileName string) string {
	extension := fileExtension(fileName)
	byKey := func(key string) string {
		for _, f := range result.Fields {
			if f.Key == key {
				return strings.TrimSpace(f.ValueString())
			}
		}
		return ""
	}

	if strings.EqualFold(categoryName, "finance") {
		store := byKey("store_name")
		number := byKey("receipt_number")
		if number == "" {
			number = byKey("invoice_number")
		}
		date := nonDateChars.ReplaceAllString(byKey("date"), "")

		pieces := make([]string, 0, 4)
		for _, p := range []string{store, "Receipt", number, date} {
			if p != "" {
				pieces = append(pieces, p)
			}
		}
		if candidate := SanitizeAssetName(strings.Join(pieces, " - ")); candidate != "" {
			return candidate + extension
		}
	}

	prefix := strings.TrimSpace(categoryName)
	if prefix == "" {
		prefix = "Document"
	}
	base := strings.TrimSuffix(fileName, extension)
	candidate := SanitizeAssetName(prefix + " - " + base)
	if candidate == "" {
		candidate = base
	}
	return candidate + extension
}

// SanitizeAssetName strips filesystem-hostile characters, collapses
// whitespace, drops trailing dots and caps the length.
func SanitizeAssetName(name string) string {
	name = strings.TrimSpace(name)
	name = forbiddenNameChars.ReplaceAllString(name, "")
	name = nameWhitespace.ReplaceAllString(name, " ")
	name = trailingDots.ReplaceAllString(name, "")
	if len(name) > maxAssetNameLen {
		name = name[:maxAssetNameLen]
	}
	return name
}

func fileExtension(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx <= 0 {
		return ""
	}
	return fileName[idx:]
}
