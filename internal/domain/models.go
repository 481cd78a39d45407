package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ExtractedField is one typed key/value pair pulled out of a document.
// Value is always a string or a float64 after normalization.
type ExtractedField struct {
	Key        string      `json:"key"`
	Value      interface{} `json:"value"`
	Unit       string      `json:"unit,omitempty"`
	Confidence float64     `json:"confidence"`
	Source     FieldSource `json:"source"`
}

// ValueString renders the field value for dedup signatures, display, and indexing.
func (f ExtractedField) ValueString() string {
	switch v := f.Value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ExtractionResult is the normalized output of one extraction pass.
// Results are never mutated in place; reconciliation builds a fresh one.
type ExtractionResult struct {
	Summary      string           `json:"summary"`
	Fields       []ExtractedField `json:"fields"`
	Entities     []string         `json:"entities"`
	CategorySlug string           `json:"category_slug"`
	CategoryName string           `json:"category_name,omitempty"`
	RawText      string           `json:"raw_text,omitempty"`
	AssetName    string           `json:"asset_name,omitempty"`
}

// FieldList is a JSONB-backed list of extracted fields.
type FieldList []ExtractedField

func (l FieldList) Value() (driver.Value, error) {
	if l == nil {
		l = FieldList{}
	}
	return json.Marshal(l)
}

func (l *FieldList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// StringList is a JSONB-backed list of strings.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported scan source %T", src)
	}
}

// Owner represents a document owner and their extraction preferences.
// Identity and authentication live with the upstream gateway; this record
// only carries what the extraction pipeline needs.
type Owner struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	Email         string         `db:"email" json:"email"`
	DisplayName   string         `db:"display_name" json:"display_name"`
	Mode          ExtractionMode `db:"extraction_mode" json:"extraction_mode"`
	Provider      string         `db:"provider" json:"provider,omitempty"`
	CredentialRef string         `db:"credential_ref" json:"credential_ref,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// Category groups assets under an owner. Slugs are lowercase hyphenated and
// unique per owner; creation is lazy on first reference.
type Category struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	OwnerID         uuid.UUID  `db:"owner_id" json:"owner_id"`
	Name            string     `db:"name" json:"name"`
	Slug            string     `db:"slug" json:"slug"`
	IsDefault       bool       `db:"is_default" json:"is_default"`
	FieldPriorities StringList `db:"field_priorities" json:"field_priorities"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// Asset is an ingested document together with its extraction record.
type Asset struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	OwnerID       uuid.UUID      `db:"owner_id" json:"owner_id"`
	FileName      string         `db:"file_name" json:"file_name"`
	MimeType      string         `db:"mime_type" json:"mime_type"`
	FileSizeBytes int64          `db:"file_size_bytes" json:"file_size_bytes"`
	PagePaths     StringList     `db:"page_paths" json:"page_paths"`
	Status        AssetStatus    `db:"status" json:"status"`
	Mode          ExtractionMode `db:"extraction_mode" json:"extraction_mode"`
	Provider      string         `db:"provider" json:"provider,omitempty"`
	Summary       string         `db:"summary" json:"summary"`
	Fields        FieldList      `db:"fields" json:"fields"`
	Entities      StringList     `db:"entities" json:"entities"`
	CategoryID    *uuid.UUID     `db:"category_id" json:"category_id,omitempty"`
	AssetName     string         `db:"asset_name" json:"asset_name,omitempty"`
	RawText       string         `db:"raw_text" json:"raw_text,omitempty"`
	ErrorMessage  string         `db:"error_message" json:"error_message,omitempty"`
	Attempts      int            `db:"attempts" json:"attempts"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// ExtractionJob is the unit of work handed to the extraction pipeline.
// ProviderID and CredentialRef are set iff Mode is model-assisted.
type ExtractionJob struct {
	DocumentID    uuid.UUID      `json:"document_id"`
	OwnerID       uuid.UUID      `json:"owner_id"`
	PagePaths     []string       `json:"page_paths"`
	Mode          ExtractionMode `json:"mode"`
	ProviderID    string         `json:"provider_id,omitempty"`
	CredentialRef string         `json:"credential_ref,omitempty"`
}
