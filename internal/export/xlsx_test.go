package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"scanvault/internal/domain"
	"scanvault/internal/export"
)

func TestAssetsXLSX(t *testing.T) {
	categoryID := uuid.New()
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	assets := []domain.Asset{
		{
			ID:         uuid.New(),
			AssetName:  "Acme - Receipt - 10423.pdf",
			FileName:   "scan_001.pdf",
			Status:     domain.AssetStatusReady,
			Mode:       domain.ModeModel,
			Summary:    "A grocery receipt.",
			CategoryID: &categoryID,
			Fields: domain.FieldList{
				{Key: "total_amount", Value: 12.75, Unit: "USD", Confidence: 0.9, Source: domain.SourceModel},
				{Key: "store_name", Value: "Acme Market", Confidence: 0.85, Source: domain.SourceModel},
			},
			Entities:  domain.StringList{"Acme Market", "Visa"},
			CreatedAt: created,
		},
		{
			ID:        uuid.New(),
			FileName:  "notes.png",
			Status:    domain.AssetStatusFailed,
			Mode:      domain.ModeHeuristic,
			CreatedAt: created,
		},
	}
	categoryNames := map[string]string{categoryID.String(): "Finance"}

	data, err := export.AssetsXLSX(assets, categoryNames)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = workbook.Close() }()

	rows, err := workbook.GetRows("Assets")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"Created", "Name", "File", "Category", "Status", "Mode", "Summary", "Fields", "Entities",
	}, rows[0])

	assert.Equal(t, "2024-01-15", rows[1][0])
	assert.Equal(t, "Acme - Receipt - 10423.pdf", rows[1][1])
	assert.Equal(t, "Finance", rows[1][3])
	assert.Equal(t, "ready", rows[1][4])
	assert.Equal(t, "model-assisted", rows[1][5])
	assert.Equal(t, "total_amount=12.75 USD; store_name=Acme Market", rows[1][7])
	assert.Equal(t, "Acme Market, Visa", rows[1][8])

	// No category resolved: the column stays blank.
	assert.Equal(t, "notes.png", rows[2][2])
	assert.Equal(t, "failed", rows[2][4])
}

func TestAssetsXLSX_Empty(t *testing.T) {
	data, err := export.AssetsXLSX(nil, nil)
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = workbook.Close() }()

	rows, err := workbook.GetRows("Assets")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
