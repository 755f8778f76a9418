package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"car-integration/models"
)

func audiRow(attr, value string) *models.RawRow {
	return &models.RawRow{
		ID:            "5",
		MakeText:      str("Audi"),
		TypeName:      str("A4"),
		TypeNameFull:  str("Audi A4"),
		ModelText:     str("A4"),
		ModelTypeText: str("A4 Avant"),
		Attributes:    []models.Attribute{{Name: attr, Value: str(value)}},
	}
}

func TestPipelineEndToEnd(t *testing.T) {
	p := NewPipeline(newTestLogger())
	rows := []*models.RawRow{
		audiRow("Seats", "1"),
		audiRow("BodyColorText", "schwarz"),
	}

	result, err := p.Run(rows)
	require.NoError(t, err)
	require.NotEmpty(t, result.RunID)
	assert.Equal(t, 2, result.RawRows)

	require.Len(t, result.Aggregated, 1)
	agg := result.Aggregated[0]
	assert.Equal(t, models.IntID(5), agg.ID)
	assert.Equal(t, "1", agg.Attr("Seats").String)
	assert.Equal(t, "schwarz", agg.Attr("BodyColorText").String)

	require.Len(t, result.Normalized, 1)
	norm := result.Normalized[0]
	assert.Equal(t, "Single seater", norm.Attr(ColumnCarType).String)
	assert.Equal(t, "Black", norm.Attr(ColumnColor).String)
	assert.Equal(t, "Avant", norm.Attr(ColumnVariant).String)

	require.Len(t, result.Integrated, 1)
	out := result.Integrated[0]
	assert.Equal(t, "Single seater", out.CarType)
	assert.Equal(t, "Black", out.Color)
	assert.Equal(t, "CHF", out.Currency)
	assert.Equal(t, "LHD", out.Drive)
	assert.Equal(t, "CH", out.Country)
	assert.Equal(t, "car", out.Type)
	assert.Equal(t, "Other", out.Condition)
	assert.Equal(t, "Other", out.Zip)
	assert.Equal(t, sql.NullString{}, out.PriceOnRequest)

	// Stages own their outputs.
	assert.Equal(t, "schwarz", agg.Attr("BodyColorText").String)
}

func TestPipelineAbortsOnInvalidID(t *testing.T) {
	p := NewPipeline(newTestLogger())
	bad := audiRow("Seats", "4")
	bad.ID = "n/a"

	result, err := p.Run([]*models.RawRow{audiRow("Seats", "1"), bad})
	require.ErrorIs(t, err, ErrInvalidID)
	assert.Nil(t, result)
}

func TestPipelineRunIDsDiffer(t *testing.T) {
	p := NewPipeline(newTestLogger())
	a, err := p.Run([]*models.RawRow{audiRow("Seats", "1")})
	require.NoError(t, err)
	b, err := p.Run([]*models.RawRow{audiRow("Seats", "1")})
	require.NoError(t, err)
	assert.NotEqual(t, a.RunID, b.RunID)
}
