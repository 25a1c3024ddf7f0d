package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"interview-insights-go/internal/types"
)

func sampleRecords() []types.InsightRecord {
	return []types.InsightRecord{
		{
			Index: 1, Start: "0:00.000", End: "0:05.000", Duration: "0:05.000",
			Speaker: "Entrevistado", OriginalText: "la entrega, tarde", TransformedText: "La entrega es tardía.",
			AreaCode: "1006", AreaName: "Distribución y logística", AreaCodes: "1006", AreaNames: "Distribución y logística",
			Sentiment: types.SentimentUrgent, SubjectCompany: "TBD", ConfidencePct: 55,
			Metadata: types.Metadata{Region: "norte", Year: "2024"},
		},
		{
			Index: 2, Start: "0:05.000", End: "0:09.000", Duration: "0:04.000",
			Speaker: "Entrevistador", OriginalText: "¿y los precios?", TransformedText: "¿y los precios?",
			AreaCode: "1003", AreaName: "Precios y rentabilidad", AreaCodes: "1003", AreaNames: "Precios y rentabilidad",
			Sentiment: types.SentimentOpportunity, SubjectCompany: "TBD", ConfidencePct: 55,
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "CSV": FormatCSV, " xlsx ": FormatXLSX, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, types.RecordHeader, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "la entrega, tarde", rows[1][5])
	assert.Equal(t, "URG", rows[1][11])
	assert.Equal(t, "55", rows[1][13])
	assert.Equal(t, "norte", rows[1][14])
	// Review columns stay empty.
	assert.Equal(t, []string{"", "", ""}, rows[2][21:])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRecords()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, types.RecordHeader, rows[0])
	assert.Equal(t, "La entrega es tardía.", rows[1][6])
	assert.Equal(t, "Entrevistador", rows[2][4])
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sampleRecords()))

	var got []types.InsightRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleRecords(), got)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
	assert.Equal(t, "application/json", FormatJSON.ContentType())
}
