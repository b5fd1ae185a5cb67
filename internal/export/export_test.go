package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/xuri/excelize/v2"

	"github.com/Sameer280406/Projects/internal/dashboard"
	"github.com/Sameer280406/Projects/internal/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func sampleSummary() *models.Summary {
	return &models.Summary{
		Total:       models.Float(12),
		AvgFlow:     models.Float(3.5),
		AvgPressure: models.Float(101.2),
		AvgTemp:     models.Float(298.15),
		Types:       models.TypeCounts{{Label: "Pump", Count: models.Float(5)}, {Label: "Valve", Count: models.Float(7)}},
	}
}

func TestRenderBarPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBarPNG(&buf, dashboard.DeriveBarChartData(sampleSummary())))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderDoughnutPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderDoughnutPNG(&buf, dashboard.DeriveDoughnutChartData(sampleSummary())))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderPNG_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderBarPNG(&buf, nil), ErrEmptyChart)
	assert.ErrorIs(t, RenderDoughnutPNG(&buf, nil), ErrEmptyChart)

	empty := &models.Summary{}
	assert.ErrorIs(t, RenderBarPNG(&buf, dashboard.DeriveBarChartData(empty)), ErrEmptyChart)
	assert.ErrorIs(t, RenderDoughnutPNG(&buf, dashboard.DeriveDoughnutChartData(empty)), ErrEmptyChart)
	assert.Zero(t, buf.Len())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want drawing.Color
	}{
		{"#4dabf7", drawing.Color{R: 0x4d, G: 0xab, B: 0xf7, A: 255}},
		{"rgba(77, 171, 247, 0.5)", drawing.Color{R: 77, G: 171, B: 247, A: 128}},
		{"rgba(255,212,59,1)", drawing.Color{R: 255, G: 212, B: 59, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseColor(tt.in))
		})
	}

	for _, bad := range []string{"", "blue", "#12345", "#zzzzzz", "rgba(1,2,3)", "rgba(1,2,3,2)"} {
		assert.Equal(t, parseColor("not-a-color"), parseColor(bad), bad)
	}
}

func TestWriteSummaryXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryXLSX(&buf, sampleSummary()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Types"}, f.GetSheetList())

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Metric", "Value", "Unit"}, rows[0])
	assert.Equal(t, "Total Equipment", rows[1][0])
	assert.Equal(t, "12", rows[1][1])
	assert.Equal(t, []string{"Avg Flowrate", "3.5", "m³/s"}, rows[2])

	types, err := f.GetRows("Types")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Type", "Count"}, {"Pump", "5"}, {"Valve", "7"}}, types)
}

func TestWriteSummaryXLSX_AbsentValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummaryXLSX(&buf, &models.Summary{AvgTemp: models.Float(300)}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Empty(t, v)

	v, err = f.GetCellValue("Summary", "B5")
	require.NoError(t, err)
	assert.Equal(t, "300", v)

	assert.Error(t, WriteSummaryXLSX(&buf, nil))
}

func TestWriteSummaryXLSX_TextValues(t *testing.T) {
	s, err := models.ParseSummary([]byte(`{"total": "12", "avgFlow": "n/a", "avgTemp": true, "types": {"Pump": "5"}}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSummaryXLSX(&buf, s))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	assert.Equal(t, "12", rows[1][1])
	assert.Equal(t, "n/a", rows[2][1])

	v, err := f.GetCellValue("Summary", "B5")
	require.NoError(t, err)
	assert.Empty(t, v)

	types, err := f.GetRows("Types")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pump", "5"}, types[1])
}

func TestRenderBarPNG_NumericStrings(t *testing.T) {
	s, err := models.ParseSummary([]byte(`{"avgFlow": "3.5", "avgPressure": "high", "avgTemp": 300}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderBarPNG(&buf, dashboard.DeriveBarChartData(s)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}
