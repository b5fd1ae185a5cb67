package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Sameer280406/Projects/internal/models"
)

const (
	summarySheet = "Summary"
	typesSheet   = "Types"
)

// WriteSummaryXLSX writes a workbook with the metrics on one sheet and the
// type distribution on another. Absent metrics leave their value cell empty.
func WriteSummaryXLSX(w io.Writer, s *models.Summary) error {
	if s == nil {
		return fmt.Errorf("no summary to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	rows := []struct {
		metric string
		value  *models.Value
		unit   string
	}{
		{"Total Equipment", s.Total, ""},
		{"Avg Flowrate", s.AvgFlow, "m³/s"},
		{"Avg Pressure", s.AvgPressure, "bar"},
		{"Avg Temperature", s.AvgTemp, "K"},
	}

	if err := f.SetSheetRow(summarySheet, "A1", &[]interface{}{"Metric", "Value", "Unit"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &[]interface{}{r.metric, cellValue(r.value), r.unit}); err != nil {
			return fmt.Errorf("writing %s: %w", r.metric, err)
		}
	}

	if _, err := f.NewSheet(typesSheet); err != nil {
		return fmt.Errorf("creating types sheet: %w", err)
	}
	if err := f.SetSheetRow(typesSheet, "A1", &[]interface{}{"Type", "Count"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, tc := range s.Types {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(typesSheet, cell, &[]interface{}{tc.Label, cellValue(tc.Count)}); err != nil {
			return fmt.Errorf("writing type %s: %w", tc.Label, err)
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// cellValue writes numbers as numbers and anything else as the text the page
// would show. Absent values leave the cell empty.
func cellValue(v *models.Value) interface{} {
	if v.IsNumber() {
		if f, ok := v.Float64(); ok {
			return f
		}
	}
	if text := v.String(); text != "" {
		return text
	}
	return nil
}
