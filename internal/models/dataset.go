package models

import "time"

// Dataset is one stored upload as listed by the backend's summary endpoints.
type Dataset struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	UploadedAt       time.Time  `json:"uploaded_at"`
	TotalCount       *float64   `json:"total_count,omitempty"`
	AvgFlowrate      *float64   `json:"avg_flowrate,omitempty"`
	AvgPressure      *float64   `json:"avg_pressure,omitempty"`
	AvgTemperature   *float64   `json:"avg_temperature,omitempty"`
	TypeDistribution TypeCounts `json:"type_distribution"`
}

// ToSummary projects the stored record onto the shape the upload endpoint returns.
func (d *Dataset) ToSummary() *Summary {
	return &Summary{
		Total:       floatValue(d.TotalCount),
		AvgFlow:     floatValue(d.AvgFlowrate),
		AvgPressure: floatValue(d.AvgPressure),
		AvgTemp:     floatValue(d.AvgTemperature),
		Types:       d.TypeDistribution,
	}
}

func floatValue(f *float64) *Value {
	if f == nil {
		return nil
	}
	return Float(*f)
}
