package dashboard

import "github.com/Sameer280406/Projects/internal/models"

// BarDataset is a single Chart.js bar series.
type BarDataset struct {
	Label           string          `json:"label" msgpack:"label"`
	Data            []*models.Value `json:"data" msgpack:"data"`
	BackgroundColor []string        `json:"backgroundColor" msgpack:"backgroundColor"`
	BorderRadius    int             `json:"borderRadius" msgpack:"borderRadius"`
}

// BarChartData is the Chart.js data block for the averages chart.
type BarChartData struct {
	Labels   []string     `json:"labels" msgpack:"labels"`
	Datasets []BarDataset `json:"datasets" msgpack:"datasets"`
}

// DoughnutDataset is a single Chart.js doughnut series.
type DoughnutDataset struct {
	Data            []*models.Value `json:"data" msgpack:"data"`
	BackgroundColor []string        `json:"backgroundColor" msgpack:"backgroundColor"`
	BorderWidth     int             `json:"borderWidth" msgpack:"borderWidth"`
}

// DoughnutChartData is the Chart.js data block for the type distribution.
type DoughnutChartData struct {
	Labels   []string          `json:"labels" msgpack:"labels"`
	Datasets []DoughnutDataset `json:"datasets" msgpack:"datasets"`
}

// MetricCard is one labelled value in the metrics panel.
type MetricCard struct {
	Title string `json:"title" msgpack:"title"`
	Value string `json:"value" msgpack:"value"`
	Unit  string `json:"unit,omitempty" msgpack:"unit,omitempty"`
}

// Display joins value and unit the way the card shows them.
func (m MetricCard) Display() string {
	if m.Unit == "" || m.Value == "" {
		return m.Value
	}
	return m.Value + " " + m.Unit
}

// DeriveBarChartData projects the three averages with the default style.
func DeriveBarChartData(s *models.Summary) *BarChartData {
	return DefaultChartStyle().BarChartData(s)
}

// DeriveDoughnutChartData builds one slice per type with the default style.
func DeriveDoughnutChartData(s *models.Summary) *DoughnutChartData {
	return DefaultChartStyle().DoughnutChartData(s)
}

// BarChartData maps avgFlow, avgPressure and avgTemp onto the three bars.
func (st *ChartStyle) BarChartData(s *models.Summary) *BarChartData {
	if s == nil {
		return nil
	}
	return &BarChartData{
		Labels: append([]string(nil), st.BarLabels...),
		Datasets: []BarDataset{{
			Label:           st.BarDatasetLabel,
			Data:            []*models.Value{s.AvgFlow, s.AvgPressure, s.AvgTemp},
			BackgroundColor: append([]string(nil), st.BarColors...),
			BorderRadius:    st.BarBorderRadius,
		}},
	}
}

// DoughnutChartData keeps the backend's key order for the slices.
func (st *ChartStyle) DoughnutChartData(s *models.Summary) *DoughnutChartData {
	if s == nil {
		return nil
	}
	colors := make([]string, len(s.Types))
	for i := range s.Types {
		colors[i] = st.SliceColor(i)
	}
	return &DoughnutChartData{
		Labels: s.Types.Labels(),
		Datasets: []DoughnutDataset{{
			Data:            s.Types.Counts(),
			BackgroundColor: colors,
			BorderWidth:     0,
		}},
	}
}

// DeriveMetrics returns the four cards of the metrics panel, or nil without a summary.
func DeriveMetrics(s *models.Summary) []MetricCard {
	if s == nil {
		return nil
	}
	return []MetricCard{
		{Title: "Total Equipment", Value: s.Total.String()},
		{Title: "Avg Flowrate", Value: s.AvgFlow.String(), Unit: "m³/s"},
		{Title: "Avg Pressure", Value: s.AvgPressure.String(), Unit: "bar"},
		{Title: "Avg Temperature", Value: s.AvgTemp.String(), Unit: "K"},
	}
}
