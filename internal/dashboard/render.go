package dashboard

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/Sameer280406/Projects/internal/models"
)

// View is the state plus everything rendered from it.
type View struct {
	// Session is the id of the page the view belongs to, set by the server.
	Session  string             `json:"session,omitempty" msgpack:"session,omitempty"`
	FileName string             `json:"fileName" msgpack:"fileName"`
	Loading  bool               `json:"loading" msgpack:"loading"`
	Error    string             `json:"error" msgpack:"error"`
	Phase    Phase              `json:"phase" msgpack:"phase"`
	Attempt  uint64             `json:"attempt" msgpack:"attempt"`
	Summary  *models.Summary    `json:"summary" msgpack:"summary"`
	Metrics  []MetricCard       `json:"metrics" msgpack:"metrics"`
	Bar      *BarChartData      `json:"bar" msgpack:"bar"`
	Doughnut *DoughnutChartData `json:"doughnut" msgpack:"doughnut"`
}

// NewView derives the metrics and chart data for st.
func (s *ChartStyle) NewView(st State) View {
	return View{
		FileName: st.FileName,
		Loading:  st.Loading,
		Error:    st.Error,
		Phase:    st.Phase(),
		Attempt:  st.Attempt,
		Summary:  st.Summary,
		Metrics:  DeriveMetrics(st.Summary),
		Bar:      s.BarChartData(st.Summary),
		Doughnut: s.DoughnutChartData(st.Summary),
	}
}

// HasSummary reports whether the metrics panel and charts should be shown.
func (v View) HasSummary() bool {
	return v.Summary != nil
}

// BarJSON is the bar chart data as a JSON string for a data attribute.
func (v View) BarJSON() (string, error) {
	return chartJSON(v.Bar)
}

// DoughnutJSON is the doughnut chart data as a JSON string for a data attribute.
func (v View) DoughnutJSON() (string, error) {
	return chartJSON(v.Doughnut)
}

func chartJSON(data any) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encoding chart data: %w", err)
	}
	return string(b), nil
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// Render writes the whole dashboard page.
func Render(w io.Writer, v View) error {
	return pageTemplate.ExecuteTemplate(w, "page", v)
}

// RenderFragment writes only the dashboard body, for in-place refreshes.
func RenderFragment(w io.Writer, v View) error {
	return pageTemplate.ExecuteTemplate(w, "dashboard", v)
}
