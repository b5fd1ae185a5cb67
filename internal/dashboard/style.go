package dashboard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ChartStyle holds the labels and colors used when deriving chart data.
type ChartStyle struct {
	BarLabels       []string `yaml:"barLabels"`
	BarDatasetLabel string   `yaml:"barDatasetLabel"`
	BarColors       []string `yaml:"barColors"`
	BarBorderRadius int      `yaml:"barBorderRadius"`
	DoughnutPalette []string `yaml:"doughnutPalette"`
}

// DefaultChartStyle returns the stock dashboard look.
func DefaultChartStyle() *ChartStyle {
	return &ChartStyle{
		BarLabels:       []string{"Flowrate", "Pressure", "Temperature"},
		BarDatasetLabel: "Average Values",
		BarColors: []string{
			"rgba(77, 171, 247, 0.7)",
			"rgba(255, 107, 107, 0.7)",
			"rgba(255, 212, 59, 0.7)",
		},
		BarBorderRadius: 8,
		DoughnutPalette: []string{
			"#4dabf7",
			"#ff6b6b",
			"#ffd43b",
			"#63e6be",
			"#845ef7",
			"#ffa94d",
		},
	}
}

// LoadChartStyle reads a YAML override file. Fields left out keep their
// defaults; a missing file yields the defaults.
func LoadChartStyle(path string) (*ChartStyle, error) {
	style := DefaultChartStyle()
	if path == "" {
		return style, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return style, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read chart style: %w", err)
	}

	var override ChartStyle
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse chart style: %w", err)
	}

	if len(override.BarLabels) > 0 {
		if len(override.BarLabels) != 3 {
			return nil, fmt.Errorf("barLabels needs 3 entries, got %d", len(override.BarLabels))
		}
		style.BarLabels = override.BarLabels
	}
	if len(override.BarColors) > 0 {
		if len(override.BarColors) != 3 {
			return nil, fmt.Errorf("barColors needs 3 entries, got %d", len(override.BarColors))
		}
		style.BarColors = override.BarColors
	}
	if override.BarDatasetLabel != "" {
		style.BarDatasetLabel = override.BarDatasetLabel
	}
	if override.BarBorderRadius > 0 {
		style.BarBorderRadius = override.BarBorderRadius
	}
	if len(override.DoughnutPalette) > 0 {
		style.DoughnutPalette = override.DoughnutPalette
	}

	return style, nil
}

// SliceColor picks the palette entry for the i-th doughnut slice, wrapping
// around once the palette runs out.
func (s *ChartStyle) SliceColor(i int) string {
	return s.DoughnutPalette[i%len(s.DoughnutPalette)]
}
