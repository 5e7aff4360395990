package models

// ChartSeriesPoint is one labelled value of a chart-ready series.
type ChartSeriesPoint struct {
	Label string  `json:"label"`
	Count float64 `json:"count"`
	Color string  `json:"color,omitempty"`
}

// TimelineOption is a selectable dashboard window.
type TimelineOption struct {
	Value string `json:"value" toml:"value"`
	Label string `json:"label" toml:"label"`
	Days  int    `json:"days" toml:"days"`
}
