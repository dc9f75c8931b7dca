package queries

import (
	"orgchart-backend/application/ports"
)

// GetChartDataQuery asks for the renderable chart under the current
// search/team filters. Both filters are optional.
type GetChartDataQuery struct {
	Query string `json:"query,omitempty"`
	Team  string `json:"team,omitempty"`
}

// Validate validates the query
func (q GetChartDataQuery) Validate() error {
	return nil
}

// ChartNode is one renderable employee card
type ChartNode struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Designation string  `json:"designation"`
	Team        string  `json:"team,omitempty"`
	ManagerID   string  `json:"manager_id,omitempty"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
}

// ChartEdge is one manager→report connector
type ChartEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// ChartLayout carries positions for every chart node plus the canvas
// size. It is nil when the layout engine failed; the nodes and edges are
// still returned so the caller can degrade gracefully.
type ChartLayout struct {
	Positions map[string]ports.LayoutPoint `json:"positions"`
	Width     float64                      `json:"width"`
	Height    float64                      `json:"height"`
}

// GetChartDataResult is the complete chart for the current filters. A nil
// result means nothing is visible and no layout was requested.
type GetChartDataResult struct {
	Nodes  []ChartNode  `json:"nodes"`
	Edges  []ChartEdge  `json:"edges"`
	Layout *ChartLayout `json:"layout,omitempty"`
}
