package ports

import "context"

// LayoutNode is one node of a layout request, sized but not positioned
type LayoutNode struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LayoutEdge is one directed link of a layout request. Sources and targets
// are slices because the layered protocol allows hyperedges; this system
// always sends exactly one of each.
type LayoutEdge struct {
	ID      string   `json:"id"`
	Sources []string `json:"sources"`
	Targets []string `json:"targets"`
}

// LayoutOptions configures the layout computation
type LayoutOptions struct {
	Algorithm    string  `json:"algorithm"`
	Direction    string  `json:"direction"`
	NodeSpacing  float64 `json:"nodeSpacing"`
	LayerSpacing float64 `json:"layerSpacing"`
}

// DefaultLayoutOptions returns the documented defaults: layered algorithm,
// top-to-bottom flow, 50px between siblings, 80px between layers.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		Algorithm:    "layered",
		Direction:    "DOWN",
		NodeSpacing:  50,
		LayerSpacing: 80,
	}
}

// LayoutRequest is the shape handed to the external layout engine
type LayoutRequest struct {
	Nodes   []LayoutNode
	Edges   []LayoutEdge
	Options LayoutOptions
}

// LayoutPoint is a node's computed position, origin top-left, same units
// as node width/height
type LayoutPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutResult is the computed layout: one position per input node and the
// overall canvas size
type LayoutResult struct {
	Positions map[string]LayoutPoint `json:"positions"`
	Width     float64                `json:"width"`
	Height    float64                `json:"height"`
}

// LayoutEngine computes 2-D positions for a node/edge set. The engine is an
// opaque external collaborator: the core only shapes the request and
// consumes the response. Implementations must return (nil, nil) for an
// empty node set and (nil, err) on failure; never a partial result, and
// never a panic.
type LayoutEngine interface {
	Compute(ctx context.Context, req LayoutRequest) (*LayoutResult, error)
}
