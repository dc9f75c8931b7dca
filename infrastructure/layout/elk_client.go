package layout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"orgchart-backend/application/ports"

	"go.uber.org/zap"
)

// ElkClient talks to an ELK layout server over HTTP. The engine itself is
// a black box; this adapter only translates between the port types and the
// ELK JSON graph format.
type ElkClient struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewElkClient creates a layout client for an ELK server endpoint
func NewElkClient(endpoint string, timeout time.Duration, logger *zap.Logger) ports.LayoutEngine {
	return &ElkClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// elkGraph is the ELK JSON graph, used for both request and response
type elkGraph struct {
	ID            string            `json:"id"`
	LayoutOptions map[string]string `json:"layoutOptions,omitempty"`
	Children      []elkNode         `json:"children"`
	Edges         []elkEdge         `json:"edges"`
	Width         float64           `json:"width,omitempty"`
	Height        float64           `json:"height,omitempty"`
}

type elkNode struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
}

type elkEdge struct {
	ID      string   `json:"id"`
	Sources []string `json:"sources"`
	Targets []string `json:"targets"`
}

// Compute implements ports.LayoutEngine. An empty node set yields
// (nil, nil); every failure yields (nil, err) and never a partial result.
func (c *ElkClient) Compute(ctx context.Context, req ports.LayoutRequest) (*ports.LayoutResult, error) {
	if len(req.Nodes) == 0 {
		return nil, nil
	}

	graph := elkGraph{
		ID: "root",
		LayoutOptions: map[string]string{
			"elk.algorithm":                              req.Options.Algorithm,
			"elk.direction":                              req.Options.Direction,
			"elk.spacing.nodeNode":                       formatSpacing(req.Options.NodeSpacing),
			"elk.layered.spacing.nodeNodeBetweenLayers":  formatSpacing(req.Options.LayerSpacing),
		},
		Children: make([]elkNode, 0, len(req.Nodes)),
		Edges:    make([]elkEdge, 0, len(req.Edges)),
	}
	for _, n := range req.Nodes {
		graph.Children = append(graph.Children, elkNode{
			ID:     n.ID,
			Width:  n.Width,
			Height: n.Height,
		})
	}
	for _, e := range req.Edges {
		graph.Edges = append(graph.Edges, elkEdge{
			ID:      e.ID,
			Sources: e.Sources,
			Targets: e.Targets,
		})
	}

	body, err := json.Marshal(graph)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal layout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build layout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("layout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("layout server returned status %d", resp.StatusCode)
	}

	var laid elkGraph
	if err := json.NewDecoder(resp.Body).Decode(&laid); err != nil {
		return nil, fmt.Errorf("failed to decode layout response: %w", err)
	}

	result := &ports.LayoutResult{
		Positions: make(map[string]ports.LayoutPoint, len(laid.Children)),
		Width:     laid.Width,
		Height:    laid.Height,
	}
	for _, child := range laid.Children {
		result.Positions[child.ID] = ports.LayoutPoint{X: child.X, Y: child.Y}
	}

	// A response that dropped nodes would be a partial layout; reject it
	// wholesale so the caller degrades cleanly.
	for _, n := range req.Nodes {
		if _, ok := result.Positions[n.ID]; !ok {
			return nil, fmt.Errorf("layout response missing node %s", n.ID)
		}
	}

	c.logger.Debug("Layout computed",
		zap.Int("nodes", len(result.Positions)),
		zap.Float64("width", result.Width),
		zap.Float64("height", result.Height),
	)
	return result, nil
}

func formatSpacing(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
