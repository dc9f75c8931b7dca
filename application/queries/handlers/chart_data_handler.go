package handlers

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"orgchart-backend/application/ports"
	"orgchart-backend/application/queries"
	querybus "orgchart-backend/application/queries/bus"
	"orgchart-backend/domain/core/aggregates"
	"orgchart-backend/domain/core/entities"
	"orgchart-backend/domain/core/valueobjects"
	"orgchart-backend/domain/services"
	"orgchart-backend/pkg/observability"

	"go.uber.org/zap"
)

// Default card size handed to the layout engine. The engine only needs
// consistent units; rendering measures real card sizes client-side.
const (
	chartNodeWidth  = 160.0
	chartNodeHeight = 56.0
)

// ChartDataHandler derives the renderable chart: visibility filter →
// subgraph extraction → external layout.
//
// Each layout computation carries a monotonically increasing sequence
// number. A computation that resolves after a newer one was issued is
// discarded instead of overwriting the newer chart, so overlapping
// recomputations can never rewind what the user sees.
type ChartDataHandler struct {
	hierarchy *aggregates.Hierarchy
	filter    *services.VisibilityFilter
	extractor *services.SubgraphExtractor
	engine    ports.LayoutEngine
	metrics   *observability.Metrics
	logger    *zap.Logger

	seq        atomic.Uint64
	mu         sync.Mutex
	currentSeq uint64
	current    *queries.GetChartDataResult
}

// NewChartDataHandler creates a chart data handler
func NewChartDataHandler(
	hierarchy *aggregates.Hierarchy,
	filter *services.VisibilityFilter,
	extractor *services.SubgraphExtractor,
	engine ports.LayoutEngine,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ChartDataHandler {
	return &ChartDataHandler{
		hierarchy: hierarchy,
		filter:    filter,
		extractor: extractor,
		engine:    engine,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle implements querybus.QueryHandler
func (h *ChartDataHandler) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	q, ok := query.(queries.GetChartDataQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	full := h.hierarchy.Employees()
	visible := h.filter.Visible(full, services.VisibilityCriteria{
		Query: q.Query,
		Team:  q.Team,
	})

	subgraph := h.extractor.Extract(full, visible)
	if subgraph == nil {
		// Nothing visible: no layout is requested downstream.
		h.store(h.seq.Add(1), nil)
		return (*queries.GetChartDataResult)(nil), nil
	}

	byID := make(map[valueobjects.EmployeeID]*entities.Employee, len(full))
	for _, e := range full {
		byID[e.ID()] = e
	}

	result := h.assemble(subgraph, byID)
	seq := h.seq.Add(1)
	result.Layout = h.computeLayout(ctx, subgraph)

	// Only the newest issued computation may become the current chart; a
	// superseded one is dropped silently.
	if h.seq.Load() == seq {
		h.store(seq, result)
	} else {
		h.metrics.Increment(ctx, "ChartLayoutStale", nil)
		h.logger.Debug("Discarded superseded chart computation",
			zap.Uint64("seq", seq),
			zap.Uint64("latest", h.seq.Load()),
		)
	}

	return result, nil
}

// Current returns the most recent non-superseded chart, which may be nil
func (h *ChartDataHandler) Current() *queries.GetChartDataResult {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func (h *ChartDataHandler) store(seq uint64, result *queries.GetChartDataResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if seq < h.currentSeq {
		return
	}
	h.currentSeq = seq
	h.current = result
}

func (h *ChartDataHandler) assemble(
	subgraph *services.Subgraph,
	byID map[valueobjects.EmployeeID]*entities.Employee,
) *queries.GetChartDataResult {
	result := &queries.GetChartDataResult{
		Nodes: make([]queries.ChartNode, 0, len(subgraph.Nodes)),
		Edges: make([]queries.ChartEdge, 0, len(subgraph.Edges)),
	}

	for _, id := range subgraph.Nodes {
		e, ok := byID[id]
		if !ok {
			continue
		}
		result.Nodes = append(result.Nodes, queries.ChartNode{
			ID:          e.ID().String(),
			Name:        e.Name(),
			Designation: e.Designation(),
			Team:        e.Team(),
			ManagerID:   e.ManagerID().String(),
			Width:       chartNodeWidth,
			Height:      chartNodeHeight,
		})
	}

	for _, edge := range subgraph.Edges {
		result.Edges = append(result.Edges, queries.ChartEdge{
			ID:     edge.ID,
			Source: edge.ManagerID.String(),
			Target: edge.EmployeeID.String(),
		})
	}

	return result
}

// computeLayout asks the external engine for positions. Any failure
// degrades to a nil layout; the chart still carries its nodes and edges.
func (h *ChartDataHandler) computeLayout(ctx context.Context, subgraph *services.Subgraph) *queries.ChartLayout {
	req := ports.LayoutRequest{
		Nodes:   make([]ports.LayoutNode, 0, len(subgraph.Nodes)),
		Edges:   make([]ports.LayoutEdge, 0, len(subgraph.Edges)),
		Options: ports.DefaultLayoutOptions(),
	}
	for _, id := range subgraph.Nodes {
		req.Nodes = append(req.Nodes, ports.LayoutNode{
			ID:     id.String(),
			Width:  chartNodeWidth,
			Height: chartNodeHeight,
		})
	}
	for _, edge := range subgraph.Edges {
		req.Edges = append(req.Edges, ports.LayoutEdge{
			ID:      edge.ID,
			Sources: []string{edge.ManagerID.String()},
			Targets: []string{edge.EmployeeID.String()},
		})
	}

	layout, err := h.engine.Compute(ctx, req)
	if err != nil {
		h.logger.Warn("Layout computation failed, rendering without positions",
			zap.Int("nodes", len(req.Nodes)),
			zap.Error(err),
		)
		return nil
	}
	if layout == nil {
		return nil
	}

	return &queries.ChartLayout{
		Positions: layout.Positions,
		Width:     layout.Width,
		Height:    layout.Height,
	}
}
