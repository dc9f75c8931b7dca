package handlers

import (
	"net/http"

	"orgchart-backend/application/queries"
	querybus "orgchart-backend/application/queries/bus"
	"orgchart-backend/pkg/common"

	"go.uber.org/zap"
)

// ChartHandler serves the renderable chart: the visible subgraph with its
// ancestor closure, plus layout positions when the layout engine answered
// in time.
type ChartHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewChartHandler creates a new chart handler
func NewChartHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *ChartHandler {
	return &ChartHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// GetChart handles GET /chart
func (h *ChartHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	query := queries.GetChartDataQuery{
		Query: r.URL.Query().Get("q"),
		Team:  r.URL.Query().Get("team"),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Failed to compute chart", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute chart")
		return
	}

	// A nil result means nothing matched the filter; the client renders an
	// empty canvas rather than an error.
	if chart, ok := result.(*queries.GetChartDataResult); ok && chart == nil {
		common.RespondJSON(w, http.StatusOK, &queries.GetChartDataResult{
			Nodes: []queries.ChartNode{},
			Edges: []queries.ChartEdge{},
		})
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
