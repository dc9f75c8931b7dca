package layout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orgchart-backend/application/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func layoutRequest() ports.LayoutRequest {
	return ports.LayoutRequest{
		Nodes: []ports.LayoutNode{
			{ID: "ceo", Width: 160, Height: 56},
			{ID: "vp", Width: 160, Height: 56},
		},
		Edges: []ports.LayoutEdge{
			{ID: "ceo-vp", Sources: []string{"ceo"}, Targets: []string{"vp"}},
		},
		Options: ports.DefaultLayoutOptions(),
	}
}

func TestElkClient_Compute(t *testing.T) {
	var received elkGraph
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		// Echo the graph back with positions and a canvas size.
		laid := received
		for i := range laid.Children {
			laid.Children[i].X = float64(i) * 210
			laid.Children[i].Y = float64(i) * 136
		}
		laid.Width = 420
		laid.Height = 300
		_ = json.NewEncoder(w).Encode(laid)
	}))
	defer srv.Close()

	client := NewElkClient(srv.URL, time.Second, zap.NewNop())
	result, err := client.Compute(context.Background(), layoutRequest())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, float64(420), result.Width)
	assert.Equal(t, float64(300), result.Height)
	require.Len(t, result.Positions, 2)
	assert.Equal(t, ports.LayoutPoint{X: 0, Y: 0}, result.Positions["ceo"])
	assert.Equal(t, ports.LayoutPoint{X: 210, Y: 136}, result.Positions["vp"])

	// The request carried the layered options.
	assert.Equal(t, "layered", received.LayoutOptions["elk.algorithm"])
	assert.Equal(t, "DOWN", received.LayoutOptions["elk.direction"])
	assert.Equal(t, "50", received.LayoutOptions["elk.spacing.nodeNode"])
	assert.Equal(t, "80", received.LayoutOptions["elk.layered.spacing.nodeNodeBetweenLayers"])
}

func TestElkClient_EmptyRequest(t *testing.T) {
	client := NewElkClient("http://unused.invalid", time.Second, zap.NewNop())

	result, err := client.Compute(context.Background(), ports.LayoutRequest{})
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestElkClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewElkClient(srv.URL, time.Second, zap.NewNop())
	result, err := client.Compute(context.Background(), layoutRequest())
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestElkClient_RejectsPartialResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Respond with one node missing.
		_ = json.NewEncoder(w).Encode(elkGraph{
			ID:       "root",
			Children: []elkNode{{ID: "ceo", X: 0, Y: 0}},
		})
	}))
	defer srv.Close()

	client := NewElkClient(srv.URL, time.Second, zap.NewNop())
	result, err := client.Compute(context.Background(), layoutRequest())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "vp")
}

func TestElkClient_Unreachable(t *testing.T) {
	client := NewElkClient("http://127.0.0.1:1", 100*time.Millisecond, zap.NewNop())

	result, err := client.Compute(context.Background(), layoutRequest())
	assert.Error(t, err)
	assert.Nil(t, result)
}
