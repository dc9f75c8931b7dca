package services

import (
	"sort"

	"orgchart-backend/domain/core/entities"
	"orgchart-backend/domain/core/valueobjects"
)

// Subgraph is the minimal node/edge set needed to render the currently
// visible employees while keeping every one of them connected to a root.
// It is derived and ephemeral; node and edge order is stable but carries
// no meaning beyond set membership.
type Subgraph struct {
	Nodes []valueobjects.EmployeeID
	Edges []SubgraphEdge
}

// SubgraphEdge is one manager→report link in the subgraph. Its ID is
// deterministically derived from the two endpoints.
type SubgraphEdge struct {
	ID         string
	ManagerID  valueobjects.EmployeeID
	EmployeeID valueobjects.EmployeeID
}

// ContainsNode reports whether an employee is part of the subgraph
func (s *Subgraph) ContainsNode(id valueobjects.EmployeeID) bool {
	for _, n := range s.Nodes {
		if n.Equals(id) {
			return true
		}
	}
	return false
}

// SubgraphExtractor computes the visible subgraph of the organization
// forest: the filtered employees plus every ancestor needed to keep each
// of them connected upward.
type SubgraphExtractor struct{}

// NewSubgraphExtractor creates a subgraph extractor
func NewSubgraphExtractor() *SubgraphExtractor {
	return &SubgraphExtractor{}
}

// Extract returns the induced subgraph for the visible employees, or nil
// when nothing is visible so no layout is requested downstream.
//
// Nodes start as the visible set; each visible employee's manager chain is
// walked upward, stopping at roots and at manager references that do not
// resolve in the full collection. Edges are derived purely from node-set
// membership, so partially visible ancestor chains still come out
// connected.
func (x *SubgraphExtractor) Extract(full, visible []*entities.Employee) *Subgraph {
	if len(visible) == 0 {
		return nil
	}

	byID := make(map[valueobjects.EmployeeID]*entities.Employee, len(full))
	for _, e := range full {
		byID[e.ID()] = e
	}

	nodes := make(map[valueobjects.EmployeeID]bool, len(visible))
	for _, e := range visible {
		nodes[e.ID()] = true
	}

	// Walk each visible employee's manager chain. The node set doubles as
	// the visited set, so the walk terminates even on cyclic data.
	for _, e := range visible {
		current := e.ManagerID()
		for !current.IsZero() {
			if nodes[current] {
				break
			}
			manager, ok := byID[current]
			if !ok {
				break
			}
			nodes[current] = true
			current = manager.ManagerID()
		}
	}

	result := &Subgraph{
		Nodes: make([]valueobjects.EmployeeID, 0, len(nodes)),
		Edges: make([]SubgraphEdge, 0, len(nodes)),
	}
	for id := range nodes {
		result.Nodes = append(result.Nodes, id)
	}
	sort.Slice(result.Nodes, func(i, j int) bool {
		return result.Nodes[i].String() < result.Nodes[j].String()
	})

	for _, id := range result.Nodes {
		e, ok := byID[id]
		if !ok {
			continue
		}
		managerID := e.ManagerID()
		if managerID.IsZero() || !nodes[managerID] {
			continue
		}
		result.Edges = append(result.Edges, SubgraphEdge{
			ID:         managerID.String() + "-" + id.String(),
			ManagerID:  managerID,
			EmployeeID: id,
		})
	}
	sort.Slice(result.Edges, func(i, j int) bool {
		return result.Edges[i].ID < result.Edges[j].ID
	})

	return result
}
