// Package planner decides whether a component may occupy a board pin, tracks
// board occupancy, and resolves the supporting parts each component needs on a
// given board. It performs no I/O and holds no global state.
package planner

import (
	"github.com/abrezinsky/pinplanner/internal/catalog"
)

// ResolvedDependency is a dependency rule evaluated against one board.
// BoardReason is empty unless a board override supplied it.
type ResolvedDependency struct {
	Type           string                 `json:"type"`
	RequiredStatus catalog.RequiredStatus `json:"required"`
	BoardReason    string                 `json:"board_reason,omitempty"`
}

// ResolveDependencies evaluates the component's dependency rules for boardID,
// in declaration order. An unknown board falls back to each rule's default;
// only an unknown component fails.
func ResolveDependencies(cat *catalog.Catalog, componentID, boardID string) ([]ResolvedDependency, error) {
	comp, ok := cat.Component(componentID)
	if !ok {
		return nil, &NotFoundError{Kind: "component", ID: componentID}
	}

	out := make([]ResolvedDependency, 0, len(comp.Dependencies))
	for _, rule := range comp.Dependencies {
		dep := ResolvedDependency{Type: rule.Type, RequiredStatus: rule.DefaultRequired}
		if o, ok := rule.BoardOverrides[boardID]; ok {
			dep.RequiredStatus = o.RequiredStatus
			dep.BoardReason = o.Reason
		}
		out = append(out, dep)
	}
	return out, nil
}
