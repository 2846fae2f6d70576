package services

import (
	"github.com/abrezinsky/pinplanner/internal/catalog"
	"github.com/abrezinsky/pinplanner/internal/planner"
)

// CatalogService exposes the loaded catalog to handlers
type CatalogService struct {
	cat *catalog.Catalog
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(cat *catalog.Catalog) *CatalogService {
	return &CatalogService{cat: cat}
}

// Boards lists boards in declaration order
func (s *CatalogService) Boards() []*catalog.Board {
	return s.cat.Boards()
}

// Board returns one board or a *planner.NotFoundError
func (s *CatalogService) Board(id string) (*catalog.Board, error) {
	b, ok := s.cat.Board(id)
	if !ok {
		return nil, &planner.NotFoundError{Kind: "board", ID: id}
	}
	return b, nil
}

// Components lists components in declaration order
func (s *CatalogService) Components() []*catalog.Component {
	return s.cat.Components()
}

// Component returns one component or a *planner.NotFoundError
func (s *CatalogService) Component(id string) (*catalog.Component, error) {
	c, ok := s.cat.Component(id)
	if !ok {
		return nil, &planner.NotFoundError{Kind: "component", ID: id}
	}
	return c, nil
}

// Dependencies resolves a component's dependency rules for a board. An empty
// or unknown board yields the default requirements.
func (s *CatalogService) Dependencies(componentID, boardID string) ([]planner.ResolvedDependency, error) {
	return planner.ResolveDependencies(s.cat, componentID, boardID)
}
