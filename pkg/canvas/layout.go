// Package canvas tracks node screen positions and selection for the visual
// builder. It is a presentation-only overlay: the execution engine never
// consults it, and a layout can be discarded and regenerated freely.
package canvas

import (
	"github.com/quotedeck/flowkit/pkg/builder"
	"github.com/quotedeck/flowkit/pkg/domain"
)

// Point is a 2D canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout is a side table from node ID to canvas position, plus the single
// selected node. A single editor session is assumed.
type Layout struct {
	positions map[string]Point
	selected  string
}

// NewLayout creates an empty layout.
func NewLayout() *Layout {
	return &Layout{positions: make(map[string]Point)}
}

// MoveNode places a node at the given coordinates. Unconditional: positions
// may overlap and there is no collision resolution.
func (l *Layout) MoveNode(nodeID string, x, y float64) {
	l.positions[nodeID] = Point{X: x, Y: y}
}

// Position returns the node's position and whether one is recorded.
func (l *Layout) Position(nodeID string) (Point, bool) {
	p, ok := l.positions[nodeID]
	return p, ok
}

// Remove drops a node's position, typically after the node is deleted.
func (l *Layout) Remove(nodeID string) {
	delete(l.positions, nodeID)
	if l.selected == nodeID {
		l.selected = ""
	}
}

// Select marks a node as the current selection. Selecting an unknown node is
// reported but leaves the selection unchanged; selecting "" clears it.
func (l *Layout) Select(nodeID string) error {
	if nodeID == "" {
		l.selected = ""
		return nil
	}
	if _, ok := l.positions[nodeID]; !ok {
		return &domain.NotFoundError{Kind: "node", ID: nodeID}
	}
	l.selected = nodeID
	return nil
}

// Selected returns the currently selected node ID, or "" when none.
func (l *Layout) Selected() string {
	return l.selected
}

// Positions returns a copy of the position table, for rendering or persisting
// alongside (but never inside) the flow document.
func (l *Layout) Positions() map[string]Point {
	out := make(map[string]Point, len(l.positions))
	for k, v := range l.positions {
		out[k] = v
	}
	return out
}

// DropNewNode composes node creation with placement, the single operation
// that crosses the canvas/graph boundary. It is atomic from the caller's
// point of view: if the node cannot be added, no position is recorded.
func (l *Layout) DropNewNode(d *builder.Draft, kind domain.NodeKind, x, y float64) (string, error) {
	id, err := d.AddNode(kind)
	if err != nil {
		return "", err
	}
	l.MoveNode(id, x, y)
	l.selected = id
	return id, nil
}
