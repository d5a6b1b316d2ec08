package canvas_test

import (
	"errors"
	"testing"

	"github.com/quotedeck/flowkit/pkg/builder"
	"github.com/quotedeck/flowkit/pkg/canvas"
	"github.com/quotedeck/flowkit/pkg/domain"
)

func TestLayout_MoveAndPosition(t *testing.T) {
	l := canvas.NewLayout()

	l.MoveNode("q1", 120, 40)
	l.MoveNode("q1", 10, 20) // moves are unconditional

	p, ok := l.Position("q1")
	if !ok || p.X != 10 || p.Y != 20 {
		t.Errorf("unexpected position: %+v ok=%v", p, ok)
	}
	if _, ok := l.Position("unknown"); ok {
		t.Error("unknown node should have no position")
	}
}

func TestLayout_Select(t *testing.T) {
	l := canvas.NewLayout()
	l.MoveNode("q1", 0, 0)

	if err := l.Select("q1"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if l.Selected() != "q1" {
		t.Errorf("selected: %q", l.Selected())
	}

	var notFound *domain.NotFoundError
	if err := l.Select("ghost"); !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
	if l.Selected() != "q1" {
		t.Error("failed select must leave selection unchanged")
	}

	if err := l.Select(""); err != nil {
		t.Fatalf("clearing selection failed: %v", err)
	}
	if l.Selected() != "" {
		t.Error("selection not cleared")
	}
}

func TestLayout_RemoveClearsSelection(t *testing.T) {
	l := canvas.NewLayout()
	l.MoveNode("q1", 0, 0)
	_ = l.Select("q1")

	l.Remove("q1")

	if _, ok := l.Position("q1"); ok {
		t.Error("position not removed")
	}
	if l.Selected() != "" {
		t.Error("selection should clear when the selected node is removed")
	}
}

func TestLayout_PositionsIsACopy(t *testing.T) {
	l := canvas.NewLayout()
	l.MoveNode("q1", 1, 2)

	posCopy := l.Positions()
	posCopy["q1"] = canvas.Point{X: 99, Y: 99}

	if p, _ := l.Position("q1"); p.X != 1 {
		t.Error("Positions must return a copy")
	}
}

func TestDropNewNode(t *testing.T) {
	l := canvas.NewLayout()
	d := builder.New("Test", "roofing")

	id, err := l.DropNewNode(d, domain.KindQuestion, 300, 150)
	if err != nil {
		t.Fatalf("DropNewNode failed: %v", err)
	}
	if _, ok := d.Flow().Nodes[id]; !ok {
		t.Error("node not added to the draft")
	}
	p, ok := l.Position(id)
	if !ok || p.X != 300 || p.Y != 150 {
		t.Errorf("position not recorded: %+v", p)
	}
	if l.Selected() != id {
		t.Error("dropped node should become the selection")
	}
}

func TestDropNewNode_InvalidKindAddsNothing(t *testing.T) {
	l := canvas.NewLayout()
	d := builder.New("Test", "roofing")

	if _, err := l.DropNewNode(d, "teleport", 0, 0); err == nil {
		t.Fatal("expected an error for an invalid kind")
	}
	if len(l.Positions()) != 0 {
		t.Error("no position may be recorded when the add fails")
	}
}
