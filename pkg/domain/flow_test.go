package domain_test

import (
	"errors"
	"testing"

	"github.com/quotedeck/flowkit/pkg/domain"
)

func TestFlow_NodeLookup(t *testing.T) {
	f := twoQuestionFlow()

	n, err := f.Node("q1")
	if err != nil {
		t.Fatalf("Node failed: %v", err)
	}
	if n.ID != "q1" {
		t.Errorf("expected q1, got %s", n.ID)
	}

	_, err = f.Node("missing")
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestFlow_CloneIsDeep(t *testing.T) {
	f := twoQuestionFlow()
	f.Nodes["q1"].Question.Answers[0].Actions = []domain.Action{
		domain.PopulateField("roof_type", "shingle"),
	}

	clone := f.Clone()

	clone.Nodes["q1"].Question.Text = "Changed"
	clone.Nodes["q1"].Question.Answers[0].NextNodeID = "end"
	clone.Nodes["q1"].Question.Answers[0].Actions[0].FieldID = "changed"
	delete(clone.Nodes, "q2")

	if f.Nodes["q1"].Question.Text != "First?" {
		t.Error("clone shares question payload with original")
	}
	if f.Nodes["q1"].Question.Answers[0].NextNodeID != "q2" {
		t.Error("clone shares answer slice with original")
	}
	if f.Nodes["q1"].Question.Answers[0].Actions[0].FieldID != "roof_type" {
		t.Error("clone shares action slice with original")
	}
	if _, ok := f.Nodes["q2"]; !ok {
		t.Error("clone shares node map with original")
	}
}

func TestFindAnswer(t *testing.T) {
	n := twoQuestionFlow().Nodes["q1"]

	if a := n.FindAnswer("yes"); a == nil || a.Text != "Yes" {
		t.Errorf("expected answer yes, got %v", a)
	}
	if a := n.FindAnswer("nope"); a != nil {
		t.Errorf("expected nil for unknown answer, got %v", a)
	}
}

func TestNewState(t *testing.T) {
	s := domain.NewState("f1", "q1")

	if s.CurrentNodeID != "q1" || s.Status != domain.StatusActive {
		t.Fatalf("unexpected initial state: %+v", s)
	}
	if s.Visits["q1"] != 1 {
		t.Errorf("start node should count as visited once, got %d", s.Visits["q1"])
	}
	if len(s.History) != 1 || s.History[0] != "q1" {
		t.Errorf("history should open with the start node, got %v", s.History)
	}
}

func TestState_CloneIsDeep(t *testing.T) {
	s := domain.NewState("f1", "q1")
	s.Fields["roof_type"] = "shingle"
	s.LineItems = append(s.LineItems, domain.LineItem{ProductID: "p1", Quantity: 2})

	clone := s.Clone()
	clone.Fields["roof_type"] = "tile"
	clone.LineItems[0].Quantity = 9
	clone.Visits["q1"] = 99
	clone.History = append(clone.History, "q2")

	if s.Fields["roof_type"] != "shingle" {
		t.Error("clone shares fields map")
	}
	if s.LineItems[0].Quantity != 2 {
		t.Error("clone shares line item slice")
	}
	if s.Visits["q1"] != 1 {
		t.Error("clone shares visits map")
	}
	if len(s.History) != 1 {
		t.Error("clone shares history slice")
	}
}

func TestState_Draft(t *testing.T) {
	s := domain.NewState("f1", "q1")
	s.Fields["roof_type"] = "shingle"
	s.LineItems = append(s.LineItems, domain.LineItem{ProductID: "p1", Quantity: 1})

	draft := s.Draft()
	if draft.FlowID != "f1" {
		t.Errorf("draft flow id: %s", draft.FlowID)
	}
	if draft.Fields["roof_type"] != "shingle" || len(draft.LineItems) != 1 {
		t.Errorf("unexpected draft: %+v", draft)
	}

	// The draft is a snapshot, not a view.
	draft.Fields["roof_type"] = "tile"
	if s.Fields["roof_type"] != "shingle" {
		t.Error("draft shares fields map with state")
	}
}
