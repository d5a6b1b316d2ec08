package builder_test

import (
	"testing"

	"github.com/quotedeck/flowkit/pkg/builder"
	"github.com/quotedeck/flowkit/pkg/domain"
)

func TestFlowBuilder_Build(t *testing.T) {
	flow, err := builder.NewFlow("f1", "Roof intake", "roofing").
		Question("q1").Text("Roof type?").BindField("roof_type").
		Answer("a_shingle", "Shingle", "shingle").Go("q2").
		Answer("a_tile", "Tile", "tile").Go("q2").
		Question("q2").Text("Need tear-off?").
		Answer("a_yes", "Yes", true).
		Do(domain.AddLineItem("tear_off", 1)).
		Go("end").
		Answer("a_no", "No", false).Go("end").
		End("end").
		Start("q1").
		Active().
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if flow.StartNodeID != "q1" || !flow.Active {
		t.Errorf("unexpected header: %+v", flow)
	}
	if len(flow.Nodes) != 3 {
		t.Errorf("expected 3 nodes, got %d", len(flow.Nodes))
	}
	if flow.Nodes["q1"].Question.BoundFieldID != "roof_type" {
		t.Error("bound field not set")
	}
	yes := flow.Nodes["q2"].FindAnswer("a_yes")
	if yes == nil || len(yes.Actions) != 1 {
		t.Errorf("answer actions not attached: %v", yes)
	}
}

func TestFlowBuilder_BuildFailsOnBlockingIssue(t *testing.T) {
	_, err := builder.NewFlow("f1", "Broken", "roofing").
		Question("q1").Text("First?").
		Answer("a1", "Go", nil).Go("nowhere").
		Start("q1").
		Build()
	if err == nil {
		t.Fatal("expected Build to fail on a dangling reference")
	}
}

func TestFlowBuilder_DeferredErrorSurfacesAtBuild(t *testing.T) {
	_, err := builder.NewFlow("f1", "Broken", "roofing").
		End("e1").Text("question text on an end node").
		Start("e1").
		Build()
	if err == nil {
		t.Fatal("expected Build to surface the deferred error")
	}
}

func TestFlowBuilder_WarningsDoNotBlockBuild(t *testing.T) {
	// q2 is a reachable dead-end question: a warning, not an error.
	flow, err := builder.NewFlow("f1", "Draft", "roofing").
		Question("q1").Text("First?").
		Answer("a1", "Next", nil).Go("q2").
		Question("q2").Text("Unfinished?").
		Start("q1").
		Build()
	if err != nil {
		t.Fatalf("Build failed on a warning: %v", err)
	}
	if len(flow.Validate()) == 0 {
		t.Error("expected a dead-end warning on q2")
	}
}
