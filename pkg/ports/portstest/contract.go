// Package portstest provides reusable contract suites that verify adapter
// compliance with the ports interfaces.
package portstest

import (
	"context"
	"errors"
	"testing"

	"github.com/quotedeck/flowkit/pkg/builder"
	"github.com/quotedeck/flowkit/pkg/domain"
	"github.com/quotedeck/flowkit/pkg/ports"
)

// RunSessionStoreContract verifies an adapter complies with ports.SessionStore.
func RunSessionStoreContract(t *testing.T, store ports.SessionStore) {
	t.Helper()
	ctx := context.Background()

	state := domain.NewState("flow-1", "start")
	state.Fields["project_type"] = "residential"
	state.LineItems = append(state.LineItems, domain.LineItem{ProductID: "p1", Quantity: 2})

	t.Run("SaveAndLoad", func(t *testing.T) {
		if err := store.Save(ctx, "session-1", state); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		loaded, err := store.Load(ctx, "session-1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded.CurrentNodeID != "start" {
			t.Errorf("expected current node 'start', got %q", loaded.CurrentNodeID)
		}
		if loaded.Fields["project_type"] != "residential" {
			t.Errorf("unexpected fields: %v", loaded.Fields)
		}
		if len(loaded.LineItems) != 1 || loaded.LineItems[0].ProductID != "p1" {
			t.Errorf("unexpected line items: %v", loaded.LineItems)
		}
	})

	t.Run("LoadIsolation", func(t *testing.T) {
		loaded, err := store.Load(ctx, "session-1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		loaded.Fields["mutated"] = true

		again, err := store.Load(ctx, "session-1")
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if _, ok := again.Fields["mutated"]; ok {
			t.Error("mutating a loaded state leaked into the store")
		}
	})

	t.Run("LoadMissing", func(t *testing.T) {
		_, err := store.Load(ctx, "no-such-session")
		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "session-1"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		_, err := store.Load(ctx, "session-1")
		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
		}
	})
}

// RunFlowStoreContract verifies an adapter complies with ports.FlowStore.
func RunFlowStoreContract(t *testing.T, store ports.FlowStore) {
	t.Helper()
	ctx := context.Background()

	fb := builder.NewFlow("flow-contract", "Contract Flow", "roofing")
	fb.Question("start").
		Text("Residential or commercial?").
		BindField("project_type").
		Answer("res", "Residential", "residential").Go("done").
		Answer("com", "Commercial", "commercial").Go("done")
	fb.End("done")
	flow, err := fb.Start("start").Build()
	if err != nil {
		t.Fatalf("fixture build failed: %v", err)
	}

	t.Run("SaveAndLoad", func(t *testing.T) {
		if err := store.Save(ctx, flow); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		loaded, err := store.Load(ctx, "flow-contract")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded.Name != "Contract Flow" {
			t.Errorf("expected name 'Contract Flow', got %q", loaded.Name)
		}
		if len(loaded.Nodes) != 2 {
			t.Errorf("expected 2 nodes, got %d", len(loaded.Nodes))
		}
		start, err := loaded.Node("start")
		if err != nil {
			t.Fatalf("start node missing: %v", err)
		}
		if start.Question == nil || len(start.Question.Answers) != 2 {
			t.Errorf("question payload not preserved: %+v", start)
		}
	})

	t.Run("List", func(t *testing.T) {
		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		found := false
		for _, id := range ids {
			if id == "flow-contract" {
				found = true
			}
		}
		if !found {
			t.Errorf("flow-contract missing from list: %v", ids)
		}
	})

	t.Run("LoadMissing", func(t *testing.T) {
		_, err := store.Load(ctx, "no-such-flow")
		if !errors.Is(err, domain.ErrFlowNotFound) {
			t.Errorf("expected ErrFlowNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "flow-contract"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		_, err := store.Load(ctx, "flow-contract")
		if !errors.Is(err, domain.ErrFlowNotFound) {
			t.Errorf("expected ErrFlowNotFound after delete, got %v", err)
		}
	})
}
