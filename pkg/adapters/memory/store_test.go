package memory_test

import (
	"context"
	"testing"

	"github.com/quotedeck/flowkit/pkg/adapters/memory"
	"github.com/quotedeck/flowkit/pkg/ports"
	"github.com/quotedeck/flowkit/pkg/ports/portstest"
)

func TestFlowStoreContract(t *testing.T) {
	portstest.RunFlowStoreContract(t, memory.NewFlowStore())
}

func TestSessionStoreContract(t *testing.T) {
	portstest.RunSessionStoreContract(t, memory.NewSessionStore())
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	c := memory.NewCatalog()

	c.SeedFields("roofing", []ports.QuoteField{
		{ID: "roof_area", Name: "Roof area", DataType: "number"},
		{ID: "roof_type", Name: "Roof type", DataType: "select", Options: []string{"shingle", "tile"}},
	})
	c.SeedProducts([]ports.Product{
		{ID: "underlayment", SKU: "UL-1", Name: "Underlayment"},
	})

	fields, err := c.ListFields(ctx, "roofing")
	if err != nil {
		t.Fatalf("ListFields failed: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	other, err := c.ListFields(ctx, "plumbing")
	if err != nil {
		t.Fatalf("ListFields failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("fields must be scoped per trade, got %v", other)
	}

	products, err := c.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 1 || products[0].SKU != "UL-1" {
		t.Errorf("unexpected products: %v", products)
	}

	// Returned slices are copies.
	fields[0].ID = "mutated"
	again, _ := c.ListFields(ctx, "roofing")
	if again[0].ID != "roof_area" {
		t.Error("ListFields must return a copy")
	}
}
