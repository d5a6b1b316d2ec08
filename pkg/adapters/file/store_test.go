package file_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/quotedeck/flowkit/pkg/adapters/file"
	"github.com/quotedeck/flowkit/pkg/builder"
	"github.com/quotedeck/flowkit/pkg/domain"
	"github.com/quotedeck/flowkit/pkg/ports/portstest"
	"github.com/quotedeck/flowkit/pkg/schema"
)

func TestFlowStoreContract(t *testing.T) {
	portstest.RunFlowStoreContract(t, file.NewFlowStore(t.TempDir()))
}

func TestFlowStore_WritesReadableDocuments(t *testing.T) {
	dir := t.TempDir()
	store := file.NewFlowStore(dir)
	ctx := context.Background()

	flow, err := builder.NewFlow("roof-1", "Roof intake", "roofing").
		Question("q1").Text("Roof type?").
		Answer("a1", "Shingle", "shingle").Go("done").
		End("done").
		Start("q1").
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if err := store.Save(ctx, flow); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// The document on disk is a plain flow document any tool can read.
	data, err := os.ReadFile(filepath.Join(dir, "roof-1.json"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	decoded, err := schema.Decode(data)
	if err != nil {
		t.Fatalf("document on disk not decodable: %v", err)
	}
	if decoded.ID != "roof-1" || decoded.Nodes["q1"] == nil {
		t.Errorf("unexpected document: %+v", decoded)
	}
}

func TestFlowStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := file.NewFlowStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := store.Load(context.Background(), "bad")
	var parseErr *schema.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestFlowStore_MissingFile(t *testing.T) {
	store := file.NewFlowStore(t.TempDir())

	_, err := store.Load(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrFlowNotFound) {
		t.Fatalf("expected ErrFlowNotFound, got %v", err)
	}
}
