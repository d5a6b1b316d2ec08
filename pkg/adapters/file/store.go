// Package file provides a filesystem-backed flow store: one JSON document per
// flow in a configured directory. Suited to single-node deployments and
// version-controlled flow libraries.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quotedeck/flowkit/pkg/domain"
	"github.com/quotedeck/flowkit/pkg/schema"
)

// FlowStore implements ports.FlowStore on the local filesystem.
type FlowStore struct {
	BasePath string
}

// NewFlowStore creates a new FlowStore with the given base path.
// If basePath is empty, it defaults to ".flowkit/flows".
func NewFlowStore(basePath string) *FlowStore {
	if basePath == "" {
		basePath = filepath.Join(".flowkit", "flows")
	}
	return &FlowStore{BasePath: basePath}
}

func (f *FlowStore) path(flowID string) string {
	return filepath.Join(f.BasePath, flowID+".json")
}

// Save persists the flow as an indented JSON document.
func (f *FlowStore) Save(ctx context.Context, flow *domain.Flow) error {
	if flow.ID == "" {
		return fmt.Errorf("flow ID cannot be empty")
	}

	if err := os.MkdirAll(f.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure flow directory: %w", err)
	}

	data, err := schema.EncodeIndent(flow)
	if err != nil {
		return fmt.Errorf("failed to encode flow: %w", err)
	}

	if err := os.WriteFile(f.path(flow.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write flow file: %w", err)
	}
	return nil
}

// Load reads and decodes a flow document.
func (f *FlowStore) Load(ctx context.Context, flowID string) (*domain.Flow, error) {
	if flowID == "" {
		return nil, fmt.Errorf("flow ID cannot be empty")
	}

	data, err := os.ReadFile(f.path(flowID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrFlowNotFound
		}
		return nil, fmt.Errorf("failed to read flow file: %w", err)
	}

	flow, err := schema.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("flow %s: %w", flowID, err)
	}
	return flow, nil
}

// Delete removes the flow file.
func (f *FlowStore) Delete(ctx context.Context, flowID string) error {
	err := os.Remove(f.path(flowID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete flow file: %w", err)
	}
	return nil
}

// List returns all stored flow IDs.
func (f *FlowStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list flows: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
		}
	}
	return ids, nil
}
