package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/quotedeck/flowkit/pkg/domain"
)

// Encode serializes a flow to its portable JSON document form.
func Encode(flow *domain.Flow) ([]byte, error) {
	if flow == nil {
		return nil, &ParseError{Reason: "nil flow"}
	}
	data, err := json.Marshal(flow)
	if err != nil {
		return nil, fmt.Errorf("encode flow %s: %w", flow.ID, err)
	}
	return data, nil
}

// EncodeIndent is Encode with human-readable indentation, used by file stores
// and CLI export.
func EncodeIndent(flow *domain.Flow) ([]byte, error) {
	data, err := Encode(flow)
	if err != nil {
		return nil, err
	}
	var buf json.RawMessage = data
	out, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("indent flow %s: %w", flow.ID, err)
	}
	return out, nil
}

// Decode parses a JSON flow document. Corrupt input is reported as a
// *ParseError rather than a panic or an opaque failure.
func Decode(data []byte) (*domain.Flow, error) {
	var flow domain.Flow
	if err := json.Unmarshal(data, &flow); err != nil {
		return nil, &ParseError{Reason: "invalid JSON document", Err: err}
	}
	normalize(&flow)
	return &flow, nil
}

// DecodeYAML parses a YAML flow document by converting it to JSON first, so
// unknown-field preservation behaves identically for both formats.
func DecodeYAML(data []byte) (*domain.Flow, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, &ParseError{Reason: "invalid YAML document", Err: err}
	}
	jsonData, err := json.Marshal(tree)
	if err != nil {
		return nil, &ParseError{Reason: "YAML document not representable as JSON", Err: err}
	}
	return Decode(jsonData)
}

// normalize backfills node IDs from their map keys and drops nil node entries.
// Documents keyed by node ID may omit the redundant node_id field.
func normalize(flow *domain.Flow) {
	if flow.Nodes == nil {
		flow.Nodes = make(map[string]*domain.Node)
	}
	for id, n := range flow.Nodes {
		if n == nil {
			delete(flow.Nodes, id)
			continue
		}
		if n.ID == "" {
			n.ID = id
		}
	}
}
