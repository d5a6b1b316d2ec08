package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/quotedeck/flowkit/pkg/adapters/memory"
	"github.com/quotedeck/flowkit/pkg/ports"
)

// CatalogConfig is the authored catalog document: the quote fields per trade
// and the product list the builder and validator resolve references against.
// Documents are decoded leniently so hand-edited files with extra keys load.
type CatalogConfig struct {
	Version  int                    `mapstructure:"version"`
	Trades   map[string]TradeFields `mapstructure:"trades"`
	Products []ports.Product        `mapstructure:"products"`
}

// TradeFields holds the field definitions for a single trade.
type TradeFields struct {
	Fields []ports.QuoteField `mapstructure:"fields"`
}

// LoadCatalog reads a catalog document from a YAML file.
// The document is parsed into a generic map first and then decoded with
// mapstructure, so unknown keys are tolerated rather than rejected.
func LoadCatalog(path string) (*CatalogConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a catalog document from YAML bytes.
func ParseCatalog(data []byte) (*CatalogConfig, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}

	var cfg CatalogConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode catalog document: %w", err)
	}

	if cfg.Version != 0 && cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported catalog version %d", cfg.Version)
	}
	return &cfg, nil
}

// Seed loads the catalog config into an in-memory catalog.
func (c *CatalogConfig) Seed(catalog *memory.Catalog) {
	for tradeID, trade := range c.Trades {
		catalog.SeedFields(tradeID, trade.Fields)
	}
	if len(c.Products) > 0 {
		catalog.SeedProducts(c.Products)
	}
}
