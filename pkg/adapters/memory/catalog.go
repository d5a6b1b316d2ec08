package memory

import (
	"context"
	"sync"

	"github.com/quotedeck/flowkit/pkg/ports"
)

// Catalog is a static in-memory implementation of the field and product
// catalogs. Fields are grouped per trade; products are global.
type Catalog struct {
	fields   map[string][]ports.QuoteField
	products []ports.Product
	mu       sync.RWMutex
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{fields: make(map[string][]ports.QuoteField)}
}

// SeedFields registers the quote fields for a trade, replacing any previous set.
func (c *Catalog) SeedFields(tradeID string, fields []ports.QuoteField) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields[tradeID] = append([]ports.QuoteField(nil), fields...)
}

// SeedProducts registers the product list, replacing any previous set.
func (c *Catalog) SeedProducts(products []ports.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = append([]ports.Product(nil), products...)
}

// ListFields returns the quote fields for a trade.
func (c *Catalog) ListFields(ctx context.Context, tradeID string) ([]ports.QuoteField, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]ports.QuoteField(nil), c.fields[tradeID]...), nil
}

// ListProducts returns the product catalog.
func (c *Catalog) ListProducts(ctx context.Context) ([]ports.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]ports.Product(nil), c.products...), nil
}
