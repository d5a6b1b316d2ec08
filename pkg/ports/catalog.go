package ports

import "context"

// QuoteField describes an external quote-field a question node can bind to.
type QuoteField struct {
	ID       string   `json:"field_id" mapstructure:"field_id"`
	Name     string   `json:"name" mapstructure:"name"`
	DataType string   `json:"data_type" mapstructure:"data_type"` // text, number, date, boolean, select, multiselect
	Options  []string `json:"options,omitempty" mapstructure:"options"`
}

// Product describes a catalog entry an add_line_item action can reference.
type Product struct {
	ID   string `json:"product_id" mapstructure:"product_id"`
	SKU  string `json:"sku" mapstructure:"sku"`
	Name string `json:"name" mapstructure:"name"`
}

// FieldCatalog exposes the quote fields available to a trade, used by the
// builder to populate bound-field choices.
type FieldCatalog interface {
	ListFields(ctx context.Context, tradeID string) ([]QuoteField, error)
}

// ProductCatalog exposes the products available for add_line_item actions.
type ProductCatalog interface {
	ListProducts(ctx context.Context) ([]Product, error)
}
