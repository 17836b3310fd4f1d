// Package cart owns the shopping-cart state machine: an ordered list of line
// items plus aggregates that are recomputed from scratch after every
// transition so they can never drift from the lines they summarize.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/storefrontlabs/storefront-api/internal/catalog"
)

// LineItem pairs a product with a positive quantity. A quantity of zero never
// exists in a cart; such a line is removed, not retained.
type LineItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// State is a value: transitions return a new State and leave the receiver
// untouched. Items keep insertion order; quantity changes never reorder.
type State struct {
	Items     []LineItem      `json:"items"`
	ItemCount int             `json:"itemCount"`
	Total     decimal.Decimal `json:"total"`
}

// Empty returns the zero cart with aggregates initialized.
func Empty() State {
	return State{Items: []LineItem{}, ItemCount: 0, Total: decimal.Zero}
}

// FromItems rebuilds a state from a persisted line-item list. Lines with
// non-positive quantities are dropped rather than resurrected.
func FromItems(items []LineItem) State {
	kept := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	return recompute(kept)
}

// Add increments the quantity of an existing line by one, or appends a new
// line with quantity one.
func (s State) Add(product catalog.Product) State {
	items := cloneItems(s.Items)
	for i := range items {
		if items[i].Product.ID == product.ID {
			items[i].Quantity++
			return recompute(items)
		}
	}
	items = append(items, LineItem{Product: product, Quantity: 1})
	return recompute(items)
}

// Remove deletes the line for the given product id; absent ids are a no-op.
func (s State) Remove(productID catalog.ProductID) State {
	items := make([]LineItem, 0, len(s.Items))
	for _, item := range s.Items {
		if item.Product.ID != productID {
			items = append(items, item)
		}
	}
	return recompute(items)
}

// UpdateQuantity sets the matching line's quantity. Quantities at or below
// zero remove the line entirely.
func (s State) UpdateQuantity(productID catalog.ProductID, quantity int) State {
	items := make([]LineItem, 0, len(s.Items))
	for _, item := range s.Items {
		if item.Product.ID == productID {
			if quantity <= 0 {
				continue
			}
			item.Quantity = quantity
		}
		items = append(items, item)
	}
	return recompute(items)
}

// Clear resets to the empty cart.
func (s State) Clear() State {
	return Empty()
}

// recompute rebuilds both aggregates from the line items. Always from
// scratch, never incrementally adjusted.
func recompute(items []LineItem) State {
	count := 0
	total := decimal.Zero
	for _, item := range items {
		count += item.Quantity
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return State{Items: items, ItemCount: count, Total: total}
}

func cloneItems(items []LineItem) []LineItem {
	cloned := make([]LineItem, len(items))
	copy(cloned, items)
	return cloned
}
