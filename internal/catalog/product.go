package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductID is the canonical product identifier. The upstream catalog emits
// numeric ids; they normalize to their decimal string form on decode so the
// rest of the system only ever sees one identifier type.
type ProductID string

func (id ProductID) String() string {
	return string(id)
}

func (id *ProductID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id must be a string or number: %s", string(data))
	}
	*id = ProductID(n.String())
	return nil
}

// Rating mirrors the upstream review aggregate.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a catalog entity. Immutable once fetched; the cart stores it by
// value and never mutates it.
type Product struct {
	ID          ProductID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Rating      Rating          `json:"rating"`
}
