package domain

import (
	"regexp"

	"github.com/google/uuid"
)

// Product is a catalog row. Price and GSTPercentage are the billing source of
// truth; anything price-shaped coming from a client is checked against them.
type Product struct {
	ID            uuid.UUID `json:"id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	GSTPercentage float64   `json:"gst_percentage"`
}

type ProductKeyKind int

const (
	KeyUUID ProductKeyKind = iota
	KeySKU
)

// ProductKey is a cart item id resolved to one of the two identifier schemes
// that share the lookup space: catalog UUIDs and human-readable SKUs.
type ProductKey struct {
	Kind  ProductKeyKind
	Value string
}

// Canonical 8-4-4-4-12 form only, with version and variant nibbles pinned.
// uuid.Parse is too permissive here: it accepts braced and URN forms, which
// must fall through to SKU lookup.
var uuidShape = regexp.MustCompile(
	`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// ParseProductKey classifies a raw item id as a UUID or a SKU.
func ParseProductKey(raw string) ProductKey {
	if uuidShape.MatchString(raw) {
		return ProductKey{Kind: KeyUUID, Value: raw}
	}
	return ProductKey{Kind: KeySKU, Value: raw}
}
