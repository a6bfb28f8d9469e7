package models

import (
	"slices"
	"time"
)

// RemovedProduct is one audit entry for a permanently deleted product.
type RemovedProduct struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	RemovedAt   time.Time `json:"removed_at"`
}

// Blacklist tracks products excluded from alerting (hidden) and the audit
// trail of products deleted from the ledger (removed).
type Blacklist struct {
	HiddenProducts  []string         `json:"hidden_products"`
	RemovedProducts []RemovedProduct `json:"removed_products"`
}

// IsHidden reports whether the product is excluded from alert generation.
func (b *Blacklist) IsHidden(productID string) bool {
	return slices.Contains(b.HiddenProducts, productID)
}

// Hide adds the product to the hidden set. It returns true if the set
// changed, false if the product was already hidden.
func (b *Blacklist) Hide(productID string) bool {
	if b.IsHidden(productID) {
		return false
	}
	b.HiddenProducts = append(b.HiddenProducts, productID)
	return true
}

// Unhide removes the product from the hidden set. It returns true if the
// set changed, false if the product was not hidden.
func (b *Blacklist) Unhide(productID string) bool {
	idx := slices.Index(b.HiddenProducts, productID)
	if idx < 0 {
		return false
	}
	b.HiddenProducts = slices.Delete(b.HiddenProducts, idx, idx+1)
	return true
}

// HasRemoval reports whether an audit entry already exists for the product.
func (b *Blacklist) HasRemoval(productID string) bool {
	return slices.ContainsFunc(b.RemovedProducts, func(r RemovedProduct) bool {
		return r.ProductID == productID
	})
}
