// Package domain defines core data structures used throughout the offer-taking bot.
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Asset describes a tradeable asset as the offer book reports it.
type Asset struct {
	// ID opaque asset identifier used by the offer book.
	ID string
	// Symbol canonical display symbol.
	Symbol string
	// UnitScale smallest-unit-to-display-unit ratio. 1 means amounts arrive
	// already in display units.
	UnitScale decimal.Decimal
}

// Registry resolves asset identifiers to display symbols and scaling rules.
// Unknown identifiers resolve to themselves with no scaling; resolution never fails.
type Registry struct {
	assets map[string]Asset
	// smallestUnitFloor raw amounts below this are treated as already scaled,
	// even for assets that carry a unit scale.
	smallestUnitFloor decimal.Decimal
}

// NewRegistry builds a registry from the configured assets.
func NewRegistry(assets []Asset, smallestUnitFloor decimal.Decimal) *Registry {
	m := make(map[string]Asset, len(assets))
	for _, a := range assets {
		if a.UnitScale.IsZero() {
			a.UnitScale = decimal.NewFromInt(1)
		}
		m[strings.ToLower(a.ID)] = a
	}
	return &Registry{assets: m, smallestUnitFloor: smallestUnitFloor}
}

// Resolve returns the asset for the given identifier. Unknown identifiers
// pass through as an asset whose symbol is the identifier itself.
func (r *Registry) Resolve(id string) Asset {
	if a, ok := r.assets[strings.ToLower(id)]; ok {
		return a
	}
	return Asset{ID: id, Symbol: id, UnitScale: decimal.NewFromInt(1)}
}

// NormalizeAmount converts a raw amount of the given asset into display units.
// Scaling is applied at most once: amounts at or below the smallest-unit floor
// are assumed to be in display units already and pass through unchanged.
func (r *Registry) NormalizeAmount(id string, amount decimal.Decimal) decimal.Decimal {
	a := r.Resolve(id)
	if a.UnitScale.LessThanOrEqual(decimal.NewFromInt(1)) {
		return amount
	}
	if amount.LessThanOrEqual(r.smallestUnitFloor) {
		return amount
	}
	return amount.Div(a.UnitScale)
}
