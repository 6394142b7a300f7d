package model

import (
	"foody7-pricing/core/types"
	"foody7-pricing/internal/errors"
)

// Tiers returns the tiers in declared order.
func (m *Model) Tiers() []types.Tier {
	out := make([]types.Tier, len(m.tiers))
	copy(out, m.tiers)
	return out
}

// Tier looks up a tier by name.
func (m *Model) Tier(name string) (types.Tier, error) {
	i, ok := m.index[name]
	if !ok {
		return types.Tier{}, errors.NotFound("tier", name)
	}
	return m.tiers[i], nil
}

// NextTier returns the tier declared after name. ok is false for the last
// tier.
func (m *Model) NextTier(name string) (next types.Tier, ok bool, err error) {
	i, found := m.index[name]
	if !found {
		return types.Tier{}, false, errors.NotFound("tier", name)
	}
	if i+1 >= len(m.tiers) {
		return types.Tier{}, false, nil
	}
	return m.tiers[i+1], true, nil
}

// FirstTier returns the cheapest tier.
func (m *Model) FirstTier() types.Tier {
	return m.tiers[0]
}
