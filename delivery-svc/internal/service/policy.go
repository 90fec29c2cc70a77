package service

import (
	"fmt"
	"slices"

	"food-delivery/delivery-svc/internal/domain"
)

// PricingPolicy decides how much of a submitted order is taken on trust.
type PricingPolicy string

const (
	// PricingTrust stores the client's lines and amounts verbatim.
	PricingTrust PricingPolicy = "trust"
	// PricingRecompute keeps the client's lines and fee but derives subtotal and total.
	PricingRecompute PricingPolicy = "recompute"
	// PricingCatalog checks every line against the catalog and prices from it.
	PricingCatalog PricingPolicy = "catalog"
)

func ParsePricingPolicy(s string) (PricingPolicy, error) {
	switch p := PricingPolicy(s); p {
	case PricingTrust, PricingRecompute, PricingCatalog:
		return p, nil
	case "":
		return PricingTrust, nil
	default:
		return "", fmt.Errorf("unknown pricing policy %q", s)
	}
}

type TransitionPolicy interface {
	Allow(from, to domain.Status) bool
}

// PermissiveTransitions accepts any requested status.
type PermissiveTransitions struct{}

func (PermissiveTransitions) Allow(_, _ domain.Status) bool { return true }

// StrictTransitions lists the statuses reachable from each status. Statuses without an entry
// are terminal.
type StrictTransitions map[domain.Status][]domain.Status

var DefaultStrictTransitions = StrictTransitions{
	domain.StatusPending:        {domain.StatusPreparing, domain.StatusCancelled},
	domain.StatusPreparing:      {domain.StatusOutForDelivery, domain.StatusCancelled},
	domain.StatusOutForDelivery: {domain.StatusDelivered, domain.StatusCancelled},
}

func (t StrictTransitions) Allow(from, to domain.Status) bool {
	return slices.Contains(t[from], to)
}

func ParseTransitionPolicy(s string) (TransitionPolicy, error) {
	switch s {
	case "", "permissive":
		return PermissiveTransitions{}, nil
	case "strict":
		return DefaultStrictTransitions, nil
	default:
		return nil, fmt.Errorf("unknown status policy %q", s)
	}
}
