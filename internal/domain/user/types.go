package user

import "smartpark/internal/pkg/errs"

var (
	ErrInvalidRole = errs.New("invalid role")
	ErrInvalidTier = errs.New("invalid tier")
)

type Role string

const (
	RoleDriver Role = "driver"
	RoleAdmin  Role = "admin"
)

func NewRole(value string) (Role, error) {
	switch Role(value) {
	case RoleDriver, RoleAdmin:
		return Role(value), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}

// Tier is the billing tier of an account. Premium accounts may carry
// per-rate discount fractions applied at checkout.
type Tier string

const (
	TierBase    Tier = "base"
	TierPremium Tier = "premium"
)

func NewTier(value string) (Tier, error) {
	switch Tier(value) {
	case TierBase, TierPremium:
		return Tier(value), nil
	default:
		return "", ErrInvalidTier
	}
}

func (t Tier) String() string {
	return string(t)
}
