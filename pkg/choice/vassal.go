package choice

import (
	"context"
	"fmt"
	"sync"

	"github.com/jwebster45206/ravenlog/pkg/entity"
)

// Claim is one vassal taken by one house.
type Claim struct {
	House  *entity.House `json:"house"`
	Vassal *entity.House `json:"vassal"`
}

// VassalClaim lets each claimant, in order, take command of one vassal house
// for the turn. It ends when every claimant has chosen or no vassal is left.
type VassalClaim struct {
	mu        sync.Mutex
	claimants []*entity.House
	next      int
	vassals   []*entity.House
	claims    []Claim
	onClaim   func(context.Context, Claim) error
}

var _ Delegate = (*VassalClaim)(nil)

// VassalOption configures a VassalClaim.
type VassalOption func(*VassalClaim)

// OnClaim registers a hook run before a claim is recorded. It receives the
// context passed to Choose. If the hook fails the claim is not recorded and
// Choose returns the hook's error.
func OnClaim(fn func(context.Context, Claim) error) VassalOption {
	return func(v *VassalClaim) { v.onClaim = fn }
}

// NewVassalClaim creates the decision. Claimants choose in the given order;
// vassals are offered in the given order.
func NewVassalClaim(claimants, vassals []*entity.House, opts ...VassalOption) (*VassalClaim, error) {
	seen := make(map[entity.HouseID]bool)
	for _, h := range append(append([]*entity.House{}, claimants...), vassals...) {
		if h == nil {
			return nil, fmt.Errorf("vassal claim: nil house")
		}
		if seen[h.ID] {
			return nil, fmt.Errorf("vassal claim: house %s listed twice", h.ID)
		}
		seen[h.ID] = true
	}

	v := &VassalClaim{
		claimants: append([]*entity.House{}, claimants...),
		vassals:   append([]*entity.House{}, vassals...),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

func (v *VassalClaim) ActingHouse() *entity.House {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.acting()
}

func (v *VassalClaim) acting() *entity.House {
	if v.next >= len(v.claimants) || len(v.vassals) == 0 {
		return nil
	}
	return v.claimants[v.next]
}

func (v *VassalClaim) IsControlledBy(viewer Viewer) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	h := v.acting()
	return h != nil && viewer != nil && viewer.Controls(h.ID)
}

// ClaimableTargets returns the vassals still unclaimed, in offer order.
func (v *VassalClaim) ClaimableTargets() []*entity.House {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.acting() == nil {
		return nil
	}
	out := make([]*entity.House, len(v.vassals))
	copy(out, v.vassals)
	return out
}

// Choose records that the acting house commands target this turn, then
// passes the decision to the next claimant.
func (v *VassalClaim) Choose(ctx context.Context, viewer Viewer, target *entity.House) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	house := v.acting()
	if house == nil {
		return ErrClosed
	}
	if viewer == nil || !viewer.Controls(house.ID) {
		return fmt.Errorf("%w: %s", ErrNotInControl, house.ID)
	}
	at := -1
	if target != nil {
		for i, h := range v.vassals {
			if h.ID == target.ID {
				at = i
				break
			}
		}
	}
	if at < 0 {
		return ErrInvalidTarget
	}

	claim := Claim{House: house, Vassal: v.vassals[at]}
	if v.onClaim != nil {
		if err := v.onClaim(ctx, claim); err != nil {
			return err
		}
	}

	v.claims = append(v.claims, claim)
	v.vassals = append(v.vassals[:at:at], v.vassals[at+1:]...)
	v.next++
	return nil
}

// Claims returns the claims made so far, in order.
func (v *VassalClaim) Claims() []Claim {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Claim, len(v.claims))
	copy(out, v.claims)
	return out
}

// Done reports whether the decision is over.
func (v *VassalClaim) Done() bool {
	return v.ActingHouse() == nil
}
