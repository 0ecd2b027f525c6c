package storefront

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// mutationPhase tracks one optimistic edit through its lifecycle.
type mutationPhase uint8

const (
	mutationIdle mutationPhase = iota
	mutationApplied
	mutationReconciled
	mutationRolledBack
)

// cartMutation is the two-phase protocol behind every cart write: apply the
// local edit synchronously, then confirm it remotely with a defined
// reconciliation action.
type cartMutation struct {
	phase mutationPhase

	apply  func()
	remote func(ctx context.Context) error

	// refetchOnSuccess resynchronizes even after a confirmed write; the add
	// path uses it to swap placeholder ids for server-assigned ones.
	refetchOnSuccess bool
	// refetchOnFailure restores ground truth instead of keeping an
	// optimistic value the server rejected.
	refetchOnFailure bool
}

type cartPayload struct {
	Cart []CartLine `json:"cart"`
}

type addCartPayload struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type updateCartPayload struct {
	Quantity int `json:"quantity"`
}

// CartStore owns the cart collection; no other component mutates it. Writes
// are optimistic: the local edit lands before the remote call, and the
// reconciliation policy per operation decides what happens after.
//
// Two in-flight mutations on the same product are not serialized; whichever
// follow-up fetch completes last determines the visible state. Callers that
// need strict ordering serialize at the call site.
type CartStore struct {
	gw    *Gateway
	lines *Collection[CartLine]
	now   func() time.Time
}

func newCartStore(gw *Gateway) *CartStore {
	return &CartStore{
		gw:    gw,
		lines: NewCollection[CartLine](),
		now:   time.Now,
	}
}

// Lines returns a snapshot of the cart.
func (s *CartStore) Lines() []CartLine { return s.lines.Items() }

// CartStatus returns the cart collection's cache flags.
func (s *CartStore) CartStatus() Status { return s.lines.Status() }

// IsEmpty reports whether the cart has no lines.
func (s *CartStore) IsEmpty() bool { return s.lines.Len() == 0 }

// ItemCount recomputes the total quantity across lines on every read.
func (s *CartStore) ItemCount() int {
	var count int
	for _, line := range s.lines.Items() {
		count += line.Quantity
	}
	return count
}

// TotalPrice recomputes the quantity-weighted sum on every read.
func (s *CartStore) TotalPrice() float64 {
	var total float64
	for _, line := range s.lines.Items() {
		total += float64(line.Quantity) * line.UnitPrice
	}
	return total
}

// Line is a point lookup by product id.
func (s *CartStore) Line(productID int64) (CartLine, bool) {
	return s.lines.Find(func(l CartLine) bool { return l.ProductID == productID })
}

// Fetch replaces the cart with the server's authoritative state.
func (s *CartStore) Fetch(ctx context.Context) error {
	s.lines.BeginFetch()
	payload, err := Fetch[cartPayload](ctx, s.gw, http.MethodGet, "/carts/me", nil)
	if err != nil {
		s.lines.FailFetch(err.Error())
		return err
	}
	s.lines.CompleteFetch(payload.Cart)
	return nil
}

// Add puts quantity units of a product in the cart. An existing line for the
// product has its quantity incremented; otherwise a new line appears under a
// placeholder id. The authoritative cart is re-fetched after the remote call
// regardless of its outcome, which both resolves the placeholder id and
// picks up any server-side price normalization.
func (s *CartStore) Add(ctx context.Context, productID int64, quantity int, unitPrice float64) error {
	now := s.now()
	return s.run(ctx, &cartMutation{
		apply: func() {
			s.lines.Mutate(func(items []CartLine) []CartLine {
				for i := range items {
					if items[i].ProductID == productID {
						items[i].Quantity += quantity
						items[i].UpdatedAt = now
						return items
					}
				}
				return append(items, CartLine{
					ID:        placeholderLineID(now),
					ProductID: productID,
					Quantity:  quantity,
					UnitPrice: unitPrice,
					CreatedAt: now,
					UpdatedAt: now,
				})
			})
		},
		remote: func(ctx context.Context) error {
			_, err := s.gw.Send(ctx, http.MethodPost, "/carts/me", addCartPayload{
				ProductID: productID,
				Quantity:  quantity,
				UnitPrice: unitPrice,
			})
			return err
		},
		refetchOnSuccess: true,
		refetchOnFailure: true,
	})
}

// UpdateQuantity sets the quantity for a product's line. A quantity of zero
// or less means remove, not an error.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}
	now := s.now()
	return s.run(ctx, &cartMutation{
		apply: func() {
			s.lines.Mutate(func(items []CartLine) []CartLine {
				for i := range items {
					if items[i].ProductID == productID {
						items[i].Quantity = quantity
						items[i].UpdatedAt = now
					}
				}
				return items
			})
		},
		remote: func(ctx context.Context) error {
			_, err := s.gw.Send(ctx, http.MethodPatch, fmt.Sprintf("/carts/me/%d", productID), updateCartPayload{Quantity: quantity})
			return err
		},
		refetchOnFailure: true,
	})
}

// Remove drops a product's line from the cart.
func (s *CartStore) Remove(ctx context.Context, productID int64) error {
	return s.run(ctx, &cartMutation{
		apply: func() {
			s.lines.Mutate(func(items []CartLine) []CartLine {
				out := items[:0]
				for _, item := range items {
					if item.ProductID != productID {
						out = append(out, item)
					}
				}
				return out
			})
		},
		remote: func(ctx context.Context) error {
			_, err := s.gw.Send(ctx, http.MethodDelete, fmt.Sprintf("/carts/me/%d", productID), nil)
			return err
		},
		refetchOnFailure: true,
	})
}

// Clear empties the cart. On remote failure the empty state stands: the
// user's intent was total removal, so a stale non-empty cache is worse than
// an empty one pending the next fetch. The error is still surfaced.
func (s *CartStore) Clear(ctx context.Context) error {
	return s.run(ctx, &cartMutation{
		apply: func() {
			s.lines.Mutate(func([]CartLine) []CartLine { return nil })
		},
		remote: func(ctx context.Context) error {
			_, err := s.gw.Send(ctx, http.MethodDelete, "/carts/me", nil)
			return err
		},
	})
}

// run drives one mutation through apply, remote confirmation, and
// reconciliation. The completion handler always executes; a dispatched
// mutation cannot be cancelled into an undefined state.
func (s *CartStore) run(ctx context.Context, m *cartMutation) error {
	m.phase = mutationApplied
	m.apply()

	remoteErr := m.remote(ctx)
	if remoteErr == nil {
		if m.refetchOnSuccess {
			if err := s.Fetch(ctx); err != nil {
				m.phase = mutationReconciled
				return err
			}
		}
		m.phase = mutationReconciled
		return nil
	}

	if m.refetchOnFailure {
		// Restore ground truth first, then surface the mutation failure so
		// it is not wiped by the fetch lifecycle.
		_ = s.Fetch(ctx)
		m.phase = mutationRolledBack
	} else {
		m.phase = mutationReconciled
	}
	s.lines.SetError(remoteErr.Error())
	return remoteErr
}

// placeholderLineID synthesizes a temporary line id from wall-clock time.
// It is negative so it can never be mistaken for a server-assigned id, and
// it must never outlive the in-memory session.
func placeholderLineID(now time.Time) int64 {
	return -now.UnixMilli()
}
