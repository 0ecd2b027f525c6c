package storefront

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	at := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func serverCart(lines ...CartLine) map[string]any {
	return map[string]any{"cart": lines}
}

func TestCartAddReplacesPlaceholderWithServerLine(t *testing.T) {
	ctx := context.Background()
	rt := newRouteTransport()
	rt.respond(http.MethodPost, "/carts/me", http.StatusCreated, nil)
	rt.respond(http.MethodGet, "/carts/me", http.StatusOK, serverCart(
		CartLine{ID: 42, ProductID: 7, Quantity: 1, UnitPrice: 9.99},
	))

	c := newTestClient(rt)
	c.Cart.now = fixedClock()

	if err := c.Cart.Add(ctx, 7, 1, 9.99); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	lines := c.Cart.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].ID != 42 || lines[0].Placeholder() {
		t.Fatalf("expected server-assigned id, got %+v", lines[0])
	}
	// Add always resynchronizes, even on success.
	if got := rt.count(http.MethodGet, "/carts/me"); got != 1 {
		t.Fatalf("expected one refetch after add, got %d", got)
	}
	if status := c.Cart.CartStatus(); status.Error != "" || status.Loading {
		t.Fatalf("expected clean status, got %+v", status)
	}
}

func TestCartAddIncrementsExistingLine(t *testing.T) {
	ctx := context.Background()
	rt := newRouteTransport()
	rt.respond(http.MethodPost, "/carts/me", http.StatusCreated, nil)
	rt.respond(http.MethodGet, "/carts/me", http.StatusOK, serverCart(
		CartLine{ID: 42, ProductID: 7, Quantity: 3, UnitPrice: 9.99},
	))

	c := newTestClient(rt)
	c.Cart.now = fixedClock()

	if err := c.Cart.Add(ctx, 7, 1, 9.99); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := c.Cart.Add(ctx, 7, 2, 9.99); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	// At most one line per product, whatever the interleaving.
	lines := c.Cart.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected a single line per product, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("unexpected quantity %d", lines[0].Quantity)
	}
}

func TestCartAddFailureRefetchesAndKeepsError(t *testing.T) {
	ctx := context.Background()
	rt := newRouteTransport()
	rt.handle(http.MethodPost, "/carts/me", func(*http.Request) (*http.Response, error) {
		return rawResponse(http.StatusConflict, "application/json", `{"message":"out of stock"}`), nil
	})
	rt.respond(http.MethodGet, "/carts/me", http.StatusOK, serverCart())

	c := newTestClient(rt)
	c.Cart.now = fixedClock()

	err := c.Cart.Add(ctx, 7, 1, 9.99)
	if !IsServerError(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	if !c.Cart.IsEmpty() {
		t.Fatalf("expected optimistic line rolled back by refetch")
	}
	if got := rt.count(http.MethodGet, "/carts/me"); got != 1 {
		t.Fatalf("expected one refetch after failed add, got %d", got)
	}
	// The mutation failure outlives the refetch lifecycle.
	if status := c.Cart.CartStatus(); status.Error == "" {
		t.Fatalf("expected mutation error to stay visible, got %+v", status)
	}
}

func TestCartUpdateQuantityOptimisticThenConfirmed(t *testing.T) {
	ctx := context.Background()
	rt := newRouteTransport()
	rt.respond(http.MethodGet, "/carts/me", http.StatusOK, serverCart(
		CartLine{ID: 42, ProductID: 7, Quantity: 1, UnitPrice: 9.99},
	))
	rt.respond(http.MethodPatch, "/carts/me/7", http.StatusOK, nil)

	c := newTestClient(rt)
	if err := c.Cart.Fetch(ctx); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if err := c.Cart.UpdateQuantity(ctx, 7, 5); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	line, ok := c.Cart.Line(7)
	if !ok || line.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %+v ok=%v", line, ok)
	}
	// Confirmed updates do not refetch.
	if got := rt.count(http.MethodGet, "/carts/me"); got != 1 {
		t.Fatalf("expected no refetch after confirmed update, got %d fetches", got)
	}
}

func TestCartUpdateQuantityFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	rt := newRouteTransport()
	rt.respond(http.MethodGet, "/carts/me", http.StatusOK, serverCart(
		CartLine{ID: 42, ProductID: 7, Quantity: 1, UnitPrice: 9.99},
	))
	rt.handle(http.MethodPatch, "/carts/me/7", func(*http.Request) (*http.Response, error) {
		return rawResponse(http.StatusUnprocessableEntity, "application/json",
			`{"data":{"errors":[{"field":"quantity","message":"exceeds stock"}]}}`), nil
	})

	c := newTestClient(rt)
	if err := c.Cart.Fetch(ctx); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	err := c.Cart.UpdateQuantity(ctx, 7, 99)
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	line, ok := c.Cart.Line(7)
	if !ok || line.Quantity != 1 {
		t.Fatalf("expected server quantity restored, got %+v ok=%v", line, ok)
	}
	if status := c.Cart.CartStatus(); status.Error == "" {
		t.Fatalf("expected error recorded after rollback")
	}
}

func TestCartUpdateQuantityZeroMeansRemove(t *testing.T) {
	ctx := context.Background()
	rt := newRouteTransport()
	rt.respond(http.MethodGet, "/carts/me", http.StatusOK, serverCart(
		CartLine{ID: 42, ProductID: 7, Quantity: 2, UnitPrice: 9.99},
	))
	rt.respond(http.MethodDelete, "/carts/me/7", http.StatusOK, nil)

	c := newTestClient(rt)
	if err := c.Cart.Fetch(ctx); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if err := c.Cart.UpdateQuantity(ctx, 7, 0); err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}
	if _, ok := c.Cart.Line(7); ok {
		t.Fatalf("expected line removed")
	}
	if got := rt.count(http.MethodDelete, "/carts/me/7"); got != 1 {
		t.Fatalf("expected the remove endpoint, got %d delete calls", got)
	}
	if got := rt.count(http.MethodPatch, "/carts/me/7"); got != 0 {
		t.Fatalf("expected no update call for zero quantity")
	}
}

func TestCartRemoveFailureRestoresLine(t *testing.T) {
	ctx := context.Background()
	rt := newRouteTransport()
	rt.respond(http.MethodGet, "/carts/me", http.StatusOK, serverCart(
		CartLine{ID: 42, ProductID: 7, Quantity: 2, UnitPrice: 9.99},
	))
	rt.handle(http.MethodDelete, "/carts/me/7", func(*http.Request) (*http.Response, error) {
		return rawResponse(http.StatusInternalServerError, "application/json", `{"message":"try later"}`), nil
	})

	c := newTestClient(rt)
	if err := c.Cart.Fetch(ctx); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if err := c.Cart.Remove(ctx, 7); !IsServerError(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	if _, ok := c.Cart.Line(7); !ok {
		t.Fatalf("expected line restored after failed remove")
	}
}

func TestCartClearFailureLeavesEmptyState(t *testing.T) {
	ctx := context.Background()
	rt := newRouteTransport()
	rt.respond(http.MethodGet, "/carts/me", http.StatusOK, serverCart(
		CartLine{ID: 42, ProductID: 7, Quantity: 2, UnitPrice: 9.99},
	))
	rt.handle(http.MethodDelete, "/carts/me", func(*http.Request) (*http.Response, error) {
		return rawResponse(http.StatusInternalServerError, "application/json", `{"message":"try later"}`), nil
	})

	c := newTestClient(rt)
	if err := c.Cart.Fetch(ctx); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	err := c.Cart.Clear(ctx)
	if !IsServerError(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	// The optimistic empty state stands; no refetch resurrects the lines.
	if !c.Cart.IsEmpty() {
		t.Fatalf("expected cart to stay empty after failed clear")
	}
	if got := rt.count(http.MethodGet, "/carts/me"); got != 1 {
		t.Fatalf("expected no refetch after failed clear, got %d fetches", got)
	}
	if status := c.Cart.CartStatus(); status.Error == "" {
		t.Fatalf("expected error surfaced after failed clear")
	}
}

func TestCartDerivedTotalsRecompute(t *testing.T) {
	ctx := context.Background()
	rt := newRouteTransport()
	rt.respond(http.MethodGet, "/carts/me", http.StatusOK, serverCart(
		CartLine{ID: 1, ProductID: 7, Quantity: 2, UnitPrice: 10},
		CartLine{ID: 2, ProductID: 8, Quantity: 1, UnitPrice: 5.5},
	))
	rt.respond(http.MethodPatch, "/carts/me/7", http.StatusOK, nil)

	c := newTestClient(rt)
	if err := c.Cart.Fetch(ctx); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if got := c.Cart.ItemCount(); got != 3 {
		t.Fatalf("expected item count 3, got %d", got)
	}
	if got := c.Cart.TotalPrice(); got != 25.5 {
		t.Fatalf("expected total 25.5, got %v", got)
	}

	if err := c.Cart.UpdateQuantity(ctx, 7, 3); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := c.Cart.ItemCount(); got != 4 {
		t.Fatalf("expected recomputed count 4, got %d", got)
	}
	if got := c.Cart.TotalPrice(); got != 35.5 {
		t.Fatalf("expected recomputed total 35.5, got %v", got)
	}
}

func TestCartFetchFailureKeepsLines(t *testing.T) {
	ctx := context.Background()
	rt := newRouteTransport()
	rt.respond(http.MethodGet, "/carts/me", http.StatusOK, serverCart(
		CartLine{ID: 1, ProductID: 7, Quantity: 2, UnitPrice: 10},
	))

	c := newTestClient(rt)
	if err := c.Cart.Fetch(ctx); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	rt.fail(http.MethodGet, "/carts/me")
	if err := c.Cart.Fetch(ctx); !IsConnectionError(err) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if c.Cart.IsEmpty() {
		t.Fatalf("expected stale lines kept on fetch failure")
	}
	if status := c.Cart.CartStatus(); status.Error == "" || status.Loading {
		t.Fatalf("unexpected status after failed fetch: %+v", status)
	}
}

func TestPlaceholderLineIDNeverCollidesWithServerIDs(t *testing.T) {
	now := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	id := placeholderLineID(now)
	if id >= 0 {
		t.Fatalf("expected negative placeholder id, got %d", id)
	}
	if !(CartLine{ID: id}).Placeholder() {
		t.Fatalf("expected placeholder detection for %d", id)
	}
	if (CartLine{ID: 42}).Placeholder() {
		t.Fatalf("server ids must not look like placeholders")
	}
}
