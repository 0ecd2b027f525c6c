package storefront

import (
	"context"
	"time"
)

// Observer receives an event for every gateway call after it completes.
type Observer interface {
	OnGatewayOp(ctx context.Context, method, path, requestID string, status int, err error, dur time.Duration)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, method, path, requestID string, status int, err error, dur time.Duration)

// OnGatewayOp implements Observer.
func (f ObserverFunc) OnGatewayOp(ctx context.Context, method, path, requestID string, status int, err error, dur time.Duration) {
	if f == nil {
		return
	}
	f(ctx, method, path, requestID, status, err, dur)
}

// Navigator is told to send the user to the login entry point when the
// session is invalidated by an HTTP 401.
type Navigator interface {
	RedirectToLogin()
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func()

// RedirectToLogin implements Navigator.
func (f NavigatorFunc) RedirectToLogin() {
	if f == nil {
		return
	}
	f()
}
