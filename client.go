package storefront

import (
	"context"
	"net/http"
)

// Client is the process-wide context object tying the gateway, session, and
// entity stores together. Construct it once at startup; substitute options
// at construction to mock collaborators in tests.
type Client struct {
	Session *Session
	Gateway *Gateway
	Catalog *CatalogStore
	Cart    *CartStore
	Account *AccountService
	Orders  *OrderService
}

// Option mutates a Client during construction.
type Option func(*Client)

// WithHTTPClient overrides the HTTP transport. Deadlines stay with the
// transport; the cache core imposes none of its own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.Gateway.client = hc }
}

// WithNavigator sets the collaborator notified on session invalidation.
func WithNavigator(nav Navigator) Option {
	return func(c *Client) { c.Gateway.nav = nav }
}

// WithObserver attaches an observer to receive gateway operation events.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.Gateway.observer = o }
}

// WithVault replaces the credential vault built from config.
func WithVault(v Vault) Option {
	return func(c *Client) { c.Session.vault = v }
}

// WithFallback replaces the static dataset supplied when the service is
// unreachable.
func WithFallback(f FallbackSupplier) Option {
	return func(c *Client) { c.Catalog.fallback = f }
}

// New constructs a client from config.
//
// Example: client with in-memory credential vault
//
//	ctx := context.Background()
//	c := storefront.New(storefront.Config{
//		BaseURL: "http://localhost:8080",
//		Vault:   storefront.VaultConfig{Driver: storefront.VaultMemory},
//	})
//	_ = c.Restore(ctx)
//	fmt.Println(c.Session.IsAuthenticated()) // false
func New(cfg Config, opts ...Option) *Client {
	cfg = cfg.withDefaults()

	session := NewSession(NewVault(context.Background(), cfg.Vault))
	gw := newGateway(cfg.BaseURL, session)

	c := &Client{
		Session: session,
		Gateway: gw,
		Catalog: newCatalogStore(gw, nil),
		Cart:    newCartStore(gw),
		Account: newAccountService(gw, session),
		Orders:  newOrderService(gw),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore re-hydrates the session from the vault. Call it once at process
// start, before the first authenticated request.
func (c *Client) Restore(ctx context.Context) error {
	return c.Session.Restore(ctx)
}
