// Package storefront is a client-side reactive cache for the honeykokia
// e-commerce API. It mirrors the server-owned cart, catalog, and session
// entities into local collections, applies optimistic cart mutations ahead
// of server confirmation, and reconciles with authoritative state when the
// round trip completes. When the service is unreachable, read paths degrade
// to a static fallback dataset flagged as non-authoritative.
package storefront
