// Package vaulttest provides a reusable contract suite for credential vault
// implementations. Driver tests and integration tests run the same checks
// against their concrete backends.
package vaulttest
