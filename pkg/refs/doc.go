// Package refs turns foreign-key ids into display names and back. Pages load
// the referenced collections once per activation into a Cache, build
// IDDropdown option maps from it and resolve list-row names through it. The
// cache is never shared between pages and never invalidated; it is rebuilt on
// every refresh.
package refs
