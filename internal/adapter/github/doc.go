// Package github implements the comment store port over the GitHub
// REST API using go-github.
//
// The adapter keeps two API clients: the read client's transport adds
// ETag response caching and secondary-rate-limit waiting, while the
// write client uses a bare authenticated transport so that no
// middleware can ever replay a mutation. Review actions must never be
// silently redone, so failures on the write path surface immediately.
package github
