// Package context carries request-scoped values between middleware and handlers.
package context

type contextKey string
