// Package stores holds the client-side state for each entity collection the
// API exposes. Every store is an explicit dependency-injected struct guarding
// its state with a mutex; there are no package-level singletons. Stores never
// render anything: user-facing feedback goes through the notify channel.
package stores

import "errors"

// Navigator is the UI's router. Stores and guards push destinations to it;
// a nil Navigator is ignored.
type Navigator interface {
	Push(path string)
}

var (
	// ErrEmptyCart rejects checkout before any request is issued.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrStockIssues rejects checkout when the stock report flags a line.
	ErrStockIssues = errors.New("some cart items exceed available stock")
)

// Session is the slice of auth state the other stores depend on.
type Session interface {
	IsAuthenticated() bool
}
