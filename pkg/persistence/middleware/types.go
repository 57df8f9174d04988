// Package middleware wraps plan stores with cross-cutting behavior.
package middleware

import "github.com/aretw0/escrowrail/pkg/ports"

// Middleware allows wrapping a PlanStore to add behavior.
type Middleware func(ports.PlanStore) ports.PlanStore

// Chain applies middlewares so that the first one is the outermost.
func Chain(store ports.PlanStore, mws ...Middleware) ports.PlanStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
