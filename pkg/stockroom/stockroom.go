// Package stockroom is the public entry point for embedding the inventory
// store in other programs.
package stockroom

import (
	"github.com/mesh-intelligence/stockroom/internal/store"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Version is the stockroom release.
const Version = "v0.3.0"

// NewStore creates an unattached store for the named backend ("json" or
// "sqlite"). Call Attach with a Config before use.
//
// Example:
//
//	s, err := stockroom.NewStore(types.BackendJSON)
//	if err != nil { ... }
//	err = s.Attach(types.Config{Backend: types.BackendJSON, DataDir: "inventory"})
//	defer s.Detach()
func NewStore(backend string) (types.Store, error) {
	return store.New(backend)
}
