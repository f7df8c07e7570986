// Package types defines the Store interface, the inventory entity types
// (Category, Field, Item, Value, Snapshot), the Session used for capability
// checks, and the standard errors shared by every stockroom package.
package types
