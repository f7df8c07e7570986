package types

// Store loads and saves the inventory as one whole document.
// Callers attach to a backend, load a snapshot, save it back after each
// mutation, and detach when done.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, Load and Save return ErrDetached.
	Detach() error

	// Load returns the stored snapshot. A missing or unreadable document
	// yields an empty snapshot rather than an error.
	Load() (*Snapshot, error)

	// Save replaces the stored document with snap.
	Save(snap *Snapshot) error

	// Path returns the file that holds the document.
	Path() string
}
