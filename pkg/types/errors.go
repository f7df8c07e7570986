package types

import "errors"

// Store lifecycle and configuration errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrDetached        = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Entity errors.
var (
	ErrNotFound         = errors.New("entity not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrFieldNotFound    = errors.New("field not found")
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidKey       = errors.New("invalid field key")
	ErrDuplicateKey     = errors.New("field key already defined in category")
	ErrInvalidFieldType = errors.New("invalid field type")
	ErrReservedKey      = errors.New("attribute key is reserved")
)

// Session errors.
var (
	ErrForbidden   = errors.New("operation not permitted for role")
	ErrInvalidRole = errors.New("invalid role")
)
