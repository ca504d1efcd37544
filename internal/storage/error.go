package storage

import "errors"

// Error description
const (
	ErrExecuteStatement = "failed to execute statement"
	ErrExecuteQuery     = "failed to execute query"
	ErrScanData         = "failed to scan data"
	ErrRetrieveRows     = "failed to retrieve rows affected"
)

var (
	ErrPoolKeysNotFound   = errors.New("pool keys not found")
	ErrExtraMetasNotFound = errors.New("extra account metas not found")
	ErrInvalidColumn      = errors.New("invalid filter column")
)
