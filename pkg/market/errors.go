package market

import "errors"

var (
	// ErrUpstreamRequestFailed wraps any asset or ticker request that failed
	// on the network or returned a non-2xx status.
	ErrUpstreamRequestFailed = errors.New("upstream request failed")

	ErrAssetNotFound = errors.New("asset not found")
	ErrInvalidAsset  = errors.New("invalid asset")
)
