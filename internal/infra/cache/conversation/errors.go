package conversation

import "errors"

var (
	ErrContextNotFound = errors.New("conversation context not found")
	ErrEncodeContext   = errors.New("failed to encode conversation context")
	ErrCacheGet        = errors.New("failed to read conversation context from cache")
	ErrCacheSet        = errors.New("failed to write conversation context to cache")
	ErrCacheDelete     = errors.New("failed to delete conversation context from cache")
)
