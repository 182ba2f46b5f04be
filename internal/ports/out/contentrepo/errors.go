package contentrepo

import "errors"

// ErrNotFound indicates the requested content item does not exist or is unpublished.
var ErrNotFound = errors.New("content not found")
