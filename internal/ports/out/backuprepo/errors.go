package backuprepo

import "errors"

// ErrNotFound indicates no backup has been uploaded yet.
var ErrNotFound = errors.New("backup not found")
