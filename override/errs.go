package override

import "errors"

var (
	ErrMalformedOverride = errors.New("malformed override")
	ErrPathNotFound      = errors.New("path not found")
	ErrKeyAlreadyExists  = errors.New("key already exists")
)
