package hashmap

import "github.com/pkg/errors"

var (
	ErrNotFound      = errors.New("hashmap: key not found")
	ErrTableFull     = errors.New("hashmap: probe exhausted; no open slot")
	ErrProbeMismatch = errors.New("hashmap: operation does not match table probe strategy")
	ErrBadConfig     = errors.New("hashmap: bad config")
)
