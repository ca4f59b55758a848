package tree

import "errors"

// Decoding errors. The mutation functions themselves never fail.
var (
	// ErrDuplicateID indicates that an encoded document reuses a node id.
	ErrDuplicateID = errors.New("duplicate node id")

	// ErrUnknownKind indicates a kind other than file or directory.
	ErrUnknownKind = errors.New("unknown node kind")
)
