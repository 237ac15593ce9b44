package engine

import (
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// NewRunID returns a compact random identifier for a run: the base58
// encoding of a version 4 UUID.
func NewRunID() string {
	id := uuid.New()
	return base58.Encode(id[:])
}
