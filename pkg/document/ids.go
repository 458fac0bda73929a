package document

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces question identifiers. Implementations must not return
// the same value twice for the lifetime of a document.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string { return f() }

// SequenceIDs hands out "1", "2", ... and is safe for concurrent use.
type SequenceIDs struct {
	prefix string
	next   atomic.Uint64
}

// NewSequenceIDs returns a counter starting at 1. The optional prefix is
// prepended verbatim ("q" yields "q1", "q2", ...).
func NewSequenceIDs(prefix string) *SequenceIDs {
	return &SequenceIDs{prefix: prefix}
}

func (s *SequenceIDs) NewID() string {
	return s.prefix + strconv.FormatUint(s.next.Add(1), 10)
}

// UUIDs draws random version 4 identifiers.
type UUIDs struct{}

func (UUIDs) NewID() string {
	return uuid.NewString()
}
