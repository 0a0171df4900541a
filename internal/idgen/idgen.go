// Package idgen provides the id generators injected into the dashboard controller and the
// saved view stores.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator returns a fresh id on every call. Implementations are safe for concurrent use.
type Generator interface {
	Next() string
}

// Sequence yields prefix-1, prefix-2, ... starting after the given offset.
type Sequence struct {
	prefix string
	n      atomic.Int64
}

func NewSequence(prefix string, start int64) *Sequence {
	s := &Sequence{prefix: prefix}
	s.n.Store(start - 1)
	return s
}

func (s *Sequence) Next() string {
	return s.prefix + "-" + strconv.FormatInt(s.n.Add(1), 10)
}

// UUID yields prefixed random v4 uuids, e.g. cond_0f8c....
type UUID struct {
	Prefix string
}

func (u UUID) Next() string {
	return u.Prefix + uuid.New().String()
}

// Func adapts a generator to the func() string shape used by model.RemintConditions.
func Func(g Generator) func() string {
	return g.Next
}
