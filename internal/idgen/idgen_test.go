package idgen

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequence(t *testing.T) {
	s := NewSequence("view", 5)
	assert.Equal(t, "view-5", s.Next())
	assert.Equal(t, "view-6", s.Next())

	next := Func(NewSequence("cond", 1))
	assert.Equal(t, "cond-1", next())
}

func TestSequenceConcurrent(t *testing.T) {
	s := NewSequence("cond", 1)
	seen := sync.Map{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, dup := seen.LoadOrStore(s.Next(), true)
			assert.False(t, dup)
		}()
	}
	wg.Wait()
}

func TestUUID(t *testing.T) {
	g := UUID{Prefix: "cond_"}
	a, b := g.Next(), g.Next()
	assert.True(t, strings.HasPrefix(a, "cond_"))
	assert.NotEqual(t, a, b)
}
