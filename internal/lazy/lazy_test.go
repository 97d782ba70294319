package lazy_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pomerium/immutable/internal/lazy"
)

func TestValue(t *testing.T) {
	t.Parallel()

	var v lazy.Value[int]
	calls := 0
	compute := func() int {
		calls++
		return 42
	}

	assert.Equal(t, 42, v.Get(compute))
	assert.Equal(t, 42, v.Get(compute))
	assert.Equal(t, 1, calls, "the second Get reuses the memo")
}

func TestValueConcurrent(t *testing.T) {
	t.Parallel()

	var v lazy.Value[string]
	var wg sync.WaitGroup
	out := make([]string, 16)
	for i := range out {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out[i] = v.Get(func() string { return "same" })
		}()
	}
	wg.Wait()

	for _, got := range out {
		assert.Equal(t, "same", got)
	}
}
