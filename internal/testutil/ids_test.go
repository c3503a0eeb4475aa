package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedIDGenerator_InOrderThenRepeatsLast(t *testing.T) {
	gen := NewFixedIDGenerator("trace-1", "trace-2")

	assert.Equal(t, "trace-1", gen.Generate())
	assert.Equal(t, "trace-2", gen.Generate())
	assert.Equal(t, "trace-2", gen.Generate())
}

func TestFixedIDGenerator_Default(t *testing.T) {
	gen := NewFixedIDGenerator()
	assert.Equal(t, "test-trace-default", gen.Generate())
}

func TestFixedIDGenerator_Concurrent(t *testing.T) {
	gen := NewFixedIDGenerator("a", "b", "c")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Contains(t, []string{"a", "b", "c"}, gen.Generate())
		}()
	}
	wg.Wait()
	assert.Equal(t, "c", gen.Generate())
}
