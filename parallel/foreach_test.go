package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForEachVisitsEveryIndexOnce(t *testing.T) {
	var seen [257]atomic.Int32
	ForEach(len(seen), 7, func(i int) {
		seen[i].Add(1)
	})
	for i := range seen {
		assert.Equal(t, int32(1), seen[i].Load(), "index %d", i)
	}
}

func TestForEachNoWork(t *testing.T) {
	called := false
	ForEach(0, 4, func(int) { called = true })
	ForEach(-3, 4, func(int) { called = true })
	assert.False(t, called)
}

func TestForEachBoundsConcurrency(t *testing.T) {
	var running, peak atomic.Int32
	ForEach(64, 3, func(int) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		running.Add(-1)
	})
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestThreads(t *testing.T) {
	assert.Positive(t, Threads())
	assert.NotEmpty(t, Describe())
}
