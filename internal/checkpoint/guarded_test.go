package checkpoint

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuarded_ConcurrentSubmitsNeverLoseUpdates(t *testing.T) {
	const n = 64
	g := NewGuarded(startFixed(t, conceptList(n)...))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var accepted, completed int
	for i := 0; i < n+10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := g.Submit(1)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				accepted++
				if out.Completed {
					completed++
				}
			} else {
				assert.ErrorIs(t, err, ErrSessionComplete)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, n, accepted)
	assert.Equal(t, 1, completed)
	v := g.Snapshot()
	assert.True(t, v.IsComplete)
	assert.Equal(t, n, v.CurrentIndex)
}

func TestGuarded_ReadHelpers(t *testing.T) {
	g := NewGuarded(startFixed(t, "c1", "c2"))

	q, ok := g.Current()
	assert.True(t, ok)
	assert.Equal(t, "c1", q.ConceptID)

	_, _ = g.Submit(0)
	done, total := g.Progress()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, total)
}
