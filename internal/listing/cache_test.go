package listing

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	c := NewCache()
	k := Key{Market: "Market1"}

	_, ok := c.Get(k)
	assert.False(t, ok)

	c.Set(k, &Entry{FileName: "Market1_1.xlsx"})
	c.Set(Key{Market: "Market1", Location: "lok"}, &Entry{FileName: "Market1_lok_1.xlsx"})
	assert.Equal(t, 2, c.Len())

	got, ok := c.Get(k)
	assert.True(t, ok)
	assert.Equal(t, "Market1_1.xlsx", got.FileName)

	c.Delete(k)
	_, ok = c.Get(k)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestKeyLocks_Serialize(t *testing.T) {
	var (
		locks   keyLocks
		wg      sync.WaitGroup
		counter int
	)
	k := Key{Market: "Market1"}

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock(k)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}
