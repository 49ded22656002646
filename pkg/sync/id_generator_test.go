package sync_test

import (
	"math"
	"sync"
	"testing"

	pkgsync "github.com/neekrasov/esync/pkg/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDGenerator_Generate(t *testing.T) {
	t.Parallel()

	gen := pkgsync.NewIDGenerator(0)
	assert.Equal(t, int64(1), gen.Generate())
	assert.Equal(t, int64(2), gen.Generate())
}

func TestIDGenerator_Wraparound(t *testing.T) {
	t.Parallel()

	gen := pkgsync.NewIDGenerator(math.MaxInt64)
	assert.Equal(t, int64(1), gen.Generate())
}

func TestIDGenerator_Unique(t *testing.T) {
	t.Parallel()

	const routines = 50

	var (
		gen = pkgsync.NewIDGenerator(0)
		mu  sync.Mutex
		ids = make(map[int64]struct{}, routines)
		wg  sync.WaitGroup
	)

	wg.Add(routines)
	for i := 0; i < routines; i++ {
		go func() {
			defer wg.Done()
			id := gen.Generate()
			pkgsync.WithLock(&mu, func() {
				ids[id] = struct{}{}
			})
		}()
	}
	wg.Wait()

	require.Len(t, ids, routines)
}
