package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/pscheid92/hxdemo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRepo_StartsEmpty(t *testing.T) {
	items, err := NewItemRepo().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemRepo_AppendKeepsOrderAndDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepo()

	_, err := repo.Append(ctx, "milk")
	require.NoError(t, err)
	_, err = repo.Append(ctx, "eggs")
	require.NoError(t, err)
	items, err := repo.Append(ctx, "milk")
	require.NoError(t, err)

	assert.Equal(t, []string{"milk", "eggs", "milk"}, items)
}

func TestItemRepo_RemoveAt(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepo()
	for _, item := range []string{"a", "b", "c"} {
		_, err := repo.Append(ctx, item)
		require.NoError(t, err)
	}

	items, err := repo.RemoveAt(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, items)

	items, err = repo.RemoveAt(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, items)
}

func TestItemRepo_RemoveAtOutOfRange(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepo()
	_, err := repo.Append(ctx, "only")
	require.NoError(t, err)

	for _, index := range []int{-1, 1, 5} {
		t.Run(fmt.Sprintf("index %d", index), func(t *testing.T) {
			_, err := repo.RemoveAt(ctx, index)
			assert.ErrorIs(t, err, domain.ErrItemIndexOutOfRange)
		})
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, items)
}

func TestItemRepo_SnapshotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepo()
	snapshot, err := repo.Append(ctx, "first")
	require.NoError(t, err)

	snapshot[0] = "changed"

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, items)
}

func TestItemRepo_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepo()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Append(ctx, fmt.Sprintf("item-%d", i))
		}()
	}
	wg.Wait()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 50)
}
