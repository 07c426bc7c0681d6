package ledger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"easyapply/internal/domain/entity"
	"easyapply/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "data", "questions_log.json"), logger.NewNop())
}

func TestFileStore_LoadMissing(t *testing.T) {
	snap, err := newStore(t).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Answered)
	assert.Empty(t, snap.Unanswered)
}

func TestFileStore_MergeUnions(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.Merge(ctx, entity.LedgerSnapshot{Answered: []string{"b", "a"}, Unanswered: []string{"x"}})
	require.NoError(t, err)
	merged, err := s.Merge(ctx, entity.LedgerSnapshot{Answered: []string{"c", "a"}})
	require.NoError(t, err)

	want := entity.LedgerSnapshot{Answered: []string{"a", "b", "c"}, Unanswered: []string{"x"}}
	assert.Equal(t, want, merged)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, loaded)
}

func TestFileStore_MergeIdempotent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	snap := entity.LedgerSnapshot{Answered: []string{"a"}, Unanswered: []string{"b"}}

	first, err := s.Merge(ctx, snap)
	require.NoError(t, err)
	second, err := s.Merge(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFileStore_FileFormat(t *testing.T) {
	s := newStore(t)
	_, err := s.Merge(context.Background(), entity.LedgerSnapshot{Answered: []string{"a"}})
	require.NoError(t, err)

	b, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"answered_questions"`)
	assert.Contains(t, string(b), `"unanswered_questions"`)
}

func TestFileStore_ConcurrentMergesLoseNothing(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			other := NewFileStore(s.Path(), logger.NewNop())
			_, err := other.Merge(ctx, entity.LedgerSnapshot{Answered: []string{fmt.Sprintf("q%d", i)}})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Answered, 8)
}

func TestFileStore_CorruptFileIsBackedUp(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	merged, err := s.Merge(context.Background(), entity.LedgerSnapshot{Unanswered: []string{"q"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"q"}, merged.Unanswered)

	_, err = os.Stat(s.Path() + ".bak")
	assert.NoError(t, err)
}

func TestFileStore_MergeCancelled(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Merge(ctx, entity.LedgerSnapshot{Answered: []string{"a"}})
	assert.Error(t, err)
}
