package uow

import (
	"context"
	"errors"
	"testing"

	"github.com/kirinyoku/cinego/internal/repository"
	"github.com/kirinyoku/cinego/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// retryStore re-runs fn once, like a backend hitting a serialization failure.
type retryStore struct {
	repository.Store
}

func (s retryStore) RunTx(
	ctx context.Context,
	opts repository.TxOptions,
	fn func(ctx context.Context, tx repository.Repos) error,
) error {
	_ = s.Store.RunTx(ctx, opts, fn)
	return s.Store.RunTx(ctx, opts, fn)
}

func TestDo_RunsHooksAfterCommit(t *testing.T) {
	u := NewUoW(memory.NewStore())

	var ran []string
	err := u.Do(context.Background(), func(ctx context.Context, tx repository.Repos, after func(AfterCommit)) error {
		after(func(context.Context) { ran = append(ran, "first") })
		after(func(context.Context) { ran = append(ran, "second") })
		assert.Empty(t, ran)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestDo_SkipsHooksOnRollback(t *testing.T) {
	u := NewUoW(memory.NewStore())
	boom := errors.New("boom")

	called := false
	err := u.Do(context.Background(), func(ctx context.Context, tx repository.Repos, after func(AfterCommit)) error {
		after(func(context.Context) { called = true })
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestDo_RetriedAttemptDropsEarlierHooks(t *testing.T) {
	u := NewUoW(retryStore{Store: memory.NewStore()})

	calls := 0
	err := u.Do(context.Background(), func(ctx context.Context, tx repository.Repos, after func(AfterCommit)) error {
		after(func(context.Context) { calls++ })
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
