package supervisor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupSelectReturnsNilWhenAllTasksFinishCleanly(t *testing.T) {
	g := New(context.Background())

	g.Run(func(ctx context.Context) error { return nil })

	err := g.Select(context.Background())
	assert.NoError(t, err)
}

func TestGroupErrorsChSurfacesTaskError(t *testing.T) {
	g := New(context.Background())
	boom := assertError("boom")

	g.Run(func(ctx context.Context) error { return boom })

	select {
	case err := <-g.ErrorsCh():
		var taskErr Error
		require.ErrorAs(t, err, &taskErr)
		assert.Equal(t, boom, taskErr.Err)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for task error")
	}
}

func TestGroupCancelStopsRunningTasks(t *testing.T) {
	g := New(context.Background())
	started := make(chan struct{})

	g.Run(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	<-started
	g.Cancel()

	select {
	case <-g.DrainCh():
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for task to exit after cancel")
	}
}

func TestWeakTaskDoesNotCancelGroupOnCleanExit(t *testing.T) {
	g := New(context.Background())
	blocking := make(chan struct{})

	g.Run(func(ctx context.Context) error {
		<-blocking
		return nil
	})
	g.Run(func(ctx context.Context) error { return nil }, TaskWeak())

	select {
	case <-g.Context.Done():
		t.Fatal("group context should not be cancelled by a weak task's clean exit")
	case <-time.After(50 * time.Millisecond):
	}

	close(blocking)
}

type assertError string

func (e assertError) Error() string { return string(e) }
