package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestTracker_NewerLoadCancelsSuperseded(t *testing.T) {
	tracker := NewRequestTracker()

	firstCtx, first := tracker.Begin(context.Background(), "participation:1")
	secondCtx, second := tracker.Begin(context.Background(), "participation:1")

	assert.ErrorIs(t, firstCtx.Err(), context.Canceled)
	assert.NoError(t, secondCtx.Err())
	assert.True(t, first.Superseded())
	assert.False(t, second.Superseded())

	assert.ErrorIs(t, first.Finish(), ErrSupersededRequest)
	assert.True(t, tracker.InFlight("participation:1"))
	require.NoError(t, second.Finish())
	assert.False(t, tracker.InFlight("participation:1"))
}

func TestRequestTracker_KeysAreIndependent(t *testing.T) {
	tracker := NewRequestTracker()

	ctxA, a := tracker.Begin(context.Background(), "participation:1")
	_, b := tracker.Begin(context.Background(), "participation:2")

	assert.NoError(t, ctxA.Err())
	assert.NoError(t, a.Finish())
	assert.NoError(t, b.Finish())
}

func TestRequestTracker_Cancel(t *testing.T) {
	tracker := NewRequestTracker()

	ctx, ticket := tracker.Begin(context.Background(), "participation:1")
	assert.True(t, tracker.Cancel("participation:1"))
	assert.False(t, tracker.Cancel("participation:1"))

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.ErrorIs(t, ticket.Finish(), ErrSupersededRequest)
}

func TestRequestTracker_Concurrent(t *testing.T) {
	tracker := NewRequestTracker()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ticket := tracker.Begin(context.Background(), "participation:1")
			_ = ticket.Finish()
		}()
	}
	wg.Wait()
	assert.False(t, tracker.InFlight("participation:1"))
}
