package remote

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educreatorschool-design/hanvitlms/pkg/model"
)

// setupTestClient creates a test client connected to a miniredis instance
func setupTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	mr := miniredis.NewMiniRedis()
	err := mr.Start()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient(&redis.Options{Addr: mr.Addr()}, "test-instance")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func testSnapshot() *model.Snapshot {
	snap := &model.Snapshot{
		Users:   []model.User{{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: model.RoleStudent}},
		Courses: []model.Course{{ID: "c1", Title: "Databases"}},
	}
	snap.Normalize()
	return snap
}

func TestNewClient(t *testing.T) {
	t.Run("creates client successfully", func(t *testing.T) {
		client, _ := setupTestClient(t)
		assert.NotNil(t, client)
		assert.Equal(t, "test-instance", client.instanceName)
	})

	t.Run("rejects empty instance name", func(t *testing.T) {
		_, err := NewClient(&redis.Options{Addr: "localhost:6379"}, "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "instance name cannot be empty")
	})
}

func TestPing(t *testing.T) {
	client, _ := setupTestClient(t)
	err := client.Ping(context.Background())
	assert.NoError(t, err)
}

func TestFetch(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	t.Run("returns not found when no record exists", func(t *testing.T) {
		_, err := client.Fetch(ctx)
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("returns the upserted snapshot", func(t *testing.T) {
		snap := testSnapshot()
		require.NoError(t, client.Upsert(ctx, snap))

		got, err := client.Fetch(ctx)
		require.NoError(t, err)
		assert.Equal(t, snap.Users, got.Users)
		assert.Equal(t, snap.Courses, got.Courses)
	})

	t.Run("rejects corrupt remote payload", func(t *testing.T) {
		_, mr := setupTestClient(t)
		mr.Set(StateKey("test-instance"), "not json")

		corrupt, err := NewClient(&redis.Options{Addr: mr.Addr()}, "test-instance")
		require.NoError(t, err)
		t.Cleanup(func() { corrupt.Close() })

		_, err = corrupt.Fetch(ctx)
		require.Error(t, err)
		assert.False(t, IsNotFound(err))
	})
}

func TestUpsertReplacesWholeDocument(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	first := testSnapshot()
	require.NoError(t, client.Upsert(ctx, first))

	second := testSnapshot()
	second.Courses = []model.Course{} // course deleted on this device
	require.NoError(t, client.Upsert(ctx, second))

	got, err := client.Fetch(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Courses, "upsert must fully replace, not merge")
}

func TestSubscribe(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	t.Run("delivers published snapshots", func(t *testing.T) {
		sub, err := client.Subscribe(ctx)
		require.NoError(t, err)
		defer sub.Close()

		// Give the pubsub goroutine time to establish the subscription.
		time.Sleep(50 * time.Millisecond)

		snap := testSnapshot()
		require.NoError(t, client.Upsert(ctx, snap))

		select {
		case got := <-sub.Events():
			require.NotNil(t, got)
			assert.Equal(t, snap.Users, got.Users)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for snapshot event")
		}
	})

	t.Run("malformed events go to the error channel", func(t *testing.T) {
		sub, err := client.Subscribe(ctx)
		require.NoError(t, err)
		defer sub.Close()

		time.Sleep(50 * time.Millisecond)

		rdb := redis.NewClient(&redis.Options{Addr: clientAddr(t, client)})
		defer rdb.Close()
		require.NoError(t, rdb.Publish(ctx, StateEventsChannel("test-instance"), "not json").Err())

		select {
		case err := <-sub.Errors():
			assert.Error(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for decode error")
		}
	})

	t.Run("close is idempotent", func(t *testing.T) {
		sub, err := client.Subscribe(ctx)
		require.NoError(t, err)
		assert.NoError(t, sub.Close())
		assert.NoError(t, sub.Close())
	})

	t.Run("context cancellation stops the subscription", func(t *testing.T) {
		subCtx, cancel := context.WithCancel(ctx)
		sub, err := client.Subscribe(subCtx)
		require.NoError(t, err)
		defer sub.Close()

		cancel()

		select {
		case _, ok := <-sub.Events():
			assert.False(t, ok, "events channel should close")
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for events channel to close")
		}
	})
}

// clientAddr extracts the Redis address a test client is connected to.
func clientAddr(t *testing.T, c *Client) string {
	t.Helper()
	return c.rdb.Options().Addr
}

func TestSchemaKeys(t *testing.T) {
	assert.Equal(t, "hanvit:prod:state", StateKey("prod"))
	assert.Equal(t, "hanvit:prod:state_events", StateEventsChannel("prod"))
}
