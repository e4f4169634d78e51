// Package remote provides the client for the shared remote state record.
// The remote side holds exactly one logical record per instance: a full
// JSON snapshot of every synchronized collection, stored in Redis under a
// fixed key. Updates are announced on a Pub/Sub channel carrying the full
// snapshot, so subscribers never need a follow-up fetch.
//
// The client is thread-safe and can be used concurrently from multiple
// goroutines.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/educreatorschool-design/hanvitlms/pkg/model"
)

// Client provides instance-scoped access to the remote state record.
// All keys and channels are automatically namespaced with the instance
// name.
type Client struct {
	rdb          *redis.Client
	instanceName string
}

// NewClient creates a remote record client for the specified instance.
// Returns an error if instanceName is empty.
func NewClient(redisOpts *redis.Options, instanceName string) (*Client, error) {
	if instanceName == "" {
		return nil, fmt.Errorf("instance name cannot be empty")
	}

	return &Client{
		rdb:          redis.NewClient(redisOpts),
		instanceName: instanceName,
	}, nil
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity. Useful for health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Fetch retrieves the current remote snapshot. Returns (nil, redis.Nil)
// if no snapshot has ever been pushed; use IsNotFound to check.
//
// Collections absent from the stored JSON come back as nil slices, which
// the store's remote-apply path treats as "default", not "drop".
func (c *Client) Fetch(ctx context.Context) (*model.Snapshot, error) {
	data, err := c.rdb.Get(ctx, StateKey(c.instanceName)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("failed to fetch remote state: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("failed to decode remote state: %w", err)
	}
	return &snap, nil
}

// Upsert replaces the remote record with the given snapshot (full
// document replace, not a diff) and publishes the snapshot JSON to the
// state events channel so other clients apply it without refetching.
func (c *Client) Upsert(ctx context.Context, snap *model.Snapshot) error {
	data, err := snap.Encode()
	if err != nil {
		return err
	}

	if err := c.rdb.Set(ctx, StateKey(c.instanceName), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write remote state: %w", err)
	}

	channel := StateEventsChannel(c.instanceName)
	if err := c.rdb.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish state event: %w", err)
	}

	return nil
}

// Subscription represents an active Pub/Sub subscription to state update
// events. Caller must call Close() when done to clean up resources.
type Subscription struct {
	events <-chan *model.Snapshot
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of inbound snapshots. The channel is closed
// when the subscription is closed or the context is cancelled.
func (s *Subscription) Events() <-chan *model.Snapshot {
	return s.events
}

// Errors returns the channel of subscription errors. Errors include JSON
// decode failures and other non-fatal issues; the subscription continues
// after errors and the offending message is skipped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription and cleans up resources. Implements
// io.Closer. Safe to call multiple times.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// Subscribe subscribes to state update events for this instance.
// Returns a Subscription delivering full snapshots. Caller must call
// subscription.Close() when done; context cancellation also stops the
// subscription.
//
// Events are delivered on a buffered channel (size 10). Redis Pub/Sub is
// at-most-once: a subscriber that falls behind may miss intermediate
// snapshots, which is acceptable because every event carries the complete
// state.
func (c *Client) Subscribe(ctx context.Context) (*Subscription, error) {
	channel := StateEventsChannel(c.instanceName)
	pubsub := c.rdb.Subscribe(ctx, channel)

	eventsChan := make(chan *model.Snapshot, 10)
	errorsChan := make(chan error, 10)

	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var snap model.Snapshot
				if err := json.Unmarshal([]byte(msg.Payload), &snap); err != nil {
					select {
					case errorsChan <- fmt.Errorf("failed to decode state event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}

				select {
				case eventsChan <- &snap:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}

// IsNotFound returns true if the error indicates the remote record does
// not exist yet (redis.Nil).
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
