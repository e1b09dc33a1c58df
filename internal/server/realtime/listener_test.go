package realtime

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/localswap/internal/logging"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	execSQL  []string
	notes    chan *pgconn.Notification
	released atomic.Bool
}

func (f *fakeConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	return pgconn.CommandTag{}, nil
}

func (f *fakeConn) WaitForNotification(ctx context.Context) (*pgconn.Notification, error) {
	select {
	case n, ok := <-f.notes:
		if !ok {
			return nil, errors.New("conn closed")
		}
		return n, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeConn) Release() { f.released.Store(true) }

func newTestListener(hub *Hub, connect func(ctx context.Context) (notifyConn, error)) *Listener {
	return &Listener{
		connect: connect,
		hub:     hub,
		channel: Channel,
		backoff: time.Millisecond,
		log:     logging.Discard(),
	}
}

func TestListener_RelaysNotifications(t *testing.T) {
	hub := NewHub(logging.Discard(), 4)
	sub := hub.Subscribe("c1")
	defer sub.Close()

	conn := &fakeConn{notes: make(chan *pgconn.Notification, 4)}
	l := newTestListener(hub, func(ctx context.Context) (notifyConn, error) { return conn, nil })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	conn.notes <- &pgconn.Notification{Channel: "other", Payload: `{"id":"x","conversation_id":"c1"}`}
	conn.notes <- &pgconn.Notification{Channel: Channel, Payload: `not json`}
	conn.notes <- &pgconn.Notification{Channel: Channel, Payload: `{"id":"m1","conversation_id":"c1","sender_id":"u1","content":"Ciao!","message_type":"text","read_at":null,"created_at":"2025-03-01T09:00:00.123456+00:00"}`}

	select {
	case m := <-sub.C:
		assert.Equal(t, "m1", m.ID)
		assert.Equal(t, "Ciao!", m.Content)
		assert.Nil(t, m.ReadAt)
	case <-time.After(2 * time.Second):
		t.Fatal("no message relayed")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	assert.True(t, conn.released.Load())
	assert.Equal(t, []string{`LISTEN "localswap_messages"`}, conn.execSQL)
}

func TestListener_ReconnectsAfterErrors(t *testing.T) {
	hub := NewHub(logging.Discard(), 4)
	sub := hub.Subscribe("c9")
	defer sub.Close()

	var attempts atomic.Int32
	l := newTestListener(hub, func(ctx context.Context) (notifyConn, error) {
		if attempts.Add(1) < 3 {
			return nil, errors.New("connection refused")
		}
		conn := &fakeConn{notes: make(chan *pgconn.Notification, 1)}
		conn.notes <- &pgconn.Notification{Channel: Channel, Payload: `{"id":"m9","conversation_id":"c9"}`}
		return conn, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	select {
	case m := <-sub.C:
		assert.Equal(t, "m9", m.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not reconnect")
	}
	assert.GreaterOrEqual(t, attempts.Load(), int32(3))
}

func TestDecodeMessage(t *testing.T) {
	_, err := DecodeMessage(`{"content":"orphan"}`)
	assert.Error(t, err)

	m, err := DecodeMessage(`{"id":"m1","conversation_id":"c1","read_at":"2025-03-01T09:05:00+00:00"}`)
	require.NoError(t, err)
	require.NotNil(t, m.ReadAt)
	assert.Equal(t, 5, m.ReadAt.Minute())
}
