package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrijs2005/localswap/internal/logging"
	"github.com/dmitrijs2005/localswap/internal/server/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Channel is the NOTIFY channel the messages trigger publishes on.
const Channel = "localswap_messages"

// DefaultBackoff is the pause before re-listening after a connection error.
const DefaultBackoff = 2 * time.Second

// notifyConn is the part of a pooled connection the listener needs.
type notifyConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Release()
}

type poolConn struct {
	*pgxpool.Conn
}

func (c poolConn) WaitForNotification(ctx context.Context) (*pgconn.Notification, error) {
	return c.Conn.Conn().WaitForNotification(ctx)
}

// Listener relays Postgres notifications about inserted messages to a Hub.
type Listener struct {
	connect func(ctx context.Context) (notifyConn, error)
	hub     *Hub
	channel string
	backoff time.Duration
	log     logging.Logger
}

// NewListener builds a Listener that holds one connection of pool for LISTEN.
func NewListener(pool *pgxpool.Pool, hub *Hub, log logging.Logger) *Listener {
	return &Listener{
		connect: func(ctx context.Context) (notifyConn, error) {
			c, err := pool.Acquire(ctx)
			if err != nil {
				return nil, err
			}
			return poolConn{c}, nil
		},
		hub:     hub,
		channel: Channel,
		backoff: DefaultBackoff,
		log:     log.With("module", "realtime"),
	}
}

// Run listens until ctx is cancelled, reconnecting after DefaultBackoff on
// errors. It returns ctx.Err().
func (l *Listener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.log.Warn(ctx, "listener disconnected", "error", err, "retry_in", l.backoff.String())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.backoff):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return err
	}
	l.log.Info(ctx, "listening for messages", "channel", l.channel)

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		if n.Channel != l.channel {
			continue
		}
		l.handle(ctx, n.Payload)
	}
}

func (l *Listener) handle(ctx context.Context, payload string) {
	m, err := DecodeMessage(payload)
	if err != nil {
		l.log.Error(ctx, "bad notification payload", "error", err)
		return
	}
	l.hub.Publish(ctx, m)
}

// DecodeMessage parses the row_to_json payload of an inserted message.
func DecodeMessage(payload string) (*models.Message, error) {
	var m models.Message
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return nil, err
	}
	if m.ID == "" || m.ConversationID == "" {
		return nil, errors.New("message payload without id or conversation_id")
	}
	return &m, nil
}
