package wsource

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/propcell-dev/propcell/pkg/propcell"
)

// config holds feed settings; all fields have working defaults.
type config struct {
	logger      *slog.Logger
	dialer      *websocket.Dialer
	readTimeout time.Duration
}

// Option configures a Feed.
type Option func(*config)

// WithLogger sets the logger used by the read loop. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithDialer sets the WebSocket dialer. Default: websocket.DefaultDialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *config) {
		c.dialer = d
	}
}

// WithReadTimeout bounds the wait for each message. Zero (the default)
// means no deadline.
func WithReadTimeout(d time.Duration) Option {
	return func(c *config) {
		c.readTimeout = d
	}
}

func defaultConfig() config {
	return config{
		logger: slog.Default(),
		dialer: websocket.DefaultDialer,
	}
}

// Feed is a WebSocket-backed push source of JSON-decoded values.
type Feed[T any] struct {
	conn   *websocket.Conn
	stream *propcell.ChangeStream[T]
	cfg    config

	closeOnce sync.Once

	// closing is set before Close tears the connection down, so the read
	// loop can tell a local close from a genuine read failure.
	closing atomic.Bool
}

// Dial connects to url and starts the read loop. The returned feed is live:
// subscribers registered after Dial receive every subsequently decoded
// message.
func Dial[T any](ctx context.Context, url string, opts ...Option) (*Feed[T], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	conn, resp, err := cfg.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("wsource: dial %s: %w", url, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	f := &Feed[T]{
		conn:   conn,
		stream: propcell.NewChangeStream[T](),
		cfg:    cfg,
	}
	go f.readLoop()
	return f, nil
}

// Subscribe registers an observer for decoded values and the feed's
// terminal signal. Implements propcell.Source.
func (f *Feed[T]) Subscribe(obs propcell.Observer[T]) *propcell.Subscription {
	return f.stream.Subscribe(obs)
}

// readLoop reads until the connection closes. A close handshake completes
// the stream; any other error fails it.
func (f *Feed[T]) readLoop() {
	defer f.conn.Close()

	for {
		if f.cfg.readTimeout > 0 {
			f.conn.SetReadDeadline(time.Now().Add(f.cfg.readTimeout))
		}

		_, msg, err := f.conn.ReadMessage()
		if err != nil {
			switch {
			case f.closing.Load():
				// Close tore the connection down locally; whatever error
				// the read surfaces, subscribers get completion.
				f.stream.Complete()
			case websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway):
				f.stream.Complete()
			default:
				f.cfg.logger.Error("feed read error", "error", err)
				f.stream.Fail(fmt.Errorf("wsource: read: %w", err))
			}
			return
		}

		var v T
		if err := json.Unmarshal(msg, &v); err != nil {
			f.cfg.logger.Error("feed decode error", "error", err)
			continue
		}

		// A subscriber error is surfaced here: the feed is the external
		// call site that triggered the delivery.
		if err := f.stream.Push(v); err != nil {
			f.cfg.logger.Error("feed delivery error", "error", err)
		}
	}
}

// Close performs the close handshake and terminates the feed. Idempotent.
// Subscribers that have not already seen a terminal signal receive
// completion.
func (f *Feed[T]) Close() error {
	var err error
	f.closeOnce.Do(func() {
		f.closing.Store(true)
		deadline := time.Now().Add(time.Second)
		err = f.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		// Complete before dropping the connection: if the read loop fails
		// first, its terminal signal is a no-op against the already-closed
		// stream rather than the other way around.
		f.stream.Complete()
		f.conn.Close()
	})
	return err
}
