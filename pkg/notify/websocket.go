package notify

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"github.com/gorilla/websocket"
)

// PumpConfig configures a websocket pump.
type PumpConfig struct {
	// Name is the notification name posted for each message
	// (default: "websocket.message").
	Name string

	// Logger receives read-loop diagnostics (default: slog.Default).
	Logger *slog.Logger
}

// PumpOption configures a websocket pump.
type PumpOption func(*PumpConfig)

// WithName sets the notification name used for incoming messages.
func WithName(name string) PumpOption {
	return func(c *PumpConfig) {
		c.Name = name
	}
}

// WithLogger sets the pump's logger.
func WithLogger(logger *slog.Logger) PumpOption {
	return func(c *PumpConfig) {
		c.Logger = logger
	}
}

// PumpWebSocket drains conn and posts each received message to center as a
// Notification whose payload is the raw message bytes. It blocks until the
// connection closes, ctx is cancelled, or a read fails.
//
// PumpWebSocket is the concrete transport behind the notification source:
// pair it with Notifications to observe a remote feed as a stream.
func PumpWebSocket(ctx context.Context, conn *websocket.Conn, center *Center, opts ...PumpOption) error {
	config := PumpConfig{
		Name:   "websocket.message",
		Logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&config)
	}

	logger := config.Logger.With("component", "notify.pump")

	// Unblock the read loop when the context ends.
	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) ||
				errors.Is(err, net.ErrClosed) {
				logger.Debug("websocket closed", "reason", err)
				return nil
			}
			logger.Warn("websocket read failed", "error", err)
			return err
		}
		center.Post(Notification{Name: config.Name, Payload: data})
	}
}
