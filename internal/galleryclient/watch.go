package galleryclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"portfolio/internal/contextutil"
	"portfolio/internal/events"
)

// Refresher reloads a photo list. *Catalog implements it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Watch listens on the server's event stream and refreshes catalog after
// every photo change. It blocks until ctx is done or the connection fails.
func (c *Client) Watch(ctx context.Context, catalog Refresher) error {
	logger := contextutil.LoggerFromContext(ctx)

	u := *c.baseURL
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path += "/api/events"

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: websocket.DefaultDialer.HandshakeTimeout,
		Jar:              c.jar,
	}
	conn, resp, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("failed to connect to event stream: %s: %w", resp.Status, err)
		}
		return fmt.Errorf("failed to connect to event stream: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	for {
		var msg events.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("event stream closed: %w", err)
		}
		if msg.Type != events.TypePhotosChanged {
			continue
		}
		logger.DebugContext(ctx, "photos changed, refreshing catalog", "action", msg.Action, "photo_id", msg.PhotoID)
		if err := catalog.Refresh(ctx); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
