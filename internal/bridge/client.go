package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
)

const (
	writeTimeout   = 10 * time.Second
	maxMessageSize = 8 << 20 // 8 MB, log windows can be large
)

// DialOptions configures Dial.
type DialOptions struct {
	// Token is sent as a bearer token when set.
	Token string
	// HTTPClient overrides the client used for the upgrade request.
	HTTPClient *http.Client
}

// Client is a Caller that talks to the backend over one websocket.
// It is safe for concurrent use; responses are matched to calls by ID.
type Client struct {
	ws     *websocket.Conn
	nextID atomic.Int64

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[int64]chan Response
	closed  bool
	done    chan struct{}
}

// Dial connects to the backend websocket endpoint at url.
func Dial(ctx context.Context, url string, opts *DialOptions) (*Client, error) {
	wsOpts := &websocket.DialOptions{}
	if opts != nil {
		wsOpts.HTTPClient = opts.HTTPClient
		if opts.Token != "" {
			wsOpts.HTTPHeader = http.Header{"Authorization": []string{"Bearer " + opts.Token}}
		}
	}

	ws, _, err := websocket.Dial(ctx, url, wsOpts)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	ws.SetReadLimit(maxMessageSize)

	c := &Client{
		ws:      ws,
		pending: make(map[int64]chan Response),
		done:    make(chan struct{}),
	}
	go c.readPump()

	slog.Debug("bridge connected", "url", url)
	return c, nil
}

// Call implements Caller.
func (c *Client) Call(ctx context.Context, op string, args any, out any) error {
	raw, err := EncodeArgs(args)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	id := c.nextID.Add(1)
	ch := make(chan Response, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.pending[id] = ch
	c.mu.Unlock()
	defer c.forget(id)

	data, err := json.Marshal(Request{ID: id, Op: op, Args: raw})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.write(ctx, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	select {
	case resp := <-ch:
		return DecodeResponse(op, resp, out)
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrClosed
	}
}

func (c *Client) write(ctx context.Context, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.ws.Write(wctx, websocket.MessageText, data)
}

func (c *Client) forget(id int64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *Client) readPump() {
	defer c.shutdown()

	for {
		_, data, err := c.ws.Read(context.Background())
		if err != nil {
			slog.Debug("bridge read", "err", err)
			return
		}

		var resp Response
		if err := json.Unmarshal(data, &resp); err != nil {
			slog.Warn("bridge unmarshal", "err", err)
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[resp.ID]
		delete(c.pending, resp.ID)
		c.mu.Unlock()

		if !ok {
			slog.Debug("bridge response without caller", "id", resp.ID)
			continue
		}
		ch <- resp
	}
}

func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
}

// Close closes the connection. Pending and future calls fail with ErrClosed.
func (c *Client) Close() error {
	c.shutdown()
	return c.ws.Close(websocket.StatusNormalClosure, "")
}
