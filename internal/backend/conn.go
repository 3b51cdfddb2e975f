package backend

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"

	"github.com/kostyay/docsee/internal/bridge"
)

const (
	writeTimeout   = 10 * time.Second
	maxMessageSize = 1 << 20 // 1 MB, requests are small
)

var connIDCounter uint64

// conn wraps a single websocket connection.
type conn struct {
	id     string
	ws     *websocket.Conn
	server *Server

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func newConn(ws *websocket.Conn, s *Server) *conn {
	id := atomic.AddUint64(&connIDCounter, 1)
	return &conn{
		id:     "c" + strconv.FormatUint(id, 10),
		ws:     ws,
		server: s,
	}
}

// ServeWS upgrades the request and serves calls until the peer goes away.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The TUI is not a browser; origin checks do not apply.
		InsecureSkipVerify: true,
	})
	if err != nil {
		slog.Error("ws accept", "err", err)
		return
	}

	c := newConn(ws, s)
	slog.Debug("ws connected", "conn", c.id, "remote", r.RemoteAddr)

	// Block on the read pump; this goroutine is owned by net/http
	c.readPump(r.Context())
}

// readPump reads requests and runs each one in its own goroutine so a slow
// engine call never blocks the next request.
func (c *conn) readPump(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		c.wg.Wait()
		c.close()
		slog.Debug("ws disconnected", "conn", c.id)
	}()

	c.ws.SetReadLimit(maxMessageSize)

	for {
		_, data, err := c.ws.Read(ctx)
		if err != nil {
			slog.Debug("ws read", "conn", c.id, "err", err)
			return
		}

		var req bridge.Request
		if err := json.Unmarshal(data, &req); err != nil {
			slog.Warn("ws unmarshal", "conn", c.id, "err", err)
			continue
		}

		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			resp := c.server.Dispatch(ctx, req)
			c.writeJSON(resp)
		}()
	}
}

func (c *conn) writeJSON(resp bridge.Response) {
	// Marshal outside the lock; this is CPU work, not I/O
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error("ws marshal", "err", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := c.ws.Write(ctx, websocket.MessageText, data); err != nil {
		slog.Debug("ws write", "conn", c.id, "err", err)
		c.closeLocked()
	}
}

func (c *conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeLocked()
}

func (c *conn) closeLocked() {
	if c.closed {
		return
	}
	c.closed = true
	c.ws.Close(websocket.StatusNormalClosure, "")
}
