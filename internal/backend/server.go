// Package backend serves named Docker operations to front-ends.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/kostyay/docsee/internal/bridge"
)

// HandlerFunc runs one operation. The result is marshaled as the response
// data; a nil result is sent as JSON null.
type HandlerFunc func(ctx context.Context, args Args) (any, error)

// Server maps operation names to handlers.
type Server struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

func NewServer() *Server {
	return &Server{handlers: make(map[string]HandlerFunc)}
}

// Handle registers fn for op, replacing any earlier handler.
func (s *Server) Handle(op string, fn HandlerFunc) {
	s.mu.Lock()
	s.handlers[op] = fn
	s.mu.Unlock()
}

// Ops lists the registered operation names, sorted.
func (s *Server) Ops() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ops := make([]string, 0, len(s.handlers))
	for op := range s.handlers {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// Dispatch runs the handler for req and builds its response. It never
// panics: handler panics become error responses.
func (s *Server) Dispatch(ctx context.Context, req bridge.Request) (resp bridge.Response) {
	resp.ID = req.ID

	s.mu.RLock()
	fn, ok := s.handlers[req.Op]
	s.mu.RUnlock()
	if !ok {
		resp.Error = fmt.Sprintf("unknown operation: %s", req.Op)
		return resp
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("handler panic", "op", req.Op, "panic", r)
			resp = bridge.Response{ID: req.ID, Error: bridge.ErrorMessageOf(r)}
		}
	}()

	args, err := ParseArgs(req.Args)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}

	result, err := fn(ctx, args)
	if err != nil {
		slog.Debug("op failed", "op", req.Op, "err", err)
		resp.Error = bridge.ErrorMessage(err)
		return resp
	}

	data, err := json.Marshal(result)
	if err != nil {
		resp.Error = fmt.Sprintf("encode result: %v", err)
		return resp
	}
	resp.OK = true
	resp.Data = data
	return resp
}
