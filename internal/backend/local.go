package backend

import (
	"context"
	"sync/atomic"

	"github.com/kostyay/docsee/internal/bridge"
)

// LocalCaller runs calls against a Server in the same process. Arguments and
// results take the same JSON round trip as over the websocket.
type LocalCaller struct {
	Server *Server
	nextID atomic.Int64
}

// Call implements bridge.Caller.
func (l *LocalCaller) Call(ctx context.Context, op string, args any, out any) error {
	raw, err := bridge.EncodeArgs(args)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	resp := l.Server.Dispatch(ctx, bridge.Request{ID: l.nextID.Add(1), Op: op, Args: raw})
	return bridge.DecodeResponse(op, resp, out)
}
