package docker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/kostyay/docsee/internal/model"
)

// Log fetch defaults.
const (
	DefaultLogTail = "100"
	MaxLogLines    = 1000
)

// LogOptions selects a window of container output.
type LogOptions struct {
	Follow bool
	Tail   *string
	Since  *int64 // unix seconds
	Until  *int64 // unix seconds
}

// ContainerLogs returns a window of a container's output split into lines.
// Follow does not stream: the window is returned as soon as the engine has
// sent it, and the line cap is not applied so the caller can merge windows.
func (e *Engine) ContainerLogs(ctx context.Context, id string, opts LogOptions) ([]model.LogLine, error) {
	cli, err := e.client()
	if err != nil {
		return nil, err
	}

	inspect, err := cli.ContainerInspect(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("container logs: %w", notFound(err, "Container", id))
	}
	tty := inspect.Config != nil && inspect.Config.Tty

	tail := DefaultLogTail
	if opts.Tail != nil && *opts.Tail != "" {
		tail = *opts.Tail
	}
	lo := container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Timestamps: true,
		Tail:       tail,
	}
	if opts.Since != nil {
		lo.Since = strconv.FormatInt(*opts.Since, 10)
	}
	if opts.Until != nil {
		lo.Until = strconv.FormatInt(*opts.Until, 10)
	}

	rc, err := cli.ContainerLogs(ctx, id, lo)
	if err != nil {
		return nil, fmt.Errorf("container logs: %w", notFound(err, "Container", id))
	}
	defer rc.Close()

	lines, err := readLogLines(rc, tty)
	if err != nil {
		return nil, fmt.Errorf("container logs: %w", err)
	}
	if !opts.Follow && len(lines) > MaxLogLines {
		lines = lines[len(lines)-MaxLogLines:]
	}
	return lines, nil
}

// readLogLines splits an engine log stream into lines. Non-TTY streams are
// multiplexed and are demuxed with stdcopy; TTY streams are plain stdout.
func readLogLines(r io.Reader, tty bool) ([]model.LogLine, error) {
	var c logCollector
	stdout := c.writer(model.StreamStdout)
	if tty {
		if _, err := io.Copy(stdout, r); err != nil {
			return nil, err
		}
		c.flush()
		return c.lines, nil
	}
	stderr := c.writer(model.StreamStderr)
	if _, err := stdcopy.StdCopy(stdout, stderr, r); err != nil {
		return nil, err
	}
	c.flush()
	return c.lines, nil
}

// logCollector keeps lines from both streams in arrival order.
type logCollector struct {
	mu      sync.Mutex
	lines   []model.LogLine
	writers []*streamWriter
}

func (c *logCollector) writer(stream string) *streamWriter {
	w := &streamWriter{stream: stream, c: c}
	c.writers = append(c.writers, w)
	return w
}

func (c *logCollector) flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range c.writers {
		if w.partial.Len() > 0 {
			c.lines = append(c.lines, parseLogLine(w.stream, w.partial.String()))
			w.partial.Reset()
		}
	}
}

type streamWriter struct {
	stream  string
	c       *logCollector
	partial bytes.Buffer
}

func (w *streamWriter) Write(p []byte) (int, error) {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()

	n := len(p)
	for len(p) > 0 {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			w.partial.Write(p)
			break
		}
		w.partial.Write(p[:i])
		w.c.lines = append(w.c.lines, parseLogLine(w.stream, w.partial.String()))
		w.partial.Reset()
		p = p[i+1:]
	}
	return n, nil
}

// parseLogLine splits the RFC3339Nano timestamp the engine prefixes when
// timestamps are requested. Lines without one keep their full text.
func parseLogLine(stream, raw string) model.LogLine {
	raw = strings.TrimSuffix(raw, "\r")
	line := model.LogLine{Stream: stream, Content: raw}
	ts, rest, ok := strings.Cut(raw, " ")
	if !ok {
		if _, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			line.Timestamp, line.Content = &raw, ""
		}
		return line
	}
	if _, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		line.Timestamp = &ts
		line.Content = rest
	}
	return line
}
