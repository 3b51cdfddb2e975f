package docker

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/kostyay/docsee/internal/model"
)

func muxed(t *testing.T, frames ...[2]string) string {
	t.Helper()
	var buf bytes.Buffer
	stdout := stdcopy.NewStdWriter(&buf, stdcopy.Stdout)
	stderr := stdcopy.NewStdWriter(&buf, stdcopy.Stderr)
	for _, f := range frames {
		w := stdout
		if f[0] == model.StreamStderr {
			w = stderr
		}
		if _, err := w.Write([]byte(f[1])); err != nil {
			t.Fatal(err)
		}
	}
	return buf.String()
}

func TestContainerLogs_Demux(t *testing.T) {
	mock := &mockDockerAPI{
		inspect: container.InspectResponse{Config: &container.Config{}},
		logs: muxed(t,
			[2]string{model.StreamStdout, "2024-05-01T10:00:00.000000001Z hello\n"},
			[2]string{model.StreamStderr, "2024-05-01T10:00:01.5Z oops\n"},
			[2]string{model.StreamStdout, "2024-05-01T10:00:02Z part"},
			[2]string{model.StreamStdout, "ial\n"},
		),
	}
	e := newTestEngine(t, mock)

	lines, err := e.ContainerLogs(context.Background(), "abc", LogOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if mock.logOpts.Tail != "100" || !mock.logOpts.Timestamps {
		t.Errorf("options = %+v, want tail 100 with timestamps", mock.logOpts)
	}

	want := []struct{ stream, ts, content string }{
		{model.StreamStdout, "2024-05-01T10:00:00.000000001Z", "hello"},
		{model.StreamStderr, "2024-05-01T10:00:01.5Z", "oops"},
		{model.StreamStdout, "2024-05-01T10:00:02Z", "partial"},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines: %+v", len(lines), lines)
	}
	for i, w := range want {
		l := lines[i]
		if l.Stream != w.stream || l.Timestamp == nil || *l.Timestamp != w.ts || l.Content != w.content {
			t.Errorf("line %d = %+v, want %+v", i, l, w)
		}
	}
}

func TestContainerLogs_TTY(t *testing.T) {
	mock := &mockDockerAPI{
		inspect: container.InspectResponse{Config: &container.Config{Tty: true}},
		logs:    "2024-05-01T10:00:00Z one\r\nno timestamp here\n",
	}
	e := newTestEngine(t, mock)

	lines, err := e.ContainerLogs(context.Background(), "abc", LogOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("lines = %+v", lines)
	}
	if lines[0].Content != "one" || lines[0].Stream != model.StreamStdout {
		t.Errorf("line 0 = %+v", lines[0])
	}
	if lines[1].Timestamp != nil || lines[1].Content != "no timestamp here" {
		t.Errorf("line 1 = %+v", lines[1])
	}
}

func TestContainerLogs_Options(t *testing.T) {
	mock := &mockDockerAPI{inspect: container.InspectResponse{Config: &container.Config{Tty: true}}}
	e := newTestEngine(t, mock)

	tail := "50"
	since, until := int64(1700000000), int64(1700000100)
	_, err := e.ContainerLogs(context.Background(), "abc", LogOptions{Tail: &tail, Since: &since, Until: &until})
	if err != nil {
		t.Fatal(err)
	}
	if mock.logOpts.Tail != "50" || mock.logOpts.Since != "1700000000" || mock.logOpts.Until != "1700000100" {
		t.Errorf("options = %+v", mock.logOpts)
	}
	if mock.logOpts.Follow {
		t.Error("engine asked to follow")
	}
}

func TestContainerLogs_Cap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < MaxLogLines+5; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	mock := &mockDockerAPI{
		inspect: container.InspectResponse{Config: &container.Config{Tty: true}},
		logs:    sb.String(),
	}
	e := newTestEngine(t, mock)

	lines, _ := e.ContainerLogs(context.Background(), "abc", LogOptions{})
	if len(lines) != MaxLogLines {
		t.Fatalf("len = %d, want %d", len(lines), MaxLogLines)
	}
	if lines[0].Content != "line 5" {
		t.Errorf("first kept line = %q, want newest window", lines[0].Content)
	}

	lines, _ = e.ContainerLogs(context.Background(), "abc", LogOptions{Follow: true})
	if len(lines) != MaxLogLines+5 {
		t.Errorf("follow len = %d, want uncapped", len(lines))
	}
}

func TestParseLogLine(t *testing.T) {
	tests := []struct {
		raw     string
		ts      string
		content string
	}{
		{raw: "2024-01-01T00:00:00Z msg with  spaces", ts: "2024-01-01T00:00:00Z", content: "msg with  spaces"},
		{raw: "not-a-time msg", content: "not-a-time msg"},
		{raw: "2024-01-01T00:00:00Z", ts: "2024-01-01T00:00:00Z", content: ""},
		{raw: "", content: ""},
	}
	for _, tt := range tests {
		l := parseLogLine(model.StreamStdout, tt.raw)
		gotTS := ""
		if l.Timestamp != nil {
			gotTS = *l.Timestamp
		}
		if gotTS != tt.ts || l.Content != tt.content {
			t.Errorf("parseLogLine(%q) = (%q, %q), want (%q, %q)", tt.raw, gotTS, l.Content, tt.ts, tt.content)
		}
	}
}
