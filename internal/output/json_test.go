package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/kostyay/docsee/internal/model"
)

func TestRenderList(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	containers := []model.Container{
		{ID: "abc123", Names: []string{"/web"}, State: model.StateRunning},
	}

	var buf bytes.Buffer
	if err := RenderList(&buf, "containers", containers, now); err != nil {
		t.Fatalf("RenderList failed: %v", err)
	}

	var out struct {
		Timestamp time.Time         `json:"timestamp"`
		Kind      string            `json:"kind"`
		Count     int               `json:"count"`
		Items     []model.Container `json:"items"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("Failed to unmarshal output: %v", err)
	}
	if out.Kind != "containers" || out.Count != 1 || !out.Timestamp.Equal(now) {
		t.Errorf("envelope = %+v", out)
	}
	if len(out.Items) != 1 || out.Items[0].ID != "abc123" {
		t.Errorf("items = %+v", out.Items)
	}
	if !strings.Contains(buf.String(), "\n  \"kind\"") {
		t.Error("output is not indented")
	}
}

func TestRenderList_NilRendersEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderList[model.Volume](&buf, "volumes", nil, time.Now()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"items": []`) {
		t.Errorf("output = %s", buf.String())
	}
}

func TestRenderContainers(t *testing.T) {
	now := time.Unix(1700003600, 0)
	pub := uint16(8080)
	items := []model.Container{{
		ID:      "0123456789abcdef",
		Names:   []string{"/web"},
		Image:   "nginx:latest",
		Created: 1700000000,
		Status:  "Up 1 hour",
		Ports:   []model.ContainerPort{{PrivatePort: 80, PublicPort: &pub, Type: "tcp"}},
	}}

	var buf bytes.Buffer
	if err := RenderContainers(&buf, items, now); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasPrefix(lines[0], "CONTAINER ID") {
		t.Errorf("header = %q", lines[0])
	}
	for _, want := range []string{"0123456789ab", "nginx:latest", "About an hour ago", "Up 1 hour", "8080:80/tcp", "web"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row %q missing %q", lines[1], want)
		}
	}
}

func TestRenderImages(t *testing.T) {
	now := time.Unix(1700000000+3*86400, 0)
	items := []model.Image{
		{ID: "sha256:feedfacecafe1234", RepoTags: []string{"alpine:3.19"}, Created: 1700000000, Size: 7_300_000},
		{ID: "sha256:deadbeef00001111", RepoTags: []string{model.UntaggedRef}, Created: 1700000000},
	}
	var buf bytes.Buffer
	if err := RenderImages(&buf, items, now); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"alpine", "3.19", "feedfacecafe", "3 days ago", "7.3MB", "<none>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderNetworksAndVolumes(t *testing.T) {
	var buf bytes.Buffer
	err := RenderNetworks(&buf, []model.Network{{
		ID: "n1", Name: "app", Driver: "bridge", Scope: "local",
		Containers: map[string]model.NetworkContainer{"c": {}},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "app") || !strings.Contains(buf.String(), "bridge") {
		t.Errorf("networks:\n%s", buf.String())
	}

	buf.Reset()
	err = RenderVolumes(&buf, []model.Volume{
		{Name: "data", Driver: "local", UsageData: &model.VolumeUsageData{Size: 2048}},
		{Name: "other", Driver: "local"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "2.05kB") || !strings.Contains(buf.String(), "N/A") {
		t.Errorf("volumes:\n%s", buf.String())
	}
}

func TestRenderLogs(t *testing.T) {
	ts := "2024-01-01T00:00:00Z"
	var buf bytes.Buffer
	err := RenderLogs(&buf, []model.LogLine{
		{Timestamp: &ts, Stream: model.StreamStdout, Content: "hello"},
		{Stream: model.StreamStderr, Content: "oops"},
	}, true)
	if err != nil {
		t.Fatal(err)
	}
	want := "2024-01-01T00:00:00Z hello\n[stderr] oops\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
