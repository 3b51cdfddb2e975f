package model

import "testing"

func TestIsSystemNetwork(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"bridge", true},
		{"host", true},
		{"none", true},
		{"my-app", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSystemNetwork(tt.name); got != tt.want {
			t.Errorf("IsSystemNetwork(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNetworkSubnets(t *testing.T) {
	n := Network{
		ID: "n1",
		IPAM: IPAM{Config: []IPAMConfig{
			{Subnet: "172.18.0.0/16", Gateway: "172.18.0.1"},
			{Gateway: "10.0.0.1"},
			{Subnet: "fd00::/64"},
		}},
	}
	got := n.Subnets()
	if len(got) != 2 {
		t.Fatalf("Subnets() len = %d, want 2", len(got))
	}
	if got[0] != "172.18.0.0/16" || got[1] != "fd00::/64" {
		t.Errorf("Subnets() = %v", got)
	}
}

func TestNetworkOptionsValidate(t *testing.T) {
	if err := (CreateNetworkOptions{Name: "  "}).Validate(); err == nil {
		t.Error("expected error for blank network name")
	}
	if err := (CreateNetworkOptions{Name: "backend"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (ConnectNetworkOptions{}).Validate(); err == nil {
		t.Error("expected error for connect without container")
	}
	if err := (DisconnectNetworkOptions{Container: "c1", Force: true}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestImageIsTagged(t *testing.T) {
	tests := []struct {
		tags []string
		want bool
	}{
		{nil, false},
		{[]string{}, false},
		{[]string{UntaggedRef}, false},
		{[]string{"nginx:latest"}, true},
		{[]string{"nginx:latest", "nginx:1.25"}, true},
	}
	for _, tt := range tests {
		img := Image{ID: "sha256:1", RepoTags: tt.tags}
		if got := img.IsTagged(); got != tt.want {
			t.Errorf("IsTagged(%v) = %v, want %v", tt.tags, got, tt.want)
		}
	}
}

func TestContainerName(t *testing.T) {
	c := Container{ID: "abc", Names: []string{"/web-1", "/alias"}}
	if got := c.Name(); got != "web-1" {
		t.Errorf("Name() = %q, want 'web-1'", got)
	}
	c.Names = nil
	if got := c.Name(); got != "" {
		t.Errorf("Name() = %q, want empty", got)
	}
}

func TestVolumeUsage(t *testing.T) {
	v := Volume{Name: "data"}
	if v.RefCount() != 0 || v.Size() != 0 {
		t.Errorf("expected zero usage without usage_data")
	}
	v.UsageData = &VolumeUsageData{RefCount: 2, Size: -1}
	if v.RefCount() != 2 {
		t.Errorf("RefCount() = %d, want 2", v.RefCount())
	}
	if v.Size() != 0 {
		t.Errorf("Size() = %d, want 0 for unknown size", v.Size())
	}
}

func TestLogLineKey(t *testing.T) {
	ts := "2024-01-01T00:00:00Z"
	a := LogLine{Timestamp: &ts, Stream: StreamStdout, Content: "hello"}
	b := LogLine{Timestamp: &ts, Stream: StreamStderr, Content: "hello"}
	c := LogLine{Stream: StreamStdout, Content: "hello"}
	if a.Key() != b.Key() {
		t.Error("lines with equal content and timestamp should share a key")
	}
	if a.Key() == c.Key() {
		t.Error("missing timestamp should not match a present one")
	}
}
