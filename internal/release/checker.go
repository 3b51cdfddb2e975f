// Package release checks GitHub for a newer docsee release.
package release

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultAPI is the GitHub REST endpoint.
const DefaultAPI = "https://api.github.com"

// githubRelease represents the minimal response from GitHub releases API.
type githubRelease struct {
	TagName string `json:"tag_name"`
}

// Checker asks the releases API of Owner/Repo for the latest tag.
type Checker struct {
	API    string
	Owner  string
	Repo   string
	Client *http.Client
}

// CheckLatest returns the latest tag if it is newer than current, or "".
func (c Checker) CheckLatest(ctx context.Context, current string) (string, error) {
	api := c.API
	if api == "" {
		api = DefaultAPI
	}
	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimSuffix(api, "/"), c.Owner, c.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github api returned %d", resp.StatusCode)
	}

	var rel githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", err
	}
	if rel.TagName == "" {
		return "", nil
	}
	if IsNewer(rel.TagName, current) {
		return rel.TagName, nil
	}
	return "", nil
}

// IsNewer reports whether version a is newer than b. Both may carry a
// leading "v". A dev or empty b is older than any release.
func IsNewer(a, b string) bool {
	a, b = strings.TrimPrefix(a, "v"), strings.TrimPrefix(b, "v")
	if b == "" || b == "dev" {
		return true
	}
	pa, pb := parts(a), parts(b)
	for i := 0; i < max(len(pa), len(pb)); i++ {
		var x, y int
		if i < len(pa) {
			x = pa[i]
		}
		if i < len(pb) {
			y = pb[i]
		}
		if x != y {
			return x > y
		}
	}
	return false
}

// parts splits "1.10.2-rc1" into [1 10 2]; pre-release suffixes are ignored.
func parts(v string) []int {
	v, _, _ = strings.Cut(v, "-")
	var out []int
	for _, p := range strings.Split(v, ".") {
		n, err := strconv.Atoi(p)
		if err != nil {
			break
		}
		out = append(out, n)
	}
	return out
}
