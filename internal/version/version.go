package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// These variables are set at build time via -ldflags
var (
	Version   = "dev"     // Set via: -ldflags "-X github.com/osa911/contactform/internal/version.Version=v1.0.0"
	BuildTime = "unknown" // Set via: -ldflags "-X github.com/osa911/contactform/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
	GitCommit = "unknown" // Set via: -ldflags "-X github.com/osa911/contactform/internal/version.GitCommit=$(git rev-parse HEAD)"
)

// BuildInfo contains comprehensive build information
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Compiler  string `json:"compiler"`
}

// GetBuildInfo returns complete build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Compiler:  runtime.Compiler,
	}
}

// Info returns a formatted version info string for CLI output
func Info() string {
	buildInfo := GetBuildInfo()
	if buildInfo.BuildTime == "unknown" {
		return fmt.Sprintf("%s (development build)", buildInfo.Version)
	}

	buildTime, err := time.Parse(time.RFC3339, buildInfo.BuildTime)
	if err != nil {
		return fmt.Sprintf("%s (built %s)", buildInfo.Version, buildInfo.BuildTime)
	}

	commit := buildInfo.GitCommit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return fmt.Sprintf("%s (built %s, commit %s)",
		buildInfo.Version,
		buildTime.UTC().Format("2006-01-02 15:04:05 UTC"),
		commit)
}

// FetchServerInfo reads the build information of a running server
func FetchServerInfo(ctx context.Context, client *http.Client, serverURL string) (*BuildInfo, error) {
	versionURL := strings.TrimRight(serverURL, "/") + "/version"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, versionURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create version request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to check server version: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var info BuildInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to parse version response: %w", err)
	}

	return &info, nil
}

// CompareVersions compares two semantic version strings
// Returns: -1 if v1 < v2, 0 if v1 == v2, 1 if v1 > v2
func CompareVersions(v1, v2 string) int {
	// Remove 'v' prefix if present
	v1 = strings.TrimPrefix(v1, "v")
	v2 = strings.TrimPrefix(v2, "v")

	// Handle special cases
	if v1 == v2 {
		return 0
	}
	if v1 == "dev" || v1 == "unknown" {
		return -1 // Development versions are considered older
	}
	if v2 == "dev" || v2 == "unknown" {
		return 1
	}

	core1, pre1, _ := strings.Cut(v1, "-")
	core2, pre2, _ := strings.Cut(v2, "-")

	// Split versions into parts
	parts1 := strings.Split(core1, ".")
	parts2 := strings.Split(core2, ".")

	maxLen := max(len(parts1), len(parts2))
	for i := 0; i < maxLen; i++ {
		num1 := parseVersionPart(parts1, i)
		num2 := parseVersionPart(parts2, i)

		if num1 < num2 {
			return -1
		}
		if num1 > num2 {
			return 1
		}
	}

	// A pre-release sorts before its release
	switch {
	case pre1 == pre2:
		return 0
	case pre1 == "":
		return 1
	case pre2 == "":
		return -1
	case pre1 < pre2:
		return -1
	default:
		return 1
	}
}

// parseVersionPart returns the leading number of parts[i], zero when absent
func parseVersionPart(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	part := parts[i]

	// Find the first non-digit character
	n := 0
	for n < len(part) && (part[n] >= '0' && part[n] <= '9') {
		n++
	}

	if n == 0 {
		return 0
	}

	num, err := strconv.Atoi(part[:n])
	if err != nil {
		return 0
	}

	return num
}
