// Package diagnostics collects the process details shown on the About page.
package diagnostics

import (
	"os"
	"runtime/debug"
	"strings"
)

// InformationalVersion is the release label stamped at build time with
// -ldflags "-X github.com/goliatone/go-welcome/internal/diagnostics.InformationalVersion=v1.2.3".
var InformationalVersion = ""

// FileVersion is the numeric version reported when no informational version
// is available.
const FileVersion = "1.0.0.0"

// About is the About page view model.
type About struct {
	ProcessID     int    `json:"processId"`
	Location      string `json:"location"`
	RootDirectory string `json:"rootDirectory"`
	Version       string `json:"version"`
}

// Collector gathers About models for a configured root directory.
type Collector struct {
	rootDirectory string
	pid           func() int
	executable    func() (string, error)
	buildInfo     func() (*debug.BuildInfo, bool)
}

// NewCollector returns a collector reporting rootDirectory.
func NewCollector(rootDirectory string) *Collector {
	return &Collector{
		rootDirectory: rootDirectory,
		pid:           os.Getpid,
		executable:    os.Executable,
		buildInfo:     debug.ReadBuildInfo,
	}
}

// Collect reads the current process details. It never fails: an unknown
// executable path falls back to os.Args[0].
func (c *Collector) Collect() About {
	return About{
		ProcessID:     c.pid(),
		Location:      c.location(),
		RootDirectory: c.rootDirectory,
		Version:       c.version(),
	}
}

func (c *Collector) location() string {
	if path, err := c.executable(); err == nil && path != "" {
		return path
	}
	if len(os.Args) > 0 {
		return os.Args[0]
	}
	return ""
}

func (c *Collector) version() string {
	if v := strings.TrimSpace(InformationalVersion); v != "" {
		return v
	}
	if info, ok := c.buildInfo(); ok && info != nil {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return FileVersion
}
