// Package version reports build information stamped at link time
package version

import "runtime"

// BuildInfo holds version information about the service build
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Set via -ldflags "-X 'surveyflow/internal/core/version.version=v0.1.0'
// -X 'surveyflow/internal/core/version.commit=abcd' -X 'surveyflow/internal/core/version.date=2025-09-02'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Service is the name reported by the API binary
const Service = "surveyflow-api"

// Info returns the build information
func Info() BuildInfo {
	return BuildInfo{
		Service:   Service,
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
}

// String renders "service version (commit)"
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ")"
}
