// Package metrics defines the observability hooks for index synchronization
// and queries. Components receive a Recorder through injection and default
// to NoopRecorder, so metrics stay optional without nil checks at call sites.
package metrics

import "time"

// ResultLabel enumerates synchronization result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultSkipped ResultLabel = "skipped"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for the index and query surface.
// Implementations may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	ObserveSyncDuration(event string, d time.Duration)
	IncSyncResult(event string, result ResultLabel)
	ObserveReloadDuration(d time.Duration)
	SetDocumentsIndexed(n int)
	IncQuery(kind string) // kind: tree|page|search
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveSyncDuration(string, time.Duration) {}
func (NoopRecorder) IncSyncResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveReloadDuration(time.Duration)       {}
func (NoopRecorder) SetDocumentsIndexed(int)                   {}
func (NoopRecorder) IncQuery(string)                           {}
