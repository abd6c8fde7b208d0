// Package schema has configs, models and shared types for all parts of visulog.
package schema

import (
	"strings"
	"time"
)

// Result is the output of a single analyzer plugin. Every plugin result
// exposes a plain-text rendering and an HTML fragment rendering.
type Result interface {
	// String returns the result of the analysis as plain text.
	String() string

	// HTML returns the result of the analysis as an HTML fragment,
	// suitable for embedding in a rendered report.
	HTML() string
}

// AnalyzerResult is the ordered combination of all executed plugins'
// individual results. Sub-results are appended in request order and
// rendered by concatenation with no added separators.
type AnalyzerResult struct {
	subResults []Result
}

// NewAnalyzerResult creates an empty aggregated result.
func NewAnalyzerResult() *AnalyzerResult {
	return &AnalyzerResult{}
}

// Add appends a plugin result, preserving request order.
func (r *AnalyzerResult) Add(res Result) {
	r.subResults = append(r.subResults, res)
}

// Len returns the number of collected sub-results.
func (r *AnalyzerResult) Len() int {
	return len(r.subResults)
}

// SubResults returns a copy of the collected sub-results in order.
func (r *AnalyzerResult) SubResults() []Result {
	out := make([]Result, len(r.subResults))
	copy(out, r.subResults)
	return out
}

// String concatenates every sub-result's text rendering in collection order.
// An empty aggregated result yields an empty string, not an error.
func (r *AnalyzerResult) String() string {
	var b strings.Builder
	for _, sub := range r.subResults {
		b.WriteString(sub.String())
	}
	return b.String()
}

// HTML concatenates every sub-result's HTML fragment in collection order.
func (r *AnalyzerResult) HTML() string {
	var b strings.Builder
	for _, sub := range r.subResults {
		b.WriteString(sub.HTML())
	}
	return b.String()
}

// TextResult is a pre-rendered plugin result. It is used for results
// replayed from the cache, where only the renderings survive.
type TextResult struct {
	Text string `json:"text"`
	Div  string `json:"div"`
}

// String implements Result.
func (r *TextResult) String() string { return r.Text }

// HTML implements Result.
func (r *TextResult) HTML() string { return r.Div }

// CacheStatus holds status information about the result cache store.
type CacheStatus struct {
	Backend         string
	Connected       bool
	TotalEntries    int64
	LastEntryTime   time.Time
	OldestEntryTime time.Time
	TableSizeBytes  int64
}

// HistoryStatus holds status information about the run history store.
type HistoryStatus struct {
	Backend     string
	Connected   bool
	TotalRuns   int64
	LastRunID   int64
	LastRunTime time.Time
}

// RunRecord is one recorded analysis run in the history store.
type RunRecord struct {
	RunID        int64
	StartTime    time.Time
	EndTime      *time.Time
	DurationMs   *int64
	PluginCount  int
	ConfigParams *string
}
