package compat

import "github.com/vovakirdan/touch-arcade/internal/device"

// IssueKind buckets a compatibility problem by what it affects.
type IssueKind string

const (
	IssuePerformance IssueKind = "performance"
	IssueControls    IssueKind = "controls"
	IssueDisplay     IssueKind = "display"
	IssueFeatures    IssueKind = "features"
)

// Severity orders issues from cosmetic to blocking.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// weight is the score penalty one issue of this severity costs.
func (s Severity) weight() int {
	switch s {
	case SeverityCritical:
		return weightCritical
	case SeverityHigh:
		return weightHigh
	case SeverityMedium:
		return weightMedium
	default:
		return weightLow
	}
}

// Issue is one problem found during a check. Issues are produced fresh
// on every check and never persisted.
type Issue struct {
	Kind     IssueKind
	Severity Severity
	Message  string
	Hint     string // optional suggestion shown to the player
}

// AdaptationKind names a concrete mitigation the engine can perform.
type AdaptationKind string

const (
	AdaptControls AdaptationKind = "controls"
	AdaptViewport AdaptationKind = "viewport"
	AdaptUIScale  AdaptationKind = "ui-scale"
	AdaptQuality  AdaptationKind = "quality"
)

// AppliedAdaptation is an adaptation candidate plus whether Adapt
// managed to perform it.
type AppliedAdaptation struct {
	Kind    AdaptationKind
	Message string
	Applied bool
}

// FallbackKind names a degraded mode the portal can offer when
// adaptations are not enough.
type FallbackKind string

const (
	FallbackControls   FallbackKind = "alternative-controls"
	FallbackQuality    FallbackKind = "reduced-quality"
	FallbackSimplified FallbackKind = "simplified-mode"
	FallbackOffline    FallbackKind = "offline-mode"
)

// Fallback is a derived degraded mode. All fallbacks start disabled;
// Adapt flips them on when the score stays low.
type Fallback struct {
	Kind    FallbackKind
	Message string
	Enabled bool
}

// Report is the outcome of one compatibility check.
type Report struct {
	GameID      string
	Compatible  bool
	Score       int
	Profile     device.Profile
	Issues      []Issue
	Adaptations []AppliedAdaptation
	Fallbacks   []Fallback
}

// IssueCount returns how many issues reach at least the given
// severity.
func (r Report) IssueCount(min Severity) int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity >= min {
			n++
		}
	}
	return n
}
