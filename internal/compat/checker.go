// Package compat decides whether a game is playable on the current
// device and what it takes to get it there.
//
// A Checker combines the requirements registry, the adaptation catalog
// and a device snapshot source. Check runs four independent passes
// (basic screen, performance, controls, display) over a freshly
// detected profile and folds the findings into a scored Report; Adapt
// then performs the identified adaptations against a host surface.
// Unknown game ids degrade to permissive defaults at every lookup
// point; nothing in this package fails on an unknown game.
package compat

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/touch-arcade/internal/catalog"
	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/device"
	"github.com/vovakirdan/touch-arcade/internal/touch"
)

// Scoring and heuristic constants. The weights are tuned for "playable
// with help", not "native fit": adaptations and fallbacks can lift an
// otherwise failing device over the compatibility threshold.
const (
	weightCritical = 40
	weightHigh     = 25
	weightMedium   = 15
	weightLow      = 5

	adaptationBonus = 10
	fallbackBonus   = 5

	compatibleThreshold = 60
	fallbackThreshold   = 70

	lowEndMaxWidth      = 768
	lowEndMinPixelRatio = 2.0
	lowEndMinCores      = 4

	maxUsefulPixelRatio = 2.0
	compactWidth        = 480
)

// Checker runs compatibility checks and adaptations. The snapshot
// source is consulted on every call so device-state changes (rotation,
// resize) are always reflected; profiles are never cached.
type Checker struct {
	reqs    *Registry
	cat     *catalog.Catalog
	snap    func() device.Snapshot
	logger  *log.Logger
	sched   core.Scheduler
	adapter *touch.Adapter
}

// Option configures a Checker at construction.
type Option func(*Checker)

// WithLogger replaces the package-default logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Checker) { c.logger = logger }
}

// WithScheduler sets the scheduler handed to the touch adapter.
func WithScheduler(sched core.Scheduler) Option {
	return func(c *Checker) { c.sched = sched }
}

// WithAdapter injects a prebuilt touch adapter instead of the one the
// checker constructs for itself.
func WithAdapter(a *touch.Adapter) Option {
	return func(c *Checker) { c.adapter = a }
}

// NewChecker builds a checker over a requirements registry, an
// adaptation catalog and a snapshot source. A nil source acts as an
// empty environment, which detection resolves to the desktop default.
func NewChecker(reqs *Registry, cat *catalog.Catalog, snap func() device.Snapshot, opts ...Option) *Checker {
	c := &Checker{
		reqs: reqs,
		cat:  cat,
		snap: snap,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.snap == nil {
		c.snap = func() device.Snapshot { return device.Snapshot{} }
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.sched == nil {
		c.sched = core.TimerScheduler{}
	}
	if c.adapter == nil {
		c.adapter = touch.New(c.sched, touch.WithLogger(c.logger))
	}
	return c
}

// Adapter exposes the touch adapter so hosts can feed it touch and
// resize events after Adapt attached it.
func (c *Checker) Adapter() *touch.Adapter {
	return c.adapter
}

// Check runs the four compatibility passes for one game against the
// current device state and scores the result.
func (c *Checker) Check(gameID string) Report {
	snap := c.snap()
	profile := device.Detect(snap)
	req := c.reqs.Lookup(gameID)

	issues := basicIssues(req, profile)

	perfIssues, perfAdapts := performanceIssues(req, profile, snap)
	issues = append(issues, perfIssues...)

	ctrlIssues, ctrlAdapts := controlsIssues(req, profile, snap)
	issues = append(issues, ctrlIssues...)

	adaptations := append(perfAdapts, ctrlAdapts...)
	adaptations = append(adaptations, displayAdaptations(profile)...)

	fallbacks := deriveFallbacks(req, issues)
	score := scoreOf(issues, len(adaptations), len(fallbacks))

	c.logger.Debug("compatibility check",
		"game", gameID,
		"class", profile.Class(),
		"score", score,
		"issues", len(issues),
	)

	return Report{
		GameID:      gameID,
		Compatible:  score >= compatibleThreshold,
		Score:       score,
		Profile:     profile,
		Issues:      issues,
		Adaptations: adaptations,
		Fallbacks:   fallbacks,
	}
}

// basicIssues checks the screen floor and the orientation set.
func basicIssues(req Requirements, p device.Profile) []Issue {
	var issues []Issue

	if !screenFitsFloor(req, p) {
		issues = append(issues, Issue{
			Kind:     IssueDisplay,
			Severity: SeverityHigh,
			Message: fmt.Sprintf("screen %dx%d is below the game minimum %dx%d",
				p.ScreenW, p.ScreenH, req.MinWidth, req.MinHeight),
			Hint: "try a larger screen",
		})
	}
	if !orientationAllowed(req, p.Orientation) {
		issues = append(issues, Issue{
			Kind:     IssueDisplay,
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("%s orientation is not supported by this game", p.Orientation),
			Hint:     "rotate the device",
		})
	}
	return issues
}

// performanceIssues applies the low-end heuristic and the capability
// requirements. Heavy games on low-end devices additionally get a
// quality adaptation candidate.
func performanceIssues(req Requirements, p device.Profile, snap device.Snapshot) ([]Issue, []AppliedAdaptation) {
	var issues []Issue
	var adaptations []AppliedAdaptation

	if lowEnd(p, snap) {
		issues = append(issues, Issue{
			Kind:     IssuePerformance,
			Severity: SeverityMedium,
			Message:  "device looks low-end (small screen, low pixel ratio or few cores)",
			Hint:     "close background apps before playing",
		})
		if req.Heavy {
			adaptations = append(adaptations, AppliedAdaptation{
				Kind:    AdaptQuality,
				Message: "lower the render scale for this heavy game",
			})
		}
	}
	if req.Needs3D && !snap.Accelerated3D {
		issues = append(issues, Issue{
			Kind:     IssueFeatures,
			Severity: SeverityHigh,
			Message:  "game needs accelerated 3D rendering but the device reports none",
			Hint:     "enable hardware acceleration",
		})
	}
	if req.Audio && !snap.Audio {
		issues = append(issues, Issue{
			Kind:     IssueFeatures,
			Severity: SeverityLow,
			Message:  "game uses audio but the device reports no audio output",
		})
	}
	if req.MinMemoryMB > 0 && snap.MemoryMB > 0 && snap.MemoryMB < req.MinMemoryMB {
		issues = append(issues, Issue{
			Kind:     IssuePerformance,
			Severity: SeverityHigh,
			Message: fmt.Sprintf("%d MB memory is below the game minimum %d MB",
				snap.MemoryMB, req.MinMemoryMB),
			Hint: "close other tabs and apps",
		})
	}
	return issues, adaptations
}

// controlsIssues matches required input methods against the profile.
func controlsIssues(req Requirements, p device.Profile, snap device.Snapshot) ([]Issue, []AppliedAdaptation) {
	var issues []Issue
	var adaptations []AppliedAdaptation

	if req.Keyboard && p.MobileLike() {
		issues = append(issues, Issue{
			Kind:     IssueControls,
			Severity: SeverityHigh,
			Message:  "game requires a keyboard but the device is a " + p.Class(),
			Hint:     "on-screen touch controls are available",
		})
		adaptations = append(adaptations, AppliedAdaptation{
			Kind:    AdaptControls,
			Message: "map keyboard input to the touch control scheme",
		})
	}
	if req.Mouse && p.Touch && p.MobileLike() {
		issues = append(issues, Issue{
			Kind:     IssueControls,
			Severity: SeverityMedium,
			Message:  "game requires a mouse but the device is touch-only",
			Hint:     "taps and swipes replace pointer input",
		})
		adaptations = append(adaptations, AppliedAdaptation{
			Kind:    AdaptControls,
			Message: "map pointer input to touch gestures",
		})
	}
	if req.Gamepad && !snap.Gamepad {
		issues = append(issues, Issue{
			Kind:     IssueControls,
			Severity: SeverityLow,
			Message:  "no gamepad detected",
			Hint:     "connect a controller or use the fallback controls",
		})
	}
	return issues, adaptations
}

// displayAdaptations proposes presentation tweaks. This pass never
// raises issues.
func displayAdaptations(p device.Profile) []AppliedAdaptation {
	var adaptations []AppliedAdaptation

	if p.PixelRatio > maxUsefulPixelRatio {
		adaptations = append(adaptations, AppliedAdaptation{
			Kind: AdaptViewport,
			Message: fmt.Sprintf("clamp the effective pixel ratio from %.3g to %.3g",
				p.PixelRatio, maxUsefulPixelRatio),
		})
	}
	if p.ScreenW < compactWidth {
		adaptations = append(adaptations, AppliedAdaptation{
			Kind:    AdaptUIScale,
			Message: "shrink UI chrome for a compact screen",
		})
	}
	return adaptations
}

// deriveFallbacks maps the issue union onto degraded modes. Offline
// games always offer the offline fallback, issues or not.
func deriveFallbacks(req Requirements, issues []Issue) []Fallback {
	var fallbacks []Fallback

	if hasIssueKind(issues, IssueControls) {
		fallbacks = append(fallbacks, Fallback{
			Kind:    FallbackControls,
			Message: "switch to the alternative touch control set",
		})
	}
	if hasIssueKind(issues, IssuePerformance) {
		fallbacks = append(fallbacks, Fallback{
			Kind:    FallbackQuality,
			Message: "lower rendering quality to keep the frame rate up",
		})
	}
	if hasIssueKind(issues, IssueFeatures) {
		fallbacks = append(fallbacks, Fallback{
			Kind:    FallbackSimplified,
			Message: "run the simplified game mode",
		})
	}
	if req.Offline {
		fallbacks = append(fallbacks, Fallback{
			Kind:    FallbackOffline,
			Message: "play the cached offline build",
		})
	}
	return fallbacks
}

// scoreOf folds issues, adaptations and fallbacks into the 0-100
// compatibility score.
func scoreOf(issues []Issue, adaptations, fallbacks int) int {
	score := 100
	for _, is := range issues {
		score -= is.Severity.weight()
	}
	score += adaptations * adaptationBonus
	score += fallbacks * fallbackBonus
	return core.Clamp(score, 0, 100)
}

func lowEnd(p device.Profile, snap device.Snapshot) bool {
	if p.ScreenW < lowEndMaxWidth {
		return true
	}
	if p.PixelRatio < lowEndMinPixelRatio {
		return true
	}
	// Zero cores means the environment did not report them; that is
	// unknown, not low-end.
	return snap.CPUCores > 0 && snap.CPUCores < lowEndMinCores
}

func screenFitsFloor(req Requirements, p device.Profile) bool {
	if req.MinWidth <= 0 && req.MinHeight <= 0 {
		return true
	}
	orientations := req.Orientations
	if len(orientations) == 0 {
		orientations = []device.Orientation{device.Portrait, device.Landscape}
	}
	// The floor passes if any allowed orientation of the screen fits
	// it: a landscape-only game on a portrait phone is judged against
	// the rotated dimensions.
	for _, o := range orientations {
		w, h := orientedScreen(p.ScreenW, p.ScreenH, o)
		if w >= req.MinWidth && h >= req.MinHeight {
			return true
		}
	}
	return false
}

func orientedScreen(w, h int, o device.Orientation) (int, int) {
	long, short := w, h
	if h > w {
		long, short = h, w
	}
	if o == device.Landscape {
		return long, short
	}
	return short, long
}

func orientationAllowed(req Requirements, o device.Orientation) bool {
	if len(req.Orientations) == 0 {
		return true
	}
	for _, allowed := range req.Orientations {
		if allowed == o {
			return true
		}
	}
	return false
}

func hasIssueKind(issues []Issue, kind IssueKind) bool {
	for _, is := range issues {
		if is.Kind == kind {
			return true
		}
	}
	return false
}
