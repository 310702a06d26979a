// Package device classifies a captured environment snapshot into a
// device profile. Detection is a pure function over the snapshot value,
// so hosts decide when to sample the environment and tests can feed
// synthetic devices without touching any global state.
package device

import "strings"

// Orientation of the screen, derived from its dimensions.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Platform is the coarse operating-system family behind a user agent.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformWindows Platform = "windows"
	PlatformMac     Platform = "mac"
	PlatformUnknown Platform = "unknown"
)

// Snapshot captures everything detection needs from the environment.
// Hosts fill it from whatever they have (browser globals, terminal size,
// CLI flags); the zero value means no environment was available.
type Snapshot struct {
	UserAgent      string  `yaml:"user_agent"`
	ScreenW        int     `yaml:"screen_w"`
	ScreenH        int     `yaml:"screen_h"`
	PixelRatio     float64 `yaml:"pixel_ratio"`
	MaxTouchPoints int     `yaml:"max_touch_points"`
	TouchEvents    bool    `yaml:"touch_events"`
	CPUCores       int     `yaml:"cpu_cores"`
	MemoryMB       int     `yaml:"memory_mb"`
	Accelerated3D  bool    `yaml:"accelerated_3d"`
	Audio          bool    `yaml:"audio"`
	Gamepad        bool    `yaml:"gamepad"`
}

// IsZero reports whether the snapshot carries no environment at all.
func (s Snapshot) IsZero() bool {
	return s == Snapshot{}
}

// Profile is the classification result consumed by the catalog, the
// adapter and the compatibility checker.
type Profile struct {
	Mobile      bool
	Tablet      bool
	Touch       bool
	ScreenW     int
	ScreenH     int
	Orientation Orientation
	PixelRatio  float64
	Platform    Platform
}

// Class returns the coarse device class. Tablet wins when both the
// mobile and tablet heuristics matched.
func (p Profile) Class() string {
	switch {
	case p.Tablet:
		return "tablet"
	case p.Mobile:
		return "mobile"
	default:
		return "desktop"
	}
}

// MobileLike reports whether the device should be treated as handheld
// for control decisions (phones and tablets alike).
func (p Profile) MobileLike() bool {
	return p.Mobile || p.Tablet
}

// Width thresholds for the dimension-based fallbacks, in CSS pixels.
const (
	mobileMaxWidth = 768
	tabletMinWidth = 768
	tabletMaxWidth = 1024
)

// Token lists matched case-insensitively against the user agent.
var (
	mobileTokens = []string{
		"android", "webos", "iphone", "ipad", "ipod",
		"blackberry", "iemobile", "opera mini",
	}
	tabletTokens = []string{
		"ipad", "tablet", "kindle", "silk", "playbook",
	}
)

// Detect classifies an environment snapshot into a device profile.
//
// A zero snapshot (no environment, e.g. server-side rendering) yields a
// fixed desktop default: 1920×1080 landscape, pixel ratio 1, platform
// unknown, no touch.
func Detect(snap Snapshot) Profile {
	if snap.IsZero() {
		return Profile{
			ScreenW:     1920,
			ScreenH:     1080,
			Orientation: Landscape,
			PixelRatio:  1,
			Platform:    PlatformUnknown,
		}
	}

	ua := strings.ToLower(snap.UserAgent)
	touch := snap.TouchEvents || snap.MaxTouchPoints > 0

	// UA token match, with a dimension fallback for devices whose agent
	// string gives nothing away (common on Android tablets).
	mobile := containsAny(ua, mobileTokens) ||
		(snap.ScreenW <= mobileMaxWidth && touch)
	tablet := containsAny(ua, tabletTokens) ||
		(snap.ScreenW >= tabletMinWidth && snap.ScreenW <= tabletMaxWidth && touch)

	orientation := Portrait
	if snap.ScreenW > snap.ScreenH {
		orientation = Landscape
	}

	ratio := snap.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}

	return Profile{
		Mobile:      mobile,
		Tablet:      tablet,
		Touch:       touch,
		ScreenW:     snap.ScreenW,
		ScreenH:     snap.ScreenH,
		Orientation: orientation,
		PixelRatio:  ratio,
		Platform:    platformOf(ua),
	}
}

// platformOf matches the user agent against platform markers in
// priority order: android > ios > windows > mac.
func platformOf(ua string) Platform {
	switch {
	case strings.Contains(ua, "android"):
		return PlatformAndroid
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ipod"):
		return PlatformIOS
	case strings.Contains(ua, "windows"):
		return PlatformWindows
	case strings.Contains(ua, "mac os"), strings.Contains(ua, "macintosh"):
		return PlatformMac
	default:
		return PlatformUnknown
	}
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
