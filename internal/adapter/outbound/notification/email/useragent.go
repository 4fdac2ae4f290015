package email

import "strings"

// The extractors below are lightweight substring checks, not a full
// user-agent parser. They only need to be good enough for a human
// reading an alert email.

func extractOS(ua string) string {
	s := strings.ToLower(ua)
	switch {
	case strings.Contains(s, "windows"):
		return "Windows"
	case strings.Contains(s, "iphone"), strings.Contains(s, "ipad"), strings.Contains(s, "ios"):
		return "iOS"
	case strings.Contains(s, "mac os x"), strings.Contains(s, "macintosh"):
		return "macOS"
	// Android user agents also contain "linux".
	case strings.Contains(s, "android"):
		return "Android"
	case strings.Contains(s, "cros"):
		return "ChromeOS"
	case strings.Contains(s, "linux"):
		return "Linux"
	default:
		return "Unknown"
	}
}

func extractBrowser(ua string) string {
	s := strings.ToLower(ua)
	switch {
	// Edge and Opera embed "chrome" in their user agents.
	case strings.Contains(s, "edg/"), strings.Contains(s, "edge/"):
		return "Edge"
	case strings.Contains(s, "opr/"), strings.Contains(s, "opera"):
		return "Opera"
	case strings.Contains(s, "chrome/"), strings.Contains(s, "chromium"):
		return "Chrome"
	case strings.Contains(s, "firefox/"):
		return "Firefox"
	// Chrome also contains "safari", so this must come after.
	case strings.Contains(s, "safari/"):
		return "Safari"
	case strings.Contains(s, "msie"), strings.Contains(s, "trident/"):
		return "Internet Explorer"
	case strings.Contains(s, "curl/"):
		return "curl"
	default:
		return "Unknown"
	}
}

func extractDeviceType(ua string) string {
	s := strings.ToLower(ua)
	switch {
	case strings.Contains(s, "bot"), strings.Contains(s, "crawler"), strings.Contains(s, "spider"):
		return "Bot"
	case strings.Contains(s, "ipad"), strings.Contains(s, "tablet"):
		return "Tablet"
	case strings.Contains(s, "mobile"), strings.Contains(s, "iphone"), strings.Contains(s, "android"):
		return "Mobile"
	case s == "" || s == "unknown":
		return "Unknown"
	default:
		return "Desktop"
	}
}

func extractArchitecture(ua string) string {
	s := strings.ToLower(ua)
	switch {
	case strings.Contains(s, "x86_64"), strings.Contains(s, "x64"),
		strings.Contains(s, "win64"), strings.Contains(s, "wow64"),
		strings.Contains(s, "amd64"):
		return "x64"
	case strings.Contains(s, "arm64"), strings.Contains(s, "aarch64"):
		return "ARM64"
	case strings.Contains(s, "arm"):
		return "ARM"
	case strings.Contains(s, "i686"), strings.Contains(s, "i386"), strings.Contains(s, "x86"):
		return "x86"
	default:
		return "Unknown"
	}
}
