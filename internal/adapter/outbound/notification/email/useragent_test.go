package email

import "testing"

const (
	uaWindowsChrome = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaMacSafari     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15"
	uaIPhone        = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	uaAndroid       = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36"
	uaLinuxFirefox  = "Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0"
	uaEdge          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0"
	uaCurl          = "curl/8.4.0"
	uaGooglebot     = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

func TestExtractOS(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{uaWindowsChrome, "Windows"},
		{uaMacSafari, "macOS"},
		{uaIPhone, "iOS"},
		{uaAndroid, "Android"},
		{uaLinuxFirefox, "Linux"},
		{uaCurl, "Unknown"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		if got := extractOS(tt.ua); got != tt.want {
			t.Errorf("extractOS(%q) = %q, want %q", tt.ua, got, tt.want)
		}
	}
}

func TestExtractBrowser(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{uaWindowsChrome, "Chrome"},
		{uaMacSafari, "Safari"},
		{uaLinuxFirefox, "Firefox"},
		{uaEdge, "Edge"},
		{uaCurl, "curl"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		if got := extractBrowser(tt.ua); got != tt.want {
			t.Errorf("extractBrowser(%q) = %q, want %q", tt.ua, got, tt.want)
		}
	}
}

func TestExtractDeviceType(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{uaWindowsChrome, "Desktop"},
		{uaIPhone, "Mobile"},
		{uaAndroid, "Mobile"},
		{uaGooglebot, "Bot"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		if got := extractDeviceType(tt.ua); got != tt.want {
			t.Errorf("extractDeviceType(%q) = %q, want %q", tt.ua, got, tt.want)
		}
	}
}

func TestExtractArchitecture(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{uaWindowsChrome, "x64"},
		{uaLinuxFirefox, "x64"},
		{"Mozilla/5.0 (Macintosh; ARM64 Mac OS X)", "ARM64"},
		{uaMacSafari, "Unknown"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		if got := extractArchitecture(tt.ua); got != tt.want {
			t.Errorf("extractArchitecture(%q) = %q, want %q", tt.ua, got, tt.want)
		}
	}
}
