package httpapi

import (
	"net/http/httptest"
	"testing"
)

func TestExtractClientInfo_HeaderPrecedence(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		wantIP  string
	}{
		{
			name:    "x-forwarded-for single value",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.5"},
			wantIP:  "203.0.113.5",
		},
		{
			name:    "x-forwarded-for takes first of list",
			headers: map[string]string{"X-Forwarded-For": " 203.0.113.5 , 10.0.0.1, 172.16.0.1"},
			wantIP:  "203.0.113.5",
		},
		{
			name: "x-forwarded-for beats the rest",
			headers: map[string]string{
				"X-Forwarded-For": "203.0.113.5",
				"X-Real-IP":       "198.51.100.1",
				"CF-Connecting-IP": "198.51.100.2",
			},
			wantIP: "203.0.113.5",
		},
		{
			name:    "x-real-ip second",
			headers: map[string]string{"X-Real-IP": "198.51.100.1", "CF-Connecting-IP": "198.51.100.2"},
			wantIP:  "198.51.100.1",
		},
		{
			name:    "cf-connecting-ip third",
			headers: map[string]string{"CF-Connecting-IP": "198.51.100.2", "X-Client-IP": "198.51.100.3"},
			wantIP:  "198.51.100.2",
		},
		{
			name:    "x-client-ip last",
			headers: map[string]string{"X-Client-IP": "198.51.100.3"},
			wantIP:  "198.51.100.3",
		},
		{
			name:    "no headers falls back to loopback",
			headers: nil,
			wantIP:  "::1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/v1/events", nil)
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			info := ExtractClientInfo(r)
			if info.ClientIP != tc.wantIP {
				t.Errorf("ClientIP = %q, want %q", info.ClientIP, tc.wantIP)
			}
		})
	}
}

func TestExtractClientInfo_UserAgent(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/events", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0")
	if got := ExtractClientInfo(r).UserAgent; got != "Mozilla/5.0" {
		t.Errorf("UserAgent = %q, want Mozilla/5.0", got)
	}

	bare := httptest.NewRequest("POST", "/api/v1/events", nil)
	if got := ExtractClientInfo(bare).UserAgent; got != "Unknown" {
		t.Errorf("UserAgent = %q, want Unknown", got)
	}
}
