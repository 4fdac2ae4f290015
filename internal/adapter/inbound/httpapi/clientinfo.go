package httpapi

import (
	"net/http"
	"strings"
)

// ClientInfo is the request origin extracted from proxy headers.
type ClientInfo struct {
	ClientIP  string
	UserAgent string
	Location  string
}

// ipHeaders is the precedence order for client IP extraction behind proxies
// and CDNs.
var ipHeaders = []string{"X-Real-IP", "CF-Connecting-IP", "X-Client-IP"}

// ExtractClientInfo resolves the client IP and user agent from request
// headers. X-Forwarded-For wins when present (first comma-separated value);
// the remaining headers are tried in order, falling back to "::1" and
// "Unknown" so callers never see empty fields.
func ExtractClientInfo(r *http.Request) ClientInfo {
	info := ClientInfo{ClientIP: "::1", UserAgent: "Unknown"}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := xff
		if idx := strings.IndexByte(xff, ','); idx != -1 {
			first = xff[:idx]
		}
		if first = strings.TrimSpace(first); first != "" {
			info.ClientIP = first
		}
	} else {
		for _, h := range ipHeaders {
			if v := strings.TrimSpace(r.Header.Get(h)); v != "" {
				info.ClientIP = v
				break
			}
		}
	}

	if ua := r.Header.Get("User-Agent"); ua != "" {
		info.UserAgent = ua
	}
	return info
}
