package model

import "time"

type EventType string

const (
	EventFailedLogin          EventType = "failed_login"
	EventUnauthorizedAccess   EventType = "unauthorized_access"
	EventSuspiciousActivity   EventType = "suspicious_activity"
	EventRateLimitExceeded    EventType = "rate_limit_exceeded"
	EventIPBlocked            EventType = "ip_blocked"
	EventSessionHijackAttempt EventType = "session_hijack_attempt"
)

// KnownEventTypes lists every valid event type for validation.
var KnownEventTypes = []EventType{
	EventFailedLogin,
	EventUnauthorizedAccess,
	EventSuspiciousActivity,
	EventRateLimitExceeded,
	EventIPBlocked,
	EventSessionHijackAttempt,
}

// IsValid reports whether t is one of the closed set of event types.
func (t EventType) IsValid() bool {
	for _, known := range KnownEventTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// severityOrder maps severities to comparable integers.
var severityOrder = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// AtLeast reports whether s is as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return severityOrder[s] >= severityOrder[other]
}

// NewEvent carries the caller-supplied fields of a security event. The monitor
// assigns the ID and timestamp at record time; callers never set them.
type NewEvent struct {
	Type      EventType         `json:"type"`
	Username  string            `json:"username,omitempty"`
	ClientIP  string            `json:"client_ip"`
	UserAgent string            `json:"user_agent"`
	Severity  Severity          `json:"severity"`
	Details   map[string]string `json:"details,omitempty"`
	Location  string            `json:"location,omitempty"`
}

// SecurityEvent is a recorded event. Immutable once recorded.
type SecurityEvent struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Username  string            `json:"username,omitempty"`
	ClientIP  string            `json:"client_ip"`
	UserAgent string            `json:"user_agent"`
	Timestamp time.Time         `json:"timestamp"`
	Severity  Severity          `json:"severity"`
	Details   map[string]string `json:"details,omitempty"`
	Location  string            `json:"location,omitempty"`
}

// NewFailedLoginEvent builds a failed_login event with the consistent
// medium severity used across the admin surface.
func NewFailedLoginEvent(username, clientIP, userAgent string, details map[string]string) NewEvent {
	if details == nil {
		details = make(map[string]string)
	}
	if _, ok := details["reason"]; !ok {
		details["reason"] = "invalid credentials"
	}
	return NewEvent{
		Type:      EventFailedLogin,
		Username:  username,
		ClientIP:  clientIP,
		UserAgent: userAgent,
		Severity:  SeverityMedium,
		Details:   details,
	}
}

// NewUnauthorizedAccessEvent builds an unauthorized_access event with high severity.
func NewUnauthorizedAccessEvent(username, clientIP, userAgent string, details map[string]string) NewEvent {
	if details == nil {
		details = make(map[string]string)
	}
	if _, ok := details["reason"]; !ok {
		details["reason"] = "missing or invalid authorization"
	}
	return NewEvent{
		Type:      EventUnauthorizedAccess,
		Username:  username,
		ClientIP:  clientIP,
		UserAgent: userAgent,
		Severity:  SeverityHigh,
		Details:   details,
	}
}

// Record stamps the event with a generated ID and the current UTC time,
// producing the immutable recorded form.
func (e NewEvent) Record() SecurityEvent {
	return SecurityEvent{
		ID:        generateID(),
		Type:      e.Type,
		Username:  e.Username,
		ClientIP:  e.ClientIP,
		UserAgent: e.UserAgent,
		Timestamp: time.Now().UTC(),
		Severity:  e.Severity,
		Details:   e.Details,
		Location:  e.Location,
	}
}
