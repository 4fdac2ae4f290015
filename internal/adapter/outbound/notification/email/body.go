package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	texttemplate "text/template"
	"time"

	"github.com/nexdevs/sentinel/internal/domain/port/outbound"
)

// maxRecentShown caps the recent-event list in the email body.
const maxRecentShown = 5

type recentLine struct {
	Timestamp string
	Type      string
	Username  string
}

type ipLink struct {
	Name string
	URL  string
}

type alertData struct {
	EventLabel     string
	EventType      string
	Severity       string
	Timestamp      string
	ClientIP       string
	Username       string
	Location       string
	OS             string
	Browser        string
	DeviceType     string
	Architecture   string
	Referer        string
	Origin         string
	AcceptLanguage string
	AttemptCount   int
	Threshold      int
	TimeWindow     string
	Recent         []recentLine
	MoreCount      int
	Links          []ipLink
	Actions        []string
}

// recommendedActions is a static checklist included in every alert.
var recommendedActions = []string{
	"Review authentication logs for the reported IP and account",
	"Block the IP at the firewall or CDN if the pattern continues",
	"Force a credential rotation for the targeted account",
	"Verify rate limiting and WAF rules are active on the admin surface",
	"Check for other events from the same IP across event types",
}

// ipLookupLinks builds informational deep links into external investigation
// tools. No lookup is performed here; the recipient clicks through.
func ipLookupLinks(ip string) []ipLink {
	escaped := url.PathEscape(ip)
	return []ipLink{
		{Name: "AbuseIPDB", URL: "https://www.abuseipdb.com/check/" + escaped},
		{Name: "VirusTotal", URL: "https://www.virustotal.com/gui/ip-address/" + escaped},
		{Name: "ipinfo.io", URL: "https://ipinfo.io/" + escaped},
		{Name: "Shodan", URL: "https://www.shodan.io/host/" + escaped},
	}
}

func buildAlertData(n outbound.AlertNotification) alertData {
	e := n.Event
	label, ok := eventTypeLabels[e.Type]
	if !ok {
		label = string(e.Type)
	}

	username := e.Username
	if username == "" {
		username = "(not provided)"
	}

	data := alertData{
		EventLabel:     label,
		EventType:      string(e.Type),
		Severity:       string(e.Severity),
		Timestamp:      e.Timestamp.UTC().Format(time.RFC3339),
		ClientIP:       e.ClientIP,
		Username:       username,
		Location:       e.Location,
		OS:             extractOS(e.UserAgent),
		Browser:        extractBrowser(e.UserAgent),
		DeviceType:     extractDeviceType(e.UserAgent),
		Architecture:   extractArchitecture(e.UserAgent),
		Referer:        e.Details["referer"],
		Origin:         e.Details["origin"],
		AcceptLanguage: e.Details["accept_language"],
		AttemptCount:   n.Summary.TotalEvents,
		Threshold:      n.Summary.Threshold,
		TimeWindow:     n.Summary.TimeWindow,
		Links:          ipLookupLinks(e.ClientIP),
		Actions:        recommendedActions,
	}

	shown := n.RecentEvents
	if len(shown) > maxRecentShown {
		data.MoreCount = len(shown) - maxRecentShown
		shown = shown[:maxRecentShown]
	}
	for _, re := range shown {
		data.Recent = append(data.Recent, recentLine{
			Timestamp: re.Timestamp.UTC().Format("15:04:05 MST"),
			Type:      string(re.Type),
			Username:  re.Username,
		})
	}
	return data
}

var textTmpl = texttemplate.Must(texttemplate.New("alert_text").Parse(`SECURITY ALERT: {{.EventLabel}}

Event type:   {{.EventType}}
Severity:     {{.Severity}}
Timestamp:    {{.Timestamp}}
Client IP:    {{.ClientIP}}
Username:     {{.Username}}
{{- if .Location}}
Location:     {{.Location}}{{end}}

Client details
  OS:           {{.OS}}
  Browser:      {{.Browser}}
  Device:       {{.DeviceType}}
  Architecture: {{.Architecture}}
{{- if .Referer}}
  Referer:      {{.Referer}}{{end}}
{{- if .Origin}}
  Origin:       {{.Origin}}{{end}}
{{- if .AcceptLanguage}}
  Languages:    {{.AcceptLanguage}}{{end}}

{{.AttemptCount}} event(s) of this type from this IP in the last {{.TimeWindow}} (threshold: {{.Threshold}}).

Recent related events:
{{- range .Recent}}
  - [{{.Timestamp}}] {{.Type}}{{if .Username}} user={{.Username}}{{end}}
{{- end}}
{{- if gt .MoreCount 0}}
  ... +{{.MoreCount}} more
{{- end}}

Investigate this IP:
{{- range .Links}}
  {{.Name}}: {{.URL}}
{{- end}}

Recommended actions:
{{- range .Actions}}
  [ ] {{.}}
{{- end}}
`))

var htmlTmpl = htmltemplate.Must(htmltemplate.New("alert_html").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  body { font-family: Arial, sans-serif; line-height: 1.5; color: #222; max-width: 640px; margin: 0 auto; padding: 16px; }
  .banner { background-color: #ffebee; border-left: 4px solid #f44336; padding: 12px; margin-bottom: 16px; }
  .banner h1 { font-size: 18px; margin: 0; }
  table { border-collapse: collapse; width: 100%; margin-bottom: 16px; }
  td { padding: 4px 8px; border-bottom: 1px solid #eee; vertical-align: top; }
  td.k { color: #666; width: 160px; }
  .footer { margin-top: 16px; font-size: 12px; color: #777; }
</style>
</head>
<body>
<div class="banner"><h1>Security Alert: {{.EventLabel}}</h1></div>
<table>
  <tr><td class="k">Event type</td><td>{{.EventType}}</td></tr>
  <tr><td class="k">Severity</td><td>{{.Severity}}</td></tr>
  <tr><td class="k">Timestamp</td><td>{{.Timestamp}}</td></tr>
  <tr><td class="k">Client IP</td><td>{{.ClientIP}}</td></tr>
  <tr><td class="k">Username</td><td>{{.Username}}</td></tr>
  {{- if .Location}}
  <tr><td class="k">Location</td><td>{{.Location}}</td></tr>
  {{- end}}
  <tr><td class="k">OS / Browser</td><td>{{.OS}} / {{.Browser}}</td></tr>
  <tr><td class="k">Device / Arch</td><td>{{.DeviceType}} / {{.Architecture}}</td></tr>
  {{- if .Referer}}
  <tr><td class="k">Referer</td><td>{{.Referer}}</td></tr>
  {{- end}}
  {{- if .Origin}}
  <tr><td class="k">Origin</td><td>{{.Origin}}</td></tr>
  {{- end}}
  {{- if .AcceptLanguage}}
  <tr><td class="k">Languages</td><td>{{.AcceptLanguage}}</td></tr>
  {{- end}}
</table>

<p><strong>{{.AttemptCount}}</strong> event(s) of this type from this IP in the last {{.TimeWindow}} (threshold: {{.Threshold}}).</p>

<h3>Recent related events</h3>
<ul>
  {{- range .Recent}}
  <li>[{{.Timestamp}}] {{.Type}}{{if .Username}} &mdash; {{.Username}}{{end}}</li>
  {{- end}}
  {{- if gt .MoreCount 0}}
  <li>+{{.MoreCount}} more</li>
  {{- end}}
</ul>

<h3>Investigate this IP</h3>
<ul>
  {{- range .Links}}
  <li><a href="{{.URL}}">{{.Name}}</a></li>
  {{- end}}
</ul>

<h3>Recommended actions</h3>
<ul>
  {{- range .Actions}}
  <li>{{.}}</li>
  {{- end}}
</ul>

<div class="footer">Automated message from the NEX-DEVS security monitor. Do not reply.</div>
</body>
</html>
`))

func renderText(data alertData) (string, error) {
	var buf bytes.Buffer
	if err := textTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render text body: %w", err)
	}
	return buf.String(), nil
}

func renderHTML(data alertData) (string, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render html body: %w", err)
	}
	return buf.String(), nil
}
