package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/nexdevs/sentinel/internal/domain/model"
	"github.com/nexdevs/sentinel/internal/domain/port/outbound"
)

// SMTPConfig describes one SMTP endpoint.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	StartTLS bool
	Timeout  time.Duration
}

// Empty reports whether the endpoint is unconfigured.
func (c SMTPConfig) Empty() bool { return c.Host == "" }

// Config holds mailer configuration. Fallback is optional and is tried when
// the primary endpoint cannot be dialed.
type Config struct {
	From     string
	To       string
	Primary  SMTPConfig
	Fallback SMTPConfig
}

// sender is the part of *mail.Client the mailer uses.
type sender interface {
	DialAndSendWithContext(ctx context.Context, msgs ...*mail.Msg) error
}

// Mailer sends security alert emails to a fixed security mailbox. It
// implements outbound.AlertNotifier.
//
// Transport setup is best effort: the primary endpoint is tried first, then
// the fallback. If both fail the mailer stays disabled and each send attempts
// one fresh setup before reporting failure.
type Mailer struct {
	cfg    Config
	logger *slog.Logger
	dial   func(SMTPConfig) (sender, error)

	mu     sync.Mutex
	client sender
}

var _ outbound.AlertNotifier = (*Mailer)(nil)

// NewMailer builds a Mailer and eagerly attempts transport setup. A Mailer is
// returned even when setup fails; sends will retry setup.
func NewMailer(cfg Config, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Mailer{cfg: cfg, logger: logger, dial: newSMTPClient}
	if client := m.initTransport(); client != nil {
		m.client = client
	}
	return m
}

func newSMTPClient(sc SMTPConfig) (sender, error) {
	timeout := sc.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	opts := []mail.Option{
		mail.WithPort(sc.Port),
		mail.WithTimeout(timeout),
	}
	if sc.StartTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if sc.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(sc.Username),
			mail.WithPassword(sc.Password),
		)
	}
	return mail.NewClient(sc.Host, opts...)
}

// initTransport tries the primary endpoint, then the fallback. Returns nil
// when neither can be set up.
func (m *Mailer) initTransport() sender {
	client, err := m.dial(m.cfg.Primary)
	if err == nil {
		return client
	}
	m.logger.Warn("primary smtp setup failed", "host", m.cfg.Primary.Host, "error", err)

	if m.cfg.Fallback.Empty() {
		return nil
	}
	client, err = m.dial(m.cfg.Fallback)
	if err == nil {
		m.logger.Info("using fallback smtp endpoint", "host", m.cfg.Fallback.Host)
		return client
	}
	m.logger.Error("fallback smtp setup failed", "host", m.cfg.Fallback.Host, "error", err)
	return nil
}

// Channel implements outbound.AlertNotifier.
func (m *Mailer) Channel() string { return "email" }

// Recipient implements outbound.AlertNotifier.
func (m *Mailer) Recipient() string { return m.cfg.To }

// SendSecurityAlert formats and sends one alert email.
func (m *Mailer) SendSecurityAlert(ctx context.Context, n outbound.AlertNotification) error {
	m.mu.Lock()
	if m.client == nil {
		m.client = m.initTransport()
	}
	client := m.client
	m.mu.Unlock()

	if client == nil {
		return fmt.Errorf("mail transport unavailable")
	}

	msg, err := m.buildMessage(n)
	if err != nil {
		return fmt.Errorf("build alert email: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send alert email: %w", err)
	}
	m.logger.Info("security alert email sent",
		"to", m.cfg.To,
		"event_id", n.Event.ID,
		"event_type", n.Event.Type,
	)
	return nil
}

func (m *Mailer) buildMessage(n outbound.AlertNotification) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid from address %q: %w", m.cfg.From, err)
	}
	if err := msg.To(m.cfg.To); err != nil {
		return nil, fmt.Errorf("invalid to address %q: %w", m.cfg.To, err)
	}

	msg.Subject(alertSubject(n.Event))
	if n.Event.Severity.AtLeast(model.SeverityHigh) {
		msg.SetImportance(mail.ImportanceHigh)
	}

	data := buildAlertData(n)
	text, err := renderText(data)
	if err != nil {
		return nil, err
	}
	html, err := renderHTML(data)
	if err != nil {
		return nil, err
	}
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, html)
	return msg, nil
}

var severityEmoji = map[model.Severity]string{
	model.SeverityLow:      "ℹ️",
	model.SeverityMedium:   "⚠️",
	model.SeverityHigh:     "🚨",
	model.SeverityCritical: "🔥",
}

var eventTypeLabels = map[model.EventType]string{
	model.EventFailedLogin:          "Failed Login Attempt",
	model.EventUnauthorizedAccess:   "Unauthorized Access",
	model.EventSuspiciousActivity:   "Suspicious Activity",
	model.EventRateLimitExceeded:    "Rate Limit Exceeded",
	model.EventIPBlocked:            "IP Blocked",
	model.EventSessionHijackAttempt: "Session Hijack Attempt",
}

// alertSubject encodes severity and event type so recipients can triage from
// the inbox list view without opening the message.
func alertSubject(e model.SecurityEvent) string {
	emoji, ok := severityEmoji[e.Severity]
	if !ok {
		emoji = severityEmoji[model.SeverityMedium]
	}
	label, ok := eventTypeLabels[e.Type]
	if !ok {
		label = string(e.Type)
	}
	return fmt.Sprintf("%s Security Alert: %s [%s]", emoji, label, strings.ToUpper(string(e.Severity)))
}
