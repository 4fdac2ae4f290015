package slack

import (
	"context"
	"fmt"
	"strings"

	slackapi "github.com/slack-go/slack"

	"github.com/nexdevs/sentinel/internal/domain/model"
	"github.com/nexdevs/sentinel/internal/domain/port/outbound"
)

// Config holds Slack notifier configuration.
type Config struct {
	BotToken string
	Channel  string
}

// poster is the part of *slackapi.Client the notifier uses.
type poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// Notifier posts security alerts to a Slack channel as Block Kit cards. It
// implements outbound.AlertNotifier.
type Notifier struct {
	client poster
	config Config
}

var _ outbound.AlertNotifier = (*Notifier)(nil)

// NewNotifier creates a Slack Notifier.
func NewNotifier(cfg Config) *Notifier {
	return &Notifier{
		client: slackapi.New(cfg.BotToken),
		config: cfg,
	}
}

// Channel implements outbound.AlertNotifier.
func (n *Notifier) Channel() string { return "slack" }

// Recipient implements outbound.AlertNotifier.
func (n *Notifier) Recipient() string { return n.config.Channel }

// SendSecurityAlert posts a rich alert card plus a plain-text fallback for
// clients that do not render blocks.
func (n *Notifier) SendSecurityAlert(ctx context.Context, notification outbound.AlertNotification) error {
	blocks := buildAlertBlocks(notification)
	fallback := fmt.Sprintf("[%s] security alert: %s from %s",
		strings.ToUpper(string(notification.Event.Severity)),
		notification.Event.Type,
		notification.Event.ClientIP,
	)

	_, _, err := n.client.PostMessageContext(ctx, n.config.Channel,
		slackapi.MsgOptionBlocks(blocks...),
		slackapi.MsgOptionText(fallback, false),
	)
	if err != nil {
		return fmt.Errorf("slack SendSecurityAlert: %w", err)
	}
	return nil
}

// buildAlertBlocks renders the alert as Block Kit blocks: a header, a field
// grid with the event attributes, and a context line with the cohort summary.
func buildAlertBlocks(n outbound.AlertNotification) []slackapi.Block {
	e := n.Event

	header := slackapi.NewHeaderBlock(
		slackapi.NewTextBlockObject(slackapi.PlainTextType,
			fmt.Sprintf("%s Security Alert: %s", severityEmoji(e.Severity), e.Type), true, false),
	)

	fields := []*slackapi.TextBlockObject{
		slackapi.NewTextBlockObject(slackapi.MarkdownType, fmt.Sprintf("*Severity:*\n%s", e.Severity), false, false),
		slackapi.NewTextBlockObject(slackapi.MarkdownType, fmt.Sprintf("*Client IP:*\n`%s`", e.ClientIP), false, false),
		slackapi.NewTextBlockObject(slackapi.MarkdownType, fmt.Sprintf("*Username:*\n%s", orDash(e.Username)), false, false),
		slackapi.NewTextBlockObject(slackapi.MarkdownType, fmt.Sprintf("*Time:*\n%s", e.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC")), false, false),
	}
	details := slackapi.NewSectionBlock(nil, fields, nil)

	summary := slackapi.NewContextBlock("",
		slackapi.NewTextBlockObject(slackapi.MarkdownType,
			fmt.Sprintf("%d event(s) in the last %s (threshold %d) | event id `%s`",
				n.Summary.TotalEvents, n.Summary.TimeWindow, n.Summary.Threshold, e.ID),
			false, false),
	)

	return []slackapi.Block{header, details, summary}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// severityEmoji maps severity to a Slack emoji shortcode.
func severityEmoji(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return ":rotating_light:"
	case model.SeverityHigh:
		return ":red_circle:"
	case model.SeverityMedium:
		return ":large_yellow_circle:"
	default:
		return ":information_source:"
	}
}
